package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sant0-9/planea/internal/config"
	"github.com/sant0-9/planea/internal/document"
	"github.com/sant0-9/planea/internal/logger"
	"github.com/sant0-9/planea/internal/planner"
)

type view int

const (
	viewForm view = iota
	viewGenerating
	viewResult
	viewHelp
)

type App struct {
	width    int
	height   int
	view     view
	prevView view
	state    *state
	quitting bool

	config  *config.Config
	planner *planner.Planner
	log     *logger.Logger
}

func NewApp(cfg *config.Config, p *planner.Planner, log *logger.Logger) *App {
	if log == nil {
		log = logger.Nop()
	}
	return &App{
		view:    viewForm,
		state:   newState(),
		config:  cfg,
		planner: p,
		log:     log,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(tea.WindowSize(), textinput.Blink)
}

type planReadyMsg struct{ plan *planner.Plan }
type planFailedMsg struct{ error }
type savedMsg struct{ path string }
type saveFailedMsg struct{ error }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := a.handleKey(msg)
		if handled {
			return a, cmd
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.state.preview.Width = min(80, msg.Width-6)
		a.state.preview.Height = max(5, msg.Height-14)

	case spinner.TickMsg:
		if a.view != viewGenerating {
			return a, nil
		}
		var cmd tea.Cmd
		a.state.spinner, cmd = a.state.spinner.Update(msg)
		return a, cmd

	case planReadyMsg:
		a.finishGenerating()
		a.state.plan = msg.plan
		a.state.preview.SetContent(wrapText(msg.plan.Text, a.state.preview.Width))
		a.state.preview.GotoTop()
		a.view = viewResult
		return a, nil

	case planFailedMsg:
		a.finishGenerating()
		if errors.Is(msg.error, context.Canceled) {
			a.state.warning = warningCancelled
			a.view = viewForm
			return a, textinput.Blink
		}
		a.state.err = msg.error
		a.view = viewResult
		return a, nil

	case savedMsg:
		a.state.savedPath = msg.path
		a.state.saveErr = nil
		return a, nil

	case saveFailedMsg:
		a.state.saveErr = msg.error
		return a, nil
	}

	switch a.view {
	case viewForm:
		var cmd tea.Cmd
		a.state.inputs[a.state.focused], cmd = a.state.inputs[a.state.focused].Update(msg)
		cmds = append(cmds, cmd)
	case viewResult:
		var cmd tea.Cmd
		a.state.preview, cmd = a.state.preview.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

// handleKey reports whether the key was consumed; unconsumed keys reach the
// focused input or the preview.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, keys.Help) && a.view != viewGenerating {
		if a.view == viewHelp {
			a.view = a.prevView
		} else {
			a.prevView = a.view
			a.view = viewHelp
		}
		return nil, true
	}

	switch a.view {
	case viewForm:
		return a.handleFormKey(msg)

	case viewGenerating:
		if key.Matches(msg, keys.Quit) && a.state.cancel != nil {
			a.state.cancel()
			return nil, true
		}
		return nil, true

	case viewResult:
		return a.handleResultKey(msg)

	case viewHelp:
		if key.Matches(msg, keys.Quit) {
			a.view = a.prevView
		}
		return nil, true
	}
	return nil, false
}

func (a *App) handleFormKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Quit):
		a.quitting = true
		return tea.Quit, true

	case key.Matches(msg, keys.Submit):
		return a.submit(), true

	case key.Matches(msg, keys.Enter):
		if a.state.focused == fieldCount-1 {
			return a.submit(), true
		}
		a.state.focus(a.state.focused + 1)
		return textinput.Blink, true

	case key.Matches(msg, keys.Next):
		a.state.focus(a.state.focused + 1)
		return textinput.Blink, true

	case key.Matches(msg, keys.Prev):
		a.state.focus(a.state.focused - 1)
		return textinput.Blink, true
	}
	return nil, false
}

func (a *App) handleResultKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Quit):
		a.quitting = true
		return tea.Quit, true

	case key.Matches(msg, keys.New):
		a.state.clearResult()
		a.view = viewForm
		return textinput.Blink, true

	case key.Matches(msg, keys.Save):
		if a.state.plan == nil {
			return nil, true
		}
		return a.save(a.state.plan.Document.Path), true
	}
	return nil, false
}

// submit moves Idle to Generating only when every field is filled.
func (a *App) submit() tea.Cmd {
	req := a.state.request()
	if !req.Complete() {
		a.state.warning = warningIncomplete
		a.log.Debug("submission blocked: incomplete form")
		return nil
	}

	a.state.warning = ""
	a.state.clearResult()
	a.view = viewGenerating
	a.state.started = time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	a.state.cancel = cancel

	return tea.Batch(a.state.spinner.Tick, a.generate(ctx, req))
}

func (a *App) generate(ctx context.Context, req planner.LessonRequest) tea.Cmd {
	return func() tea.Msg {
		plan, err := a.planner.Plan(ctx, req)
		if err != nil {
			return planFailedMsg{err}
		}
		return planReadyMsg{plan}
	}
}

func (a *App) finishGenerating() {
	if a.state.cancel != nil {
		a.state.cancel()
		a.state.cancel = nil
	}
}

func (a *App) save(src string) tea.Cmd {
	dir := a.config.OutputDir
	return func() tea.Msg {
		path, err := document.SaveAs(src, dir)
		if err != nil {
			a.log.Error("save document failed", "src", src, "dir", dir, "error", err)
			return saveFailedMsg{err}
		}
		a.log.Info("document saved", "path", path)
		return savedMsg{path}
	}
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewGenerating:
		return a.renderGenerating()
	case viewResult:
		if a.state.err != nil {
			return a.renderError()
		}
		return a.renderResult()
	case viewHelp:
		return a.renderHelp()
	default:
		return a.renderForm()
	}
}
