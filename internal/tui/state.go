package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/planea/internal/planner"
)

const (
	fieldSubject = iota
	fieldGrade
	fieldCompetency
	fieldDuration
	fieldTopic
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Asignatura (ej. Matemáticas)",
	"Grado o nivel (ej. 3° primaria)",
	"Competencia o aprendizaje esperado",
	"Duración de clase (ej. 50 minutos)",
	"Tema específico",
}

const (
	warningIncomplete = "Por favor llena todos los campos."
	warningCancelled  = "Generación cancelada."
)

type state struct {
	// Form
	inputs  [fieldCount]textinput.Model
	focused int
	warning string

	// Generating
	spinner spinner.Model
	cancel  context.CancelFunc
	started time.Time

	// Result
	plan    *planner.Plan
	err     error
	preview viewport.Model

	// Download
	savedPath string
	saveErr   error
}

func newState() *state {
	s := &state{}
	for i := range s.inputs {
		in := textinput.New()
		in.Placeholder = fieldLabels[i]
		in.CharLimit = 0
		in.Width = 60
		in.Prompt = "> "
		s.inputs[i] = in
	}
	s.inputs[fieldSubject].Focus()

	s.spinner = spinner.New()
	s.spinner.Spinner = spinner.Dot
	s.spinner.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	s.preview = viewport.New(70, 20)
	return s
}

func (s *state) request() planner.LessonRequest {
	return planner.LessonRequest{
		Subject:    s.inputs[fieldSubject].Value(),
		Grade:      s.inputs[fieldGrade].Value(),
		Competency: s.inputs[fieldCompetency].Value(),
		Duration:   s.inputs[fieldDuration].Value(),
		Topic:      s.inputs[fieldTopic].Value(),
	}
}

func (s *state) focus(i int) {
	s.inputs[s.focused].Blur()
	s.focused = (i + fieldCount) % fieldCount
	s.inputs[s.focused].Focus()
}

func (s *state) clearResult() {
	s.plan = nil
	s.err = nil
	s.savedPath = ""
	s.saveErr = nil
	s.preview.SetContent("")
	s.preview.GotoTop()
}
