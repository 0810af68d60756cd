package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderForm() string {
	var b strings.Builder

	title := styleTitle.Render("📘 PlaneaDocente")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n")
	subtitle := styleSubtitle.Render("Generador de planeaciones didácticas")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, subtitle))
	b.WriteString("\n\n")

	var fields []string
	for i, in := range a.state.inputs {
		label := styleLabel.Render(fieldLabels[i])
		if i == a.state.focused {
			label = styleLabelFocused.Render(fieldLabels[i])
		}
		fields = append(fields, label, in.View(), "")
	}

	formBox := styleBox.Copy().
		Width(min(70, a.width-4)).
		BorderForeground(colorPrimary).
		Render(strings.TrimRight(strings.Join(fields, "\n"), "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, formBox))
	b.WriteString("\n\n")

	if a.state.warning != "" {
		warning := styleWarning.Render("⚠ " + a.state.warning)
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, warning))
		b.WriteString("\n\n")
	}

	status := styleStatusBar.Render("[Tab] Siguiente  [Ctrl+S] Generar planeación  [F1] Ayuda  [Esc] Salir")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}

func (a *App) centerVertically(content string) string {
	lines := strings.Count(content, "\n") + 1
	padding := (a.height - lines) / 2
	if padding < 0 {
		padding = 0
	}
	return strings.Repeat("\n", padding) + content
}
