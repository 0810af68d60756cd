package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderResult() string {
	var b strings.Builder
	plan := a.state.plan

	banner := styleSuccess.Render("Planeación generada con éxito ✅")
	if plan.Cached {
		banner += styleSubtitle.Render("  (desde caché)")
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, banner))
	b.WriteString("\n\n")

	label := styleSubtitle.Render("Vista previa:")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, label))
	b.WriteString("\n")

	previewBox := styleBox.Copy().
		Width(a.state.preview.Width + 4).
		BorderForeground(colorPrimary).
		Render(a.state.preview.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, previewBox))
	b.WriteString("\n")

	if doc := plan.Document; doc != nil {
		info := styleSubtitle.Render(fmt.Sprintf("%s · %d párrafos · %d palabras · %s",
			truncate(doc.Title, 30), doc.Paragraphs, doc.WordCount, doc.FileSizeHuman()))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, info))
		b.WriteString("\n")
	}

	switch {
	case a.state.saveErr != nil:
		msg := lipgloss.NewStyle().Foreground(colorError).Render("No se pudo guardar: " + a.state.saveErr.Error())
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, msg))
		b.WriteString("\n")
	case a.state.savedPath != "":
		msg := styleSuccess.Render("Guardado en " + a.state.savedPath)
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, msg))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	status := styleStatusBar.Render("[d] Descargar como Word (.docx)  [↑/↓] Desplazar  [n] Nueva  [Esc] Salir")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}
