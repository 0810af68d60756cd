package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderGenerating() string {
	var b strings.Builder

	title := styleTitle.Render("Generando planeación...")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	req := a.state.request()
	summary := []string{
		fmt.Sprintf("Asignatura:  %s", truncate(req.Subject, 50)),
		fmt.Sprintf("Grado:       %s", truncate(req.Grade, 50)),
		fmt.Sprintf("Tema:        %s", truncate(req.Topic, 50)),
		fmt.Sprintf("Duración:    %s", truncate(req.Duration, 50)),
	}
	summaryBox := styleBox.Copy().
		Width(min(60, a.width-4)).
		Render(strings.Join(summary, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, summaryBox))
	b.WriteString("\n\n")

	elapsed := time.Since(a.state.started).Truncate(time.Second)
	line := fmt.Sprintf("%s Consultando %s (%s)", a.state.spinner.View(), a.config.Model, elapsed)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, line))
	b.WriteString("\n\n")

	status := styleStatusBar.Render("[Esc] Cancelar")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}
