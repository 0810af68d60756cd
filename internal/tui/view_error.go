package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/planea/internal/planner"
)

func (a *App) renderError() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true).
		Render("Algo salió mal")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	errMsg := planner.FailureMessage(a.state.err)
	errBox := styleBox.Copy().
		Width(min(70, a.width-4)).
		BorderForeground(colorError).
		Render(wrapText(errMsg, min(66, a.width-8)))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, errBox))
	b.WriteString("\n\n")

	if suggestions := suggestionsFor(errMsg); len(suggestions) > 0 {
		suggBox := styleBox.Copy().
			Width(min(70, a.width-4)).
			BorderForeground(colorMuted).
			Render("Sugerencias:\n" + strings.Join(suggestions, "\n"))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, suggBox))
		b.WriteString("\n\n")
	}

	status := styleStatusBar.Render("[n] Volver al formulario  [Esc] Salir")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}

func suggestionsFor(errMsg string) []string {
	errLower := strings.ToLower(errMsg)

	switch {
	case strings.Contains(errLower, "401") || strings.Contains(errLower, "unauthorized"):
		return []string{
			"Revisa OPENROUTER_API_KEY o api_key en ~/.config/planea/config.yaml",
		}
	case strings.Contains(errLower, "402") || strings.Contains(errLower, "credits"):
		return []string{
			"La cuenta no tiene créditos suficientes",
		}
	case strings.Contains(errLower, "429") || strings.Contains(errLower, "rate limit"):
		return []string{
			"Se alcanzó el límite de solicitudes",
			"Espera un momento e intenta de nuevo",
		}
	case strings.Contains(errLower, "connect") || strings.Contains(errLower, "timeout") || strings.Contains(errLower, "no such host"):
		return []string{
			"Revisa tu conexión a internet",
		}
	}
	return nil
}
