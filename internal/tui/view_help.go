package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderHelp() string {
	var b strings.Builder

	title := styleTitle.Render("Ayuda")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	shortcuts := []string{
		"  Tab / ↓        Siguiente campo",
		"  Shift+Tab / ↑  Campo anterior",
		"  Enter          Siguiente campo (genera en el último)",
		"  Ctrl+S         Generar planeación",
		"  d              Descargar como Word (.docx)",
		"  n              Nueva planeación",
		"  Esc            Cancelar / Salir",
	}
	shortcutsBox := styleBox.Copy().
		Width(60).
		Render(strings.Join(shortcuts, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, shortcutsBox))
	b.WriteString("\n\n")

	settingsTitle := styleSubtitle.Render("Configuración")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, settingsTitle))
	b.WriteString("\n\n")

	maxTokens := "sin límite"
	if a.config.MaxTokens > 0 {
		maxTokens = fmt.Sprint(a.config.MaxTokens)
	}
	settings := []string{
		fmt.Sprintf("  Proveedor      %s", a.config.Provider),
		fmt.Sprintf("  Modelo         %s", truncate(a.config.Model, 40)),
		fmt.Sprintf("  Max tokens     %s", maxTokens),
		fmt.Sprintf("  Carpeta        %s", truncate(a.config.OutputDir, 40)),
		fmt.Sprintf("  En caché       %d", a.planner.CacheLen()),
	}
	settingsBox := styleBox.Copy().
		Width(60).
		Render(strings.Join(settings, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, settingsBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[F1/Esc] Volver")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}
