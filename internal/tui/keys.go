package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit   key.Binding
	Help   key.Binding
	Submit key.Binding
	Enter  key.Binding
	Next   key.Binding
	Prev   key.Binding
	Save   key.Binding
	New    key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "salir"),
	),
	Help: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "ayuda"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "generar"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "siguiente"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "siguiente campo"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab", "campo anterior"),
	),
	Save: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "descargar .docx"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "nueva planeación"),
	),
}
