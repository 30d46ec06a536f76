package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	SwitchPane key.Binding
	AddPackage key.Binding
	Packages   key.Binding
	AddBooking key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Status     key.Binding
	Logout     key.Binding
	Back       key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		SwitchPane: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		AddPackage: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add package")),
		Packages:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "packages")),
		AddBooking: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "add booking")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Status:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "set status")),
		Logout:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "logout")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, headerStyle.Render(help.Key)+" "+help.Desc)
	}
	return strings.Join(parts, "  ")
}
