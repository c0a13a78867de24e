package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextTab      key.Binding
	PrevTab      key.Binding
	NextScenario key.Binding
	PrevScenario key.Binding
	Jump         key.Binding
	Help         key.Binding
	Quit         key.Binding
}

var keys = keyMap{
	NextTab:      key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next tab")),
	PrevTab:      key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab/←", "prev tab")),
	NextScenario: key.NewBinding(key.WithKeys("n", "]"), key.WithHelp("n", "next scenario")),
	PrevScenario: key.NewBinding(key.WithKeys("p", "["), key.WithHelp("p", "prev scenario")),
	Jump:         key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "jump to tab")),
	Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.NextScenario, k.PrevScenario, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Jump},
		{k.NextScenario, k.PrevScenario},
		{k.Help, k.Quit},
	}
}
