package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Section  key.Binding
	Next     key.Binding
	Prev     key.Binding
	Down     key.Binding
	Up       key.Binding
	PageDown key.Binding
	PageUp   key.Binding
	Top      key.Binding
	Back     key.Binding
	Forward  key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Jump     key.Binding
	NavMode  key.Binding
	Quit     key.Binding

	// jump prompt
	Confirm key.Binding
	Cancel  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Section:  key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "section")),
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/k", "scroll")),
		Up:       key.NewBinding(key.WithKeys("k", "up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", " ", "ctrl+d")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u")),
		Top:      key.NewBinding(key.WithKeys("t", "home"), key.WithHelp("t", "top")),
		Back:     key.NewBinding(key.WithKeys("["), key.WithHelp("[", "back")),
		Forward:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "forward")),
		NextPage: key.NewBinding(key.WithKeys("n"), key.WithHelp("n/p", "page")),
		PrevPage: key.NewBinding(key.WithKeys("p")),
		Jump:     key.NewBinding(key.WithKeys("g", "/"), key.WithHelp("g", "jump")),
		NavMode:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "nav bar")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Confirm:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "go")),
		Cancel:   key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Section, k.Next, k.Down, k.Top, k.Back, k.Forward, k.NextPage, k.Jump, k.NavMode, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Section, k.Next, k.Prev, k.Top},
		{k.Down, k.Up, k.PageDown, k.PageUp},
		{k.Back, k.Forward, k.NextPage, k.PrevPage},
		{k.Jump, k.NavMode, k.Quit},
	}
}

// promptKeys is the help shown while the jump prompt is open.
type promptKeys struct{ k keyMap }

func (p promptKeys) ShortHelp() []key.Binding  { return []key.Binding{p.k.Confirm, p.k.Cancel} }
func (p promptKeys) FullHelp() [][]key.Binding { return [][]key.Binding{p.ShortHelp()} }
