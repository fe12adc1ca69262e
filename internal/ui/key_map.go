package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up     key.Binding
	down   key.Binding
	span1  key.Binding
	span2  key.Binding
	span3  key.Binding
	sort   key.Binding
	toggle key.Binding
	reload key.Binding
	help   key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		span1:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "4 weeks")),
		span2:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "6 months")),
		span3:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "1 year")),
		sort:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		toggle: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "artists/tracks")),
		reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.sort, k.toggle, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down},
		{k.span1, k.span2, k.span3},
		{k.sort, k.toggle},
		{k.reload, k.help, k.quit},
	}
}
