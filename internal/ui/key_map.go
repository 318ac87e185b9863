package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up         key.Binding
	down       key.Binding
	enter      key.Binding
	refresh    key.Binding
	next       key.Binding
	prev       key.Binding
	play       key.Binding
	fullscreen key.Binding
	escape     key.Binding
	faster     key.Binding
	slower     key.Binding
	interval   key.Binding
	open       key.Binding
	back       key.Binding
	quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
		refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		next:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		prev:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
		play:       key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "play/pause")),
		fullscreen: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fullscreen")),
		escape:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "exit fullscreen")),
		faster:     key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "faster")),
		slower:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "slower")),
		interval:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "interval")),
		open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open video")),
		back:       key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "slides")),
		quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.refresh},
		{k.next, k.prev, k.play, k.fullscreen, k.escape},
		{k.slower, k.faster, k.interval, k.open},
		{k.back, k.quit},
	}
}

// playerHelp returns the bindings shown in the control bar.
func (k keyMap) playerHelp() []key.Binding {
	return []key.Binding{k.prev, k.next, k.play, k.fullscreen, k.slower, k.faster, k.interval, k.back, k.quit}
}
