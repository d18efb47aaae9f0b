package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Superpose   key.Binding
	Arrange     key.Binding
	BoxGrow     key.Binding
	BoxShrink   key.Binding
	ProbeWider  key.Binding
	ProbeSlim   key.Binding
	ProbeTall   key.Binding
	ProbeShort  key.Binding
	Clear       key.Binding
	Export      key.Binding
	CancelOrEnd key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Superpose:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "superpose")),
		Arrange:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "geometry")),
		BoxGrow:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "grow boxes")),
		BoxShrink:   key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "shrink boxes")),
		ProbeWider:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "widen probe")),
		ProbeSlim:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "narrow probe")),
		ProbeTall:   key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "stretch probe")),
		ProbeShort:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "squeeze probe")),
		Clear:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Export:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "export wav")),
		CancelOrEnd: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func helpText() string {
	return "drag select  o superpose  g geometry  +/- boxes  arrows probe  c clear  w export  q quit"
}
