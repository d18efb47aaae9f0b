package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type animTickMsg time.Time

type exportedMsg struct {
	path string
	err  error
}

const animFPS = 30

func animTick() tea.Cmd {
	return tea.Tick(time.Second/animFPS, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}
