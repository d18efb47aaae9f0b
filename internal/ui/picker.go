package ui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvisser/spikescope/internal/mockdata"
)

// PickerResult holds the outcome of the preset picker.
type PickerResult struct {
	Preset    mockdata.Preset
	Cancelled bool
}

type presetItem struct {
	preset mockdata.Preset
}

func (i presetItem) Title() string       { return i.preset.Name }
func (i presetItem) Description() string { return i.preset.Desc }
func (i presetItem) FilterValue() string { return i.preset.Name }

// PickerModel is the Bubbletea model for the startup preset picker.
type PickerModel struct {
	list   list.Model
	result *PickerResult
}

// NewPicker creates a picker listing the built-in demo recordings.
func NewPicker() PickerModel {
	presets := mockdata.Presets()
	items := make([]list.Item, 0, len(presets))
	for _, p := range presets {
		items = append(items, presetItem{preset: p})
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	l := list.New(items, delegate, 80, 20)
	l.Title = "spikescope"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = headerStyle

	return PickerModel{list: l}
}

// Result returns the picker outcome after the program finishes.
func (m PickerModel) Result() PickerResult {
	if m.result != nil {
		return *m.result
	}
	return PickerResult{Cancelled: true}
}

func (m PickerModel) Init() tea.Cmd {
	return tea.SetWindowTitle("spikescope")
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.result = &PickerResult{Cancelled: true}
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		case "enter":
			if item, ok := m.list.SelectedItem().(presetItem); ok {
				m.result = &PickerResult{Preset: item.preset}
				return m, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m PickerModel) View() string {
	return m.list.View()
}
