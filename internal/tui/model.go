// Package tui is the interactive terminal rendering of the dashboard:
// stats cards, site filter pills, hot-topic chips and the grouped news
// list. Every input event mutates the presentation state and re-renders
// the affected regions in full; there is no partial patching.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/onearthlouis/stock-radar/internal/service"
)

// focusRegion is the region currently receiving navigation keys.
type focusRegion int

const (
	focusList focusRegion = iota
	focusSearch
	focusTopics
)

// refreshDoneMsg carries the all-settled outcome of one refresh.
type refreshDoneMsg struct {
	result *service.RefreshResult
}

// Model is the root Bubble Tea model.
type Model struct {
	dashboard *service.Dashboard

	searchInput textinput.Model
	list        viewport.Model

	focus      focusRegion
	siteIndex  int // 0 = all sites, otherwise 1-based index into Sites()
	topicIndex int

	width      int
	height     int
	ready      bool
	refreshing bool
}

// New creates the root model around a dashboard controller.
func New(dashboard *service.Dashboard) Model {
	input := textinput.New()
	input.Placeholder = "搜索标题 / 站点 / 来源"
	input.Prompt = "/ "
	input.CharLimit = 64

	return Model{
		dashboard:   dashboard,
		searchInput: input,
		list:        viewport.New(0, 0),
		refreshing:  true,
	}
}

// Init kicks off the initial load of both documents.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), textinput.Blink)
}

// refreshCmd fetches both documents off the event loop. Input events keep
// processing against whatever state exists while it runs.
func (m Model) refreshCmd() tea.Cmd {
	dashboard := m.dashboard
	return func() tea.Msg {
		return refreshDoneMsg{result: dashboard.Refresh(context.Background())}
	}
}
