package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.Width = msg.Width
		m.list.Height = m.listHeight()
		m.ready = true
		m.rebuildList()
		return m, nil

	case refreshDoneMsg:
		m.refreshing = false
		m.syncSiteIndex()
		m.rebuildList()
		m.list.GotoTop()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.focus == focusSearch {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "/":
		m.focus = focusSearch
		return m, m.searchInput.Focus()

	case "r":
		if !m.refreshing {
			m.refreshing = true
			return m, m.refreshCmd()
		}

	case "tab":
		if m.focus == focusTopics {
			m.focus = focusList
		} else {
			m.focus = focusTopics
		}

	case "left", "h":
		if m.focus == focusTopics {
			m.moveTopic(-1)
		} else {
			m.cycleSite(-1)
		}

	case "right", "l":
		if m.focus == focusTopics {
			m.moveTopic(1)
		} else {
			m.cycleSite(1)
		}

	case "enter":
		if m.focus == focusTopics {
			m.pickTopic()
		}

	case "x":
		// Clear search and site filter in one go.
		m.searchInput.SetValue("")
		m.dashboard.SetQuery("")
		m.siteIndex = 0
		m.dashboard.SetSiteFilter("")
		m.rebuildList()
		m.list.GotoTop()

	case "up", "k":
		m.list.LineUp(1)
	case "down", "j":
		m.list.LineDown(1)
	case "pgup", "b":
		m.list.ViewUp()
	case "pgdown", "f", " ":
		m.list.ViewDown()
	case "g", "home":
		m.list.GotoTop()
	case "G", "end":
		m.list.GotoBottom()
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.focus = focusList
		m.searchInput.Blur()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	// Every keystroke is a state mutation followed by a re-derivation.
	m.dashboard.SetQuery(m.searchInput.Value())
	m.rebuildList()
	m.list.GotoTop()

	return m, cmd
}

// cycleSite moves the active site pill and applies the filter. Index 0 is
// the unfiltered "全部" pill.
func (m *Model) cycleSite(delta int) {
	sites := m.dashboard.Sites()

	idx := m.siteIndex + delta
	if idx < 0 {
		idx = 0
	}
	if idx > len(sites) {
		idx = len(sites)
	}
	m.siteIndex = idx

	if idx == 0 {
		m.dashboard.SetSiteFilter("")
	} else {
		m.dashboard.SetSiteFilter(sites[idx-1].SiteID)
	}
	m.rebuildList()
	m.list.GotoTop()
}

// syncSiteIndex re-points the pill cursor at the current filter after the
// site list changed under it. A filter whose site vanished keeps filtering
// (to an empty list) per the state contract, but the cursor resets.
func (m *Model) syncSiteIndex() {
	filter := m.dashboard.SiteFilter()
	if filter == "" {
		m.siteIndex = 0
		return
	}
	for i, s := range m.dashboard.Sites() {
		if s.SiteID == filter {
			m.siteIndex = i + 1
			return
		}
	}
	m.siteIndex = 0
}

func (m *Model) moveTopic(delta int) {
	chips := m.dashboard.HotTopics().Chips
	if len(chips) == 0 {
		return
	}
	m.topicIndex += delta
	if m.topicIndex < 0 {
		m.topicIndex = 0
	}
	if m.topicIndex >= len(chips) {
		m.topicIndex = len(chips) - 1
	}
}

// pickTopic sets the query to the selected keyword, re-renders the list
// and scrolls it back into view.
func (m *Model) pickTopic() {
	chips := m.dashboard.HotTopics().Chips
	if m.topicIndex < 0 || m.topicIndex >= len(chips) {
		return
	}
	keyword := chips[m.topicIndex].Topic.Keyword

	m.searchInput.SetValue(keyword)
	m.dashboard.SetQuery(keyword)
	m.focus = focusList
	m.rebuildList()
	m.list.GotoTop()
}

func (m *Model) rebuildList() {
	m.list.Height = m.listHeight()
	m.list.SetContent(m.renderList())
}
