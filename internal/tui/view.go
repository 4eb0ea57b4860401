package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/onearthlouis/stock-radar/internal/view"
)

// View renders the full screen: header cards, search line, site pills,
// hot-topic chips, news list, status bar.
func (m Model) View() string {
	if !m.ready {
		return "载入中..."
	}

	sections := []string{
		m.renderHeader(),
		m.renderSearch(),
		m.renderSitePills(),
		m.renderHotTopics(),
		m.list.View(),
		m.renderStatus(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// listHeight is what remains after the fixed regions above and below the
// list. The chip region wraps, so its height depends on the terminal width.
func (m Model) listHeight() int {
	fixed := 1 + 1 + 1 + 1 // header, search, pills, status
	h := m.height - fixed - lipgloss.Height(m.renderHotTopics())
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) renderHeader() string {
	o := m.dashboard.Overview()

	cards := []string{
		card("24小时", view.FormatCount(o.TotalItems)),
		card("站点", view.FormatCount(o.SiteCount)),
		card("来源", view.FormatCount(o.SourceCount)),
		card("归档", view.FormatCount(o.ArchiveTotal)),
		card("更新", view.FormatClock(o.GeneratedAt)),
	}
	line := "股市信息雷达  " + strings.Join(cards, "  ")

	if m.refreshing {
		line += "  " + mutedStyle.Render("刷新中...")
	} else if o.Failed {
		line += "  " + bannerStyle.Render("加载失败")
	}

	return headerStyle.Width(m.width).Render(line)
}

func card(label, value string) string {
	return cardLabelStyle.Render(label+" ") + cardStyle.Render(value)
}

func (m Model) renderSearch() string {
	return " " + m.searchInput.View()
}

func (m Model) renderSitePills() string {
	sites := m.dashboard.Sites()
	filter := m.dashboard.SiteFilter()

	pills := make([]string, 0, len(sites)+1)

	total := 0
	for _, s := range sites {
		total += s.Count
	}
	all := fmt.Sprintf("全部 %d", total)
	if filter == "" {
		pills = append(pills, pillActiveStyle.Render(all))
	} else {
		pills = append(pills, pillStyle.Render(all))
	}

	for _, s := range sites {
		label := fmt.Sprintf("%s %d", s.SiteName, s.Count)
		if s.SiteID == filter {
			pills = append(pills, pillActiveStyle.Render(label))
		} else {
			pills = append(pills, pillStyle.Render(label))
		}
	}

	return truncateLine(strings.Join(pills, " "), m.width)
}

func (m Model) renderHotTopics() string {
	hot := m.dashboard.HotTopics()

	label := sourceHeaderStyle.Render("热点 ")
	if hot.Failed {
		return label + mutedStyle.Render("暂无数据")
	}
	if len(hot.Chips) == 0 {
		return label + mutedStyle.Render("-")
	}

	chips := make([]string, 0, len(hot.Chips))
	for i, chip := range hot.Chips {
		color := intensityColor(categoryColor(chip.Topic.Category), chip.Intensity)
		style := lipgloss.NewStyle().Foreground(color)
		if m.focus == focusTopics && i == m.topicIndex {
			style = lipgloss.NewStyle().
				Foreground(lipgloss.Color(backgroundColor)).
				Background(categoryColor(chip.Topic.Category)).
				Bold(true)
		}
		chips = append(chips, style.Render(fmt.Sprintf("%s %d", chip.Topic.Keyword, chip.Topic.Count)))
	}

	var (
		lines []string
		line  = label
	)
	for _, c := range chips {
		if lipgloss.Width(line)+lipgloss.Width(c)+2 > m.width && line != label {
			lines = append(lines, line)
			line = strings.Repeat(" ", lipgloss.Width(label))
		}
		line += c + "  "
	}
	lines = append(lines, line)

	suffix := ""
	if hot.GeneratedAt != nil {
		suffix = "  " + mutedStyle.Render(view.FormatClock(hot.GeneratedAt))
	}
	lines[len(lines)-1] = strings.TrimRight(lines[len(lines)-1], " ") + suffix

	return strings.Join(lines, "\n")
}

// renderList builds the full grouped news list; the viewport scrolls it.
func (m Model) renderList() string {
	results := m.dashboard.Results()

	var b strings.Builder
	fmt.Fprintf(&b, " %s\n", sourceHeaderStyle.Render("共 "+view.FormatCount(results.Total)+" 条"))

	if results.Total == 0 {
		b.WriteString("\n " + mutedStyle.Render(view.EmptyMessage(results.Query)) + "\n")
		return b.String()
	}

	for _, g := range results.Groups {
		fmt.Fprintf(&b, "\n %s\n", siteHeaderStyle.Render(fmt.Sprintf("▎%s · %d条", g.SiteName, len(g.Items))))
		for _, sg := range g.Sources {
			fmt.Fprintf(&b, "   %s\n", sourceHeaderStyle.Render(fmt.Sprintf("%s (%d)", sg.Label, len(sg.Items))))
			for _, it := range sg.Items {
				title := truncateLine(it.Title, m.width-16)
				if it.URL != "" {
					title = termenv.Hyperlink(it.URL, title)
				}
				fmt.Fprintf(&b, "     %s  %s\n",
					timeStyle.Render(view.FormatTimestamp(it.DisplayTime())),
					titleStyle.Render(title),
				)
			}
		}
	}

	return b.String()
}

func (m Model) renderStatus() string {
	help := "  [/] 搜索  [←→] 站点  [tab] 热点  [↑↓] 滚动  [r] 刷新  [x] 清除  [q] 退出"
	if m.focus == focusSearch {
		help = "  输入搜索词  [esc] 完成"
	}
	if m.focus == focusTopics {
		help = "  [←→] 选择热点  [enter] 按此搜索  [tab] 返回列表"
	}
	return statusStyle.Width(m.width).Render(help)
}

func truncateLine(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for lipgloss.Width(string(runes)) > maxWidth-2 && len(runes) > 0 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + ".."
}
