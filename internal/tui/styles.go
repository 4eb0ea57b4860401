package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Category colors for hot-topic chips, one per upstream category.
var categoryColors = map[string]lipgloss.Color{
	"板块": lipgloss.Color("#58a6ff"), // blue - sectors
	"市场": lipgloss.Color("#ffa657"), // orange - market action
	"港股": lipgloss.Color("#d2a8ff"), // purple - Hong Kong
	"宏观": lipgloss.Color("#7ee787"), // green - macro/policy
}

var defaultCategoryColor = lipgloss.Color("#8b949e")

const backgroundColor = "#0d1117"

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c9d1d9")).
			Background(lipgloss.Color("#161b22")).
			Bold(true).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c9d1d9"))

	cardLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8b949e"))

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f85149")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#484f58"))

	pillStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8b949e")).
			Padding(0, 1)

	pillActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0d1117")).
			Background(lipgloss.Color("#58a6ff")).
			Bold(true).
			Padding(0, 1)

	siteHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c9d1d9")).
			Bold(true)

	sourceHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#8b949e"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c9d1d9"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#484f58"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8b949e")).
			Background(lipgloss.Color("#161b22"))
)

// categoryColor returns the chip color for a category, falling back to the
// default for unknown ones.
func categoryColor(category string) lipgloss.Color {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return defaultCategoryColor
}

// intensityColor scales a category color toward the background: full
// intensity keeps the category color, low intensity fades it. The caller
// has already floored the intensity, so fully invisible chips never occur.
func intensityColor(base lipgloss.Color, intensity float64) lipgloss.Color {
	if intensity < 0 {
		intensity = 0
	}
	if intensity > 1 {
		intensity = 1
	}

	br, bg, bb := hexChannels(backgroundColor)
	fr, fg, fb := hexChannels(string(base))

	blend := func(b, f int) int {
		return b + int(float64(f-b)*intensity)
	}
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", blend(br, fr), blend(bg, fg), blend(bb, fb)))
}

func hexChannels(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0x8b, 0x94, 0x9e
	}
	fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	return r, g, b
}
