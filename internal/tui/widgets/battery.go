// ABOUTME: Battery charge bar for vehicle listings
// ABOUTME: Colored fill based on remaining charge with a compact variant

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var batteryEmptyColor = lipgloss.Color("#374151")

// batteryColor picks the fill color for a charge percentage. Low charge
// is the alarming direction here, the inverse of a utilization bar.
func batteryColor(percent int) lipgloss.Color {
	if percent <= 15 {
		return BadgeCritBg
	}
	if percent <= 35 {
		return BadgeWarnBg
	}
	return BadgeOKBg
}

// BatteryBar renders a battery charge bar with a percentage label.
func BatteryBar(percent, width int) string {
	if width <= 0 {
		width = 10
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := percent * width / 100
	color := batteryColor(percent)

	var bar strings.Builder
	bar.WriteString("[")
	bar.WriteString(lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)))
	bar.WriteString(lipgloss.NewStyle().Foreground(batteryEmptyColor).Render(strings.Repeat("░", width-filled)))
	bar.WriteString("]")

	label := lipgloss.NewStyle().Foreground(color).Render(fmt.Sprintf("%3d%%", percent))
	return fmt.Sprintf("%s %s", bar.String(), label)
}

// CompactBatteryBar renders a minimal charge bar for tight spaces.
func CompactBatteryBar(percent, width int) string {
	if width <= 0 {
		width = 6
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := percent * width / 100
	filledStr := strings.Repeat("▓", filled)
	emptyStr := strings.Repeat("░", width-filled)

	return lipgloss.NewStyle().Foreground(batteryColor(percent)).Render(filledStr) +
		lipgloss.NewStyle().Foreground(batteryEmptyColor).Render(emptyStr)
}
