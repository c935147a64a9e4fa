package dashboard

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/models"
)

const defaultBarWidth = 20

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1).
			MarginRight(1)

	cardLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	cardValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	barFilledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	barEmptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	dayLabelStyle  = lipgloss.NewStyle().Width(10)
	headingStyle   = lipgloss.NewStyle().Bold(true).MarginTop(1)
	emptyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

type Model struct {
	stats  *models.DashboardStats
	width  int
	height int
}

func New(width, height int) Model {
	return Model{width: width, height: height}
}

// SetStats replaces the statistics shown. nil means not loaded yet.
func (m *Model) SetStats(stats *models.DashboardStats) {
	m.stats = stats
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) View() string {
	return Render(m.stats, m.width)
}

// Render draws the metric cards and the weekly chart
func Render(stats *models.DashboardStats, width int) string {
	if stats == nil {
		return emptyStyle.Render("No statistics yet.")
	}
	if stats.TotalHabits == 0 && stats.TotalCompletions == 0 {
		return emptyStyle.Render("No habits yet. Add one to start tracking.")
	}

	barWidth := defaultBarWidth
	if width > 0 && width < 50 {
		barWidth = max(5, width-25)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		Cards(stats),
		headingStyle.Render("Last 7 days"),
		WeeklyChart(stats.WeeklyProgress, barWidth),
	)
}

// Cards renders today's progress, streaks and total completions
func Cards(stats *models.DashboardStats) string {
	cards := []string{
		card("Today", fmt.Sprintf("%d/%d (%.0f%%)", stats.CompletedToday, stats.TotalHabits, stats.CompletionPercentageToday)),
		card("Current streak", Days(stats.CurrentStreak)),
		card("Longest streak", Days(stats.LongestStreak)),
		card("Completions", fmt.Sprintf("%d", stats.TotalCompletions)),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func card(label, value string) string {
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		cardLabelStyle.Render(label),
		cardValueStyle.Render(value),
	))
}

// WeeklyChart renders one bar per day
func WeeklyChart(days []models.DayProgress, barWidth int) string {
	if len(days) == 0 {
		return emptyStyle.Render("No activity recorded.")
	}

	lines := make([]string, 0, len(days))
	for _, d := range days {
		filled := Fill(d.Completed, d.Total, barWidth)
		bar := barFilledStyle.Render(strings.Repeat("█", filled)) +
			barEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
		lines = append(lines, fmt.Sprintf("%s %s %d/%d", dayLabelStyle.Render(DayLabel(d.Date)), bar, d.Completed, d.Total))
	}
	return strings.Join(lines, "\n")
}

// Fill returns how many of width cells a completed/total bar fills
func Fill(completed, total, width int) int {
	if total <= 0 || completed <= 0 || width <= 0 {
		return 0
	}
	if completed >= total {
		return width
	}
	return int(math.Round(float64(completed) / float64(total) * float64(width)))
}

// DayLabel turns an API date into "Mon 01-02"
func DayLabel(date string) string {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return date
	}
	return t.Format("Mon 01-02")
}

// Days formats a streak length
func Days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
