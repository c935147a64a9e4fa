package dashboard

import (
	"strings"
	"testing"

	"github.com/julianstephens/habitflow/internal/models"
)

func TestFill(t *testing.T) {
	tests := []struct {
		completed, total, width, want int
	}{
		{0, 3, 20, 0},
		{1, 3, 20, 7},
		{2, 3, 20, 13},
		{3, 3, 20, 20},
		{5, 3, 20, 20},
		{1, 0, 20, 0},
		{1, 2, 0, 0},
	}
	for _, tt := range tests {
		if got := Fill(tt.completed, tt.total, tt.width); got != tt.want {
			t.Errorf("Fill(%d, %d, %d) = %d, want %d", tt.completed, tt.total, tt.width, got, tt.want)
		}
	}
}

func TestDayLabel(t *testing.T) {
	if got := DayLabel("2024-03-04"); got != "Mon 03-04" {
		t.Errorf("DayLabel() = %q", got)
	}
	if got := DayLabel("not-a-date"); got != "not-a-date" {
		t.Errorf("DayLabel() = %q, want input unchanged", got)
	}
}

func TestDays(t *testing.T) {
	if Days(1) != "1 day" || Days(0) != "0 days" || Days(12) != "12 days" {
		t.Errorf("Days() = %q %q %q", Days(1), Days(0), Days(12))
	}
}

func TestRender(t *testing.T) {
	if got := Render(nil, 80); !strings.Contains(got, "No statistics yet.") {
		t.Errorf("Render(nil) = %q", got)
	}
	if got := Render(&models.DashboardStats{}, 80); !strings.Contains(got, "No habits yet.") {
		t.Errorf("Render(empty) = %q", got)
	}

	stats := &models.DashboardStats{
		TotalHabits:               3,
		CompletedToday:            2,
		CompletionPercentageToday: 67,
		CurrentStreak:             1,
		LongestStreak:             4,
		TotalCompletions:          9,
		WeeklyProgress: []models.DayProgress{
			{Date: "2024-03-03", Completed: 1, Total: 3},
			{Date: "2024-03-04", Completed: 2, Total: 3},
		},
	}
	got := Render(stats, 80)
	for _, want := range []string{"2/3 (67%)", "1 day", "4 days", "Sun 03-03", "Mon 03-04", "2/3"} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() missing %q in:\n%s", want, got)
		}
	}
}
