package models

// DayProgress is one entry of the weekly progress series
type DayProgress struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

// DashboardStats is computed entirely by the remote API and replaced
// wholesale on every refresh.
type DashboardStats struct {
	TotalHabits               int           `json:"totalHabits"`
	CompletedToday            int           `json:"completedToday"`
	CompletionPercentageToday float64       `json:"completionPercentageToday"`
	CurrentStreak             int           `json:"currentStreak"`
	LongestStreak             int           `json:"longestStreak"`
	TotalCompletions          int           `json:"totalCompletions"`
	WeeklyProgress            []DayProgress `json:"weeklyProgress"`
}

// Clone returns a deep copy of the stats, or nil for a nil receiver
func (s *DashboardStats) Clone() *DashboardStats {
	if s == nil {
		return nil
	}
	c := *s
	if s.WeeklyProgress != nil {
		c.WeeklyProgress = make([]DayProgress, len(s.WeeklyProgress))
		copy(c.WeeklyProgress, s.WeeklyProgress)
	}
	return &c
}
