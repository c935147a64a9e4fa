package models

import (
	"encoding/json"
	"testing"
)

func TestHabitUnmarshalAcceptsBothIDForms(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "document id", body: `{"_id":"64f0a1","title":"Read"}`, want: "64f0a1"},
		{name: "plain id", body: `{"id":"h1","title":"Read"}`, want: "h1"},
		{name: "both prefers _id", body: `{"_id":"a","id":"b","title":"Read"}`, want: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h Habit
			if err := json.Unmarshal([]byte(tt.body), &h); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if h.ID != tt.want {
				t.Errorf("ID = %q, want %q", h.ID, tt.want)
			}
			if h.Title != "Read" {
				t.Errorf("Title = %q, want %q", h.Title, "Read")
			}
		})
	}
}

func TestUserUnmarshalDocumentID(t *testing.T) {
	var u User
	if err := json.Unmarshal([]byte(`{"_id":"u1","name":"Ava","email":"a@x.com"}`), &u); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if u.ID != "u1" || u.Name != "Ava" || u.Email != "a@x.com" {
		t.Errorf("unexpected user: %+v", u)
	}
}

func TestShortID(t *testing.T) {
	if got := (Habit{ID: "64f0a1b2c3d4"}).ShortID(); got != "b2c3d4" {
		t.Errorf("ShortID() = %q, want %q", got, "b2c3d4")
	}
	if got := (Habit{ID: "h1"}).ShortID(); got != "h1" {
		t.Errorf("ShortID() = %q, want %q", got, "h1")
	}
}

func TestStatsCloneIsDeep(t *testing.T) {
	orig := &DashboardStats{
		TotalHabits:    2,
		WeeklyProgress: []DayProgress{{Date: "2026-10-18", Completed: 1, Total: 2}},
	}
	c := orig.Clone()
	c.WeeklyProgress[0].Completed = 2
	if orig.WeeklyProgress[0].Completed != 1 {
		t.Error("Clone() shares WeeklyProgress backing array with the original")
	}

	var nilStats *DashboardStats
	if nilStats.Clone() != nil {
		t.Error("Clone() of nil stats should be nil")
	}
}

func TestCloneHabits(t *testing.T) {
	if CloneHabits(nil) != nil {
		t.Error("CloneHabits(nil) should be nil")
	}
	orig := []Habit{{ID: "h1", Title: "Read"}}
	c := CloneHabits(orig)
	c[0].Title = "Write"
	if orig[0].Title != "Read" {
		t.Error("CloneHabits() shares backing array with the original")
	}
}
