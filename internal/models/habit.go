package models

import (
	"encoding/json"
	"time"
)

// Habit is a habit as listed by the remote API. Soft-deleted habits never
// appear in listings, so the client has no deleted flag.
type Habit struct {
	ID             string    `json:"_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"createdAt"`
	CompletedToday bool      `json:"completedToday"`
}

// UnmarshalJSON accepts both "_id" and "id".
func (h *Habit) UnmarshalJSON(data []byte) error {
	type alias Habit
	var raw struct {
		alias
		PlainID string `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*h = Habit(raw.alias)
	if h.ID == "" {
		h.ID = raw.PlainID
	}
	return nil
}

// HabitInput is the body of create and update requests
type HabitInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ShortID returns the last six characters of the id, as shown next to a habit.
func (h Habit) ShortID() string {
	if len(h.ID) <= 6 {
		return h.ID
	}
	return h.ID[len(h.ID)-6:]
}

// CloneHabits returns a copy of the slice. Habit has no reference fields, so a
// shallow element copy is a deep copy.
func CloneHabits(habits []Habit) []Habit {
	if habits == nil {
		return nil
	}
	out := make([]Habit, len(habits))
	copy(out, habits)
	return out
}

// FindHabit returns the habit with the given id
func FindHabit(habits []Habit, id string) (Habit, bool) {
	for _, h := range habits {
		if h.ID == id {
			return h, true
		}
	}
	return Habit{}, false
}
