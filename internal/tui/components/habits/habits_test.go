package habits

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitflow/internal/models"
)

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestCompleteDisabledWhenDoneToday(t *testing.T) {
	tests := []struct {
		name    string
		habit   models.Habit
		wantMsg bool
	}{
		{name: "open habit", habit: models.Habit{ID: "h1", Title: "Read"}, wantMsg: true},
		{name: "done today", habit: models.Habit{ID: "h1", Title: "Read", CompletedToday: true}, wantMsg: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New([]models.Habit{tt.habit}, 80, 20)
			_, cmd := m.Update(keyMsg('c'))

			var msg tea.Msg
			if cmd != nil {
				msg = cmd()
			}
			_, got := msg.(CompleteHabitMsg)
			if got != tt.wantMsg {
				t.Errorf("CompleteHabitMsg emitted = %v, want %v", got, tt.wantMsg)
			}
		})
	}
}

func TestActionKeys(t *testing.T) {
	m := New([]models.Habit{{ID: "h1", Title: "Read"}}, 80, 20)

	_, cmd := m.Update(keyMsg('d'))
	if msg, ok := cmd().(DeleteHabitMsg); !ok || msg.ID != "h1" {
		t.Errorf("d produced %#v", cmd())
	}

	_, cmd = m.Update(keyMsg('e'))
	if msg, ok := cmd().(EditHabitMsg); !ok || msg.ID != "h1" {
		t.Errorf("e produced %#v", cmd())
	}

	_, cmd = m.Update(keyMsg('a'))
	if _, ok := cmd().(AddHabitMsg); !ok {
		t.Errorf("a produced %#v", cmd())
	}
}

func TestSetHabitsKeepsCursorInRange(t *testing.T) {
	m := New([]models.Habit{{ID: "h1"}, {ID: "h2"}, {ID: "h3"}}, 80, 20)
	m.list.Select(2)

	m.SetHabits([]models.Habit{{ID: "h1"}})
	h, ok := m.Selected()
	if !ok || h.ID != "h1" {
		t.Errorf("Selected() = %+v, %v", h, ok)
	}

	m.SetHabits(nil)
	if _, ok := m.Selected(); ok {
		t.Error("Selected() ok with an empty list")
	}
}

func TestItemText(t *testing.T) {
	i := Item{Habit: models.Habit{Title: "Read", Description: "20 pages", CompletedToday: true}}
	if i.Title() != "✓ Read" {
		t.Errorf("Title() = %q", i.Title())
	}
	if i.Description() != "completed today · 20 pages" {
		t.Errorf("Description() = %q", i.Description())
	}
}
