package habits

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/habitflow/internal/cli"
	"github.com/julianstephens/habitflow/internal/config"
	apperrors "github.com/julianstephens/habitflow/internal/errors"
	"github.com/julianstephens/habitflow/internal/fakeapi"
	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/storage"
)

type harness struct {
	ctx *cli.Context
	srv *fakeapi.Server
	out *bytes.Buffer
	err *bytes.Buffer
}

func newHarness(t *testing.T, token string) *harness {
	t.Helper()
	srv := fakeapi.New()
	t.Cleanup(srv.Close)
	srv.SeedUser("Ava", "a@x.com", "secret1", "t1")

	ctx := cli.NewContext(&config.Config{APIURL: srv.URL, ConfigDir: t.TempDir()}, storage.NewMemoryStore(token))
	h := &harness{ctx: ctx, srv: srv, out: &bytes.Buffer{}, err: &bytes.Buffer{}}
	ctx.Out, ctx.Err = h.out, h.err
	ctx.Confirm = func(title string) (bool, error) {
		t.Fatalf("unexpected confirmation %q", title)
		return false, nil
	}
	return h
}

func TestListRequiresSession(t *testing.T) {
	h := newHarness(t, "")

	err := (&HabitListCmd{}).Run(h.ctx)
	if !errors.Is(err, cli.ErrNotLoggedIn) {
		t.Fatalf("Run() error = %v, want ErrNotLoggedIn", err)
	}
	if n := len(h.srv.Requests()); n != 0 {
		t.Errorf("made %d requests without a credential", n)
	}
}

func TestListReportsFailedFetch(t *testing.T) {
	h := newHarness(t, "t1")
	h.srv.SeedHabit("t1", "Read", "")
	h.srv.Fail("GET /api/habits", 500, `{"message":"Database down"}`)

	err := (&HabitListCmd{}).Run(h.ctx)
	if got := apperrors.Message(err); got != "Database down" {
		t.Fatalf("Run() error = %v, want the server message", err)
	}
	if h.out.Len() != 0 {
		t.Errorf("failed list printed %q", h.out.String())
	}
}

func TestCompleteReportsFailedFetch(t *testing.T) {
	h := newHarness(t, "t1")
	habit := h.srv.SeedHabit("t1", "Read", "")
	h.srv.Fail("GET /api/habits", 500, `{"message":"Database down"}`)

	err := (&HabitCompleteCmd{ID: habit.ID}).Run(h.ctx)
	if got := apperrors.Message(err); got != "Database down" {
		t.Fatalf("Run() error = %v, want the server message", err)
	}
	if n := h.srv.Count("POST /api/habits/" + habit.ID + "/complete"); n != 0 {
		t.Errorf("complete requests = %d, want 0", n)
	}
}

func TestAddThenList(t *testing.T) {
	h := newHarness(t, "t1")

	if err := (&HabitAddCmd{Title: "  Read  ", Description: "20 pages"}).Run(h.ctx); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := h.out.String(); got != "Habit created.\n" {
		t.Errorf("add output = %q", got)
	}

	h.out.Reset()
	if err := (&HabitListCmd{}).Run(h.ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	got := h.out.String()
	if !strings.Contains(got, "Read") || !strings.Contains(got, "20 pages") {
		t.Errorf("list output missing habit:\n%s", got)
	}
	if strings.Contains(got, "  Read  ") {
		t.Error("title was not trimmed before sending")
	}
}

func TestAddRejectsEmptyTitle(t *testing.T) {
	h := newHarness(t, "t1")

	err := (&HabitAddCmd{Title: "   "}).Run(h.ctx)
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if n := h.srv.Count("POST /api/habits"); n != 0 {
		t.Errorf("create requests = %d, want 0", n)
	}
}

func TestEditKeepsUnchangedFields(t *testing.T) {
	h := newHarness(t, "t1")
	habit := h.srv.SeedHabit("t1", "Run", "5k")

	title := "Run far"
	if err := (&HabitEditCmd{ID: habit.ID, Title: &title}).Run(h.ctx); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if !strings.Contains(h.out.String(), "Habit updated.") {
		t.Errorf("output = %q", h.out.String())
	}

	got, ok := models.FindHabit(h.ctx.Session.Snapshot().Habits, habit.ID)
	if !ok {
		t.Fatal("habit missing after edit")
	}
	if got.Title != "Run far" || got.Description != "5k" {
		t.Errorf("habit = %+v", got)
	}
}

func TestEditNeedsAChange(t *testing.T) {
	h := newHarness(t, "t1")
	if err := (&HabitEditCmd{ID: "h2"}).Run(h.ctx); err == nil {
		t.Fatal("expected an error when nothing changes")
	}
}

func TestDeleteAsksFirst(t *testing.T) {
	h := newHarness(t, "t1")
	habit := h.srv.SeedHabit("t1", "Stretch", "")
	route := "DELETE /api/habits/" + habit.ID

	var asked string
	h.ctx.Confirm = func(title string) (bool, error) {
		asked = title
		return false, nil
	}
	if err := (&HabitDeleteCmd{ID: habit.ID}).Run(h.ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !strings.Contains(asked, "Stretch") {
		t.Errorf("confirmation = %q, want the habit title", asked)
	}
	if h.srv.Count(route) != 0 {
		t.Error("declined delete still reached the server")
	}
	if !strings.Contains(h.out.String(), "Cancelled.") {
		t.Errorf("output = %q", h.out.String())
	}

	h.out.Reset()
	h.ctx.Confirm = func(string) (bool, error) { return true, nil }
	if err := (&HabitDeleteCmd{ID: habit.ID}).Run(h.ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if h.srv.Count(route) != 1 {
		t.Errorf("delete requests = %d, want 1", h.srv.Count(route))
	}
	if h.out.String() != "Habit deleted.\n" {
		t.Errorf("output = %q", h.out.String())
	}
	if len(h.ctx.Session.Snapshot().Habits) != 0 {
		t.Error("deleted habit still listed")
	}
}

func TestDeleteWithYesSkipsPrompt(t *testing.T) {
	h := newHarness(t, "t1")
	habit := h.srv.SeedHabit("t1", "Stretch", "")

	if err := (&HabitDeleteCmd{ID: habit.ID, Yes: true}).Run(h.ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if h.out.String() != "Habit deleted.\n" {
		t.Errorf("output = %q", h.out.String())
	}
}

func TestCompleteOncePerDay(t *testing.T) {
	h := newHarness(t, "t1")
	habit := h.srv.SeedHabit("t1", "Meditate", "")
	route := "POST /api/habits/" + habit.ID + "/complete"

	if err := (&HabitCompleteCmd{ID: habit.ID}).Run(h.ctx); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if h.out.String() != "Habit marked as completed for today.\n" {
		t.Errorf("output = %q", h.out.String())
	}

	err := (&HabitCompleteCmd{ID: habit.ID}).Run(h.ctx)
	if err == nil || !strings.Contains(err.Error(), "already completed today") {
		t.Fatalf("second complete error = %v", err)
	}
	if h.srv.Count(route) != 1 {
		t.Errorf("complete requests = %d, want 1", h.srv.Count(route))
	}

	err = (&HabitCompleteCmd{ID: habit.ID, Force: true}).Run(h.ctx)
	if got := apperrors.Message(err); got != "Habit already completed today" {
		t.Errorf("forced complete message = %q", got)
	}
}

func TestResolve(t *testing.T) {
	habits := []models.Habit{
		{ID: "64f1a2b3c4d5e6f7a8b9c0d1", Title: "Read"},
		{ID: "64f1a2b3c4d5e6f7a8b9c0e1", Title: "Run"},
		{ID: "64f1a2b3c4d5e6f7a8b9ffff", Title: "Walk"},
	}

	tests := []struct {
		name    string
		id      string
		want    string
		wantErr bool
	}{
		{"full id", "64f1a2b3c4d5e6f7a8b9c0d1", "Read", false},
		{"short id", "b9ffff", "Walk", false},
		{"padded", "  c0e1 ", "Run", false},
		{"ambiguous suffix", "1", "", true},
		{"unknown", "zzzz", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(habits, tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Resolve(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if !tt.wantErr && got.Title != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.id, got.Title, tt.want)
			}
		})
	}
}
