package fakeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/models"
)

func withUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxUserKey{}, userID)
}

func userFrom(r *http.Request) string {
	id, _ := r.Context().Value(ctxUserKey{}).(string)
	return id
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.Name == "" || body.Email == "" || len(body.Password) < constants.MinPasswordLen {
		writeMessage(w, http.StatusBadRequest, "Please provide name, email and a password of at least 6 characters")
		return
	}

	s.mu.Lock()
	if _, exists := s.accounts[body.Email]; exists {
		s.mu.Unlock()
		writeMessage(w, http.StatusConflict, "Email already registered")
		return
	}
	s.nextID++
	u := models.User{ID: fmt.Sprintf("u%d", s.nextID), Name: body.Name, Email: body.Email}
	s.accounts[body.Email] = &account{user: u, password: body.Password}
	token := s.issueToken(u.ID)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]interface{}{"user": u, "token": token})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	acct, ok := s.accounts[body.Email]
	if !ok || acct.password != body.Password {
		s.mu.Unlock()
		writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	token := s.tokenFor(acct.user.ID)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": acct.user, "token": token})
}

// tokenFor returns an existing token for the user, issuing one if needed. Caller holds mu.
func (s *Server) tokenFor(userID string) string {
	for tok, id := range s.tokens {
		if id == userID {
			return tok
		}
	}
	return s.issueToken(userID)
}

func (s *Server) issueToken(userID string) string {
	s.nextID++
	tok := fmt.Sprintf("tok-%d", s.nextID)
	s.tokens[tok] = userID
	return tok
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	userID := userFrom(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acct := range s.accounts {
		if acct.user.ID == userID {
			writeJSON(w, http.StatusOK, map[string]interface{}{"user": acct.user})
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "User not found")
}

func (s *Server) listHabits(w http.ResponseWriter, r *http.Request) {
	userID := userFrom(r)
	s.mu.Lock()
	list := make([]models.Habit, 0)
	for _, h := range s.visible(userID) {
		list = append(list, s.view(h))
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]interface{}{"habits": list})
}

func decodeHabitInput(r *http.Request) (models.HabitInput, string) {
	var in models.HabitInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return in, "Invalid request body"
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return in, "Title is required"
	}
	if len([]rune(in.Title)) > constants.MaxHabitTitleLen {
		return in, "Title must be at most 100 characters"
	}
	if len([]rune(in.Description)) > constants.MaxHabitDescriptionLen {
		return in, "Description must be at most 500 characters"
	}
	return in, ""
}

func (s *Server) createHabit(w http.ResponseWriter, r *http.Request) {
	in, problem := decodeHabitInput(r)
	if problem != "" {
		writeMessage(w, http.StatusBadRequest, problem)
		return
	}
	s.mu.Lock()
	h := s.addHabit(userFrom(r), in)
	out := s.view(h)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, out)
}

// addHabit stores a new habit. Caller holds mu.
func (s *Server) addHabit(owner string, in models.HabitInput) *habit {
	s.nextID++
	h := &habit{
		Habit: models.Habit{
			ID:          fmt.Sprintf("h%d", s.nextID),
			Title:       in.Title,
			Description: in.Description,
			CreatedAt:   s.Now().UTC(),
		},
		owner:       owner,
		completions: make(map[string]bool),
	}
	s.habits = append(s.habits, h)
	return h
}

func (s *Server) updateHabit(w http.ResponseWriter, r *http.Request) {
	in, problem := decodeHabitInput(r)
	if problem != "" {
		writeMessage(w, http.StatusBadRequest, problem)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.find(userFrom(r), chi.URLParam(r, "id"))
	if h == nil {
		writeMessage(w, http.StatusNotFound, "Habit not found")
		return
	}
	h.Title = in.Title
	h.Description = in.Description
	writeJSON(w, http.StatusOK, s.view(h))
}

func (s *Server) deleteHabit(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.find(userFrom(r), chi.URLParam(r, "id"))
	if h == nil {
		writeMessage(w, http.StatusNotFound, "Habit not found")
		return
	}
	h.deleted = true
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) completeHabit(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.find(userFrom(r), chi.URLParam(r, "id"))
	if h == nil {
		writeMessage(w, http.StatusNotFound, "Habit not found")
		return
	}
	today := s.Now().Format(constants.DateFormat)
	if h.completions[today] {
		writeMessage(w, http.StatusBadRequest, "Habit already completed today")
		return
	}
	h.completions[today] = true
	writeJSON(w, http.StatusOK, s.view(h))
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	stats := s.computeStats(userFrom(r))
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]interface{}{"stats": stats})
}

// find returns a visible habit of owner. Caller holds mu.
func (s *Server) find(owner, id string) *habit {
	for _, h := range s.visible(owner) {
		if h.ID == id {
			return h
		}
	}
	return nil
}

// visible returns owner's habits that are not soft-deleted. Caller holds mu.
func (s *Server) visible(owner string) []*habit {
	var out []*habit
	for _, h := range s.habits {
		if h.owner == owner && !h.deleted {
			out = append(out, h)
		}
	}
	return out
}

// view renders a habit with completedToday evaluated now. Caller holds mu.
func (s *Server) view(h *habit) models.Habit {
	out := h.Habit
	out.CompletedToday = h.completions[s.Now().Format(constants.DateFormat)]
	return out
}

// computeStats derives the dashboard the way the real service does: a day
// counts toward a streak when at least one habit was completed on it, and
// soft-deleted habits keep their historical completions. Caller holds mu.
func (s *Server) computeStats(owner string) models.DashboardStats {
	now := s.Now()
	today := now.Format(constants.DateFormat)
	active := s.visible(owner)

	days := make(map[string]int)
	total := 0
	for _, h := range s.habits {
		if h.owner != owner {
			continue
		}
		for day, done := range h.completions {
			if done {
				days[day]++
				total++
			}
		}
	}

	completedToday := 0
	for _, h := range active {
		if h.completions[today] {
			completedToday++
		}
	}

	pct := 0.0
	if len(active) > 0 {
		pct = math.Round(float64(completedToday) / float64(len(active)) * 100)
	}

	current := 0
	for d := now; days[d.Format(constants.DateFormat)] > 0; d = d.AddDate(0, 0, -1) {
		current++
	}

	longest := 0
	if len(days) > 0 {
		keys := make([]string, 0, len(days))
		for k := range days {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		run := 0
		var prev time.Time
		for i, k := range keys {
			d, _ := time.Parse(constants.DateFormat, k)
			if i > 0 && d.Sub(prev) == 24*time.Hour {
				run++
			} else {
				run = 1
			}
			if run > longest {
				longest = run
			}
			prev = d
		}
	}

	weekly := make([]models.DayProgress, 0, constants.WeeklyProgressDays)
	for i := constants.WeeklyProgressDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format(constants.DateFormat)
		done := 0
		for _, h := range active {
			if h.completions[day] {
				done++
			}
		}
		weekly = append(weekly, models.DayProgress{Date: day, Completed: done, Total: len(active)})
	}

	return models.DashboardStats{
		TotalHabits:               len(active),
		CompletedToday:            completedToday,
		CompletionPercentageToday: pct,
		CurrentStreak:             current,
		LongestStreak:             longest,
		TotalCompletions:          total,
		WeeklyProgress:            weekly,
	}
}
