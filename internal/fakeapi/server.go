// Package fakeapi is an in-process stand-in for the remote habit API, used by
// tests of the client, the session controller and the CLI.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/models"
)

// Request is one recorded call
type Request struct {
	Method string
	Path   string
	Auth   string
	Start  time.Time
	End    time.Time
}

// Route returns the "METHOD /path" key used for injection
func (r Request) Route() string {
	return r.Method + " " + r.Path
}

type failure struct {
	status int
	body   string
}

type account struct {
	user     models.User
	password string
}

type habit struct {
	models.Habit
	owner       string
	deleted     bool
	completions map[string]bool // day -> done
}

// Server is a fake habit API backed by in-memory state
type Server struct {
	*httptest.Server

	// Now returns the server's notion of the current time
	Now func() time.Time

	mu        sync.Mutex
	accounts  map[string]*account // email -> account
	tokens    map[string]string   // token -> user id
	habits    []*habit
	nextID    int
	requests  []Request
	failures  map[string]failure
	delays    map[string]time.Duration
	holds     map[string]chan struct{}
	barrier   *barrier
	barrierTO int
}

// New starts a fake API server. Call Close when done.
func New() *Server {
	s := &Server{
		Now:      time.Now,
		accounts: make(map[string]*account),
		tokens:   make(map[string]string),
		failures: make(map[string]failure),
		delays:   make(map[string]time.Duration),
		holds:    make(map[string]chan struct{}),
	}
	s.Server = httptest.NewServer(s.routes())
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.register)
		r.Post("/auth/login", s.login)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Get("/auth/me", s.me)
			r.Get("/habits", s.listHabits)
			r.Post("/habits", s.createHabit)
			r.Put("/habits/{id}", s.updateHabit)
			r.Delete("/habits/{id}", s.deleteHabit)
			r.Post("/habits/{id}/complete", s.completeHabit)
			r.Get("/dashboard", s.dashboard)
		})
	})
	return r
}

// SeedUser creates an account with a fixed token and returns the user
func (s *Server) SeedUser(name, email, password, token string) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	u := models.User{ID: fmt.Sprintf("u%d", s.nextID), Name: name, Email: email}
	s.accounts[email] = &account{user: u, password: password}
	if token != "" {
		s.tokens[token] = u.ID
	}
	return u
}

// SeedHabit creates a habit owned by the user holding token
func (s *Server) SeedHabit(token, title, description string) models.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addHabit(s.tokens[token], models.HabitInput{Title: title, Description: description}).Habit
}

// SeedCompletion records a completion for a habit on the given day
func (s *Server) SeedCompletion(id string, day time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.habits {
		if h.ID == id {
			h.completions[day.Format(constants.DateFormat)] = true
		}
	}
}

// RevokeToken makes token invalid, as an expired credential would be
func (s *Server) RevokeToken(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

// Fail makes every request to route ("METHOD /path") answer with status and a raw body
func (s *Server) Fail(route string, status int, body string) {
	s.mu.Lock()
	s.failures[route] = failure{status: status, body: body}
	s.mu.Unlock()
}

// Recover removes an injected failure
func (s *Server) Recover(route string) {
	s.mu.Lock()
	delete(s.failures, route)
	s.mu.Unlock()
}

// Delay makes requests to route wait before being handled
func (s *Server) Delay(route string, d time.Duration) {
	s.mu.Lock()
	s.delays[route] = d
	s.mu.Unlock()
}

// Hold makes requests to route block until the returned release func is called
func (s *Server) Hold(route string) (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.holds[route] = ch
	s.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.holds, route)
			s.mu.Unlock()
			close(ch)
		})
	}
}

// RequireConcurrent makes requests to the given routes wait until all of them
// have arrived. A request that waits longer than timeout proceeds and is
// counted by BarrierTimeouts.
func (s *Server) RequireConcurrent(timeout time.Duration, routes ...string) {
	s.mu.Lock()
	s.barrier = newBarrier(timeout, routes)
	s.mu.Unlock()
}

// BarrierTimeouts returns how many requests gave up waiting at the barrier
func (s *Server) BarrierTimeouts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.barrierTO
}

// Requests returns the recorded requests in arrival order
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Count returns how many requests hit route
func (s *Server) Count(route string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Route() == route {
			n++
		}
	}
	return n
}

// ResetRequests clears the request log
func (s *Server) ResetRequests() {
	s.mu.Lock()
	s.requests = nil
	s.mu.Unlock()
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.Method + " " + r.URL.Path
		req := Request{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization"), Start: time.Now()}

		s.mu.Lock()
		idx := len(s.requests)
		s.requests = append(s.requests, req)
		fail, failing := s.failures[route]
		delay := s.delays[route]
		hold := s.holds[route]
		b := s.barrier
		s.mu.Unlock()

		if b != nil && b.covers(route) {
			if !b.arrive(route) {
				s.mu.Lock()
				s.barrierTO++
				s.mu.Unlock()
			}
		}
		if delay > 0 {
			time.Sleep(delay)
		}
		if hold != nil {
			<-hold
		}

		if failing {
			w.WriteHeader(fail.status)
			_, _ = w.Write([]byte(fail.body))
		} else {
			next.ServeHTTP(w, r)
		}

		s.mu.Lock()
		if idx < len(s.requests) {
			s.requests[idx].End = time.Now()
		}
		s.mu.Unlock()
	})
}

type ctxUserKey struct{}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		userID, ok := s.tokens[token]
		s.mu.Unlock()
		if token == "" || !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Not authorized, token failed"})
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), userID)))
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
