// Package session owns the signed-in user's identity, habits and dashboard
// statistics, and keeps them in step with the remote API.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/julianstephens/habitflow/internal/api"
	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/logger"
	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/storage"
)

// ErrNotAuthenticated is returned by intents that need a signed-in session
var ErrNotAuthenticated = errors.New("not logged in")

// API is the subset of the remote API the controller drives
type API interface {
	Register(ctx context.Context, name, email, password string) (api.AuthResult, error)
	Login(ctx context.Context, email, password string) (api.AuthResult, error)
	FetchIdentity(ctx context.Context) (models.User, error)
	ListHabits(ctx context.Context) ([]models.Habit, error)
	CreateHabit(ctx context.Context, in models.HabitInput) (models.Habit, error)
	UpdateHabit(ctx context.Context, id string, in models.HabitInput) (models.Habit, error)
	DeleteHabit(ctx context.Context, id string) error
	CompleteHabit(ctx context.Context, id string) (models.Habit, error)
	FetchDashboard(ctx context.Context) (*models.DashboardStats, error)
}

// Notifier receives the outcome of every intent
type Notifier interface {
	Notify(message string, severity constants.Severity) uint64
}

// Snapshot is a read-only copy of the session state
type Snapshot struct {
	Phase   constants.SessionPhase
	User    *models.User
	Habits  []models.Habit
	Stats   *models.DashboardStats
	Loading bool
	Epoch   uint64

	// HabitsErr and StatsErr hold the failure of the latest fetch of each
	// slice; nil once a fetch succeeds.
	HabitsErr error
	StatsErr  error
}

// Authenticated reports whether the snapshot has a loaded identity
func (s Snapshot) Authenticated() bool {
	return s.Phase == constants.PhaseAuthenticated && s.User != nil
}

// Controller is the session state machine. All methods are safe for
// concurrent use; state is only ever handed out as copies.
type Controller struct {
	api   API
	creds storage.CredentialStore
	notes Notifier

	mu     sync.Mutex
	phase  constants.SessionPhase
	user   *models.User
	habits []models.Habit
	stats  *models.DashboardStats

	habitsErr, statsErr error

	// epoch changes whenever the identity behind the session changes.
	// Responses that started under an older epoch are discarded.
	epoch    uint64
	inflight int

	// fetch tickets per slice, so a slow older fetch never overwrites a newer one
	habitsIssued, habitsApplied uint64
	statsIssued, statsApplied   uint64
}

// New creates an anonymous controller
func New(client API, creds storage.CredentialStore, notes Notifier) *Controller {
	return &Controller{
		api:   client,
		creds: creds,
		notes: notes,
		phase: constants.PhaseAnonymous,
	}
}

// Credentials returns the store the controller persists the token in
func (c *Controller) Credentials() storage.CredentialStore {
	return c.creds
}

// Snapshot returns a deep copy of the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Phase:     c.phase,
		User:      c.user.Clone(),
		Habits:    models.CloneHabits(c.habits),
		Stats:     c.stats.Clone(),
		Loading:   c.inflight > 0,
		Epoch:     c.epoch,
		HabitsErr: c.habitsErr,
		StatsErr:  c.statsErr,
	}
}

// Phase returns the current lifecycle phase
func (c *Controller) Phase() constants.SessionPhase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Startup restores a persisted session. Without a stored token it returns
// immediately. A token the server rejects is cleared without notifying.
func (c *Controller) Startup(ctx context.Context) constants.Route {
	if !storage.HasToken(c.creds) {
		logger.Debug("No stored credential, staying anonymous")
		return constants.RoutePublic
	}

	c.mu.Lock()
	c.phase = constants.PhaseRestoring
	epoch := c.epoch
	c.mu.Unlock()

	logger.Info("Restoring session")
	user, err := c.api.FetchIdentity(ctx)

	c.mu.Lock()
	if c.epoch != epoch {
		// a login or logout finished while the identity was in flight
		c.mu.Unlock()
		logger.Debug("Discarding identity from an outdated session")
		return c.route()
	}
	if err != nil {
		// cleared under the lock so a concurrent login's token is never wiped
		c.resetLocked()
		c.creds.Set("")
		c.mu.Unlock()
		logger.Info("Stored credential rejected, signed out", "error", err)
		return constants.RoutePublic
	}
	c.user = &user
	c.phase = constants.PhaseAuthenticated
	c.mu.Unlock()

	logger.Info("Session restored", "user_id", user.ID)
	_ = c.refreshAll(ctx, epoch)
	return constants.RouteDashboard
}

func (c *Controller) route() constants.Route {
	if c.Phase() == constants.PhaseAuthenticated {
		return constants.RouteDashboard
	}
	return constants.RoutePublic
}

// resetLocked drops all session state and starts a new epoch
func (c *Controller) resetLocked() {
	c.epoch++
	c.phase = constants.PhaseAnonymous
	c.user = nil
	c.habits = nil
	c.stats = nil
	c.habitsErr = nil
	c.statsErr = nil
	c.inflight = 0
}

// live reports whether epoch is still the current one
func (c *Controller) live(epoch uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch == epoch
}

// authorized returns the current epoch, or false when no user is signed in
func (c *Controller) authorized() (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch, c.phase == constants.PhaseAuthenticated && c.user != nil
}

func (c *Controller) info(msg string) {
	c.notes.Notify(msg, constants.SeverityInfo)
}

func (c *Controller) fail(err error) {
	c.notes.Notify(message(err), constants.SeverityError)
}
