package constants

import "time"

// SessionPhase represents where the session controller is in its lifecycle
type SessionPhase int

// Route identifies a view the presentation layer should navigate to
type Route string

// Severity represents the severity of a notification
type Severity string

// CredentialBackend selects where the bearer token is persisted
type CredentialBackend string

// ViewState represents the current view of the TUI application
type ViewState int

const (
	AppName            = "habitflow"
	DefaultKeyringUser = "habit_jwt"
	CredentialName     = "habit_jwt"
	DefaultConfigDir   = "~/.config/habitflow"
	ConfigFileName     = "config.yaml"
	CredentialsDBName  = "credentials.db"
	LogFileName        = "habitflow.log"
	Version            = "v0.3.0"

	// DateFormat is the date format used by the remote API (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// API configuration
	APIURLEnvVar     = "HABITFLOW_API_URL"
	DefaultAPIOrigin = "http://localhost:3000"
	RequestIDHeader  = "X-Request-ID"

	// Endpoints
	EndpointRegister  = "/api/auth/register"
	EndpointLogin     = "/api/auth/login"
	EndpointMe        = "/api/auth/me"
	EndpointHabits    = "/api/habits"
	EndpointDashboard = "/api/dashboard"

	// Notification constants
	NotificationDuration = 3200 * time.Millisecond

	// Habit field limits
	MaxHabitTitleLen       = 100
	MaxHabitDescriptionLen = 500
	MinPasswordLen         = 6
	WeeklyProgressDays     = 7

	// Notification severities
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"

	// Routes
	RoutePublic    Route = "/"
	RouteAuth      Route = "/auth"
	RouteDashboard Route = "/dashboard"
	RouteHabits    Route = "/habits"

	// Credential backends
	BackendAuto    CredentialBackend = "auto"
	BackendKeyring CredentialBackend = "keyring"
	BackendSQLite  CredentialBackend = "sqlite"
	BackendMemory  CredentialBackend = "memory"
)

const (
	// Session phases
	PhaseAnonymous SessionPhase = iota
	PhaseRestoring
	PhaseAuthenticating
	PhaseAuthenticated
)

const (
	// Views
	ViewLanding ViewState = iota
	ViewAuth
	ViewDashboard
	ViewHabits
	ViewAddHabit
	ViewEditHabit
	ViewConfirmDelete
)

func (p SessionPhase) String() string {
	switch p {
	case PhaseAnonymous:
		return "anonymous"
	case PhaseRestoring:
		return "restoring"
	case PhaseAuthenticating:
		return "authenticating"
	case PhaseAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}
