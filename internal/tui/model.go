package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/notifier"
	"github.com/julianstephens/habitflow/internal/session"
	"github.com/julianstephens/habitflow/internal/tui/components/dashboard"
	"github.com/julianstephens/habitflow/internal/tui/components/habits"
)

type AuthFormModel struct {
	Register bool
	Name     string
	Email    string
	Password string
}

type HabitFormModel struct {
	Title       string
	Description string
}

type Model struct {
	session        *session.Controller
	notes          *notifier.Center
	notesCh        <-chan models.Notification
	state          constants.ViewState
	previousState  constants.ViewState
	keys           KeyMap
	help           help.Model
	spinner        spinner.Model
	habitsModel    habits.Model
	dashboardModel dashboard.Model
	form           *huh.Form
	authForm       *AuthFormModel
	habitForm      *HabitFormModel
	snapshot       session.Snapshot
	toast          models.Notification
	editingID      string
	deleteID       string
	formError      string
	starting       bool
	busy           int // intents in flight
	quitting       bool
	width          int
	height         int
	now            func() time.Time
}

func NewModel(ctrl *session.Controller, notes *notifier.Center) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ch, _ := notes.Subscribe()

	return Model{
		session:        ctrl,
		notes:          notes,
		notesCh:        ch,
		state:          constants.ViewLanding,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		spinner:        sp,
		habitsModel:    habits.New(nil, 0, 0),
		dashboardModel: dashboard.New(0, 0),
		snapshot:       ctrl.Snapshot(),
		starting:       true,
		now:            time.Now,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startup(), m.waitForNotification())
}

// loading reports whether anything is in flight
func (m Model) loading() bool {
	return m.starting || m.busy > 0 || m.snapshot.Loading
}

// sync copies fresh session state into the view components
func (m *Model) sync() {
	m.snapshot = m.session.Snapshot()
	m.habitsModel.SetHabits(m.snapshot.Habits)
	m.dashboardModel.SetStats(m.snapshot.Stats)
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.ViewLanding:
		keys = append(keys, m.keys.Login, m.keys.Register)
	case constants.ViewDashboard:
		keys = append(keys, m.keys.Tab, m.keys.Refresh, m.keys.Logout)
	case constants.ViewHabits:
		keys = append(keys, m.keys.Tab, m.keys.Add, m.keys.Edit, m.keys.Delete, m.keys.Complete, m.keys.Refresh, m.keys.Logout)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case constants.ViewLanding:
		actions = []key.Binding{m.keys.Login, m.keys.Register}
	case constants.ViewDashboard:
		actions = []key.Binding{m.keys.Refresh, m.keys.Logout}
	case constants.ViewHabits:
		actions = []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Delete, m.keys.Complete, m.keys.Refresh, m.keys.Logout}
	}

	return [][]key.Binding{global, navigation, actions}
}
