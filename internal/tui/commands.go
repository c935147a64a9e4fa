package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/models"
)

type startupDoneMsg struct {
	route constants.Route
}

type authDoneMsg struct {
	route constants.Route
	err   error
}

type intentDoneMsg struct {
	err error
}

type notificationMsg struct {
	notification models.Notification
}

func (m Model) startup() tea.Cmd {
	ctrl := m.session
	return func() tea.Msg {
		return startupDoneMsg{route: ctrl.Startup(context.Background())}
	}
}

func (m Model) login(email, password string) tea.Cmd {
	ctrl := m.session
	return func() tea.Msg {
		route, err := ctrl.Login(context.Background(), email, password)
		return authDoneMsg{route: route, err: err}
	}
}

func (m Model) register(name, email, password string) tea.Cmd {
	ctrl := m.session
	return func() tea.Msg {
		route, err := ctrl.Register(context.Background(), name, email, password)
		return authDoneMsg{route: route, err: err}
	}
}

// intent runs a session call off the update loop. The caller counts it as busy.
func (m *Model) intent(call func(ctx context.Context) error) tea.Cmd {
	m.busy++
	return func() tea.Msg {
		return intentDoneMsg{err: call(context.Background())}
	}
}

// waitForNotification blocks until the notifier publishes a change
func (m Model) waitForNotification() tea.Cmd {
	ch := m.notesCh
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return notificationMsg{notification: n}
	}
}
