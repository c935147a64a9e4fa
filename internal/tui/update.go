package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitflow/internal/constants"
	apperrors "github.com/julianstephens/habitflow/internal/errors"
	"github.com/julianstephens/habitflow/internal/guard"
	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/tui/components/habits"
	"github.com/julianstephens/habitflow/internal/validation"
)

// chromeHeight is the space taken by the header, toast and help lines
const chromeHeight = 7

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.habitsModel.SetSize(msg.Width-4, msg.Height-chromeHeight)
		m.dashboardModel.SetSize(msg.Width-4, msg.Height-chromeHeight)
		if m.form != nil {
			m.form = m.form.WithWidth(msg.Width - 4)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case notificationMsg:
		m.toast = msg.notification
		m.sync()
		return m, m.waitForNotification()

	case startupDoneMsg:
		m.starting = false
		m.sync()
		return m, m.navigate(msg.route)

	case authDoneMsg:
		m.busy--
		if msg.err != nil {
			m.formError = apperrors.Message(msg.err)
			m.authForm.Password = ""
			m.form = NewAuthForm(m.authForm)
			return m, m.form.Init()
		}
		m.formError = ""
		m.authForm = nil
		m.form = nil
		m.sync()
		return m, m.navigate(msg.route)

	case intentDoneMsg:
		m.busy--
		m.sync()
		return m, nil

	case habits.AddHabitMsg:
		if m.busy > 0 {
			return m, nil
		}
		return m, m.openHabitForm(nil)

	case habits.EditHabitMsg:
		if m.busy > 0 {
			return m, nil
		}
		if h, ok := models.FindHabit(m.snapshot.Habits, msg.ID); ok {
			return m, m.openHabitForm(&h)
		}
		return m, nil

	case habits.DeleteHabitMsg:
		if m.busy > 0 {
			return m, nil
		}
		m.deleteID = msg.ID
		m.previousState = m.state
		m.state = constants.ViewConfirmDelete
		return m, nil

	case habits.CompleteHabitMsg:
		// writes run one at a time
		if m.busy > 0 {
			return m, nil
		}
		ctrl, id := m.session, msg.ID
		return m, m.intent(func(ctx context.Context) error {
			return ctrl.CompleteHabit(ctx, id)
		})
	}

	switch m.state {
	case constants.ViewAuth:
		return m.updateAuthForm(msg)
	case constants.ViewAddHabit, constants.ViewEditHabit:
		return m.updateHabitForm(msg)
	case constants.ViewConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok && !m.habitsModel.Filtering() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

		switch m.state {
		case constants.ViewLanding:
			if m.starting {
				return m, nil
			}
			switch {
			case key.Matches(msg, m.keys.Login):
				return m, m.openAuthForm(false)
			case key.Matches(msg, m.keys.Register):
				return m, m.openAuthForm(true)
			}
			return m, nil

		case constants.ViewDashboard, constants.ViewHabits:
			switch {
			case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.ShiftTab):
				next := constants.RouteHabits
				if m.state == constants.ViewHabits {
					next = constants.RouteDashboard
				}
				return m, m.navigate(next)
			case key.Matches(msg, m.keys.Refresh):
				if m.busy > 0 {
					return m, nil
				}
				return m, m.intent(m.session.Refresh)
			case key.Matches(msg, m.keys.Logout):
				route := m.session.Logout()
				m.sync()
				return m, m.navigate(route)
			}
		}
	}

	if m.state == constants.ViewHabits {
		var cmd tea.Cmd
		m.habitsModel, cmd = m.habitsModel.Update(msg)
		return m, cmd
	}
	return m, nil
}

// navigate moves to the view for route once the guard allows it
func (m *Model) navigate(route constants.Route) tea.Cmd {
	switch guard.Check(route, m.snapshot.User, m.session.Credentials()) {
	case constants.RouteDashboard:
		m.state = constants.ViewDashboard
	case constants.RouteHabits:
		m.state = constants.ViewHabits
	case constants.RouteAuth:
		return m.openAuthForm(false)
	default:
		m.state = constants.ViewLanding
	}
	return nil
}

func (m *Model) openAuthForm(register bool) tea.Cmd {
	m.authForm = &AuthFormModel{Register: register}
	m.form = NewAuthForm(m.authForm)
	m.formError = ""
	m.previousState = constants.ViewLanding
	m.state = constants.ViewAuth
	return m.form.Init()
}

func (m *Model) openHabitForm(h *models.Habit) tea.Cmd {
	m.habitForm = &HabitFormModel{}
	m.state = constants.ViewAddHabit
	m.editingID = ""
	if h != nil {
		m.habitForm.Title = h.Title
		m.habitForm.Description = h.Description
		m.editingID = h.ID
		m.state = constants.ViewEditHabit
	}
	m.form = NewHabitForm(m.habitForm)
	m.formError = ""
	return m.form.Init()
}

func (m Model) updateAuthForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		if km.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		// the request is already out; wait for it
		if m.busy > 0 {
			return m, nil
		}
		if km.Type == tea.KeyEsc {
			m.closeForm(m.previousState)
			return m, nil
		}
	}
	if m.busy > 0 {
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		fm := m.authForm
		m.busy++
		m.formError = ""
		if fm.Register {
			cmds = append(cmds, m.register(strings.TrimSpace(fm.Name), strings.TrimSpace(fm.Email), fm.Password))
		} else {
			cmds = append(cmds, m.login(strings.TrimSpace(fm.Email), fm.Password))
		}
	case huh.StateAborted:
		m.closeForm(m.previousState)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateHabitForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.Type == tea.KeyEsc {
		m.closeForm(constants.ViewHabits)
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		in, err := validation.HabitInput(m.habitForm.Title, m.habitForm.Description)
		if err != nil {
			// stay in the form so the input can be corrected
			m.formError = apperrors.Message(err)
			m.form = NewHabitForm(m.habitForm)
			return m, m.form.Init()
		}

		ctrl, id := m.session, m.editingID
		if m.state == constants.ViewEditHabit {
			cmds = append(cmds, m.intent(func(ctx context.Context) error {
				return ctrl.UpdateHabit(ctx, id, in)
			}))
		} else {
			cmds = append(cmds, m.intent(func(ctx context.Context) error {
				return ctrl.CreateHabit(ctx, in)
			}))
		}
		m.closeForm(constants.ViewHabits)
	case huh.StateAborted:
		m.closeForm(constants.ViewHabits)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch km.String() {
	case "y", "Y":
		ctrl, id := m.session, m.deleteID
		m.deleteID = ""
		m.state = m.previousState
		return m, m.intent(func(ctx context.Context) error {
			return ctrl.DeleteHabit(ctx, id)
		})
	case "n", "N", "esc", "q":
		m.deleteID = ""
		m.state = m.previousState
	}
	return m, nil
}

func (m *Model) closeForm(next constants.ViewState) {
	m.form = nil
	m.authForm = nil
	m.habitForm = nil
	m.editingID = ""
	m.formError = ""
	m.state = next
}
