package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.ViewLanding:
		content = m.viewLanding()
	case constants.ViewAuth:
		content = m.viewForm()
	case constants.ViewDashboard:
		content = docStyle.Render(m.dashboardModel.View())
	case constants.ViewHabits:
		content = docStyle.Render(m.habitsModel.View())
	case constants.ViewAddHabit, constants.ViewEditHabit:
		content = m.viewForm()
	case constants.ViewConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		content,
		m.viewToast(),
		m.help.View(m),
	)
}

func (m Model) viewHeader() string {
	left := titleStyle.Render(constants.AppName)
	if m.loading() {
		left += " " + m.spinner.View()
	}
	if !m.snapshot.Authenticated() || m.snapshot.User == nil {
		return left
	}

	var tabs []string
	for _, t := range []struct {
		title string
		state constants.ViewState
	}{
		{"Dashboard", constants.ViewDashboard},
		{"Habits", constants.ViewHabits},
	} {
		if m.state == t.state {
			tabs = append(tabs, activeTabStyle.Render(t.title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(t.title))
		}
	}

	user := m.snapshot.User
	greeting := mutedStyle.Render(fmt.Sprintf("%s, %s", Greeting(m.now()), user.Name))
	return lipgloss.JoinHorizontal(lipgloss.Center,
		left, "  ",
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...), "  ",
		greeting, " ",
		avatarStyle.Render(Initials(user.Name)),
	)
}

func (m Model) viewLanding() string {
	body := []string{
		titleStyle.Render("Build better habits, one day at a time."),
		"",
		"Track daily habits, keep your streaks going",
		"and see your week at a glance.",
		"",
	}
	if m.starting {
		body = append(body, m.spinner.View()+" Restoring session...")
	} else {
		body = append(body, "[l] Log in", "[s] Sign up")
	}
	return lipgloss.Place(m.width, m.height-chromeHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, body...),
	)
}

func (m Model) viewForm() string {
	if m.state == constants.ViewAuth && m.busy > 0 {
		label := "Signing in..."
		if m.authForm != nil && m.authForm.Register {
			label = "Creating account..."
		}
		return docStyle.Render(m.spinner.View() + " " + label)
	}
	if m.form == nil {
		return ""
	}

	out := m.form.View()
	if m.formError != "" {
		out = lipgloss.JoinVertical(lipgloss.Left, formErrorStyle.Render(m.formError), "", out)
	}
	return docStyle.Render(out)
}

func (m Model) viewConfirmDelete() string {
	title := "this habit"
	if h, ok := models.FindHabit(m.snapshot.Habits, m.deleteID); ok {
		title = fmt.Sprintf("%q", h.Title)
	}
	return lipgloss.Place(m.width, m.height-chromeHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Are you sure you want to delete %s?", title)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewToast() string {
	if !m.toast.Visible {
		return ""
	}
	if m.toast.IsError() {
		return toastErrorStyle.Render(m.toast.Message)
	}
	return toastInfoStyle.Render(m.toast.Message)
}
