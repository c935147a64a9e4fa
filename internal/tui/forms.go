package tui

import (
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/validation"
)

// NewAuthForm creates the login form, or the registration form when
// fm.Register is set
func NewAuthForm(fm *AuthFormModel) *huh.Form {
	var fields []huh.Field
	if fm.Register {
		fields = append(fields,
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(validation.Name),
		)
	}
	fields = append(fields,
		huh.NewInput().
			Title("Email").
			Value(&fm.Email).
			Validate(validation.Email),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&fm.Password).
			Validate(validation.Password),
	)

	title := "Log in"
	if fm.Register {
		title = "Create an account"
	}
	return huh.NewForm(
		huh.NewGroup(fields...).Title(title),
	).WithTheme(huh.ThemeDracula())
}

// NewHabitForm creates the form for adding or editing a habit
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				CharLimit(constants.MaxHabitTitleLen).
				Value(&fm.Title).
				Validate(validation.HabitTitle),
			huh.NewText().
				Title("Description").
				Description("Optional").
				CharLimit(constants.MaxHabitDescriptionLen).
				Value(&fm.Description).
				Validate(validation.HabitDescription),
		),
	).WithTheme(huh.ThemeDracula())
}
