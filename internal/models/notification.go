package models

import "github.com/julianstephens/habitflow/internal/constants"

// Notification is the single transient message shown to the user
type Notification struct {
	ID       uint64             `json:"id"`
	Message  string             `json:"message"`
	Severity constants.Severity `json:"severity"`
	Visible  bool               `json:"visible"`
}

// IsError reports whether the notification has error severity
func (n Notification) IsError() bool {
	return n.Severity == constants.SeverityError
}
