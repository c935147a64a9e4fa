package models

import "encoding/json"

// User is the identity returned by the auth endpoints
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UnmarshalJSON accepts both "id" and the document-store style "_id".
func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	var raw struct {
		alias
		DocID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*u = User(raw.alias)
	if u.ID == "" {
		u.ID = raw.DocID
	}
	return nil
}

// Clone returns a copy of the user, or nil for a nil receiver
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
