package types

import "time"

// User is a loaded view of one user record. Users carry neither roles
// nor custom fields, so User deliberately implements only Record.
type User struct {
	ID           string // UUID v7, generated on creation.
	Name         string
	EmailAddress string
	RealName     string
	IsDisabled   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

var _ Record = (*User)(nil)

func (u *User) RecordType() string { return "user" }
func (u *User) RecordID() string   { return u.ID }
func (u *User) UID() string        { return "User-" + u.ID }

// Fields returns the raw stored field mapping. The password column is
// never part of the raw view.
func (u *User) Fields() map[string]any {
	return map[string]any{
		"Name":         u.Name,
		"EmailAddress": u.EmailAddress,
		"RealName":     u.RealName,
		"Disabled":     u.IsDisabled,
		"Created":      u.CreatedAt,
		"LastUpdated":  u.UpdatedAt,
	}
}

// Value returns one field through the user's public accessor.
func (u *User) Value(name string) (any, bool) {
	switch name {
	case "Name":
		return u.Name, true
	case "EmailAddress":
		return u.EmailAddress, true
	case "RealName":
		return u.RealName, true
	case "Disabled":
		return u.IsDisabled, true
	case "Created":
		return u.CreatedAt, true
	case "LastUpdated":
		return u.UpdatedAt, true
	}
	return nil, false
}

func (u *User) Disabled() bool         { return u.IsDisabled }
func (u *User) LastUpdated() time.Time { return u.UpdatedAt }
