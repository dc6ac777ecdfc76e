package domain

import "time"

// Note is a user-authored local annotation attached to a session by id.
// Notes never leave the client unless explicitly exported.
type Note struct {
	ID        string
	SessionID SessionID
	Body      string
	UpdatedAt time.Time
}
