package domain

import "time"

type Template struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Config      map[string]any
	Created     time.Time
	Updated     time.Time
}
