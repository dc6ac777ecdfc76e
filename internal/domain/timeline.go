package domain

import "time"

type PeriodState string

const (
	PeriodActive PeriodState = "active"
	PeriodIdle   PeriodState = "idle"
)

// ActivityPeriod is one bucketed span of a session timeline.
type ActivityPeriod struct {
	Start      time.Time
	End        time.Time
	State      PeriodState
	Activities []string
	Tools      map[string]int
}

type TimelineEvent struct {
	Timestamp time.Time
	Type      string
	Active    bool
	Tool      string
	Activity  string
}

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

type ConversationMessage struct {
	Role           MessageRole
	Timestamp      time.Time
	Text           string
	Tools          []string
	IsContinuation bool
}
