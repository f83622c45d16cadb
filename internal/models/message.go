package models

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies who authored a chat message
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a chat message for TUI display
type Message struct {
	ID        string
	Role      Role
	Text      string
	Timestamp time.Time
}

// NewMessage stamps a message with a fresh ID and the current time
func NewMessage(role Role, text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// LineKind distinguishes ordinary console output from babel lines
type LineKind int

const (
	LineNormal LineKind = iota
	LineBabel
)

// String returns the kind name
func (k LineKind) String() string {
	if k == LineBabel {
		return "babel"
	}
	return "normal"
}

// ConsoleLine is one row of the fake terminal
type ConsoleLine struct {
	ID   string
	Text string
	Kind LineKind
}

// NewConsoleLine creates a console line with a fresh ID
func NewConsoleLine(text string, kind LineKind) ConsoleLine {
	return ConsoleLine{
		ID:   uuid.NewString(),
		Text: text,
		Kind: kind,
	}
}
