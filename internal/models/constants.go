// Package models contains data types and constants for the HOS_BABEL front-end.
package models

import "time"

// Backend paths tried, in order, when fetching a reply
var ReplyEndpoints = []string{"/chat", "/api/chat", "/rag", "/api/rag"}

// HealthPath is probed once per chat screen to report connectivity
const HealthPath = "/health"

// ReplyFields are the JSON keys searched for a usable reply, top level first,
// then under DataField
var ReplyFields = []string{"reply", "message", "text", "output", "content", "answer"}

// DataField is the nested object searched after the top level
const DataField = "data"

// Project links surfaced by the chat screen
const (
	RepoURL     = "https://github.com/hosbabel/hosbabel"
	RepoPageURL = "https://hosbabel.github.io/hosbabel/"
)

// Buffer caps
const (
	MaxChatMessages = 500
	MaxConsoleLines = 200
)

// Timing
const (
	HealthTimeout = 2500 * time.Millisecond
	BootDuration  = 9300 * time.Millisecond
	BabelDelay    = 500 * time.Millisecond
	BabelInterval = 500 * time.Millisecond
)

// User-visible fallback texts
const (
	OfflineReply       = "Offline mode: no server call was made."
	NoReplyText        = "I couldn't get a reply from the server (endpoint not found or error)."
	MissingFieldPrefix = "Server responded (JSON) but reply field was not found:\n"
)
