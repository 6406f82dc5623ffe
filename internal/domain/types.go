package domain

import "time"

type SessionID string
type ExchangeID string
type NoteID string
type ReminderID string

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultCategory is used when a note is created without a category.
const DefaultCategory = "general"

type Timestamp = time.Time
