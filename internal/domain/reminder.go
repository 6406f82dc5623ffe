package domain

import (
	"strings"
	"time"
)

// Reminder is a scheduled reminder.
type Reminder struct {
	ID          ReminderID `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        Timestamp  `json:"date"`
	Priority    Priority   `json:"priority"`
	CreatedAt   Timestamp  `json:"created_at"`
	Completed   bool       `json:"completed"`
}

// ReminderFilter narrows a reminder listing. When UpcomingFrom is set only
// pending reminders dated at or after it are returned.
type ReminderFilter struct {
	UpcomingFrom *time.Time
}

func (f ReminderFilter) Matches(r *Reminder) bool {
	if f.UpcomingFrom == nil {
		return true
	}
	return !r.Completed && !r.Date.Before(*f.UpcomingFrom)
}

// ParsePriority maps free text onto a Priority; unknown values become medium.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "baixa", "baja":
		return PriorityLow
	case "high", "alta", "urgent":
		return PriorityHigh
	default:
		return PriorityMedium
	}
}
