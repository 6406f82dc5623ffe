package domain

import "strings"

// Note is a persistent free-form note.
type Note struct {
	ID        NoteID    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
	Completed bool      `json:"completed"`
}

// NoteFilter narrows a note listing. Empty fields match everything.
type NoteFilter struct {
	Category string
	Tag      string
}

// Matches reports whether n passes the filter.
func (f NoteFilter) Matches(n *Note) bool {
	if f.Category != "" && n.Category != f.Category {
		return false
	}
	if f.Tag == "" {
		return true
	}
	for _, t := range n.Tags {
		if t == f.Tag {
			return true
		}
	}
	return false
}

// NoteUpdate replaces the editable fields of a note.
type NoteUpdate struct {
	Title     string
	Content   string
	Category  string
	Tags      []string
	UpdatedAt Timestamp
}

// NormalizeCategory trims c and falls back to DefaultCategory.
func NormalizeCategory(c string) string {
	c = strings.TrimSpace(c)
	if c == "" {
		return DefaultCategory
	}
	return c
}
