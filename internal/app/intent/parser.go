// Package intent turns the classification text returned by the completion
// provider into a typed domain.Action.
//
// The provider is instructed to answer with one of
//
//	CREATE_NOTE|title|content|category
//	CREATE_REMINDER|title|description|date|priority
//	CONVERSE
//
// Tags are matched case-sensitively as a prefix of the trimmed output, the
// first matching tag wins, and anything unrecognized is a conversation.
//
// A payload with too few fields is a domain.PartialIntent. So is one with
// all fields present but a blank title: a note or reminder without a title
// cannot be shown back to the user, so the title is reported as missing.
package intent

import (
	"strings"

	"github.com/PabloGalante/aide/internal/domain"
)

const (
	TagCreateNote     = "CREATE_NOTE"
	TagCreateReminder = "CREATE_REMINDER"
	TagConverse       = "CONVERSE"

	Delimiter = "|"
)

// Field layouts, position 0 being the tag.
var (
	noteFields     = []string{"title", "content", "category"}
	reminderFields = []string{"title", "description", "date", "priority"}
)

// Parse interprets raw classification output. It never fails: short
// payloads become a domain.PartialIntent and unknown output a domain.Converse.
func Parse(raw string) domain.Action {
	text := strings.TrimSpace(raw)

	switch {
	case strings.HasPrefix(text, TagCreateNote):
		return parseNote(split(text))
	case strings.HasPrefix(text, TagCreateReminder):
		return parseReminder(split(text))
	case strings.HasPrefix(text, TagConverse):
		return domain.Converse{}
	default:
		return domain.Converse{}
	}
}

func parseNote(parts []string) domain.Action {
	if len(parts) < len(noteFields)+1 || parts[1] == "" {
		return partial(domain.ActionCreateNote, noteFields, parts)
	}

	return domain.CreateNote{
		Title:    parts[1],
		Content:  parts[2],
		Category: domain.NormalizeCategory(parts[3]),
	}
}

func parseReminder(parts []string) domain.Action {
	if len(parts) < len(reminderFields)+1 || parts[1] == "" {
		return partial(domain.ActionCreateReminder, reminderFields, parts)
	}

	return domain.CreateReminder{
		Title:       parts[1],
		Description: parts[2],
		RawDate:     parts[3],
		Priority:    domain.ParsePriority(parts[4]),
	}
}

// partial lists the fields that are absent or blank.
func partial(kind domain.ActionKind, layout []string, parts []string) domain.PartialIntent {
	var missing []string
	for i, name := range layout {
		pos := i + 1
		if pos >= len(parts) || parts[pos] == "" {
			missing = append(missing, name)
		}
	}
	return domain.PartialIntent{Intent: kind, Missing: missing}
}

func split(text string) []string {
	parts := strings.Split(text, Delimiter)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
