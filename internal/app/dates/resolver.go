// Package dates resolves the free-text date of a reminder into an absolute
// timestamp. Resolution never fails: when nothing parses, the reminder is
// anchored to tomorrow.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/br"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// Source tells which step of the ladder produced a timestamp.
type Source string

const (
	SourceStrict     Source = "strict"
	SourcePermissive Source = "permissive"
	SourceNatural    Source = "natural"
	SourceClock      Source = "clock"
	SourceDefault    Source = "default"
)

// DefaultHour is the hour used when no time of day can be recovered.
const DefaultHour = 10

var strictLayouts = []string{
	"2006-01-02T15:04:05-07:00",
	"2006-01-02T15:04-07:00",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// H:MM, Hh or HhMM, not preceded by another digit.
var clockPattern = regexp.MustCompile(`(?:^|\D)(\d{1,2})(?::(\d{2})|[hH](\d{2})?)`)

type Resolver struct {
	loc     *time.Location
	now     func() time.Time
	natural *when.Parser
}

// NewResolver returns a Resolver interpreting zone-less input in loc.
// A nil loc means time.Local.
func NewResolver(loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.Local
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(br.All...)
	w.Add(common.All...)

	return &Resolver{
		loc:     loc,
		now:     time.Now,
		natural: w,
	}
}

// WithClock overrides the time source, for tests.
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// Resolve returns the timestamp for raw, falling back to the original
// utterance and finally to tomorrow at DefaultHour.
func (r *Resolver) Resolve(raw, utterance string) time.Time {
	t, _ := r.ResolveWithSource(raw, utterance)
	return t
}

// ResolveWithSource is Resolve plus the ladder step that produced the result.
// Steps run strictly in order: strict ISO-8601, permissive formats, natural
// language phrases, then a clock time found in the utterance.
func (r *Resolver) ResolveWithSource(raw, utterance string) (time.Time, Source) {
	raw = strings.TrimSpace(raw)

	if raw != "" {
		if t, ok := r.parseStrict(raw); ok {
			return t, SourceStrict
		}
		if t, ok := r.parsePermissive(raw); ok {
			return t, SourcePermissive
		}
		if t, ok := r.parseNatural(raw); ok {
			return t, SourceNatural
		}
	}

	if hour, minute, ok := clockTime(utterance); ok {
		return r.tomorrowAt(hour, minute), SourceClock
	}
	return r.tomorrowAt(DefaultHour, 0), SourceDefault
}

func (r *Resolver) parseStrict(raw string) (time.Time, bool) {
	if strings.HasSuffix(raw, "Z") {
		raw = strings.TrimSuffix(raw, "Z") + "+00:00"
	}
	for _, layout := range strictLayouts {
		if t, err := time.ParseInLocation(layout, raw, r.loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parsePermissive rejects years before the current one; bare numbers such
// as "1500" otherwise parse as ancient dates.
func (r *Resolver) parsePermissive(raw string) (time.Time, bool) {
	t, err := dateparse.ParseIn(raw, r.loc)
	if err != nil || t.Year() < r.now().In(r.loc).Year() {
		return time.Time{}, false
	}
	return t, true
}

// parseNatural only accepts a phrase that spans the whole input, so a time
// fragment inside a malformed value does not count as a match.
func (r *Resolver) parseNatural(raw string) (time.Time, bool) {
	res, err := r.natural.Parse(raw, r.now().In(r.loc))
	if err != nil || res == nil {
		return time.Time{}, false
	}
	if !spansAll(raw, res.Index, len(res.Text)) {
		return time.Time{}, false
	}
	return res.Time, true
}

// spansAll reports whether raw[start:start+n] leaves nothing but blanks and
// punctuation on either side.
func spansAll(raw string, start, n int) bool {
	end := start + n
	if start < 0 || end > len(raw) || start > end {
		return false
	}
	const filler = " \t.,;!?"
	return strings.Trim(raw[:start], filler) == "" && strings.Trim(raw[end:], filler) == ""
}

// tomorrowAt anchors to the next calendar day even when the clock time is
// still ahead today.
func (r *Resolver) tomorrowAt(hour, minute int) time.Time {
	y, m, d := r.now().In(r.loc).AddDate(0, 0, 1).Date()
	return time.Date(y, m, d, hour, minute, 0, 0, r.loc)
}

// clockTime extracts the first clock-like time from text. Out of range
// values are rejected rather than searched past.
func clockTime(text string) (hour, minute int, ok bool) {
	m := clockPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, false
	}

	hour, _ = strconv.Atoi(m[1])
	switch {
	case m[2] != "":
		minute, _ = strconv.Atoi(m[2])
	case m[3] != "":
		minute, _ = strconv.Atoi(m[3])
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
