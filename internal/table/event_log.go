package table

import (
	"fmt"
	"strings"
)

// Event categories recorded by the table.
const (
	CatLaunch     = "launch"
	CatWall       = "wall"
	CatRack       = "rack"
	CatCue        = "cue"
	CatPhase      = "phase"
	CatDegenerate = "degenerate"
	CatMove       = "move" // verbose only
)

// Event is one recorded occurrence during a session.
type Event struct {
	Frame    int
	Ball     string  // "T", "C", "R07", or "--" for table-wide events
	Category string  // launch, wall, rack, cue, phase, degenerate, move
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the event as a fixed-width log line.
//
//	[F=0042] T    wall       bounce           left
func (e Event) String() string {
	return fmt.Sprintf("[F=%04d] %-4s %-10s %-16s %s",
		e.Frame, e.Ball, e.Category, e.Key, e.Value)
}

// EventLog collects structured events. With a positive capacity only the
// newest entries are kept, which bounds memory in interactive sessions.
type EventLog struct {
	entries  []Event // ring once capacity is reached; start is the oldest
	start    int
	capacity int
	verbose  bool
	total    int
}

// NewEventLog creates a log. capacity <= 0 keeps everything. If verbose is
// true, per-frame movement entries are recorded too.
func NewEventLog(capacity int, verbose bool) *EventLog {
	return &EventLog{capacity: capacity, verbose: verbose}
}

// Add records a new event. A full log overwrites its oldest entry.
func (l *EventLog) Add(frame int, ball, category, key, value string, numVal float64) {
	e := Event{
		Frame:    frame,
		Ball:     ball,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	}
	l.total++
	if l.capacity <= 0 || len(l.entries) < l.capacity {
		l.entries = append(l.entries, e)
		return
	}
	l.entries[l.start] = e
	l.start = (l.start + 1) % len(l.entries)
}

// tail returns the newest n retained events, oldest first.
func (l *EventLog) tail(n int) []Event {
	size := len(l.entries)
	if n > size {
		n = size
	}
	if n <= 0 {
		return nil
	}
	if l.start == 0 {
		return l.entries[size-n:]
	}
	out := make([]Event, n)
	for i := range out {
		out[i] = l.entries[(l.start+size-n+i)%size]
	}
	return out
}

// AddVerbose records an event only when verbose mode is on.
func (l *EventLog) AddVerbose(frame int, ball, category, key, value string, numVal float64) {
	if !l.verbose {
		return
	}
	l.Add(frame, ball, category, key, value, numVal)
}

// Verbose reports whether per-frame entries are recorded.
func (l *EventLog) Verbose() bool { return l.verbose }

// Entries returns all retained events, oldest first.
func (l *EventLog) Entries() []Event {
	return l.tail(len(l.entries))
}

// Len returns the number of retained events.
func (l *EventLog) Len() int { return len(l.entries) }

// Total returns the number of events ever added, including trimmed ones.
func (l *EventLog) Total() int { return l.total }

// Since returns the retained events added after the log's Total was mark.
// Consumers poll with it once per frame.
func (l *EventLog) Since(mark int) []Event {
	return l.tail(l.total - mark)
}

// Recent returns up to n of the newest events, oldest first.
func (l *EventLog) Recent(n int) []Event {
	if n <= 0 {
		n = len(l.entries)
	}
	return l.tail(n)
}

// Filter returns events matching the given category and/or key.
// Pass empty string to match any value for that field.
func (l *EventLog) Filter(category, key string) []Event {
	var out []Event
	for _, e := range l.Entries() {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterFrameRange returns events within [from, to] inclusive.
func (l *EventLog) FilterFrameRange(from, to int) []Event {
	var out []Event
	for _, e := range l.Entries() {
		if e.Frame >= from && e.Frame <= to {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many events match the given category and key.
func (l *EventLog) CountCategory(category, key string) int {
	return len(l.Filter(category, key))
}

// LastOf returns the most recent event matching category+key, or false if none.
func (l *EventLog) LastOf(category, key string) (Event, bool) {
	entries := l.Entries()
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if (category == "" || e.Category == category) && (key == "" || e.Key == key) {
			return e, true
		}
	}
	return Event{}, false
}

// HasEntry returns true if at least one event matches category, key, and value substring.
func (l *EventLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range l.Entries() {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (l *EventLog) Format() string {
	return formatEvents(l.Entries())
}

// FormatRange returns a log string filtered to a frame range.
func (l *EventLog) FormatRange(from, to int) string {
	return formatEvents(l.FilterFrameRange(from, to))
}

func formatEvents(events []Event) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
