// Package journal records the narrated history of a run: where the
// party traveled, what it fought, how events resolved. Entries are
// plain data; the API returns them and the console renders them.
package journal

import (
	"fmt"
	"time"
)

// Kind categorizes a journal entry for display.
type Kind string

const (
	KindTravel Kind = "travel"
	KindBattle Kind = "battle"
	KindEvent  Kind = "event"
	KindReward Kind = "reward"
	KindParty  Kind = "party"
	KindSystem Kind = "system"
)

// Entry is one line of run history.
type Entry struct {
	Kind Kind      `json:"kind"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// New creates a timestamped entry.
func New(kind Kind, format string, args ...any) Entry {
	return Entry{
		Kind: kind,
		Text: fmt.Sprintf(format, args...),
		At:   time.Now().UTC(),
	}
}

// Line renders the entry for plain-text display.
func (e Entry) Line() string {
	return fmt.Sprintf("[%s] %s", e.Kind, e.Text)
}
