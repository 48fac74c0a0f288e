package models

import "time"

// ConversationDraft is the accumulating, not-yet-complete booking request for
// one user. A draft exists for a user exactly while a scheduling conversation
// is open; it is destroyed on a successful dispatch or when the user changes
// subject.
type ConversationDraft struct {
	Title           string   `json:"title,omitempty"`
	Date            string   `json:"date,omitempty"` // YYYY-MM-DD
	Time            string   `json:"time,omitempty"` // HH:MM, reference timezone
	DurationMinutes int      `json:"duration,omitempty"`
	RawGuests       []string `json:"guests,omitempty"`
	ResolvedGuests  []string `json:"resolvedGuests,omitempty"`

	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// Clone returns a deep copy so merge never aliases the stored draft.
func (d *ConversationDraft) Clone() *ConversationDraft {
	if d == nil {
		return &ConversationDraft{}
	}
	out := *d
	out.RawGuests = append([]string(nil), d.RawGuests...)
	out.ResolvedGuests = append([]string(nil), d.ResolvedGuests...)
	return &out
}
