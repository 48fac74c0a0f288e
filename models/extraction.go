package models

// Intent classifies a single user turn.
type Intent string

const (
	IntentSchedule    Intent = "schedule"
	IntentSaveContact Intent = "save_contact"
	IntentGreeting    Intent = "greeting"
	IntentUnrelated   Intent = "unrelated"
	IntentUnknown     Intent = "unknown"
)

// ScheduleFields is the partial booking information extracted from one turn.
// Empty strings and a zero duration mean "not mentioned"; a nil Guests slice
// means the turn did not restate the guest list.
type ScheduleFields struct {
	Title           string   `json:"title,omitempty"`
	Date            string   `json:"date,omitempty"`
	Time            string   `json:"time,omitempty"`
	DurationMinutes int      `json:"duration,omitempty"`
	Guests          []string `json:"guests,omitempty"`
}

// ContactFields carries a contact to be saved in the directory.
type ContactFields struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// ExtractionResult is the tagged variant produced by the extraction service
// for one turn. Exactly one of Schedule/Contact is set, depending on Intent.
type ExtractionResult struct {
	Intent   Intent          `json:"intent"`
	Schedule *ScheduleFields `json:"schedule,omitempty"`
	Contact  *ContactFields  `json:"contact,omitempty"`
}
