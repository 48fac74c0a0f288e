package calendar

import (
	"context"
	"time"

	"agendador/models"
)

// EventRequest is the provider-neutral shape of a calendar event to create.
type EventRequest struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Attendees   []string
}

// Provider persists events in an external calendar and returns a link to the
// created entry.
type Provider interface {
	CreateEvent(ctx context.Context, req *EventRequest) (link string, err error)
}

// EventDispatcher converts a complete draft into a calendar event. The
// returned text is the user-facing reply for both success and failure; the
// error distinguishes the two for the caller's state handling.
type EventDispatcher interface {
	Dispatch(ctx context.Context, draft *models.ConversationDraft) (string, error)
}
