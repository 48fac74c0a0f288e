package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleCalendarProvider creates events on the user's primary Google
// Calendar, authenticated with an OAuth client credentials file plus a
// previously obtained token file.
type GoogleCalendarProvider struct {
	svc  *gcal.Service
	zone string
}

// NewGoogleCalendarProvider builds the provider from credentials.json and
// token.json on disk. zone is the IANA name stamped on event timestamps.
func NewGoogleCalendarProvider(ctx context.Context, credentialsFile, tokenFile, zone string) (*GoogleCalendarProvider, error) {
	credentials, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	conf, err := google.ConfigFromJSON(credentials, gcal.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}

	tokenBytes, err := os.ReadFile(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(tokenBytes, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}

	httpClient := conf.Client(ctx, &token)
	svc, err := gcal.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &GoogleCalendarProvider{svc: svc, zone: zone}, nil
}

// CreateEvent inserts the event on the primary calendar and returns its link.
func (p *GoogleCalendarProvider) CreateEvent(ctx context.Context, req *EventRequest) (string, error) {
	attendees := make([]*gcal.EventAttendee, 0, len(req.Attendees))
	for _, email := range req.Attendees {
		attendees = append(attendees, &gcal.EventAttendee{Email: email})
	}

	event := &gcal.Event{
		Summary:     req.Summary,
		Description: req.Description,
		Start: &gcal.EventDateTime{
			DateTime: req.Start.Format("2006-01-02T15:04:05-07:00"),
			TimeZone: p.zone,
		},
		End: &gcal.EventDateTime{
			DateTime: req.End.Format("2006-01-02T15:04:05-07:00"),
			TimeZone: p.zone,
		},
		Attendees: attendees,
	}

	created, err := p.svc.Events.Insert("primary", event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to insert event: %w", err)
	}
	return created.HtmlLink, nil
}
