package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// MeetingRequest describes the calendar event a meeting is created from
type MeetingRequest struct {
	Summary       string
	Description   string
	AttendeeEmail string
	Start         time.Time
	End           time.Time
}

// Validate checks the fields Google Calendar rejects with opaque errors
func (m MeetingRequest) Validate() error {
	switch {
	case m.Start.IsZero():
		return fmt.Errorf("start time is required")
	case m.End.IsZero():
		return fmt.Errorf("end time is required")
	case !m.End.After(m.Start):
		return fmt.Errorf("end time must be after start time")
	}
	return nil
}

// MeetScheduler creates Google Meet links on behalf of the caller
type MeetScheduler struct {
	endpoint string
}

// NewMeetScheduler returns a scheduler talking to the public Calendar API. endpoint overrides
// the API base URL when non-empty.
func NewMeetScheduler(endpoint string) *MeetScheduler {
	return &MeetScheduler{endpoint: endpoint}
}

// Schedule inserts an event with a Meet conference into the caller's primary calendar and
// returns the Meet link.
func (s *MeetScheduler) Schedule(ctx context.Context, accessToken string, req MeetingRequest) (string, error) {
	if strings.TrimSpace(accessToken) == "" {
		return "", fmt.Errorf("google access token is required")
	}
	if err := req.Validate(); err != nil {
		return "", err
	}

	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))

	opts := []option.ClientOption{option.WithHTTPClient(client)}
	if s.endpoint != "" {
		opts = append(opts, option.WithEndpoint(s.endpoint))
	}

	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("create calendar service: %w", err)
	}

	event := &calendar.Event{
		Summary:     req.Summary,
		Description: req.Description,
		Start:       &calendar.EventDateTime{DateTime: req.Start.UTC().Format(time.RFC3339), TimeZone: "UTC"},
		End:         &calendar.EventDateTime{DateTime: req.End.UTC().Format(time.RFC3339), TimeZone: "UTC"},
		ConferenceData: &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId:             uuid.NewString(),
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		},
	}
	if req.AttendeeEmail != "" {
		event.Attendees = []*calendar.EventAttendee{{Email: req.AttendeeEmail}}
	}

	created, err := svc.Events.Insert("primary", event).ConferenceDataVersion(1).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert calendar event: %w", err)
	}

	log.Debug().Str("eventID", created.Id).Msg("scheduled meeting")
	return created.HangoutLink, nil
}
