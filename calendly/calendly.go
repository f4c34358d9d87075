package calendly

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

// Client talks to the Calendly REST API. When no API key is configured the
// adapter degrades: ReserveSlot still succeeds with the bare scheduling
// page URL, and the fetch/cancel calls return errors the caller treats as
// "reconciliation incomplete".
type Client struct {
	APIKey          string
	EventTypeURL    string
	AvailabilityURL string
	HTTPClient      *http.Client
}

// New builds a client from environment variables.
func New() *Client {
	return &Client{
		APIKey:          os.Getenv("CALENDLY_API_KEY"),
		EventTypeURL:    os.Getenv("CALENDLY_EVENT_TYPE_URL"),
		AvailabilityURL: os.Getenv("CALENDLY_AVAILABILITY_URL"),
		HTTPClient:      &http.Client{Timeout: 15 * time.Second},
	}
}

// Reservation is the outcome of ReserveSlot.
type Reservation struct {
	SchedulingURL string `json:"scheduling_url"`
}

// ReserveSlot builds a scheduling page URL pre-filled with the patient's
// name, email and a date hint. A missing configuration degrades to the
// bare URL; an unparseable one is reported so the caller can log it and
// book without a link.
func (c *Client) ReserveSlot(name, email, preferredTime string) (*Reservation, error) {
	if c.EventTypeURL == "" {
		return &Reservation{}, nil
	}
	if c.APIKey == "" {
		return &Reservation{SchedulingURL: c.EventTypeURL}, nil
	}

	u, err := url.Parse(c.EventTypeURL)
	if err != nil {
		return nil, fmt.Errorf("calendly: invalid event type URL: %w", err)
	}

	q := u.Query()
	q.Set("name", name)
	q.Set("email", email)
	if hint := dateHint(preferredTime); hint != "" {
		q.Set("date", hint)
	}
	u.RawQuery = q.Encode()

	return &Reservation{SchedulingURL: u.String()}, nil
}

// dateHint reduces a preferred time to YYYY-MM-DD when it parses as a
// timestamp; otherwise the raw value is passed through as-is.
func dateHint(preferredTime string) string {
	if preferredTime == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, preferredTime); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return preferredTime
}

// Invitee is a Calendly invitee resource.
type Invitee struct {
	URI    string `json:"uri"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Event  string `json:"event"`
	Status string `json:"status"`
}

// Event is a scheduled Calendly event with its resolved meeting location.
type Event struct {
	URI       string    `json:"uri"`
	Status    string    `json:"status"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	JoinURL   string    `json:"join_url"`
}

// FetchInvitee loads an invitee resource by its URI.
func (c *Client) FetchInvitee(ctx context.Context, uri string) (*Invitee, error) {
	var wrapper struct {
		Resource Invitee `json:"resource"`
	}
	if err := c.get(ctx, uri, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Resource, nil
}

// FetchEvent loads a scheduled event and pulls the video join link out of
// its location, when the event has one.
func (c *Client) FetchEvent(ctx context.Context, uri string) (*Event, error) {
	var wrapper struct {
		Resource struct {
			URI       string    `json:"uri"`
			Status    string    `json:"status"`
			StartTime time.Time `json:"start_time"`
			EndTime   time.Time `json:"end_time"`
			Location  struct {
				JoinURL string `json:"join_url"`
			} `json:"location"`
		} `json:"resource"`
	}
	if err := c.get(ctx, uri, &wrapper); err != nil {
		return nil, err
	}
	return &Event{
		URI:       wrapper.Resource.URI,
		Status:    wrapper.Resource.Status,
		StartTime: wrapper.Resource.StartTime,
		EndTime:   wrapper.Resource.EndTime,
		JoinURL:   wrapper.Resource.Location.JoinURL,
	}, nil
}

// CancelInvitee cancels an externally-hosted booking.
func (c *Client) CancelInvitee(ctx context.Context, uri, reason string) error {
	if c.APIKey == "" {
		return fmt.Errorf("calendly: API key not configured")
	}

	body, err := json.Marshal(map[string]string{"reason": reason})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uri+"/cancellation", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("calendly: cancellation returned status %d", resp.StatusCode)
	}
	return nil
}

// Availability fetches the configured availability-schedule resource and
// returns the raw document for the dashboard to render.
func (c *Client) Availability(ctx context.Context) (json.RawMessage, error) {
	if c.AvailabilityURL == "" {
		return nil, fmt.Errorf("calendly: availability URL not configured")
	}
	var raw json.RawMessage
	if err := c.get(ctx, c.AvailabilityURL, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) get(ctx context.Context, uri string, out any) error {
	if c.APIKey == "" {
		return fmt.Errorf("calendly: API key not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("calendly: GET %s returned status %d", uri, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
