package calendly

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveSlotWithoutConfiguration(t *testing.T) {
	c := &Client{}
	r, err := c.ReserveSlot("A", "a@x.com", "")
	require.NoError(t, err)
	assert.Empty(t, r.SchedulingURL)
}

func TestReserveSlotWithoutAPIKeyReturnsBareURL(t *testing.T) {
	c := &Client{EventTypeURL: "https://calendly.com/dr-smith/consultation"}
	r, err := c.ReserveSlot("A", "a@x.com", "2026-09-01T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "https://calendly.com/dr-smith/consultation", r.SchedulingURL)
}

func TestReserveSlotPrefillsQueryParams(t *testing.T) {
	c := &Client{
		APIKey:       "test-key",
		EventTypeURL: "https://calendly.com/dr-smith/consultation",
	}

	r, err := c.ReserveSlot("Jane Doe", "jane@example.com", "2026-09-01T10:00:00Z")
	require.NoError(t, err)

	u, err := url.Parse(r.SchedulingURL)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "Jane Doe", q.Get("name"))
	assert.Equal(t, "jane@example.com", q.Get("email"))
	assert.Equal(t, "2026-09-01", q.Get("date"))
}

func TestReserveSlotInvalidEventTypeURL(t *testing.T) {
	c := &Client{APIKey: "test-key", EventTypeURL: "://invalid"}
	r, err := c.ReserveSlot("A", "a@x.com", "")
	assert.Error(t, err)
	assert.Nil(t, r)
}

func TestDateHint(t *testing.T) {
	assert.Equal(t, "", dateHint(""))
	assert.Equal(t, "2026-09-01", dateHint("2026-09-01T10:00:00Z"))
	assert.Equal(t, "2026-09-01", dateHint("2026-09-01"))
	// Free-form preferences pass through untouched.
	assert.Equal(t, "next Tuesday morning", dateHint("next Tuesday morning"))
}

func TestFetchEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{
			"resource": map[string]any{
				"uri":        "https://api.calendly.com/scheduled_events/abc",
				"status":     "active",
				"start_time": "2026-09-01T10:00:00Z",
				"end_time":   "2026-09-01T10:15:00Z",
				"location": map[string]any{
					"join_url": "https://meet.google.com/abc-defg-hij",
				},
			},
		})
	}))
	defer srv.Close()

	c := &Client{APIKey: "test-key", HTTPClient: srv.Client()}
	ev, err := c.FetchEvent(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "https://meet.google.com/abc-defg-hij", ev.JoinURL)
	assert.Equal(t, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC), ev.StartTime)
	assert.Equal(t, "active", ev.Status)
}

func TestFetchEventWithoutAPIKey(t *testing.T) {
	c := &Client{}
	_, err := c.FetchEvent(context.Background(), "https://api.calendly.com/scheduled_events/abc")
	assert.Error(t, err)
}

func TestFetchInvitee(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"resource": map[string]any{
				"uri":    "https://api.calendly.com/scheduled_events/abc/invitees/xyz",
				"name":   "Jane Doe",
				"email":  "jane@example.com",
				"status": "active",
			},
		})
	}))
	defer srv.Close()

	c := &Client{APIKey: "test-key", HTTPClient: srv.Client()}
	inv, err := c.FetchInvitee(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", inv.Email)
	assert.Equal(t, "active", inv.Status)
}

func TestCancelInvitee(t *testing.T) {
	var gotPath string
	var gotReason string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		gotReason = body["reason"]
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := &Client{APIKey: "test-key", HTTPClient: srv.Client()}
	err := c.CancelInvitee(context.Background(), srv.URL+"/invitees/xyz", "doctor unavailable")
	require.NoError(t, err)
	assert.Equal(t, "/invitees/xyz/cancellation", gotPath)
	assert.Equal(t, "doctor unavailable", gotReason)
}

func TestCancelInviteeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := &Client{APIKey: "test-key", HTTPClient: srv.Client()}
	err := c.CancelInvitee(context.Background(), srv.URL, "reason")
	assert.Error(t, err)
}
