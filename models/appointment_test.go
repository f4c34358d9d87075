package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{"pending to scheduled", StatusPending, StatusScheduled, true},
		{"pending to approved", StatusPending, StatusApproved, true},
		{"pending to rejected", StatusPending, StatusRejected, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"scheduled to approved", StatusScheduled, StatusApproved, true},
		{"scheduled to rejected", StatusScheduled, StatusRejected, true},
		{"scheduled to cancelled", StatusScheduled, StatusCancelled, true},
		{"scheduled back to pending", StatusScheduled, StatusPending, false},
		{"approved is idempotent", StatusApproved, StatusApproved, true},
		{"approved to rejected", StatusApproved, StatusRejected, false},
		{"approved to cancelled", StatusApproved, StatusCancelled, false},
		{"rejected is terminal", StatusRejected, StatusApproved, false},
		{"cancelled is terminal", StatusCancelled, StatusScheduled, false},
		{"unknown status", AppointmentStatus("archived"), StatusApproved, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransition(tt.from, tt.to)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestPriorityRank(t *testing.T) {
	assert.Equal(t, 0, PriorityRank(PriorityHigh))
	assert.Equal(t, 1, PriorityRank(PriorityMedium))
	assert.Equal(t, 2, PriorityRank(PriorityLow))
	// Unknown priorities sort after everything else on the dashboard.
	assert.Equal(t, 3, PriorityRank(Priority("Urgent")))
	assert.Equal(t, 3, PriorityRank(Priority("")))
}
