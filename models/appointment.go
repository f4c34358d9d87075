package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// PriorityRank maps a priority to its dashboard sort rank. Unknown
// priorities sort after Low.
func PriorityRank(p Priority) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusScheduled AppointmentStatus = "scheduled"
	StatusApproved  AppointmentStatus = "approved"
	StatusRejected  AppointmentStatus = "rejected"
	StatusCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	ID            uint              `json:"id" gorm:"primaryKey"`
	PatientName   string            `json:"patient_name"`
	PatientEmail  string            `json:"patient_email" gorm:"index"`
	Issues        string            `json:"issues"`
	PreferredTime string            `json:"preferred_time"`
	Priority      Priority          `json:"priority"`
	Status        AppointmentStatus `json:"status"`

	SchedulingURL string     `json:"scheduling_url"`
	InviteeURI    string     `json:"invitee_uri" gorm:"index"`
	EventURI      string     `json:"event_uri"`
	MeetLink      string     `json:"meet_link"`
	ConfirmedTime *time.Time `json:"confirmed_time"`

	DoctorApproved bool       `json:"doctor_approved"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`
	RejectedAt     *time.Time `json:"rejected_at,omitempty"`
	CancelledAt    *time.Time `json:"cancelled_at,omitempty"`
	ReminderSent   bool       `json:"reminder_sent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	if a.Priority == "" {
		a.Priority = PriorityLow
	}
	return nil
}

// CanTransition validates a status change. Priority never changes after
// creation; only status moves, and only forward. Re-approving an already
// approved appointment is allowed as a no-op so a double click on the
// dashboard does not error.
func CanTransition(from, to AppointmentStatus) error {
	switch from {
	case StatusPending:
		if to != StatusScheduled && to != StatusApproved && to != StatusRejected && to != StatusCancelled {
			return fmt.Errorf("invalid transition from pending to %s", to)
		}
	case StatusScheduled:
		if to != StatusApproved && to != StatusRejected && to != StatusCancelled {
			return fmt.Errorf("invalid transition from scheduled to %s", to)
		}
	case StatusApproved:
		if to != StatusApproved {
			return fmt.Errorf("no transitions allowed from %s", from)
		}
	case StatusRejected, StatusCancelled:
		return fmt.Errorf("no transitions allowed from %s", from)
	default:
		return fmt.Errorf("unknown status %s", from)
	}
	return nil
}

// UpdateStatus validates the transition, applies it and saves the whole
// record, so any fields the caller set beforehand (meet link, timestamps,
// invitee references) are persisted in the same write.
func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus) error {
	if err := CanTransition(a.Status, newStatus); err != nil {
		return err
	}
	a.Status = newStatus
	return tx.Save(a).Error
}
