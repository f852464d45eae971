package domain

import (
	"fmt"
	"strings"
	"time"
)

// AppointmentStatus is the lifecycle state of a technician visit.
type AppointmentStatus string

const (
	AppointmentScheduled  AppointmentStatus = "scheduled"
	AppointmentConfirmed  AppointmentStatus = "confirmed"
	AppointmentInProgress AppointmentStatus = "in_progress"
	AppointmentCompleted  AppointmentStatus = "completed"
	AppointmentCancelled  AppointmentStatus = "cancelled"
)

// ParseAppointmentStatus validates a raw status string.
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	switch as := AppointmentStatus(s); as {
	case AppointmentScheduled, AppointmentConfirmed, AppointmentInProgress,
		AppointmentCompleted, AppointmentCancelled:
		return as, nil
	default:
		return "", fmt.Errorf("%w: appointment status %q", ErrUnknownStatus, s)
	}
}

// Active reports whether the appointment still occupies the technician's
// schedule: scheduled, confirmed, or in progress.
func (s AppointmentStatus) Active() bool {
	switch s {
	case AppointmentScheduled, AppointmentConfirmed, AppointmentInProgress:
		return true
	}
	return false
}

// Final reports whether the appointment can no longer change.
func (s AppointmentStatus) Final() bool {
	return s == AppointmentCompleted || s == AppointmentCancelled
}

// Appointment duration limits in minutes.
const (
	MinAppointmentDuration     = 30
	MaxAppointmentDuration     = 480
	DefaultAppointmentDuration = 90
)

// Appointment is a scheduled technician visit for an appliance repair.
// EstimatedDuration is in minutes. ServiceDetails carries free-form demo
// metadata (priority, parts, cancellation bookkeeping).
type Appointment struct {
	ID                string            `json:"id"`
	CustomerID        string            `json:"customer_id"`
	TechnicianID      string            `json:"technician_id"`
	ApplianceType     string            `json:"appliance_type"`
	IssueDescription  string            `json:"issue_description"`
	ScheduledAt       time.Time         `json:"scheduled_datetime"`
	Status            AppointmentStatus `json:"status"`
	EstimatedDuration int               `json:"estimated_duration"`
	CreatedAt         time.Time         `json:"created_at"`
	Notes             string            `json:"notes,omitempty"`
	ClaimID           string            `json:"claim_id,omitempty"`
	ServiceDetails    map[string]any    `json:"service_details,omitempty"`
}

// Validate checks appointment field constraints. now anchors the future-time
// requirement for scheduled and confirmed appointments.
func (a *Appointment) Validate(now time.Time) error {
	if a.CustomerID == "" {
		return fmt.Errorf("%w: customer id is required", ErrAppointmentInvalid)
	}
	if a.TechnicianID == "" {
		return fmt.Errorf("%w: technician id is required", ErrAppointmentInvalid)
	}
	if len(strings.TrimSpace(a.IssueDescription)) < 5 {
		return fmt.Errorf("%w: issue description must be at least 5 characters", ErrAppointmentInvalid)
	}
	if _, err := ParseAppointmentStatus(string(a.Status)); err != nil {
		return fmt.Errorf("%w: %v", ErrAppointmentInvalid, err)
	}
	if a.EstimatedDuration < MinAppointmentDuration || a.EstimatedDuration > MaxAppointmentDuration {
		return fmt.Errorf("%w: estimated duration must be between %d and %d minutes (got %d)",
			ErrAppointmentInvalid, MinAppointmentDuration, MaxAppointmentDuration, a.EstimatedDuration)
	}
	if (a.Status == AppointmentScheduled || a.Status == AppointmentConfirmed) && !a.ScheduledAt.After(now) {
		return fmt.Errorf("%w: scheduled time must be in the future", ErrAppointmentInvalid)
	}
	return nil
}

// End returns the moment the appointment's time slot ends.
func (a *Appointment) End() time.Time {
	return a.ScheduledAt.Add(time.Duration(a.EstimatedDuration) * time.Minute)
}

// Overlaps reports whether the [start, end) window collides with this
// appointment's slot. Touching boundaries do not overlap.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return start.Before(a.End()) && end.After(a.ScheduledAt)
}
