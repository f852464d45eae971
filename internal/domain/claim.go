package domain

import (
	"fmt"
	"time"
)

// ClaimStatus is the lifecycle state of an insurance claim.
type ClaimStatus string

const (
	ClaimSubmitted   ClaimStatus = "submitted"
	ClaimUnderReview ClaimStatus = "under_review"
	ClaimApproved    ClaimStatus = "approved"
	ClaimRejected    ClaimStatus = "rejected"
	ClaimCompleted   ClaimStatus = "completed"
)

// ParseClaimStatus validates a raw status string.
// Returns ErrUnknownStatus for values outside the enum.
func ParseClaimStatus(s string) (ClaimStatus, error) {
	switch cs := ClaimStatus(s); cs {
	case ClaimSubmitted, ClaimUnderReview, ClaimApproved, ClaimRejected, ClaimCompleted:
		return cs, nil
	default:
		return "", fmt.Errorf("%w: claim status %q", ErrUnknownStatus, s)
	}
}

// Active reports whether the claim is still open.
// Active claims are submitted, under review, or approved.
func (s ClaimStatus) Active() bool {
	switch s {
	case ClaimSubmitted, ClaimUnderReview, ClaimApproved:
		return true
	}
	return false
}

// UrgencyLevel ranks how quickly a claim needs service.
type UrgencyLevel string

const (
	UrgencyLow       UrgencyLevel = "low"
	UrgencyMedium    UrgencyLevel = "medium"
	UrgencyHigh      UrgencyLevel = "high"
	UrgencyEmergency UrgencyLevel = "emergency"
)

// ParseUrgencyLevel validates a raw urgency string.
func ParseUrgencyLevel(s string) (UrgencyLevel, error) {
	switch u := UrgencyLevel(s); u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyEmergency:
		return u, nil
	default:
		return "", fmt.Errorf("%w: urgency level %q", ErrUnknownStatus, s)
	}
}

// Claim is an insurance claim filed by a customer against a covered
// appliance. ApprovedAt and CompletedAt are stamped on the first transition
// into the corresponding status, never overwritten.
type Claim struct {
	ID               string       `json:"id"`
	CustomerID       string       `json:"customer_id"`
	ApplianceType    string       `json:"appliance_type"`
	IssueDescription string       `json:"issue_description"`
	Status           ClaimStatus  `json:"status"`
	UrgencyLevel     UrgencyLevel `json:"urgency_level"`
	CreatedAt        time.Time    `json:"created_at"`
	ApprovedAt       *time.Time   `json:"approved_at,omitempty"`
	CompletedAt      *time.Time   `json:"completed_at,omitempty"`
	AppointmentID    string       `json:"appointment_id,omitempty"`
	EstimatedCost    float64      `json:"estimated_cost"`
	Notes            string       `json:"notes,omitempty"`
}

// Validate checks claim field constraints.
func (c *Claim) Validate() error {
	if c.CustomerID == "" {
		return fmt.Errorf("%w: customer id is required", ErrClaimInvalid)
	}
	if c.ApplianceType == "" {
		return fmt.Errorf("%w: appliance type is required", ErrClaimInvalid)
	}
	if _, err := ParseClaimStatus(string(c.Status)); err != nil {
		return fmt.Errorf("%w: %v", ErrClaimInvalid, err)
	}
	if _, err := ParseUrgencyLevel(string(c.UrgencyLevel)); err != nil {
		return fmt.Errorf("%w: %v", ErrClaimInvalid, err)
	}
	if c.EstimatedCost < 0 {
		return fmt.Errorf("%w: estimated cost cannot be negative (got %v)", ErrClaimInvalid, c.EstimatedCost)
	}
	return nil
}

// CanSchedule reports whether an appointment may be booked for this claim:
// the claim is approved and no appointment is linked yet.
func (c *Claim) CanSchedule() bool {
	return c.Status == ClaimApproved && c.AppointmentID == ""
}
