package domain

import (
	"fmt"
	"strings"
	"time"
)

// TechnicianStatus is the dispatch state of a field technician.
type TechnicianStatus string

const (
	TechnicianAvailable TechnicianStatus = "available"
	TechnicianEnRoute   TechnicianStatus = "en_route"
	TechnicianOnSite    TechnicianStatus = "on_site"
	TechnicianBusy      TechnicianStatus = "busy"
	TechnicianOffDuty   TechnicianStatus = "off_duty"
)

// ParseTechnicianStatus validates a raw status string.
func ParseTechnicianStatus(s string) (TechnicianStatus, error) {
	switch ts := TechnicianStatus(s); ts {
	case TechnicianAvailable, TechnicianEnRoute, TechnicianOnSite,
		TechnicianBusy, TechnicianOffDuty:
		return ts, nil
	default:
		return "", fmt.Errorf("%w: technician status %q", ErrUnknownStatus, s)
	}
}

// Technician is a field technician. Specialties name the appliance types the
// technician services; matching is case-insensitive. Location is the last
// reported position.
type Technician struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	Specialties          []string         `json:"specialties"`
	Location             GeoPoint         `json:"current_location"`
	Status               TechnicianStatus `json:"status"`
	Phone                string           `json:"phone"`
	Rating               float64          `json:"rating"`
	EstimatedArrival     *time.Time       `json:"estimated_arrival,omitempty"`
	CurrentAppointmentID string           `json:"current_appointment_id,omitempty"`
	// Destination is where an en_route technician is heading. Drives the
	// location simulation; nil for technicians not in transit.
	Destination *GeoPoint `json:"destination,omitempty"`
}

// Validate checks technician field constraints.
func (t *Technician) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrTechnicianInvalid)
	}
	if len(t.Specialties) == 0 {
		return fmt.Errorf("%w: at least one specialty is required", ErrTechnicianInvalid)
	}
	if _, err := ParseTechnicianStatus(string(t.Status)); err != nil {
		return fmt.Errorf("%w: %v", ErrTechnicianInvalid, err)
	}
	if err := t.Location.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrTechnicianInvalid, err)
	}
	return nil
}

// HasSpecialty reports whether the technician services the given appliance
// type, case-insensitively.
func (t *Technician) HasSpecialty(applianceType string) bool {
	want := strings.ToLower(strings.TrimSpace(applianceType))
	for _, s := range t.Specialties {
		if strings.ToLower(s) == want {
			return true
		}
	}
	return false
}
