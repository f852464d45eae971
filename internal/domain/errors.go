package domain

import (
	"errors"
)

// Sentinel errors for common domain failures
// Use with errors.Is() for checking and fmt.Errorf("%w", ...) for wrapping with context

var (
	// ErrNotFound indicates the requested record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrNotCovered indicates the customer's policy does not cover the appliance
	ErrNotCovered = errors.New("appliance not covered by policy")

	// ErrScheduleConflict indicates the technician already has an overlapping appointment
	ErrScheduleConflict = errors.New("technician has a conflicting appointment")

	// ErrSpecialtyMismatch indicates the technician does not service the appliance type
	ErrSpecialtyMismatch = errors.New("technician does not have the required specialty")

	// ErrNoQualifiedTechnicians indicates no technician has the required specialty
	ErrNoQualifiedTechnicians = errors.New("no qualified technicians for appliance type")

	// ErrAlreadyFinal indicates the appointment is completed or cancelled and cannot change
	ErrAlreadyFinal = errors.New("appointment is already completed or cancelled")

	// ErrUnknownStatus indicates a status value outside the entity's enum
	ErrUnknownStatus = errors.New("unknown status value")
)

// Validation errors for specific entities

var (
	// ErrCustomerInvalid indicates customer validation failed
	ErrCustomerInvalid = errors.New("customer validation failed")

	// ErrClaimInvalid indicates claim validation failed
	ErrClaimInvalid = errors.New("claim validation failed")

	// ErrAppointmentInvalid indicates appointment validation failed
	ErrAppointmentInvalid = errors.New("appointment validation failed")

	// ErrTechnicianInvalid indicates technician validation failed
	ErrTechnicianInvalid = errors.New("technician validation failed")

	// ErrCoordinatesInvalid indicates a latitude/longitude outside valid ranges
	ErrCoordinatesInvalid = errors.New("coordinates out of range")
)
