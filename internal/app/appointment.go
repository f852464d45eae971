package app

import (
	"fmt"
	"sort"
	"time"

	"github.com/acmehome/fieldops/internal/domain"
	"github.com/acmehome/fieldops/internal/ports"
)

// maxSlotResults caps how many open slots a search returns.
const maxSlotResults = 20

// Slot is one bookable time window offered by the slot search.
type Slot struct {
	Time                 time.Time `json:"datetime"`
	TechnicianID         string    `json:"technician_id"`
	TechnicianName       string    `json:"technician_name"`
	TechnicianRating     float64   `json:"technician_rating"`
	QualifiedTechnicians int       `json:"qualified_technicians"`
}

// SlotQuery describes an available-slot search.
type SlotQuery struct {
	ApplianceType string
	Start         time.Time
	End           time.Time
	Duration      int // minutes; 0 means the default duration
}

// ConflictError reports a booking collision along with up to three
// alternative conflict-free times for the same technician.
type ConflictError struct {
	TechnicianID string
	Requested    time.Time
	Alternatives []time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("technician %s has a conflicting appointment at %s", e.TechnicianID, e.Requested.Format(time.RFC3339))
}

func (e *ConflictError) Unwrap() error { return domain.ErrScheduleConflict }

// CreateAppointmentRequest carries the fields needed to book a visit.
type CreateAppointmentRequest struct {
	CustomerID        string    `json:"customer_id"`
	TechnicianID      string    `json:"technician_id"`
	ApplianceType     string    `json:"appliance_type"`
	IssueDescription  string    `json:"issue_description"`
	ScheduledAt       time.Time `json:"scheduled_datetime"`
	EstimatedDuration int       `json:"estimated_duration"`
	ClaimID           string    `json:"claim_id"`
}

// UpdateAppointmentRequest holds a partial update. Nil fields are untouched.
type UpdateAppointmentRequest struct {
	ScheduledAt       *time.Time `json:"scheduled_datetime"`
	Status            *string    `json:"status"`
	EstimatedDuration *int       `json:"estimated_duration"`
	Notes             *string    `json:"notes"`
	TechnicianID      *string    `json:"technician_id"`
}

// UpdateResult reports which fields a partial update touched, with the values
// they held before.
type UpdateResult struct {
	Appointment   domain.Appointment `json:"appointment"`
	UpdatedFields []string           `json:"updated_fields"`
	OldValues     map[string]any     `json:"old_values"`
}

// AppointmentService implements scheduling use cases.
type AppointmentService struct {
	appointments ports.AppointmentStore
	technicians  ports.TechnicianStore
	clock        ports.Clock
}

// NewAppointmentService wires the appointment service to its stores.
func NewAppointmentService(appointments ports.AppointmentStore, technicians ports.TechnicianStore, clock ports.Clock) *AppointmentService {
	return &AppointmentService{appointments: appointments, technicians: technicians, clock: clock}
}

// AvailableSlots walks hourly start times between the query window bounds and
// offers every (time, technician) pair where a qualified technician is free.
// Qualified means the technician has the specialty and is on shift (available
// or busy). Results are sorted by time, then by descending rating, and capped
// at maxSlotResults.
//
// Returns domain.ErrNoQualifiedTechnicians when nobody services the appliance.
func (s *AppointmentService) AvailableSlots(q SlotQuery) ([]Slot, error) {
	duration := q.Duration
	if duration == 0 {
		duration = domain.DefaultAppointmentDuration
	}

	var qualified []domain.Technician
	for _, t := range s.technicians.List() {
		if !t.HasSpecialty(q.ApplianceType) {
			continue
		}
		if t.Status != domain.TechnicianAvailable && t.Status != domain.TechnicianBusy {
			continue
		}
		qualified = append(qualified, t)
	}
	if len(qualified) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoQualifiedTechnicians, q.ApplianceType)
	}

	var slots []Slot
	for ts := q.Start; !ts.After(q.End); ts = ts.Add(time.Hour) {
		for _, tech := range qualified {
			if s.hasConflict(tech.ID, ts, duration, "") {
				continue
			}
			slots = append(slots, Slot{
				Time:                 ts,
				TechnicianID:         tech.ID,
				TechnicianName:       tech.Name,
				TechnicianRating:     tech.Rating,
				QualifiedTechnicians: len(qualified),
			})
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		if !slots[i].Time.Equal(slots[j].Time) {
			return slots[i].Time.Before(slots[j].Time)
		}
		return slots[i].TechnicianRating > slots[j].TechnicianRating
	})
	if len(slots) > maxSlotResults {
		slots = slots[:maxSlotResults]
	}
	return slots, nil
}

// ListAppointments returns all appointments filtered by status, newest first.
func (s *AppointmentService) ListAppointments(statusFilter string) ([]domain.Appointment, error) {
	return filterAppointments(s.appointments.List(), statusFilter)
}

// CustomerAppointments returns one customer's appointments, newest first.
func (s *AppointmentService) CustomerAppointments(customerID, statusFilter string) ([]domain.Appointment, error) {
	all, err := filterAppointments(s.appointments.List(), statusFilter)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Appointment, 0, len(all))
	for _, a := range all {
		if a.CustomerID == customerID {
			out = append(out, a)
		}
	}
	return out, nil
}

// Get returns one appointment by ID.
func (s *AppointmentService) Get(id string) (domain.Appointment, error) {
	return s.appointments.Get(id)
}

// Details returns an appointment together with its technician's record.
func (s *AppointmentService) Details(id string) (domain.Appointment, domain.Technician, error) {
	a, err := s.appointments.Get(id)
	if err != nil {
		return domain.Appointment{}, domain.Technician{}, err
	}
	t, err := s.technicians.Get(a.TechnicianID)
	if err != nil {
		return domain.Appointment{}, domain.Technician{}, err
	}
	return a, t, nil
}

// Create books a new appointment.
//
// Returns domain.ErrNotFound for an unknown technician,
// domain.ErrSpecialtyMismatch when the technician does not service the
// appliance, and a *ConflictError (matching domain.ErrScheduleConflict) with
// suggested alternatives when the slot is taken.
func (s *AppointmentService) Create(req CreateAppointmentRequest) (domain.Appointment, error) {
	tech, err := s.technicians.Get(req.TechnicianID)
	if err != nil {
		return domain.Appointment{}, err
	}
	if !tech.HasSpecialty(req.ApplianceType) {
		return domain.Appointment{}, fmt.Errorf("%w: %s does not service %s",
			domain.ErrSpecialtyMismatch, tech.ID, req.ApplianceType)
	}

	duration := req.EstimatedDuration
	if duration == 0 {
		duration = domain.DefaultAppointmentDuration
	}

	if s.hasConflict(tech.ID, req.ScheduledAt, duration, "") {
		return domain.Appointment{}, &ConflictError{
			TechnicianID: tech.ID,
			Requested:    req.ScheduledAt,
			Alternatives: s.alternativeSlots(tech.ID, req.ScheduledAt, duration, 3),
		}
	}

	appt := domain.Appointment{
		CustomerID:        req.CustomerID,
		TechnicianID:      tech.ID,
		ApplianceType:     req.ApplianceType,
		IssueDescription:  req.IssueDescription,
		ScheduledAt:       req.ScheduledAt,
		Status:            domain.AppointmentScheduled,
		EstimatedDuration: duration,
		CreatedAt:         s.clock.Now(),
		Notes:             fmt.Sprintf("Appointment created for %s repair", req.ApplianceType),
		ClaimID:           req.ClaimID,
		ServiceDetails: map[string]any{
			"priority":         "medium",
			"parts_needed":     []string{},
			"estimated_cost":   0.0,
			"warranty_covered": true,
		},
	}
	if err := appt.Validate(s.clock.Now()); err != nil {
		return domain.Appointment{}, err
	}
	// The store fills in the ID atomically with the write, so concurrent
	// bookings never share an ID.
	return s.appointments.Create(appt), nil
}

// Update applies a partial update and reports what changed.
func (s *AppointmentService) Update(id string, req UpdateAppointmentRequest) (UpdateResult, error) {
	appt, err := s.appointments.Get(id)
	if err != nil {
		return UpdateResult{}, err
	}

	res := UpdateResult{OldValues: map[string]any{}}
	record := func(field string, old any) {
		res.UpdatedFields = append(res.UpdatedFields, field)
		res.OldValues[field] = old
	}

	if req.ScheduledAt != nil {
		record("scheduled_datetime", appt.ScheduledAt)
		appt.ScheduledAt = *req.ScheduledAt
	}
	if req.Status != nil {
		st, err := domain.ParseAppointmentStatus(*req.Status)
		if err != nil {
			return UpdateResult{}, err
		}
		record("status", string(appt.Status))
		appt.Status = st
	}
	if req.EstimatedDuration != nil {
		record("estimated_duration", appt.EstimatedDuration)
		appt.EstimatedDuration = *req.EstimatedDuration
	}
	if req.Notes != nil {
		record("notes", appt.Notes)
		appt.Notes = *req.Notes
	}
	if req.TechnicianID != nil {
		if _, err := s.technicians.Get(*req.TechnicianID); err != nil {
			return UpdateResult{}, err
		}
		record("technician_id", appt.TechnicianID)
		appt.TechnicianID = *req.TechnicianID
	}

	if err := appt.Validate(s.clock.Now()); err != nil {
		return UpdateResult{}, err
	}
	s.appointments.Put(appt)
	res.Appointment = appt
	return res, nil
}

// Cancel marks an appointment cancelled with a reason.
//
// Returns domain.ErrAlreadyFinal when the appointment is completed or
// already cancelled.
func (s *AppointmentService) Cancel(id, reason string) (domain.Appointment, error) {
	appt, err := s.appointments.Get(id)
	if err != nil {
		return domain.Appointment{}, err
	}
	if appt.Status.Final() {
		return domain.Appointment{}, fmt.Errorf("%w: %s is %s", domain.ErrAlreadyFinal, appt.ID, appt.Status)
	}
	if reason == "" {
		reason = "Customer request"
	}

	appt.Status = domain.AppointmentCancelled
	appt.Notes = appendNote(appt.Notes, "Cancelled: "+reason)
	if appt.ServiceDetails == nil {
		appt.ServiceDetails = map[string]any{}
	}
	appt.ServiceDetails["cancellation_reason"] = reason
	appt.ServiceDetails["cancelled_at"] = s.clock.Now().Format(time.RFC3339)
	s.appointments.Put(appt)
	return appt, nil
}

// Reschedule moves an appointment to a new time, checking conflicts against
// the technician's other active appointments.
func (s *AppointmentService) Reschedule(id string, newTime time.Time) (domain.Appointment, error) {
	appt, err := s.appointments.Get(id)
	if err != nil {
		return domain.Appointment{}, err
	}
	if appt.Status.Final() {
		return domain.Appointment{}, fmt.Errorf("%w: %s is %s", domain.ErrAlreadyFinal, appt.ID, appt.Status)
	}
	if s.hasConflict(appt.TechnicianID, newTime, appt.EstimatedDuration, appt.ID) {
		return domain.Appointment{}, &ConflictError{
			TechnicianID: appt.TechnicianID,
			Requested:    newTime,
			Alternatives: s.alternativeSlots(appt.TechnicianID, newTime, appt.EstimatedDuration, 3),
		}
	}

	old := appt.ScheduledAt
	appt.ScheduledAt = newTime
	appt.Notes = appendNote(appt.Notes, "Rescheduled from "+old.Format(time.RFC3339))
	if err := appt.Validate(s.clock.Now()); err != nil {
		return domain.Appointment{}, err
	}
	s.appointments.Put(appt)
	return appt, nil
}

// hasConflict reports whether the technician has an active appointment
// overlapping [start, start+duration). excludeID skips the appointment being
// rescheduled.
func (s *AppointmentService) hasConflict(technicianID string, start time.Time, duration int, excludeID string) bool {
	end := start.Add(time.Duration(duration) * time.Minute)
	for _, a := range s.appointments.ListByTechnician(technicianID) {
		if a.ID == excludeID || !a.Status.Active() {
			continue
		}
		if a.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// alternativeSlots scans nearby days and hours for conflict-free times.
// The scan order favors small shifts on other days over same-day moves,
// mirroring how dispatchers actually rebook.
func (s *AppointmentService) alternativeSlots(technicianID string, requested time.Time, duration, limit int) []time.Time {
	now := s.clock.Now()
	var out []time.Time
	for _, dayOff := range []int{-3, -2, -1, 1, 2, 3} {
		for _, hourOff := range []int{0, 1, 2, -1, -2} {
			candidate := requested.AddDate(0, 0, dayOff).Add(time.Duration(hourOff) * time.Hour)
			if !candidate.After(now) {
				continue
			}
			if s.hasConflict(technicianID, candidate, duration, "") {
				continue
			}
			out = append(out, candidate)
			if len(out) >= 5 {
				break
			}
		}
		if len(out) >= 5 {
			break
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func filterAppointments(appointments []domain.Appointment, filter string) ([]domain.Appointment, error) {
	switch filter {
	case "", "all":
		return appointments, nil
	case "active":
		return keepAppointments(appointments, func(a domain.Appointment) bool { return a.Status.Active() }), nil
	case "completed":
		return keepAppointments(appointments, func(a domain.Appointment) bool { return a.Status.Final() }), nil
	default:
		st, err := domain.ParseAppointmentStatus(filter)
		if err != nil {
			return nil, err
		}
		return keepAppointments(appointments, func(a domain.Appointment) bool { return a.Status == st }), nil
	}
}

func keepAppointments(appointments []domain.Appointment, keep func(domain.Appointment) bool) []domain.Appointment {
	out := make([]domain.Appointment, 0, len(appointments))
	for _, a := range appointments {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}
