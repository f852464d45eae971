package app

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/acmehome/fieldops/internal/domain"
	"github.com/acmehome/fieldops/internal/ports"
)

// Location simulation constants. Jitter values are decimal degrees; one unit
// of 0.01 is roughly two thirds of a mile at this latitude.
const (
	idleJitterDegrees      = 0.01  // available: wandering between jobs
	workingJitterDegrees   = 0.001 // on site / busy: parked, GPS noise only
	enRouteProgressPerPoll = 0.10  // fraction of remaining distance per poll

	minSimDistanceMiles = 2.0
	maxSimDistanceMiles = 15.0

	routeBaseSpeedMPH = 25.0
	routeMinETA       = 5 // minutes
)

// LocationReport is a simulated live position for one technician.
type LocationReport struct {
	TechnicianID string          `json:"technician_id"`
	Location     domain.GeoPoint `json:"current_location"`
	Status       string          `json:"status"`
	ETAMinutes   int             `json:"eta_minutes,omitempty"`
	StatusNote   string          `json:"status_note,omitempty"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// AvailableTechnician is a dispatch candidate with a simulated distance.
type AvailableTechnician struct {
	Technician    domain.Technician `json:"technician"`
	DistanceMiles float64           `json:"distance_miles"`
	ETAMinutes    int               `json:"eta_minutes"`
}

// UpdateTechnicianStatusRequest carries a dispatch state change.
type UpdateTechnicianStatusRequest struct {
	Status        string           `json:"status"`
	Location      *domain.GeoPoint `json:"location"`
	AppointmentID *string          `json:"appointment_id"`
	Destination   *domain.GeoPoint `json:"destination"`
}

// RouteResult describes a simulated drive to a destination.
type RouteResult struct {
	TechnicianID     string            `json:"technician_id"`
	Origin           domain.GeoPoint   `json:"origin"`
	Destination      domain.GeoPoint   `json:"destination"`
	DistanceMiles    float64           `json:"distance_miles"`
	ETAMinutes       int               `json:"eta_minutes"`
	TrafficCondition string            `json:"traffic_condition"`
	Waypoints        []RouteWaypoint   `json:"waypoints"`
}

// RouteWaypoint is one leg of a simulated route.
type RouteWaypoint struct {
	Point       domain.GeoPoint `json:"point"`
	Instruction string          `json:"instruction"`
}

// NotifyResult is the canned customer notification for a technician's state.
type NotifyResult struct {
	TechnicianID string           `json:"technician_id"`
	Message      string           `json:"message"`
	Location     *domain.GeoPoint `json:"current_location,omitempty"`
	SentAt       time.Time        `json:"sent_at"`
}

// TechnicianService implements dispatch use cases. Positions, distances and
// traffic are simulated; the rng is guarded because chi serves requests
// concurrently.
type TechnicianService struct {
	technicians ports.TechnicianStore
	clock       ports.Clock

	mu  sync.Mutex
	rng *rand.Rand
}

// NewTechnicianService wires the technician service to its store. rng drives
// the simulation; pass a seeded source for deterministic tests.
func NewTechnicianService(technicians ports.TechnicianStore, clock ports.Clock, rng *rand.Rand) *TechnicianService {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &TechnicianService{technicians: technicians, clock: clock, rng: rng}
}

func (s *TechnicianService) float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *TechnicianService) intN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// TechnicianView is a technician record stamped with the time it was read.
// Dispatch clients treat the roster as a live feed, so every read carries
// last_updated.
type TechnicianView struct {
	domain.Technician
	LastUpdated time.Time `json:"last_updated"`
}

// List returns technicians filtered by status, sorted by name, each stamped
// with the read time.
func (s *TechnicianService) List(statusFilter string) ([]TechnicianView, error) {
	all := s.technicians.List()
	now := s.clock.Now()
	st := domain.TechnicianStatus("")
	if statusFilter != "" && statusFilter != "all" {
		var err error
		st, err = domain.ParseTechnicianStatus(statusFilter)
		if err != nil {
			return nil, err
		}
	}
	out := make([]TechnicianView, 0, len(all))
	for _, t := range all {
		if st != "" && t.Status != st {
			continue
		}
		out = append(out, TechnicianView{Technician: t, LastUpdated: now})
	}
	return out, nil
}

// Get returns one technician by ID, stamped with the read time.
func (s *TechnicianService) Get(id string) (TechnicianView, error) {
	tech, err := s.technicians.Get(id)
	if err != nil {
		return TechnicianView{}, err
	}
	return TechnicianView{Technician: tech, LastUpdated: s.clock.Now()}, nil
}

// Location advances the technician's simulated position one tick and returns
// it. Idle technicians wander, en-route technicians close a tenth of the
// remaining distance to their destination per poll, and working technicians
// only show GPS noise. The advanced position is stored, so repeated polls
// show continuous movement.
func (s *TechnicianService) Location(id string) (LocationReport, error) {
	tech, err := s.technicians.Get(id)
	if err != nil {
		return LocationReport{}, err
	}

	now := s.clock.Now()
	switch tech.Status {
	case domain.TechnicianAvailable:
		tech.Location.Lat += (s.float64()*2 - 1) * idleJitterDegrees
		tech.Location.Lon += (s.float64()*2 - 1) * idleJitterDegrees
	case domain.TechnicianEnRoute:
		if tech.Destination != nil {
			tech.Location = tech.Location.Interpolate(*tech.Destination, enRouteProgressPerPoll)
		} else {
			tech.Location.Lat += (s.float64()*2 - 1) * workingJitterDegrees
			tech.Location.Lon += (s.float64()*2 - 1) * workingJitterDegrees
		}
	default:
		tech.Location.Lat += (s.float64()*2 - 1) * workingJitterDegrees
		tech.Location.Lon += (s.float64()*2 - 1) * workingJitterDegrees
	}
	s.technicians.Put(tech)

	report := LocationReport{
		TechnicianID: tech.ID,
		Location:     tech.Location,
		Status:       string(tech.Status),
		UpdatedAt:    now,
	}
	if tech.Status == domain.TechnicianEnRoute && tech.EstimatedArrival != nil {
		if tech.EstimatedArrival.After(now) {
			report.ETAMinutes = int(tech.EstimatedArrival.Sub(now).Minutes())
		} else {
			report.StatusNote = "Should have arrived"
		}
	}
	return report, nil
}

// AdvanceEnRoute moves every en-route technician one simulation step toward
// its destination and returns how many were moved. The background simulator
// calls this on a fixed tick so locations drift even when nobody is polling.
func (s *TechnicianService) AdvanceEnRoute() int {
	moved := 0
	for _, tech := range s.technicians.List() {
		if tech.Status != domain.TechnicianEnRoute || tech.Destination == nil {
			continue
		}
		tech.Location = tech.Location.Interpolate(*tech.Destination, enRouteProgressPerPoll)
		s.technicians.Put(tech)
		moved++
	}
	return moved
}

// FindAvailable returns available technicians holding any of the requested
// specialties, with simulated distances, sorted nearest first.
func (s *TechnicianService) FindAvailable(specialties []string) []AvailableTechnician {
	var out []AvailableTechnician
	for _, t := range s.technicians.List() {
		if t.Status != domain.TechnicianAvailable {
			continue
		}
		if len(specialties) > 0 && !hasAnySpecialty(t, specialties) {
			continue
		}
		dist := minSimDistanceMiles + s.float64()*(maxSimDistanceMiles-minSimDistanceMiles)
		eta := int(dist / routeBaseSpeedMPH * 60)
		if eta < routeMinETA {
			eta = routeMinETA
		}
		out = append(out, AvailableTechnician{Technician: t, DistanceMiles: dist, ETAMinutes: eta})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ETAMinutes < out[j].ETAMinutes })
	return out
}

// UpdateStatus changes a technician's dispatch state.
//
// Going en_route with an appointment sets a simulated arrival 30 to 60
// minutes out. Returning to available or off_duty clears the arrival;
// available also detaches the appointment and destination.
func (s *TechnicianService) UpdateStatus(id string, req UpdateTechnicianStatusRequest) (domain.Technician, error) {
	tech, err := s.technicians.Get(id)
	if err != nil {
		return domain.Technician{}, err
	}
	st, err := domain.ParseTechnicianStatus(req.Status)
	if err != nil {
		return domain.Technician{}, err
	}

	tech.Status = st
	if req.Location != nil {
		if err := req.Location.Validate(); err != nil {
			return domain.Technician{}, err
		}
		tech.Location = *req.Location
	}
	if req.AppointmentID != nil {
		tech.CurrentAppointmentID = *req.AppointmentID
	}
	if req.Destination != nil {
		if err := req.Destination.Validate(); err != nil {
			return domain.Technician{}, err
		}
		tech.Destination = req.Destination
	}

	now := s.clock.Now()
	switch st {
	case domain.TechnicianEnRoute:
		if tech.CurrentAppointmentID != "" {
			arrival := now.Add(time.Duration(30+s.intN(31)) * time.Minute)
			tech.EstimatedArrival = &arrival
		}
	case domain.TechnicianAvailable:
		tech.EstimatedArrival = nil
		tech.CurrentAppointmentID = ""
		tech.Destination = nil
	case domain.TechnicianOffDuty:
		tech.EstimatedArrival = nil
	}

	s.technicians.Put(tech)
	return tech, nil
}

// Route simulates a drive from the technician's position to the destination:
// great-circle distance, a random traffic factor, and interpolated waypoints.
func (s *TechnicianService) Route(id string, dest domain.GeoPoint) (RouteResult, error) {
	tech, err := s.technicians.Get(id)
	if err != nil {
		return RouteResult{}, err
	}
	if err := dest.Validate(); err != nil {
		return RouteResult{}, err
	}

	dist := tech.Location.DistanceMiles(dest)

	traffic := "light"
	factor := 1.0
	switch s.intN(3) {
	case 1:
		traffic, factor = "moderate", 1.2
	case 2:
		traffic, factor = "heavy", 1.5
	}

	eta := int(dist/(routeBaseSpeedMPH/factor)*60) + s.intN(11) - 5
	if eta < routeMinETA {
		eta = routeMinETA
	}

	count := int(dist / 2)
	if count < 3 {
		count = 3
	}
	if count > 5 {
		count = 5
	}
	waypoints := make([]RouteWaypoint, 0, count)
	for i := 1; i <= count; i++ {
		f := float64(i) / float64(count)
		leg := dist / float64(count)
		waypoints = append(waypoints, RouteWaypoint{
			Point:       tech.Location.Interpolate(dest, f),
			Instruction: fmt.Sprintf("Continue for %.1f miles", leg),
		})
	}

	return RouteResult{
		TechnicianID:     tech.ID,
		Origin:           tech.Location,
		Destination:      dest,
		DistanceMiles:    dist,
		ETAMinutes:       eta,
		TrafficCondition: traffic,
		Waypoints:        waypoints,
	}, nil
}

// Notify produces the canned customer message for the technician's state.
func (s *TechnicianService) Notify(id, custom string) (NotifyResult, error) {
	tech, err := s.technicians.Get(id)
	if err != nil {
		return NotifyResult{}, err
	}

	now := s.clock.Now()
	msg := custom
	if msg == "" {
		switch tech.Status {
		case domain.TechnicianEnRoute:
			eta := "soon"
			if tech.EstimatedArrival != nil && tech.EstimatedArrival.After(now) {
				eta = fmt.Sprintf("in about %d minutes", int(tech.EstimatedArrival.Sub(now).Minutes()))
			}
			msg = fmt.Sprintf("%s is on the way and should arrive %s.", tech.Name, eta)
		case domain.TechnicianOnSite:
			msg = fmt.Sprintf("%s has arrived and is working on your appliance.", tech.Name)
		case domain.TechnicianBusy:
			msg = fmt.Sprintf("%s is finishing another job and will head your way next.", tech.Name)
		case domain.TechnicianOffDuty:
			msg = fmt.Sprintf("%s is off duty. Your request is queued for the next shift.", tech.Name)
		default:
			msg = fmt.Sprintf("%s is available for dispatch.", tech.Name)
		}
	}

	res := NotifyResult{TechnicianID: tech.ID, Message: msg, SentAt: now}
	if tech.Status == domain.TechnicianEnRoute {
		loc := tech.Location
		res.Location = &loc
	}
	return res, nil
}

func hasAnySpecialty(t domain.Technician, specialties []string) bool {
	for _, want := range specialties {
		if t.HasSpecialty(want) {
			return true
		}
	}
	return false
}
