package inmemory

import (
	"fmt"
	"sort"

	"github.com/acmehome/fieldops/internal/domain"
)

// CustomerStore implements ports.CustomerStore.
type CustomerStore struct {
	col *collection[domain.Customer]
}

// NewCustomerStore creates an empty customer store.
func NewCustomerStore() *CustomerStore {
	return &CustomerStore{col: newCollection[domain.Customer]()}
}

func (s *CustomerStore) Get(id string) (domain.Customer, error) {
	c, ok := s.col.get(id)
	if !ok {
		return domain.Customer{}, fmt.Errorf("%w: customer %s", domain.ErrNotFound, id)
	}
	return c, nil
}

// List returns all customers sorted by ID.
func (s *CustomerStore) List() []domain.Customer {
	out := s.col.all()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *CustomerStore) Put(c domain.Customer) {
	s.col.put(c.ID, c)
}

// ClaimStore implements ports.ClaimStore.
type ClaimStore struct {
	col *collection[domain.Claim]
}

// NewClaimStore creates an empty claim store.
func NewClaimStore() *ClaimStore {
	return &ClaimStore{col: newCollection[domain.Claim]()}
}

func (s *ClaimStore) Get(id string) (domain.Claim, error) {
	c, ok := s.col.get(id)
	if !ok {
		return domain.Claim{}, fmt.Errorf("%w: claim %s", domain.ErrNotFound, id)
	}
	return c, nil
}

// List returns all claims, newest first.
func (s *ClaimStore) List() []domain.Claim {
	out := s.col.all()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *ClaimStore) Put(c domain.Claim) {
	s.col.put(c.ID, c)
}

// Create assigns the next sequential claim ID and stores the claim, both
// under a single lock, and returns the stored record.
func (s *ClaimStore) Create(c domain.Claim) domain.Claim {
	return s.col.insert("CLAIM", func(id string) domain.Claim {
		c.ID = id
		return c
	})
}

// AppointmentStore implements ports.AppointmentStore.
type AppointmentStore struct {
	col *collection[domain.Appointment]
}

// NewAppointmentStore creates an empty appointment store.
func NewAppointmentStore() *AppointmentStore {
	return &AppointmentStore{col: newCollection[domain.Appointment]()}
}

func (s *AppointmentStore) Get(id string) (domain.Appointment, error) {
	a, ok := s.col.get(id)
	if !ok {
		return domain.Appointment{}, fmt.Errorf("%w: appointment %s", domain.ErrNotFound, id)
	}
	return a, nil
}

// List returns all appointments, newest first by creation time.
func (s *AppointmentStore) List() []domain.Appointment {
	out := s.col.all()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// ListByTechnician returns the technician's appointments in schedule order.
func (s *AppointmentStore) ListByTechnician(technicianID string) []domain.Appointment {
	var out []domain.Appointment
	for _, a := range s.col.all() {
		if a.TechnicianID == technicianID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out
}

func (s *AppointmentStore) Put(a domain.Appointment) {
	s.col.put(a.ID, a)
}

// Create assigns the next sequential appointment ID and stores the
// appointment, both under a single lock, and returns the stored record.
func (s *AppointmentStore) Create(a domain.Appointment) domain.Appointment {
	return s.col.insert("APPT", func(id string) domain.Appointment {
		a.ID = id
		return a
	})
}

// TechnicianStore implements ports.TechnicianStore.
type TechnicianStore struct {
	col *collection[domain.Technician]
}

// NewTechnicianStore creates an empty technician store.
func NewTechnicianStore() *TechnicianStore {
	return &TechnicianStore{col: newCollection[domain.Technician]()}
}

func (s *TechnicianStore) Get(id string) (domain.Technician, error) {
	t, ok := s.col.get(id)
	if !ok {
		return domain.Technician{}, fmt.Errorf("%w: technician %s", domain.ErrNotFound, id)
	}
	return t, nil
}

// List returns all technicians sorted by name.
func (s *TechnicianStore) List() []domain.Technician {
	out := s.col.all()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *TechnicianStore) Put(t domain.Technician) {
	s.col.put(t.ID, t)
}

// Stores bundles the four entity stores seeded from one fixture set.
type Stores struct {
	Customers    *CustomerStore
	Claims       *ClaimStore
	Appointments *AppointmentStore
	Technicians  *TechnicianStore

	seed FixtureSet
}

// NewStores seeds all stores from the given fixture set.
func NewStores(fx FixtureSet) *Stores {
	s := &Stores{
		Customers:    NewCustomerStore(),
		Claims:       NewClaimStore(),
		Appointments: NewAppointmentStore(),
		Technicians:  NewTechnicianStore(),
		seed:         fx,
	}
	s.Reset()
	return s
}

// Reset restores every store to the seeded fixtures.
func (s *Stores) Reset() {
	customers := make(map[string]domain.Customer, len(s.seed.Customers))
	for _, c := range s.seed.Customers {
		customers[c.ID] = c
	}
	claims := make(map[string]domain.Claim, len(s.seed.Claims))
	for _, c := range s.seed.Claims {
		claims[c.ID] = c
	}
	appointments := make(map[string]domain.Appointment, len(s.seed.Appointments))
	for _, a := range s.seed.Appointments {
		appointments[a.ID] = a
	}
	technicians := make(map[string]domain.Technician, len(s.seed.Technicians))
	for _, t := range s.seed.Technicians {
		technicians[t.ID] = t
	}
	s.Customers.col.replace(customers)
	s.Claims.col.replace(claims)
	s.Appointments.col.replace(appointments)
	s.Technicians.col.replace(technicians)
}

// Snapshot copies the current contents of every store into a FixtureSet,
// sorted by ID. The copy is detached: later writes to the stores do not show
// up in it. Tests use it to diff state around an operation.
func (s *Stores) Snapshot() FixtureSet {
	fx := FixtureSet{
		Customers:    s.Customers.List(),
		Claims:       collectSorted(s.Claims.col),
		Appointments: collectSorted(s.Appointments.col),
		Technicians:  collectSorted(s.Technicians.col),
	}
	return fx
}

// collectSorted drains a collection's snapshot into an ID-sorted slice.
func collectSorted[T any](col *collection[T]) []T {
	snap := col.snapshot()
	ids := make([]string, 0, len(snap))
	for id := range snap {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, snap[id])
	}
	return out
}

// Counts reports how many records each store holds. Used by startup logging
// and the container smoke test.
func (s *Stores) Counts() map[string]int {
	return map[string]int{
		"customers":    s.Customers.col.len(),
		"claims":       s.Claims.col.len(),
		"appointments": s.Appointments.col.len(),
		"technicians":  s.Technicians.col.len(),
	}
}
