package inmemory_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acmehome/fieldops/internal/adapters/outbound/inmemory"
	"github.com/acmehome/fieldops/internal/domain"
)

func TestDefaultFixtures(t *testing.T) {
	t.Parallel()

	fx, err := inmemory.DefaultFixtures()
	require.NoError(t, err)

	assert.NotEmpty(t, fx.Customers)
	assert.NotEmpty(t, fx.Claims)
	assert.NotEmpty(t, fx.Appointments)
	assert.NotEmpty(t, fx.Technicians)

	for _, c := range fx.Customers {
		assert.NoError(t, c.Validate(), "fixture customer %s", c.ID)
	}
	for _, c := range fx.Claims {
		assert.NoError(t, c.Validate(), "fixture claim %s", c.ID)
	}
	for _, tech := range fx.Technicians {
		assert.NoError(t, tech.Validate(), "fixture technician %s", tech.ID)
	}
}

func TestStoresSeedAndReset(t *testing.T) {
	t.Parallel()

	fx, err := inmemory.DefaultFixtures()
	require.NoError(t, err)
	stores := inmemory.NewStores(fx)

	before := stores.Counts()
	assert.Equal(t, len(fx.Customers), before["customers"])
	assert.Equal(t, len(fx.Claims), before["claims"])

	stores.Claims.Create(domain.Claim{
		CustomerID: "CUST001",
		Status:     domain.ClaimSubmitted,
		CreatedAt:  time.Now().UTC(),
	})
	assert.Equal(t, before["claims"]+1, stores.Counts()["claims"])

	stores.Reset()
	assert.Equal(t, before, stores.Counts())
}

func TestClaimStoreOrderingAndCreate(t *testing.T) {
	t.Parallel()

	s := inmemory.NewClaimStore()
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	s.Put(domain.Claim{ID: "CLAIM001", CreatedAt: base})
	s.Put(domain.Claim{ID: "CLAIM003", CreatedAt: base.Add(2 * time.Hour)})
	s.Put(domain.Claim{ID: "CLAIM002", CreatedAt: base.Add(time.Hour)})

	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, "CLAIM003", list[0].ID, "newest first")
	assert.Equal(t, "CLAIM001", list[2].ID)

	created := s.Create(domain.Claim{CustomerID: "CUST001", CreatedAt: base.Add(3 * time.Hour)})
	assert.Equal(t, "CLAIM004", created.ID)
	stored, err := s.Get("CLAIM004")
	require.NoError(t, err)
	assert.Equal(t, created, stored)
}

func TestClaimStoreCreateConcurrent(t *testing.T) {
	t.Parallel()

	s := inmemory.NewClaimStore()
	const n = 64
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- s.Create(domain.Claim{CustomerID: "CUST001", CreatedAt: time.Now().UTC()}).ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool, n)
	for id := range ids {
		assert.False(t, seen[id], "id %s allocated twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	assert.Len(t, s.List(), n, "every claim stored")
}

func TestStoresSnapshotIsDetached(t *testing.T) {
	t.Parallel()

	fx, err := inmemory.DefaultFixtures()
	require.NoError(t, err)
	stores := inmemory.NewStores(fx)

	snap := stores.Snapshot()
	require.Len(t, snap.Claims, len(fx.Claims))
	assert.Equal(t, "CLAIM001", snap.Claims[0].ID, "sorted by ID")

	stores.Claims.Create(domain.Claim{CustomerID: "CUST001", CreatedAt: time.Now().UTC()})
	assert.Len(t, snap.Claims, len(fx.Claims), "snapshot does not see later writes")
	assert.Len(t, stores.Snapshot().Claims, len(fx.Claims)+1)
}

func TestAppointmentStoreListByTechnician(t *testing.T) {
	t.Parallel()

	s := inmemory.NewAppointmentStore()
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	s.Put(domain.Appointment{ID: "APPT001", TechnicianID: "TECH001", ScheduledAt: base.Add(4 * time.Hour)})
	s.Put(domain.Appointment{ID: "APPT002", TechnicianID: "TECH002", ScheduledAt: base})
	s.Put(domain.Appointment{ID: "APPT003", TechnicianID: "TECH001", ScheduledAt: base})

	mine := s.ListByTechnician("TECH001")
	require.Len(t, mine, 2)
	assert.Equal(t, "APPT003", mine[0].ID, "schedule order")
	assert.Equal(t, "APPT001", mine[1].ID)

	_, err := s.Get("APPT999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerStoreSortedByID(t *testing.T) {
	t.Parallel()

	s := inmemory.NewCustomerStore()
	s.Put(domain.Customer{ID: "CUST002"})
	s.Put(domain.Customer{ID: "CUST001"})

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "CUST001", list[0].ID)
}
