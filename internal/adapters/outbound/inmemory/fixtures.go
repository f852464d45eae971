package inmemory

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/acmehome/fieldops/internal/domain"
)

//go:embed fixtures/*.json
var embeddedFixtures embed.FS

// FixtureSet is the seed data for one run. Every record set is optional; an
// absent file seeds an empty store.
type FixtureSet struct {
	Customers    []domain.Customer
	Claims       []domain.Claim
	Appointments []domain.Appointment
	Technicians  []domain.Technician
}

// Fixture file wrappers. Each JSON file wraps its records under a single key
// so a file is self-describing.
type customersFile struct {
	Customers []domain.Customer `json:"customers"`
}
type claimsFile struct {
	Claims []domain.Claim `json:"claims"`
}
type appointmentsFile struct {
	Appointments []domain.Appointment `json:"appointments"`
}
type techniciansFile struct {
	Technicians []domain.Technician `json:"technicians"`
}

// DefaultFixtures returns the embedded demo data set.
func DefaultFixtures() (FixtureSet, error) {
	return loadFixtures(func(name string) ([]byte, error) {
		return embeddedFixtures.ReadFile("fixtures/" + name)
	})
}

// LoadFixtures reads the fixture set from a directory of JSON files
// (customers.json, claims.json, appointments.json, technicians.json).
// Missing files are skipped.
func LoadFixtures(dir string) (FixtureSet, error) {
	return loadFixtures(func(name string) ([]byte, error) {
		b, err := os.ReadFile(filepath.Join(filepath.Clean(dir), name))
		if os.IsNotExist(err) {
			return nil, nil
		}
		return b, err
	})
}

func loadFixtures(read func(name string) ([]byte, error)) (FixtureSet, error) {
	var fx FixtureSet

	if err := readInto(read, "customers.json", &customersFile{}, func(f *customersFile) {
		fx.Customers = f.Customers
	}); err != nil {
		return FixtureSet{}, err
	}
	if err := readInto(read, "claims.json", &claimsFile{}, func(f *claimsFile) {
		fx.Claims = f.Claims
	}); err != nil {
		return FixtureSet{}, err
	}
	if err := readInto(read, "appointments.json", &appointmentsFile{}, func(f *appointmentsFile) {
		fx.Appointments = f.Appointments
	}); err != nil {
		return FixtureSet{}, err
	}
	if err := readInto(read, "technicians.json", &techniciansFile{}, func(f *techniciansFile) {
		fx.Technicians = f.Technicians
	}); err != nil {
		return FixtureSet{}, err
	}
	return fx, nil
}

func readInto[T any](read func(string) ([]byte, error), name string, dst *T, assign func(*T)) error {
	b, err := read(name)
	if err != nil {
		return fmt.Errorf("read fixture %s: %w", name, err)
	}
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("parse fixture %s: %w", name, err)
	}
	assign(dst)
	return nil
}
