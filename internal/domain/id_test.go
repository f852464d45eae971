package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/acmehome/fieldops/internal/domain"
)

func TestNextSequentialID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		prefix   string
		existing []string
		want     string
	}{
		{"empty store", "CLAIM", nil, "CLAIM001"},
		{"sequential", "CLAIM", []string{"CLAIM001", "CLAIM002"}, "CLAIM003"},
		{"gaps tolerated", "APPT", []string{"APPT001", "APPT007"}, "APPT008"},
		{"foreign prefixes ignored", "APPT", []string{"CLAIM005", "APPT002"}, "APPT003"},
		{"non-numeric suffix ignored", "CLAIM", []string{"CLAIMX", "CLAIM004"}, "CLAIM005"},
		{"rolls past three digits", "CLAIM", []string{"CLAIM999"}, "CLAIM1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, domain.NextSequentialID(tt.prefix, tt.existing))
		})
	}
}
