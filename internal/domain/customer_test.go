package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acmehome/fieldops/internal/domain"
)

func validCustomer() domain.Customer {
	return domain.Customer{
		ID:                "CUST001",
		Name:              "Sarah Johnson",
		Email:             "sarah@example.com",
		Phone:             "555-010-1234",
		Address:           "123 Main St",
		PolicyNumber:      "POL-2024-001",
		CoveredAppliances: []string{"refrigerator", "dishwasher"},
	}
}

func TestCustomerValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*domain.Customer)
		wantErr bool
	}{
		{"valid", func(c *domain.Customer) {}, false},
		{"short name", func(c *domain.Customer) { c.Name = "A" }, true},
		{"whitespace name", func(c *domain.Customer) { c.Name = "  x  " }, true},
		{"email without at sign", func(c *domain.Customer) { c.Email = "not-an-email" }, true},
		{"short phone", func(c *domain.Customer) { c.Phone = "555-0101" }, true},
		{"missing policy", func(c *domain.Customer) { c.PolicyNumber = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := validCustomer()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrCustomerInvalid)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCustomerCoversAppliance(t *testing.T) {
	t.Parallel()

	c := validCustomer()
	assert.True(t, c.CoversAppliance("refrigerator"))
	assert.True(t, c.CoversAppliance("Refrigerator"))
	assert.True(t, c.CoversAppliance("  DISHWASHER  "))
	assert.False(t, c.CoversAppliance("washing_machine"))
	assert.False(t, c.CoversAppliance(""))
}
