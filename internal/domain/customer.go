package domain

import (
	"fmt"
	"strings"
	"time"
)

// Customer is a policyholder. CoveredAppliances lists the appliance types the
// policy services; coverage checks are case-insensitive.
type Customer struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	Address           string    `json:"address"`
	PolicyNumber      string    `json:"policy_number"`
	CoveredAppliances []string  `json:"covered_appliances"`
	CreatedAt         time.Time `json:"created_at"`
}

// Validate checks the customer record for the minimum shape a policyholder
// must have. Returns ErrCustomerInvalid with context on failure.
func (c *Customer) Validate() error {
	if len(strings.TrimSpace(c.Name)) < 2 {
		return fmt.Errorf("%w: name must be at least 2 characters", ErrCustomerInvalid)
	}
	if !strings.Contains(c.Email, "@") {
		return fmt.Errorf("%w: email %q is malformed", ErrCustomerInvalid, c.Email)
	}
	if len(strings.TrimSpace(c.Phone)) < 10 {
		return fmt.Errorf("%w: phone must be at least 10 characters", ErrCustomerInvalid)
	}
	if c.PolicyNumber == "" {
		return fmt.Errorf("%w: policy number is required", ErrCustomerInvalid)
	}
	return nil
}

// CoversAppliance reports whether the policy covers the given appliance type.
// Matching is case-insensitive.
func (c *Customer) CoversAppliance(applianceType string) bool {
	want := strings.ToLower(strings.TrimSpace(applianceType))
	for _, a := range c.CoveredAppliances {
		if strings.ToLower(a) == want {
			return true
		}
	}
	return false
}
