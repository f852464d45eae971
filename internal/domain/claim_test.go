package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acmehome/fieldops/internal/domain"
)

func TestParseClaimStatus(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"submitted", "under_review", "approved", "rejected", "completed"} {
		got, err := domain.ParseClaimStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, domain.ClaimStatus(valid), got)
	}

	_, err := domain.ParseClaimStatus("pending")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownStatus)
}

func TestClaimStatusActive(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.ClaimSubmitted.Active())
	assert.True(t, domain.ClaimUnderReview.Active())
	assert.True(t, domain.ClaimApproved.Active())
	assert.False(t, domain.ClaimRejected.Active())
	assert.False(t, domain.ClaimCompleted.Active())
}

func TestClaimValidate(t *testing.T) {
	t.Parallel()

	claim := domain.Claim{
		ID:               "CLAIM001",
		CustomerID:       "CUST001",
		ApplianceType:    "refrigerator",
		IssueDescription: "not cooling",
		Status:           domain.ClaimSubmitted,
		UrgencyLevel:     domain.UrgencyHigh,
		CreatedAt:        time.Now().UTC(),
	}
	require.NoError(t, claim.Validate())

	bad := claim
	bad.EstimatedCost = -10
	assert.ErrorIs(t, bad.Validate(), domain.ErrClaimInvalid)

	bad = claim
	bad.UrgencyLevel = "critical"
	assert.ErrorIs(t, bad.Validate(), domain.ErrClaimInvalid)

	bad = claim
	bad.CustomerID = ""
	assert.ErrorIs(t, bad.Validate(), domain.ErrClaimInvalid)
}

func TestClaimCanSchedule(t *testing.T) {
	t.Parallel()

	claim := domain.Claim{Status: domain.ClaimApproved}
	assert.True(t, claim.CanSchedule())

	claim.AppointmentID = "APPT001"
	assert.False(t, claim.CanSchedule(), "claim with a linked appointment cannot schedule again")

	claim = domain.Claim{Status: domain.ClaimSubmitted}
	assert.False(t, claim.CanSchedule(), "unapproved claim cannot schedule")
}
