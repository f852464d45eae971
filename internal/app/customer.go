package app

import (
	"fmt"
	"strings"

	"github.com/acmehome/fieldops/internal/domain"
	"github.com/acmehome/fieldops/internal/ports"
)

// PolicyInfo summarizes a customer's coverage terms. Coverage tiers are
// derived from the policy number prefix: PLUS policies are premium, anything
// else is standard.
type PolicyInfo struct {
	CustomerID        string   `json:"customer_id"`
	PolicyNumber      string   `json:"policy_number"`
	CoverageType      string   `json:"coverage_type"`
	CoveredAppliances []string `json:"covered_appliances"`
	Deductible        float64  `json:"deductible"`
	AnnualLimit       float64  `json:"annual_limit"`
}

// CoverageResult answers a validate-coverage request. PolicyInfo is present
// only when the appliance is covered.
type CoverageResult struct {
	CustomerID    string      `json:"customer_id"`
	ApplianceType string      `json:"appliance_type"`
	Covered       bool        `json:"covered"`
	PolicyInfo    *PolicyInfo `json:"policy_info,omitempty"`
}

// CreateClaimRequest carries the fields needed to file a new claim.
type CreateClaimRequest struct {
	CustomerID       string `json:"customer_id"`
	ApplianceType    string `json:"appliance_type"`
	IssueDescription string `json:"issue_description"`
	UrgencyLevel     string `json:"urgency_level"`
}

// CustomerService implements the customer and claims use cases.
type CustomerService struct {
	customers ports.CustomerStore
	claims    ports.ClaimStore
	clock     ports.Clock
}

// NewCustomerService wires the customer service to its stores.
func NewCustomerService(customers ports.CustomerStore, claims ports.ClaimStore, clock ports.Clock) *CustomerService {
	return &CustomerService{customers: customers, claims: claims, clock: clock}
}

// ListCustomers returns all customers sorted by ID.
func (s *CustomerService) ListCustomers() []domain.Customer {
	return s.customers.List()
}

// GetProfile returns the full customer record.
func (s *CustomerService) GetProfile(id string) (domain.Customer, error) {
	return s.customers.Get(id)
}

// GetPolicy returns the customer's coverage terms.
func (s *CustomerService) GetPolicy(id string) (PolicyInfo, error) {
	c, err := s.customers.Get(id)
	if err != nil {
		return PolicyInfo{}, err
	}
	return policyInfo(c), nil
}

func policyInfo(c domain.Customer) PolicyInfo {
	info := PolicyInfo{
		CustomerID:        c.ID,
		PolicyNumber:      c.PolicyNumber,
		CoverageType:      "standard",
		CoveredAppliances: c.CoveredAppliances,
		Deductible:        75,
		AnnualLimit:       2000,
	}
	if strings.HasPrefix(c.PolicyNumber, "PLUS-") {
		info.CoverageType = "premium"
		info.Deductible = 50
		info.AnnualLimit = 5000
	}
	return info
}

// ValidateCoverage checks whether the customer's policy covers the appliance.
func (s *CustomerService) ValidateCoverage(customerID, applianceType string) (CoverageResult, error) {
	c, err := s.customers.Get(customerID)
	if err != nil {
		return CoverageResult{}, err
	}
	res := CoverageResult{
		CustomerID:    c.ID,
		ApplianceType: applianceType,
		Covered:       c.CoversAppliance(applianceType),
	}
	if res.Covered {
		info := policyInfo(c)
		res.PolicyInfo = &info
	}
	return res, nil
}

// CreateClaim files a new claim for a covered appliance.
//
// Returns domain.ErrNotFound for an unknown customer and domain.ErrNotCovered
// when the policy does not cover the appliance type.
func (s *CustomerService) CreateClaim(req CreateClaimRequest) (domain.Claim, error) {
	c, err := s.customers.Get(req.CustomerID)
	if err != nil {
		return domain.Claim{}, err
	}
	if !c.CoversAppliance(req.ApplianceType) {
		return domain.Claim{}, fmt.Errorf("%w: %s for customer %s", domain.ErrNotCovered, req.ApplianceType, c.ID)
	}

	urgency := domain.UrgencyMedium
	if req.UrgencyLevel != "" {
		urgency, err = domain.ParseUrgencyLevel(req.UrgencyLevel)
		if err != nil {
			return domain.Claim{}, err
		}
	}

	claim := domain.Claim{
		CustomerID:       c.ID,
		ApplianceType:    strings.ToLower(strings.TrimSpace(req.ApplianceType)),
		IssueDescription: req.IssueDescription,
		Status:           domain.ClaimSubmitted,
		UrgencyLevel:     urgency,
		CreatedAt:        s.clock.Now(),
		Notes:            fmt.Sprintf("Claim created for %s issue", strings.ToLower(strings.TrimSpace(req.ApplianceType))),
	}
	if err := claim.Validate(); err != nil {
		return domain.Claim{}, err
	}
	// The store fills in the ID; allocating it here and storing separately
	// would let two concurrent creates race to the same ID.
	return s.claims.Create(claim), nil
}

// ListClaims returns claims filtered by status, newest first.
//
// Filters: "" or "all" for everything, "active" for open claims, "completed"
// for settled ones (completed or rejected), or an exact status value.
func (s *CustomerService) ListClaims(statusFilter string) ([]domain.Claim, error) {
	return filterClaims(s.claims.List(), statusFilter)
}

// GetClaim returns one claim by ID.
func (s *CustomerService) GetClaim(id string) (domain.Claim, error) {
	return s.claims.Get(id)
}

// CustomerClaims returns the customer's claim history, filtered by status.
func (s *CustomerService) CustomerClaims(customerID, statusFilter string) ([]domain.Claim, error) {
	if _, err := s.customers.Get(customerID); err != nil {
		return nil, err
	}
	all, err := filterClaims(s.claims.List(), statusFilter)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Claim, 0, len(all))
	for _, c := range all {
		if c.CustomerID == customerID {
			out = append(out, c)
		}
	}
	return out, nil
}

// UpdateClaimStatus moves a claim to a new status. ApprovedAt and CompletedAt
// are stamped on the first transition into the corresponding status and never
// overwritten. Notes, when given, are appended to the claim's audit trail.
func (s *CustomerService) UpdateClaimStatus(id, status, notes string) (domain.Claim, error) {
	claim, err := s.claims.Get(id)
	if err != nil {
		return domain.Claim{}, err
	}
	next, err := domain.ParseClaimStatus(status)
	if err != nil {
		return domain.Claim{}, err
	}

	now := s.clock.Now()
	claim.Status = next
	if next == domain.ClaimApproved && claim.ApprovedAt == nil {
		claim.ApprovedAt = &now
	}
	if next == domain.ClaimCompleted && claim.CompletedAt == nil {
		claim.CompletedAt = &now
	}
	if notes != "" {
		claim.Notes = appendNote(claim.Notes, "Status update: "+notes)
	}
	s.claims.Put(claim)
	return claim, nil
}

func filterClaims(claims []domain.Claim, filter string) ([]domain.Claim, error) {
	switch filter {
	case "", "all":
		return claims, nil
	case "active":
		return keepClaims(claims, func(c domain.Claim) bool { return c.Status.Active() }), nil
	case "completed":
		return keepClaims(claims, func(c domain.Claim) bool {
			return c.Status == domain.ClaimCompleted || c.Status == domain.ClaimRejected
		}), nil
	default:
		st, err := domain.ParseClaimStatus(filter)
		if err != nil {
			return nil, err
		}
		return keepClaims(claims, func(c domain.Claim) bool { return c.Status == st }), nil
	}
}

func keepClaims(claims []domain.Claim, keep func(domain.Claim) bool) []domain.Claim {
	out := make([]domain.Claim, 0, len(claims))
	for _, c := range claims {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// appendNote extends an audit-trail notes field with " | " separators.
func appendNote(notes, entry string) string {
	if notes == "" {
		return entry
	}
	return notes + " | " + entry
}
