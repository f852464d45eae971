package ports

import (
	"context"
	"time"

	"github.com/acmehome/fieldops/internal/domain"
)

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// CustomerStore holds policyholder records.
//
// Error Contract:
// - Get returns domain.ErrNotFound if no customer has the given ID
type CustomerStore interface {
	Get(id string) (domain.Customer, error)
	// List returns all customers sorted by ID.
	List() []domain.Customer
	Put(c domain.Customer)
}

// ClaimStore holds insurance claim records.
//
// Error Contract:
// - Get returns domain.ErrNotFound if no claim has the given ID
type ClaimStore interface {
	Get(id string) (domain.Claim, error)
	// List returns all claims, newest first.
	List() []domain.Claim
	Put(c domain.Claim)
	// Create assigns the next sequential claim ID (CLAIM001, CLAIM002, ...)
	// and stores the claim in one atomic step, returning the stored record.
	Create(c domain.Claim) domain.Claim
}

// AppointmentStore holds technician visit records.
//
// Error Contract:
// - Get returns domain.ErrNotFound if no appointment has the given ID
type AppointmentStore interface {
	Get(id string) (domain.Appointment, error)
	// List returns all appointments, newest first by creation time.
	List() []domain.Appointment
	// ListByTechnician returns the technician's appointments in schedule order.
	ListByTechnician(technicianID string) []domain.Appointment
	Put(a domain.Appointment)
	// Create assigns the next sequential appointment ID (APPT001, APPT002,
	// ...) and stores the appointment in one atomic step, returning the
	// stored record.
	Create(a domain.Appointment) domain.Appointment
}

// TechnicianStore holds field technician records.
//
// Error Contract:
// - Get returns domain.ErrNotFound if no technician has the given ID
type TechnicianStore interface {
	Get(id string) (domain.Technician, error)
	// List returns all technicians sorted by name.
	List() []domain.Technician
	Put(t domain.Technician)
}

// PodInfo is one workload pod as shown on the status board.
type PodInfo struct {
	Name  string
	Phase string
}

// NodeGroup is the set of demo pods scheduled onto one node, with the node's
// kubelet version. The status board renders one cell per group.
type NodeGroup struct {
	Node           string
	KubeletVersion string
	Pods           []PodInfo
}

// ClusterInspector reads live cluster state for the status board and for
// rollout verification. Implementations talk to the Kubernetes API; each
// method honors the context deadline.
//
// Error Contract:
// - methods return wrapped transport errors; callers degrade to empty data
type ClusterInspector interface {
	// ControlPlaneVersion returns the API server version shortened to
	// "v<major>.<minor>".
	ControlPlaneVersion(ctx context.Context) (string, error)

	// NodeKubeletVersion returns the named node's kubelet version shortened
	// to "v<major>.<minor>".
	NodeKubeletVersion(ctx context.Context, nodeName string) (string, error)

	// PodsByNode lists pods in the namespace matching the label selector,
	// grouped by the node they are scheduled on, sorted by node name.
	PodsByNode(ctx context.Context, namespace, labelSelector string) ([]NodeGroup, error)
}
