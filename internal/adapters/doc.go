// Package adapters contains infrastructure implementations of port interfaces.
//
// This package is the ADAPTER LAYER in hexagonal architecture. It implements
// the interfaces defined in internal/ports using concrete technologies (chi
// routers, in-memory stores, client-go) and translates between the domain's
// business logic and the outside world.
//
// Adapters are organized by data flow direction:
//
//   - inbound/   - Adapters that receive external requests
//   - outbound/  - Adapters the application calls out through
//
// Inbound adapters:
//
//   - httpapi (inbound/httpapi/) - chi routers for the customer, appointment,
//     and technician REST services, plus the shared HTTP server wrapper and
//     API-key middleware
//   - statusboard (inbound/statusboard/) - HTML status page for the cluster
//     upgrade demo
//
// Outbound adapters:
//
//   - inmemory (outbound/inmemory/) - fixture-seeded in-memory stores
//     implementing the store ports
//   - kube (outbound/kube/) - client-go cluster inspector implementing
//     ports.ClusterInspector, plus rollout verification helpers
//
// Dependencies flow one way: adapters import ports and domain, never the
// reverse. Concrete wiring happens at the composition roots (the root
// fieldops package and the cmd/ mains).
package adapters
