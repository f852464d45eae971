// Package ports defines the inbound and outbound ports (interfaces and types)
// used to decouple the core domain and application logic from adapters.
//
// Ports are the boundary between the domain/application and the
// infrastructure (adapters). Interfaces represent the contracts that
// adapters must satisfy. Keep these interfaces stable and focused.
//
//   - outbound.go: stores for the four entity collections, Clock, and the
//     ClusterInspector used by the status board and rollout verification.
//     Each interface includes an "Error Contract" in comments describing
//     sentinel errors returned by implementations.
package ports
