// Package domain contains the field-service domain model.
//
// This package is the core of the hexagonal architecture: entities and value
// objects with zero dependencies on frameworks, SDKs, or infrastructure.
//
//   - Domain NEVER imports from: internal/adapters, internal/ports, pkg/, external SDKs
//   - Domain ONLY imports from: standard library, other domain types
//
// Entities:
//   - Customer: a policyholder with covered appliances (customer.go)
//   - Claim: an insurance claim against a covered appliance (claim.go)
//   - Appointment: a scheduled technician visit (appointment.go)
//   - Technician: a field technician with specialties and a live location (technician.go)
//
// Value objects:
//   - GeoPoint: a latitude/longitude pair with distance math (geo.go)
//
// Records are in-memory only: seeded from fixtures at startup, mutated behind
// store locks, discarded on exit.
package domain
