// Package app holds the application services: the use-case layer between the
// HTTP adapters and the domain model.
//
// Services depend only on ports and domain types. Each service owns the
// business rules for one of the demo surfaces:
//
//   - CustomerService: customers, policies, coverage checks, claims (customer.go)
//   - AppointmentService: slot search, booking, conflicts, reschedule (appointment.go)
//   - TechnicianService: dispatch state, simulated locations, routes (technician.go)
//   - StatusBoard: cluster version/topology gathering with degradation (statusboard.go)
package app
