// Package inmemory implements the entity stores over RWMutex-guarded maps.
//
// Records are seeded from JSON fixtures at startup (see the fixtures files in
// this package) and live for the duration of the process. Snapshot and Reset
// exist for tests: Snapshot deep-copies current state, Reset restores the
// seeded fixtures.
package inmemory
