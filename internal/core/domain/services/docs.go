// Package services provides domain services that decide changes spanning more
// than one record of the donation system.
//
// The package includes:
//   - LifecycleEngine: Decides request, assign, pickup and deliver transitions of
//     an item and computes their side effects (the taker's notification on
//     assignment, the reputation counter deltas on delivery)
//
// The engine is pure. It reads no clock and no storage, so every decision can be
// replayed in tests at an exact instant.
package services
