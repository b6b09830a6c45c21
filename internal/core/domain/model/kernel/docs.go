// Package kernel provides the shared domain primitives of the donation system.
//
// The package includes:
//   - UUID: A value object for identifiers of items, users and notifications
//   - Clock: The source of "now" that every time-gated rule is evaluated against
//
// UUID values are immutable and safe for concurrent use. Clock is injected so
// that the pickup embargo can be tested at exact boundaries.
package kernel
