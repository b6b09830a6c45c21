// Package actor models the identity reference handed to the core by the
// authentication collaborator on every call.
//
// An Actor carries an identifier and an account Kind (member or volunteer).
// Relative to a concrete item an actor plays exactly one Role:
//
//	Donor     – the actor posted the item
//	Courier   – a volunteer acting on somebody else's item
//	Requester – any other actor
//
// Each lifecycle transition is gated by one explicit capability predicate
// (CanRequest, CanAssign, CanCarry) instead of ad-hoc flag checks.
package actor
