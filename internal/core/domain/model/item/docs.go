// Package item provides the Item aggregate root of the donation system and the
// state machine that governs its lifecycle.
//
// The package includes:
//   - Item: The donated thing, with its request list, assignment and status
//   - Status: A state machine that enforces the posted -> picked -> delivered order
//
// Key business rules:
//   - The donor can never request, or be assigned, their own item
//   - Requests are add-if-absent and only accepted while the item is posted
//   - Assignment happens exactly once and only to a current requester
//   - A courier may pick up a posted item once the embargo after posting has elapsed
//   - Delivery requires a picked item with an assignee and is terminal
//
// Every rejected action returns either *errs.ForbiddenError or
// *errs.InvalidTransitionError with one of the Reason constants, and leaves the
// item unchanged.
package item
