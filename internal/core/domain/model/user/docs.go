// Package user provides the User record: the registered identity behind an Actor
// and its reputation counters.
//
// Counters only grow, and only by one per delivered item. They are written in the
// same unit of work as the delivery itself.
package user
