package item

import (
	"fmt"
	"strings"

	"donation/internal/pkg/errs"
)

// Status represents the lifecycle state of an item.
//
// State transitions:
//
//	Posted ──pickup──> Picked ──deliver──> Delivered
//
// There is no transition back and no transition that skips a state.
// Assignment and requests do not change the status.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Posted is the initial status. Requests and assignment happen here.
	Posted

	// Picked means a courier has collected the item from the donor.
	Picked

	// Delivered is the terminal status.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Posted:    "posted",
		Picked:    "picked",
		Delivered: "delivered",
	}
}

// ParseStatus is the inverse of String for valid statuses.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == strings.ToLower(s) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the status is one of Posted, Picked, Delivered.
func (s Status) Validate() error {
	if s != Posted && s != Picked && s != Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lower-case name used on the wire.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition exists.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// ValidateOpen checks that requests and assignment are still possible.
func (s Status) ValidateOpen(action string) error {
	if s != Posted {
		return errs.NewInvalidTransitionError(action, s.String(), ReasonWrongStatus)
	}
	return nil
}

// ValidateCanHaveAssignee enforces that a delivered item has an assignee.
// Posted and Picked items may or may not be assigned.
func (s Status) ValidateCanHaveAssignee(assigned bool) error {
	if s.IsTerminal() && !assigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no assignee", s),
		)
	}
	return nil
}

// Pickup transitions Posted to Picked.
func (s Status) Pickup() (Status, error) {
	if s != Posted {
		return Unknown, errs.NewInvalidTransitionError(ActionPickup, s.String(), ReasonWrongStatus)
	}
	return Picked, nil
}

// Deliver transitions Picked to Delivered.
func (s Status) Deliver() (Status, error) {
	if s != Picked {
		return Unknown, errs.NewInvalidTransitionError(ActionDeliver, s.String(), ReasonWrongStatus)
	}
	return Delivered, nil
}
