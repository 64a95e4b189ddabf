package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Open ──┬──> Canceled ──┐
//	       │               v
//	       └──────────> Delivered
//
// Canceled and Delivered are terminal for cancellation; nothing ever returns
// to Open and nothing leaves Delivered.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Open is the initial status of a placed order.
	Open

	// Canceled means the buyer or an admin withdrew the order.
	Canceled

	// Delivered means an admin confirmed delivery.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Open:      "OPEN",
		Canceled:  "CANCELED",
		Delivered: "DELIVERED",
	}
}

// StatusFromString parses the persisted form produced by String.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of Open, Canceled, Delivered.
func (s Status) Validate() error {
	switch s {
	case Open, Canceled, Delivered:
		return nil
	case Unknown:
	}
	return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
}

// String returns the persisted and wire name of the status.
//
// Example:
//
//	fmt.Println(order.Status()) // Output: "OPEN"
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether s admits no further change by cancel.
func (s Status) IsTerminal() bool {
	return s == Canceled || s == Delivered
}

// Cancel returns the status after a cancel request.
//
// Transitions:
//   - Open -> Canceled
//   - Canceled -> Canceled (no-op)
//
// Rejected:
//   - Delivered: InvalidState, a delivered order cannot be canceled
//   - Unknown: ValueIsInvalid
func (s Status) Cancel() (Status, error) {
	switch s {
	case Open, Canceled:
		return Canceled, nil
	case Delivered:
		return Unknown, errs.NewInvalidStateError("cannot cancel a delivered order")
	case Unknown:
	}
	return Unknown, s.Validate()
}

// Deliver returns the status after a delivery confirmation.
//
// Transitions:
//   - Open -> Delivered
//   - Canceled -> Delivered
//   - Delivered -> Delivered (no-op)
func (s Status) Deliver() (Status, error) {
	switch s {
	case Open, Canceled, Delivered:
		return Delivered, nil
	case Unknown:
	}
	return Unknown, s.Validate()
}
