package entity

import "errors"

// Error kinds surfaced by the data layer. Services wrap these with
// fmt.Errorf("...: %w", ...) and handlers branch with errors.Is.
var (
	// ErrDuplicateKey reports a unique-constraint violation: email,
	// session token, or the (user, airline, card number) triplet.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrNotFound reports a lookup by ID or token with no matching row.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition reports a booking status change not permitted
	// from the booking's current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrIncompleteTicketing reports a ticketing attempt that does not
	// cover every passenger on the booking.
	ErrIncompleteTicketing = errors.New("incomplete ticketing")

	// ErrIntegrityViolation reports a foreign-key reference to a missing
	// parent row. The cascade rules keep this from happening; seeing it
	// means a programming defect, not a user-recoverable condition.
	ErrIntegrityViolation = errors.New("integrity violation")
)
