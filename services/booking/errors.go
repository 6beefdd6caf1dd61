package booking

import "errors"

// Sentinel errors the handlers map onto HTTP statuses. Guard violations and
// bad input are 400s, missing documents 404s, slot conflicts 409s.
var (
	ErrInvalidSlot             = errors.New("invalid or past slot")
	ErrUnknownTherapy          = errors.New("unknown therapy category")
	ErrPractitionerNotFound    = errors.New("practitioner not found")
	ErrPractitionerNotVerified = errors.New("practitioner is not verified")
	ErrSessionNotFound         = errors.New("session not found")
	ErrNotSessionOwner         = errors.New("session belongs to another user")
	ErrSlotUnavailable         = errors.New("slot is not offered")
	ErrSlotTaken               = errors.New("slot already booked")
	ErrNothingToPay            = errors.New("session has no amount due")
	ErrNotAwaitingPayment      = errors.New("session is not awaiting payment")
	ErrPaymentVerification     = errors.New("payment signature verification failed")
	ErrNotCancellable          = errors.New("session can no longer be cancelled")
	ErrNotReschedulable        = errors.New("session can no longer be rescheduled")
)
