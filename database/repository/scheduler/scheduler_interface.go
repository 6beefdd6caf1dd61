package schedulerRepo

import (
	"context"
	"errors"
	"time"

	"panchakarma/models"
)

// Sentinel errors surfaced by the transactional primitives.
var (
	// ErrSlotTaken means a non-cancelled session already occupies the exact
	// (practitioner, date-time) slot.
	ErrSlotTaken = errors.New("slot already booked")
	// ErrSessionNotFound means the session disappeared between the caller's
	// read and the transaction's re-read.
	ErrSessionNotFound = errors.New("session not found")
)

// SchedulerRepository holds the two operations that must be transactional:
// conflict-checked session creation, and the two-document reschedule that
// moves a session while releasing its old slot back into availability.
type SchedulerRepository interface {
	CreateSessionIfSlotFree(ctx context.Context, sess *models.Session) error
	RescheduleSession(ctx context.Context, sessionID string, newDate time.Time) (*models.Session, error)
}
