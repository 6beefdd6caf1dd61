package booking

import (
	"testing"
	"time"

	"panchakarma/models"

	"github.com/stretchr/testify/assert"
)

var guardNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func sessionAt(status string, hoursAhead int) models.Session {
	return models.Session{
		Status: status,
		Date:   guardNow.Add(time.Duration(hoursAhead) * time.Hour),
	}
}

func TestIsCancellable(t *testing.T) {
	// Four days out and unpaid: still the patient's call.
	assert.True(t, IsCancellable(sessionAt(models.SessionStatusPaymentPending, 96), guardNow))

	// Two days out: window closed.
	assert.False(t, IsCancellable(sessionAt(models.SessionStatusPaymentPending, 48), guardNow))

	// Exactly at the boundary the window counts as closed.
	assert.False(t, IsCancellable(sessionAt(models.SessionStatusPaymentPending, 72), guardNow))

	// Paid sessions are never self-service cancellable, however far out.
	assert.False(t, IsCancellable(sessionAt(models.SessionStatusScheduled, 200), guardNow))
	assert.False(t, IsCancellable(sessionAt(models.SessionStatusCompleted, 200), guardNow))
	assert.False(t, IsCancellable(sessionAt(models.SessionStatusCancelled, 200), guardNow))
}

func TestIsReschedulable(t *testing.T) {
	assert.True(t, IsReschedulable(sessionAt(models.SessionStatusPaymentPending, 48), guardNow))
	assert.True(t, IsReschedulable(sessionAt(models.SessionStatusScheduled, 48), guardNow))

	// Inside a day: too late to move.
	assert.False(t, IsReschedulable(sessionAt(models.SessionStatusScheduled, 12), guardNow))
	assert.False(t, IsReschedulable(sessionAt(models.SessionStatusScheduled, 24), guardNow))

	// Terminal states never move.
	assert.False(t, IsReschedulable(sessionAt(models.SessionStatusCompleted, 48), guardNow))
	assert.False(t, IsReschedulable(sessionAt(models.SessionStatusCancelled, 48), guardNow))
}

func TestPaymentDeadlinePassed(t *testing.T) {
	assert.True(t, PaymentDeadlinePassed(sessionAt(models.SessionStatusPaymentPending, 12), guardNow))
	assert.False(t, PaymentDeadlinePassed(sessionAt(models.SessionStatusPaymentPending, 48), guardNow))

	// Only unpaid sessions carry a payment deadline.
	assert.False(t, PaymentDeadlinePassed(sessionAt(models.SessionStatusScheduled, 12), guardNow))
}

func TestGuardWindowsAreDisjointNearTheSessionInstant(t *testing.T) {
	// An unpaid session 12h out: cannot be cancelled or moved, and its
	// payment deadline has passed. The dashboard shows it as expired.
	s := sessionAt(models.SessionStatusPaymentPending, 12)
	assert.False(t, IsCancellable(s, guardNow))
	assert.False(t, IsReschedulable(s, guardNow))
	assert.True(t, PaymentDeadlinePassed(s, guardNow))
}
