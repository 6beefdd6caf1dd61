package booking

import (
	"time"

	"panchakarma/models"
)

// Lifecycle guard windows, measured from "now" to the session instant.
const (
	cancelWindow     = 72 * time.Hour
	rescheduleWindow = 24 * time.Hour
	paymentDeadline  = 24 * time.Hour
)

// IsCancellable reports whether the patient may still cancel: only unpaid
// sessions, and only while more than three days remain. Paid sessions go
// through the clinic, not self-service.
func IsCancellable(s models.Session, now time.Time) bool {
	return s.Status == models.SessionStatusPaymentPending && s.Date.Sub(now) > cancelWindow
}

// IsReschedulable reports whether the patient may move the session: pending or
// confirmed sessions, while more than a day remains.
func IsReschedulable(s models.Session, now time.Time) bool {
	if s.Status != models.SessionStatusPaymentPending && s.Status != models.SessionStatusScheduled {
		return false
	}
	return s.Date.Sub(now) > rescheduleWindow
}

// PaymentDeadlinePassed reports whether an unpaid session has drifted inside
// the payment deadline. It is advisory, computed on read; nothing mutates the
// stored status.
func PaymentDeadlinePassed(s models.Session, now time.Time) bool {
	return s.Status == models.SessionStatusPaymentPending && s.Date.Sub(now) < paymentDeadline
}
