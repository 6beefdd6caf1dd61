package booking

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	patientRepo "panchakarma/database/repository/patient"
	practitionerRepo "panchakarma/database/repository/practitioner"
	schedulerRepo "panchakarma/database/repository/scheduler"
	sessionRepo "panchakarma/database/repository/session"
	"panchakarma/models"
	"panchakarma/services/journey"
	"panchakarma/services/notification"
	"panchakarma/services/payment"
	"panchakarma/services/scheduling"
	"panchakarma/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	slotLayout    = "2006-01-02 15:04"
	orderCurrency = "INR"
	therapyAuto   = "auto"
	paisePerRupee = 100
)

// ReminderScheduler enqueues a pre-session reminder. Satisfied by
// tasks.ReminderScheduler.
type ReminderScheduler interface {
	ScheduleSessionReminder(sessionID string, sessionDate time.Time) error
}

// SessionService runs the appointment lifecycle: request, pay, confirm,
// cancel, complete, reschedule, plus the dashboard listings.
type SessionService interface {
	RequestSession(ctx context.Context, patientUID string, req models.SessionRequest) (*models.Session, error)
	CreatePaymentOrder(ctx context.Context, patientUID, sessionID string) (*models.PaymentOrder, error)
	ConfirmPayment(ctx context.Context, patientUID string, proof models.PaymentProof) (*models.Session, error)
	CancelSession(ctx context.Context, patientUID, sessionID string) error
	CompleteSession(ctx context.Context, practitionerUID, sessionID string) error
	Reschedule(ctx context.Context, patientUID, sessionID, newDate, newTime string) (*models.Session, error)
	PatientSessions(ctx context.Context, patientUID string) ([]models.SessionView, error)
	PractitionerSessions(ctx context.Context, practitionerUID string) ([]models.SessionView, error)
}

// DefaultSessionService is the production implementation.
type DefaultSessionService struct {
	Sessions      sessionRepo.SessionRepository
	Patients      patientRepo.PatientRepository
	Practitioners practitionerRepo.PractitionerRepository
	Scheduler     schedulerRepo.SchedulerRepository
	Availability  scheduling.AvailabilityService
	Journeys      journey.JourneyService
	Gateway       payment.Gateway
	Notifier      notification.NotificationService
	Reminders     ReminderScheduler

	// Categories are the bookable therapy names; "auto" draws one at random.
	Categories []string
	// RazorpayKeyID is echoed to the client so checkout can open.
	RazorpayKeyID string

	Clock func() time.Time
}

func (s *DefaultSessionService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now().UTC()
}

// resolveTherapy normalizes the requested therapy to a configured category,
// or draws one at random for "auto".
func (s *DefaultSessionService) resolveTherapy(requested string) (string, error) {
	if strings.EqualFold(requested, therapyAuto) {
		if len(s.Categories) == 0 {
			return "", ErrUnknownTherapy
		}
		return s.Categories[rand.Intn(len(s.Categories))], nil
	}
	for _, c := range s.Categories {
		if strings.EqualFold(c, requested) {
			return c, nil
		}
	}
	return "", ErrUnknownTherapy
}

func parseSlot(date, timeOfDay string) (time.Time, error) {
	slot, err := time.ParseInLocation(slotLayout, date+" "+timeOfDay, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidSlot
	}
	return slot, nil
}

func slotOffered(slots map[string][]string, date, timeOfDay string) bool {
	for _, t := range slots[date] {
		if t == timeOfDay {
			return true
		}
	}
	return false
}

// RequestSession books a slot with a verified practitioner. The slot must be
// in the future and currently offered; the conflict check itself happens
// inside the scheduler transaction so two concurrent requests cannot both win.
func (s *DefaultSessionService) RequestSession(ctx context.Context, patientUID string, req models.SessionRequest) (*models.Session, error) {
	now := s.now()

	slot, err := parseSlot(req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	if !slot.After(now) {
		return nil, ErrInvalidSlot
	}

	practitioner, err := s.Practitioners.GetByID(req.PractitionerUID)
	if err != nil {
		return nil, err
	}
	if practitioner == nil {
		return nil, ErrPractitionerNotFound
	}
	if practitioner.VerificationStatus != models.VerificationVerified {
		return nil, ErrPractitionerNotVerified
	}

	therapy, err := s.resolveTherapy(req.Therapy)
	if err != nil {
		return nil, err
	}

	slots, err := s.Availability.GetAvailability(ctx, req.PractitionerUID)
	if err != nil {
		return nil, err
	}
	if !slotOffered(slots, req.Date, req.Time) {
		return nil, ErrSlotUnavailable
	}

	sess := &models.Session{
		ID:               uuid.New().String(),
		PatientUID:       patientUID,
		PractitionerUID:  req.PractitionerUID,
		Therapy:          therapy,
		Date:             slot,
		Status:           models.SessionStatusPaymentPending,
		PaymentStatus:    models.PaymentStatusPending,
		AppointmentPrice: practitioner.AppointmentPrice,
		SessionPrice:     practitioner.SessionPrice,
		AmountDue:        practitioner.AppointmentPrice + practitioner.SessionPrice,
		CreatedAt:        now,
	}

	if err := s.Scheduler.CreateSessionIfSlotFree(ctx, sess); err != nil {
		if errors.Is(err, schedulerRepo.ErrSlotTaken) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	s.Availability.Invalidate(ctx, req.PractitionerUID)
	s.Notifier.Notify(ctx, req.PractitionerUID,
		"New "+therapy+" session requested for "+req.Date+" "+req.Time+".", "session_requested")

	return sess, nil
}

// CreatePaymentOrder opens a gateway order for the session's amount due, in
// paise. Only the owning patient can pay, and only while payment is pending.
func (s *DefaultSessionService) CreatePaymentOrder(ctx context.Context, patientUID, sessionID string) (*models.PaymentOrder, error) {
	sess, err := s.ownedSession(patientUID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status != models.SessionStatusPaymentPending {
		return nil, ErrNotAwaitingPayment
	}
	if sess.AmountDue <= 0 {
		return nil, ErrNothingToPay
	}

	amount := int64(sess.AmountDue) * paisePerRupee
	orderID, err := s.Gateway.CreateOrder(ctx, amount, orderCurrency, sess.ID)
	if err != nil {
		return nil, err
	}
	return &models.PaymentOrder{
		OrderID:  orderID,
		Amount:   amount,
		Currency: orderCurrency,
		KeyID:    s.RazorpayKeyID,
	}, nil
}

// ConfirmPayment verifies the checkout signature and promotes the session to
// scheduled. Journey instantiation and the reminder are best-effort: a paid
// session is never rolled back because a follow-up step failed.
func (s *DefaultSessionService) ConfirmPayment(ctx context.Context, patientUID string, proof models.PaymentProof) (*models.Session, error) {
	logger := utils.GetLogger()

	sess, err := s.ownedSession(patientUID, proof.SessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status != models.SessionStatusPaymentPending {
		return nil, ErrNotAwaitingPayment
	}
	if !s.Gateway.VerifySignature(proof.OrderID, proof.PaymentID, proof.Signature) {
		return nil, ErrPaymentVerification
	}

	if err := s.Sessions.MarkPaid(sess.ID, proof.PaymentID); err != nil {
		return nil, err
	}
	sess.Status = models.SessionStatusScheduled
	sess.PaymentStatus = models.PaymentStatusPaid
	sess.PaymentID = proof.PaymentID

	if err := s.Journeys.InstantiateForSession(ctx, *sess); err != nil {
		logger.Error("failed to create journey after payment",
			zap.String("sessionID", sess.ID), zap.Error(err))
	}
	if s.Reminders != nil {
		if err := s.Reminders.ScheduleSessionReminder(sess.ID, sess.Date); err != nil {
			logger.Warn("failed to schedule session reminder",
				zap.String("sessionID", sess.ID), zap.Error(err))
		}
	}

	s.Notifier.Notify(ctx, sess.PatientUID,
		"Payment received. Your "+sess.Therapy+" session is confirmed.", "session_confirmed")
	s.Notifier.Notify(ctx, sess.PractitionerUID,
		"A "+sess.Therapy+" session on "+sess.Date.UTC().Format(slotLayout)+" is now confirmed.", "session_confirmed")

	return sess, nil
}

// CancelSession cancels an unpaid session while the cancellation window is
// still open, releasing the slot.
func (s *DefaultSessionService) CancelSession(ctx context.Context, patientUID, sessionID string) error {
	sess, err := s.ownedSession(patientUID, sessionID)
	if err != nil {
		return err
	}
	if !IsCancellable(*sess, s.now()) {
		return ErrNotCancellable
	}

	if err := s.Sessions.SetStatus(sess.ID, models.SessionStatusCancelled); err != nil {
		return err
	}

	s.Availability.Invalidate(ctx, sess.PractitionerUID)
	s.Notifier.Notify(ctx, sess.PractitionerUID,
		"The "+sess.Therapy+" session on "+sess.Date.UTC().Format(slotLayout)+" was cancelled.", "session_cancelled")
	return nil
}

// CompleteSession marks a session completed. Only the assigned practitioner
// may do so.
func (s *DefaultSessionService) CompleteSession(ctx context.Context, practitionerUID, sessionID string) error {
	sess, err := s.Sessions.GetByID(sessionID)
	if err != nil {
		return err
	}
	if sess == nil {
		return ErrSessionNotFound
	}
	if sess.PractitionerUID != practitionerUID {
		return ErrNotSessionOwner
	}

	if err := s.Sessions.SetStatus(sess.ID, models.SessionStatusCompleted); err != nil {
		return err
	}
	s.Notifier.Notify(ctx, sess.PatientUID,
		"Your "+sess.Therapy+" session has been marked completed.", "session_completed")
	return nil
}

// Reschedule moves a session to a new offered slot. The move and the release
// of the old slot back into the practitioner's overrides commit together in
// the scheduler transaction.
func (s *DefaultSessionService) Reschedule(ctx context.Context, patientUID, sessionID, newDate, newTime string) (*models.Session, error) {
	now := s.now()

	slot, err := parseSlot(newDate, newTime)
	if err != nil {
		return nil, err
	}
	if !slot.After(now) {
		return nil, ErrInvalidSlot
	}

	sess, err := s.ownedSession(patientUID, sessionID)
	if err != nil {
		return nil, err
	}
	if !IsReschedulable(*sess, now) {
		return nil, ErrNotReschedulable
	}

	slots, err := s.Availability.GetAvailability(ctx, sess.PractitionerUID)
	if err != nil {
		return nil, err
	}
	if !slotOffered(slots, newDate, newTime) {
		return nil, ErrSlotUnavailable
	}

	moved, err := s.Scheduler.RescheduleSession(ctx, sess.ID, slot)
	if err != nil {
		if errors.Is(err, schedulerRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	s.Availability.Invalidate(ctx, sess.PractitionerUID)
	s.Notifier.Notify(ctx, sess.PractitionerUID,
		"The "+sess.Therapy+" session was moved to "+newDate+" "+newTime+".", "session_rescheduled")

	return moved, nil
}

// PatientSessions lists the patient's sessions decorated with practitioner
// names and the advisory lifecycle flags.
func (s *DefaultSessionService) PatientSessions(_ context.Context, patientUID string) ([]models.SessionView, error) {
	sessions, err := s.Sessions.ListByPatient(patientUID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	names := map[string]string{}
	views := make([]models.SessionView, 0, len(sessions))
	for _, sess := range sessions {
		name, ok := names[sess.PractitionerUID]
		if !ok {
			if p, err := s.Practitioners.GetByID(sess.PractitionerUID); err == nil && p != nil {
				name = p.Name
			}
			names[sess.PractitionerUID] = name
		}
		views = append(views, models.SessionView{
			Session:               sess,
			PractitionerName:      name,
			Cancellable:           IsCancellable(sess, now),
			Reschedulable:         IsReschedulable(sess, now),
			PaymentDeadlinePassed: PaymentDeadlinePassed(sess, now),
		})
	}
	return views, nil
}

// PractitionerSessions lists a practitioner's sessions decorated with patient
// names.
func (s *DefaultSessionService) PractitionerSessions(_ context.Context, practitionerUID string) ([]models.SessionView, error) {
	sessions, err := s.Sessions.ListByPractitioner(practitionerUID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	names := map[string]string{}
	views := make([]models.SessionView, 0, len(sessions))
	for _, sess := range sessions {
		name, ok := names[sess.PatientUID]
		if !ok {
			if p, err := s.Patients.GetByID(sess.PatientUID); err == nil && p != nil {
				name = p.Name
			}
			names[sess.PatientUID] = name
		}
		views = append(views, models.SessionView{
			Session:               sess,
			PatientName:           name,
			Reschedulable:         IsReschedulable(sess, now),
			PaymentDeadlinePassed: PaymentDeadlinePassed(sess, now),
		})
	}
	return views, nil
}

func (s *DefaultSessionService) ownedSession(patientUID, sessionID string) (*models.Session, error) {
	sess, err := s.Sessions.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	if sess.PatientUID != patientUID {
		return nil, ErrNotSessionOwner
	}
	return sess, nil
}
