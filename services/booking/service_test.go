package booking

import (
	"context"
	"testing"
	"time"

	schedulerRepo "panchakarma/database/repository/scheduler"
	"panchakarma/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookNow = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

type fakeSessions struct {
	byID map[string]*models.Session
}

func (f *fakeSessions) GetByID(id string) (*models.Session, error) {
	return f.byID[id], nil
}

func (f *fakeSessions) SetStatus(id, status string) error {
	f.byID[id].Status = status
	return nil
}

func (f *fakeSessions) MarkPaid(id, paymentID string) error {
	s := f.byID[id]
	s.Status = models.SessionStatusScheduled
	s.PaymentStatus = models.PaymentStatusPaid
	s.PaymentID = paymentID
	return nil
}

func (f *fakeSessions) ListByPatient(patientUID string) ([]models.Session, error) {
	var out []models.Session
	for _, s := range f.byID {
		if s.PatientUID == patientUID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSessions) ListByPractitioner(practitionerUID string) ([]models.Session, error) {
	var out []models.Session
	for _, s := range f.byID {
		if s.PractitionerUID == practitionerUID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSessions) BookedTimesFrom(string, time.Time) (map[string][]string, error) {
	return map[string][]string{}, nil
}

type fakePatients struct{ byID map[string]*models.Patient }

func (f *fakePatients) Create(*models.Patient) error { return nil }
func (f *fakePatients) Update(*models.Patient) error { return nil }
func (f *fakePatients) GetByID(id string) (*models.Patient, error) {
	return f.byID[id], nil
}
func (f *fakePatients) GetAll() ([]models.Patient, error) { return nil, nil }

type fakePractitioners struct{ byID map[string]*models.Practitioner }

func (f *fakePractitioners) Create(*models.Practitioner) error                { return nil }
func (f *fakePractitioners) Update(*models.Practitioner) error                { return nil }
func (f *fakePractitioners) UpdateFields(string, map[string]interface{}) error { return nil }
func (f *fakePractitioners) GetByID(id string) (*models.Practitioner, error) {
	return f.byID[id], nil
}
func (f *fakePractitioners) GetAll() ([]models.Practitioner, error) { return nil, nil }
func (f *fakePractitioners) GetByVerificationStatus(string) ([]models.Practitioner, error) {
	return nil, nil
}

// fakeScheduler mimics the transactional repo: exact slot collisions are
// rejected, reschedules record the released time.
type fakeScheduler struct {
	sessions *fakeSessions
	released map[string][]string // old date -> released times
}

func (f *fakeScheduler) CreateSessionIfSlotFree(_ context.Context, sess *models.Session) error {
	for _, existing := range f.sessions.byID {
		if existing.PractitionerUID == sess.PractitionerUID &&
			existing.Date.Equal(sess.Date) &&
			existing.Status != models.SessionStatusCancelled {
			return schedulerRepo.ErrSlotTaken
		}
	}
	f.sessions.byID[sess.ID] = sess
	return nil
}

func (f *fakeScheduler) RescheduleSession(_ context.Context, sessionID string, newDate time.Time) (*models.Session, error) {
	sess, ok := f.sessions.byID[sessionID]
	if !ok {
		return nil, schedulerRepo.ErrSessionNotFound
	}
	oldDate := sess.Date.UTC().Format("2006-01-02")
	oldTime := sess.Date.UTC().Format("15:04")
	if f.released == nil {
		f.released = map[string][]string{}
	}
	f.released[oldDate] = append(f.released[oldDate], oldTime)
	sess.Date = newDate
	sess.Rescheduled = true
	return sess, nil
}

type fakeAvailability struct {
	slots       map[string][]string
	invalidated int
}

func (f *fakeAvailability) GetAvailability(context.Context, string) (map[string][]string, error) {
	return f.slots, nil
}
func (f *fakeAvailability) Invalidate(context.Context, string) { f.invalidated++ }

type fakeJourneys struct{ instantiated []models.Session }

func (f *fakeJourneys) InstantiateForSession(_ context.Context, sess models.Session) error {
	f.instantiated = append(f.instantiated, sess)
	return nil
}
func (f *fakeJourneys) CompleteTask(context.Context, string, string, int) error { return nil }
func (f *fakeJourneys) ListByPatient(context.Context, string) ([]models.PatientJourney, error) {
	return nil, nil
}

type fakeGateway struct {
	orders    []int64
	validSigs bool
}

func (f *fakeGateway) CreateOrder(_ context.Context, amount int64, _, _ string) (string, error) {
	f.orders = append(f.orders, amount)
	return "order_test_1", nil
}
func (f *fakeGateway) VerifySignature(string, string, string) bool { return f.validSigs }

type fakeNotifier struct{ sent []string }

func (f *fakeNotifier) Notify(_ context.Context, recipientID, _, category string) {
	f.sent = append(f.sent, recipientID+":"+category)
}
func (f *fakeNotifier) ListForRecipient(context.Context, string) ([]models.Notification, error) {
	return nil, nil
}
func (f *fakeNotifier) SavePreferences(context.Context, models.NotificationPreferences) error {
	return nil
}
func (f *fakeNotifier) GetPreferences(context.Context, string) (*models.NotificationPreferences, error) {
	return nil, nil
}

type fakeReminders struct{ scheduled []string }

func (f *fakeReminders) ScheduleSessionReminder(sessionID string, _ time.Time) error {
	f.scheduled = append(f.scheduled, sessionID)
	return nil
}

type harness struct {
	svc       *DefaultSessionService
	sessions  *fakeSessions
	scheduler *fakeScheduler
	avail     *fakeAvailability
	journeys  *fakeJourneys
	gateway   *fakeGateway
	notifier  *fakeNotifier
	reminders *fakeReminders
}

func newHarness() *harness {
	sessions := &fakeSessions{byID: map[string]*models.Session{}}
	scheduler := &fakeScheduler{sessions: sessions}
	avail := &fakeAvailability{slots: map[string][]string{
		"2025-03-20": {"09:00", "10:00", "11:00"},
		"2025-03-21": {"14:00"},
	}}
	journeys := &fakeJourneys{}
	gateway := &fakeGateway{validSigs: true}
	notifier := &fakeNotifier{}
	reminders := &fakeReminders{}

	svc := &DefaultSessionService{
		Sessions: sessions,
		Patients: &fakePatients{byID: map[string]*models.Patient{
			"patient-1": {ID: "patient-1", Name: "Asha"},
		}},
		Practitioners: &fakePractitioners{byID: map[string]*models.Practitioner{
			"prac-1": {
				ID:                 "prac-1",
				Name:               "Dr. Rao",
				VerificationStatus: models.VerificationVerified,
				AppointmentPrice:   500,
				SessionPrice:       1500,
			},
			"prac-unverified": {
				ID:                 "prac-unverified",
				VerificationStatus: models.VerificationPending,
			},
		}},
		Scheduler:     scheduler,
		Availability:  avail,
		Journeys:      journeys,
		Gateway:       gateway,
		Notifier:      notifier,
		Reminders:     reminders,
		Categories:    []string{"Virechana", "Nasya", "Basti", "Vamana", "Raktamokshana"},
		RazorpayKeyID: "rzp_test_key",
		Clock:         func() time.Time { return bookNow },
	}
	return &harness{svc, sessions, scheduler, avail, journeys, gateway, notifier, reminders}
}

func bookingRequest() models.SessionRequest {
	return models.SessionRequest{
		PractitionerUID: "prac-1",
		Therapy:         "Basti",
		Date:            "2025-03-20",
		Time:            "10:00",
	}
}

func TestRequestSession(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	sess, err := h.svc.RequestSession(ctx, "patient-1", bookingRequest())
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusPaymentPending, sess.Status)
	assert.Equal(t, models.PaymentStatusPending, sess.PaymentStatus)
	assert.Equal(t, "Basti", sess.Therapy)
	assert.Equal(t, time.Date(2025, 3, 20, 10, 0, 0, 0, time.UTC), sess.Date)
	assert.Equal(t, 2000, sess.AmountDue)
	assert.Equal(t, 1, h.avail.invalidated)
	assert.Contains(t, h.notifier.sent, "prac-1:session_requested")
}

func TestRequestSession_SecondBookingOfSameSlotLoses(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	_, err := h.svc.RequestSession(ctx, "patient-1", bookingRequest())
	require.NoError(t, err)

	_, err = h.svc.RequestSession(ctx, "patient-2", bookingRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Len(t, h.sessions.byID, 1)
}

func TestRequestSession_Rejections(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	req := bookingRequest()
	req.Time = "08:30" // not in the offered grid
	_, err := h.svc.RequestSession(ctx, "patient-1", req)
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	req = bookingRequest()
	req.Date = "2025-03-01" // before now
	_, err = h.svc.RequestSession(ctx, "patient-1", req)
	assert.ErrorIs(t, err, ErrInvalidSlot)

	req = bookingRequest()
	req.Date = "not-a-date"
	_, err = h.svc.RequestSession(ctx, "patient-1", req)
	assert.ErrorIs(t, err, ErrInvalidSlot)

	req = bookingRequest()
	req.Therapy = "Acupuncture"
	_, err = h.svc.RequestSession(ctx, "patient-1", req)
	assert.ErrorIs(t, err, ErrUnknownTherapy)

	req = bookingRequest()
	req.PractitionerUID = "prac-unverified"
	_, err = h.svc.RequestSession(ctx, "patient-1", req)
	assert.ErrorIs(t, err, ErrPractitionerNotVerified)

	req = bookingRequest()
	req.PractitionerUID = "nobody"
	_, err = h.svc.RequestSession(ctx, "patient-1", req)
	assert.ErrorIs(t, err, ErrPractitionerNotFound)
}

func TestRequestSession_AutoTherapyDrawsFromConfiguredCategories(t *testing.T) {
	h := newHarness()
	req := bookingRequest()
	req.Therapy = "auto"

	sess, err := h.svc.RequestSession(context.Background(), "patient-1", req)
	require.NoError(t, err)
	assert.Contains(t, h.svc.Categories, sess.Therapy)
}

func TestCreatePaymentOrder(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	sess, err := h.svc.RequestSession(ctx, "patient-1", bookingRequest())
	require.NoError(t, err)

	order, err := h.svc.CreatePaymentOrder(ctx, "patient-1", sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "order_test_1", order.OrderID)
	assert.Equal(t, int64(200000), order.Amount) // 2000 rupees in paise
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, "rzp_test_key", order.KeyID)

	// Another patient cannot open an order for this session.
	_, err = h.svc.CreatePaymentOrder(ctx, "patient-2", sess.ID)
	assert.ErrorIs(t, err, ErrNotSessionOwner)
}

func TestConfirmPayment_SchedulesSessionAndCreatesJourney(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	sess, err := h.svc.RequestSession(ctx, "patient-1", bookingRequest())
	require.NoError(t, err)

	confirmed, err := h.svc.ConfirmPayment(ctx, "patient-1", models.PaymentProof{
		SessionID: sess.ID,
		OrderID:   "order_test_1",
		PaymentID: "pay_test_1",
		Signature: "sig",
	})
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusScheduled, confirmed.Status)
	assert.Equal(t, models.PaymentStatusPaid, confirmed.PaymentStatus)
	assert.Equal(t, "pay_test_1", confirmed.PaymentID)

	require.Len(t, h.journeys.instantiated, 1)
	assert.Equal(t, sess.ID, h.journeys.instantiated[0].ID)
	assert.Equal(t, []string{sess.ID}, h.reminders.scheduled)

	// A second confirmation is rejected: the session already left
	// payment_pending.
	_, err = h.svc.ConfirmPayment(ctx, "patient-1", models.PaymentProof{
		SessionID: sess.ID, OrderID: "o", PaymentID: "p", Signature: "s",
	})
	assert.ErrorIs(t, err, ErrNotAwaitingPayment)
}

func TestConfirmPayment_BadSignature(t *testing.T) {
	h := newHarness()
	h.gateway.validSigs = false
	ctx := context.Background()

	sess, err := h.svc.RequestSession(ctx, "patient-1", bookingRequest())
	require.NoError(t, err)

	_, err = h.svc.ConfirmPayment(ctx, "patient-1", models.PaymentProof{
		SessionID: sess.ID, OrderID: "o", PaymentID: "p", Signature: "forged",
	})
	assert.ErrorIs(t, err, ErrPaymentVerification)
	assert.Equal(t, models.SessionStatusPaymentPending, h.sessions.byID[sess.ID].Status)
	assert.Empty(t, h.journeys.instantiated)
}

func TestCancelSession(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	sess, err := h.svc.RequestSession(ctx, "patient-1", bookingRequest())
	require.NoError(t, err)

	require.NoError(t, h.svc.CancelSession(ctx, "patient-1", sess.ID))
	assert.Equal(t, models.SessionStatusCancelled, h.sessions.byID[sess.ID].Status)

	// The released slot is bookable again.
	_, err = h.svc.RequestSession(ctx, "patient-2", bookingRequest())
	assert.NoError(t, err)
}

func TestCancelSession_WindowClosed(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	sess, err := h.svc.RequestSession(ctx, "patient-1", bookingRequest())
	require.NoError(t, err)

	// Move the clock to two days before the session.
	h.svc.Clock = func() time.Time { return sess.Date.Add(-48 * time.Hour) }
	err = h.svc.CancelSession(ctx, "patient-1", sess.ID)
	assert.ErrorIs(t, err, ErrNotCancellable)
	assert.Equal(t, models.SessionStatusPaymentPending, h.sessions.byID[sess.ID].Status)
}

func TestReschedule(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	sess, err := h.svc.RequestSession(ctx, "patient-1", bookingRequest())
	require.NoError(t, err)

	moved, err := h.svc.Reschedule(ctx, "patient-1", sess.ID, "2025-03-21", "14:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 21, 14, 0, 0, 0, time.UTC), moved.Date)
	assert.True(t, moved.Rescheduled)

	// The old slot was handed back as a date override.
	assert.Equal(t, []string{"10:00"}, h.scheduler.released["2025-03-20"])
	assert.Contains(t, h.notifier.sent, "prac-1:session_rescheduled")
}

func TestReschedule_Rejections(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	sess, err := h.svc.RequestSession(ctx, "patient-1", bookingRequest())
	require.NoError(t, err)

	_, err = h.svc.Reschedule(ctx, "patient-1", sess.ID, "2025-03-21", "15:00")
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	_, err = h.svc.Reschedule(ctx, "patient-2", sess.ID, "2025-03-21", "14:00")
	assert.ErrorIs(t, err, ErrNotSessionOwner)

	// Within a day of the session the move is refused.
	h.svc.Clock = func() time.Time { return sess.Date.Add(-12 * time.Hour) }
	_, err = h.svc.Reschedule(ctx, "patient-1", sess.ID, "2025-03-21", "14:00")
	assert.ErrorIs(t, err, ErrNotReschedulable)
}

func TestCompleteSession(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	sess, err := h.svc.RequestSession(ctx, "patient-1", bookingRequest())
	require.NoError(t, err)

	assert.ErrorIs(t, h.svc.CompleteSession(ctx, "someone-else", sess.ID), ErrNotSessionOwner)
	require.NoError(t, h.svc.CompleteSession(ctx, "prac-1", sess.ID))
	assert.Equal(t, models.SessionStatusCompleted, h.sessions.byID[sess.ID].Status)
}

func TestPatientSessions_ViewsCarryNamesAndFlags(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	sess, err := h.svc.RequestSession(ctx, "patient-1", bookingRequest())
	require.NoError(t, err)

	views, err := h.svc.PatientSessions(ctx, "patient-1")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, sess.ID, views[0].ID)
	assert.Equal(t, "Dr. Rao", views[0].PractitionerName)
	assert.True(t, views[0].Cancellable) // ten days out, unpaid
	assert.True(t, views[0].Reschedulable)
	assert.False(t, views[0].PaymentDeadlinePassed)
}
