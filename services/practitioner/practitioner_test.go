package practitioner

import (
	"context"
	"testing"

	"panchakarma/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePractitionerStore struct {
	byID   map[string]*models.Practitioner
	fields map[string]map[string]interface{}
}

func (f *fakePractitionerStore) Create(p *models.Practitioner) error {
	f.byID[p.ID] = p
	return nil
}
func (f *fakePractitionerStore) Update(p *models.Practitioner) error {
	f.byID[p.ID] = p
	return nil
}
func (f *fakePractitionerStore) UpdateFields(id string, fields map[string]interface{}) error {
	if f.fields == nil {
		f.fields = map[string]map[string]interface{}{}
	}
	f.fields[id] = fields
	return nil
}
func (f *fakePractitionerStore) GetByID(id string) (*models.Practitioner, error) {
	return f.byID[id], nil
}
func (f *fakePractitionerStore) GetAll() ([]models.Practitioner, error) { return nil, nil }
func (f *fakePractitionerStore) GetByVerificationStatus(status string) ([]models.Practitioner, error) {
	var out []models.Practitioner
	for _, p := range f.byID {
		if p.VerificationStatus == status {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeProfiles struct {
	created   []string
	recurring map[string]map[string]models.RecurringRule
	overrides map[string]map[string][]string
}

func (f *fakeProfiles) Create(p *models.AvailabilityProfile) error {
	f.created = append(f.created, p.PractitionerUID)
	return nil
}
func (f *fakeProfiles) GetByPractitioner(string) (*models.AvailabilityProfile, error) {
	return nil, nil
}
func (f *fakeProfiles) SetRecurring(uid string, recurring map[string]models.RecurringRule) error {
	if f.recurring == nil {
		f.recurring = map[string]map[string]models.RecurringRule{}
	}
	f.recurring[uid] = recurring
	return nil
}
func (f *fakeProfiles) SetOverride(uid, date string, times []string) error {
	if f.overrides == nil {
		f.overrides = map[string]map[string][]string{}
	}
	if f.overrides[uid] == nil {
		f.overrides[uid] = map[string][]string{}
	}
	f.overrides[uid][date] = times
	return nil
}

type fakeAvailability struct{ invalidated []string }

func (f *fakeAvailability) GetAvailability(context.Context, string) (map[string][]string, error) {
	return nil, nil
}
func (f *fakeAvailability) Invalidate(_ context.Context, uid string) {
	f.invalidated = append(f.invalidated, uid)
}

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

func newService() (*DefaultPractitionerService, *fakePractitionerStore, *fakeProfiles, *fakeAvailability, *fakeNotifier) {
	store := &fakePractitionerStore{byID: map[string]*models.Practitioner{}}
	profiles := &fakeProfiles{}
	avail := &fakeAvailability{}
	notifier := &fakeNotifier{}
	svc := &DefaultPractitionerService{
		Repo: store, Profiles: profiles, Availability: avail, Notifier: notifier,
	}
	return svc, store, profiles, avail, notifier
}

func TestRegister(t *testing.T) {
	svc, store, profiles, _, _ := newService()
	ctx := context.Background()

	p := models.Practitioner{ID: "prac-1", Name: "Dr. Rao", Email: "rao@example.com"}
	require.NoError(t, svc.Register(ctx, p))

	stored := store.byID["prac-1"]
	require.NotNil(t, stored)
	assert.Equal(t, models.VerificationPending, stored.VerificationStatus)
	assert.Equal(t, "practitioner", stored.Role)
	assert.Equal(t, []string{"prac-1"}, profiles.created)

	assert.ErrorIs(t, svc.Register(ctx, p), ErrAlreadyRegistered)
}

func TestSetRecurring(t *testing.T) {
	svc, _, profiles, avail, _ := newService()
	ctx := context.Background()

	err := svc.SetRecurring(ctx, "prac-1", map[string]models.RecurringRule{
		"Monday ": {Start: "09:00", End: "12:00", Interval: 60},
		"friday":  {Start: "14:00", End: "16:00", Interval: 30},
	})
	require.NoError(t, err)

	stored := profiles.recurring["prac-1"]
	require.Len(t, stored, 2)
	assert.Contains(t, stored, "monday") // key normalized
	assert.Contains(t, stored, "friday")
	assert.Equal(t, []string{"prac-1"}, avail.invalidated)

	assert.ErrorIs(t, svc.SetRecurring(ctx, "prac-1", map[string]models.RecurringRule{
		"funday": {Start: "09:00", End: "12:00"},
	}), ErrInvalidWeekday)

	assert.ErrorIs(t, svc.SetRecurring(ctx, "prac-1", map[string]models.RecurringRule{
		"monday": {Start: "9am", End: "12:00"},
	}), ErrInvalidRecurringRule)
}

func TestSetOverride(t *testing.T) {
	svc, _, profiles, avail, _ := newService()
	ctx := context.Background()

	err := svc.SetOverride(ctx, "prac-1", models.DateOverrideRequest{
		Date:  "2025-03-20",
		Times: " 11:00, 09:00,10:00 ,09:00",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, profiles.overrides["prac-1"]["2025-03-20"])
	assert.Equal(t, []string{"prac-1"}, avail.invalidated)

	// Empty list closes the date; the stored value is an empty slice, not nil.
	require.NoError(t, svc.SetOverride(ctx, "prac-1", models.DateOverrideRequest{Date: "2025-03-21"}))
	times, ok := profiles.overrides["prac-1"]["2025-03-21"]
	require.True(t, ok)
	assert.NotNil(t, times)
	assert.Empty(t, times)

	assert.ErrorIs(t, svc.SetOverride(ctx, "prac-1", models.DateOverrideRequest{
		Date: "20-03-2025", Times: "09:00",
	}), ErrInvalidDate)

	assert.ErrorIs(t, svc.SetOverride(ctx, "prac-1", models.DateOverrideRequest{
		Date: "2025-03-20", Times: "25:99",
	}), ErrInvalidTime)
}

func TestApprove(t *testing.T) {
	svc, store, _, _, notifier := newService()
	ctx := context.Background()

	store.byID["prac-1"] = &models.Practitioner{ID: "prac-1", VerificationStatus: models.VerificationPending}

	require.NoError(t, svc.Approve(ctx, "prac-1"))
	assert.Equal(t, models.VerificationVerified, store.fields["prac-1"]["verification_status"])
	assert.Equal(t, []string{"prac-1:profile_verified"}, notifier.sent)

	assert.ErrorIs(t, svc.Approve(ctx, "missing"), ErrProfileNotFound)
}
