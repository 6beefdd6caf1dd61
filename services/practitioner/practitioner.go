package practitioner

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	availabilityRepo "panchakarma/database/repository/availability"
	practitionerRepo "panchakarma/database/repository/practitioner"
	"panchakarma/models"
	"panchakarma/services/notification"
	"panchakarma/services/scheduling"
)

var (
	ErrAlreadyRegistered    = errors.New("practitioner already registered")
	ErrProfileNotFound      = errors.New("practitioner not found")
	ErrInvalidWeekday       = errors.New("invalid weekday name")
	ErrInvalidRecurringRule = errors.New("invalid recurring rule")
	ErrInvalidDate          = errors.New("invalid date, want YYYY-MM-DD")
	ErrInvalidTime          = errors.New("invalid time, want HH:MM")
)

var weekdays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// PractitionerService manages practitioner accounts and their bookable
// schedules.
type PractitionerService interface {
	Register(ctx context.Context, p models.Practitioner) error
	GetProfile(ctx context.Context, uid string) (*models.Practitioner, error)
	UpdateProfile(ctx context.Context, uid string, upd models.PractitionerProfileUpdate) error
	SetRecurring(ctx context.Context, uid string, recurring map[string]models.RecurringRule) error
	SetOverride(ctx context.Context, uid string, req models.DateOverrideRequest) error
	ListVerified(ctx context.Context) ([]models.Practitioner, error)
	ListPendingReview(ctx context.Context) ([]models.Practitioner, error)
	Approve(ctx context.Context, uid string) error
}

// DefaultPractitionerService is the production implementation.
type DefaultPractitionerService struct {
	Repo         practitionerRepo.PractitionerRepository
	Profiles     availabilityRepo.AvailabilityRepository
	Availability scheduling.AvailabilityService
	Notifier     notification.NotificationService
}

// Register creates the practitioner profile in Pending Review together with an
// empty availability profile, so schedule edits never race profile creation.
func (s *DefaultPractitionerService) Register(_ context.Context, p models.Practitioner) error {
	existing, err := s.Repo.GetByID(p.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyRegistered
	}

	if p.Role == "" {
		p.Role = "practitioner"
	}
	p.VerificationStatus = models.VerificationPending
	p.CreatedAt = time.Now().UTC()

	if err := s.Repo.Create(&p); err != nil {
		return err
	}
	return s.Profiles.Create(&models.AvailabilityProfile{PractitionerUID: p.ID})
}

// GetProfile fetches one practitioner.
func (s *DefaultPractitionerService) GetProfile(_ context.Context, uid string) (*models.Practitioner, error) {
	p, err := s.Repo.GetByID(uid)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// UpdateProfile applies the non-nil fields of the update.
func (s *DefaultPractitionerService) UpdateProfile(_ context.Context, uid string, upd models.PractitionerProfileUpdate) error {
	fields := map[string]interface{}{}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.Number != nil {
		fields["number"] = *upd.Number
	}
	if upd.Address != nil {
		fields["address"] = *upd.Address
	}
	if upd.Specialties != nil {
		fields["specialties"] = upd.Specialties
	}
	if upd.AppointmentPrice != nil {
		fields["appointment_price"] = *upd.AppointmentPrice
	}
	if upd.SessionPrice != nil {
		fields["session_price"] = *upd.SessionPrice
	}
	if len(fields) == 0 {
		return nil
	}
	return s.Repo.UpdateFields(uid, fields)
}

// SetRecurring replaces the weekly schedule. Keys are normalized to lowercase
// weekday names and every rule's times must parse.
func (s *DefaultPractitionerService) SetRecurring(ctx context.Context, uid string, recurring map[string]models.RecurringRule) error {
	normalized := make(map[string]models.RecurringRule, len(recurring))
	for day, rule := range recurring {
		key := strings.ToLower(strings.TrimSpace(day))
		if !weekdays[key] {
			return ErrInvalidWeekday
		}
		if _, err := time.Parse("15:04", rule.Start); err != nil {
			return ErrInvalidRecurringRule
		}
		if _, err := time.Parse("15:04", rule.End); err != nil {
			return ErrInvalidRecurringRule
		}
		normalized[key] = rule
	}

	if err := s.Profiles.SetRecurring(uid, normalized); err != nil {
		return err
	}
	s.Availability.Invalidate(ctx, uid)
	return nil
}

// SetOverride pins the slot list for one date. Times come in as a
// comma-separated string; an empty string closes the date outright.
func (s *DefaultPractitionerService) SetOverride(ctx context.Context, uid string, req models.DateOverrideRequest) error {
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return ErrInvalidDate
	}

	times, err := parseTimesCSV(req.Times)
	if err != nil {
		return err
	}

	if err := s.Profiles.SetOverride(uid, req.Date, times); err != nil {
		return err
	}
	s.Availability.Invalidate(ctx, uid)
	return nil
}

// parseTimesCSV splits, trims, validates, dedupes and sorts "HH:MM" entries.
func parseTimesCSV(csv string) ([]string, error) {
	times := []string{}
	seen := map[string]bool{}
	for _, raw := range strings.Split(csv, ",") {
		t := strings.TrimSpace(raw)
		if t == "" {
			continue
		}
		if _, err := time.Parse("15:04", t); err != nil {
			return nil, ErrInvalidTime
		}
		if !seen[t] {
			seen[t] = true
			times = append(times, t)
		}
	}
	sort.Strings(times)
	return times, nil
}

// ListVerified returns the practitioners patients can book.
func (s *DefaultPractitionerService) ListVerified(_ context.Context) ([]models.Practitioner, error) {
	return s.Repo.GetByVerificationStatus(models.VerificationVerified)
}

// ListPendingReview returns the admin approval queue.
func (s *DefaultPractitionerService) ListPendingReview(_ context.Context) ([]models.Practitioner, error) {
	return s.Repo.GetByVerificationStatus(models.VerificationPending)
}

// Approve marks a practitioner verified and tells them.
func (s *DefaultPractitionerService) Approve(ctx context.Context, uid string) error {
	p, err := s.Repo.GetByID(uid)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrProfileNotFound
	}

	if err := s.Repo.UpdateFields(uid, map[string]interface{}{
		"verification_status": models.VerificationVerified,
	}); err != nil {
		return err
	}
	s.Notifier.Notify(ctx, uid, "Your practitioner profile has been verified.", "profile_verified")
	return nil
}
