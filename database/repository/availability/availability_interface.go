package availabilityRepo

import "panchakarma/models"

// AvailabilityRepository defines data access methods for availability profiles.
// Override injection during a reschedule does NOT go through this repository;
// that path lives in the scheduler repository's transaction.
type AvailabilityRepository interface {
	Create(profile *models.AvailabilityProfile) error
	GetByPractitioner(practitionerUID string) (*models.AvailabilityProfile, error)
	SetRecurring(practitionerUID string, recurring map[string]models.RecurringRule) error
	SetOverride(practitionerUID, date string, times []string) error
}
