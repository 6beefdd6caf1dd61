package practitionerRepo

import "panchakarma/models"

// PractitionerRepository defines data access methods for practitioner profiles.
type PractitionerRepository interface {
	Create(practitioner *models.Practitioner) error
	Update(practitioner *models.Practitioner) error
	UpdateFields(id string, fields map[string]interface{}) error
	GetByID(id string) (*models.Practitioner, error)
	GetAll() ([]models.Practitioner, error)
	GetByVerificationStatus(status string) ([]models.Practitioner, error)
}
