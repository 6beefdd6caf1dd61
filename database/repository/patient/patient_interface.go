package patientRepo

import "panchakarma/models"

// PatientRepository defines data access methods for patient profiles.
type PatientRepository interface {
	Create(patient *models.Patient) error
	Update(patient *models.Patient) error
	GetByID(id string) (*models.Patient, error)
	GetAll() ([]models.Patient, error)
}
