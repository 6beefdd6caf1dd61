package journeyRepo

import "panchakarma/models"

// JourneyRepository defines data access for therapy plan templates and
// instantiated patient journeys.
type JourneyRepository interface {
	GetPlan(therapy string) (*models.TherapyPlanTemplate, error)
	CreateJourney(journey *models.PatientJourney) error
	GetJourneyByID(id string) (*models.PatientJourney, error)
	ListByPatient(patientUID string) ([]models.PatientJourney, error)
	SetTaskStatus(journeyID string, taskIndex int, status string) error
}
