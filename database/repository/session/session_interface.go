package sessionRepo

import (
	"time"

	"panchakarma/models"
)

// SessionRepository defines data access methods for appointment sessions.
// Creation and rescheduling go through the scheduler repository's transactional
// primitives; this repository covers everything else.
type SessionRepository interface {
	GetByID(id string) (*models.Session, error)
	SetStatus(id, status string) error
	MarkPaid(id, paymentID string) error
	ListByPatient(patientUID string) ([]models.Session, error)
	ListByPractitioner(practitionerUID string) ([]models.Session, error)
	// BookedTimesFrom returns, per "2006-01-02" date, the "15:04" times of the
	// practitioner's non-cancelled sessions dated at or after from.
	BookedTimesFrom(practitionerUID string, from time.Time) (map[string][]string, error)
}
