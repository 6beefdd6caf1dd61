package journey

import (
	"context"
	"fmt"
	"strings"

	journeyRepo "panchakarma/database/repository/journey"
	"panchakarma/models"
	"panchakarma/utils"

	"go.uber.org/zap"
)

// JourneyService instantiates therapy plans into dated patient journeys and
// tracks task completion.
type JourneyService interface {
	InstantiateForSession(ctx context.Context, sess models.Session) error
	CompleteTask(ctx context.Context, patientUID, journeyID string, taskIndex int) error
	ListByPatient(ctx context.Context, patientUID string) ([]models.PatientJourney, error)
}

// DefaultJourneyService is the production implementation.
type DefaultJourneyService struct {
	Repo journeyRepo.JourneyRepository
}

// InstantiateForSession expands the matching therapy plan template against the
// session date. A missing template is a logged no-op, not an error: payment
// confirmation must not fail because a plan was never authored.
func (s *DefaultJourneyService) InstantiateForSession(_ context.Context, sess models.Session) error {
	logger := utils.GetLogger()
	therapy := strings.ToLower(sess.Therapy)

	plan, err := s.Repo.GetPlan(therapy)
	if err != nil {
		return fmt.Errorf("failed to load therapy plan %q: %w", therapy, err)
	}
	if plan == nil {
		logger.Info("no therapy plan template; skipping journey creation",
			zap.String("therapy", therapy), zap.String("sessionID", sess.ID))
		return nil
	}

	tasks := make([]models.JourneyTask, 0, len(plan.Tasks))
	for _, tmpl := range plan.Tasks {
		tasks = append(tasks, models.JourneyTask{
			Title:       tmpl.Title,
			Description: tmpl.Description,
			TaskDate:    sess.Date.AddDate(0, 0, tmpl.DayOffset),
			Status:      models.TaskStatusPending,
		})
	}

	journey := &models.PatientJourney{
		ID:          sess.ID,
		PatientUID:  sess.PatientUID,
		SessionID:   sess.ID,
		PlanName:    plan.PlanName,
		TherapyType: capitalize(therapy),
		SessionDate: sess.Date,
		Tasks:       tasks,
	}
	if err := s.Repo.CreateJourney(journey); err != nil {
		return fmt.Errorf("failed to create journey for session %s: %w", sess.ID, err)
	}

	logger.Info("created patient journey",
		zap.String("sessionID", sess.ID), zap.Int("tasks", len(tasks)))
	return nil
}

// ErrTaskIndexOutOfRange rejects updates addressing a task that does not exist.
var ErrTaskIndexOutOfRange = fmt.Errorf("task index out of range")

// ErrJourneyNotFound reports a missing journey document.
var ErrJourneyNotFound = fmt.Errorf("journey not found")

// ErrNotJourneyOwner rejects updates from anyone but the journey's patient.
var ErrNotJourneyOwner = fmt.Errorf("journey belongs to another patient")

// CompleteTask flips one task to completed. The index is bounds-checked against
// the stored document and the caller must own the journey.
func (s *DefaultJourneyService) CompleteTask(_ context.Context, patientUID, journeyID string, taskIndex int) error {
	journey, err := s.Repo.GetJourneyByID(journeyID)
	if err != nil {
		return err
	}
	if journey == nil {
		return ErrJourneyNotFound
	}
	if journey.PatientUID != patientUID {
		return ErrNotJourneyOwner
	}
	if taskIndex < 0 || taskIndex >= len(journey.Tasks) {
		return ErrTaskIndexOutOfRange
	}
	return s.Repo.SetTaskStatus(journeyID, taskIndex, models.TaskStatusCompleted)
}

// ListByPatient returns all of a patient's journeys.
func (s *DefaultJourneyService) ListByPatient(_ context.Context, patientUID string) ([]models.PatientJourney, error) {
	return s.Repo.ListByPatient(patientUID)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
