package notification

import (
	"context"
	"time"

	notificationRepo "panchakarma/database/repository/notification"
	patientRepo "panchakarma/database/repository/patient"
	practitionerRepo "panchakarma/database/repository/practitioner"
	"panchakarma/models"
	"panchakarma/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationService is the fire-and-forget notification sink. Failures are
// logged and never surface to the operation that triggered the notification.
type NotificationService interface {
	Notify(ctx context.Context, recipientID, message, category string)
	ListForRecipient(ctx context.Context, recipientID string) ([]models.Notification, error)
	SavePreferences(ctx context.Context, prefs models.NotificationPreferences) error
	GetPreferences(ctx context.Context, userID string) (*models.NotificationPreferences, error)
}

// DefaultNotificationService writes an inbox record and pushes over FCM when
// the recipient has a registered device token.
type DefaultNotificationService struct {
	Repo          notificationRepo.NotificationRepository
	Patients      patientRepo.PatientRepository
	Practitioners practitionerRepo.PractitionerRepository
	FCM           *messaging.Client
}

// Notify records the notification and fires a best-effort push.
func (s *DefaultNotificationService) Notify(_ context.Context, recipientID, message, category string) {
	logger := utils.GetLogger()

	n := &models.Notification{
		ID:          uuid.New().String(),
		RecipientID: recipientID,
		Message:     message,
		Type:        category,
		Read:        false,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.Create(n); err != nil {
		logger.Error("failed to store notification",
			zap.String("recipientID", recipientID), zap.String("type", category), zap.Error(err))
	}

	if s.FCM == nil {
		return
	}
	// Push delivery runs detached from the triggering request.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		token := s.lookupFCMToken(recipientID)
		if token == "" {
			return
		}
		msg := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: "Panchakarma",
				Body:  message,
			},
			Data: map[string]string{"type": category},
		}
		if _, err := s.FCM.Send(ctx, msg); err != nil {
			logger.Warn("failed to send push notification",
				zap.String("recipientID", recipientID), zap.Error(err))
		}
	}()
}

func (s *DefaultNotificationService) lookupFCMToken(recipientID string) string {
	if p, err := s.Patients.GetByID(recipientID); err == nil && p != nil {
		return p.FCMToken
	}
	if pr, err := s.Practitioners.GetByID(recipientID); err == nil && pr != nil {
		return pr.FCMToken
	}
	return ""
}

// ListForRecipient returns the recipient's inbox, newest first.
func (s *DefaultNotificationService) ListForRecipient(_ context.Context, recipientID string) ([]models.Notification, error) {
	return s.Repo.ListByRecipient(recipientID)
}

// SavePreferences upserts the delivery channel toggles.
func (s *DefaultNotificationService) SavePreferences(_ context.Context, prefs models.NotificationPreferences) error {
	return s.Repo.SetPreferences(&prefs)
}

// GetPreferences fetches the delivery channel toggles.
func (s *DefaultNotificationService) GetPreferences(_ context.Context, userID string) (*models.NotificationPreferences, error) {
	return s.Repo.GetPreferences(userID)
}
