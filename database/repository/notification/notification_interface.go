package notificationRepo

import "panchakarma/models"

// NotificationRepository defines data access for the notification inbox and
// per-user delivery preferences.
type NotificationRepository interface {
	Create(notification *models.Notification) error
	ListByRecipient(recipientID string) ([]models.Notification, error)
	SetPreferences(prefs *models.NotificationPreferences) error
	GetPreferences(userID string) (*models.NotificationPreferences, error)
}
