package models

import "time"

// Notification is one in-app inbox entry. Push delivery is best-effort and
// never blocks the operation that produced the notification.
type Notification struct {
	ID          string    `bson:"id" json:"id"`
	RecipientID string    `bson:"recipient_id" json:"recipient_id"`
	Message     string    `bson:"message" json:"message"`
	Type        string    `bson:"type" json:"type"`
	Read        bool      `bson:"read" json:"read"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// NotificationPreferences are per-user delivery channel toggles.
type NotificationPreferences struct {
	UserID string `bson:"user_id" json:"user_id"`
	InApp  bool   `bson:"in_app" json:"in_app"`
	SMS    bool   `bson:"sms" json:"sms"`
	Email  bool   `bson:"email" json:"email"`
}
