package models

import "time"

// Patient is a patient profile. The document id is the Firebase uid.
type Patient struct {
	ID        string    `bson:"id" json:"id"`
	Email     string    `bson:"email" json:"email"`
	Name      string    `bson:"name" json:"name"`
	Number    string    `bson:"number" json:"number"`
	Role      string    `bson:"role" json:"role"`
	FCMToken  string    `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
