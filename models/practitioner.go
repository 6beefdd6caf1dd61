package models

import "time"

// Practitioner verification states set by the admin approval flow.
const (
	VerificationPending  = "Pending Review"
	VerificationVerified = "Verified"
)

type Contact struct {
	Phone string `bson:"phone" json:"phone"`
	Email string `bson:"email" json:"email"`
}

// Practitioner is a clinic practitioner profile. The document id is the
// Firebase uid of the account.
type Practitioner struct {
	ID                 string    `bson:"id" json:"id"`
	Email              string    `bson:"email" json:"email"`
	Name               string    `bson:"name" json:"name"`
	Number             string    `bson:"number" json:"number"`
	Role               string    `bson:"role" json:"role"` // "practitioner" or "admin"
	VerificationStatus string    `bson:"verification_status" json:"verification_status"`
	Specialties        []string  `bson:"specialties" json:"specialties"`
	Address            string    `bson:"address" json:"address"`
	Contact            Contact   `bson:"contact" json:"contact"`
	AppointmentPrice   int       `bson:"appointment_price" json:"appointment_price"`
	SessionPrice       int       `bson:"session_price" json:"session_price"`
	FCMToken           string    `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
}

// PractitionerProfileUpdate carries the editable profile fields. Nil pointers
// leave the stored value untouched.
type PractitionerProfileUpdate struct {
	Name             *string  `json:"name"`
	Number           *string  `json:"number"`
	Address          *string  `json:"address"`
	Specialties      []string `json:"specialties"`
	AppointmentPrice *int     `json:"appointment_price"`
	SessionPrice     *int     `json:"session_price"`
}
