package models

import "time"

// Feedback is a patient's note about a practitioner, shown on the
// practitioner dashboard.
type Feedback struct {
	ID              string    `bson:"id" json:"id"`
	PractitionerUID string    `bson:"practitioner_uid" json:"practitioner_uid"`
	PatientUID      string    `bson:"patient_uid" json:"patient_uid"`
	PatientName     string    `bson:"-" json:"patient_name,omitempty"`
	Text            string    `bson:"text" json:"text"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}
