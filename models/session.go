package models

import "time"

// Session status values. A session is created in payment_pending and only ever
// moves forward through these states; rescheduling changes the date, not the status.
const (
	SessionStatusPaymentPending = "payment_pending"
	SessionStatusScheduled      = "scheduled"
	SessionStatusCompleted      = "completed"
	SessionStatusCancelled      = "cancelled"
)

// Payment status values.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// Session represents one practitioner-patient appointment.
type Session struct {
	ID               string    `bson:"id" json:"id"`
	PatientUID       string    `bson:"patient_uid" json:"patient_uid"`
	PractitionerUID  string    `bson:"practitioner_uid" json:"practitioner_uid"`
	Therapy          string    `bson:"therapy" json:"therapy"`
	Date             time.Time `bson:"date" json:"date"` // UTC instant of the booked slot
	Status           string    `bson:"status" json:"status"`
	PaymentStatus    string    `bson:"payment_status" json:"payment_status"`
	AmountDue        int       `bson:"amount_due" json:"amount_due"`
	AppointmentPrice int       `bson:"appointment_price" json:"appointment_price"`
	SessionPrice     int       `bson:"session_price" json:"session_price"`
	PaymentID        string    `bson:"payment_id,omitempty" json:"payment_id,omitempty"`
	Rescheduled      bool      `bson:"rescheduled,omitempty" json:"rescheduled,omitempty"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
}

// SessionRequest is the patient-supplied input for booking a new session.
// Therapy may be "auto", in which case a category is assigned at random.
type SessionRequest struct {
	PractitionerUID string `json:"practitioner_uid" binding:"required"`
	Therapy         string `json:"therapy" binding:"required"`
	Date            string `json:"date" binding:"required"` // "2006-01-02"
	Time            string `json:"time" binding:"required"` // "15:04"
}

// SessionView is a session decorated with the advisory flags the patient
// dashboard displays. The flags are computed on read; none of them mutate state.
type SessionView struct {
	Session
	PractitionerName      string `json:"practitioner_name,omitempty"`
	PatientName           string `json:"patient_name,omitempty"`
	Cancellable           bool   `json:"is_cancellable"`
	Reschedulable         bool   `json:"is_reschedulable"`
	PaymentDeadlinePassed bool   `json:"payment_deadline_passed,omitempty"`
}
