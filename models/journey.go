package models

import "time"

// Journey task status values.
const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
)

// TherapyPlanTemplate is the static plan for one therapy category. Task offsets
// are days relative to the session date.
type TherapyPlanTemplate struct {
	ID       string         `bson:"id" json:"id"` // lowercased therapy name
	PlanName string         `bson:"plan_name" json:"plan_name"`
	Tasks    []TemplateTask `bson:"tasks" json:"tasks"`
}

type TemplateTask struct {
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	DayOffset   int    `bson:"day_offset" json:"day_offset"`
}

// JourneyTask is one dated task in an instantiated journey. Tasks are addressed
// by array index; updates must bounds-check.
type JourneyTask struct {
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	TaskDate    time.Time `bson:"task_date" json:"task_date"`
	Status      string    `bson:"status" json:"status"`
}

// PatientJourney is a therapy plan instantiated against one confirmed session.
// Its document id equals the session id.
type PatientJourney struct {
	ID          string        `bson:"id" json:"id"`
	PatientUID  string        `bson:"patient_uid" json:"patient_uid"`
	SessionID   string        `bson:"session_id" json:"session_id"`
	PlanName    string        `bson:"plan_name" json:"plan_name"`
	TherapyType string        `bson:"therapy_type" json:"therapy_type"`
	SessionDate time.Time     `bson:"session_date" json:"session_date"`
	Tasks       []JourneyTask `bson:"tasks" json:"tasks"`
}
