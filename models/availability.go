package models

// RecurringRule generates slots for one weekday: from Start, stepping Interval
// minutes, strictly before End. Times are "HH:MM" strings.
type RecurringRule struct {
	Start    string `bson:"start" json:"start"`
	End      string `bson:"end" json:"end"`
	Interval int    `bson:"interval" json:"interval"` // minutes; <= 0 falls back to 60
}

// AvailabilityProfile holds a practitioner's bookable schedule. Overrides are
// keyed by ISO date and fully replace the recurring-derived slots for that date;
// an empty override list means the practitioner is closed that day.
type AvailabilityProfile struct {
	PractitionerUID string                   `bson:"practitioner_uid" json:"practitioner_uid"`
	Recurring       map[string]RecurringRule `bson:"recurring" json:"recurring"` // keyed by lowercase weekday name
	Overrides       map[string][]string      `bson:"overrides" json:"overrides"` // keyed by "2006-01-02", sorted unique times
}

// DateOverrideRequest sets the explicit slot list for one date.
// Times is a comma-separated list; an empty string closes the date.
type DateOverrideRequest struct {
	Date  string `json:"date" binding:"required"`
	Times string `json:"times"`
}
