package scheduling

import (
	"testing"
	"time"

	"panchakarma/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-03-10 is a Monday.
var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func weekdayProfile() models.AvailabilityProfile {
	return models.AvailabilityProfile{
		PractitionerUID: "prac-1",
		Recurring: map[string]models.RecurringRule{
			"monday":  {Start: "09:00", End: "11:00", Interval: 60},
			"tuesday": {Start: "14:00", End: "15:00", Interval: 30},
		},
		Overrides: map[string][]string{},
	}
}

func TestResolve_RecurringRulesPerWeekday(t *testing.T) {
	slots := Resolve(weekdayProfile(), nil, monday, 7)

	require.Contains(t, slots, "2025-03-10")
	assert.Equal(t, []string{"09:00", "10:00"}, slots["2025-03-10"])
	require.Contains(t, slots, "2025-03-11")
	assert.Equal(t, []string{"14:00", "14:30"}, slots["2025-03-11"])
	// No rule for the rest of the week.
	assert.Len(t, slots, 2)
}

func TestResolve_OverrideReplacesRecurringEntirely(t *testing.T) {
	profile := weekdayProfile()
	profile.Overrides["2025-03-10"] = []string{"16:00"}

	slots := Resolve(profile, nil, monday, 1)

	assert.Equal(t, []string{"16:00"}, slots["2025-03-10"])
}

func TestResolve_EmptyOverrideClosesTheDate(t *testing.T) {
	profile := weekdayProfile()
	profile.Overrides["2025-03-10"] = []string{}

	slots := Resolve(profile, nil, monday, 1)

	assert.NotContains(t, slots, "2025-03-10")
}

func TestResolve_BookedTimesAreSubtracted(t *testing.T) {
	booked := map[string][]string{"2025-03-10": {"09:00"}}

	slots := Resolve(weekdayProfile(), booked, monday, 1)

	assert.Equal(t, []string{"10:00"}, slots["2025-03-10"])
}

func TestResolve_FullyBookedDateIsOmitted(t *testing.T) {
	booked := map[string][]string{"2025-03-10": {"09:00", "10:00"}}

	slots := Resolve(weekdayProfile(), booked, monday, 1)

	assert.NotContains(t, slots, "2025-03-10")
}

func TestResolve_NeverReturnsEmptySlotLists(t *testing.T) {
	profile := weekdayProfile()
	profile.Overrides["2025-03-12"] = []string{}
	booked := map[string][]string{"2025-03-11": {"14:00", "14:30"}}

	slots := Resolve(profile, booked, monday, 30)

	for date, times := range slots {
		assert.NotEmptyf(t, times, "date %s resolved to an empty slot list", date)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	profile := weekdayProfile()
	profile.Overrides["2025-03-13"] = []string{"08:00", "08:30"}
	booked := map[string][]string{"2025-03-10": {"10:00"}}

	first := Resolve(profile, booked, monday, 14)
	second := Resolve(profile, booked, monday, 14)

	assert.Equal(t, first, second)
}

func TestResolve_BookingRemovesSlotOnReresolution(t *testing.T) {
	profile := weekdayProfile()

	before := Resolve(profile, nil, monday, 1)
	require.Contains(t, before["2025-03-10"], "09:00")

	// Simulate booking the first returned slot, then resolve again.
	after := Resolve(profile, map[string][]string{"2025-03-10": {"09:00"}}, monday, 1)
	assert.NotContains(t, after["2025-03-10"], "09:00")
}
