package scheduling

import (
	"strings"
	"time"

	"panchakarma/models"
)

// dateLayout is the wire format for date strings.
const dateLayout = "2006-01-02"

// Resolve merges a practitioner's recurring rules, date overrides and already
// booked slots into the final availability map over a horizon of days starting
// at from. Per date, an override is authoritative even when empty; otherwise
// the weekday's recurring rule is expanded; booked (date, time) pairs are
// subtracted; dates with nothing left are omitted.
//
// Pure and deterministic: identical inputs produce identical output. The result
// is a point-in-time view only; booking re-checks the slot transactionally.
func Resolve(profile models.AvailabilityProfile, booked map[string][]string, from time.Time, days int) map[string][]string {
	available := make(map[string][]string)

	for i := 0; i < days; i++ {
		day := from.AddDate(0, 0, i)
		dateStr := day.Format(dateLayout)
		weekday := strings.ToLower(day.Weekday().String())

		var daySlots []string
		if override, ok := profile.Overrides[dateStr]; ok {
			daySlots = override
		} else if rule, ok := profile.Recurring[weekday]; ok {
			daySlots = ExpandRule(rule, dateStr)
		}
		if len(daySlots) == 0 {
			continue
		}

		taken := make(map[string]bool, len(booked[dateStr]))
		for _, t := range booked[dateStr] {
			taken[t] = true
		}

		var free []string
		for _, slot := range daySlots {
			if !taken[slot] {
				free = append(free, slot)
			}
		}
		if len(free) > 0 {
			available[dateStr] = free
		}
	}
	return available
}
