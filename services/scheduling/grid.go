package scheduling

import (
	"time"

	"panchakarma/models"
	"panchakarma/utils"

	"go.uber.org/zap"
)

// timeLayout is the wire format for time-of-day strings.
const timeLayout = "15:04"

// defaultIntervalMinutes is used when a rule's interval is missing or invalid.
const defaultIntervalMinutes = 60

// ExpandRule converts a recurring rule into the ordered time-of-day slots for
// one date: start, start+interval, ... strictly before end (half-open). A
// malformed rule yields no slots and a warning; it never fails the caller, so a
// bad rule for one weekday cannot poison resolution for the rest of the horizon.
func ExpandRule(rule models.RecurringRule, date string) []string {
	logger := utils.GetLogger()

	if rule.Start == "" || rule.End == "" {
		logger.Warn("skipping recurring rule with missing start or end",
			zap.String("date", date), zap.String("start", rule.Start), zap.String("end", rule.End))
		return nil
	}

	start, err := time.Parse(timeLayout, rule.Start)
	if err != nil {
		logger.Warn("skipping recurring rule with malformed start",
			zap.String("date", date), zap.String("start", rule.Start), zap.Error(err))
		return nil
	}
	end, err := time.Parse(timeLayout, rule.End)
	if err != nil {
		logger.Warn("skipping recurring rule with malformed end",
			zap.String("date", date), zap.String("end", rule.End), zap.Error(err))
		return nil
	}

	interval := rule.Interval
	if interval <= 0 {
		interval = defaultIntervalMinutes
	}

	var slots []string
	for t := start; t.Before(end); t = t.Add(time.Duration(interval) * time.Minute) {
		slots = append(slots, t.Format(timeLayout))
	}
	return slots
}
