package scheduling

import (
	"testing"
	"time"

	"panchakarma/models"
)

func TestExpandRule_HourlySlots(t *testing.T) {
	rule := models.RecurringRule{Start: "09:00", End: "12:00", Interval: 60}
	slots := ExpandRule(rule, "2025-03-10")

	want := []string{"09:00", "10:00", "11:00"}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d (%v)", len(want), len(slots), slots)
	}
	for i, s := range slots {
		if s != want[i] {
			t.Fatalf("slot %d: expected %s, got %s", i, want[i], s)
		}
	}
}

func TestExpandRule_EndIsExclusive(t *testing.T) {
	rule := models.RecurringRule{Start: "09:00", End: "10:00", Interval: 30}
	slots := ExpandRule(rule, "2025-03-10")

	for _, s := range slots {
		if s == "10:00" {
			t.Fatalf("end time must not be included, got %v", slots)
		}
	}
	if len(slots) != 2 {
		t.Fatalf("expected [09:00 09:30], got %v", slots)
	}
}

func TestExpandRule_SlotsStrictlyIncreasingAndEvenlySpaced(t *testing.T) {
	rule := models.RecurringRule{Start: "08:15", End: "11:00", Interval: 45}
	slots := ExpandRule(rule, "2025-03-10")

	if len(slots) == 0 {
		t.Fatal("expected slots for a valid rule")
	}
	prev, _ := time.Parse("15:04", slots[0])
	for _, s := range slots[1:] {
		cur, err := time.Parse("15:04", s)
		if err != nil {
			t.Fatalf("slot %q is not a valid time: %v", s, err)
		}
		if !cur.After(prev) {
			t.Fatalf("slots not strictly increasing: %v", slots)
		}
		if cur.Sub(prev) != 45*time.Minute {
			t.Fatalf("expected 45m spacing, got %v between %s and %s", cur.Sub(prev), prev.Format("15:04"), s)
		}
		prev = cur
	}
}

func TestExpandRule_MissingIntervalDefaultsToHour(t *testing.T) {
	rule := models.RecurringRule{Start: "09:00", End: "11:30"}
	slots := ExpandRule(rule, "2025-03-10")

	want := []string{"09:00", "10:00", "11:00"}
	if len(slots) != len(want) {
		t.Fatalf("expected %v, got %v", want, slots)
	}
}

func TestExpandRule_MalformedRulesYieldNothing(t *testing.T) {
	cases := map[string]models.RecurringRule{
		"missing start":  {End: "12:00", Interval: 60},
		"missing end":    {Start: "09:00", Interval: 60},
		"garbage start":  {Start: "morning", End: "12:00", Interval: 60},
		"garbage end":    {Start: "09:00", End: "noonish", Interval: 60},
		"start past end": {Start: "14:00", End: "09:00", Interval: 60},
	}

	for name, rule := range cases {
		if slots := ExpandRule(rule, "2025-03-10"); len(slots) != 0 {
			t.Errorf("%s: expected no slots, got %v", name, slots)
		}
	}
}
