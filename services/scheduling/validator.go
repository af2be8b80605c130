// Package scheduling validates appointment slot, duration and service-count
// input and computes the service price. All functions are pure.
package scheduling

import (
	"strconv"
	"strings"

	"salonbook/pkg/fault"
)

// DefaultPayRate applies when a provider has no pay rate on record.
const DefaultPayRate = 15.75

// The day splits into a morning block [1,12) and an afternoon block
// [13,22). Slot start hours outside those blocks are not bookable.
const (
	morningEnd     = 12
	afternoonStart = 13
	afternoonEnd   = 22
)

// ParseSlot parses a slot label of the form "H-H+1" and returns the start
// hour. The start hour must lie in {1..11} or {13..21}.
func ParseSlot(slot string) (int, error) {
	parts := strings.Split(slot, "-")
	if len(parts) != 2 {
		return 0, fault.NewValidationError(fault.CodeInvalidSlotFormat, "invalid slot %q, expected \"H-H+1\"", slot)
	}
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fault.NewValidationError(fault.CodeInvalidSlotFormat, "invalid slot %q, expected \"H-H+1\"", slot)
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil || end != start+1 {
		return 0, fault.NewValidationError(fault.CodeInvalidSlotFormat, "invalid slot %q, expected \"H-H+1\"", slot)
	}
	if !validStartHour(start) {
		return 0, fault.NewValidationError(fault.CodeInvalidSlotFormat, "slot %q starts outside bookable hours", slot)
	}
	return start, nil
}

func validStartHour(h int) bool {
	return (h >= 1 && h < morningEnd) || (h >= afternoonStart && h < afternoonEnd)
}

// MaxDuration returns the number of hours bookable from startHour before
// its block of the day ends.
func MaxDuration(startHour int) int {
	if startHour < morningEnd {
		return morningEnd - startHour
	}
	return afternoonEnd - startHour
}

// Validate checks a slot/duration/service-count triple. It returns a
// ValidationError describing the first violated rule, or nil.
func Validate(slot string, duration, nberServices int) error {
	start, err := ParseSlot(slot)
	if err != nil {
		return err
	}
	max := MaxDuration(start)
	if duration < 1 || duration > max {
		return fault.NewValidationError(fault.CodeDurationOutOfRange,
			"duration %d out of range for slot %s, allowed 1 to %d", duration, slot, max)
	}
	if nberServices > duration {
		return fault.NewValidationError(fault.CodeServiceCountExceedsDuration,
			"services (%d) cannot exceed duration (%d)", nberServices, duration)
	}
	return nil
}

// Price computes duration x nberServices x payRate. A nil or zero pay rate
// falls back to DefaultPayRate.
func Price(duration, nberServices int, payRate *float64) float64 {
	rate := DefaultPayRate
	if payRate != nil && *payRate > 0 {
		rate = *payRate
	}
	return float64(duration) * float64(nberServices) * rate
}
