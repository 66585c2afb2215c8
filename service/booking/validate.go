package booking

import "time"

const (
	MinDuration = 15 * time.Minute
	MaxDuration = 24 * time.Hour
)

// FieldError tags one violated booking rule with the input field it
// belongs to, so the caller can render the full list in one pass.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateTimes checks a proposed slot against booking policy. Every
// violated rule is reported, not just the first. A zero time counts as
// missing.
func ValidateTimes(start, end, now time.Time) []FieldError {
	var errs []FieldError

	if start.IsZero() {
		errs = append(errs, FieldError{Field: "startTime", Message: "Start time is required"})
	}
	if end.IsZero() {
		errs = append(errs, FieldError{Field: "endTime", Message: "End time is required"})
	}

	if !start.IsZero() && !end.IsZero() && !start.Before(end) {
		errs = append(errs, FieldError{Field: "endTime", Message: "End time must be after start time"})
	}

	if !start.IsZero() && start.Before(now) {
		errs = append(errs, FieldError{Field: "startTime", Message: "Cannot book times in the past"})
	}

	if !start.IsZero() && !end.IsZero() {
		d := end.Sub(start)
		if d > MaxDuration {
			errs = append(errs, FieldError{Field: "duration", Message: "Booking cannot exceed 24 hours"})
		}
		if d < MinDuration {
			errs = append(errs, FieldError{Field: "duration", Message: "Booking must be at least 15 minutes"})
		}
	}

	return errs
}

// Overlaps reports whether [startA, endA) and [startB, endB) intersect.
// The intervals are open at the end: ranges that exactly abut do not
// overlap. Every conflict check in the system routes through here.
func Overlaps(startA, endA, startB, endB time.Time) bool {
	return startA.Before(endB) && startB.Before(endA)
}

// DurationHours returns the slot length in (fractional) hours.
func DurationHours(start, end time.Time) float64 {
	return end.Sub(start).Hours()
}

// TotalCost prices a slot at the room's hourly rate.
func TotalCost(pricePerHour float64, start, end time.Time) float64 {
	return pricePerHour * DurationHours(start, end)
}
