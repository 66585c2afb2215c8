// service/booking/validate_test.go
package booking

import (
	"testing"
	"time"
)

var base = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return time.Date(2025, 6, 2, h, m, 0, 0, time.UTC)
}

func hasField(errs []FieldError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

func TestOverlaps_Symmetry(t *testing.T) {
	a1, a2 := at(10, 0), at(11, 0)
	b1, b2 := at(10, 30), at(11, 30)
	if Overlaps(a1, a2, b1, b2) != Overlaps(b1, b2, a1, a2) {
		t.Fatal("overlap must be symmetric")
	}
	if !Overlaps(a1, a2, b1, b2) {
		t.Fatal("intersecting ranges must overlap")
	}
}

func TestOverlaps_SelfOverlap(t *testing.T) {
	if !Overlaps(at(10, 0), at(11, 0), at(10, 0), at(11, 0)) {
		t.Fatal("a positive-duration range overlaps itself")
	}
}

func TestOverlaps_AbuttingRanges(t *testing.T) {
	// [10:00,11:00) and [11:00,12:00) share only the boundary instant.
	if Overlaps(at(10, 0), at(11, 0), at(11, 0), at(12, 0)) {
		t.Fatal("abutting ranges must not overlap")
	}
	if Overlaps(at(11, 0), at(12, 0), at(10, 0), at(11, 0)) {
		t.Fatal("abutting ranges must not overlap (reversed)")
	}
}

func TestOverlaps_Disjoint(t *testing.T) {
	if Overlaps(at(10, 0), at(11, 0), at(14, 0), at(15, 0)) {
		t.Fatal("disjoint ranges must not overlap")
	}
}

func TestOverlaps_Containment(t *testing.T) {
	if !Overlaps(at(10, 0), at(14, 0), at(11, 0), at(12, 0)) {
		t.Fatal("contained range must overlap")
	}
}

func TestValidateTimes_Valid(t *testing.T) {
	now := base
	if errs := ValidateTimes(at(12, 0), at(13, 0), now); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateTimes_MissingBoth(t *testing.T) {
	errs := ValidateTimes(time.Time{}, time.Time{}, base)
	if !hasField(errs, "startTime") || !hasField(errs, "endTime") {
		t.Fatalf("expected both required errors, got %v", errs)
	}
}

func TestValidateTimes_EndBeforeStart(t *testing.T) {
	errs := ValidateTimes(at(10, 0), at(9, 0), base)
	if !hasField(errs, "endTime") {
		t.Fatalf("expected endTime error, got %v", errs)
	}
}

func TestValidateTimes_PastStart(t *testing.T) {
	errs := ValidateTimes(at(9, 0), at(10, 30), base)
	if !hasField(errs, "startTime") {
		t.Fatalf("expected past-start error, got %v", errs)
	}
}

func TestValidateTimes_TooShort(t *testing.T) {
	errs := ValidateTimes(at(12, 0), at(12, 10), base)
	if !hasField(errs, "duration") {
		t.Fatalf("expected duration error for 10-minute slot, got %v", errs)
	}
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if errs[0].Message != "Booking must be at least 15 minutes" {
		t.Fatalf("unexpected message %q", errs[0].Message)
	}
}

func TestValidateTimes_TooLong(t *testing.T) {
	errs := ValidateTimes(at(12, 0), at(12, 0).Add(25*time.Hour), base)
	if !hasField(errs, "duration") {
		t.Fatalf("expected duration error for 25-hour slot, got %v", errs)
	}
	if errs[0].Message != "Booking cannot exceed 24 hours" {
		t.Fatalf("unexpected message %q", errs[0].Message)
	}
}

func TestValidateTimes_ExactBounds(t *testing.T) {
	if errs := ValidateTimes(at(12, 0), at(12, 15), base); len(errs) != 0 {
		t.Fatalf("15-minute slot must be valid, got %v", errs)
	}
	if errs := ValidateTimes(at(12, 0), at(12, 0).Add(24*time.Hour), base); len(errs) != 0 {
		t.Fatalf("24-hour slot must be valid, got %v", errs)
	}
}

func TestValidateTimes_AccumulatesAll(t *testing.T) {
	// Past start and inverted order: every violated rule is reported.
	errs := ValidateTimes(at(9, 0), at(8, 0), base)
	if !hasField(errs, "endTime") || !hasField(errs, "startTime") || !hasField(errs, "duration") {
		t.Fatalf("expected all violated rules, got %v", errs)
	}
}

func TestTotalCost(t *testing.T) {
	if got := TotalCost(50, at(10, 0), at(11, 30)); got != 75 {
		t.Fatalf("TotalCost = %v; want 75", got)
	}
}
