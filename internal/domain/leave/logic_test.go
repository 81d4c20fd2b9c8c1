package leave

import (
	"testing"
	"time"
)

func TestRequestDays(t *testing.T) {
	start := time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC)

	days, err := RequestDays(start, start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 1 {
		t.Fatalf("same-day request is 1 day, got %v", days)
	}

	days, err = RequestDays(start, start.AddDate(0, 0, 4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 5 {
		t.Fatalf("expected 5 days, got %v", days)
	}
}

func TestRequestDaysInvalidRange(t *testing.T) {
	start := time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC)
	if _, err := RequestDays(start, start.AddDate(0, 0, -1)); err == nil {
		t.Fatal("expected error when end precedes start")
	}
}
