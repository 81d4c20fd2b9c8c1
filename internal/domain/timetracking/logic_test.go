package timetracking

import (
	"testing"
	"time"
)

func at(hour, minute int) *time.Time {
	t := time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
	return &t
}

func TestComputeWeekStatsEmpty(t *testing.T) {
	stats := ComputeWeekStats(nil)

	if stats.PunctualityRate != 100 {
		t.Fatalf("zero entries default punctuality to 100, got %d", stats.PunctualityRate)
	}
	if stats.AttendanceRate != 0 {
		t.Fatalf("zero entries means 0 attendance, got %d", stats.AttendanceRate)
	}
	if stats.AverageHoursPerDay != 0 || stats.HoursThisWeek != 0 {
		t.Fatalf("zero entries means zero hours: %+v", stats)
	}
}

func TestComputeWeekStatsFullWeek(t *testing.T) {
	var entries []Entry
	for day := 0; day < 5; day++ {
		entries = append(entries, Entry{
			Status:      StatusCheckedOut,
			HoursWorked: 8,
			CheckInTime: at(8, 55),
		})
	}

	stats := ComputeWeekStats(entries)
	if stats.AttendanceRate != 100 {
		t.Fatalf("five worked days is 100%% attendance, got %d", stats.AttendanceRate)
	}
	if stats.PunctualityRate != 100 {
		t.Fatalf("all on time is 100%%, got %d", stats.PunctualityRate)
	}
	if stats.HoursThisWeek != 40 || stats.AverageHoursPerDay != 8 {
		t.Fatalf("unexpected hours: %+v", stats)
	}
}

func TestComputeWeekStatsPunctualityBoundary(t *testing.T) {
	entries := []Entry{
		{Status: StatusCheckedOut, HoursWorked: 8, CheckInTime: at(9, 0)},
		{Status: StatusCheckedOut, HoursWorked: 8, CheckInTime: at(9, 1)},
	}

	stats := ComputeWeekStats(entries)
	if stats.PunctualityRate != 50 {
		t.Fatalf("09:00 is on time, 09:01 is late: expected 50, got %d", stats.PunctualityRate)
	}
}

func TestComputeWeekStatsPartialWeek(t *testing.T) {
	entries := []Entry{
		{Status: StatusCheckedOut, HoursWorked: 7.25, CheckInTime: at(8, 30)},
		{Status: StatusCheckedOut, HoursWorked: 8.5, CheckInTime: at(9, 30)},
		{Status: StatusCheckedIn, HoursWorked: 0, CheckInTime: at(8, 45)},
	}

	stats := ComputeWeekStats(entries)
	if stats.DaysWorkedThisWeek != 2 {
		t.Fatalf("only checked-out entries with hours count, got %d", stats.DaysWorkedThisWeek)
	}
	if stats.AttendanceRate != 40 {
		t.Fatalf("2/5 days is 40%%, got %d", stats.AttendanceRate)
	}
	if stats.PunctualityRate != 67 {
		t.Fatalf("2/3 on time rounds to 67, got %d", stats.PunctualityRate)
	}
	if stats.HoursThisWeek != 15.8 {
		t.Fatalf("hours rounded to one decimal, got %v", stats.HoursThisWeek)
	}
	if stats.AverageHoursPerDay != 7.9 {
		t.Fatalf("average over worked days, got %v", stats.AverageHoursPerDay)
	}
}

func TestWeekStart(t *testing.T) {
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		{time.Date(2026, 3, 2, 15, 30, 0, 0, time.UTC), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},  // Monday
		{time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},    // Wednesday
		{time.Date(2026, 3, 8, 23, 59, 0, 0, time.UTC), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},  // Sunday
		{time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)},    // next Monday
	}
	for _, tc := range cases {
		if got := WeekStart(tc.in); !got.Equal(tc.want) {
			t.Fatalf("WeekStart(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestDayStartInsideWeekWindow(t *testing.T) {
	// A Monday-morning check-in five hours behind UTC. Truncating to UTC
	// days would put the entry before Monday midnight local time and push
	// it into the previous week.
	loc := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, loc) // Monday 10:00 local

	day := DayStart(now)
	if want := time.Date(2026, 3, 2, 0, 0, 0, 0, loc); !day.Equal(want) {
		t.Fatalf("DayStart(%v) = %v, want %v", now, day, want)
	}

	weekStart := WeekStart(now)
	if day.Before(weekStart) {
		t.Fatalf("Monday's entry day %v falls before its own week start %v", day, weekStart)
	}
	if !day.Equal(weekStart) {
		t.Fatalf("a Monday entry opens the week: day %v, week start %v", day, weekStart)
	}
	if truncated := now.Truncate(24 * time.Hour); !truncated.Before(weekStart) {
		t.Fatalf("fixture lost its point: %v should precede %v", truncated, weekStart)
	}
}
