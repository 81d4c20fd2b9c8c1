package timetracking

import (
	"math"
	"time"
)

// Work weeks are a fixed five days; there is no per-employee schedule.
const workWeekDays = 5

// An entry counts as punctual when the check-in clock reads 09:00 or
// earlier, matching a plain "HH:MM" string comparison.
const punctualCutoff = "09:00"

type WeekStats struct {
	HoursThisWeek      float64 `json:"hoursThisWeek"`
	DaysWorkedThisWeek int     `json:"daysWorkedThisWeek"`
	PunctualityRate    int     `json:"punctualityRate"`
	AttendanceRate     int     `json:"attendanceRate"`
	AverageHoursPerDay float64 `json:"averageHoursPerDay"`
}

// DayStart returns midnight of t's calendar day in t's location. Entry
// dates must come from here so they land inside WeekStart's window.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekStart returns the Monday midnight opening the week containing t.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return DayStart(t).AddDate(0, 0, -offset)
}

// ComputeWeekStats derives the dashboard numbers from one employee's
// entries for a single week. Rates are whole percents, hours one decimal.
// With zero entries punctuality defaults to 100, not 0.
func ComputeWeekStats(entries []Entry) WeekStats {
	stats := WeekStats{PunctualityRate: 100}

	var hours float64
	onTime := 0
	for _, entry := range entries {
		hours += entry.HoursWorked
		if entry.Status == StatusCheckedOut && entry.HoursWorked > 0 {
			stats.DaysWorkedThisWeek++
		}
		if entry.CheckInTime != nil && entry.CheckInTime.Format("15:04") <= punctualCutoff {
			onTime++
		}
	}

	stats.HoursThisWeek = round1(hours)
	if len(entries) > 0 {
		stats.PunctualityRate = roundPercent(onTime, len(entries))
	}
	stats.AttendanceRate = roundPercent(stats.DaysWorkedThisWeek, workWeekDays)
	if stats.DaysWorkedThisWeek > 0 {
		stats.AverageHoursPerDay = round1(hours / float64(stats.DaysWorkedThisWeek))
	}
	return stats
}

func roundPercent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
