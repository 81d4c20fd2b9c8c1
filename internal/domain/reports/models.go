package reports

import (
	"time"

	"staffhub/internal/domain/timetracking"
)

// WeeklySummaryRow is one employee's week in the admin report.
type WeeklySummaryRow struct {
	EmployeeID string                 `json:"employeeId"`
	Name       string                 `json:"name"`
	Department string                 `json:"department"`
	Stats      timetracking.WeekStats `json:"stats"`
}

// WeeklySummary is the admin time report for one week.
type WeeklySummary struct {
	WeekStart time.Time          `json:"weekStart"`
	Rows      []WeeklySummaryRow `json:"rows"`
}
