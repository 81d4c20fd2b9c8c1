package reports

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"staffhub/internal/domain/directory"
	"staffhub/internal/domain/timetracking"
)

type Service struct {
	Store     *Store
	Directory *directory.Service
	Time      *timetracking.Service
}

func NewService(store *Store, dir *directory.Service, tt *timetracking.Service) *Service {
	return &Service{Store: store, Directory: dir, Time: tt}
}

// WeeklySummary computes per-employee week stats for every active employee.
// The week is the one containing `at`, opening on Monday.
func (s *Service) WeeklySummary(ctx context.Context, at time.Time) (WeeklySummary, error) {
	weekStart := timetracking.WeekStart(at)

	employees, err := s.Directory.ListActive(ctx)
	if err != nil {
		return WeeklySummary{}, err
	}

	summary := WeeklySummary{WeekStart: weekStart}
	for _, e := range employees {
		entries, err := s.Time.WeekEntries(ctx, e.ID, weekStart)
		if err != nil {
			return WeeklySummary{}, err
		}
		summary.Rows = append(summary.Rows, WeeklySummaryRow{
			EmployeeID: e.ID,
			Name:       e.FullName(),
			Department: e.Department,
			Stats:      timetracking.ComputeWeekStats(entries),
		})
	}
	return summary, nil
}

// TimesheetPDF renders one employee's weekly timesheet and writes the PDF
// to w.
func (s *Service) TimesheetPDF(ctx context.Context, employeeID string, at time.Time, w io.Writer) error {
	employee, err := s.Directory.Get(ctx, employeeID)
	if err != nil {
		return err
	}
	weekStart := timetracking.WeekStart(at)
	entries, err := s.Time.WeekEntries(ctx, employeeID, weekStart)
	if err != nil {
		return err
	}
	stats := timetracking.ComputeWeekStats(entries)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Weekly Timesheet")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", employee.FullName()))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Department: %s", employee.Department))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Week of: %s", weekStart.Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(35, 8, "Date", "1", 0, "", false, 0, "")
	pdf.CellFormat(35, 8, "Check In", "1", 0, "", false, 0, "")
	pdf.CellFormat(35, 8, "Check Out", "1", 0, "", false, 0, "")
	pdf.CellFormat(25, 8, "Hours", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 8, "Status", "1", 1, "", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, entry := range entries {
		pdf.CellFormat(35, 8, entry.EntryDate.Format("2006-01-02"), "1", 0, "", false, 0, "")
		pdf.CellFormat(35, 8, formatClock(entry.CheckInTime), "1", 0, "", false, 0, "")
		pdf.CellFormat(35, 8, formatClock(entry.CheckOutTime), "1", 0, "", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%.1f", entry.HoursWorked), "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 8, entry.Status, "1", 1, "", false, 0, "")
	}

	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Total hours: %.1f", stats.HoursThisWeek))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Days worked: %d", stats.DaysWorkedThisWeek))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Punctuality: %d%%   Attendance: %d%%", stats.PunctualityRate, stats.AttendanceRate))

	return pdf.Output(w)
}

func formatClock(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("15:04")
}

// JobRun is one background job execution record.
type JobRun struct {
	ID         string     `json:"id"`
	JobType    string     `json:"jobType"`
	Status     string     `json:"status"`
	Detail     string     `json:"detail"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

// JobRuns lists recent background job executions for the ops report.
func (s *Service) JobRuns(ctx context.Context, jobType string, limit, offset int) ([]JobRun, error) {
	rows, err := s.Store.DB.Query(ctx, `
    SELECT id, job_type, status, COALESCE(detail, ''), started_at, finished_at
    FROM job_runs
    WHERE ($1 = '' OR job_type = $1)
    ORDER BY started_at DESC
    LIMIT $2 OFFSET $3
  `, jobType, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []JobRun
	for rows.Next() {
		var r JobRun
		if err := rows.Scan(&r.ID, &r.JobType, &r.Status, &r.Detail, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
