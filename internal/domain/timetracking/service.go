package timetracking

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound     = errors.New("time entry not found")
	ErrAlreadyOpen  = errors.New("an open entry already exists for today")
	ErrNotCheckedIn = errors.New("no open entry to check out of")
)

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

const entryColumns = `
  id, employee_id, entry_date, check_in_time, check_out_time,
  hours_worked, status, total_break_minutes
`

func scanEntry(row pgx.Row) (Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.EmployeeID, &e.EntryDate, &e.CheckInTime,
		&e.CheckOutTime, &e.HoursWorked, &e.Status, &e.BreakMinutes)
	return e, err
}

func (s *Service) collect(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := s.Store.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CheckIn opens today's entry. One open entry per employee per day.
func (s *Service) CheckIn(ctx context.Context, employeeID string, now time.Time) (Entry, error) {
	day := DayStart(now)

	var existing int
	if err := s.Store.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM time_entries
    WHERE employee_id = $1 AND entry_date = $2 AND status = $3
  `, employeeID, day, StatusCheckedIn).Scan(&existing); err != nil {
		return Entry{}, err
	}
	if existing > 0 {
		return Entry{}, ErrAlreadyOpen
	}

	var id string
	if err := s.Store.DB.QueryRow(ctx, `
    INSERT INTO time_entries (employee_id, entry_date, check_in_time, status)
    VALUES ($1, $2, $3, $4)
    RETURNING id
  `, employeeID, day, now, StatusCheckedIn).Scan(&id); err != nil {
		return Entry{}, err
	}
	return s.Get(ctx, id)
}

// CheckOut closes today's open entry and derives worked hours from the
// check-in/check-out pair minus recorded breaks.
func (s *Service) CheckOut(ctx context.Context, employeeID string, breakMinutes int, now time.Time) (Entry, error) {
	var id string
	var checkIn time.Time
	err := s.Store.DB.QueryRow(ctx, `
    SELECT id, check_in_time
    FROM time_entries
    WHERE employee_id = $1 AND status = $2
    ORDER BY entry_date DESC
    LIMIT 1
  `, employeeID, StatusCheckedIn).Scan(&id, &checkIn)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrNotCheckedIn
	}
	if err != nil {
		return Entry{}, err
	}

	worked := now.Sub(checkIn) - time.Duration(breakMinutes)*time.Minute
	hours := worked.Hours()
	if hours < 0 {
		hours = 0
	}

	if _, err := s.Store.DB.Exec(ctx, `
    UPDATE time_entries
    SET check_out_time = $1, hours_worked = $2, total_break_minutes = $3, status = $4
    WHERE id = $5
  `, now, hours, breakMinutes, StatusCheckedOut, id); err != nil {
		return Entry{}, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id string) (Entry, error) {
	e, err := scanEntry(s.Store.DB.QueryRow(ctx, `
    SELECT `+entryColumns+`
    FROM time_entries
    WHERE id = $1
  `, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	return e, err
}

// WeekEntries returns one employee's entries for the week opening at
// weekStart (Monday midnight).
func (s *Service) WeekEntries(ctx context.Context, employeeID string, weekStart time.Time) ([]Entry, error) {
	return s.collect(ctx, `
    SELECT `+entryColumns+`
    FROM time_entries
    WHERE employee_id = $1 AND entry_date >= $2 AND entry_date < $3
    ORDER BY entry_date
  `, employeeID, weekStart, weekStart.AddDate(0, 0, 7))
}

// WeekStatsFor is the employee dashboard number source.
func (s *Service) WeekStatsFor(ctx context.Context, employeeID string, now time.Time) (WeekStats, error) {
	entries, err := s.WeekEntries(ctx, employeeID, WeekStart(now))
	if err != nil {
		return WeekStats{}, err
	}
	return ComputeWeekStats(entries), nil
}

func (s *Service) ListIncomplete(ctx context.Context) ([]Entry, error) {
	return s.collect(ctx, `
    SELECT `+entryColumns+`
    FROM time_entries
    WHERE status = $1
    ORDER BY entry_date DESC
  `, StatusIncomplete)
}

// SweepOpenEntries marks stale checked-in entries from previous days as
// incomplete so they show up on the admin attention list.
func (s *Service) SweepOpenEntries(ctx context.Context, now time.Time) (int, error) {
	today := DayStart(now)
	tag, err := s.Store.DB.Exec(ctx, `
    UPDATE time_entries
    SET status = $1
    WHERE status = $2 AND entry_date < $3
  `, StatusIncomplete, StatusCheckedIn, today)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
