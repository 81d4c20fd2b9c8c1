package leave

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound     = errors.New("leave request not found")
	ErrForbidden    = errors.New("not the owner of this request")
	ErrInvalidState = errors.New("request is not pending")
)

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

const requestColumns = `
  id, employee_id, status, start_date, end_date, days_requested,
  COALESCE(reason, ''), COALESCE(reviewed_by, ''), reviewed_at, created_at
`

func scanRequest(row pgx.Row) (Request, error) {
	var r Request
	err := row.Scan(&r.ID, &r.EmployeeID, &r.Status, &r.StartDate, &r.EndDate,
		&r.DaysRequested, &r.Reason, &r.ReviewedBy, &r.ReviewedAt, &r.CreatedAt)
	return r, err
}

func (s *Service) collect(ctx context.Context, query string, args ...any) ([]Request, error) {
	rows, err := s.Store.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}

func (s *Service) ListAll(ctx context.Context) ([]Request, error) {
	return s.collect(ctx, `
    SELECT `+requestColumns+`
    FROM leave_requests
    ORDER BY created_at DESC
  `)
}

func (s *Service) ListForEmployee(ctx context.Context, employeeID string) ([]Request, error) {
	return s.collect(ctx, `
    SELECT `+requestColumns+`
    FROM leave_requests
    WHERE employee_id = $1
    ORDER BY created_at DESC
  `, employeeID)
}

func (s *Service) Get(ctx context.Context, id string) (Request, error) {
	r, err := scanRequest(s.Store.DB.QueryRow(ctx, `
    SELECT `+requestColumns+`
    FROM leave_requests
    WHERE id = $1
  `, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	return r, err
}

func (s *Service) Submit(ctx context.Context, employeeID, reason string, start, end time.Time) (Request, error) {
	days, err := RequestDays(start, end)
	if err != nil {
		return Request{}, err
	}

	var id string
	if err := s.Store.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (employee_id, status, start_date, end_date, days_requested, reason)
    VALUES ($1,$2,$3,$4,$5,NULLIF($6,''))
    RETURNING id
  `, employeeID, StatusPending, start, end, days, reason).Scan(&id); err != nil {
		return Request{}, err
	}
	return s.Get(ctx, id)
}

// Review moves a pending request to Approved or Denied.
func (s *Service) Review(ctx context.Context, id, reviewerUserID, status string) (Request, error) {
	if status != StatusApproved && status != StatusDenied {
		return Request{}, ErrInvalidState
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return Request{}, err
	}
	if current.Status != StatusPending {
		return Request{}, ErrInvalidState
	}

	if _, err := s.Store.DB.Exec(ctx, `
    UPDATE leave_requests
    SET status = $1, reviewed_by = $2, reviewed_at = now()
    WHERE id = $3
  `, status, reviewerUserID, id); err != nil {
		return Request{}, err
	}
	return s.Get(ctx, id)
}

// Cancel lets an employee withdraw their own pending request.
func (s *Service) Cancel(ctx context.Context, id, employeeID string) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.EmployeeID != employeeID {
		return ErrForbidden
	}
	if current.Status != StatusPending {
		return ErrInvalidState
	}

	_, err = s.Store.DB.Exec(ctx, "UPDATE leave_requests SET status = $1 WHERE id = $2", StatusCancelled, id)
	return err
}
