package announcements

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"staffhub/internal/domain/directory"
)

var ErrNotFound = errors.New("announcement not found")

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

const announcementColumns = `
  id, title, content, priority, is_published, target_audience,
  COALESCE(department_filter, ''), expiry_date, COALESCE(created_by::text, ''), created_at
`

func scanAnnouncement(row pgx.Row) (Announcement, error) {
	var a Announcement
	err := row.Scan(&a.ID, &a.Title, &a.Content, &a.Priority, &a.IsPublished,
		&a.TargetAudience, &a.DepartmentFilter, &a.ExpiryDate, &a.CreatedBy, &a.CreatedAt)
	return a, err
}

func (s *Service) collect(ctx context.Context, query string, args ...any) ([]Announcement, error) {
	rows, err := s.Store.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// List returns everything, newest first. Admin surface.
func (s *Service) List(ctx context.Context) ([]Announcement, error) {
	return s.collect(ctx, `
    SELECT `+announcementColumns+`
    FROM announcements
    ORDER BY created_at DESC
  `)
}

// Published returns the published set without visibility filtering; the
// shared Visible logic is applied by callers against a concrete employee.
func (s *Service) Published(ctx context.Context) ([]Announcement, error) {
	return s.collect(ctx, `
    SELECT `+announcementColumns+`
    FROM announcements
    WHERE is_published
    ORDER BY created_at DESC
  `)
}

// FeedFor is the employee-facing feed: full fetch, then the shared
// visibility rule.
func (s *Service) FeedFor(ctx context.Context, employee directory.Employee, now time.Time) ([]Announcement, error) {
	published, err := s.Published(ctx)
	if err != nil {
		return nil, err
	}
	return VisibleTo(published, employee, now), nil
}

func (s *Service) Get(ctx context.Context, id string) (Announcement, error) {
	a, err := scanAnnouncement(s.Store.DB.QueryRow(ctx, `
    SELECT `+announcementColumns+`
    FROM announcements
    WHERE id = $1
  `, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Announcement{}, ErrNotFound
	}
	return a, err
}

func (s *Service) Create(ctx context.Context, a Announcement) (string, error) {
	var id string
	err := s.Store.DB.QueryRow(ctx, `
    INSERT INTO announcements (title, content, priority, is_published, target_audience, department_filter, expiry_date, created_by)
    VALUES ($1,$2,$3,$4,$5,NULLIF($6,''),$7,$8)
    RETURNING id
  `, a.Title, a.Content, a.Priority, a.IsPublished, a.TargetAudience, a.DepartmentFilter, a.ExpiryDate, a.CreatedBy).Scan(&id)
	return id, err
}

func (s *Service) Update(ctx context.Context, id string, a Announcement) error {
	tag, err := s.Store.DB.Exec(ctx, `
    UPDATE announcements
    SET title = $1, content = $2, priority = $3, target_audience = $4,
        department_filter = NULLIF($5, ''), expiry_date = $6
    WHERE id = $7
  `, a.Title, a.Content, a.Priority, a.TargetAudience, a.DepartmentFilter, a.ExpiryDate, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) SetPublished(ctx context.Context, id string, published bool) error {
	tag, err := s.Store.DB.Exec(ctx, "UPDATE announcements SET is_published = $1 WHERE id = $2", published, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	tag, err := s.Store.DB.Exec(ctx, "DELETE FROM announcements WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkRead records that the employee has seen the announcement. Re-marking
// is a no-op, which keeps the unread counter idempotent.
func (s *Service) MarkRead(ctx context.Context, announcementID, employeeID string) error {
	_, err := s.Store.DB.Exec(ctx, `
    INSERT INTO announcement_reads (announcement_id, employee_id)
    VALUES ($1, $2)
    ON CONFLICT (announcement_id, employee_id) DO NOTHING
  `, announcementID, employeeID)
	return err
}

// ReadIDs returns the set of announcement IDs the employee has read.
func (s *Service) ReadIDs(ctx context.Context, employeeID string) (map[string]struct{}, error) {
	rows, err := s.Store.DB.Query(ctx, `
    SELECT announcement_id
    FROM announcement_reads
    WHERE employee_id = $1
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	read := map[string]struct{}{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		read[id] = struct{}{}
	}
	return read, rows.Err()
}

func (s *Service) Readers(ctx context.Context, announcementID string) ([]Reader, error) {
	rows, err := s.Store.DB.Query(ctx, `
    SELECT r.employee_id, e.first_name, e.last_name, r.read_at
    FROM announcement_reads r
    JOIN employees e ON e.id = r.employee_id
    WHERE r.announcement_id = $1
    ORDER BY r.read_at
  `, announcementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readers []Reader
	for rows.Next() {
		var r Reader
		if err := rows.Scan(&r.EmployeeID, &r.FirstName, &r.LastName, &r.ReadAt); err != nil {
			return nil, err
		}
		readers = append(readers, r)
	}
	return readers, rows.Err()
}
