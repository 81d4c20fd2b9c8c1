package gamification

import (
	"context"

	"staffhub/internal/domain/directory"
)

type Service struct {
	Store     *Store
	Directory *directory.Service
}

func NewService(store *Store, dir *directory.Service) *Service {
	return &Service{Store: store, Directory: dir}
}

func (s *Service) ListPoints(ctx context.Context) ([]PointsRecord, error) {
	rows, err := s.Store.DB.Query(ctx, `
    SELECT employee_id, total_points, points_this_week, points_this_month, level, streak_days
    FROM employee_points
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []PointsRecord
	for rows.Next() {
		var r PointsRecord
		if err := rows.Scan(&r.EmployeeID, &r.TotalPoints, &r.PointsThisWeek, &r.PointsThisMonth, &r.Level, &r.StreakDays); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Service) ListBadges(ctx context.Context) ([]Badge, error) {
	rows, err := s.Store.DB.Query(ctx, `
    SELECT id, employee_id, badge_name, COALESCE(badge_icon, ''), badge_category, points_value, awarded_at
    FROM badges
    ORDER BY awarded_at
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []Badge
	for rows.Next() {
		var b Badge
		if err := rows.Scan(&b.ID, &b.EmployeeID, &b.Name, &b.Icon, &b.Category, &b.PointsValue, &b.AwardedAt); err != nil {
			return nil, err
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

// Leaderboard assembles the full board. Employees are fetched in their
// stable listing order, which is also the tie-break order.
func (s *Service) Leaderboard(ctx context.Context, selfEmployeeID string) (Leaderboard, error) {
	employees, err := s.Directory.ListActive(ctx)
	if err != nil {
		return Leaderboard{}, err
	}
	points, err := s.ListPoints(ctx)
	if err != nil {
		return Leaderboard{}, err
	}
	badges, err := s.ListBadges(ctx)
	if err != nil {
		return Leaderboard{}, err
	}
	return BuildLeaderboard(employees, points, badges, selfEmployeeID), nil
}

// AwardPoints adds to the ledger atomically and re-derives the stored
// level from the new total.
func (s *Service) AwardPoints(ctx context.Context, employeeID string, points int) (PointsRecord, error) {
	var record PointsRecord
	record.EmployeeID = employeeID
	if err := s.Store.DB.QueryRow(ctx, `
    INSERT INTO employee_points (employee_id, total_points, points_this_week, points_this_month, level)
    VALUES ($1, $2, $2, $2, 1)
    ON CONFLICT (employee_id) DO UPDATE
    SET total_points = employee_points.total_points + EXCLUDED.total_points,
        points_this_week = employee_points.points_this_week + EXCLUDED.points_this_week,
        points_this_month = employee_points.points_this_month + EXCLUDED.points_this_month
    RETURNING total_points, points_this_week, points_this_month, streak_days
  `, employeeID, points).Scan(&record.TotalPoints, &record.PointsThisWeek, &record.PointsThisMonth, &record.StreakDays); err != nil {
		return PointsRecord{}, err
	}

	record.Level = Level(record.TotalPoints)
	if _, err := s.Store.DB.Exec(ctx, `
    UPDATE employee_points SET level = $1 WHERE employee_id = $2
  `, record.Level, employeeID); err != nil {
		return PointsRecord{}, err
	}
	return record, nil
}

// AwardBadge records a badge and credits its points value.
func (s *Service) AwardBadge(ctx context.Context, employeeID, name, icon, category string, pointsValue int) (Badge, error) {
	var badge Badge
	badge.EmployeeID = employeeID
	badge.Name = name
	badge.Icon = icon
	badge.Category = category
	badge.PointsValue = pointsValue

	if err := s.Store.DB.QueryRow(ctx, `
    INSERT INTO badges (employee_id, badge_name, badge_icon, badge_category, points_value)
    VALUES ($1, $2, NULLIF($3, ''), $4, $5)
    RETURNING id, awarded_at
  `, employeeID, name, icon, category, pointsValue).Scan(&badge.ID, &badge.AwardedAt); err != nil {
		return Badge{}, err
	}

	if pointsValue > 0 {
		if _, err := s.AwardPoints(ctx, employeeID, pointsValue); err != nil {
			return Badge{}, err
		}
	}
	return badge, nil
}

// ResetWeekly zeroes the rolling week counter. There is no schedule for
// it; an admin triggers it through the reset-week endpoint.
func (s *Service) ResetWeekly(ctx context.Context) error {
	_, err := s.Store.DB.Exec(ctx, "UPDATE employee_points SET points_this_week = 0")
	return err
}
