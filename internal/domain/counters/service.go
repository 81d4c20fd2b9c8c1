package counters

import (
	"context"
	"sync"
	"time"

	"staffhub/internal/domain/announcements"
	"staffhub/internal/domain/directory"
	"staffhub/internal/domain/leave"
	"staffhub/internal/domain/timetracking"
	"staffhub/internal/platform/cache"
	"staffhub/internal/platform/querier"
)

const (
	adminCacheKey         = "counters:admin"
	employeeCacheKeyStart = "counters:employee:"
)

// Service aggregates the dashboard badge numbers. Counts are fetched in
// parallel and the combined result is cached; a failed fetch degrades to
// the last cached value for that counter instead of failing the request.
type Service struct {
	DB            querier.Querier
	Announcements *announcements.Service
	Cache         cache.Cache
	TTL           time.Duration

	SuperAdminEmail string
}

func NewService(db querier.Querier, ann *announcements.Service, c cache.Cache, ttl time.Duration, superAdminEmail string) *Service {
	return &Service{DB: db, Announcements: ann, Cache: c, TTL: ttl, SuperAdminEmail: superAdminEmail}
}

func (s *Service) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	err := s.DB.QueryRow(ctx, query, args...).Scan(&n)
	return n, err
}

func (s *Service) cachedAdmin() AdminCounters {
	if v, ok := s.Cache.Get(adminCacheKey); ok {
		if c, ok := v.(AdminCounters); ok {
			return c
		}
	}
	return AdminCounters{}
}

// Admin returns the admin badge counts, serving the cached snapshot while
// it is within TTL.
func (s *Service) Admin(ctx context.Context, now time.Time) (AdminCounters, error) {
	if s.Cache.IsFresh(adminCacheKey, s.TTL) {
		return s.cachedAdmin(), nil
	}
	return s.RefreshAdmin(ctx, now)
}

// RefreshAdmin recomputes the admin counts, bypassing the TTL check. The
// scheduler calls this so interactive requests mostly hit the cache.
func (s *Service) RefreshAdmin(ctx context.Context, now time.Time) (AdminCounters, error) {
	cached := s.cachedAdmin()

	var (
		wg sync.WaitGroup

		pendingLeaves, incompleteEntries, urgent, pendingUsers int
		leavesErr, entriesErr, urgentErr, usersErr             error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		pendingLeaves, leavesErr = s.count(ctx, `
      SELECT COUNT(1) FROM leave_requests WHERE status = $1
    `, leave.StatusPending)
	}()
	go func() {
		defer wg.Done()
		incompleteEntries, entriesErr = s.count(ctx, `
      SELECT COUNT(1) FROM time_entries WHERE status = $1
    `, timetracking.StatusIncomplete)
	}()
	go func() {
		defer wg.Done()
		urgent, urgentErr = s.count(ctx, `
      SELECT COUNT(1) FROM announcements
      WHERE is_published AND priority = $1
        AND (expiry_date IS NULL OR expiry_date > $2)
    `, announcements.PriorityUrgent, now)
	}()
	go func() {
		defer wg.Done()
		pendingUsers, usersErr = s.count(ctx, `
      SELECT COUNT(1) FROM users
      WHERE NOT is_active AND lower(email) <> lower($1)
    `, s.SuperAdminEmail)
	}()
	wg.Wait()

	result := AdminCounters{
		PendingLeaves:         orCached("pendingLeaves", pendingLeaves, leavesErr, cached.PendingLeaves),
		IncompleteTimeEntries: orCached("incompleteTimeEntries", incompleteEntries, entriesErr, cached.IncompleteTimeEntries),
		UrgentAnnouncements:   orCached("urgentAnnouncements", urgent, urgentErr, cached.UrgentAnnouncements),
		PendingUsers:          orCached("pendingUsers", pendingUsers, usersErr, cached.PendingUsers),
	}
	s.Cache.Set(adminCacheKey, result)
	return result, nil
}

func (s *Service) cachedEmployee(key string) EmployeeCounters {
	if v, ok := s.Cache.Get(key); ok {
		if c, ok := v.(EmployeeCounters); ok {
			return c
		}
	}
	return EmployeeCounters{}
}

// Employee returns one employee's badge counts.
func (s *Service) Employee(ctx context.Context, employee directory.Employee, now time.Time) (EmployeeCounters, error) {
	key := employeeCacheKeyStart + employee.ID
	if s.Cache.IsFresh(key, s.TTL) {
		return s.cachedEmployee(key), nil
	}
	cached := s.cachedEmployee(key)

	var (
		wg sync.WaitGroup

		pendingLeaves, unread int
		leavesErr, unreadErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		pendingLeaves, leavesErr = s.count(ctx, `
      SELECT COUNT(1) FROM leave_requests
      WHERE employee_id = $1 AND status = $2
    `, employee.ID, leave.StatusPending)
	}()
	go func() {
		defer wg.Done()
		var feed []announcements.Announcement
		feed, unreadErr = s.Announcements.FeedFor(ctx, employee, now)
		if unreadErr != nil {
			return
		}
		var readIDs map[string]struct{}
		readIDs, unreadErr = s.Announcements.ReadIDs(ctx, employee.ID)
		if unreadErr != nil {
			return
		}
		unread = UnreadCount(feed, readIDs)
	}()
	wg.Wait()

	result := EmployeeCounters{
		MyPendingLeaves:     orCached("myPendingLeaves", pendingLeaves, leavesErr, cached.MyPendingLeaves),
		UnreadAnnouncements: orCached("unreadAnnouncements", unread, unreadErr, cached.UnreadAnnouncements),
	}
	s.Cache.Set(key, result)
	return result, nil
}
