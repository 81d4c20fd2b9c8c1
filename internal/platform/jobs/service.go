package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"staffhub/internal/domain/counters"
	"staffhub/internal/domain/gamification"
	"staffhub/internal/domain/surveys"
	"staffhub/internal/domain/timetracking"
	"staffhub/internal/platform/config"
)

const (
	JobCounterRefresh = "counter_refresh"
	JobSurveySweep    = "survey_sweep"
	JobTimesheetSweep = "timesheet_sweep"
	JobPointsReset    = "points_reset"

	JobAnnouncementBroadcast = "announcement_broadcast"
)

// Service runs background work through a single queue so job_runs records
// every execution, scheduled or triggered by hand.
type Service struct {
	DB    *pgxpool.Pool
	Cfg   config.Config
	queue chan job

	Counters     *counters.Service
	Surveys      *surveys.Service
	Time         *timetracking.Service
	Gamification *gamification.Service
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New(db *pgxpool.Pool, cfg config.Config, cnt *counters.Service, srv *surveys.Service, tt *timetracking.Service, gam *gamification.Service) *Service {
	return &Service{
		DB:           db,
		Cfg:          cfg,
		queue:        make(chan job, 128),
		Counters:     cnt,
		Surveys:      srv,
		Time:         tt,
		Gamification: gam,
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.Cfg.CounterRefreshInterval > 0 {
		go s.schedule(ctx, s.Cfg.CounterRefreshInterval, JobCounterRefresh, s.refreshCounters)
	}
	if s.Cfg.SurveySweepInterval > 0 {
		go s.schedule(ctx, s.Cfg.SurveySweepInterval, JobSurveySweep, s.sweepSurveys)
	}
	if s.Cfg.TimesheetSweepInterval > 0 {
		go s.schedule(ctx, s.Cfg.TimesheetSweepInterval, JobTimesheetSweep, s.sweepTimesheets)
	}
}

func (s *Service) refreshCounters(ctx context.Context) (any, error) {
	result, err := s.Counters.RefreshAdmin(ctx, time.Now())
	return result, err
}

func (s *Service) sweepSurveys(ctx context.Context) (any, error) {
	closed, err := s.Surveys.CloseExpired(ctx, time.Now())
	return map[string]any{"closed": closed}, err
}

func (s *Service) sweepTimesheets(ctx context.Context) (any, error) {
	marked, err := s.Time.SweepOpenEntries(ctx, time.Now())
	return map[string]any{"markedIncomplete": marked}, err
}

// ResetPoints is exposed for the admin trigger endpoint; there is no
// scheduled interval for it.
func (s *Service) ResetPoints(ctx context.Context) (any, error) {
	return s.RunNow(ctx, JobPointsReset, func(ctx context.Context) (any, error) {
		return nil, s.Gamification.ResetWeekly(ctx)
	})
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType)
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	runID := ""
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO job_runs (job_type, status)
    VALUES ($1, $2)
    RETURNING id
  `, j.Type, "running").Scan(&runID); err != nil {
		slog.Warn("job run insert failed", "err", err)
	}

	detail, err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	detailJSON, marshalErr := json.Marshal(detail)
	if marshalErr != nil {
		slog.Warn("job detail marshal failed", "err", marshalErr)
		detailJSON = []byte("{}")
	}
	if runID != "" {
		if _, updErr := s.DB.Exec(ctx, `
      UPDATE job_runs
      SET status = $1, detail = $2, finished_at = now()
      WHERE id = $3
    `, status, string(detailJSON), runID); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return detail, err
}

func (s *Service) schedule(ctx context.Context, interval time.Duration, jobType string, run func(context.Context) (any, error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Enqueue(jobType, run)
		}
	}
}
