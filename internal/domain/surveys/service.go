package surveys

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"staffhub/internal/domain/directory"
)

var (
	ErrNotFound         = errors.New("survey not found")
	ErrNotOpen          = errors.New("survey is not accepting responses")
	ErrAlreadyResponded = errors.New("already responded to this survey")
)

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

const surveyColumns = `
  id, title, COALESCE(description, ''), questions, type, status,
  target_departments, end_date, response_count, COALESCE(created_by::text, ''), created_at
`

func scanSurvey(row pgx.Row) (Survey, error) {
	var s Survey
	err := row.Scan(&s.ID, &s.Title, &s.Description, &s.Questions, &s.Type, &s.Status,
		&s.TargetDepartments, &s.EndDate, &s.ResponseCount, &s.CreatedBy, &s.CreatedAt)
	return s, err
}

func (s *Service) collect(ctx context.Context, query string, args ...any) ([]Survey, error) {
	rows, err := s.Store.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Survey
	for rows.Next() {
		survey, err := scanSurvey(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, survey)
	}
	return list, rows.Err()
}

func (s *Service) List(ctx context.Context) ([]Survey, error) {
	return s.collect(ctx, `
    SELECT `+surveyColumns+`
    FROM surveys
    ORDER BY created_at DESC
  `)
}

func (s *Service) Get(ctx context.Context, id string) (Survey, error) {
	survey, err := scanSurvey(s.Store.DB.QueryRow(ctx, `
    SELECT `+surveyColumns+`
    FROM surveys
    WHERE id = $1
  `, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Survey{}, ErrNotFound
	}
	return survey, err
}

// FeedFor mirrors the announcement feed contract: full fetch of active
// surveys, then the shared visibility rule.
func (s *Service) FeedFor(ctx context.Context, employee directory.Employee, now time.Time) ([]Survey, error) {
	activeSurveys, err := s.collect(ctx, `
    SELECT `+surveyColumns+`
    FROM surveys
    WHERE status = $1
    ORDER BY created_at DESC
  `, StatusActive)
	if err != nil {
		return nil, err
	}
	return VisibleTo(activeSurveys, employee, now), nil
}

func (s *Service) Create(ctx context.Context, survey Survey) (string, error) {
	if survey.Questions == nil {
		survey.Questions = json.RawMessage("[]")
	}
	if survey.TargetDepartments == nil {
		survey.TargetDepartments = []string{}
	}
	var id string
	err := s.Store.DB.QueryRow(ctx, `
    INSERT INTO surveys (title, description, questions, type, status, target_departments, end_date, created_by)
    VALUES ($1,NULLIF($2,''),$3,$4,$5,$6,$7,$8)
    RETURNING id
  `, survey.Title, survey.Description, survey.Questions, survey.Type, survey.Status,
		survey.TargetDepartments, survey.EndDate, survey.CreatedBy).Scan(&id)
	return id, err
}

func (s *Service) SetStatus(ctx context.Context, id, status string) error {
	tag, err := s.Store.DB.Exec(ctx, "UPDATE surveys SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	tag, err := s.Store.DB.Exec(ctx, "DELETE FROM surveys WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SubmitResponse stores the answers and bumps response_count in the same
// statement flow. The counter increment happens server-side in one UPDATE,
// so concurrent submissions cannot lose updates.
func (s *Service) SubmitResponse(ctx context.Context, surveyID string, employee directory.Employee, answers json.RawMessage, now time.Time) (string, error) {
	survey, err := s.Get(ctx, surveyID)
	if err != nil {
		return "", err
	}
	if !Visible(survey, employee, now) {
		return "", ErrNotOpen
	}

	var id string
	err = s.Store.DB.QueryRow(ctx, `
    INSERT INTO survey_responses (survey_id, respondent_id, respondent_email, answers)
    VALUES ($1, $2, $3, $4)
    RETURNING id
  `, surveyID, employee.ID, employee.Email, answers).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", ErrAlreadyResponded
		}
		return "", err
	}

	if _, err := s.Store.DB.Exec(ctx, `
    UPDATE surveys SET response_count = response_count + 1 WHERE id = $1
  `, surveyID); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) Responses(ctx context.Context, surveyID string) ([]Response, error) {
	rows, err := s.Store.DB.Query(ctx, `
    SELECT id, survey_id, respondent_id, COALESCE(respondent_email, ''), answers, submitted_at
    FROM survey_responses
    WHERE survey_id = $1
    ORDER BY submitted_at
  `, surveyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []Response
	for rows.Next() {
		var r Response
		if err := rows.Scan(&r.ID, &r.SurveyID, &r.RespondentID, &r.RespondentEmail, &r.Answers, &r.SubmittedAt); err != nil {
			return nil, err
		}
		responses = append(responses, r)
	}
	return responses, rows.Err()
}

// CloseExpired is run by the scheduler; it flips active surveys whose end
// date has passed to closed.
func (s *Service) CloseExpired(ctx context.Context, now time.Time) (int, error) {
	tag, err := s.Store.DB.Exec(ctx, `
    UPDATE surveys
    SET status = $1
    WHERE status = $2 AND end_date IS NOT NULL AND end_date < $3
  `, StatusClosed, StatusActive, now)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
