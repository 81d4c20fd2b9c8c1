package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"staffhub/internal/domain/directory"
	"staffhub/internal/platform/email"
	"staffhub/internal/platform/querier"
	"staffhub/internal/platform/telegram"
)

var ErrNoChannels = errors.New("no notification channel configured")

type Service struct {
	DB       querier.Querier
	Slack    *SlackSender
	Telegram *telegram.Notifier
	Mailer   email.Mailer
}

func NewService(db querier.Querier, slack *SlackSender, tg *telegram.Notifier, mailer email.Mailer) *Service {
	return &Service{DB: db, Slack: slack, Telegram: tg, Mailer: mailer}
}

// SettingsFor returns stored preferences, or defaults when the employee has
// never saved any.
func (s *Service) SettingsFor(ctx context.Context, employeeID string) (Settings, error) {
	var st Settings
	err := s.DB.QueryRow(ctx, `
    SELECT employee_id, COALESCE(slack_webhook_url, ''), COALESCE(telegram_chat_id, 0),
           email_enabled, COALESCE(urgency_threshold, ''), updated_at
    FROM notification_settings
    WHERE employee_id = $1
  `, employeeID).Scan(&st.EmployeeID, &st.SlackWebhookURL, &st.TelegramChatID,
		&st.EmailEnabled, &st.UrgencyThreshold, &st.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Settings{EmployeeID: employeeID, EmailEnabled: true}, nil
	}
	return st, err
}

func (s *Service) SaveSettings(ctx context.Context, st Settings) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO notification_settings (employee_id, slack_webhook_url, telegram_chat_id, email_enabled, urgency_threshold, updated_at)
    VALUES ($1, NULLIF($2, ''), NULLIF($3, 0), $4, NULLIF($5, ''), now())
    ON CONFLICT (employee_id) DO UPDATE
    SET slack_webhook_url = EXCLUDED.slack_webhook_url,
        telegram_chat_id = EXCLUDED.telegram_chat_id,
        email_enabled = EXCLUDED.email_enabled,
        urgency_threshold = EXCLUDED.urgency_threshold,
        updated_at = now()
  `, st.EmployeeID, st.SlackWebhookURL, st.TelegramChatID, st.EmailEnabled, st.UrgencyThreshold)
	return err
}

// SendPersonal fans a message out across the employee's configured
// channels. Channel failures are reported per channel, never as a combined
// error, so one broken webhook does not hide a delivered email.
func (s *Service) SendPersonal(ctx context.Context, employee directory.Employee, msg Message) ([]DeliveryResult, error) {
	st, err := s.SettingsFor(ctx, employee.ID)
	if err != nil {
		return nil, err
	}
	if !MeetsThreshold(msg.Priority, st.UrgencyThreshold) {
		return nil, nil
	}

	var results []DeliveryResult
	record := func(channel string, err error) {
		r := DeliveryResult{Channel: channel, Success: err == nil}
		if err != nil {
			r.Error = err.Error()
			slog.Warn("notification delivery failed", "channel", channel, "employeeId", employee.ID, "error", err)
		}
		results = append(results, r)
	}

	if st.SlackWebhookURL != "" {
		record("slack", s.Slack.Send(ctx, st.SlackWebhookURL, fmt.Sprintf("*%s*\n%s", msg.Subject, msg.Body)))
	}
	if st.TelegramChatID != 0 && s.Telegram.Enabled() {
		record("telegram", s.Telegram.Send(st.TelegramChatID, msg.Subject+"\n\n"+msg.Body))
	}
	if st.EmailEnabled && employee.Email != "" {
		record("email", s.Mailer.Send(ctx, employee.Email, msg.Subject, msg.Body))
	}

	if len(results) == 0 {
		return nil, ErrNoChannels
	}
	return results, nil
}

// TestSlack, TestTelegram and TestEmail drive the settings page "send a
// test" buttons.

func (s *Service) TestSlack(ctx context.Context, webhookURL string) DeliveryResult {
	return toResult("slack", s.Slack.Send(ctx, webhookURL, "Test notification: your Slack channel is wired up."))
}

func (s *Service) TestTelegram(ctx context.Context, chatID int64) DeliveryResult {
	return toResult("telegram", s.Telegram.Send(chatID, "Test notification: your Telegram chat is wired up."))
}

func (s *Service) TestEmail(ctx context.Context, to string) DeliveryResult {
	return toResult("email", s.Mailer.Send(ctx, to, "Test notification", "Your email channel is wired up."))
}

func toResult(channel string, err error) DeliveryResult {
	r := DeliveryResult{Channel: channel, Success: err == nil}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}
