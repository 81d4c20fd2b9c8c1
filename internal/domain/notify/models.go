package notify

import "time"

// Settings holds one employee's delivery preferences. Urgency threshold
// follows announcement priorities: anything at or above it is delivered.
type Settings struct {
	EmployeeID       string    `json:"employeeId"`
	SlackWebhookURL  string    `json:"slackWebhookUrl"`
	TelegramChatID   int64     `json:"telegramChatId"`
	EmailEnabled     bool      `json:"emailEnabled"`
	UrgencyThreshold string    `json:"urgencyThreshold"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Message is a channel-agnostic notification payload.
type Message struct {
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	Priority string `json:"priority"`
}

// DeliveryResult reports a single channel attempt.
type DeliveryResult struct {
	Channel string `json:"channel"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
