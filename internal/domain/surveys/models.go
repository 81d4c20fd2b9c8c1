package surveys

import (
	"encoding/json"
	"time"
)

const (
	TypeInternal = "internal"
	TypeExternal = "external"
)

const (
	StatusDraft  = "draft"
	StatusActive = "active"
	StatusClosed = "closed"
)

var (
	Types    = []string{TypeInternal, TypeExternal}
	Statuses = []string{StatusDraft, StatusActive, StatusClosed}
)

type Survey struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Description       string          `json:"description,omitempty"`
	Questions         json.RawMessage `json:"questions"`
	Type              string          `json:"type"`
	Status            string          `json:"status"`
	TargetDepartments []string        `json:"targetDepartments"`
	EndDate           *time.Time      `json:"endDate,omitempty"`
	ResponseCount     int             `json:"responseCount"`
	CreatedBy         string          `json:"createdBy"`
	CreatedAt         time.Time       `json:"createdAt"`
}

type Response struct {
	ID              string          `json:"id"`
	SurveyID        string          `json:"surveyId"`
	RespondentID    string          `json:"respondentId"`
	RespondentEmail string          `json:"respondentEmail"`
	Answers         json.RawMessage `json:"answers"`
	SubmittedAt     time.Time       `json:"submittedAt"`
}
