package announcements

import "time"

const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

const (
	AudienceAll        = "all"
	AudienceDepartment = "department_specific"
	AudienceRole       = "role_specific"
)

var Priorities = []string{PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent}

var Audiences = []string{AudienceAll, AudienceDepartment, AudienceRole}

type Announcement struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Content          string     `json:"content"`
	Priority         string     `json:"priority"`
	IsPublished      bool       `json:"isPublished"`
	TargetAudience   string     `json:"targetAudience"`
	DepartmentFilter string     `json:"departmentFilter,omitempty"`
	ExpiryDate       *time.Time `json:"expiryDate,omitempty"`
	CreatedBy        string     `json:"createdBy"`
	CreatedAt        time.Time  `json:"createdAt"`
}

type ReadStatus struct {
	AnnouncementID string    `json:"announcementId"`
	EmployeeID     string    `json:"employeeId"`
	ReadAt         time.Time `json:"readAt"`
}

type Reader struct {
	EmployeeID string    `json:"employeeId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	ReadAt     time.Time `json:"readAt"`
}
