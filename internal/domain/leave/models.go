package leave

import "time"

const (
	StatusPending   = "Pending"
	StatusApproved  = "Approved"
	StatusDenied    = "Denied"
	StatusCancelled = "Cancelled"
)

type Request struct {
	ID            string     `json:"id"`
	EmployeeID    string     `json:"employeeId"`
	Status        string     `json:"status"`
	StartDate     time.Time  `json:"startDate"`
	EndDate       time.Time  `json:"endDate"`
	DaysRequested float64    `json:"daysRequested"`
	Reason        string     `json:"reason,omitempty"`
	ReviewedBy    string     `json:"reviewedBy,omitempty"`
	ReviewedAt    *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}
