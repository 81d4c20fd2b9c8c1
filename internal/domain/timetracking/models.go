package timetracking

import "time"

const (
	StatusCheckedIn  = "checked_in"
	StatusCheckedOut = "checked_out"
	StatusIncomplete = "incomplete"
)

type Entry struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employeeId"`
	EntryDate    time.Time  `json:"entryDate"`
	CheckInTime  *time.Time `json:"checkInTime,omitempty"`
	CheckOutTime *time.Time `json:"checkOutTime,omitempty"`
	HoursWorked  float64    `json:"hoursWorked"`
	Status       string     `json:"status"`
	BreakMinutes int        `json:"totalBreakMinutes"`
}
