package surveys

import (
	"time"

	"staffhub/internal/domain/directory"
)

// Visible reports whether the employee should be offered the survey.
// Unlike announcements, the end-date check is inclusive: a survey ending
// exactly now can still be answered. External surveys never appear in the
// internal feed.
func Visible(s Survey, employee directory.Employee, now time.Time) bool {
	if s.Status != StatusActive {
		return false
	}
	if s.EndDate != nil && now.After(*s.EndDate) {
		return false
	}
	if s.Type == TypeExternal {
		return false
	}
	if len(s.TargetDepartments) == 0 {
		return true
	}
	for _, department := range s.TargetDepartments {
		if department == employee.Department {
			return true
		}
	}
	return false
}

func VisibleTo(list []Survey, employee directory.Employee, now time.Time) []Survey {
	visible := make([]Survey, 0, len(list))
	for _, s := range list {
		if Visible(s, employee, now) {
			visible = append(visible, s)
		}
	}
	return visible
}
