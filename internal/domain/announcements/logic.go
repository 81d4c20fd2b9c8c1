package announcements

import (
	"time"

	"staffhub/internal/domain/directory"
)

// Visible reports whether an announcement should be shown to the employee.
// Rules: must be published, must not be expired (an expiry equal to now is
// already expired), and the audience must match. role_specific exists in the
// audience enum but has no matching rule yet, so such announcements are not
// shown to anyone.
func Visible(a Announcement, employee directory.Employee, now time.Time) bool {
	if !a.IsPublished {
		return false
	}
	if a.ExpiryDate != nil && !a.ExpiryDate.After(now) {
		return false
	}
	switch a.TargetAudience {
	case AudienceAll:
		return true
	case AudienceDepartment:
		return a.DepartmentFilter != "" && a.DepartmentFilter == employee.Department
	}
	return false
}

// VisibleTo filters a full fetch down to what the employee may see,
// preserving input order.
func VisibleTo(list []Announcement, employee directory.Employee, now time.Time) []Announcement {
	visible := make([]Announcement, 0, len(list))
	for _, a := range list {
		if Visible(a, employee, now) {
			visible = append(visible, a)
		}
	}
	return visible
}
