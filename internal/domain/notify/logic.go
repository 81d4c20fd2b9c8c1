package notify

import "staffhub/internal/domain/announcements"

var priorityRank = map[string]int{
	announcements.PriorityLow:    0,
	announcements.PriorityNormal: 1,
	announcements.PriorityHigh:   2,
	announcements.PriorityUrgent: 3,
}

// MeetsThreshold reports whether a message priority clears the employee's
// urgency threshold. Unknown priorities rank lowest; an empty threshold
// lets everything through.
func MeetsThreshold(priority, threshold string) bool {
	if threshold == "" {
		return true
	}
	return priorityRank[priority] >= priorityRank[threshold]
}
