package counters

// AdminCounters backs the admin dashboard badge row.
type AdminCounters struct {
	PendingLeaves         int `json:"pendingLeaves"`
	IncompleteTimeEntries int `json:"incompleteTimeEntries"`
	UrgentAnnouncements   int `json:"urgentAnnouncements"`
	PendingUsers          int `json:"pendingUsers"`
}

// EmployeeCounters backs the employee dashboard badge row.
type EmployeeCounters struct {
	MyPendingLeaves     int `json:"myPendingLeaves"`
	UnreadAnnouncements int `json:"unreadAnnouncements"`
}
