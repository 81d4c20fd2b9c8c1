package counters

import (
	"log/slog"
	"strings"

	"staffhub/internal/domain/announcements"
	"staffhub/internal/domain/auth"
)

// UnreadCount is the number of feed announcements whose ID is absent from
// the read set.
func UnreadCount(visible []announcements.Announcement, readIDs map[string]struct{}) int {
	unread := 0
	for _, a := range visible {
		if _, ok := readIDs[a.ID]; !ok {
			unread++
		}
	}
	return unread
}

// PendingAccounts counts inactive accounts awaiting approval. The super
// admin account starts inactive until first login and is never pending.
func PendingAccounts(accounts []auth.Account, superAdminEmail string) int {
	pending := 0
	for _, a := range accounts {
		if a.IsActive {
			continue
		}
		if superAdminEmail != "" && strings.EqualFold(a.Email, superAdminEmail) {
			continue
		}
		pending++
	}
	return pending
}

// orCached swaps a failed count for its last known value so one slow table
// never blanks the whole badge row.
func orCached(name string, value int, err error, cached int) int {
	if err == nil {
		return value
	}
	slog.Warn("counter query failed, serving cached value", "counter", name, "error", err)
	return cached
}
