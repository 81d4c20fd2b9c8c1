package counters

import (
	"errors"
	"testing"

	"staffhub/internal/domain/announcements"
	"staffhub/internal/domain/auth"
)

func TestUnreadCount(t *testing.T) {
	visible := []announcements.Announcement{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	readIDs := map[string]struct{}{"b": {}}

	if got := UnreadCount(visible, readIDs); got != 2 {
		t.Fatalf("expected 2 unread, got %d", got)
	}
	if got := UnreadCount(nil, readIDs); got != 0 {
		t.Fatalf("empty feed has no unread, got %d", got)
	}
	if got := UnreadCount(visible, nil); got != 3 {
		t.Fatalf("nil read set leaves everything unread, got %d", got)
	}
}

func TestPendingAccounts(t *testing.T) {
	accounts := []auth.Account{
		{Email: "active@example.com", IsActive: true},
		{Email: "waiting@example.com", IsActive: false},
		{Email: "Root@Example.com", IsActive: false},
	}

	if got := PendingAccounts(accounts, "root@example.com"); got != 1 {
		t.Fatalf("super admin must not count as pending, got %d", got)
	}
	if got := PendingAccounts(accounts, ""); got != 2 {
		t.Fatalf("without a super admin both inactive accounts are pending, got %d", got)
	}
}

func TestOrCached(t *testing.T) {
	if got := orCached("x", 7, nil, 3); got != 7 {
		t.Fatalf("successful fetch wins, got %d", got)
	}
	if got := orCached("x", 0, errors.New("boom"), 3); got != 3 {
		t.Fatalf("failed fetch falls back to cached, got %d", got)
	}
}
