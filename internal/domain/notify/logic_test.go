package notify

import (
	"testing"

	"staffhub/internal/domain/announcements"
)

func TestMeetsThreshold(t *testing.T) {
	cases := []struct {
		priority  string
		threshold string
		want      bool
	}{
		{announcements.PriorityLow, "", true},
		{announcements.PriorityLow, announcements.PriorityHigh, false},
		{announcements.PriorityHigh, announcements.PriorityHigh, true},
		{announcements.PriorityUrgent, announcements.PriorityHigh, true},
		{announcements.PriorityNormal, announcements.PriorityUrgent, false},
		{"bogus", announcements.PriorityLow, true},
		{"bogus", announcements.PriorityNormal, false},
	}
	for _, tc := range cases {
		if got := MeetsThreshold(tc.priority, tc.threshold); got != tc.want {
			t.Fatalf("MeetsThreshold(%q, %q) = %v, want %v", tc.priority, tc.threshold, got, tc.want)
		}
	}
}
