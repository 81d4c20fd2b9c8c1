package gamification

import (
	"testing"

	"staffhub/internal/domain/directory"
)

func TestLevelBoundaries(t *testing.T) {
	cases := []struct {
		points int
		want   int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{299, 2},
		{300, 3},
		{600, 4},
		{1000, 5},
		{1500, 6},
		{2499, 6},
		{2500, 7},
		{999999, 7},
	}
	for _, tc := range cases {
		if got := Level(tc.points); got != tc.want {
			t.Fatalf("Level(%d) = %d, want %d", tc.points, got, tc.want)
		}
	}
}

func TestLevelMonotonic(t *testing.T) {
	previous := 0
	for points := 0; points <= 3000; points += 50 {
		level := Level(points)
		if level < previous {
			t.Fatalf("level decreased at %d points: %d -> %d", points, previous, level)
		}
		previous = level
	}
}

func TestBuildLeaderboardOrderingAndTies(t *testing.T) {
	employees := []directory.Employee{
		{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"},
	}
	points := []PointsRecord{
		{EmployeeID: "a", TotalPoints: 50},
		{EmployeeID: "b", TotalPoints: 200},
		{EmployeeID: "c", TotalPoints: 200},
		{EmployeeID: "d", TotalPoints: 10},
	}

	board := BuildLeaderboard(employees, points, nil, "")

	var got []int
	for _, entry := range board.Entries {
		got = append(got, entry.TotalPoints)
	}
	want := []int{200, 200, 50, 10}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("points order %v, want %v", got, want)
		}
	}
	// ties keep input order: b before c
	if board.Entries[0].EmployeeID != "b" || board.Entries[1].EmployeeID != "c" {
		t.Fatalf("tie broke input order: %s, %s", board.Entries[0].EmployeeID, board.Entries[1].EmployeeID)
	}
}

func TestBuildLeaderboardMissingPointsRow(t *testing.T) {
	employees := []directory.Employee{{ID: "a"}, {ID: "b"}}
	points := []PointsRecord{{EmployeeID: "a", TotalPoints: 150}}

	board := BuildLeaderboard(employees, points, nil, "")

	last := board.Entries[len(board.Entries)-1]
	if last.EmployeeID != "b" || last.TotalPoints != 0 || last.Level != 1 {
		t.Fatalf("missing row should read as zero points at level 1: %+v", last)
	}
}

func TestBuildLeaderboardPodiumAndMyRank(t *testing.T) {
	employees := []directory.Employee{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
	points := []PointsRecord{
		{EmployeeID: "a", TotalPoints: 400},
		{EmployeeID: "b", TotalPoints: 300},
		{EmployeeID: "c", TotalPoints: 200},
		{EmployeeID: "d", TotalPoints: 100},
	}

	board := BuildLeaderboard(employees, points, nil, "d")
	if len(board.Podium) != 3 {
		t.Fatalf("podium is top three, got %d", len(board.Podium))
	}
	if board.Podium[0].EmployeeID != "a" {
		t.Fatalf("podium leader should be a, got %s", board.Podium[0].EmployeeID)
	}
	if board.MyRank != 4 {
		t.Fatalf("expected rank 4, got %d", board.MyRank)
	}

	board = BuildLeaderboard(employees, points, nil, "missing")
	if board.MyRank != 0 {
		t.Fatalf("absent employee has no rank, got %d", board.MyRank)
	}

	small := BuildLeaderboard(employees[:2], points[:2], nil, "")
	if len(small.Podium) != 2 {
		t.Fatalf("podium never exceeds the entry count, got %d", len(small.Podium))
	}
}

func TestBuildLeaderboardBadgeGrouping(t *testing.T) {
	employees := []directory.Employee{{ID: "a"}}
	badges := []Badge{
		{EmployeeID: "a", Name: "Early Bird", Category: "attendance"},
		{EmployeeID: "a", Name: "Marathon", Category: "attendance"},
		{EmployeeID: "a", Name: "Mentor", Category: "teamwork"},
	}

	board := BuildLeaderboard(employees, nil, badges, "")
	entry := board.Entries[0]
	if len(entry.Badges) != 3 {
		t.Fatalf("expected 3 badges, got %d", len(entry.Badges))
	}
	if entry.BadgeCategories["attendance"] != 2 || entry.BadgeCategories["teamwork"] != 1 {
		t.Fatalf("unexpected category counts: %v", entry.BadgeCategories)
	}
}
