package gamification

import (
	"sort"

	"staffhub/internal/domain/directory"
)

// Seven tiers; scanned from the top so the first threshold at or below the
// score wins. Level 1 is the floor, level 7 the cap.
var levelThresholds = []struct {
	level     int
	minPoints int
}{
	{7, 2500},
	{6, 1500},
	{5, 1000},
	{4, 600},
	{3, 300},
	{2, 100},
	{1, 0},
}

func Level(totalPoints int) int {
	for _, tier := range levelThresholds {
		if totalPoints >= tier.minPoints {
			return tier.level
		}
	}
	return 1
}

// BuildLeaderboard ranks employees by total points. Employees without a
// points row get a synthesized zero record (never persisted). The sort is
// stable: ties keep the input order of the employees slice. Podium is the
// top three; MyRank is 1-based, 0 when selfEmployeeID is absent.
func BuildLeaderboard(employees []directory.Employee, points []PointsRecord, badges []Badge, selfEmployeeID string) Leaderboard {
	pointsByEmployee := make(map[string]PointsRecord, len(points))
	for _, record := range points {
		pointsByEmployee[record.EmployeeID] = record
	}
	badgesByEmployee := make(map[string][]Badge, len(badges))
	for _, badge := range badges {
		badgesByEmployee[badge.EmployeeID] = append(badgesByEmployee[badge.EmployeeID], badge)
	}

	entries := make([]Entry, 0, len(employees))
	for _, employee := range employees {
		record := pointsByEmployee[employee.ID] // zero record when absent

		earned := badgesByEmployee[employee.ID]
		categories := make(map[string]int, len(earned))
		for _, badge := range earned {
			categories[badge.Category]++
		}
		if earned == nil {
			earned = []Badge{}
		}

		entries = append(entries, Entry{
			EmployeeID:      employee.ID,
			FirstName:       employee.FirstName,
			LastName:        employee.LastName,
			Department:      employee.Department,
			ProfilePicture:  employee.ProfilePicture,
			TotalPoints:     record.TotalPoints,
			PointsThisWeek:  record.PointsThisWeek,
			PointsThisMonth: record.PointsThisMonth,
			Level:           Level(record.TotalPoints),
			StreakDays:      record.StreakDays,
			Badges:          earned,
			BadgeCategories: categories,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalPoints > entries[j].TotalPoints
	})

	board := Leaderboard{Entries: entries}
	for i := range entries {
		entries[i].Rank = i + 1
		if entries[i].EmployeeID == selfEmployeeID {
			board.MyRank = i + 1
		}
	}

	podium := 3
	if len(entries) < podium {
		podium = len(entries)
	}
	board.Podium = entries[:podium]
	return board
}
