package gamification

import "time"

// PointsRecord is the per-employee gamification ledger; at most one row per
// employee. A missing row reads as all zeroes.
type PointsRecord struct {
	EmployeeID      string `json:"employeeId"`
	TotalPoints     int    `json:"totalPoints"`
	PointsThisWeek  int    `json:"pointsThisWeek"`
	PointsThisMonth int    `json:"pointsThisMonth"`
	Level           int    `json:"level"`
	StreakDays      int    `json:"streakDays"`
}

type Badge struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employeeId"`
	Name        string    `json:"badgeName"`
	Icon        string    `json:"badgeIcon,omitempty"`
	Category    string    `json:"badgeCategory"`
	PointsValue int       `json:"pointsValue"`
	AwardedAt   time.Time `json:"awardedAt"`
}

type Entry struct {
	Rank            int            `json:"rank"`
	EmployeeID      string         `json:"employeeId"`
	FirstName       string         `json:"firstName"`
	LastName        string         `json:"lastName"`
	Department      string         `json:"department"`
	ProfilePicture  string         `json:"profilePicture,omitempty"`
	TotalPoints     int            `json:"totalPoints"`
	PointsThisWeek  int            `json:"pointsThisWeek"`
	PointsThisMonth int            `json:"pointsThisMonth"`
	Level           int            `json:"level"`
	StreakDays      int            `json:"streakDays"`
	Badges          []Badge        `json:"badges"`
	BadgeCategories map[string]int `json:"badgeCategories"`
}

type Leaderboard struct {
	Entries []Entry `json:"entries"`
	Podium  []Entry `json:"podium"`
	MyRank  int     `json:"myRank,omitempty"`
}
