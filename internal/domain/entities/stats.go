package entities

import (
	"math"
	"time"
)

const (
	levelBaseXP   = 100
	levelExponent = 1.5
	MaxLevel      = 100

	streakBonusPerDay = 10
)

// streakMilestones are the day streaks that earn a title.
var streakMilestones = []struct {
	days  int
	title string
}{
	{100, "Legendary"},
	{30, "Unstoppable"},
	{7, "Week Warrior"},
	{3, "First Streak"},
}

// UserStats aggregates a user's finished quizzes.
type UserStats struct {
	UserID         int64 // user ID
	TotalXP        int   // sum of all session scores
	SessionsPlayed int   // number of completed sessions
	BestScore      int   // highest session score
	BestCombo      int   // longest streak ever reached
	Level          int   // level derived from TotalXP

	CurrentStreak int       // consecutive days with a finished quiz
	BestStreak    int       // longest day streak
	LastPlayedOn  time.Time // UTC day of the latest finished quiz, zero if none
}

// NewUserStats creates empty stats for a user.
func NewUserStats(userID int64) *UserStats {
	return &UserStats{UserID: userID, Level: 1}
}

// Apply folds a finished quiz into the stats and returns the streak bonus XP
// it earned. The session score counts as XP; playing on the day after the
// last played day extends the streak and adds streak*10 bonus XP.
func (s *UserStats) Apply(r *QuizResult) int {
	bonus := s.updateStreak(r.CompletedAt)

	s.TotalXP += r.Score + bonus
	s.SessionsPlayed++
	s.BestScore = max(s.BestScore, r.Score)
	s.BestCombo = max(s.BestCombo, r.MaxCombo)
	s.Level = LevelForXP(s.TotalXP)

	return bonus
}

func (s *UserStats) updateStreak(completedAt time.Time) int {
	if completedAt.IsZero() {
		return 0
	}
	day := dayOf(completedAt)

	bonus := 0
	switch {
	case s.LastPlayedOn.IsZero():
		s.CurrentStreak = 1
	case !day.After(s.LastPlayedOn):
		// Same day or a late result for an earlier day.
		return 0
	case day.Equal(s.LastPlayedOn.AddDate(0, 0, 1)):
		s.CurrentStreak++
		bonus = s.CurrentStreak * streakBonusPerDay
	default:
		s.CurrentStreak = 1
	}

	s.LastPlayedOn = day
	s.BestStreak = max(s.BestStreak, s.CurrentStreak)
	return bonus
}

// StreakTitle returns the title earned for a day streak, or "" below 3 days.
func StreakTitle(days int) string {
	for _, m := range streakMilestones {
		if days >= m.days {
			return m.title
		}
	}
	return ""
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// XPForLevel returns the XP needed to go from level to level+1.
func XPForLevel(level int) int {
	return int(math.Floor(levelBaseXP * math.Pow(float64(level), levelExponent)))
}

// LevelForXP returns the level reached with xp total experience.
func LevelForXP(xp int) int {
	level := 1
	spent := 0
	for level < MaxLevel {
		need := XPForLevel(level)
		if spent+need > xp {
			break
		}
		spent += need
		level++
	}
	return level
}

// XPToNextLevel returns how much XP is still missing for the next level.
func (s *UserStats) XPToNextLevel() int {
	if s.Level >= MaxLevel {
		return 0
	}
	spent := 0
	for l := 1; l < s.Level; l++ {
		spent += XPForLevel(l)
	}
	return spent + XPForLevel(s.Level) - s.TotalXP
}
