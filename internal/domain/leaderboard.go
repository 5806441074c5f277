package domain

import (
	"fmt"
	"time"
)

// LeaderboardRow is one ranked voter as stored, before annotation.
type LeaderboardRow struct {
	FID        int64      `json:"fid"`
	Username   string     `json:"username"`
	PfpURL     string     `json:"pfpUrl"`
	TotalVotes int        `json:"totalVotes"`
	Streak     int        `json:"streak"`
	LastVote   *time.Time `json:"lastVote"`
}

// LeaderboardEntry is a row annotated for presentation. Rank is the 1-based
// position in the page the row came from.
type LeaderboardEntry struct {
	Rank          int        `json:"rank"`
	FID           int64      `json:"fid"`
	Address       string     `json:"address"`
	Username      string     `json:"username"`
	Score         int        `json:"score"`
	Streak        int        `json:"streak"`
	LastVote      *time.Time `json:"lastVote"`
	DisplayName   string     `json:"displayName"`
	DisplayScore  string     `json:"displayScore"`
	DisplayStreak string     `json:"displayStreak"`
}

// UserRank is the storage-side ranking result for a single voter.
type UserRank struct {
	FID        int64      `json:"fid"`
	Rank       int        `json:"rank"`
	Username   string     `json:"username"`
	TotalVotes int        `json:"totalVotes"`
	Streak     int        `json:"streak"`
	LastVote   *time.Time `json:"lastVote"`
}

// LeaderboardConfig is the miniapp-facing display configuration.
type LeaderboardConfig struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IconURL     string `json:"icon_url"`
}

// Validate enforces the display constraints on a config update.
func (c LeaderboardConfig) Validate() error {
	if c.Name == "" || c.Description == "" {
		return InvalidInputError{Reason: "name and description are required"}
	}
	if len(c.Name) > MaxConfigNameLen {
		return InvalidInputError{Reason: fmt.Sprintf("name must be %d characters or less", MaxConfigNameLen)}
	}
	if len(c.Description) > MaxConfigDescriptionLen {
		return InvalidInputError{Reason: fmt.Sprintf("description must be %d characters or less", MaxConfigDescriptionLen)}
	}
	return nil
}

// RankedAddress is a leaderboard row resolved to a payment address for
// external leaderboard consumers. Order follows the ranked input.
type RankedAddress struct {
	Rank     int    `json:"rank"`
	FID      int64  `json:"fid"`
	Username string `json:"username"`
	Address  string `json:"address"`
	Score    int    `json:"score"`
}

// DisplayName returns the username, or the "User {fid}" fallback when none
// is known.
func DisplayName(username string, fid int64) string {
	if username != "" {
		return username
	}
	return fmt.Sprintf("User %d", fid)
}

// FormatScore pluralizes a vote count for display.
func FormatScore(score int) string {
	if score == 1 {
		return "1 vote"
	}
	return fmt.Sprintf("%d votes", score)
}

// FormatStreak formats a day streak for display.
func FormatStreak(streak int) string {
	switch {
	case streak <= 0:
		return "No streak"
	case streak == 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", streak)
	}
}

// RankEmoji returns the medal for podium positions and the numeric rank
// otherwise.
func RankEmoji(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("%d", rank)
	}
}
