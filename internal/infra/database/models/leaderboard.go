package models

import (
	"time"
)

type LeaderboardScore struct {
	FID        int64      `json:"fid" gorm:"primaryKey"`
	Username   string     `json:"username" gorm:"type:text"`
	PfpURL     string     `json:"pfpUrl" gorm:"type:text"`
	TotalVotes int        `json:"totalVotes" gorm:"not null;default:0;index"`
	Streak     int        `json:"streak" gorm:"not null;default:0"`
	LastVote   *time.Time `json:"lastVote" gorm:"type:timestamp with time zone"`
	UpdatedAt  time.Time  `json:"updatedAt" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type LeaderboardConfig struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"type:text"`
	Description string    `json:"description" gorm:"type:text"`
	IconURL     string    `json:"iconUrl" gorm:"type:text"`
	IsActive    bool      `json:"isActive" gorm:"not null;default:true;index"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}
