package models

import (
	"time"

	"github.com/lib/pq"
)

type NotificationToken struct {
	ID              int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	FID             int64     `json:"fid" gorm:"index"`
	Token           string    `json:"token" gorm:"type:text;index:notification_token_token,unique"`
	NotificationURL string    `json:"notificationUrl" gorm:"type:text"`
	Enabled         bool      `json:"enabled" gorm:"not null;default:true;index"`
	CDate           time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	UpdatedAt       time.Time `json:"updatedAt" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type NotificationLog struct {
	ID         int64         `json:"id" gorm:"primaryKey;autoIncrement"`
	Title      string        `json:"title" gorm:"type:text"`
	Body       string        `json:"body" gorm:"type:text"`
	TargetURL  string        `json:"targetUrl" gorm:"type:text"`
	TargetFids pq.Int64Array `json:"targetFids" gorm:"type:bigint[]"`
	CDate      time.Time     `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
