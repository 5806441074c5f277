package domain

// NotificationToken is a per-user push token delivered by the host platform
// when a user enables miniapp notifications.
type NotificationToken struct {
	FID             int64  `json:"fid"`
	Token           string `json:"token"`
	NotificationURL string `json:"notificationUrl"`
	Enabled         bool   `json:"enabled"`
}
