package usecase

import (
	"context"

	"github.com/zabal-art/zabal-hub/internal/domain"
)

// SocialGraph encapsulates the Farcaster social-graph provider.
type SocialGraph interface {
	GetUserCasts(ctx context.Context, fid int64, limit int) ([]domain.Cast, error)
	GetUsers(ctx context.Context, fids []int64) ([]domain.Profile, error)
	SendNotification(ctx context.Context, title, body, targetURL string, targetFids []int64) error
}

// LeaderboardRepository defines storage operations for voter scores. The
// store owns ordering: rows come back sorted by total votes descending with
// fid ascending as the tie-break.
type LeaderboardRepository interface {
	GetTop(ctx context.Context, limit int) ([]domain.LeaderboardRow, error)
	GetUserRank(ctx context.Context, fid int64) (*domain.UserRank, error)
	UpdateConfig(ctx context.Context, cfg domain.LeaderboardConfig) (domain.LeaderboardConfig, error)
	ListFIDsMissingProfile(ctx context.Context) ([]int64, error)
	UpdateProfile(ctx context.Context, fid int64, username, pfpURL string) error
}

// NotificationRepository defines persistence for notification tokens and the
// send log.
type NotificationRepository interface {
	UpsertToken(ctx context.Context, token domain.NotificationToken) error
	DisableTokens(ctx context.Context, fid int64) error
	LogSend(ctx context.Context, title, body, targetURL string, targetFids []int64) error
}

// EmpireGateway submits score snapshots to the external Empire Builder
// leaderboard service.
type EmpireGateway interface {
	RefreshLeaderboard(ctx context.Context, addresses []string, scores []string) (txHash string, err error)
}

// Signal publishes state-change events for realtime consumers.
type Signal interface {
	Publish(ctx context.Context, event domain.Event) error
}
