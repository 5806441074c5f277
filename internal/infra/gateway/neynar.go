package gateway

import (
	"context"

	"github.com/zabal-art/zabal-hub/client"
	"github.com/zabal-art/zabal-hub/internal/domain"
	"github.com/zabal-art/zabal-hub/internal/usecase"
)

// NeynarGateway adapts the Neynar API client to the social-graph port.
type NeynarGateway struct {
	client *client.Client
}

var _ usecase.SocialGraph = (*NeynarGateway)(nil)

func NewNeynarGateway(cl *client.Client) *NeynarGateway {
	return &NeynarGateway{client: cl}
}

func (g *NeynarGateway) GetUserCasts(ctx context.Context, fid int64, limit int) ([]domain.Cast, error) {
	return g.client.GetUserCasts(ctx, fid, limit)
}

func (g *NeynarGateway) GetUsers(ctx context.Context, fids []int64) ([]domain.Profile, error) {
	return g.client.GetUsers(ctx, fids)
}

func (g *NeynarGateway) SendNotification(ctx context.Context, title, body, targetURL string, targetFids []int64) error {
	return g.client.SendNotification(ctx, title, body, targetURL, targetFids)
}
