package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/zabal-art/zabal-hub/internal/domain"
	"github.com/zabal-art/zabal-hub/internal/usecase"
)

// SignalService fans leaderboard and miniapp events out over redis pub/sub.
// Publishers fire and forget; realtime clients attach via Realtime.
type SignalService struct {
	rdb *redis.Client
}

var _ usecase.Signal = (*SignalService)(nil)

func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb: redisClient,
	}
}

func (s *SignalService) Publish(ctx context.Context, event domain.Event) error {

	jsonstr, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = s.rdb.Publish(ctx, domain.SignalChannel, jsonstr).Err()
	if err != nil {
		return err
	}

	return nil
}

// Realtime forwards published events to output until ctx is cancelled.
// Messages that fail to decode are logged and skipped.
func (s *SignalService) Realtime(ctx context.Context, output chan<- domain.Event) {
	pubsub := s.rdb.Subscribe(ctx, domain.SignalChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var event domain.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				slog.ErrorContext(
					ctx, "Failed to decode signal payload",
					slog.String("error", err.Error()),
					slog.String("module", "signal"),
				)
				continue
			}

			select {
			case output <- event:
			case <-ctx.Done():
				return
			}
		}
	}
}
