package usecase

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/params"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/zabal-art/zabal-hub/internal/domain"
)

var syncTracer = otel.Tracer("sync")

// SyncUsecase pushes the top-50 voter scores to the external Empire Builder
// leaderboard in a single write. Scores travel as wei-style fixed-point
// decimal strings (votes x 10^18) to match the consumer's token format.
type SyncUsecase struct {
	leaderboard *LeaderboardUsecase
	empire      EmpireGateway
	signal      Signal
}

func NewSyncUsecase(leaderboard *LeaderboardUsecase, empire EmpireGateway, signal Signal) *SyncUsecase {
	return &SyncUsecase{
		leaderboard: leaderboard,
		empire:      empire,
		signal:      signal,
	}
}

// SyncResult summarizes one sync submission.
type SyncResult struct {
	Synced          int    `json:"synced"`
	Total           int    `json:"total"`
	TransactionHash string `json:"transactionHash,omitempty"`
}

// Sync resolves the current top voters to addresses and submits them. Voters
// without a resolvable address are dropped from the submission; an empty
// leaderboard is a no-op, not an error.
func (uc *SyncUsecase) Sync(ctx context.Context) (SyncResult, error) {
	ctx, span := syncTracer.Start(ctx, "Sync.Sync")
	defer span.End()

	resolved, total, err := uc.leaderboard.ResolveTopAddresses(ctx, domain.SyncTopCount)
	if err != nil {
		span.RecordError(err)
		return SyncResult{}, err
	}
	if len(resolved) == 0 {
		return SyncResult{Total: total}, nil
	}

	addresses := make([]string, len(resolved))
	scores := make([]string, len(resolved))
	for i, ra := range resolved {
		addresses[i] = ra.Address
		scores[i] = ScaleScore(ra.Score)
	}

	txHash, err := uc.empire.RefreshLeaderboard(ctx, addresses, scores)
	if err != nil {
		span.RecordError(err)
		return SyncResult{}, errors.Wrap(err, "empire leaderboard refresh failed")
	}

	result := SyncResult{
		Synced:          len(resolved),
		Total:           total,
		TransactionHash: txHash,
	}

	if uc.signal != nil {
		if err := uc.signal.Publish(ctx, domain.Event{
			Type:      "leaderboard_synced",
			Body:      result,
			Timestamp: time.Now().UTC(),
		}); err != nil {
			span.RecordError(err)
		}
	}

	return result, nil
}

// ScaleScore converts a vote count to its 10^18-scaled decimal string.
func ScaleScore(votes int) string {
	scaled := new(big.Int).Mul(
		big.NewInt(int64(votes)),
		big.NewInt(params.Ether),
	)
	return scaled.String()
}
