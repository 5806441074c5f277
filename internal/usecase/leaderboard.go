package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/zabal-art/zabal-hub/internal/domain"
)

var leaderboardTracer = otel.Tracer("leaderboard")

// LeaderboardUsecase reshapes pre-ranked storage rows for presentation and
// resolves ranked identities to payment addresses for external consumers.
type LeaderboardUsecase struct {
	repo   LeaderboardRepository
	social SocialGraph
	signal Signal
}

func NewLeaderboardUsecase(repo LeaderboardRepository, social SocialGraph, signal Signal) *LeaderboardUsecase {
	return &LeaderboardUsecase{
		repo:   repo,
		social: social,
		signal: signal,
	}
}

// GetLeaderboard returns up to limit rows annotated with a 1-based rank
// matching their position in the storage ordering.
func (uc *LeaderboardUsecase) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	ctx, span := leaderboardTracer.Start(ctx, "Leaderboard.GetLeaderboard")
	defer span.End()

	if limit <= 0 {
		limit = domain.DefaultLeaderboardLimit
	}

	rows, err := uc.repo.GetTop(ctx, limit)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to fetch leaderboard")
	}

	entries := make([]domain.LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, annotate(row, i+1))
	}
	return entries, nil
}

// GetUserRank returns the stored rank for fid, or nil when the voter has no
// recorded score.
func (uc *LeaderboardUsecase) GetUserRank(ctx context.Context, fid int64) (*domain.UserRank, error) {
	ctx, span := leaderboardTracer.Start(ctx, "Leaderboard.GetUserRank")
	defer span.End()

	if fid <= 0 {
		return nil, domain.InvalidInputError{Reason: "missing fid parameter"}
	}

	rank, err := uc.repo.GetUserRank(ctx, fid)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to fetch user rank")
	}
	return rank, nil
}

// UpdateConfig validates and persists the active display configuration.
func (uc *LeaderboardUsecase) UpdateConfig(ctx context.Context, cfg domain.LeaderboardConfig) (domain.LeaderboardConfig, error) {
	ctx, span := leaderboardTracer.Start(ctx, "Leaderboard.UpdateConfig")
	defer span.End()

	if err := cfg.Validate(); err != nil {
		return domain.LeaderboardConfig{}, err
	}

	saved, err := uc.repo.UpdateConfig(ctx, cfg)
	if err != nil {
		span.RecordError(err)
		return domain.LeaderboardConfig{}, errors.Wrap(err, "failed to update leaderboard config")
	}

	if uc.signal != nil {
		if err := uc.signal.Publish(ctx, domain.Event{
			Type:      "config_updated",
			Body:      saved,
			Timestamp: time.Now().UTC(),
		}); err != nil {
			span.RecordError(err)
		}
	}

	return saved, nil
}

// ResolveTopAddresses resolves the top n ranked voters to payment addresses
// in one bulk social-graph call. Voters without a resolvable address are
// dropped; ranked order is preserved for the rest. A bulk lookup failure is
// fatal for the whole batch. The second return is the number of ranked rows
// considered before the address filter.
func (uc *LeaderboardUsecase) ResolveTopAddresses(ctx context.Context, n int) ([]domain.RankedAddress, int, error) {
	ctx, span := leaderboardTracer.Start(ctx, "Leaderboard.ResolveTopAddresses")
	defer span.End()

	if n <= 0 {
		n = domain.SyncTopCount
	}

	rows, err := uc.repo.GetTop(ctx, n)
	if err != nil {
		span.RecordError(err)
		return nil, 0, errors.Wrap(err, "failed to fetch leaderboard")
	}
	if len(rows) == 0 {
		return nil, 0, nil
	}

	fids := make([]int64, len(rows))
	for i, row := range rows {
		fids[i] = row.FID
	}

	profiles, err := uc.social.GetUsers(ctx, fids)
	if err != nil {
		span.RecordError(err)
		return nil, 0, errors.Wrap(err, "failed to resolve addresses")
	}

	addressByFID := make(map[int64]string, len(profiles))
	for _, p := range profiles {
		if addr := p.PaymentAddress(); addr != "" && common.IsHexAddress(addr) {
			addressByFID[p.FID] = addr
		}
	}

	resolved := make([]domain.RankedAddress, 0, len(rows))
	for i, row := range rows {
		addr, ok := addressByFID[row.FID]
		if !ok {
			continue
		}
		resolved = append(resolved, domain.RankedAddress{
			Rank:     i + 1,
			FID:      row.FID,
			Username: row.Username,
			Address:  addr,
			Score:    row.TotalVotes,
		})
	}
	return resolved, len(rows), nil
}

// RefreshProfiles backfills usernames and avatars for leaderboard rows that
// are missing them, batching bulk lookups at the provider's limit.
func (uc *LeaderboardUsecase) RefreshProfiles(ctx context.Context) (int, int, error) {
	ctx, span := leaderboardTracer.Start(ctx, "Leaderboard.RefreshProfiles")
	defer span.End()

	fids, err := uc.repo.ListFIDsMissingProfile(ctx)
	if err != nil {
		span.RecordError(err)
		return 0, 0, errors.Wrap(err, "failed to list stale profiles")
	}
	if len(fids) == 0 {
		return 0, 0, nil
	}

	updated := 0
	for start := 0; start < len(fids); start += domain.ProfileBatchSize {
		end := start + domain.ProfileBatchSize
		if end > len(fids) {
			end = len(fids)
		}

		profiles, err := uc.social.GetUsers(ctx, fids[start:end])
		if err != nil {
			// partial progress is fine; skip the failed batch
			span.RecordError(errors.Wrap(err, "profile batch fetch failed"))
			continue
		}

		for _, p := range profiles {
			if err := uc.repo.UpdateProfile(ctx, p.FID, p.Username, p.PfpURL); err != nil {
				span.RecordError(err)
				continue
			}
			updated++
		}
	}
	return updated, len(fids), nil
}

func annotate(row domain.LeaderboardRow, rank int) domain.LeaderboardEntry {
	name := domain.DisplayName(row.Username, row.FID)
	return domain.LeaderboardEntry{
		Rank:          rank,
		FID:           row.FID,
		Address:       formatFID(row.FID),
		Username:      name,
		Score:         row.TotalVotes,
		Streak:        row.Streak,
		LastVote:      row.LastVote,
		DisplayName:   name,
		DisplayScore:  domain.FormatScore(row.TotalVotes),
		DisplayStreak: domain.FormatStreak(row.Streak),
	}
}

func formatFID(fid int64) string {
	return strconv.FormatInt(fid, 10)
}
