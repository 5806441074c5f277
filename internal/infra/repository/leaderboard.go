package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/zabal-art/zabal-hub/internal/domain"
	"github.com/zabal-art/zabal-hub/internal/infra/database/models"
	"github.com/zabal-art/zabal-hub/internal/usecase"
)

// leaderboardCacheTTL bounds how stale a leaderboard page may be. The
// miniapp polls on the same interval.
const leaderboardCacheTTL = 30

type LeaderboardRepository struct {
	db *gorm.DB
	mc *memcache.Client
}

var _ usecase.LeaderboardRepository = (*LeaderboardRepository)(nil)

func NewLeaderboardRepository(db *gorm.DB, mc *memcache.Client) *LeaderboardRepository {
	return &LeaderboardRepository{db: db, mc: mc}
}

func (r *LeaderboardRepository) GetTop(ctx context.Context, limit int) ([]domain.LeaderboardRow, error) {

	cacheKey := fmt.Sprintf("leaderboard:top:%d", limit)
	if r.mc != nil {
		if item, err := r.mc.Get(cacheKey); err == nil {
			var cached []domain.LeaderboardRow
			if err := json.Unmarshal(item.Value, &cached); err == nil {
				return cached, nil
			}
		}
	}

	var records []models.LeaderboardScore
	err := r.db.WithContext(ctx).
		Order("total_votes DESC, fid ASC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to query leaderboard")
	}

	rows := make([]domain.LeaderboardRow, len(records))
	for i, rec := range records {
		rows[i] = domain.LeaderboardRow{
			FID:        rec.FID,
			Username:   rec.Username,
			PfpURL:     rec.PfpURL,
			TotalVotes: rec.TotalVotes,
			Streak:     rec.Streak,
			LastVote:   rec.LastVote,
		}
	}

	if r.mc != nil {
		if value, err := json.Marshal(rows); err == nil {
			// best effort; a cold cache only costs a query
			r.mc.Set(&memcache.Item{
				Key:        cacheKey,
				Value:      value,
				Expiration: leaderboardCacheTTL,
			})
		}
	}

	return rows, nil
}

func (r *LeaderboardRepository) GetUserRank(ctx context.Context, fid int64) (*domain.UserRank, error) {

	var record struct {
		models.LeaderboardScore `gorm:"embedded"`
		Rank                    int
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT * FROM (
			SELECT *, RANK() OVER (ORDER BY total_votes DESC, fid ASC) AS rank
			FROM leaderboard_scores
		) ranked
		WHERE fid = ?`, fid).
		Scan(&record).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to query user rank")
	}
	if record.Rank == 0 {
		return nil, nil
	}

	return &domain.UserRank{
		FID:        record.FID,
		Rank:       record.Rank,
		Username:   record.Username,
		TotalVotes: record.TotalVotes,
		Streak:     record.Streak,
		LastVote:   record.LastVote,
	}, nil
}

func (r *LeaderboardRepository) UpdateConfig(ctx context.Context, cfg domain.LeaderboardConfig) (domain.LeaderboardConfig, error) {

	record := models.LeaderboardConfig{
		Name:        cfg.Name,
		Description: cfg.Description,
		IconURL:     cfg.IconURL,
		IsActive:    true,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.LeaderboardConfig
		err := tx.Where("is_active = ?", true).Take(&current).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil {
			record.ID = current.ID
		}
		return tx.Save(&record).Error
	})
	if err != nil {
		return domain.LeaderboardConfig{}, errors.Wrap(err, "failed to store leaderboard config")
	}

	return cfg, nil
}

func (r *LeaderboardRepository) ListFIDsMissingProfile(ctx context.Context) ([]int64, error) {

	var fids []int64
	err := r.db.WithContext(ctx).
		Model(&models.LeaderboardScore{}).
		Where("username = '' OR pfp_url = ''").
		Order("fid ASC").
		Pluck("fid", &fids).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list incomplete profiles")
	}

	return fids, nil
}

func (r *LeaderboardRepository) UpdateProfile(ctx context.Context, fid int64, username, pfpURL string) error {

	err := r.db.WithContext(ctx).
		Model(&models.LeaderboardScore{}).
		Where("fid = ?", fid).
		Updates(map[string]any{
			"username": username,
			"pfp_url":  pfpURL,
		}).Error
	if err != nil {
		return errors.Wrap(err, "failed to update profile")
	}

	return nil
}
