package repository

import (
	"context"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zabal-art/zabal-hub/internal/domain"
	"github.com/zabal-art/zabal-hub/internal/infra/database/models"
	"github.com/zabal-art/zabal-hub/internal/usecase"
)

type NotificationRepository struct {
	db *gorm.DB
}

var _ usecase.NotificationRepository = (*NotificationRepository)(nil)

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) UpsertToken(ctx context.Context, token domain.NotificationToken) error {

	record := models.NotificationToken{
		FID:             token.FID,
		Token:           token.Token,
		NotificationURL: token.NotificationURL,
		Enabled:         token.Enabled,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "token"}},
		DoUpdates: clause.Assignments(map[string]any{
			"fid":              token.FID,
			"notification_url": token.NotificationURL,
			"enabled":          token.Enabled,
		}),
	}).Create(&record).Error
	if err != nil {
		return errors.Wrap(err, "failed to upsert notification token")
	}

	return nil
}

func (r *NotificationRepository) DisableTokens(ctx context.Context, fid int64) error {

	err := r.db.WithContext(ctx).
		Model(&models.NotificationToken{}).
		Where("fid = ?", fid).
		Update("enabled", false).Error
	if err != nil {
		return errors.Wrap(err, "failed to disable notification tokens")
	}

	return nil
}

func (r *NotificationRepository) LogSend(ctx context.Context, title, body, targetURL string, targetFids []int64) error {

	record := models.NotificationLog{
		Title:      title,
		Body:       body,
		TargetURL:  targetURL,
		TargetFids: pq.Int64Array(targetFids),
	}

	err := r.db.WithContext(ctx).Create(&record).Error
	if err != nil {
		return errors.Wrap(err, "failed to log notification send")
	}

	return nil
}
