package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/tamiti-backend/internal/logger"
	"github.com/yungbote/tamiti-backend/internal/types"
)

type AvailabilityTemplateRepo interface {
	GetByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.AvailabilityTemplate, error)
}

type availabilityTemplateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAvailabilityTemplateRepo(db *gorm.DB, baseLog *logger.Logger) AvailabilityTemplateRepo {
	return &availabilityTemplateRepo{db: db, log: baseLog.With("repo", "AvailabilityTemplateRepo")}
}

func (r *availabilityTemplateRepo) GetByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.AvailabilityTemplate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.AvailabilityTemplate
	if err := transaction.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("weekday ASC, start_time ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
