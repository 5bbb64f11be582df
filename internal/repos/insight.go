package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/tamiti-backend/internal/logger"
	"github.com/yungbote/tamiti-backend/internal/types"
)

type InsightRepo interface {
	Create(ctx context.Context, tx *gorm.DB, insight *types.Insight) (*types.Insight, error)
	GetActiveByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Insight, error)
	DeactivateByOwnerAndType(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, insightType string, until time.Time) error
}

type insightRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInsightRepo(db *gorm.DB, baseLog *logger.Logger) InsightRepo {
	return &insightRepo{db: db, log: baseLog.With("repo", "InsightRepo")}
}

func (r *insightRepo) Create(ctx context.Context, tx *gorm.DB, insight *types.Insight) (*types.Insight, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(insight).Error; err != nil {
		return nil, err
	}
	return insight, nil
}

func (r *insightRepo) GetActiveByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Insight, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Insight
	if err := transaction.WithContext(ctx).
		Where("owner_id = ? AND is_active = ?", ownerID, true).
		Order("insight_type ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// DeactivateByOwnerAndType closes out the currently active rows of a type.
// Rows are kept as an audit trail, never deleted.
func (r *insightRepo) DeactivateByOwnerAndType(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, insightType string, until time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Insight{}).
		Where("owner_id = ? AND insight_type = ? AND is_active = ?", ownerID, insightType, true).
		Updates(map[string]interface{}{
			"is_active":   false,
			"valid_until": until,
		}).Error
}
