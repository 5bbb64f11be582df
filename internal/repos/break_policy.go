package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/tamiti-backend/internal/logger"
	"github.com/yungbote/tamiti-backend/internal/types"
)

type BreakPolicyRepo interface {
	// GetActiveByOwner returns nil (without error) when the owner has no
	// active policy; callers fall back to the engine defaults.
	GetActiveByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) (*types.BreakPolicy, error)
}

type breakPolicyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBreakPolicyRepo(db *gorm.DB, baseLog *logger.Logger) BreakPolicyRepo {
	return &breakPolicyRepo{db: db, log: baseLog.With("repo", "BreakPolicyRepo")}
}

func (r *breakPolicyRepo) GetActiveByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) (*types.BreakPolicy, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var policy types.BreakPolicy
	err := transaction.WithContext(ctx).
		Where("owner_id = ? AND active = ?", ownerID, true).
		Order("created_at ASC").
		First(&policy).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &policy, nil
}
