package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/tamiti-backend/internal/logger"
	"github.com/yungbote/tamiti-backend/internal/types"
)

type TimeBlockRepo interface {
	Create(ctx context.Context, tx *gorm.DB, block *types.TimeBlock) (*types.TimeBlock, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.TimeBlock, error)
	GetByOwnerInRange(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, from, to time.Time) ([]*types.TimeBlock, error)
	GetByOwnerKindInRange(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, kind string, from, to time.Time) ([]*types.TimeBlock, error)
	FindOverlapping(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, start, end time.Time, statuses []string) ([]*types.TimeBlock, error)
	GetStale(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, before time.Time) ([]*types.TimeBlock, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error
	CancelByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
	DistinctOwnersWithTaskBlocksOn(ctx context.Context, tx *gorm.DB, dayStart, dayEnd time.Time) ([]uuid.UUID, error)
}

type timeBlockRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTimeBlockRepo(db *gorm.DB, baseLog *logger.Logger) TimeBlockRepo {
	return &timeBlockRepo{db: db, log: baseLog.With("repo", "TimeBlockRepo")}
}

func (r *timeBlockRepo) Create(ctx context.Context, tx *gorm.DB, block *types.TimeBlock) (*types.TimeBlock, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(block).Error; err != nil {
		return nil, err
	}
	return block, nil
}

func (r *timeBlockRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.TimeBlock, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var block types.TimeBlock
	if err := transaction.WithContext(ctx).First(&block, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *timeBlockRepo) GetByOwnerInRange(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, from, to time.Time) ([]*types.TimeBlock, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.TimeBlock
	if err := transaction.WithContext(ctx).
		Where(`owner_id = ? AND "start" < ? AND "end" > ?`, ownerID, to, from).
		Order(`"start" ASC`).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *timeBlockRepo) GetByOwnerKindInRange(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, kind string, from, to time.Time) ([]*types.TimeBlock, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.TimeBlock
	if err := transaction.WithContext(ctx).
		Where(`owner_id = ? AND kind = ? AND "start" < ? AND "end" > ?`, ownerID, kind, to, from).
		Order(`"start" ASC`).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// FindOverlapping returns blocks of the owner in the given statuses whose
// [start, end) interval intersects [start, end). Used for the commit-time
// capacity check.
func (r *timeBlockRepo) FindOverlapping(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, start, end time.Time, statuses []string) ([]*types.TimeBlock, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.TimeBlock
	if err := transaction.WithContext(ctx).
		Where(`owner_id = ? AND status IN ? AND "start" < ? AND "end" > ?`, ownerID, statuses, end, start).
		Order(`"start" ASC`).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetStale returns planned/committed blocks whose end already passed. Blocks
// that started executing are never considered stale.
func (r *timeBlockRepo) GetStale(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, before time.Time) ([]*types.TimeBlock, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.TimeBlock
	if err := transaction.WithContext(ctx).
		Where(`owner_id = ? AND status IN ? AND "end" < ?`, ownerID,
			[]string{types.BlockStatusPlanned, types.BlockStatusCommitted}, before).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *timeBlockRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	result := transaction.WithContext(ctx).
		Model(&types.TimeBlock{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *timeBlockRepo) CancelByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.TimeBlock{}).
		Where("id IN ?", ids).
		Update("status", types.BlockStatusCanceled).Error
}

func (r *timeBlockRepo) DistinctOwnersWithTaskBlocksOn(ctx context.Context, tx *gorm.DB, dayStart, dayEnd time.Time) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var owners []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.TimeBlock{}).
		Distinct("owner_id").
		Where(`kind = ? AND "start" >= ? AND "start" < ?`, types.BlockKindTask, dayStart, dayEnd).
		Pluck("owner_id", &owners).Error; err != nil {
		return nil, err
	}
	return owners, nil
}
