package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/tamiti-backend/internal/logger"
	"github.com/yungbote/tamiti-backend/internal/types"
)

type CalendarEventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, event *types.CalendarEvent) (*types.CalendarEvent, error)
	GetByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.CalendarEvent, error)
	GetBusyByOwnerInRange(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, from, to time.Time) ([]*types.CalendarEvent, error)
	SoftDelete(ctx context.Context, tx *gorm.DB, ownerID, id uuid.UUID) error
}

type calendarEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCalendarEventRepo(db *gorm.DB, baseLog *logger.Logger) CalendarEventRepo {
	return &calendarEventRepo{db: db, log: baseLog.With("repo", "CalendarEventRepo")}
}

func (r *calendarEventRepo) Create(ctx context.Context, tx *gorm.DB, event *types.CalendarEvent) (*types.CalendarEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

func (r *calendarEventRepo) GetByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.CalendarEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CalendarEvent
	if err := transaction.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order(`"start" ASC`).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *calendarEventRepo) GetBusyByOwnerInRange(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, from, to time.Time) ([]*types.CalendarEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CalendarEvent
	if err := transaction.WithContext(ctx).
		Where(`owner_id = ? AND is_busy = ? AND "start" < ? AND "end" > ?`, ownerID, true, to, from).
		Order(`"start" ASC`).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *calendarEventRepo) SoftDelete(ctx context.Context, tx *gorm.DB, ownerID, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	result := transaction.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&types.CalendarEvent{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
