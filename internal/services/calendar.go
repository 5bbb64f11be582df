package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/tamiti-backend/internal/clients/redis"
	"github.com/yungbote/tamiti-backend/internal/logger"
	"github.com/yungbote/tamiti-backend/internal/repos"
	"github.com/yungbote/tamiti-backend/internal/types"
)

type CreateEventInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	IsBusy      *bool     `json:"is_busy,omitempty"`
	Source      string    `json:"source,omitempty"`
}

// CalendarService manages the busy events that carve holes in availability.
// Mutations invalidate the owner's cached previews.
type CalendarService interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]*types.CalendarEvent, error)
	Create(ctx context.Context, ownerID uuid.UUID, input CreateEventInput) (*types.CalendarEvent, error)
	Delete(ctx context.Context, ownerID, eventID uuid.UUID) error
}

type calendarService struct {
	db        *gorm.DB
	log       *logger.Logger
	cache     redis.PreviewCache
	eventRepo repos.CalendarEventRepo
}

func NewCalendarService(db *gorm.DB, log *logger.Logger, cache redis.PreviewCache, eventRepo repos.CalendarEventRepo) CalendarService {
	return &calendarService{
		db:        db,
		log:       log.With("service", "CalendarService"),
		cache:     cache,
		eventRepo: eventRepo,
	}
}

func (s *calendarService) List(ctx context.Context, ownerID uuid.UUID) ([]*types.CalendarEvent, error) {
	return s.eventRepo.GetByOwner(ctx, nil, ownerID)
}

func (s *calendarService) Create(ctx context.Context, ownerID uuid.UUID, input CreateEventInput) (*types.CalendarEvent, error) {
	if !input.End.After(input.Start) {
		return nil, ErrInvalidEventRange
	}

	isBusy := true
	if input.IsBusy != nil {
		isBusy = *input.IsBusy
	}

	event := &types.CalendarEvent{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		Start:       input.Start,
		End:         input.End,
		IsBusy:      isBusy,
		Source:      input.Source,
	}
	created, err := s.eventRepo.Create(ctx, nil, event)
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateOwner(ctx, ownerID)
	return created, nil
}

func (s *calendarService) Delete(ctx context.Context, ownerID, eventID uuid.UUID) error {
	err := s.eventRepo.SoftDelete(ctx, nil, ownerID, eventID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrEventNotFound
	}
	if err != nil {
		return err
	}
	s.cache.InvalidateOwner(ctx, ownerID)
	return nil
}
