package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/tamiti-backend/internal/logger"
	"github.com/yungbote/tamiti-backend/internal/repos"
	"github.com/yungbote/tamiti-backend/internal/types"
)

// legalBlockTransitions is the status machine for time blocks. Blocks are
// never deleted; the only way out of the calendar is canceled or skipped.
var legalBlockTransitions = map[string][]string{
	types.BlockStatusPlanned:    {types.BlockStatusCommitted, types.BlockStatusCanceled},
	types.BlockStatusCommitted:  {types.BlockStatusInProgress, types.BlockStatusDone, types.BlockStatusSkipped, types.BlockStatusCanceled},
	types.BlockStatusInProgress: {types.BlockStatusDone, types.BlockStatusSkipped},
	types.BlockStatusDone:       {},
	types.BlockStatusSkipped:    {},
	types.BlockStatusCanceled:   {},
}

type CreateBlockInput struct {
	TaskID *uuid.UUID `json:"task_id,omitempty"`
	Title  string     `json:"title"`
	Kind   string     `json:"kind"`
	Start  time.Time  `json:"start"`
	End    time.Time  `json:"end"`
}

type BlockService interface {
	List(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*types.TimeBlock, error)
	CreateManual(ctx context.Context, ownerID uuid.UUID, input CreateBlockInput) (*types.TimeBlock, error)
	UpdateStatus(ctx context.Context, ownerID, blockID uuid.UUID, status string) (*types.TimeBlock, error)
}

type blockService struct {
	db        *gorm.DB
	log       *logger.Logger
	blockRepo repos.TimeBlockRepo
}

func NewBlockService(db *gorm.DB, log *logger.Logger, blockRepo repos.TimeBlockRepo) BlockService {
	return &blockService{
		db:        db,
		log:       log.With("service", "BlockService"),
		blockRepo: blockRepo,
	}
}

func (s *blockService) List(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*types.TimeBlock, error) {
	return s.blockRepo.GetByOwnerInRange(ctx, nil, ownerID, from, to)
}

// CreateManual persists a hand-placed block as committed. The non-overlap
// invariant applies the same as for auto blocks.
func (s *blockService) CreateManual(ctx context.Context, ownerID uuid.UUID, input CreateBlockInput) (*types.TimeBlock, error) {
	if !input.End.After(input.Start) {
		return nil, ErrInvalidBlockRange
	}
	kind := input.Kind
	if kind == "" {
		kind = types.BlockKindTask
	}
	if kind != types.BlockKindTask && kind != types.BlockKindBreak && kind != types.BlockKindBuffer {
		return nil, ErrInvalidStatus
	}

	overlapping, err := s.blockRepo.FindOverlapping(ctx, nil, ownerID, input.Start, input.End, types.OccupyingBlockStatuses)
	if err != nil {
		return nil, err
	}
	if len(overlapping) > 0 {
		return nil, ErrBlockOverlap
	}

	block := &types.TimeBlock{
		ID:      uuid.New(),
		OwnerID: ownerID,
		TaskID:  input.TaskID,
		Title:   input.Title,
		Kind:    kind,
		Start:   input.Start,
		End:     input.End,
		Status:  types.BlockStatusCommitted,
		Source:  types.BlockSourceManual,
	}
	return s.blockRepo.Create(ctx, nil, block)
}

func (s *blockService) UpdateStatus(ctx context.Context, ownerID, blockID uuid.UUID, status string) (*types.TimeBlock, error) {
	block, err := s.blockRepo.GetByID(ctx, nil, blockID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, err
	}
	if block.OwnerID != ownerID {
		return nil, ErrBlockNotFound
	}

	if !transitionAllowed(block.Status, status) {
		return nil, ErrInvalidTransition
	}

	// Entering an occupying status from a non-occupying one re-checks the
	// non-overlap invariant against everything except the block itself.
	if isOccupying(status) && !isOccupying(block.Status) {
		overlapping, err := s.blockRepo.FindOverlapping(ctx, nil, ownerID, block.Start, block.End, types.OccupyingBlockStatuses)
		if err != nil {
			return nil, err
		}
		for _, other := range overlapping {
			if other.ID != block.ID {
				return nil, ErrBlockOverlap
			}
		}
	}

	if err := s.blockRepo.UpdateStatus(ctx, nil, blockID, status); err != nil {
		return nil, err
	}
	block.Status = status
	return block, nil
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range legalBlockTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func isOccupying(status string) bool {
	for _, s := range types.OccupyingBlockStatuses {
		if s == status {
			return true
		}
	}
	return false
}
