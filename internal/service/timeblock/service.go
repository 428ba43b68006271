package timeblock

import (
	"context"
	"sort"
	"time"

	"github.com/inkstudio/studio-backend-go/internal/domain/timeblock"
	"github.com/inkstudio/studio-backend-go/internal/pkg/database"
)

type TimeBlockServiceImpl struct {
	db        *database.DB
	blockRepo timeblock.TimeBlockRepository
}

func NewTimeBlockService(db *database.DB, blockRepo timeblock.TimeBlockRepository) timeblock.TimeBlockService {
	return &TimeBlockServiceImpl{
		db:        db,
		blockRepo: blockRepo,
	}
}

// Create implements timeblock.TimeBlockService.
func (s *TimeBlockServiceImpl) Create(ctx context.Context, ownerID string, req timeblock.CreateTimeBlockRequest) (timeblock.TimeBlockResponse, error) {
	if err := req.Validate(); err != nil {
		return timeblock.TimeBlockResponse{}, err
	}

	created, err := s.blockRepo.Create(ctx, req.ToEntity(ownerID))
	if err != nil {
		return timeblock.TimeBlockResponse{}, err
	}

	return timeblock.ToResponse(created), nil
}

// Update implements timeblock.TimeBlockService.
func (s *TimeBlockServiceImpl) Update(ctx context.Context, ownerID string, req timeblock.UpdateTimeBlockRequest) (timeblock.TimeBlockResponse, error) {
	if err := req.Validate(); err != nil {
		return timeblock.TimeBlockResponse{}, err
	}

	existing, err := s.blockRepo.GetByID(ctx, req.ID, ownerID)
	if err != nil {
		return timeblock.TimeBlockResponse{}, err
	}

	block := req.ToEntity(ownerID)
	block.ID = existing.ID
	block.CreatedAt = existing.CreatedAt

	updated, err := s.blockRepo.Update(ctx, block)
	if err != nil {
		return timeblock.TimeBlockResponse{}, err
	}

	return timeblock.ToResponse(updated), nil
}

// Delete implements timeblock.TimeBlockService.
func (s *TimeBlockServiceImpl) Delete(ctx context.Context, ownerID string, id string) error {
	return s.blockRepo.Delete(ctx, id, ownerID)
}

// List implements timeblock.TimeBlockService. Blocks are expanded into
// concrete occurrences within [from, to], ordered by date then start time.
func (s *TimeBlockServiceImpl) List(ctx context.Context, ownerID string, from, to time.Time) ([]timeblock.OccurrenceResponse, error) {
	blocks, err := s.blockRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var occurrences []timeblock.Occurrence
	for _, block := range blocks {
		for _, date := range timeblock.ExpandRecurring(block, from, to) {
			occurrences = append(occurrences, timeblock.Occurrence{
				BlockID:   block.ID,
				Date:      date,
				StartTime: block.StartTime,
				EndTime:   block.EndTime,
				Type:      block.Type,
				Title:     block.Title,
			})
		}
	}

	sort.Slice(occurrences, func(i, j int) bool {
		if !occurrences[i].Date.Equal(occurrences[j].Date) {
			return occurrences[i].Date.Before(occurrences[j].Date)
		}
		return occurrences[i].StartTime < occurrences[j].StartTime
	})

	responses := make([]timeblock.OccurrenceResponse, 0, len(occurrences))
	for _, occ := range occurrences {
		responses = append(responses, timeblock.ToOccurrenceResponse(occ))
	}

	return responses, nil
}
