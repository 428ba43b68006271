package timeblock

import (
	"context"
	"time"
)

// TimeBlockService defines business logic for time block management
type TimeBlockService interface {
	// Create validates and stores a new time block
	Create(ctx context.Context, ownerID string, req CreateTimeBlockRequest) (TimeBlockResponse, error)

	// Update validates and replaces an existing block owned by ownerID
	Update(ctx context.Context, ownerID string, req UpdateTimeBlockRequest) (TimeBlockResponse, error)

	// Delete removes a block owned by ownerID
	Delete(ctx context.Context, ownerID string, id string) error

	// List expands all of ownerID's blocks into concrete occurrences within
	// [from, to] for calendar display
	List(ctx context.Context, ownerID string, from, to time.Time) ([]OccurrenceResponse, error)
}
