package timeblock

import (
	"context"
	"time"
)

// TimeBlockRepository defines data access for time blocks. Every method is
// scoped by ownerID: a block is only visible to the calendar owner.
type TimeBlockRepository interface {
	// Create creates a new time block
	Create(ctx context.Context, block TimeBlock) (TimeBlock, error)

	// GetByID retrieves a block by ID with owner isolation
	GetByID(ctx context.Context, id string, ownerID string) (TimeBlock, error)

	// Update updates an existing block
	Update(ctx context.Context, block TimeBlock) (TimeBlock, error)

	// Delete removes a block. Returns ErrTimeBlockNotFound when absent.
	Delete(ctx context.Context, id string, ownerID string) error

	// ListByOwner retrieves all blocks owned by ownerID
	ListByOwner(ctx context.Context, ownerID string) ([]TimeBlock, error)

	// ListActiveForDate retrieves blocks that may cover date: one-off blocks
	// on that date plus recurring blocks whose window includes it. Recurrence
	// matching itself happens in the caller via Occurs.
	ListActiveForDate(ctx context.Context, ownerID string, date time.Time) ([]TimeBlock, error)
}
