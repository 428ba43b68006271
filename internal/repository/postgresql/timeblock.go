package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/inkstudio/studio-backend-go/internal/domain/timeblock"
	"github.com/inkstudio/studio-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type timeBlockRepository struct {
	db *database.DB
}

func NewTimeBlockRepository(db *database.DB) timeblock.TimeBlockRepository {
	return &timeBlockRepository{db: db}
}

const timeBlockColumns = `id, owner_id, date, start_time, end_time, type, title, notes,
	is_recurring, recurring_pattern, recurring_end_date, created_at, updated_at`

func scanTimeBlock(row pgx.Row) (timeblock.TimeBlock, error) {
	var block timeblock.TimeBlock
	var pattern *string
	err := row.Scan(
		&block.ID, &block.OwnerID, &block.Date, &block.StartTime, &block.EndTime,
		&block.Type, &block.Title, &block.Notes,
		&block.IsRecurring, &pattern, &block.RecurringEndDate,
		&block.CreatedAt, &block.UpdatedAt,
	)
	if pattern != nil {
		p := timeblock.RecurringPattern(*pattern)
		block.RecurringPattern = &p
	}
	return block, err
}

// Create implements timeblock.TimeBlockRepository.
func (r *timeBlockRepository) Create(ctx context.Context, block timeblock.TimeBlock) (timeblock.TimeBlock, error) {
	q := database.GetQuerier(ctx, r.db)

	block.ID = uuid.Must(uuid.NewV7()).String()

	query := `
		INSERT INTO time_blocks (
			id, owner_id, date, start_time, end_time, type, title, notes,
			is_recurring, recurring_pattern, recurring_end_date
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		block.ID,
		block.OwnerID,
		block.Date,
		block.StartTime,
		block.EndTime,
		block.Type,
		block.Title,
		block.Notes,
		block.IsRecurring,
		block.RecurringPattern,
		block.RecurringEndDate,
	).Scan(&block.CreatedAt, &block.UpdatedAt)

	if err != nil {
		return timeblock.TimeBlock{}, fmt.Errorf("failed to create time block: %w", err)
	}

	return block, nil
}

// GetByID implements timeblock.TimeBlockRepository.
func (r *timeBlockRepository) GetByID(ctx context.Context, id string, ownerID string) (timeblock.TimeBlock, error) {
	q := database.GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM time_blocks
		WHERE id = $1
		  AND owner_id = $2
	`, timeBlockColumns)

	block, err := scanTimeBlock(q.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeblock.TimeBlock{}, timeblock.ErrTimeBlockNotFound
		}
		return timeblock.TimeBlock{}, fmt.Errorf("failed to get time block: %w", err)
	}

	return block, nil
}

// Update implements timeblock.TimeBlockRepository.
func (r *timeBlockRepository) Update(ctx context.Context, block timeblock.TimeBlock) (timeblock.TimeBlock, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE time_blocks
		SET date = $3, start_time = $4, end_time = $5, type = $6, title = $7,
		    notes = $8, is_recurring = $9, recurring_pattern = $10,
		    recurring_end_date = $11, updated_at = NOW()
		WHERE id = $1
		  AND owner_id = $2
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		block.ID,
		block.OwnerID,
		block.Date,
		block.StartTime,
		block.EndTime,
		block.Type,
		block.Title,
		block.Notes,
		block.IsRecurring,
		block.RecurringPattern,
		block.RecurringEndDate,
	).Scan(&block.CreatedAt, &block.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeblock.TimeBlock{}, timeblock.ErrTimeBlockNotFound
		}
		return timeblock.TimeBlock{}, fmt.Errorf("failed to update time block: %w", err)
	}

	return block, nil
}

// Delete implements timeblock.TimeBlockRepository.
func (r *timeBlockRepository) Delete(ctx context.Context, id string, ownerID string) error {
	q := database.GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM time_blocks WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete time block: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timeblock.ErrTimeBlockNotFound
	}

	return nil
}

// ListByOwner implements timeblock.TimeBlockRepository.
func (r *timeBlockRepository) ListByOwner(ctx context.Context, ownerID string) ([]timeblock.TimeBlock, error) {
	q := database.GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM time_blocks
		WHERE owner_id = $1
		ORDER BY date, start_time
	`, timeBlockColumns)

	rows, err := q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list time blocks: %w", err)
	}
	defer rows.Close()

	return collectTimeBlocks(rows)
}

// ListActiveForDate implements timeblock.TimeBlockRepository. The SQL is a
// coarse filter; exact recurrence matching happens in the caller.
func (r *timeBlockRepository) ListActiveForDate(ctx context.Context, ownerID string, date time.Time) ([]timeblock.TimeBlock, error) {
	q := database.GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM time_blocks
		WHERE owner_id = $1
		  AND (
			(is_recurring = FALSE AND date = $2)
			OR (
				is_recurring = TRUE
				AND date <= $2
				AND (recurring_end_date IS NULL OR recurring_end_date >= $2)
			)
		  )
		ORDER BY start_time
	`, timeBlockColumns)

	rows, err := q.Query(ctx, query, ownerID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list time blocks for date: %w", err)
	}
	defer rows.Close()

	return collectTimeBlocks(rows)
}

func collectTimeBlocks(rows pgx.Rows) ([]timeblock.TimeBlock, error) {
	var blocks []timeblock.TimeBlock
	for rows.Next() {
		block, err := scanTimeBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time block: %w", err)
		}
		blocks = append(blocks, block)
	}
	return blocks, rows.Err()
}
