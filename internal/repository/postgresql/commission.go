package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/inkstudio/studio-backend-go/internal/domain/commission"
	"github.com/inkstudio/studio-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type transactionRepository struct {
	db *database.DB
}

func NewTransactionRepository(db *database.DB) commission.TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionColumns = `id, studio_id, staff_id, amount, commission_rate, commission_amount,
	status, paid_at, paid_method, notes, created_at`

func scanTransaction(row pgx.Row) (commission.Transaction, error) {
	var t commission.Transaction
	err := row.Scan(
		&t.ID, &t.StudioID, &t.StaffID, &t.Amount, &t.CommissionRate, &t.CommissionAmount,
		&t.Status, &t.PaidAt, &t.PaidMethod, &t.Notes, &t.CreatedAt,
	)
	return t, err
}

// Create implements commission.TransactionRepository.
func (r *transactionRepository) Create(ctx context.Context, txn commission.Transaction) (commission.Transaction, error) {
	q := database.GetQuerier(ctx, r.db)

	txn.ID = uuid.Must(uuid.NewV7()).String()

	query := `
		INSERT INTO commission_transactions (
			id, studio_id, staff_id, amount, commission_rate, commission_amount,
			status, notes, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
	`

	_, err := q.Exec(ctx, query,
		txn.ID,
		txn.StudioID,
		txn.StaffID,
		txn.Amount,
		txn.CommissionRate,
		txn.CommissionAmount,
		txn.Status,
		txn.Notes,
		txn.CreatedAt,
	)
	if err != nil {
		return commission.Transaction{}, fmt.Errorf("failed to create commission transaction: %w", err)
	}

	return txn, nil
}

// LockByIDs implements commission.TransactionRepository. Rows are locked
// FOR UPDATE so the settlement check-then-update cannot race a concurrent
// settlement of the same batch.
func (r *transactionRepository) LockByIDs(ctx context.Context, ids []string, studioID string) ([]commission.Transaction, error) {
	q := database.GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM commission_transactions
		WHERE id = ANY($1)
		  AND studio_id = $2
		FOR UPDATE
	`, transactionColumns)

	rows, err := q.Query(ctx, query, ids, studioID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock commission transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// MarkPaid implements commission.TransactionRepository.
func (r *transactionRepository) MarkPaid(ctx context.Context, ids []string, studioID string, paidAt time.Time, paidMethod, notes string) (int64, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE commission_transactions
		SET status = 'paid', paid_at = $3, paid_method = $4,
		    notes = CASE WHEN $5 = '' THEN notes ELSE $5 END
		WHERE id = ANY($1)
		  AND studio_id = $2
		  AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, ids, studioID, paidAt, paidMethod, notes)
	if err != nil {
		return 0, fmt.Errorf("failed to mark commission transactions paid: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ListByRange implements commission.TransactionRepository.
func (r *transactionRepository) ListByRange(ctx context.Context, studioID string, since *time.Time) ([]commission.Transaction, error) {
	q := database.GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM commission_transactions
		WHERE studio_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		ORDER BY created_at DESC
	`, transactionColumns)

	rows, err := q.Query(ctx, query, studioID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list commission transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func collectTransactions(rows pgx.Rows) ([]commission.Transaction, error) {
	var txns []commission.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan commission transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}
