package commission

import (
	"context"
	"time"
)

// TransactionRepository defines data access for commission transactions.
// All methods include studioID to prevent cross-studio access.
type TransactionRepository interface {
	// Create creates a new pending transaction
	Create(ctx context.Context, txn Transaction) (Transaction, error)

	// LockByIDs retrieves the named transactions with a row lock so the
	// settlement check-then-update is race free. Run inside a transaction.
	LockByIDs(ctx context.Context, ids []string, studioID string) ([]Transaction, error)

	// MarkPaid flips the named transactions to paid with a shared timestamp
	// and method, returning the number of rows updated
	MarkPaid(ctx context.Context, ids []string, studioID string, paidAt time.Time, paidMethod, notes string) (int64, error)

	// ListByRange retrieves the studio's transactions created at or after
	// since; a nil since means all time
	ListByRange(ctx context.Context, studioID string, since *time.Time) ([]Transaction, error)
}

// LedgerService defines business logic for commission bookkeeping.
type LedgerService interface {
	// Record accrues a commission for a commissioned staff member
	Record(ctx context.Context, studioID string, req RecordTransactionRequest) (TransactionResponse, error)

	// MarkPaid settles a batch of pending transactions atomically; the whole
	// batch fails when any id is missing, foreign, or already paid
	MarkPaid(ctx context.Context, studioID string, req MarkPaidRequest) (int, error)

	// AggregateByStaff summarizes transactions per staff member over a range
	AggregateByStaff(ctx context.Context, studioID string, rng Range) ([]StaffSummary, error)

	// StudioSummary summarizes the whole studio ledger over a range
	StudioSummary(ctx context.Context, studioID string, rng Range) (StudioSummary, error)

	// ListTransactions returns raw transactions in a range, newest first
	ListTransactions(ctx context.Context, studioID string, rng Range) ([]TransactionResponse, error)
}
