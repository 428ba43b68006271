package commission

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/inkstudio/studio-backend-go/internal/domain/commission"
	"github.com/inkstudio/studio-backend-go/internal/domain/user"
	"github.com/inkstudio/studio-backend-go/internal/pkg/database"
	"github.com/inkstudio/studio-backend-go/internal/pkg/email"
)

type LedgerServiceImpl struct {
	db           *database.DB
	txnRepo      commission.TransactionRepository
	userRepo     user.UserRepository
	emailService email.Service
	now          func() time.Time
	runInTx      func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewLedgerService(
	db *database.DB,
	txnRepo commission.TransactionRepository,
	userRepo user.UserRepository,
	emailService email.Service,
) commission.LedgerService {
	svc := &LedgerServiceImpl{
		db:           db,
		txnRepo:      txnRepo,
		userRepo:     userRepo,
		emailService: emailService,
		now:          time.Now,
	}
	svc.runInTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
		return database.WithTransaction(ctx, svc.db, fn)
	}
	return svc
}

// Record implements commission.LedgerService. Booth renters keep their own
// revenue; accrual for them is rejected outright.
func (l *LedgerServiceImpl) Record(ctx context.Context, studioID string, req commission.RecordTransactionRequest) (commission.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return commission.TransactionResponse{}, err
	}

	staff, err := l.userRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		return commission.TransactionResponse{}, err
	}
	if staff.StudioID != studioID {
		return commission.TransactionResponse{}, user.ErrUserNotFound
	}
	if staff.EmploymentType != user.EmploymentCommissioned {
		return commission.TransactionResponse{}, commission.ErrStaffNotCommissioned
	}

	txn := commission.Transaction{
		StudioID:         studioID,
		StaffID:          req.StaffID,
		Amount:           req.Amount,
		CommissionRate:   req.CommissionRate,
		CommissionAmount: req.Amount * req.CommissionRate,
		Status:           commission.StatusPending,
		Notes:            req.Notes,
		CreatedAt:        l.now().UTC(),
	}

	created, err := l.txnRepo.Create(ctx, txn)
	if err != nil {
		return commission.TransactionResponse{}, err
	}

	return commission.ToResponse(created), nil
}

// MarkPaid implements commission.LedgerService. The batch settles
// all-or-nothing inside one database transaction: any id that is missing,
// belongs to another studio, or is not pending fails the whole call with no
// partial settlement.
func (l *LedgerServiceImpl) MarkPaid(ctx context.Context, studioID string, req commission.MarkPaidRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	ids := dedupe(req.TransactionIDs)
	paidAt := l.now().UTC()

	var settled []commission.Transaction
	err := l.runInTx(ctx, func(txCtx context.Context) error {
		rows, err := l.txnRepo.LockByIDs(txCtx, ids, studioID)
		if err != nil {
			return err
		}
		if len(rows) != len(ids) {
			return commission.ErrBatchNotSettleable
		}
		for _, row := range rows {
			if row.Status != commission.StatusPending {
				return commission.ErrBatchNotSettleable
			}
		}

		count, err := l.txnRepo.MarkPaid(txCtx, ids, studioID, paidAt, req.PaidMethod, req.Notes)
		if err != nil {
			return err
		}
		if count != int64(len(ids)) {
			return commission.ErrBatchNotSettleable
		}

		settled = rows
		return nil
	})
	if err != nil {
		return 0, err
	}

	l.notifySettled(ctx, settled, req.PaidMethod, paidAt)

	return len(settled), nil
}

// notifySettled emails each affected staff member their settled total.
// Delivery is best-effort; the settlement has already committed.
func (l *LedgerServiceImpl) notifySettled(ctx context.Context, settled []commission.Transaction, method string, paidAt time.Time) {
	if l.emailService == nil {
		return
	}

	totals := make(map[string]float64)
	for _, txn := range settled {
		totals[txn.StaffID] += txn.CommissionAmount
	}

	for staffID, total := range totals {
		staff, err := l.userRepo.GetByID(ctx, staffID)
		if err != nil {
			slog.Warn("Could not resolve staff for settlement notice", "staff_id", staffID, "error", err)
			continue
		}
		if err := l.emailService.SendSettlementNotice(ctx, staff.Email, staff.Name, total, method, paidAt); err != nil {
			slog.Warn("Failed to send settlement notice", "staff_id", staffID, "error", err)
		}
	}
}

// AggregateByStaff implements commission.LedgerService.
func (l *LedgerServiceImpl) AggregateByStaff(ctx context.Context, studioID string, rng commission.Range) ([]commission.StaffSummary, error) {
	txns, err := l.txnRepo.ListByRange(ctx, studioID, rng.Since(l.now().UTC()))
	if err != nil {
		return nil, err
	}

	names := make(map[string]string)
	if staff, err := l.userRepo.ListStaff(ctx, studioID); err == nil {
		for _, s := range staff {
			names[s.ID] = s.Name
		}
	}

	byStaff := make(map[string]*commission.StaffSummary)
	for _, txn := range txns {
		summary, ok := byStaff[txn.StaffID]
		if !ok {
			summary = &commission.StaffSummary{
				StaffID:   txn.StaffID,
				StaffName: names[txn.StaffID],
			}
			byStaff[txn.StaffID] = summary
		}
		summary.TotalRevenue += txn.Amount
		summary.TotalCommissionOwed += txn.CommissionAmount
		switch txn.Status {
		case commission.StatusPaid:
			summary.TotalPaid += txn.CommissionAmount
		default:
			summary.TotalPending += txn.CommissionAmount
		}
		summary.TransactionCount++
	}

	summaries := make([]commission.StaffSummary, 0, len(byStaff))
	for _, summary := range byStaff {
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].StaffID < summaries[j].StaffID
	})

	return summaries, nil
}

// StudioSummary implements commission.LedgerService.
func (l *LedgerServiceImpl) StudioSummary(ctx context.Context, studioID string, rng commission.Range) (commission.StudioSummary, error) {
	perStaff, err := l.AggregateByStaff(ctx, studioID, rng)
	if err != nil {
		return commission.StudioSummary{}, err
	}

	var summary commission.StudioSummary
	for _, s := range perStaff {
		summary.TotalRevenue += s.TotalRevenue
		summary.TotalPending += s.TotalPending
		summary.TotalPaid += s.TotalPaid
		summary.TotalOwnerKeeps += s.TotalRevenue - s.TotalCommissionOwed
		summary.StaffCount++
	}

	return summary, nil
}

// ListTransactions implements commission.LedgerService.
func (l *LedgerServiceImpl) ListTransactions(ctx context.Context, studioID string, rng commission.Range) ([]commission.TransactionResponse, error) {
	txns, err := l.txnRepo.ListByRange(ctx, studioID, rng.Since(l.now().UTC()))
	if err != nil {
		return nil, err
	}

	responses := make([]commission.TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		responses = append(responses, commission.ToResponse(txn))
	}
	return responses, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
