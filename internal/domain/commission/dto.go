package commission

import (
	"time"

	"github.com/inkstudio/studio-backend-go/internal/pkg/validator"
)

// ========================================
// COMMISSION DTOs
// ========================================

type RecordTransactionRequest struct {
	StaffID        string  `json:"staff_id"`
	Amount         float64 `json:"amount"`
	CommissionRate float64 `json:"commission_rate"`
	Notes          string  `json:"notes"`
}

func (r *RecordTransactionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id is required",
		})
	}

	if r.Amount <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be positive",
		})
	}

	if r.CommissionRate <= 0 || r.CommissionRate > 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "commission_rate",
			Message: "commission_rate must be between 0 and 1",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MarkPaidRequest struct {
	TransactionIDs []string `json:"transaction_ids"`
	PaidMethod     string   `json:"paid_method"`
	Notes          string   `json:"notes"`
}

func (r *MarkPaidRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.TransactionIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "transaction_ids",
			Message: "transaction_ids must not be empty",
		})
	}
	for _, id := range r.TransactionIDs {
		if validator.IsEmpty(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "transaction_ids",
				Message: "transaction_ids must not contain empty values",
			})
			break
		}
	}

	if validator.IsEmpty(r.PaidMethod) {
		errs = append(errs, validator.ValidationError{
			Field:   "paid_method",
			Message: "paid_method is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TransactionResponse struct {
	ID               string  `json:"id"`
	StaffID          string  `json:"staff_id"`
	Amount           float64 `json:"amount"`
	CommissionRate   float64 `json:"commission_rate"`
	CommissionAmount float64 `json:"commission_amount"`
	Status           string  `json:"status"`
	PaidAt           *string `json:"paid_at,omitempty"`
	PaidMethod       *string `json:"paid_method,omitempty"`
	Notes            string  `json:"notes"`
	CreatedAt        string  `json:"created_at"`
}

func ToResponse(t Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:               t.ID,
		StaffID:          t.StaffID,
		Amount:           t.Amount,
		CommissionRate:   t.CommissionRate,
		CommissionAmount: t.CommissionAmount,
		Status:           string(t.Status),
		PaidMethod:       t.PaidMethod,
		Notes:            t.Notes,
		CreatedAt:        t.CreatedAt.Format(time.RFC3339),
	}
	if t.PaidAt != nil {
		paidAt := t.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &paidAt
	}
	return resp
}

// StaffSummary aggregates one staff member's transactions over a range.
type StaffSummary struct {
	StaffID             string  `json:"staff_id"`
	StaffName           string  `json:"staff_name"`
	TotalRevenue        float64 `json:"total_revenue"`
	TotalCommissionOwed float64 `json:"total_commission_owed"`
	TotalPaid           float64 `json:"total_paid"`
	TotalPending        float64 `json:"total_pending"`
	TransactionCount    int     `json:"transaction_count"`
}

// StudioSummary aggregates the studio's ledger over a range.
type StudioSummary struct {
	TotalRevenue    float64 `json:"total_revenue"`
	TotalOwnerKeeps float64 `json:"total_owner_keeps"`
	TotalPending    float64 `json:"total_pending"`
	TotalPaid       float64 `json:"total_paid"`
	StaffCount      int     `json:"staff_count"`
}
