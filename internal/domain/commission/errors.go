package commission

import "errors"

// Commission domain errors
var (
	// Settlement errors
	ErrTransactionNotFound = errors.New("commission transaction not found")
	ErrBatchNotSettleable  = errors.New("batch contains transactions that are missing, foreign, or not pending")

	// Accrual errors
	ErrStaffNotCommissioned = errors.New("staff member is not on a commissioned employment type")
)
