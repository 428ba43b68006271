package http

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/inkstudio/studio-backend-go/internal/domain/commission"
	"github.com/inkstudio/studio-backend-go/internal/handler/http/response"
	"github.com/inkstudio/studio-backend-go/internal/pkg/jwt"
	"github.com/inkstudio/studio-backend-go/internal/pkg/validator"
)

type CommissionHandler interface {
	Record(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	StaffSummaries(w http.ResponseWriter, r *http.Request)
	StudioSummary(w http.ResponseWriter, r *http.Request)
	ListTransactions(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type commissionHandlerImpl struct {
	ledgerService commission.LedgerService
}

func NewCommissionHandler(ledgerService commission.LedgerService) CommissionHandler {
	return &commissionHandlerImpl{
		ledgerService: ledgerService,
	}
}

func (h *commissionHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	identity, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req commission.RecordTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.ledgerService.Record(r.Context(), identity.StudioID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Transaction recorded successfully", result)
}

func (h *commissionHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	identity, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req commission.MarkPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, err)
		return
	}

	settled, err := h.ledgerService.MarkPaid(r.Context(), identity.StudioID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Transactions settled successfully", map[string]int{
		"settled_count": settled,
	})
}

func (h *commissionHandlerImpl) StaffSummaries(w http.ResponseWriter, r *http.Request) {
	identity, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	rng, err := parseRange(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.ledgerService.AggregateByStaff(r.Context(), identity.StudioID, rng)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *commissionHandlerImpl) StudioSummary(w http.ResponseWriter, r *http.Request) {
	identity, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	rng, err := parseRange(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.ledgerService.StudioSummary(r.Context(), identity.StudioID, rng)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *commissionHandlerImpl) ListTransactions(w http.ResponseWriter, r *http.Request) {
	identity, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	rng, err := parseRange(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.ledgerService.ListTransactions(r.Context(), identity.StudioID, rng)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Export streams the ledger for a range as a CSV or XLSX download.
func (h *commissionHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	identity, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	rng, err := parseRange(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	items, err := h.ledgerService.ListTransactions(r.Context(), identity.StudioID, rng)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filenameSuffix := fmt.Sprintf("%s_%s", rng, time.Now().Format("20060102"))

	switch format {
	case "csv":
		data, err := exportLedgerCSV(items)
		if err != nil {
			response.InternalServerError(w, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"commissions_%s.csv\"", filenameSuffix))
		_, _ = w.Write(data)
	case "xlsx", "excel":
		data, err := exportLedgerXLSX(items)
		if err != nil {
			response.InternalServerError(w, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"commissions_%s.xlsx\"", filenameSuffix))
		_, _ = w.Write(data)
	default:
		response.BadRequest(w, "invalid format (use csv or xlsx)", nil)
	}
}

func parseRange(r *http.Request) (commission.Range, error) {
	raw := r.URL.Query().Get("range")
	if raw == "" {
		return commission.RangeAll, nil
	}
	if !validator.IsInSlice(raw, commission.RangeValues) {
		return "", validator.ValidationErrors{{
			Field:   "range",
			Message: "range must be one of: week, month, all",
		}}
	}
	return commission.Range(raw), nil
}

func exportLedgerCSV(items []commission.TransactionResponse) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"id", "staff_id", "amount", "commission_rate", "commission_amount", "status", "paid_at", "paid_method", "notes", "created_at"})
	for _, t := range items {
		_ = w.Write([]string{
			t.ID,
			t.StaffID,
			strconv.FormatFloat(t.Amount, 'f', 2, 64),
			strconv.FormatFloat(t.CommissionRate, 'f', 4, 64),
			strconv.FormatFloat(t.CommissionAmount, 'f', 2, 64),
			t.Status,
			derefString(t.PaidAt),
			derefString(t.PaidMethod),
			t.Notes,
			t.CreatedAt,
		})
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func exportLedgerXLSX(items []commission.TransactionResponse) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Commissions"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header := []string{"ID", "Staff ID", "Amount", "Commission Rate", "Commission Amount", "Status", "Paid At", "Paid Method", "Notes", "Created At"}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}
	for r, t := range items {
		row := r + 2
		values := []any{
			t.ID,
			t.StaffID,
			t.Amount,
			t.CommissionRate,
			t.CommissionAmount,
			t.Status,
			derefString(t.PaidAt),
			derefString(t.PaidMethod),
			t.Notes,
			t.CreatedAt,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "B", 38)
	_ = f.SetColWidth(sheet, "C", "E", 18)
	_ = f.SetColWidth(sheet, "F", "H", 14)
	_ = f.SetColWidth(sheet, "I", "I", 28)
	_ = f.SetColWidth(sheet, "J", "J", 22)

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	_ = f.SetCellStyle(sheet, "A1", "J1", style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
