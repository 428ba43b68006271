package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/inkstudio/studio-backend-go/internal/domain/timeblock"
	"github.com/inkstudio/studio-backend-go/internal/handler/http/response"
	"github.com/inkstudio/studio-backend-go/internal/pkg/jwt"
	"github.com/inkstudio/studio-backend-go/internal/pkg/validator"
)

type TimeBlockHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type timeBlockHandlerImpl struct {
	blockService timeblock.TimeBlockService
}

func NewTimeBlockHandler(blockService timeblock.TimeBlockService) TimeBlockHandler {
	return &timeBlockHandlerImpl{
		blockService: blockService,
	}
}

func (h *timeBlockHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	identity, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req timeblock.CreateTimeBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.blockService.Create(r.Context(), identity.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Time block created successfully", result)
}

func (h *timeBlockHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	identity, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req timeblock.UpdateTimeBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, err)
		return
	}
	req.ID = chi.URLParam(r, "blockID")

	result, err := h.blockService.Update(r.Context(), identity.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time block updated successfully", result)
}

func (h *timeBlockHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	identity, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	blockID := chi.URLParam(r, "blockID")
	if err := h.blockService.Delete(r.Context(), identity.UserID, blockID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time block deleted successfully", nil)
}

func (h *timeBlockHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	identity, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	from, to, err := parseDateRange(r, 30)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.blockService.List(r.Context(), identity.UserID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// parseDateRange reads optional from/to query params, defaulting to
// [today, today+defaultDays].
func parseDateRange(r *http.Request, defaultDays int) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, defaultDays)

	var errs validator.ValidationErrors
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "from",
				Message: "from must be in YYYY-MM-DD format",
			})
		} else {
			from = parsed
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "to must be in YYYY-MM-DD format",
			})
		} else {
			to = parsed
		}
	}
	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, validator.ValidationErrors{{
			Field:   "to",
			Message: "to must not be before from",
		}}
	}
	return from, to, nil
}
