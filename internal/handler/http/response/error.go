package response

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/inkstudio/studio-backend-go/internal/domain/commission"
	"github.com/inkstudio/studio-backend-go/internal/domain/studio"
	"github.com/inkstudio/studio-backend-go/internal/domain/timeblock"
	"github.com/inkstudio/studio-backend-go/internal/domain/tracking"
	"github.com/inkstudio/studio-backend-go/internal/domain/user"
	"github.com/inkstudio/studio-backend-go/internal/pkg/validator"
)

// HandleError translates domain errors into HTTP responses. Anything
// unrecognized is logged and returned as a 500 without leaking internals.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.EOF) {
		BadRequest(w, "Malformed request body", nil)
		return
	}

	switch {
	case errors.Is(err, timeblock.ErrTimeBlockNotFound),
		errors.Is(err, tracking.ErrSessionNotFound),
		errors.Is(err, studio.ErrSettingsNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, commission.ErrTransactionNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, tracking.ErrSessionAlreadyOpen),
		errors.Is(err, tracking.ErrNoOpenSession),
		errors.Is(err, tracking.ErrBreakAlreadyOpen),
		errors.Is(err, tracking.ErrNoOpenBreak),
		errors.Is(err, tracking.ErrSessionClosed),
		errors.Is(err, commission.ErrBatchNotSettleable):
		Conflict(w, err.Error())
	case errors.Is(err, commission.ErrStaffNotCommissioned),
		errors.Is(err, studio.ErrGeocodingFailed):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, user.ErrOwnerAccessRequired),
		errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, err.Error())
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
