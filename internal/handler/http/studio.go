package http

import (
	"encoding/json"
	"net/http"

	"github.com/inkstudio/studio-backend-go/internal/domain/studio"
	"github.com/inkstudio/studio-backend-go/internal/handler/http/response"
	"github.com/inkstudio/studio-backend-go/internal/pkg/jwt"
)

type StudioHandler interface {
	GetGeolocationSettings(w http.ResponseWriter, r *http.Request)
	UpdateGeolocationSettings(w http.ResponseWriter, r *http.Request)
}

type studioHandlerImpl struct {
	settingsService studio.SettingsService
}

func NewStudioHandler(settingsService studio.SettingsService) StudioHandler {
	return &studioHandlerImpl{
		settingsService: settingsService,
	}
}

func (h *studioHandlerImpl) GetGeolocationSettings(w http.ResponseWriter, r *http.Request) {
	identity, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.settingsService.Get(r.Context(), identity.StudioID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *studioHandlerImpl) UpdateGeolocationSettings(w http.ResponseWriter, r *http.Request) {
	identity, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req studio.UpdateGeolocationSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.settingsService.Update(r.Context(), identity.StudioID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Geolocation settings updated successfully", result)
}
