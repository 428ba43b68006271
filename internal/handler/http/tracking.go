package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/inkstudio/studio-backend-go/internal/domain/tracking"
	"github.com/inkstudio/studio-backend-go/internal/handler/http/response"
	"github.com/inkstudio/studio-backend-go/internal/pkg/jwt"
	"github.com/inkstudio/studio-backend-go/internal/pkg/sse"
)

type TrackingHandler interface {
	Action(w http.ResponseWriter, r *http.Request)
	ListSessions(w http.ResponseWriter, r *http.Request)
	CheckLocation(w http.ResponseWriter, r *http.Request)
	StreamEvents(w http.ResponseWriter, r *http.Request)
}

type trackingHandlerImpl struct {
	trackingService tracking.TrackingService
	hub             *sse.Hub
}

func NewTrackingHandler(trackingService tracking.TrackingService, hub *sse.Hub) TrackingHandler {
	return &trackingHandlerImpl{
		trackingService: trackingService,
		hub:             hub,
	}
}

// Action dispatches a clock action (clockIn, startBreak, endBreak, clockOut)
// against the caller's session.
func (h *trackingHandlerImpl) Action(w http.ResponseWriter, r *http.Request) {
	identity, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req tracking.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, err)
		return
	}

	var result tracking.SessionResponse
	switch tracking.Action(req.Action) {
	case tracking.ActionClockIn:
		result, err = h.trackingService.ClockIn(r.Context(), identity.UserID, identity.StudioID, req)
	case tracking.ActionStartBreak:
		result, err = h.trackingService.StartBreak(r.Context(), identity.UserID, req)
	case tracking.ActionEndBreak:
		result, err = h.trackingService.EndBreak(r.Context(), identity.UserID)
	case tracking.ActionClockOut:
		result, err = h.trackingService.ClockOut(r.Context(), identity.UserID)
	default:
		response.HandleError(w, req.Validate())
		return
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *trackingHandlerImpl) ListSessions(w http.ResponseWriter, r *http.Request) {
	identity, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	from, to, err := parseDateRange(r, 0)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	// make "to" inclusive of the whole day
	to = to.AddDate(0, 0, 1)

	result, err := h.trackingService.ListSessions(r.Context(), identity.UserID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *trackingHandlerImpl) CheckLocation(w http.ResponseWriter, r *http.Request) {
	identity, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req tracking.CheckLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.trackingService.CheckLocation(r.Context(), identity.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// StreamEvents pushes tracking events (auto clock-outs) to the caller over SSE.
func (h *trackingHandlerImpl) StreamEvents(w http.ResponseWriter, r *http.Request) {
	identity, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(identity.UserID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"user_id\":\"%s\"}\n\n", identity.UserID)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
