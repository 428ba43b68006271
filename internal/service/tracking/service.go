package tracking

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/inkstudio/studio-backend-go/internal/domain/studio"
	"github.com/inkstudio/studio-backend-go/internal/domain/tracking"
	"github.com/inkstudio/studio-backend-go/internal/domain/user"
	"github.com/inkstudio/studio-backend-go/internal/pkg/database"
	"github.com/inkstudio/studio-backend-go/internal/pkg/geo"
	"github.com/inkstudio/studio-backend-go/internal/pkg/sse"
)

type TrackingServiceImpl struct {
	db           *database.DB
	sessionRepo  tracking.SessionRepository
	userRepo     user.UserRepository
	settingsRepo studio.SettingsRepository
	hub          *sse.Hub
	now          func() time.Time
}

func NewTrackingService(
	db *database.DB,
	sessionRepo tracking.SessionRepository,
	userRepo user.UserRepository,
	settingsRepo studio.SettingsRepository,
	hub *sse.Hub,
) *TrackingServiceImpl {
	return &TrackingServiceImpl{
		db:           db,
		sessionRepo:  sessionRepo,
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		hub:          hub,
		now:          time.Now,
	}
}

// ClockIn implements tracking.TrackingService.
func (t *TrackingServiceImpl) ClockIn(ctx context.Context, userID, studioID string, req tracking.ActionRequest) (tracking.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return tracking.SessionResponse{}, err
	}

	open, err := t.sessionRepo.GetOpenSession(ctx, userID)
	if err != nil {
		return tracking.SessionResponse{}, err
	}
	if open != nil {
		return tracking.SessionResponse{}, tracking.ErrSessionAlreadyOpen
	}

	session := tracking.Session{
		UserID:    userID,
		StudioID:  studioID,
		ClockIn:   t.now().UTC(),
		Location:  req.Location,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Notes:     req.Notes,
	}

	created, err := t.sessionRepo.CreateSession(ctx, session)
	if err != nil {
		return tracking.SessionResponse{}, err
	}

	return tracking.ToSessionResponse(created), nil
}

// StartBreak implements tracking.TrackingService.
func (t *TrackingServiceImpl) StartBreak(ctx context.Context, userID string, req tracking.ActionRequest) (tracking.SessionResponse, error) {
	session, err := t.sessionRepo.GetOpenSession(ctx, userID)
	if err != nil {
		return tracking.SessionResponse{}, err
	}
	if session == nil {
		return tracking.SessionResponse{}, tracking.ErrNoOpenSession
	}

	openBreak, err := t.sessionRepo.GetOpenBreak(ctx, session.ID)
	if err != nil {
		return tracking.SessionResponse{}, err
	}
	if openBreak != nil {
		return tracking.SessionResponse{}, tracking.ErrBreakAlreadyOpen
	}

	brk := tracking.BreakSession{
		SessionID: session.ID,
		StartTime: t.now().UTC(),
		Reason:    req.Reason,
	}
	if _, err := t.sessionRepo.CreateBreak(ctx, brk); err != nil {
		return tracking.SessionResponse{}, err
	}

	return t.sessionResponse(ctx, session.ID)
}

// EndBreak implements tracking.TrackingService.
func (t *TrackingServiceImpl) EndBreak(ctx context.Context, userID string) (tracking.SessionResponse, error) {
	session, err := t.sessionRepo.GetOpenSession(ctx, userID)
	if err != nil {
		return tracking.SessionResponse{}, err
	}
	if session == nil {
		return tracking.SessionResponse{}, tracking.ErrNoOpenSession
	}

	openBreak, err := t.sessionRepo.GetOpenBreak(ctx, session.ID)
	if err != nil {
		return tracking.SessionResponse{}, err
	}
	if openBreak == nil {
		return tracking.SessionResponse{}, tracking.ErrNoOpenBreak
	}

	now := t.now().UTC()
	duration := int(now.Sub(openBreak.StartTime).Minutes())
	if duration < 0 {
		duration = 0
	}
	if err := t.sessionRepo.CloseBreak(ctx, openBreak.ID, now, duration); err != nil {
		return tracking.SessionResponse{}, err
	}

	return t.sessionResponse(ctx, session.ID)
}

// ClockOut implements tracking.TrackingService.
func (t *TrackingServiceImpl) ClockOut(ctx context.Context, userID string) (tracking.SessionResponse, error) {
	session, err := t.sessionRepo.GetOpenSession(ctx, userID)
	if err != nil {
		return tracking.SessionResponse{}, err
	}
	if session == nil {
		return tracking.SessionResponse{}, tracking.ErrNoOpenSession
	}

	if err := t.closeSession(ctx, *session); err != nil {
		return tracking.SessionResponse{}, err
	}

	return t.sessionResponse(ctx, session.ID)
}

// sessionResponse reloads a session (with its breaks) and converts it to
// the response DTO.
func (t *TrackingServiceImpl) sessionResponse(ctx context.Context, sessionID string) (tracking.SessionResponse, error) {
	session, err := t.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return tracking.SessionResponse{}, err
	}
	return tracking.ToSessionResponse(session), nil
}

// closeSession ends any still-open break, then stamps the session with
// totalMinutes = (clockOut - clockIn) - sum of break durations, clamped to
// zero.
func (t *TrackingServiceImpl) closeSession(ctx context.Context, session tracking.Session) error {
	now := t.now().UTC()

	openBreak, err := t.sessionRepo.GetOpenBreak(ctx, session.ID)
	if err != nil {
		return err
	}
	if openBreak != nil {
		duration := int(now.Sub(openBreak.StartTime).Minutes())
		if duration < 0 {
			duration = 0
		}
		if err := t.sessionRepo.CloseBreak(ctx, openBreak.ID, now, duration); err != nil {
			return err
		}
	}

	breaks, err := t.sessionRepo.ListBreaks(ctx, session.ID)
	if err != nil {
		return err
	}

	breakMinutes := 0
	for _, b := range breaks {
		if b.DurationMinutes != nil {
			breakMinutes += *b.DurationMinutes
		}
	}

	totalMinutes := int(now.Sub(session.ClockIn).Minutes()) - breakMinutes
	if totalMinutes < 0 {
		totalMinutes = 0
	}

	return t.sessionRepo.CloseSession(ctx, session.ID, now, totalMinutes)
}

// CheckLocation implements tracking.TrackingService. The decision is
// stateless per call; the 15-minute polling cadence belongs to the caller
// (client interval or the cron sweep), never to this method.
func (t *TrackingServiceImpl) CheckLocation(ctx context.Context, userID string, req tracking.CheckLocationRequest) (tracking.LocationCheckResponse, error) {
	if err := req.Validate(); err != nil {
		return tracking.LocationCheckResponse{}, err
	}

	caller, err := t.userRepo.GetByID(ctx, userID)
	if err != nil {
		return tracking.LocationCheckResponse{}, err
	}

	session, err := t.sessionRepo.GetOpenSession(ctx, userID)
	if err != nil {
		return tracking.LocationCheckResponse{}, err
	}
	if session != nil {
		// Remember the last reported position so the periodic sweep can
		// re-evaluate between client reports.
		if err := t.sessionRepo.UpdateSessionLocation(ctx, session.ID, req.Latitude, req.Longitude); err != nil {
			return tracking.LocationCheckResponse{}, err
		}
	}

	settings, err := t.settingsRepo.Get(ctx, caller.StudioID)
	if errors.Is(err, studio.ErrSettingsNotFound) {
		// No geofence configured: fail open
		return tracking.LocationCheckResponse{WithinRange: true}, nil
	}
	if err != nil {
		return tracking.LocationCheckResponse{}, err
	}
	if !settings.IsConfigured {
		return tracking.LocationCheckResponse{WithinRange: true}, nil
	}

	distance := geo.HaversineDistance(req.Latitude, req.Longitude, settings.Latitude, settings.Longitude)
	withinRange := distance <= float64(settings.RadiusMeters)

	result := tracking.LocationCheckResponse{
		WithinRange:    withinRange,
		DistanceMeters: &distance,
	}

	// Only student-role users are subject to auto clock-out
	if withinRange || caller.Role != user.RoleStudent || session == nil {
		return result, nil
	}

	if err := t.closeSession(ctx, *session); err != nil {
		return tracking.LocationCheckResponse{}, err
	}
	result.AutoClockOut = true

	slog.Info("Auto clock-out triggered by geofence",
		"user_id", userID, "session_id", session.ID, "distance_meters", distance)

	if t.hub != nil {
		t.hub.Publish(userID, sse.Event{
			UserID: userID,
			Event:  "auto_clock_out",
			Data: map[string]interface{}{
				"session_id":      session.ID,
				"distance_meters": distance,
				"message":         "You were clocked out automatically after leaving the studio area",
			},
		})
	}

	return result, nil
}

// ListSessions implements tracking.TrackingService.
func (t *TrackingServiceImpl) ListSessions(ctx context.Context, userID string, from, to time.Time) ([]tracking.SessionResponse, error) {
	sessions, err := t.sessionRepo.ListSessions(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	responses := make([]tracking.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		responses = append(responses, tracking.ToSessionResponse(s))
	}
	return responses, nil
}

// SweepOpenSessions re-runs the geofence decision for every open session
// that has a last known position. Sessions that never reported coordinates
// are left alone. Invoked by the cron scheduler.
func (t *TrackingServiceImpl) SweepOpenSessions(ctx context.Context) error {
	sessions, err := t.sessionRepo.ListOpenSessions(ctx)
	if err != nil {
		return err
	}

	for _, session := range sessions {
		if session.Latitude == nil || session.Longitude == nil {
			continue
		}
		result, err := t.CheckLocation(ctx, session.UserID, tracking.CheckLocationRequest{
			Latitude:  *session.Latitude,
			Longitude: *session.Longitude,
		})
		if err != nil {
			slog.Error("Geofence sweep failed for session", "session_id", session.ID, "error", err)
			continue
		}
		if result.AutoClockOut {
			slog.Info("Geofence sweep auto-clocked-out session", "session_id", session.ID)
		}
	}

	return nil
}
