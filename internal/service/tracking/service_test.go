package tracking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkstudio/studio-backend-go/internal/domain/studio"
	"github.com/inkstudio/studio-backend-go/internal/domain/tracking"
	"github.com/inkstudio/studio-backend-go/internal/domain/user"
	"github.com/inkstudio/studio-backend-go/internal/pkg/sse"
)

type fakeSessionRepo struct {
	sessions map[string]*tracking.Session
	breaks   map[string]*tracking.BreakSession
	seq      int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		sessions: make(map[string]*tracking.Session),
		breaks:   make(map[string]*tracking.BreakSession),
	}
}

func (f *fakeSessionRepo) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeSessionRepo) CreateSession(ctx context.Context, session tracking.Session) (tracking.Session, error) {
	session.ID = f.nextID("session")
	f.sessions[session.ID] = &session
	return session, nil
}

func (f *fakeSessionRepo) GetSessionByID(ctx context.Context, id string) (tracking.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return tracking.Session{}, tracking.ErrSessionNotFound
	}
	out := *s
	out.Breaks = f.breaksOf(id)
	return out, nil
}

func (f *fakeSessionRepo) GetOpenSession(ctx context.Context, userID string) (*tracking.Session, error) {
	for _, s := range f.sessions {
		if s.UserID == userID && s.ClockOut == nil {
			out := *s
			out.Breaks = f.breaksOf(s.ID)
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionRepo) CloseSession(ctx context.Context, id string, clockOut time.Time, totalMinutes int) error {
	s, ok := f.sessions[id]
	if !ok {
		return tracking.ErrSessionNotFound
	}
	if s.ClockOut != nil {
		return tracking.ErrSessionClosed
	}
	s.ClockOut = &clockOut
	s.TotalMinutes = &totalMinutes
	return nil
}

func (f *fakeSessionRepo) UpdateSessionLocation(ctx context.Context, id string, lat, lng float64) error {
	s, ok := f.sessions[id]
	if !ok {
		return tracking.ErrSessionNotFound
	}
	s.Latitude = &lat
	s.Longitude = &lng
	return nil
}

func (f *fakeSessionRepo) ListSessions(ctx context.Context, userID string, from, to time.Time) ([]tracking.Session, error) {
	var out []tracking.Session
	for _, s := range f.sessions {
		if s.UserID == userID && !s.ClockIn.Before(from) && s.ClockIn.Before(to) {
			copied := *s
			copied.Breaks = f.breaksOf(s.ID)
			out = append(out, copied)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListOpenSessions(ctx context.Context) ([]tracking.Session, error) {
	var out []tracking.Session
	for _, s := range f.sessions {
		if s.ClockOut == nil {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) CreateBreak(ctx context.Context, brk tracking.BreakSession) (tracking.BreakSession, error) {
	brk.ID = f.nextID("break")
	f.breaks[brk.ID] = &brk
	return brk, nil
}

func (f *fakeSessionRepo) GetOpenBreak(ctx context.Context, sessionID string) (*tracking.BreakSession, error) {
	for _, b := range f.breaks {
		if b.SessionID == sessionID && b.EndTime == nil {
			out := *b
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionRepo) CloseBreak(ctx context.Context, id string, endTime time.Time, durationMinutes int) error {
	b, ok := f.breaks[id]
	if !ok {
		return tracking.ErrNoOpenBreak
	}
	b.EndTime = &endTime
	b.DurationMinutes = &durationMinutes
	return nil
}

func (f *fakeSessionRepo) ListBreaks(ctx context.Context, sessionID string) ([]tracking.BreakSession, error) {
	return f.breaksOf(sessionID), nil
}

func (f *fakeSessionRepo) breaksOf(sessionID string) []tracking.BreakSession {
	var out []tracking.BreakSession
	for _, b := range f.breaks {
		if b.SessionID == sessionID {
			out = append(out, *b)
		}
	}
	return out
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) ListStaff(ctx context.Context, studioID string) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		if u.StudioID == studioID {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeSettingsRepo struct {
	settings *studio.GeolocationSettings
}

func (f *fakeSettingsRepo) Get(ctx context.Context, studioID string) (studio.GeolocationSettings, error) {
	if f.settings == nil {
		return studio.GeolocationSettings{}, studio.ErrSettingsNotFound
	}
	return *f.settings, nil
}

func (f *fakeSettingsRepo) Upsert(ctx context.Context, settings studio.GeolocationSettings) (studio.GeolocationSettings, error) {
	f.settings = &settings
	return settings, nil
}

// studioPoint is roughly 50 meters north of studioLat/studioLng
const (
	studioLat = 40.0
	studioLng = -75.0
)

func fiftyMetersNorth() float64 {
	return studioLat + 50.0*180.0/(3.141592653589793*6371000.0)
}

type trackingFixture struct {
	svc         *TrackingServiceImpl
	sessionRepo *fakeSessionRepo
	users       *fakeUserRepo
	settings    *fakeSettingsRepo
	hub         *sse.Hub
	clock       *time.Time
}

func newTrackingFixture(t *testing.T) *trackingFixture {
	t.Helper()

	sessionRepo := newFakeSessionRepo()
	users := &fakeUserRepo{users: map[string]user.User{
		"artist-1": {ID: "artist-1", StudioID: "studio-1", Name: "Mara", Email: "mara@studio.test", Role: user.RoleArtist},
		"student-1": {ID: "student-1", StudioID: "studio-1", Name: "Iris", Email: "iris@studio.test", Role: user.RoleStudent},
	}}
	settings := &fakeSettingsRepo{}
	hub := sse.NewHub()

	now := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	svc := NewTrackingService(nil, sessionRepo, users, settings, hub)
	svc.now = func() time.Time { return now }

	return &trackingFixture{
		svc:         svc,
		sessionRepo: sessionRepo,
		users:       users,
		settings:    settings,
		hub:         hub,
		clock:       &now,
	}
}

func (fx *trackingFixture) advance(d time.Duration) {
	*fx.clock = fx.clock.Add(d)
}

func (fx *trackingFixture) configureGeofence(radiusMeters int) {
	fx.settings.settings = &studio.GeolocationSettings{
		StudioID:     "studio-1",
		Address:      "12 Needle St",
		Latitude:     studioLat,
		Longitude:    studioLng,
		RadiusMeters: radiusMeters,
		OpenTime:     "09:00",
		CloseTime:    "17:00",
		IsConfigured: true,
	}
}

func TestClockInTwiceConflicts(t *testing.T) {
	fx := newTrackingFixture(t)
	ctx := context.Background()

	_, err := fx.svc.ClockIn(ctx, "artist-1", "studio-1", tracking.ActionRequest{Action: string(tracking.ActionClockIn)})
	require.NoError(t, err)

	_, err = fx.svc.ClockIn(ctx, "artist-1", "studio-1", tracking.ActionRequest{Action: string(tracking.ActionClockIn)})
	assert.ErrorIs(t, err, tracking.ErrSessionAlreadyOpen)
}

func TestBreakRequiresOpenSession(t *testing.T) {
	fx := newTrackingFixture(t)
	ctx := context.Background()

	_, err := fx.svc.StartBreak(ctx, "artist-1", tracking.ActionRequest{Action: string(tracking.ActionStartBreak)})
	assert.ErrorIs(t, err, tracking.ErrNoOpenSession)

	_, err = fx.svc.EndBreak(ctx, "artist-1")
	assert.ErrorIs(t, err, tracking.ErrNoOpenSession)

	_, err = fx.svc.ClockOut(ctx, "artist-1")
	assert.ErrorIs(t, err, tracking.ErrNoOpenSession)
}

func TestBreakStateTransitions(t *testing.T) {
	fx := newTrackingFixture(t)
	ctx := context.Background()

	_, err := fx.svc.ClockIn(ctx, "artist-1", "studio-1", tracking.ActionRequest{Action: string(tracking.ActionClockIn)})
	require.NoError(t, err)

	_, err = fx.svc.EndBreak(ctx, "artist-1")
	assert.ErrorIs(t, err, tracking.ErrNoOpenBreak)

	_, err = fx.svc.StartBreak(ctx, "artist-1", tracking.ActionRequest{Action: string(tracking.ActionStartBreak)})
	require.NoError(t, err)

	_, err = fx.svc.StartBreak(ctx, "artist-1", tracking.ActionRequest{Action: string(tracking.ActionStartBreak)})
	assert.ErrorIs(t, err, tracking.ErrBreakAlreadyOpen)

	_, err = fx.svc.EndBreak(ctx, "artist-1")
	require.NoError(t, err)
}

func TestClockOutNetsOutBreaks(t *testing.T) {
	fx := newTrackingFixture(t)
	ctx := context.Background()

	_, err := fx.svc.ClockIn(ctx, "artist-1", "studio-1", tracking.ActionRequest{Action: string(tracking.ActionClockIn)})
	require.NoError(t, err)

	fx.advance(60 * time.Minute)
	_, err = fx.svc.StartBreak(ctx, "artist-1", tracking.ActionRequest{Action: string(tracking.ActionStartBreak)})
	require.NoError(t, err)

	fx.advance(30 * time.Minute)
	_, err = fx.svc.EndBreak(ctx, "artist-1")
	require.NoError(t, err)

	fx.advance(30 * time.Minute)
	result, err := fx.svc.ClockOut(ctx, "artist-1")
	require.NoError(t, err)

	// 120 elapsed minus a 30 minute break
	require.NotNil(t, result.TotalHours)
	assert.InDelta(t, 1.5, *result.TotalHours, 0.001)
	require.Len(t, result.Breaks, 1)
	require.NotNil(t, result.Breaks[0].DurationMinutes)
	assert.Equal(t, 30, *result.Breaks[0].DurationMinutes)
}

func TestClockOutClosesOpenBreak(t *testing.T) {
	fx := newTrackingFixture(t)
	ctx := context.Background()

	_, err := fx.svc.ClockIn(ctx, "artist-1", "studio-1", tracking.ActionRequest{Action: string(tracking.ActionClockIn)})
	require.NoError(t, err)

	fx.advance(60 * time.Minute)
	_, err = fx.svc.StartBreak(ctx, "artist-1", tracking.ActionRequest{Action: string(tracking.ActionStartBreak)})
	require.NoError(t, err)

	fx.advance(15 * time.Minute)
	result, err := fx.svc.ClockOut(ctx, "artist-1")
	require.NoError(t, err)

	require.NotNil(t, result.TotalHours)
	assert.InDelta(t, 1.0, *result.TotalHours, 0.001)
	require.Len(t, result.Breaks, 1)
	assert.NotNil(t, result.Breaks[0].EndTime)
}

func TestTotalNeverNegative(t *testing.T) {
	fx := newTrackingFixture(t)
	ctx := context.Background()

	_, err := fx.svc.ClockIn(ctx, "artist-1", "studio-1", tracking.ActionRequest{Action: string(tracking.ActionClockIn)})
	require.NoError(t, err)

	_, err = fx.svc.StartBreak(ctx, "artist-1", tracking.ActionRequest{Action: string(tracking.ActionStartBreak)})
	require.NoError(t, err)

	// the whole session was one long break
	fx.advance(45 * time.Minute)
	result, err := fx.svc.ClockOut(ctx, "artist-1")
	require.NoError(t, err)

	require.NotNil(t, result.TotalHours)
	assert.Equal(t, 0.0, *result.TotalHours)
}

func TestCheckLocationFailsOpenWithoutSettings(t *testing.T) {
	fx := newTrackingFixture(t)
	ctx := context.Background()

	result, err := fx.svc.CheckLocation(ctx, "student-1", tracking.CheckLocationRequest{
		Latitude:  fiftyMetersNorth(),
		Longitude: studioLng,
	})
	require.NoError(t, err)

	assert.True(t, result.WithinRange)
	assert.Nil(t, result.DistanceMeters)
	assert.False(t, result.AutoClockOut)
}

func TestCheckLocationFailsOpenWhenUnconfigured(t *testing.T) {
	fx := newTrackingFixture(t)
	fx.configureGeofence(100)
	fx.settings.settings.IsConfigured = false
	ctx := context.Background()

	result, err := fx.svc.CheckLocation(ctx, "student-1", tracking.CheckLocationRequest{
		Latitude:  fiftyMetersNorth(),
		Longitude: studioLng,
	})
	require.NoError(t, err)
	assert.True(t, result.WithinRange)
}

func TestCheckLocationWithinRadius(t *testing.T) {
	fx := newTrackingFixture(t)
	fx.configureGeofence(100)
	ctx := context.Background()

	result, err := fx.svc.CheckLocation(ctx, "student-1", tracking.CheckLocationRequest{
		Latitude:  fiftyMetersNorth(),
		Longitude: studioLng,
	})
	require.NoError(t, err)

	assert.True(t, result.WithinRange)
	require.NotNil(t, result.DistanceMeters)
	assert.InDelta(t, 50.0, *result.DistanceMeters, 1.0)
	assert.False(t, result.AutoClockOut)
}

func TestCheckLocationAutoClocksOutStudent(t *testing.T) {
	fx := newTrackingFixture(t)
	fx.configureGeofence(5)
	ctx := context.Background()

	events, cleanup := fx.hub.Subscribe("student-1")
	defer cleanup()

	_, err := fx.svc.ClockIn(ctx, "student-1", "studio-1", tracking.ActionRequest{Action: string(tracking.ActionClockIn)})
	require.NoError(t, err)

	fx.advance(30 * time.Minute)
	result, err := fx.svc.CheckLocation(ctx, "student-1", tracking.CheckLocationRequest{
		Latitude:  fiftyMetersNorth(),
		Longitude: studioLng,
	})
	require.NoError(t, err)

	assert.False(t, result.WithinRange)
	assert.True(t, result.AutoClockOut)

	open, err := fx.sessionRepo.GetOpenSession(ctx, "student-1")
	require.NoError(t, err)
	assert.Nil(t, open)

	select {
	case event := <-events:
		assert.Equal(t, "auto_clock_out", event.Event)
	default:
		t.Fatal("expected an auto_clock_out event")
	}
}

func TestCheckLocationLeavesNonStudentsAlone(t *testing.T) {
	fx := newTrackingFixture(t)
	fx.configureGeofence(5)
	ctx := context.Background()

	_, err := fx.svc.ClockIn(ctx, "artist-1", "studio-1", tracking.ActionRequest{Action: string(tracking.ActionClockIn)})
	require.NoError(t, err)

	result, err := fx.svc.CheckLocation(ctx, "artist-1", tracking.CheckLocationRequest{
		Latitude:  fiftyMetersNorth(),
		Longitude: studioLng,
	})
	require.NoError(t, err)

	assert.False(t, result.WithinRange)
	assert.False(t, result.AutoClockOut)

	open, err := fx.sessionRepo.GetOpenSession(ctx, "artist-1")
	require.NoError(t, err)
	require.NotNil(t, open)
}

func TestCheckLocationRejectsBadCoordinates(t *testing.T) {
	fx := newTrackingFixture(t)
	ctx := context.Background()

	_, err := fx.svc.CheckLocation(ctx, "student-1", tracking.CheckLocationRequest{
		Latitude:  91,
		Longitude: -200,
	})
	require.Error(t, err)
}

func TestSweepUsesLastReportedPosition(t *testing.T) {
	fx := newTrackingFixture(t)
	fx.configureGeofence(5)
	ctx := context.Background()

	_, err := fx.svc.ClockIn(ctx, "student-1", "studio-1", tracking.ActionRequest{Action: string(tracking.ActionClockIn)})
	require.NoError(t, err)

	// out-of-range position stored on the session by a location report made
	// while the geofence was effectively off
	fx.settings.settings.IsConfigured = false
	_, err = fx.svc.CheckLocation(ctx, "student-1", tracking.CheckLocationRequest{
		Latitude:  fiftyMetersNorth(),
		Longitude: studioLng,
	})
	require.NoError(t, err)
	fx.settings.settings.IsConfigured = true

	require.NoError(t, fx.svc.SweepOpenSessions(ctx))

	open, err := fx.sessionRepo.GetOpenSession(ctx, "student-1")
	require.NoError(t, err)
	assert.Nil(t, open)
}

func TestSweepSkipsSessionsWithoutCoordinates(t *testing.T) {
	fx := newTrackingFixture(t)
	fx.configureGeofence(5)
	ctx := context.Background()

	_, err := fx.svc.ClockIn(ctx, "student-1", "studio-1", tracking.ActionRequest{Action: string(tracking.ActionClockIn)})
	require.NoError(t, err)

	require.NoError(t, fx.svc.SweepOpenSessions(ctx))

	open, err := fx.sessionRepo.GetOpenSession(ctx, "student-1")
	require.NoError(t, err)
	require.NotNil(t, open)
}
