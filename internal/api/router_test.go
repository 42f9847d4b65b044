package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableReservation/internal/api/handlers"
	"github.com/m04kA/SMC-TableReservation/internal/api/middleware"
	"github.com/m04kA/SMC-TableReservation/internal/domain"
	"github.com/m04kA/SMC-TableReservation/internal/infra/kvstore"
	preferencesRepo "github.com/m04kA/SMC-TableReservation/internal/infra/storage/preferences"
	reservationRepo "github.com/m04kA/SMC-TableReservation/internal/infra/storage/reservation"
	configService "github.com/m04kA/SMC-TableReservation/internal/service/config"
	"github.com/m04kA/SMC-TableReservation/internal/service/flow"
	preferencesService "github.com/m04kA/SMC-TableReservation/internal/service/preferences"
	reservationsService "github.com/m04kA/SMC-TableReservation/internal/service/reservations"
	"github.com/m04kA/SMC-TableReservation/internal/service/sessions"
	"github.com/m04kA/SMC-TableReservation/internal/usecase/commit_booking"
	"github.com/m04kA/SMC-TableReservation/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-TableReservation/pkg/types"
)

const (
	adminToken = "secret"
	today      = "2026-10-19"
	tomorrow   = "2026-10-20"
)

var (
	_ ConfigService  = (*configService.Service)(nil)
	_ ThemeService   = (*preferencesService.Service)(nil)
	_ SessionService = (*sessions.Service)(nil)
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type testServer struct {
	t      *testing.T
	server *httptest.Server
	repo   *reservationRepo.Repository
}

func newTestServer(t *testing.T, limiter *middleware.RateLimiter) *testServer {
	t.Helper()

	clock := fixedTime{now: time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)}
	cfg := domain.DefaultSlotsConfig()
	store := kvstore.NewMemoryStore()

	repo := reservationRepo.NewRepository(store, domain.ReservationsKey, nopLogger{})
	prefs := preferencesRepo.NewRepository(store, domain.DarkModeKey)

	slotsUC := get_available_slots.NewUseCase(repo, cfg, clock, nopLogger{})
	commitUC := commit_booking.NewUseCase(repo, cfg, clock, nil, nopLogger{})

	cfgSvc, err := configService.NewService(cfg, clock, nopLogger{})
	require.NoError(t, err)

	sessionSvc := sessions.NewService(func() *flow.Controller {
		return flow.NewController(slotsUC, commitUC, clock, nil, nopLogger{})
	}, sessions.Config{TTL: time.Hour, MaxSessions: 10}, clock, nil, nopLogger{})

	router := NewRouter(Dependencies{
		Config:       cfgSvc,
		Slots:        slotsUC,
		Sessions:     sessionSvc,
		Reservations: reservationsService.NewService(repo, nopLogger{}),
		Theme:        preferencesService.NewService(prefs, nopLogger{}),
		RateLimiter:  limiter,
		AdminToken:   adminToken,
		Logger:       nopLogger{},
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testServer{t: t, server: server, repo: repo}
}

func (s *testServer) do(method, path string, body interface{}, headers map[string]string) (*http.Response, []byte) {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, s.server.URL+path, reader)
	require.NoError(s.t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.server.Client().Do(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(s.t, err)
	return resp, buf.Bytes()
}

func (s *testServer) session(method, path string, body interface{}) (int, handlers.SessionResponse) {
	s.t.Helper()
	resp, raw := s.do(method, path, body, nil)
	var out handlers.SessionResponse
	require.NoError(s.t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func (s *testServer) seed(date string, at types.TimeString, n int) {
	s.t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(s.t, s.repo.Create(context.Background(), &domain.Reservation{
			Name: fmt.Sprintf("seed-%d", i), People: 2, Date: date, Time: at,
		}))
	}
}

func validForm(name string) map[string]interface{} {
	return map[string]interface{}{
		"name":    name,
		"phone":   "+7 999 123 45 67",
		"email":   "guest@example.com",
		"people":  4,
		"purpose": []string{"birthday"},
		"note":    "",
	}
}

func TestRouter_BookingFlow(t *testing.T) {
	s := newTestServer(t, nil)

	status, created := s.session(http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, created.SessionID)
	assert.Equal(t, today, created.Date)
	assert.Equal(t, string(domain.FlowIdle), created.State)
	assert.Len(t, created.Slots, 21)
	assert.Nil(t, created.SelectedTime)

	base := "/api/v1/sessions/" + created.SessionID

	status, view := s.session(http.MethodPut, base+"/date", map[string]string{"date": tomorrow})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, tomorrow, view.Date)

	status, view = s.session(http.MethodPut, base+"/slot", map[string]string{"time": "19:30"})
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, view.SelectedTime)
	assert.Equal(t, "19:30", *view.SelectedTime)

	// Пустое имя: 422, все правила в ответе, состояние не меняется
	status, view = s.session(http.MethodPost, base+"/submit", validForm("   "))
	require.Equal(t, http.StatusUnprocessableEntity, status)
	require.NotNil(t, view.Valid)
	assert.False(t, *view.Valid)
	assert.False(t, view.Validation["name"])
	assert.True(t, view.Validation["phone"])
	assert.Equal(t, string(domain.FlowIdle), view.State)

	status, view = s.session(http.MethodPost, base+"/submit", validForm("<b>Анна</b>"))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, string(domain.FlowReviewing), view.State)
	require.NotNil(t, view.Draft)
	assert.Equal(t, 4, view.Draft.People)
	assert.Contains(t, view.Summary, "&lt;b&gt;Анна&lt;/b&gt;")
	assert.NotContains(t, view.Summary, "<b>Анна</b>")

	status, view = s.session(http.MethodPost, base+"/confirm", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, string(domain.FlowCommitted), view.State)
	require.NotNil(t, view.Notice)
	assert.Equal(t, string(domain.NoticeSuccess), view.Notice.Kind)
	assert.Equal(t, today, view.Date)
	assert.Nil(t, view.Draft)

	// Бронирование видно персоналу
	resp, raw := s.do(http.MethodGet, "/api/v1/reservations?date="+tomorrow, nil, map[string]string{middleware.AdminTokenHeader: adminToken})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `"total":1`)

	// Слот на завтра показывает одну занятую бронь
	resp, raw = s.do(http.MethodGet, "/api/v1/available-slots?date="+tomorrow, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var slots struct {
		Slots []handlers.SlotResponse `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(raw, &slots))
	for _, slot := range slots.Slots {
		if slot.StartTime == "19:30" {
			assert.Equal(t, 1, slot.Booked)
			assert.Equal(t, 2, slot.AvailableSpots)
		}
	}
}

func TestRouter_SlotFilledBeforeConfirm(t *testing.T) {
	s := newTestServer(t, nil)

	_, created := s.session(http.MethodPost, "/api/v1/sessions", nil)
	base := "/api/v1/sessions/" + created.SessionID

	s.session(http.MethodPut, base+"/date", map[string]string{"date": tomorrow})
	s.session(http.MethodPut, base+"/slot", map[string]string{"time": "12:00"})
	status, _ := s.session(http.MethodPost, base+"/submit", validForm("Анна"))
	require.Equal(t, http.StatusOK, status)

	// Другие гости заняли слот, пока форма была на подтверждении
	s.seed(tomorrow, "12:00", domain.DefaultMaxPerSlot)

	status, view := s.session(http.MethodPost, base+"/confirm", nil)
	require.Equal(t, http.StatusConflict, status)
	assert.Equal(t, string(domain.FlowIdle), view.State)
	assert.Nil(t, view.Draft)
	require.NotNil(t, view.Notice)
	assert.Equal(t, string(domain.NoticeWarning), view.Notice.Kind)

	all, err := s.repo.GetByDate(context.Background(), tomorrow)
	require.NoError(t, err)
	assert.Len(t, all, domain.DefaultMaxPerSlot)

	// Заполненный слот выбрать нельзя
	resp, _ := s.do(http.MethodPut, base+"/slot", map[string]string{"time": "12:00"}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRouter_SessionErrors(t *testing.T) {
	s := newTestServer(t, nil)

	resp, _ := s.do(http.MethodGet, "/api/v1/sessions/not-a-uuid", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = s.do(http.MethodGet, "/api/v1/sessions/6f1f5c1e-8f43-4c55-9f3b-1a2b3c4d5e6f", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	_, created := s.session(http.MethodPost, "/api/v1/sessions", nil)
	base := "/api/v1/sessions/" + created.SessionID

	tests := []struct {
		name       string
		method     string
		path       string
		body       interface{}
		wantStatus int
	}{
		{name: "date outside window", method: http.MethodPut, path: "/date", body: map[string]string{"date": "2026-11-30"}, wantStatus: http.StatusBadRequest},
		{name: "malformed date", method: http.MethodPut, path: "/date", body: map[string]string{"date": "19.10.2026"}, wantStatus: http.StatusBadRequest},
		{name: "unknown field", method: http.MethodPut, path: "/date", body: map[string]string{"day": tomorrow}, wantStatus: http.StatusBadRequest},
		{name: "malformed time", method: http.MethodPut, path: "/slot", body: map[string]string{"time": "7pm"}, wantStatus: http.StatusBadRequest},
		{name: "time outside catalog", method: http.MethodPut, path: "/slot", body: map[string]string{"time": "09:00"}, wantStatus: http.StatusBadRequest},
		{name: "confirm without review", method: http.MethodPost, path: "/confirm", wantStatus: http.StatusConflict},
		{name: "cancel without review", method: http.MethodPost, path: "/cancel", wantStatus: http.StatusConflict},
		{name: "reset", method: http.MethodPost, path: "/reset", wantStatus: http.StatusOK},
		{name: "get", method: http.MethodGet, path: "", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := s.do(tt.method, base+tt.path, tt.body, nil)
			assert.Equal(t, tt.wantStatus, resp.StatusCode, string(raw))
		})
	}
}

func TestRouter_CancelKeepsSelection(t *testing.T) {
	s := newTestServer(t, nil)

	_, created := s.session(http.MethodPost, "/api/v1/sessions", nil)
	base := "/api/v1/sessions/" + created.SessionID

	s.session(http.MethodPut, base+"/slot", map[string]string{"time": "18:00"})
	status, _ := s.session(http.MethodPost, base+"/submit", validForm("Анна"))
	require.Equal(t, http.StatusOK, status)

	status, view := s.session(http.MethodPost, base+"/cancel", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, string(domain.FlowIdle), view.State)
	require.NotNil(t, view.SelectedTime)
	assert.Equal(t, "18:00", *view.SelectedTime)

	all, err := s.repo.GetByDate(context.Background(), today)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRouter_PublicEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	resp, raw := s.do(http.MethodGet, "/api/v1/dates", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), today)

	resp, _ = s.do(http.MethodGet, "/api/v1/config", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.do(http.MethodGet, "/api/v1/available-slots", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.do(http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = s.do(http.MethodGet, "/api/v1/theme", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `"darkMode":false`)

	resp, raw = s.do(http.MethodPost, "/api/v1/theme/toggle", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `"darkMode":true`)

	resp, raw = s.do(http.MethodGet, "/api/v1/theme", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `"darkMode":true`)
}

func TestRouter_AdminAuth(t *testing.T) {
	s := newTestServer(t, nil)
	path := "/api/v1/reservations?date=" + today

	resp, _ := s.do(http.MethodGet, path, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = s.do(http.MethodGet, path, nil, map[string]string{middleware.AdminTokenHeader: "wrong"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = s.do(http.MethodGet, "/api/v1/reservations", nil, map[string]string{middleware.AdminTokenHeader: adminToken})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_RateLimitedSubmit(t *testing.T) {
	s := newTestServer(t, middleware.NewRateLimiter(0.001, 1, false))

	_, created := s.session(http.MethodPost, "/api/v1/sessions", nil)
	base := "/api/v1/sessions/" + created.SessionID

	resp, _ := s.do(http.MethodPost, base+"/submit", validForm("Анна"), nil)
	assert.NotEqual(t, http.StatusTooManyRequests, resp.StatusCode)

	resp, raw := s.do(http.MethodPost, base+"/submit", validForm("Анна"), nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.True(t, strings.Contains(string(raw), "error"))

	// Остальные маршруты сессии не ограничены
	resp, _ = s.do(http.MethodGet, base, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
