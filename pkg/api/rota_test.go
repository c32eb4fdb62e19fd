package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rhysmorgan-dev/magor-rota/internal/config"
	"github.com/rhysmorgan-dev/magor-rota/pkg/core/allocator"
	"github.com/rhysmorgan-dev/magor-rota/pkg/core/model"
)

// mockStore implements db.Store for handler tests
type mockStore struct {
	linePlans   []model.DailyLinePlan
	staffRows   []model.StaffPlanRow
	history     []model.HistoryRecord
	allocations []model.Allocation
	gaps        []model.Gap

	replaceCalls int
}

func (m *mockStore) GetDailyLinePlans(ctx context.Context, dates []string) ([]model.DailyLinePlan, error) {
	return m.linePlans, nil
}

func (m *mockStore) GetStaffPlan(ctx context.Context, weekCommencing string) ([]model.StaffPlanRow, error) {
	return m.staffRows, nil
}

func (m *mockStore) GetAllocationHistory(ctx context.Context, from, to string) ([]model.HistoryRecord, error) {
	return m.history, nil
}

func (m *mockStore) ReplaceWeekRota(ctx context.Context, weekCommencing string, allocations []model.Allocation, gaps []model.Gap, history []model.HistoryRecord) error {
	m.replaceCalls++
	m.allocations = allocations
	m.gaps = gaps
	return nil
}

func (m *mockStore) GetAllocations(ctx context.Context, weekCommencing string) ([]model.Allocation, error) {
	return m.allocations, nil
}

func (m *mockStore) GetGaps(ctx context.Context, weekCommencing string) ([]model.Gap, error) {
	return m.gaps, nil
}

func testHandler(store *mockStore) *Handler {
	cfg := &config.Config{
		Scheduling: config.SchedulingConfig{
			LookbackDays:      allocator.DefaultLookbackDays,
			RotationPenalties: [4]int(allocator.DefaultPenaltyTiers),
			DefaultPilots:     allocator.DefaultPilotsRequired,
		},
	}
	h := NewHandler(cfg, store, zap.NewNop())
	h.RegisterRoutes()
	return h
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestGenerateRotaEndpoint(t *testing.T) {
	store := &mockStore{
		linePlans: []model.DailyLinePlan{{Date: "2025-06-30"}},
		staffRows: []model.StaffPlanRow{
			{
				OperatorID:   "op-1",
				Name:         "Pilot One",
				IsActive:     true,
				Availability: model.Availability{Day1: "D", Day2: "D", Night1: "N", Night2: "N"},
				Ratings:      &model.CapabilityRatings{Pilots: "S", WMS: "S"},
			},
		},
	}
	h := testHandler(store)

	body := strings.NewReader(`{"week_commencing":"2025-06-30"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/rota/generate", body)
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, 1, store.replaceCalls)
}

func TestGenerateRotaEndpoint_MissingWeek(t *testing.T) {
	h := testHandler(&mockStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/rota/generate", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
}

func TestGenerateRotaEndpoint_NoLinePlan(t *testing.T) {
	h := testHandler(&mockStore{})

	body := strings.NewReader(`{"week_commencing":"2025-06-30"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/rota/generate", body)
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	// Input failure the caller can fix, not a server fault
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "line plan")
}

func TestGetAllocationsEndpoint(t *testing.T) {
	store := &mockStore{
		allocations: []model.Allocation{
			{WeekCommencing: "2025-06-30", ShiftBlock: model.ShiftDay1, Area: "Pilots", OperatorID: "op-1", OperatorName: "Pilot One"},
		},
	}
	h := testHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/api/rota/allocations?week=2025-06-30", nil)
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data)
}

func TestGetAllocationsEndpoint_MalformedWeek(t *testing.T) {
	h := testHandler(&mockStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/rota/allocations?week=30/06/2025", nil)
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	// Bad input from the caller, not a server fault
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decodeResponse(t, rec).Success)
}

func TestGetGapsEndpoint(t *testing.T) {
	store := &mockStore{
		gaps: []model.Gap{
			{WeekCommencing: "2025-06-30", ShiftBlock: model.ShiftDay1, Area: "Canning", MissingCount: 1},
		},
	}
	h := testHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/api/rota/gaps?week=2025-06-30", nil)
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data)
}

func TestGetGapsEndpoint_MissingWeekParam(t *testing.T) {
	h := testHandler(&mockStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/rota/gaps", nil)
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	h := testHandler(&mockStore{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeResponse(t, rec).Success)
}
