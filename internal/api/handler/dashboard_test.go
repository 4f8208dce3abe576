package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/survey-analytics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/survey-analytics-api/internal/config"
	"github.com/vfg2006/survey-analytics-api/internal/domain"
	"github.com/vfg2006/survey-analytics-api/internal/scheduler"
	"github.com/vfg2006/survey-analytics-api/internal/usecases/aggregating"
	"github.com/vfg2006/survey-analytics-api/internal/usecases/exporting"
	"go.uber.org/mock/gomock"
)

func testRefreshConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SnapshotRefresh.IntervalSeconds = 30
	cfg.SnapshotRefresh.FetchTimeoutSeconds = 5
	cfg.SnapshotRefresh.Enabled = true
	return cfg
}

func newDashboardService(t *testing.T, persisted *domain.DashboardSnapshot) *scheduler.SnapshotRefreshService {
	t.Helper()

	ctrl := gomock.NewController(t)

	responseRepo := mocks.NewMockResponseRepository(ctrl)
	surveyRepo := mocks.NewMockSurveyRepository(ctrl)
	snapshotRepo := mocks.NewMockSnapshotRepository(ctrl)

	snapshotRepo.EXPECT().
		GetByTenantID(gomock.Any(), "tenant-1").
		Return(persisted, nil).
		AnyTimes()

	// O primeiro acesso dispara um ciclo em segundo plano
	responseRepo.EXPECT().
		ListByTenant(gomock.Any(), "tenant-1", gomock.Any()).
		Return([]*domain.ResponseRecord{}, nil).
		AnyTimes()
	surveyRepo.EXPECT().
		ListByTenant(gomock.Any(), "tenant-1").
		Return([]*domain.Survey{}, nil).
		AnyTimes()
	snapshotRepo.EXPECT().
		SaveOrUpdate(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	return scheduler.NewSnapshotRefreshService(
		responseRepo,
		surveyRepo,
		snapshotRepo,
		aggregating.NewService(),
		testRefreshConfig(),
	)
}

func tenantRequest(method, target string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	params := httprouter.Params{{Key: "id", Value: "tenant-1"}}
	return r.WithContext(context.WithValue(r.Context(), httprouter.ParamsKey, params))
}

func persistedSnapshot() *domain.DashboardSnapshot {
	return aggregating.NewService().FallbackSnapshot(
		time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC),
		"tenant-1",
	)
}

func TestGetDashboard(t *testing.T) {
	t.Run("Snapshot disponível retorna 200", func(t *testing.T) {
		service := newDashboardService(t, persistedSnapshot())

		w := httptest.NewRecorder()
		GetDashboard(service).ServeHTTP(w, tenantRequest(http.MethodGet, "/v1/tenants/tenant-1/dashboard"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		snapshot := &domain.DashboardSnapshot{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), snapshot))
		assert.Equal(t, "tenant-1", snapshot.TenantID)
	})

	t.Run("Sem snapshot retorna 202 e dispara preparação", func(t *testing.T) {
		service := newDashboardService(t, nil)

		w := httptest.NewRecorder()
		GetDashboard(service).ServeHTTP(w, tenantRequest(http.MethodGet, "/v1/tenants/tenant-1/dashboard"))

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Contains(t, w.Body.String(), "preparing")
	})
}

func TestRefreshDashboard(t *testing.T) {
	service := newDashboardService(t, nil)

	w := httptest.NewRecorder()
	RefreshDashboard(service).ServeHTTP(w, tenantRequest(http.MethodPost, "/v1/tenants/tenant-1/dashboard/refresh"))

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), "tenant-1")
}

func TestExportDashboard(t *testing.T) {
	exporter := exporting.NewService()

	t.Run("Formato inválido retorna 400", func(t *testing.T) {
		service := newDashboardService(t, persistedSnapshot())

		w := httptest.NewRecorder()
		ExportDashboard(service, exporter).
			ServeHTTP(w, tenantRequest(http.MethodGet, "/v1/tenants/tenant-1/dashboard/export?format=xml"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("CSV é o formato padrão", func(t *testing.T) {
		service := newDashboardService(t, persistedSnapshot())

		w := httptest.NewRecorder()
		ExportDashboard(service, exporter).
			ServeHTTP(w, tenantRequest(http.MethodGet, "/v1/tenants/tenant-1/dashboard/export"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "dashboard-tenant-1-")

		firstLine := strings.SplitN(w.Body.String(), "\n", 2)[0]
		assert.Equal(t, "section,key,value,source", firstLine)
	})

	t.Run("Exportação JSON retorna linhas achatadas", func(t *testing.T) {
		service := newDashboardService(t, persistedSnapshot())

		w := httptest.NewRecorder()
		ExportDashboard(service, exporter).
			ServeHTTP(w, tenantRequest(http.MethodGet, "/v1/tenants/tenant-1/dashboard/export?format=json"))

		assert.Equal(t, http.StatusOK, w.Code)

		var rows []exporting.Row
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
		assert.NotEmpty(t, rows)
	})

	t.Run("Sem snapshot retorna 503", func(t *testing.T) {
		service := newDashboardService(t, nil)

		w := httptest.NewRecorder()
		ExportDashboard(service, exporter).
			ServeHTTP(w, tenantRequest(http.MethodGet, "/v1/tenants/tenant-1/dashboard/export"))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
