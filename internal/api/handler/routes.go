package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/survey-analytics-api/internal/api/handler/router"
	"github.com/vfg2006/survey-analytics-api/internal/scheduler"
	"github.com/vfg2006/survey-analytics-api/internal/usecases/exporting"
	"github.com/vfg2006/survey-analytics-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func Dashboard(service *scheduler.SnapshotRefreshService, exporter exporting.Exporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/tenants/:id/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.TenantAccess()},
		},
		{
			Path:        "/v1/tenants/:id/dashboard/refresh",
			Method:      http.MethodPost,
			Handler:     RefreshDashboard(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.TenantAccess()},
		},
		{
			Path:        "/v1/tenants/:id/dashboard/export",
			Method:      http.MethodGet,
			Handler:     ExportDashboard(service, exporter),
			Middlewares: []func(http.Handler) http.Handler{middleware.TenantAccess()},
		},
	}
}

func Scheduler(services SchedulerServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/scheduler/status",
			Method:      http.MethodGet,
			Handler:     GetSchedulerStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly()},
		},
	}
}
