package handler

import (
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/survey-analytics-api/internal/scheduler"
	"github.com/vfg2006/survey-analytics-api/internal/usecases/exporting"
	"github.com/vfg2006/survey-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/survey-analytics-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Formatos aceitos pela exportação de dashboard
const (
	ExportFormatCSV  = "csv"
	ExportFormatJSON = "json"
)

// GetDashboard retorna o snapshot publicado do tenant. A leitura nunca
// bloqueia na agregação: sem snapshot disponível, um ciclo é disparado e o
// cliente recebe 202 para tentar novamente.
func GetDashboard(service *scheduler.SnapshotRefreshService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		tenantID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		logger.WithField("tenant_id", tenantID).Info("dashboard: fetching snapshot for tenant")

		snapshot, err := service.GetSnapshot(r.Context(), tenantID)
		if err != nil {
			logger.WithFields(log.Fields{
				"tenant_id": tenantID,
				"error":     err.Error(),
			}).Error("dashboard: failed to get snapshot for tenant")

			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao buscar snapshot do dashboard", nil)
			return
		}

		if snapshot == nil {
			logger.WithField("tenant_id", tenantID).Info("dashboard: snapshot not ready, refresh triggered")

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusAccepted)
			json.NewEncoder(w).Encode(map[string]any{
				"status":    "preparing",
				"message":   "Dashboard em preparação, tente novamente em instantes",
				"tenant_id": tenantID,
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snapshot)
	})
}

// RefreshDashboard dispara um novo ciclo de agregação para o tenant sem
// aguardar a conclusão
func RefreshDashboard(service *scheduler.SnapshotRefreshService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		tenantID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		logger.WithField("tenant_id", tenantID).Info("dashboard: manual refresh requested")

		service.TriggerRefresh(tenantID)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]any{
			"message":   "Atualização do dashboard iniciada",
			"tenant_id": tenantID,
		})
	})
}

// ExportDashboard exporta a projeção achatada do snapshot em CSV ou JSON
func ExportDashboard(service *scheduler.SnapshotRefreshService, exporter exporting.Exporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		tenantID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		format := r.URL.Query().Get("format")
		if format == "" {
			format = ExportFormatCSV
		}

		if format != ExportFormatCSV && format != ExportFormatJSON {
			logger.WithFields(log.Fields{
				"tenant_id": tenantID,
				"format":    format,
			}).Warn("dashboard: invalid export format")

			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de exportação inválido. Valores aceitos: csv, json", nil)
			return
		}

		logger.WithFields(log.Fields{
			"tenant_id": tenantID,
			"format":    format,
		}).Info("dashboard: exporting snapshot")

		snapshot, err := service.GetSnapshot(r.Context(), tenantID)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao buscar snapshot do dashboard", nil)
			return
		}

		if snapshot == nil {
			apiErrors.WriteError(w, apiErrors.ErrSourceUnavailable, "Dashboard em preparação, tente novamente em instantes", nil)
			return
		}

		if format == ExportFormatJSON {
			w.Header().Set("Content-Type", "application/json")
			if err := exporter.WriteJSON(w, snapshot); err != nil {
				logger.WithFields(log.Fields{
					"tenant_id": tenantID,
					"error":     err.Error(),
				}).Error("dashboard: failed to write JSON export")
			}
			return
		}

		filename := fmt.Sprintf("dashboard-%s-%s.csv", tenantID, snapshot.GeneratedAt.Format(time.DateOnly))
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

		if err := exporter.WriteCSV(w, snapshot); err != nil {
			logger.WithFields(log.Fields{
				"tenant_id": tenantID,
				"error":     err.Error(),
			}).Error("dashboard: failed to write CSV export")
		}
	})
}
