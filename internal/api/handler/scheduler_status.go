package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/survey-analytics-api/internal/scheduler"
	"github.com/vfg2006/survey-analytics-api/pkg/apiErrors"
)

// SchedulerServices contém os serviços agendados expostos pelas rotas
// operacionais
type SchedulerServices struct {
	SnapshotRefreshService *scheduler.SnapshotRefreshService
}

// GetSchedulerStatus retorna o status do agendador de snapshots
func GetSchedulerStatus(services SchedulerServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetSchedulerStatus")

		if services.SnapshotRefreshService == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de atualização de snapshots não disponível", nil)
			return
		}

		status := map[string]any{
			"snapshot_refresh": services.SnapshotRefreshService.GetStatus(),
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	})
}
