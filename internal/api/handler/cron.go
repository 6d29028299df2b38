package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/arneor/sales-tracker-api/internal/appstate"
	"github.com/arneor/sales-tracker-api/internal/config"
	"github.com/arneor/sales-tracker-api/internal/scheduler"
	"github.com/arneor/sales-tracker-api/pkg/apiErrors"
)

// Tipos de rotina que podem ser disparados manualmente
const (
	CronJobTypeSheetSync = "sheet-sync"
	CronJobTypeAll       = "all"
)

// CronJobServices reúne os serviços de rotina acionáveis pela API
type CronJobServices struct {
	SheetSyncService scheduler.SheetSyncService
}

// RunCronJob dispara uma rotina manualmente
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de rotina não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeSheetSync, CronJobTypeAll:
			if services.SheetSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização não disponível", nil)
				return
			}

			if err := services.SheetSyncService.RunNow(r.Context()); err != nil {
				if errors.Is(err, scheduler.ErrSyncInProgress) {
					apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Sincronização já em andamento", nil)
					return
				}
				writeServiceError(w, err)
				return
			}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de rotina inválido. Valores aceitos: sheet-sync, all", nil)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"message": "Rotina executada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus devolve o andamento das rotinas agendadas
func GetCronStatus(cfg *config.Config, state *appstate.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := state.Snapshot()

		respondJSON(w, http.StatusOK, map[string]any{
			"sheet-sync": map[string]any{
				"enabled":    cfg.SheetSync.Enabled,
				"schedule":   cfg.SheetSync.CronSchedule,
				"is_syncing": status.IsSyncing,
				"last_sync":  status.LastSync,
			},
		})
	}
}
