package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-tracker-api/internal/scheduler"
	"github.com/vfg2006/sales-tracker-api/pkg/apiErrors"
)

const CronJobTypeWeeklyReport = "weekly-report"

// CronJobServices contém os agendadores que podem ser disparados manualmente
type CronJobServices struct {
	WeeklyReportSyncService *scheduler.WeeklyReportSyncService
}

// RunCronJob dispara manualmente um agendador específico
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeWeeklyReport:
			if services.WeeklyReportSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Agendador do resumo semanal não disponível", nil)
				return
			}
			services.WeeklyReportSyncService.TriggerManualSync()

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job desconhecido: "+cronType, nil)
			return
		}

		logrus.WithField("cron_type", cronType).Info("Cron job disparado manualmente")

		writeJSON(w, http.StatusAccepted, map[string]string{
			"status": "triggered",
			"type":   cronType,
		})
	}
}

// GetCronStatus retorna o estado dos agendadores
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}

		if services.WeeklyReportSyncService != nil {
			status[CronJobTypeWeeklyReport] = services.WeeklyReportSyncService.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}
