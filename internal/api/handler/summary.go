package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/summarizing"
	"github.com/vfg2006/sales-tracker-api/pkg/apiErrors"
)

// WeeklySummary aceita a solicitação, publica o evento e responde 202 antes
// de qualquer processamento.
func WeeklySummary(service summarizing.SummaryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := principalFromRequest(w, r)
		if !ok {
			return
		}

		var req domain.WeeklySummaryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		response, err := service.RequestWeeklySummary(&req, principal)
		if err != nil {
			handleSummaryError(w, err)
			return
		}

		writeJSON(w, http.StatusAccepted, response)
	}
}

func PremiumSummary(service summarizing.SummaryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := principalFromRequest(w, r)
		if !ok {
			return
		}

		var req domain.PremiumSummaryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		response, err := service.RequestPremiumSummary(&req, principal)
		if err != nil {
			handleSummaryError(w, err)
			return
		}

		writeJSON(w, http.StatusAccepted, response)
	}
}

func handleSummaryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, summarizing.ErrReportForbidden):
		apiErrors.WriteError(w, apiErrors.ErrReportForbidden, "Somente pode solicitar relatórios da própria sucursal", nil)

	case errors.Is(err, summarizing.ErrUnsupportedFormat):
		apiErrors.WriteError(w, apiErrors.ErrUnsupportedFormat, "Formato de reporte no soportado", nil)

	default:
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar a requisição", nil)
	}
}
