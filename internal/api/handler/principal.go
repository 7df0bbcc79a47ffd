package handler

import (
	"net/http"

	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/sales-tracker-api/pkg/middleware"
)

// principalFromRequest extrai o principal autenticado do contexto da
// requisição. Escreve a resposta de erro quando as claims estão ausentes.
func principalFromRequest(w http.ResponseWriter, r *http.Request) (domain.Principal, bool) {
	userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return domain.Principal{}, false
	}

	return userClaims.ToPrincipal(), true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
