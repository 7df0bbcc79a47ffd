package middleware

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/pkg/apiErrors"
)

// RoleMiddleware restringe o acesso com base nos papéis permitidos
func RoleMiddleware(allowedRoles []domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userClaims, ok := r.Context().Value(ContextKeyUser).(*domain.Claims)
			if !ok {
				logrus.Warning("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			role, valid := domain.ParseRole(userClaims.UserRole)
			if !valid {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRole, "Papel desconhecido no token", nil)
				return
			}

			isAllowed := false
			for _, allowed := range allowedRoles {
				if role == allowed {
					isAllowed = true
					break
				}
			}

			if !isAllowed {
				logrus.Warningf("Acesso negado para usuário %s, papel %s", userClaims.Username, role)
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CentralOnly permite acesso apenas ao escritório central
func CentralOnly() func(http.Handler) http.Handler {
	return RoleMiddleware([]domain.Role{domain.RoleCentral})
}

// AllRoles permite acesso para qualquer papel autenticado
func AllRoles() func(http.Handler) http.Handler {
	return RoleMiddleware([]domain.Role{domain.RoleCentral, domain.RoleBranch})
}
