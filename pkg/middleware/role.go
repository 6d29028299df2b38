package middleware

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/arneor/sales-tracker-api/internal/domain"
	"github.com/arneor/sales-tracker-api/pkg/apiErrors"
)

// RoleMiddleware restringe a rota aos papéis listados. O papel vem das
// claims já validadas pelo AuthMiddleware.
func RoleMiddleware(allowedRoles []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := r.Context().Value(ContextKeyUser).(*domain.Claims)
			if !ok {
				logrus.Warning("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			isAllowed := false
			for _, role := range allowedRoles {
				if claims.UserRole == role {
					isAllowed = true
					break
				}
			}

			if !isAllowed {
				logrus.Warningf("Acesso negado para %s com papel %s", claims.UserEmail, claims.UserRole)
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ManagerOnly permite acesso apenas para gerentes
func ManagerOnly() func(http.Handler) http.Handler {
	return RoleMiddleware([]string{domain.RoleManager})
}

// AllRoles permite acesso para qualquer membro autenticado do time
func AllRoles() func(http.Handler) http.Handler {
	return RoleMiddleware([]string{domain.RoleManager, domain.RoleSalesperson})
}
