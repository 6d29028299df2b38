package handler

import (
	"net/http"

	"github.com/arneor/sales-tracker-api/internal/domain"
	"github.com/arneor/sales-tracker-api/internal/usecases/tracking"
	"github.com/arneor/sales-tracker-api/pkg/apiErrors"
)

// GetDashboard devolve as métricas do período ativo. Gerente pode pedir
// o painel de outro membro via query string.
func GetDashboard(service tracking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		email := claims.UserEmail
		if requested := r.URL.Query().Get("email"); requested != "" {
			if claims.UserRole != domain.RoleManager {
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas gerentes consultam o painel de outro membro", nil)
				return
			}
			email = requested
		}

		summary, err := service.Dashboard(r.Context(), email)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, summary)
	}
}

// GetTeamOverview devolve a visão agregada do time; rota de gerente
func GetTeamOverview(service tracking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		overview, err := service.TeamOverview(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, overview)
	}
}

// GetMarketData devolve a inteligência de rejeições; rota de gerente
func GetMarketData(service tracking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		market, err := service.MarketData(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, market)
	}
}
