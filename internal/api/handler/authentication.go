package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/arneor/sales-tracker-api/internal/appstate"
	"github.com/arneor/sales-tracker-api/internal/config"
	"github.com/arneor/sales-tracker-api/internal/domain"
	"github.com/arneor/sales-tracker-api/internal/usecases/authenticating"
	"github.com/arneor/sales-tracker-api/pkg/apiErrors"
)

// Login autentica a conta Google configurada e emite o token de sessão
func Login(service authenticating.Service, state *appstate.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - Login")

		result, err := service.Login(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		state.SetUser(&result.User)
		state.PushAlert(domain.AlertSuccess, "Bem-vindo, "+result.User.Name)

		respondJSON(w, http.StatusOK, result)
	}
}

// Logout revoga o acesso no provedor e zera o estado da sessão
func Logout(service authenticating.Service, state *appstate.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - Logout")

		if err := service.Logout(r.Context()); err != nil {
			writeServiceError(w, err)
			return
		}

		state.Reset()

		respondJSON(w, http.StatusOK, map[string]string{"message": "Sessão encerrada"})
	}
}

// GetMe devolve o membro do roster dono do token apresentado
func GetMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		member := config.FindRosterMember(claims.UserEmail)
		if member == nil {
			apiErrors.WriteError(w, apiErrors.ErrAccessDenied, "Membro não faz mais parte do time", nil)
			return
		}

		respondJSON(w, http.StatusOK, member)
	}
}
