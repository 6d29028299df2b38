package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/arneor/sales-tracker-api/internal/appstate"
	"github.com/arneor/sales-tracker-api/internal/domain"
	"github.com/arneor/sales-tracker-api/internal/usecases/tracking"
	"github.com/arneor/sales-tracker-api/pkg/apiErrors"
)

// ListTargets devolve as metas do vendedor logado
func ListTargets(service tracking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		targets, err := service.TargetsFor(r.Context(), claims.UserEmail)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, targets)
	}
}

// ListAllTargets devolve as metas do time inteiro; rota de gerente
func ListAllTargets(service tracking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targets, err := service.AllTargets(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, targets)
	}
}

// UpsertTarget grava a meta mensal de um vendedor; rota de gerente
func UpsertTarget(service tracking.Service, state *appstate.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpsertTarget")

		var target domain.Target
		if err := json.NewDecoder(r.Body).Decode(&target); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		if err := service.SetTarget(r.Context(), target); err != nil {
			writeServiceError(w, err)
			return
		}

		state.PushAlert(domain.AlertSuccess, "Meta atualizada")

		respondJSON(w, http.StatusOK, target)
	}
}
