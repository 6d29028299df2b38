package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/arneor/sales-tracker-api/internal/appstate"
	"github.com/arneor/sales-tracker-api/internal/domain"
	"github.com/arneor/sales-tracker-api/internal/usecases/tracking"
	"github.com/arneor/sales-tracker-api/pkg/apiErrors"
)

// GetSession devolve o retrato do estado da aplicação
func GetSession(state *appstate.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, state.Snapshot())
	}
}

type navigatePayload struct {
	Page domain.PageID `json:"page"`
}

// Navigate muda a página corrente da sessão
func Navigate(state *appstate.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload navigatePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		if !state.Navigate(payload.Page) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Página desconhecida: "+string(payload.Page), nil)
			return
		}

		respondJSON(w, http.StatusOK, state.Snapshot())
	}
}

// ListAlerts devolve a fila de alertas ainda vivos
func ListAlerts(state *appstate.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, state.Alerts())
	}
}

type alertPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// PushAlert enfileira um alerta transitório
func PushAlert(state *appstate.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload alertPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		switch payload.Type {
		case domain.AlertSuccess, domain.AlertError, domain.AlertInfo, domain.AlertWarning:
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de alerta desconhecido: "+payload.Type, nil)
			return
		}

		if payload.Message == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Mensagem do alerta é obrigatória", nil)
			return
		}

		alert := state.PushAlert(payload.Type, payload.Message)

		respondJSON(w, http.StatusCreated, alert)
	}
}

// DismissAlert remove um alerta antes do descarte automático
func DismissAlert(state *appstate.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do alerta não informado", nil)
			return
		}

		state.DismissAlert(id)

		respondJSON(w, http.StatusOK, map[string]string{"message": "Alerta removido"})
	}
}

// Refresh recarrega todos os dados da planilha de uma vez
func Refresh(service tracking.Service, state *appstate.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - Refresh")

		claims, ok := claimsFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		snapshot, err := service.RefreshAll(r.Context(), claims.UserEmail)
		if err != nil {
			state.PushAlert(domain.AlertError, "Falha ao recarregar os dados")
			writeServiceError(w, err)
			return
		}

		state.PushAlert(domain.AlertSuccess, "Dados recarregados")

		respondJSON(w, http.StatusOK, snapshot)
	}
}
