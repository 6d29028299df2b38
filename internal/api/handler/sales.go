package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/arneor/sales-tracker-api/internal/appstate"
	"github.com/arneor/sales-tracker-api/internal/domain"
	"github.com/arneor/sales-tracker-api/internal/usecases/tracking"
	"github.com/arneor/sales-tracker-api/pkg/apiErrors"
)

// ListSales devolve o histórico do vendedor logado
func ListSales(service tracking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		sales, err := service.SalesHistory(r.Context(), claims.UserEmail)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, sales)
	}
}

// ListAllSales devolve o histórico do time inteiro; rota de gerente
func ListAllSales(service tracking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sales, err := service.AllSalesHistory(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, sales)
	}
}

// CreateSale registra uma venda nova. Vendedor registra no próprio nome;
// gerente pode registrar em nome de qualquer membro.
func CreateSale(service tracking.Service, state *appstate.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateSale")

		claims, ok := claimsFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var input domain.NewSaleInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		if claims.UserRole != domain.RoleManager || input.SalespersonEmail == "" {
			input.SalespersonEmail = claims.UserEmail
			input.SalespersonName = claims.UserName
		}

		entry, err := service.AddSale(r.Context(), input)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		if entry.Status == domain.StatusConfirmed {
			state.PushAlert(domain.AlertSuccess, "Venda "+entry.SaleID+" registrada")
		} else {
			state.PushAlert(domain.AlertInfo, "Rejeição "+entry.SaleID+" registrada")
		}

		respondJSON(w, http.StatusCreated, entry)
	}
}
