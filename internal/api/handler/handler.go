// Package handler expõe os casos de uso pela API HTTP
package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/arneor/sales-tracker-api/internal/domain"
	"github.com/arneor/sales-tracker-api/internal/usecases/authenticating"
	"github.com/arneor/sales-tracker-api/internal/usecases/tracking"
	"github.com/arneor/sales-tracker-api/pkg/apiErrors"
	"github.com/arneor/sales-tracker-api/pkg/middleware"
	"github.com/arneor/sales-tracker-api/pkg/retry"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// claimsFromContext recupera as claims colocadas pelo AuthMiddleware
func claimsFromContext(r *http.Request) (*domain.Claims, bool) {
	claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	return claims, ok
}

// respondJSON serializa o corpo com o status informado
func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// writeServiceError converte o erro do caso de uso no código da API
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tracking.ErrValidation):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	case errors.Is(err, authenticating.ErrAccessDenied):
		apiErrors.WriteError(w, apiErrors.ErrAccessDenied, "Acesso negado", nil)
	case errors.Is(err, authenticating.ErrAuthFailure):
		apiErrors.WriteError(w, apiErrors.ErrAuthFailure, "Falha na autenticação com o provedor", nil)
	case retry.IsRateLimited(err):
		apiErrors.WriteError(w, apiErrors.ErrRateLimited, "Limite de requisições da planilha atingido, tente de novo em instantes", nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrSheetOperation, "Falha ao falar com a planilha", nil)
	}
}
