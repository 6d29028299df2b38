package sheetsclient

import (
	"fmt"
	"net/http"
)

// APIError carrega o status HTTP devolvido pela API do Google para que
// a camada de retry saiba distinguir limite de taxa de falha comum.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api do google respondeu status %d: %s", e.StatusCode, e.Body)
}

// RateLimited indica quota estourada (HTTP 429)
func (e *APIError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}
