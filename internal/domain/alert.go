package domain

import "time"

// Tipos de alerta exibidos pela interface
const (
	AlertSuccess = "success"
	AlertError   = "error"
	AlertInfo    = "info"
	AlertWarning = "warning"
)

// Alert é uma mensagem transitória da fila de alertas; cada alerta é
// descartado automaticamente alguns segundos após a criação.
type Alert struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Páginas navegáveis da aplicação
type PageID string

const (
	PageDashboard     PageID = "dashboard"
	PageConfirmedSale PageID = "confirmed-sale"
	PageRejectedSale  PageID = "rejected-sale"
	PageHistory       PageID = "history"
	PageMarketData    PageID = "market-data"
	PageTeamOverview  PageID = "team-overview"
	PageSetTargets    PageID = "set-targets"
	PageAllHistory    PageID = "all-history"
)

// ValidPage informa se o identificador corresponde a uma página conhecida
func ValidPage(p PageID) bool {
	switch p {
	case PageDashboard, PageConfirmedSale, PageRejectedSale, PageHistory,
		PageMarketData, PageTeamOverview, PageSetTargets, PageAllHistory:
		return true
	}
	return false
}
