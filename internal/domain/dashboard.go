package domain

// DashboardSummary reúne as métricas do período ativo para um vendedor
type DashboardSummary struct {
	PeriodLabel      string  `json:"period_label"`
	PeriodStart      string  `json:"period_start"`
	PeriodEnd        string  `json:"period_end"`
	TargetCount      int     `json:"target_count"`
	ConfirmedCount   int     `json:"confirmed_count"`
	RejectedCount    int     `json:"rejected_count"`
	TotalInPeriod    int     `json:"total_in_period"`
	ProgressPct      int     `json:"progress_pct"`
	TimelinePct      int     `json:"timeline_pct"`
	ConversionRate   int     `json:"conversion_rate"`
	RequiredPerDay   float64 `json:"required_per_day"`
	ExpectedCount    int     `json:"expected_count"`
	DaysRemaining    int     `json:"days_remaining"`
	IsOnTrack        bool    `json:"is_on_track"`
}

// MemberStats é a linha de um membro no painel do time
type MemberStats struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Confirmed    int    `json:"confirmed"`
	Rejected     int    `json:"rejected"`
	Total        int    `json:"total"`
	Target       int    `json:"target"`
	Conversion   int    `json:"conversion"`
	ProgressPct  int    `json:"progress_pct"`
	LastActivity string `json:"last_activity"` // data da venda mais recente, vazio sem atividade
}

// TeamOverview agrega as métricas do time inteiro no período ativo
type TeamOverview struct {
	PeriodLabel    string        `json:"period_label"`
	Members        []MemberStats `json:"members"`
	TotalConfirmed int           `json:"total_confirmed"`
	TotalRejected  int           `json:"total_rejected"`
	TotalVisits    int           `json:"total_visits"`
	TeamConversion int           `json:"team_conversion"`
	TopPerformer   *MemberStats  `json:"top_performer,omitempty"`
}

// RejectionInsight agrupa rejeições por motivo
type RejectionInsight struct {
	Reason     string   `json:"reason"`
	Count      int      `json:"count"`
	Locations  []string `json:"locations"`
	Categories []string `json:"categories"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// MarketData é a inteligência de rejeição de mercado vista pelos gerentes
type MarketData struct {
	TotalRejected     int                `json:"total_rejected"`
	ReasonInsights    []RejectionInsight `json:"reason_insights"`
	CategoryBreakdown []CategoryCount    `json:"category_breakdown"`
	LocationBreakdown []LocationCount    `json:"location_breakdown"`
}

// Snapshot é o resultado de uma recarga completa de dados
type Snapshot struct {
	Users    []SalesUser `json:"users"`
	Sales    []SaleEntry `json:"sales"`
	Targets  []Target    `json:"targets"`
	AllSales []SaleEntry `json:"all_sales"`
}
