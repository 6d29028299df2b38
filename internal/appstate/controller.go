// Package appstate guarda o estado de sessão compartilhado com a
// interface: página atual, fila de alertas transitórios e o andamento da
// última sincronização.
package appstate

import (
	"sync"
	"time"

	"github.com/arneor/sales-tracker-api/internal/config"
	"github.com/arneor/sales-tracker-api/internal/domain"
	"github.com/arneor/sales-tracker-api/pkg/log"
	"github.com/arneor/sales-tracker-api/pkg/utils"
)

// Controller é seguro para uso concorrente; todos os campos são
// protegidos pelo mutex
type Controller struct {
	mu sync.Mutex

	user   *domain.SalesUser
	page   domain.PageID
	alerts []domain.Alert

	lastSync  time.Time
	isSyncing bool

	alertTTL time.Duration
	logger   log.Logger
	nowFn    func() time.Time
}

// Status é o retrato do estado atual devolvido pela API
type Status struct {
	User      *domain.SalesUser `json:"user,omitempty"`
	Page      domain.PageID     `json:"page"`
	Alerts    []domain.Alert    `json:"alerts"`
	LastSync  *time.Time        `json:"last_sync,omitempty"`
	IsSyncing bool              `json:"is_syncing"`
}

func NewController(cfg *config.Config, logger log.Logger) *Controller {
	ttl := cfg.Alerts.TTL
	if ttl <= 0 {
		ttl = 5 * time.Second
	}

	return &Controller{
		page:     domain.PageDashboard,
		alerts:   make([]domain.Alert, 0),
		alertTTL: ttl,
		logger:   logger,
		nowFn:    time.Now,
	}
}

// SetUser registra o usuário logado e o leva à página inicial do papel:
// gerente cai na visão do time, vendedor no painel próprio
func (c *Controller) SetUser(user *domain.SalesUser) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.user = user

	if user != nil && user.IsManager() {
		c.page = domain.PageTeamOverview
	} else {
		c.page = domain.PageDashboard
	}
}

// CurrentUser devolve o usuário logado, ou nil
func (c *Controller) CurrentUser() *domain.SalesUser {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.user
}

// Navigate muda a página atual. Página desconhecida é ignorada e
// reportada como falsa.
func (c *Controller) Navigate(page domain.PageID) bool {
	if !domain.ValidPage(page) {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.page = page
	return true
}

// PushAlert enfileira um alerta que se descarta sozinho após o TTL
func (c *Controller) PushAlert(alertType, message string) domain.Alert {
	id, err := utils.GenerateID()
	if err != nil {
		c.logger.WithError(err).Warn("Falha ao gerar ID de alerta")
		id = c.nowFn().Format("150405.000000000")
	}

	alert := domain.Alert{
		ID:        id,
		Type:      alertType,
		Message:   message,
		Timestamp: c.nowFn(),
	}

	c.mu.Lock()
	c.alerts = append(c.alerts, alert)
	c.mu.Unlock()

	time.AfterFunc(c.alertTTL, func() {
		c.DismissAlert(alert.ID)
	})

	return alert
}

// DismissAlert remove o alerta da fila; remover duas vezes é inofensivo
func (c *Controller) DismissAlert(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, alert := range c.alerts {
		if alert.ID == id {
			c.alerts = append(c.alerts[:i], c.alerts[i+1:]...)
			return
		}
	}
}

// Alerts devolve uma cópia da fila atual
func (c *Controller) Alerts() []domain.Alert {
	c.mu.Lock()
	defer c.mu.Unlock()

	alerts := make([]domain.Alert, len(c.alerts))
	copy(alerts, c.alerts)
	return alerts
}

// BeginSync marca o início de uma sincronização; devolve falso quando já
// existe uma em andamento
func (c *Controller) BeginSync() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isSyncing {
		return false
	}

	c.isSyncing = true
	return true
}

// EndSync encerra a sincronização corrente e registra o instante
func (c *Controller) EndSync() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.isSyncing = false
	c.lastSync = c.nowFn()
}

// Snapshot devolve o retrato do estado para a API de sessão
func (c *Controller) Snapshot() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	alerts := make([]domain.Alert, len(c.alerts))
	copy(alerts, c.alerts)

	status := Status{
		User:      c.user,
		Page:      c.page,
		Alerts:    alerts,
		IsSyncing: c.isSyncing,
	}

	if !c.lastSync.IsZero() {
		lastSync := c.lastSync
		status.LastSync = &lastSync
	}

	return status
}

// Reset volta ao estado de ninguém logado. Chamado no logout.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.user = nil
	c.page = domain.PageDashboard
	c.alerts = make([]domain.Alert, 0)
	c.isSyncing = false
	c.lastSync = time.Time{}
}
