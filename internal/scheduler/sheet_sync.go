// Package scheduler abriga os serviços de rotina. Hoje existe um só: o
// aquecedor periódico do cache da planilha.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"

	"github.com/arneor/sales-tracker-api/infrastructure/repository"
	"github.com/arneor/sales-tracker-api/internal/appstate"
	"github.com/arneor/sales-tracker-api/internal/config"
	"github.com/arneor/sales-tracker-api/internal/domain"
	"github.com/arneor/sales-tracker-api/pkg/cache"
	"github.com/arneor/sales-tracker-api/pkg/log"
)

// ErrSyncInProgress indica que uma sincronização já está rodando
var ErrSyncInProgress = errors.New("sincronização já em andamento")

// SheetSyncService recarrega as leituras da planilha em segundo plano
// para que as requisições encontrem o cache quente
type SheetSyncService interface {
	Start() error
	Stop()
	RunNow(ctx context.Context) error
}

type sheetSyncService struct {
	scheduler  *gocron.Scheduler
	userRepo   repository.UserRepository
	saleRepo   repository.SaleRepository
	targetRepo repository.TargetRepository
	state      *appstate.Controller
	cache      *cache.Cache
	cfg        *config.Config
	logger     log.Logger
}

func NewSheetSyncService(
	userRepo repository.UserRepository,
	saleRepo repository.SaleRepository,
	targetRepo repository.TargetRepository,
	state *appstate.Controller,
	c *cache.Cache,
	cfg *config.Config,
	logger log.Logger,
) SheetSyncService {
	return &sheetSyncService{
		scheduler:  gocron.NewScheduler(time.UTC),
		userRepo:   userRepo,
		saleRepo:   saleRepo,
		targetRepo: targetRepo,
		state:      state,
		cache:      c,
		cfg:        cfg,
		logger:     logger,
	}
}

// Start agenda a sincronização periódica. Com a flag desligada, não
// agenda nada e o cache só esquenta sob demanda.
func (s *sheetSyncService) Start() error {
	if !s.cfg.SheetSync.Enabled {
		s.logger.Info("Sincronização periódica da planilha desabilitada")
		return nil
	}

	_, err := s.scheduler.Cron(s.cfg.SheetSync.CronSchedule).Do(s.runScheduled)
	if err != nil {
		return errors.Wrap(err, "erro ao agendar a sincronização da planilha")
	}

	s.scheduler.StartAsync()

	s.logger.Infof("Sincronização da planilha agendada: %s", s.cfg.SheetSync.CronSchedule)

	return nil
}

// Stop interrompe o agendamento. Uma execução em andamento termina.
func (s *sheetSyncService) Stop() {
	s.scheduler.Stop()
}

func (s *sheetSyncService) runScheduled() {
	ctx, _ := log.WithCorrelationID(context.Background())

	if err := s.RunNow(ctx); err != nil && !errors.Is(err, ErrSyncInProgress) {
		s.logger.WithContext(ctx).WithError(err).Error("Sincronização periódica falhou")
	}
}

// RunNow executa uma sincronização completa imediatamente. Execuções
// simultâneas são recusadas, não enfileiradas.
func (s *sheetSyncService) RunNow(ctx context.Context) error {
	if !s.state.BeginSync() {
		return ErrSyncInProgress
	}
	defer s.state.EndSync()

	started := time.Now()

	s.cache.Clear()

	if _, err := s.userRepo.FetchUsers(ctx); err != nil {
		return s.fail(ctx, err)
	}
	if _, err := s.saleRepo.FetchAllSales(ctx); err != nil {
		return s.fail(ctx, err)
	}
	if _, err := s.targetRepo.FetchAllTargets(ctx); err != nil {
		return s.fail(ctx, err)
	}

	s.logger.WithContext(ctx).
		WithField("duration_ms", time.Since(started).Milliseconds()).
		Info("Cache da planilha aquecido")

	return nil
}

func (s *sheetSyncService) fail(ctx context.Context, err error) error {
	s.logger.WithContext(ctx).WithError(err).Error("Erro ao aquecer o cache da planilha")
	s.state.PushAlert(domain.AlertError, "Falha ao sincronizar com a planilha")
	return err
}
