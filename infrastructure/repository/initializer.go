package repository

import (
	"context"

	"github.com/arneor/sales-tracker-api/infrastructure/integrator/google/sheetsclient"
	"github.com/arneor/sales-tracker-api/internal/config"
	"github.com/arneor/sales-tracker-api/pkg/cache"
	"github.com/arneor/sales-tracker-api/pkg/log"
	"github.com/arneor/sales-tracker-api/pkg/retry"
)

// SheetInitializer garante que a planilha tem as três abas com seus
// cabeçalhos antes do serviço começar a atender
type SheetInitializer interface {
	EnsureSheets(ctx context.Context) error
}

type sheetInitializer struct {
	client   sheetsclient.Client
	userRepo UserRepository
	cache    *cache.Cache
	cfg      *config.Config
	logger   log.Logger
}

func NewSheetInitializer(client sheetsclient.Client, userRepo UserRepository, c *cache.Cache, cfg *config.Config, logger log.Logger) SheetInitializer {
	return &sheetInitializer{
		client:   client,
		userRepo: userRepo,
		cache:    c,
		cfg:      cfg,
		logger:   logger,
	}
}

// EnsureSheets cria as abas que faltam, grava os cabeçalhos e semeia a
// aba Users com o roster quando ela está vazia
func (s *sheetInitializer) EnsureSheets(ctx context.Context) error {
	titles, err := retry.DoWithPolicy(ctx, func(ctx context.Context) ([]string, error) {
		return s.client.SheetTitles(ctx)
	}, s.cfg.Retry.Attempts, s.cfg.Retry.BaseDelay)
	if err != nil {
		return err
	}

	existing := make(map[string]bool, len(titles))
	for _, t := range titles {
		existing[t] = true
	}

	expected := []struct {
		name        string
		headerRange string
		header      []string
	}{
		{SheetUsers, headerRangeUsers, usersHeader},
		{SheetSales, headerRangeSales, salesHeader},
		{SheetTargets, headerRangeTargets, targetsHeader},
	}

	for _, sheet := range expected {
		if existing[sheet.name] {
			continue
		}

		if err := s.createSheet(ctx, sheet.name, sheet.headerRange, sheet.header); err != nil {
			return err
		}
	}

	return s.seedUsersIfEmpty(ctx)
}

func (s *sheetInitializer) createSheet(ctx context.Context, name, headerRange string, header []string) error {
	_, err := retry.DoWithPolicy(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.client.AddSheet(ctx, name)
	}, s.cfg.Retry.Attempts, s.cfg.Retry.BaseDelay)
	if err != nil {
		return err
	}

	_, err = retry.DoWithPolicy(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.client.UpdateValues(ctx, headerRange, [][]string{header})
	}, s.cfg.Retry.Attempts, s.cfg.Retry.BaseDelay)
	if err != nil {
		return err
	}

	s.logger.WithContext(ctx).WithField("sheet", name).Info("Aba criada com cabeçalho")

	return nil
}

// seedUsersIfEmpty preenche a aba Users a partir do roster quando ela
// não tem nenhuma linha de dados. Aba nova não tem nem cabeçalho ainda
// quando o retorno vem totalmente vazio.
func (s *sheetInitializer) seedUsersIfEmpty(ctx context.Context) error {
	rows, err := retry.DoWithPolicy(ctx, func(ctx context.Context) ([][]string, error) {
		return s.client.GetValues(ctx, rangeUsers)
	}, s.cfg.Retry.Attempts, s.cfg.Retry.BaseDelay)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		_, err = retry.DoWithPolicy(ctx, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.client.UpdateValues(ctx, headerRangeUsers, [][]string{usersHeader})
		}, s.cfg.Retry.Attempts, s.cfg.Retry.BaseDelay)
		if err != nil {
			return err
		}
	} else if len(rows) > 1 {
		return nil // já tem dados
	}

	if err := s.userRepo.SeedUsers(ctx, config.SalesTeam); err != nil {
		return err
	}

	s.cache.Clear()

	return nil
}
