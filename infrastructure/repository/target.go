package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/arneor/sales-tracker-api/infrastructure/integrator/google/sheetsclient"
	"github.com/arneor/sales-tracker-api/internal/config"
	"github.com/arneor/sales-tracker-api/internal/domain"
	"github.com/arneor/sales-tracker-api/pkg/cache"
	"github.com/arneor/sales-tracker-api/pkg/log"
	"github.com/arneor/sales-tracker-api/pkg/retry"
)

type TargetRepository interface {
	FetchTargets(ctx context.Context, email string) ([]domain.Target, error)
	FetchAllTargets(ctx context.Context) ([]domain.Target, error)
	SetTarget(ctx context.Context, target domain.Target) error
}

type targetRepository struct {
	client sheetsclient.Client
	cache  *cache.Cache
	cfg    *config.Config
	logger log.Logger
}

func NewTargetRepository(client sheetsclient.Client, c *cache.Cache, cfg *config.Config, logger log.Logger) TargetRepository {
	return &targetRepository{
		client: client,
		cache:  c,
		cfg:    cfg,
		logger: logger,
	}
}

// FetchAllTargets lê a aba Targets inteira. Ano ilegível cai no ano
// corrente e meta ilegível cai na meta padrão.
func (r *targetRepository) FetchAllTargets(ctx context.Context) ([]domain.Target, error) {
	if cached, ok := r.cache.Get(cacheKeyAllTargets); ok {
		return cached.([]domain.Target), nil
	}

	rows, err := r.readRows(ctx)
	if err != nil {
		return nil, err
	}

	targets := parseTargetRows(rows)

	r.cache.Set(cacheKeyAllTargets, targets)

	return targets, nil
}

// FetchTargets devolve as metas de um vendedor
func (r *targetRepository) FetchTargets(ctx context.Context, email string) ([]domain.Target, error) {
	normalized := config.NormalizeEmail(email)
	key := cacheKeyTargets + normalized

	if cached, ok := r.cache.Get(key); ok {
		return cached.([]domain.Target), nil
	}

	all, err := r.FetchAllTargets(ctx)
	if err != nil {
		return nil, err
	}

	targets := make([]domain.Target, 0)
	for _, t := range all {
		if t.SalespersonEmail == normalized {
			targets = append(targets, t)
		}
	}

	r.cache.Set(key, targets)

	return targets, nil
}

// SetTarget grava a meta de (email, mês, ano): sobrescreve a linha
// existente quando a chave já aparece na aba, senão anexa uma linha
// nova. A varredura e a escrita não são atômicas; escritas simultâneas
// da mesma chave podem duplicar a linha e a primeira encontrada vence
// nas leituras.
func (r *targetRepository) SetTarget(ctx context.Context, target domain.Target) error {
	target.SalespersonEmail = config.NormalizeEmail(target.SalespersonEmail)
	target.Month = strings.TrimSpace(target.Month)

	rows, err := r.readRows(ctx)
	if err != nil {
		return err
	}

	row := []string{
		target.SalespersonEmail,
		target.Month,
		strconv.Itoa(target.Year),
		strconv.Itoa(target.TargetCount),
	}

	matched := 0
	for i, existing := range rows {
		if i == 0 {
			continue // cabeçalho
		}

		if config.NormalizeEmail(cell(existing, 0)) != target.SalespersonEmail {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(cell(existing, 1)), target.Month) {
			continue
		}
		if cell(existing, 2) != strconv.Itoa(target.Year) {
			continue
		}

		matched = i + 1 // linhas da planilha contam a partir de 1
		break
	}

	if matched > 0 {
		updateRange := fmt.Sprintf("%s!A%d:D%d", SheetTargets, matched, matched)
		_, err = retry.DoWithPolicy(ctx, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, r.client.UpdateValues(ctx, updateRange, [][]string{row})
		}, r.cfg.Retry.Attempts, r.cfg.Retry.BaseDelay)
	} else {
		_, err = retry.DoWithPolicy(ctx, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, r.client.AppendValues(ctx, rangeTargets, [][]string{row})
		}, r.cfg.Retry.Attempts, r.cfg.Retry.BaseDelay)
	}

	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithField("sheet", SheetTargets).
			Error("Erro ao gravar meta")
		return err
	}

	r.cache.Clear()

	r.logger.WithContext(ctx).WithFields(log.Fields{
		"sheet":      SheetTargets,
		"user_email": target.SalespersonEmail,
	}).Infof("Meta de %s/%d gravada: %d", target.Month, target.Year, target.TargetCount)

	return nil
}

func (r *targetRepository) readRows(ctx context.Context) ([][]string, error) {
	rows, err := retry.DoWithPolicy(ctx, func(ctx context.Context) ([][]string, error) {
		return r.client.GetValues(ctx, rangeTargets)
	}, r.cfg.Retry.Attempts, r.cfg.Retry.BaseDelay)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithField("sheet", SheetTargets).
			Error("Erro ao ler a aba de metas")
		return nil, err
	}

	return rows, nil
}

func parseTargetRows(rows [][]string) []domain.Target {
	targets := make([]domain.Target, 0)

	for i, row := range rows {
		if i == 0 {
			continue // cabeçalho
		}

		email := config.NormalizeEmail(cell(row, 0))
		if email == "" {
			continue
		}

		year, err := strconv.Atoi(strings.TrimSpace(cell(row, 2)))
		if err != nil {
			year = time.Now().Year()
		}

		count, err := strconv.Atoi(strings.TrimSpace(cell(row, 3)))
		if err != nil {
			count = domain.DefaultTarget
		}

		targets = append(targets, domain.Target{
			SalespersonEmail: email,
			Month:            strings.TrimSpace(cell(row, 1)),
			Year:             year,
			TargetCount:      count,
		})
	}

	return targets
}
