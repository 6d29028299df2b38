package repository

import (
	"context"

	"github.com/arneor/sales-tracker-api/infrastructure/integrator/google/sheetsclient"
	"github.com/arneor/sales-tracker-api/internal/config"
	"github.com/arneor/sales-tracker-api/internal/domain"
	"github.com/arneor/sales-tracker-api/pkg/cache"
	"github.com/arneor/sales-tracker-api/pkg/log"
	"github.com/arneor/sales-tracker-api/pkg/retry"
)

type UserRepository interface {
	FetchUsers(ctx context.Context) ([]domain.SalesUser, error)
	SeedUsers(ctx context.Context, users []domain.SalesUser) error
}

type userRepository struct {
	client sheetsclient.Client
	cache  *cache.Cache
	cfg    *config.Config
	logger log.Logger
}

func NewUserRepository(client sheetsclient.Client, c *cache.Cache, cfg *config.Config, logger log.Logger) UserRepository {
	return &userRepository{
		client: client,
		cache:  c,
		cfg:    cfg,
		logger: logger,
	}
}

// FetchUsers lê a aba Users. O papel gravado na planilha é informativo:
// autorização de verdade vem do roster em config.SalesTeam.
func (r *userRepository) FetchUsers(ctx context.Context) ([]domain.SalesUser, error) {
	if cached, ok := r.cache.Get(cacheKeyUsers); ok {
		return cached.([]domain.SalesUser), nil
	}

	rows, err := retry.DoWithPolicy(ctx, func(ctx context.Context) ([][]string, error) {
		return r.client.GetValues(ctx, rangeUsers)
	}, r.cfg.Retry.Attempts, r.cfg.Retry.BaseDelay)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithField("sheet", SheetUsers).
			Error("Erro ao ler a aba de usuários")
		return nil, err
	}

	users := make([]domain.SalesUser, 0)
	for i, row := range rows {
		if i == 0 {
			continue // cabeçalho
		}

		email := config.NormalizeEmail(cell(row, 0))
		if email == "" {
			continue
		}

		role := cell(row, 2)
		if role != domain.RoleManager {
			role = domain.RoleSalesperson
		}

		users = append(users, domain.SalesUser{
			Email: email,
			Name:  cell(row, 1),
			Role:  role,
		})
	}

	r.cache.Set(cacheKeyUsers, users)

	return users, nil
}

// SeedUsers anexa os membros informados à aba Users. Usado pelo
// inicializador quando a aba existe mas está vazia.
func (r *userRepository) SeedUsers(ctx context.Context, users []domain.SalesUser) error {
	values := make([][]string, 0, len(users))
	for _, u := range users {
		values = append(values, []string{u.Email, u.Name, u.Role})
	}

	_, err := retry.DoWithPolicy(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.client.AppendValues(ctx, rangeUsers, values)
	}, r.cfg.Retry.Attempts, r.cfg.Retry.BaseDelay)
	if err != nil {
		return err
	}

	r.cache.Clear()

	r.logger.WithContext(ctx).WithField("sheet", SheetUsers).
		Infof("Aba de usuários semeada com %d membros", len(users))

	return nil
}
