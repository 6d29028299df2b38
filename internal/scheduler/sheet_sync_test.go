package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/arneor/sales-tracker-api/infrastructure/repository/mocks"
	"github.com/arneor/sales-tracker-api/internal/appstate"
	"github.com/arneor/sales-tracker-api/internal/config"
	"github.com/arneor/sales-tracker-api/internal/domain"
	"github.com/arneor/sales-tracker-api/pkg/cache"
	"github.com/arneor/sales-tracker-api/pkg/log"
)

type syncMocks struct {
	userRepo   *mocks.MockUserRepository
	saleRepo   *mocks.MockSaleRepository
	targetRepo *mocks.MockTargetRepository
	state      *appstate.Controller
	cache      *cache.Cache
}

func newTestSync(t *testing.T) (SheetSyncService, syncMocks) {
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	cfg := &config.Config{Alerts: config.Alerts{TTL: time.Minute}}

	m := syncMocks{
		userRepo:   mocks.NewMockUserRepository(ctrl),
		saleRepo:   mocks.NewMockSaleRepository(ctrl),
		targetRepo: mocks.NewMockTargetRepository(ctrl),
		state:      appstate.NewController(cfg, log.L),
		cache:      cache.New(),
	}

	svc := NewSheetSyncService(m.userRepo, m.saleRepo, m.targetRepo, m.state, m.cache, cfg, log.L)

	return svc, m
}

func TestRunNow(t *testing.T) {
	t.Run("aquece as três leituras e registra o instante", func(t *testing.T) {
		svc, m := newTestSync(t)

		m.cache.Set("users", "frio")

		m.userRepo.EXPECT().FetchUsers(gomock.Any()).Return([]domain.SalesUser{}, nil)
		m.saleRepo.EXPECT().FetchAllSales(gomock.Any()).Return([]domain.SaleEntry{}, nil)
		m.targetRepo.EXPECT().FetchAllTargets(gomock.Any()).Return([]domain.Target{}, nil)

		err := svc.RunNow(context.Background())
		require.NoError(t, err)

		status := m.state.Snapshot()
		assert.False(t, status.IsSyncing)
		require.NotNil(t, status.LastSync)
	})

	t.Run("falha de leitura vira alerta", func(t *testing.T) {
		svc, m := newTestSync(t)

		m.userRepo.EXPECT().FetchUsers(gomock.Any()).Return(nil, errors.New("planilha fora do ar"))

		err := svc.RunNow(context.Background())
		require.Error(t, err)

		alerts := m.state.Alerts()
		require.Len(t, alerts, 1)
		assert.Equal(t, domain.AlertError, alerts[0].Type)
	})

	t.Run("sincronização simultânea é recusada", func(t *testing.T) {
		svc, m := newTestSync(t)

		require.True(t, m.state.BeginSync())

		err := svc.RunNow(context.Background())
		require.ErrorIs(t, err, ErrSyncInProgress)
	})
}

func TestStartDesabilitadoNaoAgenda(t *testing.T) {
	svc, _ := newTestSync(t)

	err := svc.Start()
	require.NoError(t, err, "com a flag desligada o start é inócuo")

	svc.Stop()
}
