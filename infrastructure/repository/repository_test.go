package repository

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arneor/sales-tracker-api/infrastructure/integrator/google/sheetsclient"
	"github.com/arneor/sales-tracker-api/internal/config"
	"github.com/arneor/sales-tracker-api/internal/domain"
	"github.com/arneor/sales-tracker-api/pkg/cache"
	"github.com/arneor/sales-tracker-api/pkg/log"
)

// fakeSheetsAPI simula a planilha remota em memória
type fakeSheetsAPI struct {
	sheets    map[string][][]string
	failNext  map[string]int
	getCalls  int
	lastRange string
}

func newFakeSheetsAPI() *fakeSheetsAPI {
	return &fakeSheetsAPI{
		sheets:   make(map[string][][]string),
		failNext: make(map[string]int),
	}
}

func splitRange(rng string) (string, int) {
	parts := strings.SplitN(rng, "!", 2)
	if len(parts) < 2 {
		return rng, 0
	}

	digits := ""
	for _, c := range strings.SplitN(parts[1], ":", 2)[0] {
		if c >= '0' && c <= '9' {
			digits += string(c)
		}
	}

	row, _ := strconv.Atoi(digits)
	return parts[0], row
}

func (f *fakeSheetsAPI) consumeFailure(op string) error {
	if f.failNext[op] > 0 {
		f.failNext[op]--
		return &sheetsclient.APIError{StatusCode: http.StatusTooManyRequests, Body: "quota"}
	}
	return nil
}

func (f *fakeSheetsAPI) GetValues(_ context.Context, rng string) ([][]string, error) {
	f.getCalls++
	f.lastRange = rng

	if err := f.consumeFailure("get"); err != nil {
		return nil, err
	}

	name, _ := splitRange(rng)
	return f.sheets[name], nil
}

func (f *fakeSheetsAPI) AppendValues(_ context.Context, rng string, values [][]string) error {
	if err := f.consumeFailure("append"); err != nil {
		return err
	}

	name, _ := splitRange(rng)
	f.sheets[name] = append(f.sheets[name], values...)
	return nil
}

func (f *fakeSheetsAPI) UpdateValues(_ context.Context, rng string, values [][]string) error {
	if err := f.consumeFailure("update"); err != nil {
		return err
	}

	name, row := splitRange(rng)
	if row == 0 {
		f.sheets[name] = values
		return nil
	}

	rows := f.sheets[name]
	for len(rows) < row {
		rows = append(rows, []string{})
	}
	copy(rows[row-1:], values)
	f.sheets[name] = rows
	return nil
}

func (f *fakeSheetsAPI) SheetTitles(_ context.Context) ([]string, error) {
	if err := f.consumeFailure("titles"); err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(f.sheets))
	for name := range f.sheets {
		titles = append(titles, name)
	}
	return titles, nil
}

func (f *fakeSheetsAPI) AddSheet(_ context.Context, title string) error {
	if err := f.consumeFailure("addsheet"); err != nil {
		return err
	}

	if _, ok := f.sheets[title]; !ok {
		f.sheets[title] = nil
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Retry: config.Retry{Attempts: 3, BaseDelay: time.Millisecond},
	}
}

func TestFetchUsers(t *testing.T) {
	log.SetupTestLogger()

	fake := newFakeSheetsAPI()
	fake.sheets[SheetUsers] = [][]string{
		{"Email", "Name", "Role"},
		{" Ana@Example.COM ", "Ana", "manager"},
		{"beto@example.com", "Beto"},
		{"", "Sem Email", "salesperson"},
	}

	repo := NewUserRepository(fake, cache.New(), testConfig(), log.L)

	users, err := repo.FetchUsers(context.Background())
	require.NoError(t, err)

	require.Len(t, users, 2, "cabeçalho e linha sem email ficam de fora")
	assert.Equal(t, "ana@example.com", users[0].Email, "email deve ser normalizado")
	assert.Equal(t, domain.RoleManager, users[0].Role)
	assert.Equal(t, domain.RoleSalesperson, users[1].Role, "papel ausente vira salesperson")
}

func TestFetchUsersUsaCache(t *testing.T) {
	log.SetupTestLogger()

	fake := newFakeSheetsAPI()
	fake.sheets[SheetUsers] = [][]string{
		{"Email", "Name", "Role"},
		{"ana@example.com", "Ana", "salesperson"},
	}

	repo := NewUserRepository(fake, cache.New(), testConfig(), log.L)

	_, err := repo.FetchUsers(context.Background())
	require.NoError(t, err)

	// Mudança na planilha não aparece enquanto o cache vale
	fake.sheets[SheetUsers] = append(fake.sheets[SheetUsers], []string{"novo@example.com", "Novo", ""})

	users, err := repo.FetchUsers(context.Background())
	require.NoError(t, err)

	assert.Len(t, users, 1)
	assert.Equal(t, 1, fake.getCalls, "segunda leitura deve vir do cache")
}

func TestFetchAllSales(t *testing.T) {
	log.SetupTestLogger()

	fake := newFakeSheetsAPI()
	fake.sheets[SheetSales] = [][]string{
		salesHeader,
		{"SALE00001", "2024-03-01", "Ana@Example.com", "Ana", "", "Loja A", "Centro"},
		{"SALE00002", "2024-03-02", "beto@example.com", "Beto", "Rejected", "Loja B", "Norte", "999", "Carlos", "BeetLink", "₹299", "UPI", "Preço alto", "BeetLink", "2024-03-02T10:00:00Z"},
		{""},
	}

	repo := NewSaleRepository(fake, cache.New(), testConfig(), log.L)

	sales, err := repo.FetchAllSales(context.Background())
	require.NoError(t, err)

	require.Len(t, sales, 2, "cabeçalho e linha sem Sale_ID ficam de fora")
	assert.Equal(t, domain.StatusConfirmed, sales[0].Status, "status vazio vira Confirmed")
	assert.Equal(t, "ana@example.com", sales[0].SalespersonEmail)
	assert.Empty(t, sales[0].Phone, "linha curta ganha células vazias")
	assert.Equal(t, domain.StatusRejected, sales[1].Status)
	assert.Equal(t, "Preço alto", sales[1].RejectedReason)
}

func TestFetchSalesByEmail(t *testing.T) {
	log.SetupTestLogger()

	fake := newFakeSheetsAPI()
	fake.sheets[SheetSales] = [][]string{
		salesHeader,
		{"SALE00001", "2024-03-01", "ana@example.com", "Ana", "Confirmed"},
		{"SALE00002", "2024-03-02", "beto@example.com", "Beto", "Confirmed"},
		{"SALE00003", "2024-03-03", "ana@example.com", "Ana", "Rejected"},
	}

	repo := NewSaleRepository(fake, cache.New(), testConfig(), log.L)

	sales, err := repo.FetchSalesByEmail(context.Background(), " ANA@example.com ")
	require.NoError(t, err)

	require.Len(t, sales, 2)
	assert.Equal(t, "SALE00001", sales[0].SaleID)
	assert.Equal(t, "SALE00003", sales[1].SaleID)
}

func TestAddSale(t *testing.T) {
	log.SetupTestLogger()

	fake := newFakeSheetsAPI()
	fake.sheets[SheetSales] = [][]string{
		salesHeader,
		{"SALE00002", "2024-03-01", "ana@example.com", "Ana", "Confirmed"},
		{"SALE00007", "2024-03-02", "beto@example.com", "Beto", "Confirmed"},
		{"LEGADO-3", "2024-03-03", "ana@example.com", "Ana", "Confirmed"},
	}

	fixedNow := time.Date(2024, 3, 10, 12, 30, 0, 0, time.UTC)

	c := cache.New()
	repo := NewSaleRepository(fake, c, testConfig(), log.L).(*saleRepository)
	repo.nowFn = func() time.Time { return fixedNow }

	entry, err := repo.AddSale(context.Background(), domain.NewSaleInput{
		Date:             "2024-03-10",
		SalespersonEmail: "Ana@Example.com",
		SalespersonName:  "Ana",
		Status:           domain.StatusConfirmed,
		ShopName:         "Loja Nova",
		Category:         "BeetLink",
		Plan:             "₹299",
		PaymentMethod:    "UPI",
	})
	require.NoError(t, err)

	assert.Equal(t, "SALE00008", entry.SaleID, "ordinal novo vem do maior existente")
	assert.Equal(t, "ana@example.com", entry.SalespersonEmail)
	assert.Equal(t, "2024-03-10T12:30:00Z", entry.Timestamp)

	appended := fake.sheets[SheetSales][len(fake.sheets[SheetSales])-1]
	assert.Equal(t, "SALE00008", appended[0])
	assert.Equal(t, "Loja Nova", appended[5])

	assert.Equal(t, 0, c.Len(), "mutação deve esvaziar o cache")
}

func TestAddSaleEmPlanilhaVazia(t *testing.T) {
	log.SetupTestLogger()

	fake := newFakeSheetsAPI()
	fake.sheets[SheetSales] = [][]string{salesHeader}

	repo := NewSaleRepository(fake, cache.New(), testConfig(), log.L)

	entry, err := repo.AddSale(context.Background(), domain.NewSaleInput{
		Date:             "2024-03-10",
		SalespersonEmail: "ana@example.com",
		Status:           domain.StatusConfirmed,
	})
	require.NoError(t, err)

	assert.Equal(t, "SALE00001", entry.SaleID)
}

func TestAddSaleComRetryAposLimiteDeTaxa(t *testing.T) {
	log.SetupTestLogger()

	fake := newFakeSheetsAPI()
	fake.sheets[SheetSales] = [][]string{salesHeader}
	fake.failNext["append"] = 2

	repo := NewSaleRepository(fake, cache.New(), testConfig(), log.L)

	entry, err := repo.AddSale(context.Background(), domain.NewSaleInput{
		Date:             "2024-03-10",
		SalespersonEmail: "ana@example.com",
		Status:           domain.StatusConfirmed,
	})
	require.NoError(t, err, "terceira tentativa deve passar")
	assert.Equal(t, "SALE00001", entry.SaleID)
	assert.Len(t, fake.sheets[SheetSales], 2)
}

func TestFetchAllTargets(t *testing.T) {
	log.SetupTestLogger()

	fake := newFakeSheetsAPI()
	fake.sheets[SheetTargets] = [][]string{
		targetsHeader,
		{"ana@example.com", "March", "2024", "20"},
		{"beto@example.com", "March", "não-é-ano", "abc"},
	}

	repo := NewTargetRepository(fake, cache.New(), testConfig(), log.L)

	targets, err := repo.FetchAllTargets(context.Background())
	require.NoError(t, err)

	require.Len(t, targets, 2)
	assert.Equal(t, 20, targets[0].TargetCount)
	assert.Equal(t, time.Now().Year(), targets[1].Year, "ano ilegível cai no ano corrente")
	assert.Equal(t, domain.DefaultTarget, targets[1].TargetCount, "meta ilegível cai na meta padrão")
}

func TestFetchTargetsFiltraPorEmail(t *testing.T) {
	log.SetupTestLogger()

	fake := newFakeSheetsAPI()
	fake.sheets[SheetTargets] = [][]string{
		targetsHeader,
		{"ana@example.com", "March", "2024", "20"},
		{"beto@example.com", "March", "2024", "10"},
		{"ana@example.com", "April", "2024", "25"},
	}

	repo := NewTargetRepository(fake, cache.New(), testConfig(), log.L)

	targets, err := repo.FetchTargets(context.Background(), "ANA@example.com")
	require.NoError(t, err)

	require.Len(t, targets, 2)
	assert.Equal(t, "March", targets[0].Month)
	assert.Equal(t, "April", targets[1].Month)
}

func TestSetTargetSobrescreveLinhaExistente(t *testing.T) {
	log.SetupTestLogger()

	fake := newFakeSheetsAPI()
	fake.sheets[SheetTargets] = [][]string{
		targetsHeader,
		{"beto@example.com", "March", "2024", "10"},
		{"ana@example.com", " march ", "2024", "15"},
	}

	repo := NewTargetRepository(fake, cache.New(), testConfig(), log.L)

	err := repo.SetTarget(context.Background(), domain.Target{
		SalespersonEmail: "Ana@Example.com",
		Month:            "March",
		Year:             2024,
		TargetCount:      30,
	})
	require.NoError(t, err)

	require.Len(t, fake.sheets[SheetTargets], 3, "linha existente é sobrescrita, não duplicada")
	assert.Equal(t, []string{"ana@example.com", "March", "2024", "30"}, fake.sheets[SheetTargets][2])
}

func TestSetTargetAnexaQuandoNaoExiste(t *testing.T) {
	log.SetupTestLogger()

	fake := newFakeSheetsAPI()
	fake.sheets[SheetTargets] = [][]string{
		targetsHeader,
		{"ana@example.com", "March", "2024", "15"},
	}

	repo := NewTargetRepository(fake, cache.New(), testConfig(), log.L)

	err := repo.SetTarget(context.Background(), domain.Target{
		SalespersonEmail: "ana@example.com",
		Month:            "April",
		Year:             2024,
		TargetCount:      25,
	})
	require.NoError(t, err)

	require.Len(t, fake.sheets[SheetTargets], 3)
	assert.Equal(t, []string{"ana@example.com", "April", "2024", "25"}, fake.sheets[SheetTargets][2])
}

func TestEnsureSheets(t *testing.T) {
	log.SetupTestLogger()

	fake := newFakeSheetsAPI()
	fake.sheets[SheetSales] = [][]string{salesHeader}

	c := cache.New()
	cfg := testConfig()
	userRepo := NewUserRepository(fake, c, cfg, log.L)
	init := NewSheetInitializer(fake, userRepo, c, cfg, log.L)

	err := init.EnsureSheets(context.Background())
	require.NoError(t, err)

	assert.Equal(t, [][]string{targetsHeader}, fake.sheets[SheetTargets], "aba de metas criada com cabeçalho")

	users := fake.sheets[SheetUsers]
	require.NotEmpty(t, users)
	assert.Equal(t, usersHeader, users[0])
	assert.Len(t, users, 1+len(config.SalesTeam), "aba vazia é semeada com o roster")
}

func TestEnsureSheetsNaoSemeiaQuandoJaTemDados(t *testing.T) {
	log.SetupTestLogger()

	fake := newFakeSheetsAPI()
	fake.sheets[SheetUsers] = [][]string{
		usersHeader,
		{"ana@example.com", "Ana", "salesperson"},
	}
	fake.sheets[SheetSales] = [][]string{salesHeader}
	fake.sheets[SheetTargets] = [][]string{targetsHeader}

	c := cache.New()
	cfg := testConfig()
	userRepo := NewUserRepository(fake, c, cfg, log.L)
	init := NewSheetInitializer(fake, userRepo, c, cfg, log.L)

	err := init.EnsureSheets(context.Background())
	require.NoError(t, err)

	assert.Len(t, fake.sheets[SheetUsers], 2, "aba com dados não é semeada de novo")
}
