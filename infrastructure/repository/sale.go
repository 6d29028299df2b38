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

const saleIDPrefix = "SALE"

type SaleRepository interface {
	FetchAllSales(ctx context.Context) ([]domain.SaleEntry, error)
	FetchSalesByEmail(ctx context.Context, email string) ([]domain.SaleEntry, error)
	AddSale(ctx context.Context, input domain.NewSaleInput) (*domain.SaleEntry, error)
}

type saleRepository struct {
	client sheetsclient.Client
	cache  *cache.Cache
	cfg    *config.Config
	logger log.Logger
	nowFn  func() time.Time
}

func NewSaleRepository(client sheetsclient.Client, c *cache.Cache, cfg *config.Config, logger log.Logger) SaleRepository {
	return &saleRepository{
		client: client,
		cache:  c,
		cfg:    cfg,
		logger: logger,
		nowFn:  time.Now,
	}
}

// FetchAllSales lê a aba Sales_Data inteira. Linhas curtas ganham
// células vazias e status ausente vira Confirmed.
func (r *saleRepository) FetchAllSales(ctx context.Context) ([]domain.SaleEntry, error) {
	if cached, ok := r.cache.Get(cacheKeyAllSales); ok {
		return cached.([]domain.SaleEntry), nil
	}

	rows, err := retry.DoWithPolicy(ctx, func(ctx context.Context) ([][]string, error) {
		return r.client.GetValues(ctx, rangeSales)
	}, r.cfg.Retry.Attempts, r.cfg.Retry.BaseDelay)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithField("sheet", SheetSales).
			Error("Erro ao ler a aba de vendas")
		return nil, err
	}

	sales := parseSaleRows(rows)

	r.cache.Set(cacheKeyAllSales, sales)

	return sales, nil
}

// FetchSalesByEmail filtra as vendas de um vendedor. O filtro é local:
// a planilha não oferece consulta por coluna.
func (r *saleRepository) FetchSalesByEmail(ctx context.Context, email string) ([]domain.SaleEntry, error) {
	all, err := r.FetchAllSales(ctx)
	if err != nil {
		return nil, err
	}

	normalized := config.NormalizeEmail(email)

	sales := make([]domain.SaleEntry, 0)
	for _, sale := range all {
		if config.NormalizeEmail(sale.SalespersonEmail) == normalized {
			sales = append(sales, sale)
		}
	}

	return sales, nil
}

// AddSale atribui Sale_ID e Timestamp no servidor e anexa a linha nova.
// O ID é o maior ordinal existente mais um, lido direto da planilha para
// não depender de cache velho.
func (r *saleRepository) AddSale(ctx context.Context, input domain.NewSaleInput) (*domain.SaleEntry, error) {
	rows, err := retry.DoWithPolicy(ctx, func(ctx context.Context) ([][]string, error) {
		return r.client.GetValues(ctx, rangeSales)
	}, r.cfg.Retry.Attempts, r.cfg.Retry.BaseDelay)
	if err != nil {
		return nil, err
	}

	entry := domain.SaleEntry{
		SaleID:             fmt.Sprintf("%s%05d", saleIDPrefix, maxSaleOrdinal(rows)+1),
		Date:               input.Date,
		SalespersonEmail:   config.NormalizeEmail(input.SalespersonEmail),
		SalespersonName:    input.SalespersonName,
		Status:             input.Status,
		ShopName:           input.ShopName,
		Location:           input.Location,
		Phone:              input.Phone,
		ContactName:        input.ContactName,
		Category:           input.Category,
		Plan:               input.Plan,
		PaymentMethod:      input.PaymentMethod,
		RejectedReason:     input.RejectedReason,
		RejectedCategories: input.RejectedCategories,
		Timestamp:          r.nowFn().Format(time.RFC3339),
	}

	_, err = retry.DoWithPolicy(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.client.AppendValues(ctx, rangeSales, [][]string{saleToRow(entry)})
	}, r.cfg.Retry.Attempts, r.cfg.Retry.BaseDelay)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithField("sheet", SheetSales).
			Error("Erro ao anexar venda")
		return nil, err
	}

	// Mutação invalida tudo: a próxima leitura vê a planilha real
	r.cache.Clear()

	r.logger.WithContext(ctx).WithFields(log.Fields{
		"sheet":      SheetSales,
		"user_email": entry.SalespersonEmail,
	}).Infof("Venda %s registrada", entry.SaleID)

	return &entry, nil
}

func parseSaleRows(rows [][]string) []domain.SaleEntry {
	sales := make([]domain.SaleEntry, 0)

	for i, row := range rows {
		if i == 0 {
			continue // cabeçalho
		}

		if cell(row, 0) == "" {
			continue
		}

		status := cell(row, 4)
		if status == "" {
			status = domain.StatusConfirmed
		}

		sales = append(sales, domain.SaleEntry{
			SaleID:             cell(row, 0),
			Date:               cell(row, 1),
			SalespersonEmail:   config.NormalizeEmail(cell(row, 2)),
			SalespersonName:    cell(row, 3),
			Status:             status,
			ShopName:           cell(row, 5),
			Location:           cell(row, 6),
			Phone:              cell(row, 7),
			ContactName:        cell(row, 8),
			Category:           cell(row, 9),
			Plan:               cell(row, 10),
			PaymentMethod:      cell(row, 11),
			RejectedReason:     cell(row, 12),
			RejectedCategories: cell(row, 13),
			Timestamp:          cell(row, 14),
		})
	}

	return sales
}

// maxSaleOrdinal varre a coluna Sale_ID e devolve o maior ordinal
// encontrado. IDs fora do padrão são ignorados.
func maxSaleOrdinal(rows [][]string) int {
	max := 0

	for i, row := range rows {
		if i == 0 {
			continue
		}

		id := cell(row, 0)
		if !strings.HasPrefix(id, saleIDPrefix) {
			continue
		}

		n, err := strconv.Atoi(strings.TrimPrefix(id, saleIDPrefix))
		if err != nil {
			continue
		}

		if n > max {
			max = n
		}
	}

	return max
}

func saleToRow(s domain.SaleEntry) []string {
	return []string{
		s.SaleID, s.Date, s.SalespersonEmail, s.SalespersonName, s.Status,
		s.ShopName, s.Location, s.Phone, s.ContactName, s.Category,
		s.Plan, s.PaymentMethod, s.RejectedReason, s.RejectedCategories, s.Timestamp,
	}
}
