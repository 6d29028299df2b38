// Package tracking implementa as visões e mutações do acompanhamento de
// vendas: painel individual, visão do time, inteligência de mercado e os
// registros de venda e meta.
package tracking

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/arneor/sales-tracker-api/infrastructure/repository"
	"github.com/arneor/sales-tracker-api/internal/config"
	"github.com/arneor/sales-tracker-api/internal/domain"
	"github.com/arneor/sales-tracker-api/pkg/cache"
	"github.com/arneor/sales-tracker-api/pkg/log"
	"github.com/arneor/sales-tracker-api/pkg/period"
	"github.com/arneor/sales-tracker-api/pkg/utils"
)

// ErrValidation marca entrada recusada antes de tocar a planilha
var ErrValidation = errors.New("dados inválidos")

const unspecifiedReason = "Not specified"

type Service interface {
	Dashboard(ctx context.Context, email string) (*domain.DashboardSummary, error)
	TeamOverview(ctx context.Context) (*domain.TeamOverview, error)
	MarketData(ctx context.Context) (*domain.MarketData, error)
	SalesHistory(ctx context.Context, email string) ([]domain.SaleEntry, error)
	AllSalesHistory(ctx context.Context) ([]domain.SaleEntry, error)
	TargetsFor(ctx context.Context, email string) ([]domain.Target, error)
	AllTargets(ctx context.Context) ([]domain.Target, error)
	AddSale(ctx context.Context, input domain.NewSaleInput) (*domain.SaleEntry, error)
	SetTarget(ctx context.Context, target domain.Target) error
	RefreshAll(ctx context.Context, email string) (*domain.Snapshot, error)
}

type service struct {
	userRepo   repository.UserRepository
	saleRepo   repository.SaleRepository
	targetRepo repository.TargetRepository
	cache      *cache.Cache
	logger     log.Logger
	nowFn      func() time.Time
}

func NewService(
	userRepo repository.UserRepository,
	saleRepo repository.SaleRepository,
	targetRepo repository.TargetRepository,
	c *cache.Cache,
	logger log.Logger,
) Service {
	return &service{
		userRepo:   userRepo,
		saleRepo:   saleRepo,
		targetRepo: targetRepo,
		cache:      c,
		logger:     logger,
		nowFn:      time.Now,
	}
}

// Dashboard monta as métricas do período ativo para um vendedor
func (s *service) Dashboard(ctx context.Context, email string) (*domain.DashboardSummary, error) {
	sales, err := s.saleRepo.FetchSalesByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	targets, err := s.targetRepo.FetchTargets(ctx, email)
	if err != nil {
		return nil, err
	}

	now := s.nowFn()
	p := period.CurrentPeriod(now)
	target := period.CurrentTarget(targets, now)

	inPeriod := period.SalesInPeriod(sales, now)
	confirmed := period.ConfirmedCount(sales, now)
	rejected := period.RejectedCount(sales, now)
	total := len(inPeriod)

	pace := period.DailyPace(confirmed, target, now)

	return &domain.DashboardSummary{
		PeriodLabel:    p.Label,
		PeriodStart:    p.Start.Format("2006-01-02"),
		PeriodEnd:      p.End.Format("2006-01-02"),
		TargetCount:    target,
		ConfirmedCount: confirmed,
		RejectedCount:  rejected,
		TotalInPeriod:  total,
		ProgressPct:    period.ProgressPercentage(confirmed, target),
		TimelinePct:    period.TimelineProgress(now),
		ConversionRate: period.ConversionRate(confirmed, total),
		RequiredPerDay: utils.RoundWithTwoDecimalPlace(pace.Required),
		ExpectedCount:  pace.ExpectedCount,
		DaysRemaining:  pace.DaysRemaining,
		IsOnTrack:      pace.IsOnTrack,
	}, nil
}

// TeamOverview agrega as métricas de todos os membros no período ativo.
// Os membros saem ordenados por confirmadas, e o destaque só existe
// quando alguém confirmou pelo menos uma venda.
func (s *service) TeamOverview(ctx context.Context) (*domain.TeamOverview, error) {
	users, err := s.userRepo.FetchUsers(ctx)
	if err != nil {
		return nil, err
	}

	allSales, err := s.saleRepo.FetchAllSales(ctx)
	if err != nil {
		return nil, err
	}

	allTargets, err := s.targetRepo.FetchAllTargets(ctx)
	if err != nil {
		return nil, err
	}

	now := s.nowFn()
	p := period.CurrentPeriod(now)

	salesByEmail := make(map[string][]domain.SaleEntry)
	for _, sale := range allSales {
		salesByEmail[sale.SalespersonEmail] = append(salesByEmail[sale.SalespersonEmail], sale)
	}

	targetsByEmail := make(map[string][]domain.Target)
	for _, t := range allTargets {
		targetsByEmail[t.SalespersonEmail] = append(targetsByEmail[t.SalespersonEmail], t)
	}

	members := make([]domain.MemberStats, 0, len(users))
	totalConfirmed, totalRejected, totalVisits := 0, 0, 0

	for _, user := range users {
		role := user.Role
		if member := config.FindRosterMember(user.Email); member != nil {
			role = member.Role
		}

		memberSales := salesByEmail[user.Email]
		inPeriod := period.SalesInPeriod(memberSales, now)

		confirmed := period.ConfirmedCount(memberSales, now)
		rejected := period.RejectedCount(memberSales, now)
		total := len(inPeriod)
		target := period.CurrentTarget(targetsByEmail[user.Email], now)

		members = append(members, domain.MemberStats{
			Name:         user.Name,
			Email:        user.Email,
			Role:         role,
			Confirmed:    confirmed,
			Rejected:     rejected,
			Total:        total,
			Target:       target,
			Conversion:   period.ConversionRate(confirmed, total),
			ProgressPct:  period.ProgressPercentage(confirmed, target),
			LastActivity: lastActivity(memberSales, now.Location()),
		})

		totalConfirmed += confirmed
		totalRejected += rejected
		totalVisits += total
	}

	sort.SliceStable(members, func(i, j int) bool {
		if members[i].Confirmed != members[j].Confirmed {
			return members[i].Confirmed > members[j].Confirmed
		}
		return members[i].Name < members[j].Name
	})

	overview := &domain.TeamOverview{
		PeriodLabel:    p.Label,
		Members:        members,
		TotalConfirmed: totalConfirmed,
		TotalRejected:  totalRejected,
		TotalVisits:    totalVisits,
		TeamConversion: period.ConversionRate(totalConfirmed, totalVisits),
	}

	if len(members) > 0 && members[0].Confirmed > 0 {
		top := members[0]
		overview.TopPerformer = &top
	}

	return overview, nil
}

// MarketData agrega o histórico completo de rejeições: motivos, produtos
// e praças onde as vendas não fecham
func (s *service) MarketData(ctx context.Context) (*domain.MarketData, error) {
	allSales, err := s.saleRepo.FetchAllSales(ctx)
	if err != nil {
		return nil, err
	}

	rejected := make([]domain.SaleEntry, 0)
	for _, sale := range allSales {
		if sale.Status == domain.StatusRejected {
			rejected = append(rejected, sale)
		}
	}

	return &domain.MarketData{
		TotalRejected:     len(rejected),
		ReasonInsights:    reasonInsights(rejected),
		CategoryBreakdown: categoryBreakdown(rejected),
		LocationBreakdown: locationBreakdown(rejected),
	}, nil
}

// SalesHistory devolve o histórico completo de um vendedor
func (s *service) SalesHistory(ctx context.Context, email string) ([]domain.SaleEntry, error) {
	return s.saleRepo.FetchSalesByEmail(ctx, email)
}

// AllSalesHistory devolve o histórico do time inteiro
func (s *service) AllSalesHistory(ctx context.Context) ([]domain.SaleEntry, error) {
	return s.saleRepo.FetchAllSales(ctx)
}

// TargetsFor devolve as metas cadastradas de um vendedor
func (s *service) TargetsFor(ctx context.Context, email string) ([]domain.Target, error) {
	return s.targetRepo.FetchTargets(ctx, email)
}

// AllTargets devolve as metas cadastradas do time inteiro
func (s *service) AllTargets(ctx context.Context) ([]domain.Target, error) {
	return s.targetRepo.FetchAllTargets(ctx)
}

// AddSale valida o registro contra o catálogo e anexa na planilha.
// Sale_ID e Timestamp são atribuídos pelo repositório.
func (s *service) AddSale(ctx context.Context, input domain.NewSaleInput) (*domain.SaleEntry, error) {
	if input.Date == "" {
		input.Date = utils.TodayISO()
	}

	if err := validateSale(input); err != nil {
		s.logger.WithContext(ctx).WithError(err).
			WithField("user_email", config.NormalizeEmail(input.SalespersonEmail)).
			Warn("Venda recusada na validação")
		return nil, err
	}

	return s.saleRepo.AddSale(ctx, input)
}

// SetTarget valida e grava a meta mensal de um vendedor
func (s *service) SetTarget(ctx context.Context, target domain.Target) error {
	if err := validateTarget(target); err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("Meta recusada na validação")
		return err
	}

	return s.targetRepo.SetTarget(ctx, target)
}

// RefreshAll descarta o cache e recarrega as quatro visões em paralelo
func (s *service) RefreshAll(ctx context.Context, email string) (*domain.Snapshot, error) {
	s.cache.Clear()

	snapshot := &domain.Snapshot{}

	var wg sync.WaitGroup
	errs := make([]error, 4)

	wg.Add(4)

	go func() {
		defer wg.Done()
		snapshot.Users, errs[0] = s.userRepo.FetchUsers(ctx)
	}()

	go func() {
		defer wg.Done()
		snapshot.Sales, errs[1] = s.saleRepo.FetchSalesByEmail(ctx, email)
	}()

	go func() {
		defer wg.Done()
		snapshot.Targets, errs[2] = s.targetRepo.FetchTargets(ctx, email)
	}()

	go func() {
		defer wg.Done()
		snapshot.AllSales, errs[3] = s.saleRepo.FetchAllSales(ctx)
	}()

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	s.logger.WithContext(ctx).WithField("user_email", config.NormalizeEmail(email)).
		Info("Recarga completa de dados concluída")

	return snapshot, nil
}

func validateSale(input domain.NewSaleInput) error {
	if config.NormalizeEmail(input.SalespersonEmail) == "" {
		return errors.Wrap(ErrValidation, "email do vendedor é obrigatório")
	}

	if _, err := utils.ParseDate(input.Date); err != nil {
		return errors.Wrapf(ErrValidation, "data inválida: %s", input.Date)
	}

	switch input.Status {
	case domain.StatusConfirmed:
		if strings.TrimSpace(input.ShopName) == "" {
			return errors.Wrap(ErrValidation, "nome da loja é obrigatório em venda confirmada")
		}
		category := canonicalValue(domain.ProductCategories, input.Category)
		if category == "" {
			return errors.Wrapf(ErrValidation, "categoria desconhecida: %s", input.Category)
		}
		if !containsFold(domain.ProductPlans[category], input.Plan) {
			return errors.Wrapf(ErrValidation, "plano %s não existe na categoria %s", input.Plan, category)
		}
		if !containsFold(domain.PaymentMethods, input.PaymentMethod) {
			return errors.Wrapf(ErrValidation, "forma de pagamento desconhecida: %s", input.PaymentMethod)
		}
	case domain.StatusRejected:
		if strings.TrimSpace(input.RejectedReason) == "" {
			return errors.Wrap(ErrValidation, "motivo é obrigatório em venda rejeitada")
		}
		for _, category := range splitCategories(input.RejectedCategories) {
			if !containsFold(domain.ProductCategories, category) {
				return errors.Wrapf(ErrValidation, "categoria rejeitada desconhecida: %s", category)
			}
		}
	default:
		return errors.Wrapf(ErrValidation, "status desconhecido: %s", input.Status)
	}

	return nil
}

func validateTarget(target domain.Target) error {
	if config.NormalizeEmail(target.SalespersonEmail) == "" {
		return errors.Wrap(ErrValidation, "email do vendedor é obrigatório")
	}

	if !isMonthName(target.Month) {
		return errors.Wrapf(ErrValidation, "mês inválido: %s", target.Month)
	}

	if target.Year < 2020 || target.Year > 2100 {
		return errors.Wrapf(ErrValidation, "ano fora do intervalo aceito: %d", target.Year)
	}

	if target.TargetCount <= 0 {
		return errors.Wrapf(ErrValidation, "meta deve ser positiva: %d", target.TargetCount)
	}

	return nil
}

// lastActivity devolve a data da venda mais recente do membro, em
// qualquer período. Vazio quando nenhuma data é utilizável.
func lastActivity(sales []domain.SaleEntry, loc *time.Location) string {
	var latest time.Time
	found := false

	for _, sale := range sales {
		date, ok := period.ParseSaleDate(sale.Date, loc)
		if !ok {
			continue
		}
		if !found || date.After(latest) {
			latest = date
			found = true
		}
	}

	if !found {
		return ""
	}

	return latest.Format("2006-01-02")
}

func reasonInsights(rejected []domain.SaleEntry) []domain.RejectionInsight {
	type bucket struct {
		count      int
		locations  map[string]bool
		categories map[string]bool
	}

	buckets := make(map[string]*bucket)
	for _, sale := range rejected {
		reason := strings.TrimSpace(sale.RejectedReason)
		if reason == "" {
			reason = unspecifiedReason
		}

		b, ok := buckets[reason]
		if !ok {
			b = &bucket{locations: make(map[string]bool), categories: make(map[string]bool)}
			buckets[reason] = b
		}

		b.count++
		if location := strings.TrimSpace(sale.Location); location != "" {
			b.locations[location] = true
		}
		for _, category := range rejectedCategories(sale) {
			b.categories[category] = true
		}
	}

	insights := make([]domain.RejectionInsight, 0, len(buckets))
	for reason, b := range buckets {
		insights = append(insights, domain.RejectionInsight{
			Reason:     reason,
			Count:      b.count,
			Locations:  sortedKeys(b.locations),
			Categories: sortedKeys(b.categories),
		})
	}

	sort.SliceStable(insights, func(i, j int) bool {
		if insights[i].Count != insights[j].Count {
			return insights[i].Count > insights[j].Count
		}
		return insights[i].Reason < insights[j].Reason
	})

	return insights
}

func categoryBreakdown(rejected []domain.SaleEntry) []domain.CategoryCount {
	counts := make(map[string]int)
	for _, sale := range rejected {
		for _, category := range rejectedCategories(sale) {
			counts[category]++
		}
	}

	breakdown := make([]domain.CategoryCount, 0, len(counts))
	for category, count := range counts {
		breakdown = append(breakdown, domain.CategoryCount{Category: category, Count: count})
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		if breakdown[i].Count != breakdown[j].Count {
			return breakdown[i].Count > breakdown[j].Count
		}
		return breakdown[i].Category < breakdown[j].Category
	})

	return breakdown
}

func locationBreakdown(rejected []domain.SaleEntry) []domain.LocationCount {
	counts := make(map[string]int)
	for _, sale := range rejected {
		if location := strings.TrimSpace(sale.Location); location != "" {
			counts[location]++
		}
	}

	breakdown := make([]domain.LocationCount, 0, len(counts))
	for location, count := range counts {
		breakdown = append(breakdown, domain.LocationCount{Location: location, Count: count})
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		if breakdown[i].Count != breakdown[j].Count {
			return breakdown[i].Count > breakdown[j].Count
		}
		return breakdown[i].Location < breakdown[j].Location
	})

	return breakdown
}

// rejectedCategories devolve as categorias atingidas pela rejeição; sem
// a coluna multivalor preenchida, cai na categoria da própria venda
func rejectedCategories(sale domain.SaleEntry) []string {
	categories := splitCategories(sale.RejectedCategories)
	if len(categories) == 0 {
		if category := strings.TrimSpace(sale.Category); category != "" {
			return []string{category}
		}
	}
	return categories
}

func splitCategories(value string) []string {
	parts := strings.Split(value, ",")

	categories := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			categories = append(categories, trimmed)
		}
	}

	return categories
}

// canonicalValue devolve o valor do catálogo que corresponde à entrada,
// ignorando caixa e espaços. Vazio quando não há correspondência.
func canonicalValue(values []string, value string) string {
	for _, v := range values {
		if strings.EqualFold(v, strings.TrimSpace(value)) {
			return v
		}
	}
	return ""
}

func containsFold(values []string, value string) bool {
	for _, v := range values {
		if strings.EqualFold(v, strings.TrimSpace(value)) {
			return true
		}
	}
	return false
}

func isMonthName(value string) bool {
	trimmed := strings.TrimSpace(value)
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), trimmed) {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
