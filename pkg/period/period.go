// Package period concentra a aritmética do período comercial ativo:
// a janela recorrente que vai do dia 23 de um mês ao dia 23 do mês
// seguinte, usada como escopo de metas e métricas.
package period

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/arneor/sales-tracker-api/internal/domain"
)

// PeriodBoundaryDay é o dia do mês em que o período vira
const PeriodBoundaryDay = 23

// Period é a janela ativa. Start e End caem sempre no dia 23, à meia
// noite na localidade da data de referência.
type Period struct {
	Start time.Time
	End   time.Time
	Label string
}

// Pace descreve o ritmo diário necessário para bater a meta
type Pace struct {
	Required      float64 `json:"required"`
	IsOnTrack     bool    `json:"is_on_track"`
	DaysRemaining int     `json:"days_remaining"`
	ExpectedCount int     `json:"expected_count"`
}

// CurrentPeriod calcula a janela ativa para a data de referência. Se o
// dia do mês é >= 23 o período vai do dia 23 deste mês ao dia 23 do mês
// seguinte; caso contrário, do dia 23 do mês anterior ao dia 23 deste.
func CurrentPeriod(now time.Time) Period {
	year, month, day := now.Date()
	loc := now.Location()

	var start, end time.Time
	if day >= PeriodBoundaryDay {
		start = time.Date(year, month, PeriodBoundaryDay, 0, 0, 0, 0, loc)
		end = time.Date(year, month+1, PeriodBoundaryDay, 0, 0, 0, 0, loc)
	} else {
		start = time.Date(year, month-1, PeriodBoundaryDay, 0, 0, 0, 0, loc)
		end = time.Date(year, month, PeriodBoundaryDay, 0, 0, 0, 0, loc)
	}

	label := fmt.Sprintf("%s – %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))

	return Period{Start: start, End: end, Label: label}
}

// CurrentTarget escolhe a meta cujo mês/ano coincidem com o início do
// período ativo. Vale a primeira ocorrência; sem meta cadastrada, usa o
// padrão.
func CurrentTarget(targets []domain.Target, now time.Time) int {
	p := CurrentPeriod(now)
	monthName := p.Start.Month().String()
	year := p.Start.Year()

	for _, t := range targets {
		if strings.EqualFold(strings.TrimSpace(t.Month), monthName) && t.Year == year {
			return t.TargetCount
		}
	}

	return domain.DefaultTarget
}

// SalesInPeriod filtra as vendas cuja data cai dentro da janela ativa,
// inclusive nas duas pontas. Datas que não parseiam são tratadas como
// fora do período, nunca como erro.
func SalesInPeriod(sales []domain.SaleEntry, now time.Time) []domain.SaleEntry {
	p := CurrentPeriod(now)

	result := make([]domain.SaleEntry, 0, len(sales))
	for _, s := range sales {
		date, ok := parseSaleDate(s.Date, now.Location())
		if !ok {
			continue
		}
		if !date.Before(p.Start) && !date.After(p.End) {
			result = append(result, s)
		}
	}

	return result
}

// ConfirmedCount conta as vendas confirmadas dentro do período ativo
func ConfirmedCount(sales []domain.SaleEntry, now time.Time) int {
	return countByStatus(SalesInPeriod(sales, now), domain.StatusConfirmed)
}

// RejectedCount conta as vendas rejeitadas dentro do período ativo
func RejectedCount(sales []domain.SaleEntry, now time.Time) int {
	return countByStatus(SalesInPeriod(sales, now), domain.StatusRejected)
}

func countByStatus(sales []domain.SaleEntry, status string) int {
	count := 0
	for _, s := range sales {
		if s.Status == status {
			count++
		}
	}
	return count
}

// DailyPace calcula o ritmo diário necessário para alcançar a meta até
// o fim do período. Com totalDays <= 0 o esperado é zero e o vendedor
// está trivialmente no ritmo.
func DailyPace(current, target int, now time.Time) Pace {
	p := CurrentPeriod(now)

	totalDays := daysBetween(p.Start, p.End)
	daysElapsed := daysBetween(p.Start, now)
	daysRemaining := daysBetween(now, p.End)
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	expected := 0
	if totalDays > 0 {
		expected = int(math.Round(float64(target) * float64(daysElapsed) / float64(totalDays)))
	}

	remaining := float64(target - current)
	var required float64
	if daysRemaining > 0 {
		required = remaining / float64(daysRemaining)
	} else {
		required = remaining
	}
	if required < 0 {
		required = 0
	}

	return Pace{
		Required:      required,
		IsOnTrack:     current >= expected,
		DaysRemaining: daysRemaining,
		ExpectedCount: expected,
	}
}

// ProgressPercentage devolve o progresso contra a meta, limitado a 100
func ProgressPercentage(current, target int) int {
	if target <= 0 {
		return 0
	}

	pct := int(math.Round(float64(current) / float64(target) * 100))
	if pct > 100 {
		pct = 100
	}
	return pct
}

// TimelineProgress indica quanto do período já transcorreu, em [0,100]
func TimelineProgress(now time.Time) int {
	p := CurrentPeriod(now)

	totalDays := daysBetween(p.Start, p.End)
	if totalDays <= 0 {
		return 0
	}

	daysElapsed := daysBetween(p.Start, now)
	pct := int(math.Round(float64(daysElapsed) / float64(totalDays) * 100))
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return pct
}

// ConversionRate é o percentual de confirmadas sobre o total de visitas
func ConversionRate(confirmed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(confirmed) / float64(total) * 100))
}

// daysBetween conta dias completos entre dois instantes, truncando
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// ParseSaleDate interpreta a data de uma venda nos formatos aceitos
// pela planilha. O segundo retorno indica se a data é utilizável.
func ParseSaleDate(value string, loc *time.Location) (time.Time, bool) {
	return parseSaleDate(value, loc)
}

// parseSaleDate aceita datas puras (2006-01-02) e carimbos RFC3339,
// os dois formatos que a planilha acumulou ao longo do tempo
func parseSaleDate(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	if date, err := time.ParseInLocation("2006-01-02", value, loc); err == nil {
		return date, true
	}
	if date, err := time.Parse(time.RFC3339, value); err == nil {
		return date.In(loc), true
	}

	return time.Time{}, false
}
