package period

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/arneor/sales-tracker-api/internal/domain"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestCurrentPeriod(t *testing.T) {
	tests := []struct {
		name          string
		now           time.Time
		expectedStart time.Time
		expectedEnd   time.Time
		expectedLabel string
	}{
		{
			name:          "Dia 23 abre um período novo",
			now:           time.Date(2024, time.March, 23, 10, 0, 0, 0, time.UTC),
			expectedStart: date(2024, time.March, 23),
			expectedEnd:   date(2024, time.April, 23),
			expectedLabel: "Mar 23 – Apr 23, 2024",
		},
		{
			name:          "Dia 22 ainda pertence ao período anterior",
			now:           time.Date(2024, time.March, 22, 23, 59, 0, 0, time.UTC),
			expectedStart: date(2024, time.February, 23),
			expectedEnd:   date(2024, time.March, 23),
			expectedLabel: "Feb 23 – Mar 23, 2024",
		},
		{
			name:          "Virada de ano para frente",
			now:           time.Date(2023, time.December, 28, 0, 0, 0, 0, time.UTC),
			expectedStart: date(2023, time.December, 23),
			expectedEnd:   date(2024, time.January, 23),
			expectedLabel: "Dec 23 – Jan 23, 2024",
		},
		{
			name:          "Virada de ano para trás",
			now:           time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
			expectedStart: date(2023, time.December, 23),
			expectedEnd:   date(2024, time.January, 23),
			expectedLabel: "Dec 23 – Jan 23, 2024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := CurrentPeriod(tt.now)

			assert.Equal(t, tt.expectedStart, p.Start)
			assert.Equal(t, tt.expectedEnd, p.End)
			assert.Equal(t, tt.expectedLabel, p.Label)
		})
	}
}

func TestCurrentPeriod_BoundariesAlwaysOnDay23(t *testing.T) {
	// Varre um ano inteiro dia a dia: as bordas caem sempre no dia 23 e
	// o agora fica dentro de [start, end)
	now := date(2024, time.January, 1)
	for i := 0; i < 366; i++ {
		p := CurrentPeriod(now)

		assert.Equal(t, PeriodBoundaryDay, p.Start.Day())
		assert.Equal(t, PeriodBoundaryDay, p.End.Day())
		assert.False(t, now.Before(p.Start), "now antes do início em %s", now)
		assert.True(t, now.Before(p.End), "now depois do fim em %s", now)

		now = now.AddDate(0, 0, 1)
	}
}

func TestCurrentTarget(t *testing.T) {
	now := date(2024, time.March, 25) // período começa em 23 de março

	tests := []struct {
		name     string
		targets  []domain.Target
		expected int
	}{
		{
			name:     "Sem metas cadastradas usa o padrão",
			targets:  []domain.Target{},
			expected: domain.DefaultTarget,
		},
		{
			name: "Meta do mês de início do período",
			targets: []domain.Target{
				{Month: "February", Year: 2024, TargetCount: 10},
				{Month: "March", Year: 2024, TargetCount: 20},
			},
			expected: 20,
		},
		{
			name: "Mês com caixa e espaços diferentes ainda casa",
			targets: []domain.Target{
				{Month: " march ", Year: 2024, TargetCount: 18},
			},
			expected: 18,
		},
		{
			name: "Ano diferente não casa",
			targets: []domain.Target{
				{Month: "March", Year: 2023, TargetCount: 30},
			},
			expected: domain.DefaultTarget,
		},
		{
			name: "Primeira ocorrência vence",
			targets: []domain.Target{
				{Month: "March", Year: 2024, TargetCount: 12},
				{Month: "March", Year: 2024, TargetCount: 99},
			},
			expected: 12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CurrentTarget(tt.targets, now))
		})
	}
}

func TestSalesInPeriod(t *testing.T) {
	now := date(2024, time.March, 10) // período: 23/fev a 23/mar

	sales := []domain.SaleEntry{
		{SaleID: "SALE00001", Date: "2024-02-23"}, // início, inclusivo
		{SaleID: "SALE00002", Date: "2024-03-23"}, // fim, inclusivo
		{SaleID: "SALE00003", Date: "2024-03-01"},
		{SaleID: "SALE00004", Date: "2024-02-22"}, // antes do período
		{SaleID: "SALE00005", Date: "2024-03-24"}, // depois do período
		{SaleID: "SALE00006", Date: "não é data"}, // excluída em silêncio
		{SaleID: "SALE00007", Date: ""},
		{SaleID: "SALE00008", Date: "2024-03-05T14:30:00Z"}, // carimbo RFC3339
	}

	inPeriod := SalesInPeriod(sales, now)

	ids := make([]string, 0, len(inPeriod))
	for _, s := range inPeriod {
		ids = append(ids, s.SaleID)
	}

	assert.Equal(t, []string{"SALE00001", "SALE00002", "SALE00003", "SALE00008"}, ids)
}

func TestConfirmedAndRejectedCount(t *testing.T) {
	now := date(2024, time.March, 10)

	sales := []domain.SaleEntry{
		{Date: "2024-03-01", Status: domain.StatusConfirmed},
		{Date: "2024-03-02", Status: domain.StatusConfirmed},
		{Date: "2024-03-03", Status: domain.StatusRejected},
		{Date: "2024-01-01", Status: domain.StatusConfirmed}, // fora do período
	}

	assert.Equal(t, 2, ConfirmedCount(sales, now))
	assert.Equal(t, 1, RejectedCount(sales, now))
}

func TestDailyPace(t *testing.T) {
	// Período de 23/fev a 23/mar de 2024: 29 dias no total
	now := date(2024, time.March, 4) // 10 dias decorridos, 19 restantes

	t.Run("Abaixo do esperado fica fora do ritmo", func(t *testing.T) {
		pace := DailyPace(2, 29, now)

		assert.Equal(t, 10, pace.ExpectedCount)
		assert.Equal(t, 19, pace.DaysRemaining)
		assert.False(t, pace.IsOnTrack)
		assert.InDelta(t, 27.0/19.0, pace.Required, 1e-9)
	})

	t.Run("No esperado ou acima fica no ritmo", func(t *testing.T) {
		pace := DailyPace(10, 29, now)

		assert.True(t, pace.IsOnTrack)
	})

	t.Run("Meta já batida zera o necessário", func(t *testing.T) {
		pace := DailyPace(40, 29, now)

		assert.True(t, pace.IsOnTrack)
		assert.Zero(t, pace.Required)
	})

	t.Run("IsOnTrack equivale a current >= expected", func(t *testing.T) {
		for target := 0; target <= 40; target++ {
			for current := 0; current <= 40; current++ {
				pace := DailyPace(current, target, now)
				assert.Equal(t, current >= pace.ExpectedCount, pace.IsOnTrack,
					"current=%d target=%d", current, target)
			}
		}
	})
}

func TestProgressPercentage(t *testing.T) {
	tests := []struct {
		current  int
		target   int
		expected int
	}{
		{0, 15, 0},
		{5, 15, 33},
		{15, 15, 100},
		{30, 15, 100}, // limitado a 100
		{3, 0, 0},     // meta não positiva
		{3, -1, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d de %d", tt.current, tt.target), func(t *testing.T) {
			assert.Equal(t, tt.expected, ProgressPercentage(tt.current, tt.target))
		})
	}
}

func TestProgressPercentage_Monotonic(t *testing.T) {
	previous := 0
	for current := 0; current <= 50; current++ {
		pct := ProgressPercentage(current, 20)

		assert.GreaterOrEqual(t, pct, previous)
		assert.LessOrEqual(t, pct, 100)
		previous = pct
	}
}

func TestTimelineProgress(t *testing.T) {
	t.Run("Início do período é zero", func(t *testing.T) {
		assert.Equal(t, 0, TimelineProgress(date(2024, time.February, 23)))
	})

	t.Run("Meio do período fica perto de 50", func(t *testing.T) {
		pct := TimelineProgress(date(2024, time.March, 8))

		assert.GreaterOrEqual(t, pct, 45)
		assert.LessOrEqual(t, pct, 55)
	})

	t.Run("Sempre dentro de [0,100]", func(t *testing.T) {
		now := date(2024, time.January, 1)
		for i := 0; i < 400; i++ {
			pct := TimelineProgress(now)

			assert.GreaterOrEqual(t, pct, 0)
			assert.LessOrEqual(t, pct, 100)
			now = now.AddDate(0, 0, 1)
		}
	})
}

func TestConversionRate(t *testing.T) {
	assert.Equal(t, 0, ConversionRate(3, 0)) // sem divisão por zero
	assert.Equal(t, 0, ConversionRate(0, 10))
	assert.Equal(t, 50, ConversionRate(5, 10))
	assert.Equal(t, 33, ConversionRate(1, 3))
	assert.Equal(t, 100, ConversionRate(10, 10))
}
