package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// weekPlan слоты одной недели в хронологическом порядке
type weekPlan struct {
	week      int
	intervals []domain.Interval
	slotIndex []int // индекс каждого интервала в исходном запросе
}

// sortSlots упорядочивает интервалы по началу и запоминает исходные индексы
func sortSlots(intervals []domain.Interval) weekPlan {
	order := domain.SortedOrder(intervals)

	plan := weekPlan{
		intervals: make([]domain.Interval, len(order)),
		slotIndex: order,
	}
	for i, idx := range order {
		plan.intervals[i] = intervals[idx]
	}
	return plan
}

// shift возвращает план, сдвинутый на week недель в часовом поясе площадки
func (p weekPlan) shift(week int, loc *time.Location) weekPlan {
	shifted := weekPlan{
		week:      week,
		intervals: make([]domain.Interval, len(p.intervals)),
		slotIndex: p.slotIndex,
	}
	for i, interval := range p.intervals {
		shifted.intervals[i] = interval.ShiftWeeks(week, loc)
	}
	return shifted
}

// split делит план на свободные и занятые слоты
func (p weekPlan) split(conflicts []bool) (weekPlan, []SkippedSlot) {
	free := weekPlan{week: p.week}
	var skipped []SkippedSlot

	for i, interval := range p.intervals {
		if conflicts[i] {
			skipped = append(skipped, SkippedSlot{
				Week:      p.week,
				SlotIndex: p.slotIndex[i],
				StartTime: interval.Start,
				EndTime:   interval.End,
			})
			continue
		}
		free.intervals = append(free.intervals, interval)
		free.slotIndex = append(free.slotIndex, p.slotIndex[i])
	}

	return free, skipped
}

// price считает стоимость слотов недели.
// Сбор относится на первый слот каждого непрерывного блока среди слотов этой недели.
func (p weekPlan) price(isBlock bool, hourlyPrice, serviceFee decimal.Decimal) []domain.PricedSlot {
	if isBlock {
		return domain.BlockedSlots(p.intervals)
	}
	return domain.PriceSlots(p.intervals, hourlyPrice, serviceFee)
}

// weeksFor возвращает число недель для запроса
func weeksFor(req *Request, opts Options) int {
	if !req.IsRecurring {
		return 1
	}
	if opts.RecurringWeeks < 1 {
		return domain.DefaultRecurringWeeks
	}
	return opts.RecurringWeeks
}
