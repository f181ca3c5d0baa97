package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Interval полуоткрытый интервал [Start, End), хранится в UTC
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval создает интервал, End должен быть строго больше Start
func NewInterval(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, fmt.Errorf("%w: start=%s end=%s", ErrInvalidInterval,
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return Interval{Start: start.UTC(), End: end.UTC()}, nil
}

// Overlaps возвращает true, если интервалы пересекаются.
// Смежные интервалы (a.End == b.Start) не пересекаются.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Adjacent возвращает true, если other начинается ровно в момент окончания i
func (i Interval) Adjacent(other Interval) bool {
	return i.End.Equal(other.Start)
}

// Duration длительность интервала
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Hours длительность в часах с точностью до минуты
func (i Interval) Hours() decimal.Decimal {
	minutes := int64(i.Duration() / time.Minute)
	return decimal.NewFromInt(minutes).Div(decimal.NewFromInt(60))
}

// ShiftWeeks сдвигает интервал на n недель, сохраняя локальное время в loc
func (i Interval) ShiftWeeks(n int, loc *time.Location) Interval {
	if loc == nil {
		loc = time.UTC
	}
	return Interval{
		Start: i.Start.In(loc).AddDate(0, 0, 7*n).UTC(),
		End:   i.End.In(loc).AddDate(0, 0, 7*n).UTC(),
	}
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s)", i.Start.UTC().Format(time.RFC3339), i.End.UTC().Format(time.RFC3339))
}
