package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// SlotInput слот в том виде, в котором его передаёт клиент: дата и время в часовом поясе площадки
type SlotInput struct {
	Date      string // YYYY-MM-DD
	StartTime string // HH:MM
	EndTime   string // HH:MM, "24:00" означает полночь следующего дня
}

// ParseSlot переводит слот в интервал UTC
func ParseSlot(in SlotInput, loc *time.Location) (Interval, error) {
	if loc == nil {
		loc = time.UTC
	}

	date, err := time.ParseInLocation(DateFormat, strings.TrimSpace(in.Date), loc)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: date %q: %v", ErrInvalidSlot, in.Date, err)
	}

	startH, startM, err := parseClock(in.StartTime, false)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: startTime %q: %v", ErrInvalidSlot, in.StartTime, err)
	}
	endH, endM, err := parseClock(in.EndTime, true)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: endTime %q: %v", ErrInvalidSlot, in.EndTime, err)
	}

	y, m, d := date.Date()
	// time.Date нормализует 24:00 в 00:00 следующего дня
	start := time.Date(y, m, d, startH, startM, 0, 0, loc)
	end := time.Date(y, m, d, endH, endM, 0, 0, loc)

	return NewInterval(start, end)
}

// ParseSlots разбирает слоты запроса, интервалы возвращаются в порядке входа.
// Пересекающиеся между собой слоты одного запроса считаются ошибкой валидации.
func ParseSlots(inputs []SlotInput, loc *time.Location) ([]Interval, error) {
	intervals := make([]Interval, len(inputs))
	for i, in := range inputs {
		interval, err := ParseSlot(in, loc)
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", i, err)
		}
		intervals[i] = interval
	}

	for i := range intervals {
		for j := i + 1; j < len(intervals); j++ {
			if intervals[i].Overlaps(intervals[j]) {
				return nil, fmt.Errorf("%w: slots %d and %d overlap", ErrInvalidSlot, i, j)
			}
		}
	}

	return intervals, nil
}

// SortedOrder возвращает индексы интервалов в хронологическом порядке
func SortedOrder(intervals []Interval) []int {
	order := make([]int, len(intervals))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return intervals[order[a]].Start.Before(intervals[order[b]].Start)
	})
	return order
}

func parseClock(value string, allowEndOfDay bool) (int, int, error) {
	value = strings.TrimSpace(value)
	if value == EndOfDay {
		if !allowEndOfDay {
			return 0, 0, fmt.Errorf("24:00 is allowed only as end time")
		}
		return 24, 0, nil
	}

	parts := strings.Split(value, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM")
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("hour out of range")
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("minute out of range")
	}
	return h, m, nil
}
