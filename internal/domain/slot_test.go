package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlot(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)

	i, err := ParseSlot(SlotInput{Date: "2025-03-10", StartTime: "10:00", EndTime: "11:00"}, loc)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC), i.Start)
	assert.Equal(t, time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC), i.End)
}

func TestParseSlot_EndOfDay(t *testing.T) {
	i, err := ParseSlot(SlotInput{Date: "2025-03-10", StartTime: "22:00", EndTime: "24:00"}, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), i.End)
	assert.Equal(t, 2*time.Hour, i.Duration())
}

func TestParseSlot_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   SlotInput
	}{
		{"bad date", SlotInput{Date: "10.03.2025", StartTime: "10:00", EndTime: "11:00"}},
		{"bad start", SlotInput{Date: "2025-03-10", StartTime: "25:00", EndTime: "11:00"}},
		{"bad minutes", SlotInput{Date: "2025-03-10", StartTime: "10:60", EndTime: "11:00"}},
		{"no colon", SlotInput{Date: "2025-03-10", StartTime: "1000", EndTime: "11:00"}},
		{"start at end of day", SlotInput{Date: "2025-03-10", StartTime: "24:00", EndTime: "24:00"}},
		{"inverted", SlotInput{Date: "2025-03-10", StartTime: "12:00", EndTime: "11:00"}},
		{"empty", SlotInput{Date: "2025-03-10", StartTime: "11:00", EndTime: "11:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSlot(tt.in, time.UTC)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestParseSlots_RejectsOverlapWithinRequest(t *testing.T) {
	_, err := ParseSlots([]SlotInput{
		{Date: "2025-03-10", StartTime: "10:00", EndTime: "12:00"},
		{Date: "2025-03-10", StartTime: "11:00", EndTime: "13:00"},
	}, time.UTC)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseSlots_SortedOrder(t *testing.T) {
	intervals, err := ParseSlots([]SlotInput{
		{Date: "2025-03-10", StartTime: "14:00", EndTime: "15:00"},
		{Date: "2025-03-10", StartTime: "10:00", EndTime: "11:00"},
		{Date: "2025-03-10", StartTime: "11:00", EndTime: "12:00"},
	}, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 0}, SortedOrder(intervals))
}
