package create_booking

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/access"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/availability"
	"github.com/m04kA/SMC-FieldBookingService/pkg/logger"
	"github.com/m04kA/SMC-FieldBookingService/pkg/ptr"
)

const (
	fieldID = int64(10)
	ownerID = int64(2)
	userID  = int64(3)
	day     = "2026-05-04"
)

var customer = domain.Actor{UserID: userID, Role: domain.RoleUser}

type fixture struct {
	store    *memStore
	tx       *serialTx
	notifier *recordingNotifier
	uc       *UseCase
}

func newFixture(t *testing.T, weeks int) *fixture {
	t.Helper()

	store := newMemStore(&domain.Field{
		ID:          fieldID,
		Name:        "Main pitch",
		HourlyPrice: decimal.NewFromInt(100),
		OwnerID:     ptr.Ptr(ownerID),
	})
	tx := &serialTx{store: store}
	notifier := &recordingNotifier{}
	log := logger.NewDiscard()

	uc := NewUseCase(
		store,
		store,
		availability.NewChecker(store, noopMetrics{}, log),
		fixedSettings{settings: domain.GlobalSettings{ServiceFee: decimal.NewFromInt(10)}},
		access.NewPolicy(),
		notifier,
		noopMetrics{},
		tx,
		log,
		Options{Location: time.UTC, RecurringWeeks: weeks, MaxSlotsPerRequest: 10},
	)

	return &fixture{store: store, tx: tx, notifier: notifier, uc: uc}
}

func slot(date, start, end string) domain.SlotInput {
	return domain.SlotInput{Date: date, StartTime: start, EndTime: end}
}

func at(date, clock string) time.Time {
	t, err := time.Parse(domain.DateFormat+" "+domain.TimeFormat, date+" "+clock)
	if err != nil {
		panic(err)
	}
	return t
}

func totals(bookings []*domain.Booking) []string {
	result := make([]string, len(bookings))
	for i, b := range bookings {
		result[i] = b.TotalPrice.String()
	}
	return result
}

func TestExecute_FeeChargedOncePerContiguousBlock(t *testing.T) {
	f := newFixture(t, 12)

	// Слоты переданы не по порядку
	resp, err := f.uc.Execute(context.Background(), &Request{
		Actor:   customer,
		FieldID: fieldID,
		UserID:  userID,
		Slots: []domain.SlotInput{
			slot(day, "14:00", "15:00"),
			slot(day, "10:00", "11:00"),
			slot(day, "11:00", "12:00"),
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Bookings, 3)
	assert.Equal(t, []string{"110", "100", "110"}, totals(resp.Bookings))
	assert.Equal(t, at(day, "10:00"), resp.Bookings[0].StartTime)
	for _, b := range resp.Bookings {
		assert.Equal(t, domain.StatusPending, b.Status)
		assert.Equal(t, resp.SeriesID, b.SeriesID.UUID.String())
	}

	// клиент, владелец поля и администраторы
	assert.Len(t, f.notifier.notes, 3)
}

func TestExecute_PrimaryConflictWritesNothing(t *testing.T) {
	f := newFixture(t, 12)
	f.store.seed(domain.Booking{
		FieldID: fieldID, UserID: 99, Status: domain.StatusConfirmed,
		StartTime: at(day, "11:30"), EndTime: at(day, "12:30"),
	})

	_, err := f.uc.Execute(context.Background(), &Request{
		Actor:       customer,
		FieldID:     fieldID,
		UserID:      userID,
		IsRecurring: true,
		Slots: []domain.SlotInput{
			slot(day, "11:00", "12:00"),
			slot(day, "10:00", "11:00"),
		},
	})

	require.ErrorIs(t, err, ErrSlotNotAvailable)
	require.ErrorIs(t, err, domain.ErrConflict)

	conflict, ok := domain.AsConflict(err)
	require.True(t, ok)
	assert.Equal(t, 0, conflict.SlotIndex)

	assert.Len(t, f.store.bookings, 1)
	assert.Empty(t, f.notifier.notes)
}

func TestExecute_FreedStatusesDoNotOccupy(t *testing.T) {
	f := newFixture(t, 12)
	f.store.seed(domain.Booking{
		FieldID: fieldID, UserID: 99, Status: domain.StatusCancelled,
		StartTime: at(day, "10:00"), EndTime: at(day, "11:00"),
	})
	f.store.seed(domain.Booking{
		FieldID: fieldID, UserID: 99, Status: domain.StatusRejected,
		StartTime: at(day, "10:00"), EndTime: at(day, "11:00"),
	})

	resp, err := f.uc.Execute(context.Background(), &Request{
		Actor: customer, FieldID: fieldID, UserID: userID,
		Slots: []domain.SlotInput{slot(day, "10:00", "11:00")},
	})
	require.NoError(t, err)
	assert.Len(t, resp.BookingIDs, 1)
}

// Week в ответе - смещение от недели запроса, начиная с нуля.
// Конфликт на смещении 3 приходится на четвёртое занятие серии из 12.
func TestExecute_RecurringSkipsConflictAtWeekOffset3(t *testing.T) {
	f := newFixture(t, 12)

	week3 := at(day, "10:00").AddDate(0, 0, 21)
	f.store.seed(domain.Booking{
		FieldID: fieldID, UserID: 99, Status: domain.StatusBlocked,
		StartTime: week3, EndTime: week3.Add(time.Hour),
	})

	resp, err := f.uc.Execute(context.Background(), &Request{
		Actor:       customer,
		FieldID:     fieldID,
		UserID:      userID,
		IsRecurring: true,
		Slots: []domain.SlotInput{
			slot(day, "10:00", "11:00"),
			slot(day, "11:00", "12:00"),
		},
	})
	require.NoError(t, err)

	assert.Len(t, resp.Bookings, 2*12-1)
	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, 3, resp.Skipped[0].Week)
	assert.Equal(t, 0, resp.Skipped[0].SlotIndex)
	assert.Equal(t, week3, resp.Skipped[0].StartTime)

	// На смещении 3 остался один слот, сбор переносится на него
	for _, b := range resp.Bookings {
		if b.StartTime.Equal(week3.Add(time.Hour)) {
			assert.Equal(t, "110", b.TotalPrice.String())
			assert.Equal(t, "10", b.ServiceFee.String())
		}
	}

	// Последняя неделя - 11-я по счёту от нуля
	last := resp.Bookings[len(resp.Bookings)-1]
	assert.Equal(t, at(day, "11:00").AddDate(0, 0, 7*11), last.StartTime)
}

func TestExecute_ValidationBeforeAnyIO(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{
			name: "inverted interval",
			req:  &Request{Actor: customer, FieldID: fieldID, UserID: userID, Slots: []domain.SlotInput{slot(day, "12:00", "11:00")}},
		},
		{
			name: "unparseable time",
			req:  &Request{Actor: customer, FieldID: fieldID, UserID: userID, Slots: []domain.SlotInput{slot(day, "25:00", "26:00")}},
		},
		{
			name: "overlapping slots in one request",
			req: &Request{Actor: customer, FieldID: fieldID, UserID: userID, Slots: []domain.SlotInput{
				slot(day, "10:00", "12:00"), slot(day, "11:00", "13:00"),
			}},
		},
		{
			name: "no slots",
			req:  &Request{Actor: customer, FieldID: fieldID, UserID: userID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 12)

			_, err := f.uc.Execute(context.Background(), tt.req)

			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Zero(t, f.tx.calls)
		})
	}
}

func TestExecute_Authorization(t *testing.T) {
	t.Run("customer cannot book for another user", func(t *testing.T) {
		f := newFixture(t, 12)
		_, err := f.uc.Execute(context.Background(), &Request{
			Actor: customer, FieldID: fieldID, UserID: 42,
			Slots: []domain.SlotInput{slot(day, "10:00", "11:00")},
		})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Zero(t, f.tx.calls)
	})

	t.Run("admin books on behalf of user", func(t *testing.T) {
		f := newFixture(t, 12)
		resp, err := f.uc.Execute(context.Background(), &Request{
			Actor: domain.Actor{UserID: 1, Role: domain.RoleAdmin}, FieldID: fieldID, UserID: 42,
			Slots: []domain.SlotInput{slot(day, "10:00", "11:00")},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(42), resp.Bookings[0].UserID)
	})

	t.Run("owner of another field cannot block", func(t *testing.T) {
		f := newFixture(t, 12)
		_, err := f.uc.Execute(context.Background(), &Request{
			Actor: domain.Actor{UserID: 77, Role: domain.RoleOwner}, FieldID: fieldID, IsBlock: true,
			Slots: []domain.SlotInput{slot(day, "10:00", "11:00")},
		})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Empty(t, f.store.bookings)
	})

	t.Run("field owner blocks with zero price", func(t *testing.T) {
		f := newFixture(t, 12)
		resp, err := f.uc.Execute(context.Background(), &Request{
			Actor: domain.Actor{UserID: ownerID, Role: domain.RoleOwner}, FieldID: fieldID, IsBlock: true,
			Slots: []domain.SlotInput{slot(day, "10:00", "11:00")},
		})
		require.NoError(t, err)

		b := resp.Bookings[0]
		assert.Equal(t, domain.StatusBlocked, b.Status)
		assert.True(t, b.TotalPrice.IsZero())
		assert.True(t, b.ServiceFee.IsZero())
		for _, n := range f.notifier.notes {
			assert.NotEqual(t, domain.CategoryBooking, n.Category)
		}
	})
}

func TestExecute_FieldNotFound(t *testing.T) {
	f := newFixture(t, 12)
	_, err := f.uc.Execute(context.Background(), &Request{
		Actor: customer, FieldID: 404, UserID: userID,
		Slots: []domain.SlotInput{slot(day, "10:00", "11:00")},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExecute_StorageFailureRollsBackEverything(t *testing.T) {
	f := newFixture(t, 12)
	f.store.failOnCreate = 5

	_, err := f.uc.Execute(context.Background(), &Request{
		Actor: customer, FieldID: fieldID, UserID: userID, IsRecurring: true,
		Slots: []domain.SlotInput{slot(day, "10:00", "11:00")},
	})

	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.False(t, domain.IsClientError(err))
	assert.Empty(t, f.store.bookings)
	assert.Empty(t, f.notifier.notes)
}

// Конкурентные запросы на пересекающиеся интервалы одного поля:
// занимающие бронирования никогда не пересекаются.
func TestExecute_ConcurrentRequestsNeverOverlap(t *testing.T) {
	f := newFixture(t, 3)

	const workers = 16
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rnd := rand.New(rand.NewSource(seed))

			for i := 0; i < 10; i++ {
				startHour := 8 + rnd.Intn(12)
				length := 1 + rnd.Intn(3)
				_, _ = f.uc.Execute(context.Background(), &Request{
					Actor:       customer,
					FieldID:     fieldID,
					UserID:      userID,
					IsRecurring: rnd.Intn(2) == 0,
					Slots: []domain.SlotInput{slot(
						fmt.Sprintf("2026-05-%02d", 4+rnd.Intn(7)),
						fmt.Sprintf("%02d:00", startHour),
						fmt.Sprintf("%02d:00", startHour+length),
					)},
				})
			}
		}(int64(w))
	}
	wg.Wait()

	bookings := f.store.bookings
	require.NotEmpty(t, bookings)
	for i := range bookings {
		for j := i + 1; j < len(bookings); j++ {
			a, b := bookings[i], bookings[j]
			if a.IsOccupying() && b.IsOccupying() {
				assert.False(t, a.Interval().Overlaps(b.Interval()),
					"bookings %d %s and %d %s overlap", a.ID, a.Interval(), b.ID, b.Interval())
			}
		}
	}
}
