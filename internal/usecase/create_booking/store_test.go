package create_booking

import (
	"context"
	"errors"
	"sync"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	fieldRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
)

// memStore хранилище в памяти; откат транзакции обрезает добавленные строки
type memStore struct {
	fields   map[int64]*domain.Field
	bookings []*domain.Booking
	nextID   int64

	creates      int
	failOnCreate int // номер вызова Create, который вернёт ошибку; 0 - не падать
}

func newMemStore(fields ...*domain.Field) *memStore {
	s := &memStore{fields: make(map[int64]*domain.Field)}
	for _, f := range fields {
		s.fields[f.ID] = f
	}
	return s
}

func (s *memStore) seed(b domain.Booking) {
	s.nextID++
	b.ID = s.nextID
	s.bookings = append(s.bookings, &b)
}

func (s *memStore) GetByIDForUpdate(_ context.Context, id int64) (*domain.Field, error) {
	f, ok := s.fields[id]
	if !ok {
		return nil, fieldRepo.ErrFieldNotFound
	}
	return f, nil
}

func (s *memStore) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	s.creates++
	if s.failOnCreate > 0 && s.creates == s.failOnCreate {
		return nil, errors.New("connection reset by peer")
	}
	s.nextID++
	created := *b
	created.ID = s.nextID
	s.bookings = append(s.bookings, &created)
	return &created, nil
}

func (s *memStore) FindOccupying(_ context.Context, fieldID int64, intervals []domain.Interval) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range s.bookings {
		if b.FieldID != fieldID || !b.IsOccupying() {
			continue
		}
		for _, interval := range intervals {
			if interval.Overlaps(b.Interval()) {
				result = append(result, b)
				break
			}
		}
	}
	return result, nil
}

// serialTx выполняет транзакции строго по одной
type serialTx struct {
	mu    sync.Mutex
	store *memStore
	calls int
}

func (t *serialTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.calls++
	before := len(t.store.bookings)
	if err := fn(ctx); err != nil {
		t.store.bookings = t.store.bookings[:before]
		return err
	}
	return nil
}

type fixedSettings struct {
	settings domain.GlobalSettings
}

func (f fixedSettings) Current(context.Context) (domain.GlobalSettings, error) {
	return f.settings, nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	notes []domain.Notification
}

func (r *recordingNotifier) Dispatch(_ context.Context, notes []domain.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, notes...)
}

type noopMetrics struct{}

func (noopMetrics) IncBookingsCreated(string, int) {}
func (noopMetrics) IncRecurringSkipped(int)        {}
func (noopMetrics) IncSlotConflict(string)         {}
