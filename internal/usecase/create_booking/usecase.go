package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/booking"
	fieldRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/access"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/notifications"
	"github.com/m04kA/SMC-FieldBookingService/pkg/ptr"
)

// UseCase use case для создания бронирований (одиночных, нескольких слотов и повторяющихся)
type UseCase struct {
	bookingRepo BookingRepository
	fieldRepo   FieldRepository
	checker     AvailabilityChecker
	settings    SettingsProvider
	authorizer  Authorizer
	notifier    Notifier
	metrics     Metrics
	txManager   TransactionManager
	logger      Logger
	opts        Options
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	fieldRepo FieldRepository,
	checker AvailabilityChecker,
	settings SettingsProvider,
	authorizer Authorizer,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
	opts Options,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		fieldRepo:   fieldRepo,
		checker:     checker,
		settings:    settings,
		authorizer:  authorizer,
		notifier:    notifier,
		metrics:     metrics,
		txManager:   txManager,
		logger:      logger,
		opts:        opts,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка занятости и вставка идут в одной сериализуемой транзакции под блокировкой строки поля.
// Конфликт в первой неделе отменяет весь запрос; в следующих неделях занятые слоты пропускаются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: actor=%d, field=%d, user=%d, slots=%d, block=%t, recurring=%t",
		req.Actor.UserID, req.FieldID, req.UserID, len(req.Slots), req.IsBlock, req.IsRecurring)

	// 1. Валидация входных данных, до любых обращений к хранилищу
	intervals, err := validateRequest(req, uc.opts)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	userID := req.UserID
	if req.IsBlock {
		userID = req.Actor.UserID
	} else if !uc.authorizer.IsAuthorized(req.Actor, access.OpCreateBooking, access.Resource{TargetUserID: ptr.Ptr(req.UserID)}) {
		uc.logger.Warn("CreateBooking: user=%d cannot book on behalf of user=%d", req.Actor.UserID, req.UserID)
		return nil, ErrAccessDenied
	}

	// 2. Снимок глобальных настроек
	settings, err := uc.settings.Current(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to read settings: %v", err)
		return nil, fmt.Errorf("%w: failed to read settings: %v", ErrInternal, err)
	}

	// 3. Сортировка и разбиение на недели
	base := sortSlots(intervals)
	weeks := weeksFor(req, uc.opts)
	seriesID := uuid.New()

	var (
		field   *domain.Field
		created []*domain.Booking
		skipped []SkippedSlot
	)

	// 4. Все вставки в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// транзакция может быть повторена целиком
		created = nil
		skipped = nil

		// 4.1. Блокируем строку поля: конкурирующие запросы на это поле выстраиваются в очередь
		locked, err := uc.fieldRepo.GetByIDForUpdate(txCtx, req.FieldID)
		if err != nil {
			if errors.Is(err, fieldRepo.ErrFieldNotFound) {
				return ErrFieldNotFound
			}
			return fmt.Errorf("%w: failed to lock field: %w", ErrInternal, err)
		}
		field = locked

		// 4.2. Блокировать поле может администратор или его владелец
		if req.IsBlock && !uc.authorizer.IsAuthorized(req.Actor, access.OpCreateBlock, access.Resource{FieldOwnerID: field.OwnerID}) {
			return ErrAccessDenied
		}

		// 4.3. Первая неделя: любой конфликт отменяет запрос
		if err := uc.checker.Check(txCtx, req.FieldID, base.intervals); err != nil {
			if conflict, ok := domain.AsConflict(err); ok {
				return fmt.Errorf("%w: %w", ErrSlotNotAvailable, &domain.ConflictError{
					SlotIndex: base.slotIndex[conflict.SlotIndex],
					Interval:  conflict.Interval,
				})
			}
			return fmt.Errorf("%w: availability check failed: %w", ErrInternal, err)
		}

		rows, err := uc.insertWeek(txCtx, req, userID, field, base, settings.ServiceFee, seriesID)
		if err != nil {
			return err
		}
		created = append(created, rows...)

		// 4.4. Следующие недели: занятые слоты пропускаются, сбор пересчитывается по оставшимся
		for week := 1; week < weeks; week++ {
			plan := base.shift(week, uc.opts.Location)

			conflicts, err := uc.checker.Conflicts(txCtx, req.FieldID, plan.intervals)
			if err != nil {
				return fmt.Errorf("%w: availability check for week %d failed: %w", ErrInternal, week, err)
			}

			free, weekSkipped := plan.split(conflicts)
			skipped = append(skipped, weekSkipped...)
			if len(free.intervals) == 0 {
				continue
			}

			rows, err := uc.insertWeek(txCtx, req, userID, field, free, settings.ServiceFee, seriesID)
			if err != nil {
				return err
			}
			created = append(created, rows...)
		}

		return nil
	})

	if err != nil {
		if domain.IsClientError(err) {
			uc.logger.Warn("CreateBooking: rejected: %v", err)
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: %w", ErrInternal, err)
		}
		return nil, err
	}

	kind := kindBooking
	if req.IsBlock {
		kind = kindBlock
	}
	uc.metrics.IncBookingsCreated(kind, len(created))
	if len(skipped) > 0 {
		uc.metrics.IncRecurringSkipped(len(skipped))
		uc.logger.Warn("CreateBooking: series=%s skipped %d occupied recurring slots", seriesID, len(skipped))
	}

	// 5. Уведомления после фиксации; ждём отправку, ошибки не влияют на результат
	uc.notifier.Dispatch(ctx, notifications.BookingCreated(field, created, req.IsBlock))

	uc.logger.Info("CreateBooking: successfully created %d bookings, series=%s", len(created), seriesID)

	resp := &Response{
		BookingIDs: make([]int64, len(created)),
		Bookings:   created,
		SeriesID:   seriesID.String(),
		Skipped:    skipped,
	}
	for i, b := range created {
		resp.BookingIDs[i] = b.ID
	}
	return resp, nil
}

// insertWeek сохраняет слоты одной недели
func (uc *UseCase) insertWeek(
	ctx context.Context,
	req *Request,
	userID int64,
	field *domain.Field,
	plan weekPlan,
	serviceFee decimal.Decimal,
	seriesID uuid.UUID,
) ([]*domain.Booking, error) {
	status := domain.StatusPending
	if req.IsBlock {
		status = domain.StatusBlocked
	}

	priced := plan.price(req.IsBlock, field.HourlyPrice, serviceFee)
	result := make([]*domain.Booking, 0, len(priced))

	for i, slot := range priced {
		booking := &domain.Booking{
			FieldID:      field.ID,
			UserID:       userID,
			StartTime:    slot.Interval.Start,
			EndTime:      slot.Interval.End,
			Status:       status,
			TotalPrice:   slot.TotalPrice,
			ServiceFee:   slot.ServiceFee,
			RefundAmount: decimal.Zero,
			ReceiptRef:   req.ReceiptRef,
			SeriesID:     uuid.NullUUID{UUID: seriesID, Valid: true},
		}

		created, err := uc.bookingRepo.Create(ctx, booking)
		if err != nil {
			// Сработало ограничение исключения: кто-то занял слот в обход блокировки
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
				return nil, fmt.Errorf("%w: %w", ErrSlotNotAvailable, &domain.ConflictError{
					SlotIndex: plan.slotIndex[i],
					Interval:  slot.Interval,
				})
			}
			return nil, fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}
		result = append(result, created)
	}

	return result, nil
}
