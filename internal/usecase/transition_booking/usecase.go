package transition_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/booking"
	fieldRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/access"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/notifications"
	"github.com/m04kA/SMC-FieldBookingService/pkg/ptr"
)

// UseCase use case для смены статуса бронирования
type UseCase struct {
	bookingRepo BookingRepository
	fieldRepo   FieldRepository
	authorizer  Authorizer
	notifier    Notifier
	metrics     Metrics
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	fieldRepo FieldRepository,
	authorizer Authorizer,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		fieldRepo:   fieldRepo,
		authorizer:  authorizer,
		notifier:    notifier,
		metrics:     metrics,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет переход статуса.
// Строка блокируется на время транзакции, переход проверяется по заблокированной строке.
// Права проверяются раньше допустимости перехода: без прав состояние не раскрывается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionBooking: booking=%d, action=%s, actor=%d role=%s",
		req.BookingID, req.Action, req.Actor.UserID, req.Actor.Role)

	// 1. Валидация входных данных
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	action := domain.Action(req.Action)
	if !action.IsValid() {
		uc.logger.Warn("TransitionBooking: unknown action=%q", req.Action)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.ErrInvalidAction)
	}

	payload := domain.TransitionPayload{
		Reason:       req.Reason,
		RefundAmount: req.RefundAmount,
		AdminNote:    req.AdminNote,
	}

	var (
		before  domain.Booking
		updated domain.Booking
		change  domain.StatusChange
	)

	// 2. Чтение с блокировкой, проверка и запись в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		res := access.Resource{BookingUserID: ptr.Ptr(booking.UserID)}
		if action.IsAdminSide() {
			field, err := uc.fieldRepo.GetByID(txCtx, booking.FieldID)
			if err != nil && !errors.Is(err, fieldRepo.ErrFieldNotFound) {
				return fmt.Errorf("%w: failed to get field: %w", ErrInternal, err)
			}
			if field != nil {
				res.FieldOwnerID = field.OwnerID
			}
		}

		if !uc.authorizer.IsAuthorized(req.Actor, access.OperationForAction(action), res) {
			return ErrAccessDenied
		}

		change, err = domain.PlanTransition(booking, action, payload)
		if err != nil {
			return err
		}

		if err := uc.bookingRepo.ApplyTransition(txCtx, change); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusChanged) {
				return ErrConcurrentUpdate
			}
			return fmt.Errorf("%w: failed to apply transition: %w", ErrInternal, err)
		}

		before = *booking
		updated = change.Apply(*booking)
		return nil
	})

	if err != nil {
		if domain.IsClientError(err) {
			uc.logger.Warn("TransitionBooking: booking=%d action=%s rejected: %v", req.BookingID, action, err)
			return nil, err
		}
		uc.logger.Error("TransitionBooking: booking=%d action=%s failed: %v", req.BookingID, action, err)
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: %w", ErrInternal, err)
		}
		return nil, err
	}

	uc.metrics.IncStatusTransition(string(action))

	// 3. Уведомления после фиксации
	uc.notifier.Dispatch(ctx, notifications.StatusChanged(&updated, change))

	uc.logger.Info("TransitionBooking: booking=%d %s -> %s", req.BookingID, before.Status, updated.Status)
	return &Response{
		Booking:        &updated,
		PreviousStatus: before.Status,
	}, nil
}
