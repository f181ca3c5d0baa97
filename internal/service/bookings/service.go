package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/booking"
	fieldRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/access"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-FieldBookingService/pkg/ptr"
)

// Service сервис для чтения и удаления бронирований
type Service struct {
	bookingRepo BookingRepository
	fieldRepo   FieldRepository
	authorizer  Authorizer
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	fieldRepo FieldRepository,
	authorizer Authorizer,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		fieldRepo:   fieldRepo,
		authorizer:  authorizer,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Видят клиент бронирования, владелец поля и администратор
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, actor.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	res := access.Resource{BookingUserID: ptr.Ptr(booking.UserID)}
	if !actor.IsAdmin() && booking.UserID != actor.UserID {
		field, err := s.getField(ctx, booking.FieldID)
		if err != nil {
			return nil, err
		}
		res.FieldOwnerID = field.OwnerID
	}

	if !s.authorizer.IsAuthorized(actor, access.OpViewBooking, res) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	if !s.authorizer.IsAuthorized(req.Actor, access.OpViewUserBookings, access.Resource{TargetUserID: ptr.Ptr(req.UserID)}) {
		s.logger.Warn("GetUserBookings: access denied for user=%d to bookings of user=%d", req.Actor.UserID, req.UserID)
		return nil, ErrAccessDenied
	}

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetFieldSchedule возвращает занятые интервалы поля за период
// Данные публичные: только интервалы и статусы
func (s *Service) GetFieldSchedule(ctx context.Context, req *models.GetFieldScheduleRequest) (*models.FieldScheduleResponse, error) {
	s.logger.Info("GetFieldSchedule: fetching schedule for field=%d", req.FieldID)

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		s.logger.Warn("GetFieldSchedule: invalid period for field=%d", req.FieldID)
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	if _, err := s.getField(ctx, req.FieldID); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.GetFieldSchedule(ctx, domain.FieldScheduleFilter{
		FieldID: req.FieldID,
		From:    req.From,
		To:      req.To,
	})
	if err != nil {
		s.logger.Error("GetFieldSchedule: repository error for field=%d: %v", req.FieldID, err)
		return nil, fmt.Errorf("%w: GetFieldSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetFieldSchedule: successfully fetched %d intervals for field=%d", len(bookings), req.FieldID)
	return models.FromDomainSchedule(req.FieldID, bookings), nil
}

// Delete удаляет бронирование
// Пользователь удаляет своё бронирование в PENDING или BLOCKED, администратор - любое без денежной истории.
// Бронирования с денежной историей удаляет только администратор с force.
func (s *Service) Delete(ctx context.Context, req *models.DeleteBookingRequest) error {
	s.logger.Info("Delete: deleting booking id=%d by user=%d, force=%t", req.BookingID, req.Actor.UserID, req.Force)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		if err := s.checkDeleteAllowed(booking, req); err != nil {
			return err
		}

		if booking.HasMoneyTrail() {
			s.logger.Warn("Delete: force deleting booking id=%d status=%s settled=%t total=%s by admin=%d",
				booking.ID, booking.Status, booking.IsSettled, booking.TotalPrice.StringFixed(domain.MoneyScale), req.Actor.UserID)
		}

		if err := s.bookingRepo.Delete(txCtx, booking.ID); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("Delete: failed to delete booking id=%d: %v", req.BookingID, err)
		} else {
			s.logger.Warn("Delete: booking id=%d not deleted: %v", req.BookingID, err)
		}
		return err
	}

	s.logger.Info("Delete: successfully deleted booking id=%d", req.BookingID)
	return nil
}

// Вспомогательные методы

func (s *Service) checkDeleteAllowed(booking *domain.Booking, req *models.DeleteBookingRequest) error {
	if !s.authorizer.IsAuthorized(req.Actor, access.OpDeleteBooking, access.Resource{BookingUserID: ptr.Ptr(booking.UserID)}) {
		return ErrAccessDenied
	}

	if booking.HasMoneyTrail() {
		if !req.Force {
			return ErrForceRequired
		}
		if !s.authorizer.IsAuthorized(req.Actor, access.OpForceDelete, access.Resource{}) {
			return ErrAccessDenied
		}
		return nil
	}

	if req.Actor.IsAdmin() {
		return nil
	}

	// Свою блокировку владелец поля снимает сам
	if booking.Status == domain.StatusPending || booking.Status == domain.StatusBlocked {
		return nil
	}
	return ErrCannotDelete
}

func (s *Service) getField(ctx context.Context, fieldID int64) (*domain.Field, error) {
	field, err := s.fieldRepo.GetByID(ctx, fieldID)
	if err != nil {
		if errors.Is(err, fieldRepo.ErrFieldNotFound) {
			s.logger.Warn("getField: field id=%d not found", fieldID)
			return nil, ErrFieldNotFound
		}
		s.logger.Error("getField: repository error for field id=%d: %v", fieldID, err)
		return nil, fmt.Errorf("%w: getField - repository error: %v", ErrInternal, err)
	}
	return field, nil
}
