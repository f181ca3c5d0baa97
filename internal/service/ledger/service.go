package ledger

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/access"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/ledger/models"
	"github.com/m04kA/SMC-FieldBookingService/pkg/ptr"
)

// Service сервис финансовых отчётов и выплат владельцам
type Service struct {
	repo       LedgerRepository
	authorizer Authorizer
	txManager  TransactionManager
	metrics    Metrics
	logger     Logger
}

// NewService создает новый экземпляр сервиса расчётов
func NewService(
	repo LedgerRepository,
	authorizer Authorizer,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		repo:       repo,
		authorizer: authorizer,
		txManager:  txManager,
		metrics:    metrics,
		logger:     logger,
	}
}

// Report строит финансовый отчёт
// Владелец поля видит только свои поля, клиенту отчёт недоступен
func (s *Service) Report(ctx context.Context, req *models.ReportRequest) (*models.FinancialReportResponse, error) {
	s.logger.Info("Report: building report for user=%d role=%s", req.Actor.UserID, req.Actor.Role)

	if !s.authorizer.IsAuthorized(req.Actor, access.OpViewReport, access.Resource{}) {
		s.logger.Warn("Report: access denied for user=%d", req.Actor.UserID)
		return nil, ErrAccessDenied
	}

	filter := req.ToDomainFilter()
	if req.Actor.IsOwner() {
		if filter.OwnerID != nil && *filter.OwnerID != req.Actor.UserID {
			s.logger.Warn("Report: owner=%d requested report of owner=%d", req.Actor.UserID, *filter.OwnerID)
			return nil, ErrAccessDenied
		}
		filter.OwnerID = ptr.Ptr(req.Actor.UserID)
	}

	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	var entries []domain.LedgerEntry
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		entries, err = s.repo.ListForReport(txCtx, filter)
		return err
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			s.logger.Warn("Report: cancelled: %v", ctxErr)
			return nil, ctxErr
		}
		s.logger.Error("Report: repository error: %v", err)
		return nil, fmt.Errorf("%w: Report - repository error: %w", ErrInternal, err)
	}

	report := domain.BuildFinancialReport(filter, entries)

	s.logger.Info("Report: built report with %d fields, %d bookings", len(report.Fields), report.Totals.BookingsCount)
	return models.FromDomainReport(report), nil
}

// MarkSettled отмечает выплату владельцам по списку бронирований
// Все бронирования должны существовать и быть в CONFIRMED/CANCELLED; уже отмеченные не считаются
func (s *Service) MarkSettled(ctx context.Context, req *models.MarkSettledRequest) (*models.MarkSettledResponse, error) {
	s.logger.Info("MarkSettled: marking %d bookings by user=%d", len(req.BookingIDs), req.Actor.UserID)

	if !s.authorizer.IsAuthorized(req.Actor, access.OpMarkSettled, access.Resource{}) {
		s.logger.Warn("MarkSettled: access denied for user=%d", req.Actor.UserID)
		return nil, ErrAccessDenied
	}

	ids, err := uniqueIDs(req.BookingIDs)
	if err != nil {
		return nil, err
	}

	var updated int64
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.CountExisting(txCtx, ids)
		if err != nil {
			return fmt.Errorf("%w: MarkSettled - count bookings: %w", ErrInternal, err)
		}
		if existing != len(ids) {
			return fmt.Errorf("%w: %d of %d bookings exist", ErrBookingNotFound, existing, len(ids))
		}

		settleable, err := s.repo.CountSettleable(txCtx, ids)
		if err != nil {
			return fmt.Errorf("%w: MarkSettled - count settleable bookings: %w", ErrInternal, err)
		}
		if settleable != len(ids) {
			return fmt.Errorf("%w: %d of %d bookings are confirmed or cancelled", ErrNotSettleable, settleable, len(ids))
		}

		updated, err = s.repo.MarkSettled(txCtx, ids)
		if err != nil {
			return fmt.Errorf("%w: MarkSettled - update bookings: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("MarkSettled: failed: %v", err)
		return nil, err
	}

	s.metrics.IncBookingsSettled(updated)
	s.logger.Info("MarkSettled: %d of %d bookings newly settled", updated, len(ids))
	return &models.MarkSettledResponse{Updated: updated}, nil
}

func uniqueIDs(ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: bookingIds must not be empty", ErrInvalidInput)
	}

	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, fmt.Errorf("%w: invalid booking id %d", ErrInvalidInput, id)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result, nil
}
