package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/psqlbuilder"
)

// codeExclusionViolation SQLSTATE нарушения EXCLUDE ограничения
const codeExclusionViolation = "23P01"

var bookingColumns = []string{
	"id",
	"field_id",
	"user_id",
	"start_time",
	"end_time",
	"status",
	"total_price",
	"service_fee",
	"refund_amount",
	"is_settled",
	"cancellation_reason",
	"cancellation_admin_note",
	"receipt_ref",
	"series_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Пересечение с занимающим бронированием на уровне БД возвращается как ErrSlotNotAvailable.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"field_id",
			"user_id",
			"start_time",
			"end_time",
			"status",
			"total_price",
			"service_fee",
			"refund_amount",
			"is_settled",
			"receipt_ref",
			"series_id",
		).
		Values(
			booking.FieldID,
			booking.UserID,
			booking.StartTime.UTC(),
			booking.EndTime.UTC(),
			booking.Status,
			booking.TotalPrice,
			booking.ServiceFee,
			booking.RefundAmount,
			booking.IsSettled,
			booking.ReceiptRef,
			booking.SeriesID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isExclusionViolation(err) {
			return nil, fmt.Errorf("%w: Create - field=%d %s: %w", ErrSlotNotAvailable, booking.FieldID, booking.Interval(), err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает бронирование по ID и блокирует строку до конца транзакции.
// Вне транзакции работает как GetByID.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByID(ctx context.Context, id int64, lock bool) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if lock {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// FindOccupying возвращает занимающие бронирования поля, пересекающиеся хотя бы с одним интервалом.
// Внутри транзакции найденные строки блокируются (FOR UPDATE).
func (r *Repository) FindOccupying(ctx context.Context, fieldID int64, intervals []domain.Interval) ([]*domain.Booking, error) {
	if len(intervals) == 0 {
		return []*domain.Booking{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	// [a, b) и [c, d) пересекаются, если a < d и c < b
	overlaps := make(squirrel.Or, 0, len(intervals))
	for _, interval := range intervals {
		overlaps = append(overlaps, squirrel.And{
			squirrel.Lt{"start_time": interval.End.UTC()},
			squirrel.Gt{"end_time": interval.Start.UTC()},
		})
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"field_id": fieldID}).
		Where(squirrel.Eq{"status": domain.StatusStrings(domain.OccupyingStatuses)}).
		Where(overlaps).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOccupying - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOccupying - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetFieldSchedule получает занимающие бронирования поля за период (по началу бронирования)
func (r *Repository) GetFieldSchedule(ctx context.Context, filter domain.FieldScheduleFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"field_id": filter.FieldID}).
		Where(squirrel.Eq{"status": domain.StatusStrings(domain.OccupyingStatuses)}).
		OrderBy("start_time ASC")

	// Фильтрация по периоду: бронирование попадает, если пересекает [From, To)
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_time": filter.From.UTC()})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": filter.To.UTC()})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetFieldSchedule - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetFieldSchedule - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ApplyTransition применяет смену статуса.
// Обновление проходит только если статус строки всё ещё равен change.From.
func (r *Repository) ApplyTransition(ctx context.Context, change domain.StatusChange) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", change.To).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": change.BookingID, "status": change.From})

	if change.RefundAmount != nil {
		updateBuilder = updateBuilder.Set("refund_amount", *change.RefundAmount)
	}
	if change.CancellationReason != nil {
		updateBuilder = updateBuilder.Set("cancellation_reason", *change.CancellationReason)
	}
	if change.CancellationAdminNote != nil {
		updateBuilder = updateBuilder.Set("cancellation_admin_note", *change.CancellationAdminNote)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ApplyTransition - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ApplyTransition - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ApplyTransition - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: id=%d expected status %s", ErrStatusChanged, change.BookingID, change.From)
	}

	return nil
}

// Delete удаляет бронирование (физическое удаление)
// Решение, можно ли удалять, принимает сервисный слой
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// CountExisting возвращает количество бронирований из списка ids, которые существуют
func (r *Repository) CountExisting(ctx context.Context, ids []int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountExisting - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountExisting - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// CountSettleable возвращает количество бронирований из списка ids в статусах CONFIRMED/CANCELLED
func (r *Repository) CountSettleable(ctx context.Context, ids []int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"id": ids}).
		Where(squirrel.Eq{"status": domain.StatusStrings(domain.SettleableStatuses)}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountSettleable - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountSettleable - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// MarkSettled отмечает бронирования как выплаченные владельцу.
// Уже отмеченные строки и строки вне CONFIRMED/CANCELLED не трогаются,
// возвращается количество изменённых строк.
func (r *Repository) MarkSettled(ctx context.Context, ids []int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("is_settled", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids}).
		Where(squirrel.Eq{"is_settled": false}).
		Where(squirrel.Eq{"status": domain.StatusStrings(domain.SettleableStatuses)}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: MarkSettled - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: MarkSettled - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: MarkSettled - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// ListForReport получает строки для финансового отчёта вместе с данными поля.
// Фильтр по статусам CONFIRMED/CANCELLED применяется уже в запросе.
func (r *Repository) ListForReport(ctx context.Context, filter domain.ReportFilter) ([]domain.LedgerEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"b.id",
		"b.field_id",
		"f.name",
		"f.club_id",
		"f.owner_id",
		"b.status",
		"b.total_price",
		"b.refund_amount",
		"b.service_fee",
		"b.is_settled",
	).
		From("bookings b").
		Join("fields f ON f.id = b.field_id").
		Where(squirrel.Eq{"b.status": domain.StatusStrings(domain.SettleableStatuses)}).
		OrderBy("b.field_id ASC", "b.start_time ASC")

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"b.start_time": filter.From.UTC()})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"b.start_time": filter.To.UTC()})
	}
	if filter.FieldID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.field_id": *filter.FieldID})
	}
	if filter.ClubID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"f.club_id": *filter.ClubID})
	}
	if filter.OwnerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"f.owner_id": *filter.OwnerID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForReport - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForReport - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]domain.LedgerEntry, 0)
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(
			&e.BookingID,
			&e.FieldID,
			&e.FieldName,
			&e.ClubID,
			&e.OwnerID,
			&e.Status,
			&e.TotalPrice,
			&e.RefundAmount,
			&e.ServiceFee,
			&e.IsSettled,
		); err != nil {
			return nil, fmt.Errorf("%w: ListForReport - scan row: %w", ErrScanRow, err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListForReport - rows error: %w", ErrScanRow, err)
	}

	return entries, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.FieldID,
		&booking.UserID,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.TotalPrice,
		&booking.ServiceFee,
		&booking.RefundAmount,
		&booking.IsSettled,
		&booking.CancellationReason,
		&booking.CancellationAdminNote,
		&booking.ReceiptRef,
		&booking.SeriesID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.StartTime = booking.StartTime.UTC()
	booking.EndTime = booking.EndTime.UTC()
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == codeExclusionViolation
}
