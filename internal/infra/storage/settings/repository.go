package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/psqlbuilder"
)

// singletonID единственная строка таблицы global_settings
const singletonID = 1

// Repository репозиторий глобальных настроек
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает настройки. При первом чтении создаёт строку со значениями по умолчанию.
func (r *Repository) Get(ctx context.Context) (*domain.GlobalSettings, error) {
	settings, err := r.get(ctx)
	if !errors.Is(err, sql.ErrNoRows) {
		return settings, err
	}

	if err := r.createDefault(ctx); err != nil {
		return nil, err
	}

	settings, err = r.get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: Get - read after insert: %w", ErrScanRow, err)
	}
	return settings, nil
}

// Update сохраняет настройки (upsert единственной строки)
func (r *Repository) Update(ctx context.Context, settings *domain.GlobalSettings) (*domain.GlobalSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("global_settings").
		Columns("id", "service_fee", "admin_phone").
		Values(singletonID, settings.ServiceFee, settings.AdminPhone).
		Suffix("ON CONFLICT (id) DO UPDATE SET " +
			"service_fee = EXCLUDED.service_fee, " +
			"admin_phone = EXCLUDED.admin_phone, " +
			"updated_at = NOW() " +
			"RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build upsert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Update - execute upsert: %w", ErrExecQuery, err)
	}

	result := *settings
	result.UpdatedAt = updatedAt.Time
	return &result, nil
}

func (r *Repository) get(ctx context.Context) (*domain.GlobalSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("service_fee", "admin_phone", "updated_at").
		From("global_settings").
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var settings domain.GlobalSettings
	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.ServiceFee,
		&settings.AdminPhone,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %w", ErrScanRow, err)
	}

	settings.UpdatedAt = updatedAt.Time
	return &settings, nil
}

func (r *Repository) createDefault(ctx context.Context) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	defaults := domain.DefaultGlobalSettings()

	query, args, err := psqlbuilder.Insert("global_settings").
		Columns("id", "service_fee", "admin_phone").
		Values(singletonID, defaults.ServiceFee, defaults.AdminPhone).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: createDefault - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: createDefault - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}
