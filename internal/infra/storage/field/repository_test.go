package field

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/pkg/dbmetrics"
)

var fieldColumns = []string{"id", "name", "hourly_price", "owner_id", "club_id", "created_at", "updated_at"}

func TestGetByIDForUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	wrapped := dbmetrics.Wrap(db, nil, "test")
	repo := NewRepository(wrapped)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM fields WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(fieldColumns).
			AddRow(int64(7), "Arena", "100.00", int64(3), nil, time.Now(), time.Now()))
	mock.ExpectRollback()

	tx, err := wrapped.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	f, err := repo.GetByIDForUpdate(dbmetrics.WithTx(context.Background(), tx), 7)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	assert.True(t, decimal.NewFromInt(100).Equal(f.HourlyPrice))
	assert.True(t, f.IsOwnedBy(3))
	assert.Nil(t, f.ClubID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil, "test"))

	mock.ExpectQuery(regexp.QuoteMeta("FROM fields WHERE id = $1")).
		WillReturnRows(sqlmock.NewRows(fieldColumns))

	_, err = repo.GetByID(context.Background(), 7)
	assert.ErrorIs(t, err, ErrFieldNotFound)
}
