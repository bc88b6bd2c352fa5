package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockCommissionRepository creates a GormCommissionRepository with a mocked SQL connection
func newMockCommissionRepository(t *testing.T) (*GormCommissionRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormCommissionRepository(gormDB), mock, mockDB
}

func TestGormCommissionRepository_SumByUserBetween(t *testing.T) {
	t.Run("aggregates totals over the range", func(t *testing.T) {
		repo, mock, mockDB := newMockCommissionRepository(t)
		defer mockDB.Close()

		userID := uuid.New()
		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows([]string{"accounts_sold", "earned", "withheld", "paid"}).
			AddRow(14, decimal.NewFromFloat(512.50), decimal.NewFromFloat(102.50), decimal.NewFromFloat(410.00))

		mock.ExpectQuery(`SELECT .* FROM "commissions" WHERE user_id = \$1 AND date >= \$2`).
			WithArgs(userID, start).
			WillReturnRows(rows)

		summary, err := repo.SumByUserBetween(context.Background(), userID, start, nil)

		require.NoError(t, err)
		require.NotNil(t, summary)
		assert.Equal(t, int64(14), summary.AccountsSold)
		assert.True(t, summary.Earned.Equal(decimal.NewFromFloat(512.50)))
		assert.True(t, summary.Paid.Equal(decimal.NewFromFloat(410.00)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies upper bound when end is set", func(t *testing.T) {
		repo, mock, mockDB := newMockCommissionRepository(t)
		defer mockDB.Close()

		userID := uuid.New()
		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows([]string{"accounts_sold", "earned", "withheld", "paid"}).
			AddRow(0, decimal.Zero, decimal.Zero, decimal.Zero)

		// gorm wraps the first compound clause in parentheses once a
		// second Where is chained
		mock.ExpectQuery(`SELECT .* FROM "commissions" WHERE \(user_id = \$1 AND date >= \$2\) AND date <= \$3`).
			WithArgs(userID, start, end).
			WillReturnRows(rows)

		summary, err := repo.SumByUserBetween(context.Background(), userID, start, &end)

		require.NoError(t, err)
		require.NotNil(t, summary)
		assert.Equal(t, int64(0), summary.AccountsSold)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCommissionRepository_FindRecentByUser(t *testing.T) {
	t.Run("returns newest rows first", func(t *testing.T) {
		repo, mock, mockDB := newMockCommissionRepository(t)
		defer mockDB.Close()

		userID := uuid.New()
		newest := time.Date(2026, 1, 19, 0, 0, 0, 0, time.UTC)
		older := time.Date(2026, 1, 18, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows([]string{"id", "user_id", "date", "accounts_sold", "earned", "withheld", "paid"}).
			AddRow(uuid.New(), userID, newest, 3, decimal.NewFromInt(75), decimal.NewFromInt(15), decimal.NewFromInt(60)).
			AddRow(uuid.New(), userID, older, 1, decimal.NewFromInt(25), decimal.NewFromInt(5), decimal.NewFromInt(20))

		mock.ExpectQuery(`SELECT \* FROM "commissions" WHERE user_id = \$1 ORDER BY date DESC LIMIT \$2`).
			WithArgs(userID, 10).
			WillReturnRows(rows)

		result, err := repo.FindRecentByUser(context.Background(), userID, 10)

		assert.NoError(t, err)
		assert.Len(t, result, 2)
		assert.Equal(t, newest, result[0].Date)
		assert.Equal(t, 3, result[0].AccountsSold)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCommissionRepository_DeleteAll(t *testing.T) {
	t.Run("removes every row", func(t *testing.T) {
		repo, mock, mockDB := newMockCommissionRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`DELETE FROM "commissions"`).
			WillReturnResult(sqlmock.NewResult(0, 42))

		err := repo.DeleteAll(context.Background())

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
