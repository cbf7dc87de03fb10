package stats

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/angelmondragon/stockroom/internal/products"
	"github.com/angelmondragon/stockroom/pkg/config"
	"github.com/angelmondragon/stockroom/pkg/db/models"
	pkgerrors "github.com/angelmondragon/stockroom/pkg/errors"
	"github.com/angelmondragon/stockroom/pkg/migrate"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	_, err = migrate.Up(context.Background(), sqlDB, config.DriverSQLite)
	require.NoError(t, err)
	return conn
}

func TestTotalValue(t *testing.T) {
	conn := openTestDB(t)
	svc, err := NewService(products.NewRepository(conn))
	require.NoError(t, err)
	ctx := context.Background()

	empty, err := svc.TotalValue(ctx)
	require.NoError(t, err)
	assert.True(t, empty.TotalValue.IsZero())

	body, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `{"totalValue":"0"}`, string(body))

	require.NoError(t, conn.Create(&models.Product{GroupID: 1, Name: "Apple", Quantity: 10, Price: decimal.RequireFromString("1.50")}).Error)
	require.NoError(t, conn.Create(&models.Product{GroupID: 2, Name: "Melon", Quantity: 5, Price: decimal.RequireFromString("10.00")}).Error)

	total, err := svc.TotalValue(ctx)
	require.NoError(t, err)
	assert.True(t, total.TotalValue.Equal(decimal.RequireFromString("65.00")), "got %s", total.TotalValue)

	group, err := svc.TotalValueByGroup(ctx, 2)
	require.NoError(t, err)
	assert.True(t, group.TotalValue.Equal(decimal.NewFromInt(50)), "got %s", group.TotalValue)

	unknown, err := svc.TotalValueByGroup(ctx, 99)
	require.NoError(t, err)
	assert.True(t, unknown.TotalValue.IsZero())
}

type brokenStore struct{}

func (brokenStore) TotalValue(context.Context) (decimal.Decimal, error) {
	return decimal.Zero, errors.New("db down")
}

func (brokenStore) TotalValueByGroup(context.Context, int64) (decimal.Decimal, error) {
	return decimal.Zero, errors.New("db down")
}

func TestStoreFailureIsDependencyError(t *testing.T) {
	svc, err := NewService(brokenStore{})
	require.NoError(t, err)

	_, err = svc.TotalValue(context.Background())
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeDependency))
	_, err = svc.TotalValueByGroup(context.Background(), 1)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeDependency))
}

func TestNewServiceRequiresStore(t *testing.T) {
	_, err := NewService(nil)
	require.Error(t, err)
}
