package products

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/angelmondragon/stockroom/pkg/config"
	"github.com/angelmondragon/stockroom/pkg/db/models"
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

func mustCreateTestProduct(t *testing.T, conn *gorm.DB, p models.Product) *models.Product {
	t.Helper()
	require.NoError(t, conn.Create(&p).Error)
	return &p
}

func price(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func quantityOf(t *testing.T, conn *gorm.DB, id int64) int {
	t.Helper()
	var p models.Product
	require.NoError(t, conn.First(&p, "id = ?", id).Error)
	return p.Quantity
}
