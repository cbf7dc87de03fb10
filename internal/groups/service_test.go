package groups

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/angelmondragon/stockroom/pkg/db/models"
	pkgerrors "github.com/angelmondragon/stockroom/pkg/errors"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, conn.AutoMigrate(&models.Group{}))

	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc, conn
}

func countGroups(t *testing.T, conn *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, conn.Model(&models.Group{}).Count(&n).Error)
	return n
}

func TestCreateIgnoresClientIDAndRoundTrips(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, GroupInput{ID: 77, Name: "Fruit", Description: "Fresh produce"})
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.NotEqual(t, int64(77), created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)
}

func TestCreateDuplicateNameReturnsConflictWithoutInsert(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, GroupInput{Name: "Fruit"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, GroupInput{Name: "Fruit"})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeConflict))
	assert.Equal(t, "Group with this name already exists", pkgerrors.PublicMessage(err))
	assert.Equal(t, int64(1), countGroups(t, conn))
}

func TestCreateStoresNameVerbatim(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	padded, err := svc.Create(ctx, GroupInput{Name: " Fruit "})
	require.NoError(t, err)
	assert.Equal(t, " Fruit ", padded.Name)

	got, err := svc.Get(ctx, padded.ID)
	require.NoError(t, err)
	assert.Equal(t, " Fruit ", got.Name)

	// names match exactly, so the unpadded form is a different group
	_, err = svc.Create(ctx, GroupInput{Name: "Fruit"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), countGroups(t, conn))
}

func TestCreateRequiresName(t *testing.T) {
	svc, conn := newTestService(t)
	_, err := svc.Create(context.Background(), GroupInput{Name: "   "})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
	assert.Zero(t, countGroups(t, conn))
}

func TestListOrderedAndEmpty(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	rows, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	_, err = svc.Create(ctx, GroupInput{Name: "B"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, GroupInput{Name: "A"})
	require.NoError(t, err)

	rows, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Less(t, rows[0].ID, rows[1].ID)
	assert.Equal(t, "B", rows[0].Name)
}

func TestUpdate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, GroupInput{Name: "A"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, GroupInput{Name: "B"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, 999, GroupInput{Name: "Z"})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
	assert.Equal(t, "Group not found", pkgerrors.PublicMessage(err))

	_, err = svc.Update(ctx, b.ID, GroupInput{Name: "A"})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeConflict))
	assert.Equal(t, "Another group with this name already exists", pkgerrors.PublicMessage(err))

	msg, err := svc.Update(ctx, a.ID, GroupInput{Name: "A", Description: "renamed nothing"})
	require.NoError(t, err)
	assert.Equal(t, "Group updated successfully", msg)

	got, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed nothing", got.Description)
	assert.Equal(t, a.ID, got.ID)
}

func TestDeleteTwice(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	g, err := svc.Create(ctx, GroupInput{Name: "Tools"})
	require.NoError(t, err)

	msg, err := svc.Delete(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "Group deleted successfully", msg)

	_, err = svc.Delete(ctx, g.ID)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
}

func TestNewServiceRequiresStore(t *testing.T) {
	_, err := NewService(nil)
	require.Error(t, err)
}
