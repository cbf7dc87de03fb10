package products

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/stockroom/pkg/db/models"
	pkgerrors "github.com/angelmondragon/stockroom/pkg/errors"
	"github.com/angelmondragon/stockroom/pkg/metrics"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := openTestDB(t)
	svc, err := NewService(NewRepository(conn), nil)
	require.NoError(t, err)
	return svc, conn
}

func TestCreateValidatesInput(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := map[string]ProductInput{
		"missing name":      {Price: price(t, "1")},
		"negative quantity": {Name: "x", Quantity: -1, Price: price(t, "1")},
		"negative price":    {Name: "x", Price: price(t, "-0.01")},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, input)
			assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation), "got %v", err)
		})
	}
}

func TestCreateThenGetKeepsFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, ProductInput{ID: 5, GroupID: 3, Name: "Apple", Description: "Red", Manufacturer: "Orchard", Quantity: 10, Price: price(t, "1.50")})
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, int64(3), got.GroupID)
	assert.Equal(t, "Apple", got.Name)
	assert.Equal(t, "Red", got.Description)
	assert.Equal(t, "Orchard", got.Manufacturer)
	assert.Equal(t, 10, got.Quantity)
	assert.True(t, got.Price.Equal(price(t, "1.5")))
}

func TestCreateStoresNameVerbatim(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, ProductInput{Name: "  Apple", Price: price(t, "1")})
	require.NoError(t, err)
	assert.Equal(t, "  Apple", created.Name)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "  Apple", got.Name)

	_, err = svc.Create(ctx, ProductInput{Name: "Apple", Price: price(t, "1")})
	require.NoError(t, err)
}

func TestCreateDuplicateName(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, ProductInput{Name: "Apple", Price: price(t, "1")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, ProductInput{Name: "Apple", Price: price(t, "2")})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeConflict))
	assert.Equal(t, "Product with this name already exists", pkgerrors.PublicMessage(err))

	var n int64
	require.NoError(t, conn.Model(&models.Product{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestUpdateAndDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, ProductInput{Name: "A", Price: price(t, "1")})
	require.NoError(t, err)
	b, err := svc.Create(ctx, ProductInput{Name: "B", Price: price(t, "1")})
	require.NoError(t, err)

	_, err = svc.Update(ctx, 404, ProductInput{Name: "Z", Price: price(t, "1")})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
	assert.Equal(t, "Product not found", pkgerrors.PublicMessage(err))

	_, err = svc.Update(ctx, b.ID, ProductInput{Name: "A", Price: price(t, "1")})
	assert.Equal(t, "Another product with this name already exists", pkgerrors.PublicMessage(err))

	msg, err := svc.Update(ctx, a.ID, ProductInput{Name: "A", Quantity: 3, Price: price(t, "2.25")})
	require.NoError(t, err)
	assert.Equal(t, "Product updated successfully", msg)

	got, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity)
	assert.True(t, got.Price.Equal(price(t, "2.25")))

	msg, err = svc.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Product deleted successfully", msg)
	_, err = svc.Delete(ctx, a.ID)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
}

func TestSellStock(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	p := mustCreateTestProduct(t, conn, models.Product{Name: "Nut", Quantity: 5, Price: price(t, "1")})

	_, err := svc.SellStock(ctx, p.ID, 6)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
	assert.Equal(t, "Not enough stock", pkgerrors.PublicMessage(err))
	assert.Equal(t, 5, quantityOf(t, conn, p.ID))

	msg, err := svc.SellStock(ctx, p.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, "Stock sold successfully", msg)
	assert.Equal(t, 0, quantityOf(t, conn, p.ID))

	_, err = svc.SellStock(ctx, 999, 1)
	assert.Equal(t, "Product not found", pkgerrors.PublicMessage(err))
}

func TestAddStockAcceptsAnyAmount(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	p := mustCreateTestProduct(t, conn, models.Product{Name: "Bolt", Quantity: 4, Price: price(t, "1")})

	msg, err := svc.AddStock(ctx, p.ID, 6)
	require.NoError(t, err)
	assert.Equal(t, "Stock added successfully", msg)
	assert.Equal(t, 10, quantityOf(t, conn, p.ID))

	_, err = svc.AddStock(ctx, p.ID, -3)
	require.NoError(t, err)
	assert.Equal(t, 7, quantityOf(t, conn, p.ID))

	_, err = svc.AddStock(ctx, 999, 1)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
}

func TestSearchAndListByGroup(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	mustCreateTestProduct(t, conn, models.Product{GroupID: 1, Name: "Apple", Description: "fruit", Price: price(t, "1")})
	mustCreateTestProduct(t, conn, models.Product{GroupID: 2, Name: "Banana", Description: "Fruit", Price: price(t, "1")})
	mustCreateTestProduct(t, conn, models.Product{GroupID: 1, Name: "Car", Price: price(t, "1")})

	found, err := svc.Search(ctx, "FRUIT")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Apple", found[0].Name)
	assert.Equal(t, "Banana", found[1].Name)

	inGroup, err := svc.ListByGroup(ctx, 1)
	require.NoError(t, err)
	require.Len(t, inGroup, 2)
	assert.Equal(t, "Car", inGroup[1].Name)
}

type failingStore struct {
	*Repository
}

func (failingStore) SellQuantity(context.Context, int64, int) error {
	return errors.New("connection reset")
}

func (failingStore) Search(context.Context, string) ([]models.Product, error) {
	return nil, errors.New("connection reset")
}

func TestStoreFailuresAreDependencyErrorsAndCounted(t *testing.T) {
	conn := openTestDB(t)
	reg := prometheus.NewRegistry()
	stock := metrics.NewStockMetrics(reg)
	svc, err := NewService(failingStore{Repository: NewRepository(conn)}, stock)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.SellStock(ctx, 1, 1)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeDependency))
	assert.Equal(t, "Internal Server Error", pkgerrors.PublicMessage(err))

	_, err = svc.Search(ctx, "x")
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeDependency))

	p := mustCreateTestProduct(t, conn, models.Product{Name: "Bolt", Price: price(t, "1")})
	_, err = svc.AddStock(ctx, p.ID, 2)
	require.NoError(t, err)

	assert.Equal(t, 1.0, stockCount(t, reg, "sell", "error"))
	assert.Equal(t, 1.0, stockCount(t, reg, "add", "ok"))
}

func stockCount(t *testing.T, reg *prometheus.Registry, op, outcome string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != "stock_operations_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["op"] == op && labels["outcome"] == outcome {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestNewServiceRequiresStore(t *testing.T) {
	_, err := NewService(nil, nil)
	require.Error(t, err)
}
