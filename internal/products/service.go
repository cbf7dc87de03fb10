package products

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/stockroom/internal/catalog"
	"github.com/angelmondragon/stockroom/pkg/db"
	"github.com/angelmondragon/stockroom/pkg/db/models"
	pkgerrors "github.com/angelmondragon/stockroom/pkg/errors"
	"github.com/angelmondragon/stockroom/pkg/metrics"
)

const (
	MsgStockAdded     = "Stock added successfully"
	MsgStockSold      = "Stock sold successfully"
	MsgNotEnoughStock = "Not enough stock"
)

// Messages are the client-facing texts for product CRUD.
var Messages = catalog.MessagesFor("Product")

// Store is the product persistence contract.
type Store interface {
	catalog.Store[models.Product]
	Search(ctx context.Context, query string) ([]models.Product, error)
	ListByGroup(ctx context.Context, groupID int64) ([]models.Product, error)
	AddQuantity(ctx context.Context, id int64, amount int) error
	SellQuantity(ctx context.Context, id int64, amount int) error
}

// Service exposes product operations.
type Service interface {
	Create(ctx context.Context, input ProductInput) (*ProductDTO, error)
	Get(ctx context.Context, id int64) (*ProductDTO, error)
	List(ctx context.Context) ([]ProductDTO, error)
	ListByGroup(ctx context.Context, groupID int64) ([]ProductDTO, error)
	Search(ctx context.Context, query string) ([]ProductDTO, error)
	Update(ctx context.Context, id int64, input ProductInput) (string, error)
	Delete(ctx context.Context, id int64) (string, error)
	AddStock(ctx context.Context, id int64, amount int) (string, error)
	SellStock(ctx context.Context, id int64, amount int) (string, error)
}

type service struct {
	store   Store
	catalog *catalog.Service[models.Product]
	stock   *metrics.StockMetrics
}

// NewService builds a product service. stock may be nil.
func NewService(store Store, stock *metrics.StockMetrics) (Service, error) {
	if store == nil {
		return nil, errors.New("product store required")
	}
	svc, err := catalog.NewService[models.Product](store, Messages)
	if err != nil {
		return nil, err
	}
	return &service{store: store, catalog: svc, stock: stock}, nil
}

func (s *service) Create(ctx context.Context, input ProductInput) (*ProductDTO, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	created, err := s.catalog.Create(ctx, input.ToModel())
	if err != nil {
		return nil, err
	}
	dto := FromModel(*created)
	return &dto, nil
}

func (s *service) Get(ctx context.Context, id int64) (*ProductDTO, error) {
	p, err := s.catalog.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := FromModel(*p)
	return &dto, nil
}

func (s *service) List(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	return FromModels(rows), nil
}

func (s *service) ListByGroup(ctx context.Context, groupID int64) ([]ProductDTO, error) {
	rows, err := s.store.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products by group")
	}
	return FromModels(rows), nil
}

func (s *service) Search(ctx context.Context, query string) ([]ProductDTO, error) {
	rows, err := s.store.Search(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search products")
	}
	return FromModels(rows), nil
}

func (s *service) Update(ctx context.Context, id int64, input ProductInput) (string, error) {
	if err := validateInput(input); err != nil {
		return "", err
	}
	return s.catalog.Update(ctx, id, input.ToModel())
}

func (s *service) Delete(ctx context.Context, id int64) (string, error) {
	return s.catalog.Delete(ctx, id)
}

// AddStock raises the stock of product id by amount. The amount is not sign
// checked; a negative amount lowers the stock without a floor.
func (s *service) AddStock(ctx context.Context, id int64, amount int) (string, error) {
	if err := s.store.AddQuantity(ctx, id, amount); err != nil {
		if db.IsNotFound(err) {
			s.stock.Observe(metrics.OpAdd, metrics.OutcomeNotFound, amount)
			return "", s.catalog.NotFound()
		}
		s.stock.Observe(metrics.OpAdd, metrics.OutcomeError, amount)
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add stock")
	}
	s.stock.Observe(metrics.OpAdd, metrics.OutcomeOK, amount)
	return MsgStockAdded, nil
}

// SellStock removes amount units from product id. Selling more than is in
// stock fails without changing the quantity; selling exactly the stock
// leaves zero.
func (s *service) SellStock(ctx context.Context, id int64, amount int) (string, error) {
	err := s.store.SellQuantity(ctx, id, amount)
	switch {
	case err == nil:
		s.stock.Observe(metrics.OpSell, metrics.OutcomeOK, amount)
		return MsgStockSold, nil
	case db.IsNotFound(err):
		s.stock.Observe(metrics.OpSell, metrics.OutcomeNotFound, amount)
		return "", s.catalog.NotFound()
	case errors.Is(err, ErrInsufficientStock):
		s.stock.Observe(metrics.OpSell, metrics.OutcomeInsufficient, amount)
		return "", pkgerrors.New(pkgerrors.CodeValidation, MsgNotEnoughStock)
	default:
		s.stock.Observe(metrics.OpSell, metrics.OutcomeError, amount)
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sell stock")
	}
}

func validateInput(input ProductInput) error {
	switch {
	case strings.TrimSpace(input.Name) == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	case input.Quantity < 0:
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	case input.Price.LessThan(decimal.Zero):
		return pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	return nil
}
