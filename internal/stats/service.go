package stats

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/stockroom/pkg/errors"
)

// TotalsStore answers the stock value aggregates.
type TotalsStore interface {
	TotalValue(ctx context.Context) (decimal.Decimal, error)
	TotalValueByGroup(ctx context.Context, groupID int64) (decimal.Decimal, error)
}

// TotalValueDTO is the wire shape of a stock value aggregate.
type TotalValueDTO struct {
	TotalValue decimal.Decimal `json:"totalValue"`
}

type Service interface {
	TotalValue(ctx context.Context) (TotalValueDTO, error)
	TotalValueByGroup(ctx context.Context, groupID int64) (TotalValueDTO, error)
}

type service struct {
	store TotalsStore
}

func NewService(store TotalsStore) (Service, error) {
	if store == nil {
		return nil, errors.New("totals store required")
	}
	return &service{store: store}, nil
}

// TotalValue is sum(quantity * price) over every product; zero when there
// are none.
func (s *service) TotalValue(ctx context.Context) (TotalValueDTO, error) {
	total, err := s.store.TotalValue(ctx)
	if err != nil {
		return TotalValueDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "total value")
	}
	return TotalValueDTO{TotalValue: total}, nil
}

// TotalValueByGroup restricts the sum to one group. Unknown groups yield zero.
func (s *service) TotalValueByGroup(ctx context.Context, groupID int64) (TotalValueDTO, error) {
	total, err := s.store.TotalValueByGroup(ctx, groupID)
	if err != nil {
		return TotalValueDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "group total value")
	}
	return TotalValueDTO{TotalValue: total}, nil
}
