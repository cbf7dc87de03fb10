package products

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/stockroom/pkg/db/models"
)

// ProductDTO is the wire shape of a product. Price is emitted as a decimal
// string.
type ProductDTO struct {
	ID           int64           `json:"id"`
	GroupID      int64           `json:"groupId"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Manufacturer string          `json:"manufacturer"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
}

// ProductInput is the body accepted by create and update. Price may be a JSON
// string or number. ID is ignored.
type ProductInput struct {
	ID           int64           `json:"id"`
	GroupID      int64           `json:"groupId"`
	Name         string          `json:"name" validate:"required"`
	Description  string          `json:"description"`
	Manufacturer string          `json:"manufacturer"`
	Quantity     int             `json:"quantity" validate:"gte=0"`
	Price        decimal.Decimal `json:"price" validate:"gte=0"`
}

// AmountInput is the body of the add and sell stock operations.
type AmountInput struct {
	Amount int `json:"amount"`
}

func FromModel(p models.Product) ProductDTO {
	return ProductDTO{
		ID:           p.ID,
		GroupID:      p.GroupID,
		Name:         p.Name,
		Description:  p.Description,
		Manufacturer: p.Manufacturer,
		Quantity:     p.Quantity,
		Price:        p.Price,
	}
}

// FromModels maps a slice of products; the result is never nil.
func FromModels(rows []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for _, p := range rows {
		out = append(out, FromModel(p))
	}
	return out
}

func (in ProductInput) ToModel() *models.Product {
	return &models.Product{
		GroupID:      in.GroupID,
		Name:         in.Name,
		Description:  in.Description,
		Manufacturer: in.Manufacturer,
		Quantity:     in.Quantity,
		Price:        in.Price,
	}
}
