package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a stocked item. GroupID is not enforced as a foreign key;
// deleting a group leaves its products pointing at the old id.
type Product struct {
	ID           int64           `gorm:"column:id;primaryKey;autoIncrement"`
	GroupID      int64           `gorm:"column:group_id;not null;index"`
	Name         string          `gorm:"column:name;not null;uniqueIndex:products_name_key"`
	Description  string          `gorm:"column:description;not null;default:''"`
	Manufacturer string          `gorm:"column:manufacturer;not null;default:''"`
	Quantity     int             `gorm:"column:quantity;type:bigint;not null;default:0"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric;not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}

// Key returns the identity assigned by the store.
func (p Product) Key() int64 {
	return p.ID
}

// UniqueName returns the value that must be unique across products.
func (p Product) UniqueName() string {
	return p.Name
}

// StockValue returns quantity * price.
func (p Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
