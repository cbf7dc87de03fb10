package products

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/stockroom/internal/repo"
	"github.com/angelmondragon/stockroom/pkg/db/models"
)

// ErrInsufficientStock is returned by SellQuantity when the row exists but
// holds fewer units than requested.
var ErrInsufficientStock = errors.New("insufficient stock")

// Repository persists products and answers the aggregate queries.
type Repository struct {
	*repo.Repository[models.Product]
}

// NewRepository binds a GORM DB to product operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Repository: repo.New[models.Product](db)}
}

// Search returns products whose name, description or manufacturer contains
// query, ignoring case. An empty query matches everything.
func (r *Repository) Search(ctx context.Context, query string) ([]models.Product, error) {
	pattern := "%" + escapeLike(strings.ToLower(strings.TrimSpace(query))) + "%"
	rows := make([]models.Product, 0)
	err := r.DB(ctx).
		Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(manufacturer) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByGroup returns the products referencing groupID, ordered by id.
func (r *Repository) ListByGroup(ctx context.Context, groupID int64) ([]models.Product, error) {
	rows := make([]models.Product, 0)
	if err := r.DB(ctx).Where("group_id = ?", groupID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// TotalValue sums quantity * price over every product. Zero when empty.
func (r *Repository) TotalValue(ctx context.Context) (decimal.Decimal, error) {
	return r.sumValue(r.DB(ctx).Model(&models.Product{}))
}

// TotalValueByGroup sums quantity * price over the products of groupID.
func (r *Repository) TotalValueByGroup(ctx context.Context, groupID int64) (decimal.Decimal, error) {
	return r.sumValue(r.DB(ctx).Model(&models.Product{}).Where("group_id = ?", groupID))
}

// sumValue adds the stock values in Go. SQL SUM over a SQLite price column
// runs in float64.
func (r *Repository) sumValue(query *gorm.DB) (decimal.Decimal, error) {
	var rows []models.Product
	if err := query.Select("quantity", "price").Find(&rows).Error; err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, p := range rows {
		total = total.Add(p.StockValue())
	}
	return total, nil
}

// AddQuantity adds amount to the stock of product id in one statement.
// Negative amounts are applied as given.
func (r *Repository) AddQuantity(ctx context.Context, id int64, amount int) error {
	res := r.DB(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SellQuantity removes amount units from product id only when at least
// amount units are in stock, so concurrent sells cannot overdraw.
func (r *Repository) SellQuantity(ctx context.Context, id int64, amount int) error {
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).
			Where("id = ? AND quantity >= ?", id, amount).
			Update("quantity", gorm.Expr("quantity - ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		var count int64
		if err := tx.Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrInsufficientStock
	})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
