package groups

import (
	"gorm.io/gorm"

	"github.com/angelmondragon/stockroom/internal/repo"
	"github.com/angelmondragon/stockroom/pkg/db/models"
)

// Repository persists groups in the product_groups table.
type Repository = repo.Repository[models.Group]

// NewRepository binds a GORM DB to group operations.
func NewRepository(db *gorm.DB) *Repository {
	return repo.New[models.Group](db)
}
