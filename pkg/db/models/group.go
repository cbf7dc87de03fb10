package models

import "time"

// Group is a named bucket of products.
type Group struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;not null;uniqueIndex:product_groups_name_key"`
	Description string    `gorm:"column:description;not null;default:''"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Group) TableName() string {
	return "product_groups"
}

// Key returns the identity assigned by the store.
func (g Group) Key() int64 {
	return g.ID
}

// UniqueName returns the value that must be unique across groups.
func (g Group) UniqueName() string {
	return g.Name
}
