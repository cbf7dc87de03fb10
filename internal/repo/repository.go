package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository implements the CRUD half of the store contract for any model
// with an integer "id" primary key and a "name" column. Absent rows are
// reported as gorm.ErrRecordNotFound.
type Repository[T any] struct {
	Base
}

// New binds a GORM connection to the model T.
func New[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{Base: NewBase(db)}
}

// Create inserts rec and fills in its generated id.
func (r *Repository[T]) Create(ctx context.Context, rec *T) error {
	if rec == nil {
		return errors.New("record is required")
	}
	return r.DB(ctx).Create(rec).Error
}

// List returns every row ordered by id. The result is never nil.
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	rows := make([]T, 0)
	if err := r.DB(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a row by its primary key.
func (r *Repository[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	var rec T
	if err := r.DB(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// FindByName loads the row owning name.
func (r *Repository[T]) FindByName(ctx context.Context, name string) (*T, error) {
	var rec T
	if err := r.DB(ctx).Where("name = ?", name).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update overwrites every mutable column of row id with the values in rec,
// zero values included. The id and created_at columns are never written.
func (r *Repository[T]) Update(ctx context.Context, id int64, rec *T) error {
	if rec == nil {
		return errors.New("record is required")
	}
	res := r.DB(ctx).
		Model(new(T)).
		Where("id = ?", id).
		Select("*").
		Omit("id", "created_at").
		Updates(rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes row id.
func (r *Repository[T]) Delete(ctx context.Context, id int64) error {
	res := r.DB(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
