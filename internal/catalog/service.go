// Package catalog holds the create/read/update/delete rules shared by every
// named entity in the inventory: names are unique per collection and
// identities never change once the store assigns them.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/stockroom/pkg/db"
	pkgerrors "github.com/angelmondragon/stockroom/pkg/errors"
)

// Entity is a persisted record with a store-assigned id and a unique name.
type Entity interface {
	Key() int64
	UniqueName() string
}

// Store is the persistence contract. Absent rows surface as
// gorm.ErrRecordNotFound.
type Store[T Entity] interface {
	Create(ctx context.Context, rec *T) error
	List(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id int64) (*T, error)
	FindByName(ctx context.Context, name string) (*T, error)
	Update(ctx context.Context, id int64, rec *T) error
	Delete(ctx context.Context, id int64) error
}

// Messages are the client-facing texts for one entity kind.
type Messages struct {
	Duplicate         string
	DuplicateOnUpdate string
	NotFound          string
	Updated           string
	Deleted           string
}

// MessagesFor derives the standard texts from a singular entity name such as
// "Group".
func MessagesFor(entity string) Messages {
	lower := strings.ToLower(entity)
	return Messages{
		Duplicate:         entity + " with this name already exists",
		DuplicateOnUpdate: "Another " + lower + " with this name already exists",
		NotFound:          entity + " not found",
		Updated:           entity + " updated successfully",
		Deleted:           entity + " deleted successfully",
	}
}

// Service implements the shared CRUD rules over a Store.
type Service[T Entity] struct {
	store Store[T]
	msgs  Messages
}

func NewService[T Entity](store Store[T], msgs Messages) (*Service[T], error) {
	if store == nil {
		return nil, fmt.Errorf("store required")
	}
	return &Service[T]{store: store, msgs: msgs}, nil
}

// Create rejects a taken name before touching the store. Two concurrent
// creates can both pass the lookup; the unique index then turns the loser
// into the same conflict.
func (s *Service[T]) Create(ctx context.Context, rec *T) (*T, error) {
	if rec == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request body is required")
	}
	taken, err := s.nameOwner(ctx, (*rec).UniqueName())
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, s.msgs.Duplicate)
	}

	if err := s.store.Create(ctx, rec); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, s.msgs.Duplicate)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create record")
	}
	return rec, nil
}

func (s *Service[T]) Get(ctx context.Context, id int64) (*T, error) {
	rec, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(err, "load record")
	}
	return rec, nil
}

// List returns every record ordered by id; never nil.
func (s *Service[T]) List(ctx context.Context) ([]T, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list records")
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

// Update overwrites every mutable field of record id. Keeping the current
// name is allowed; taking another record's name is a conflict.
func (s *Service[T]) Update(ctx context.Context, id int64, rec *T) (string, error) {
	if rec == nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "request body is required")
	}
	if _, err := s.store.FindByID(ctx, id); err != nil {
		return "", s.lookupError(err, "load record")
	}

	owner, err := s.nameOwner(ctx, (*rec).UniqueName())
	if err != nil {
		return "", err
	}
	if owner != nil && (*owner).Key() != id {
		return "", pkgerrors.New(pkgerrors.CodeConflict, s.msgs.DuplicateOnUpdate)
	}

	if err := s.store.Update(ctx, id, rec); err != nil {
		if db.IsUniqueViolation(err, "") {
			return "", pkgerrors.Wrap(pkgerrors.CodeConflict, err, s.msgs.DuplicateOnUpdate)
		}
		return "", s.lookupError(err, "update record")
	}
	return s.msgs.Updated, nil
}

func (s *Service[T]) Delete(ctx context.Context, id int64) (string, error) {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		return "", s.lookupError(err, "load record")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return "", s.lookupError(err, "delete record")
	}
	return s.msgs.Deleted, nil
}

// NotFound builds the typed absence error for this entity kind.
func (s *Service[T]) NotFound() error {
	return pkgerrors.New(pkgerrors.CodeNotFound, s.msgs.NotFound)
}

func (s *Service[T]) nameOwner(ctx context.Context, name string) (*T, error) {
	owner, err := s.store.FindByName(ctx, name)
	if err == nil {
		return owner, nil
	}
	if db.IsNotFound(err) {
		return nil, nil
	}
	return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup name")
}

func (s *Service[T]) lookupError(err error, op string) error {
	if db.IsNotFound(err) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, s.msgs.NotFound)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, op)
}
