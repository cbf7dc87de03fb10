package groups

import (
	"context"
	"strings"

	"github.com/angelmondragon/stockroom/internal/catalog"
	"github.com/angelmondragon/stockroom/pkg/db/models"
	pkgerrors "github.com/angelmondragon/stockroom/pkg/errors"
)

// Messages are the client-facing texts for group operations.
var Messages = catalog.MessagesFor("Group")

// Service exposes group operations.
type Service interface {
	Create(ctx context.Context, input GroupInput) (*GroupDTO, error)
	Get(ctx context.Context, id int64) (*GroupDTO, error)
	List(ctx context.Context) ([]GroupDTO, error)
	Update(ctx context.Context, id int64, input GroupInput) (string, error)
	Delete(ctx context.Context, id int64) (string, error)
}

type service struct {
	catalog *catalog.Service[models.Group]
}

// NewService builds a group service over the provided store.
func NewService(store catalog.Store[models.Group]) (Service, error) {
	svc, err := catalog.NewService(store, Messages)
	if err != nil {
		return nil, err
	}
	return &service{catalog: svc}, nil
}

func (s *service) Create(ctx context.Context, input GroupInput) (*GroupDTO, error) {
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

func (s *service) Get(ctx context.Context, id int64) (*GroupDTO, error) {
	g, err := s.catalog.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := FromModel(*g)
	return &dto, nil
}

func (s *service) List(ctx context.Context) ([]GroupDTO, error) {
	rows, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	return FromModels(rows), nil
}

func (s *service) Update(ctx context.Context, id int64, input GroupInput) (string, error) {
	if err := validateInput(input); err != nil {
		return "", err
	}
	return s.catalog.Update(ctx, id, input.ToModel())
}

func (s *service) Delete(ctx context.Context, id int64) (string, error) {
	return s.catalog.Delete(ctx, id)
}

func validateInput(input GroupInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	return nil
}
