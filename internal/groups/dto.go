package groups

import "github.com/angelmondragon/stockroom/pkg/db/models"

// GroupDTO is the wire shape of a group.
type GroupDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GroupInput is the body accepted by create and update. ID is the
// "unassigned" placeholder and is ignored.
type GroupInput struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// FromModel maps a persisted group to its wire shape.
func FromModel(g models.Group) GroupDTO {
	return GroupDTO{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
	}
}

// FromModels maps a slice of groups; the result is never nil.
func FromModels(rows []models.Group) []GroupDTO {
	out := make([]GroupDTO, 0, len(rows))
	for _, g := range rows {
		out = append(out, FromModel(g))
	}
	return out
}

// ToModel builds the record to persist from the input.
func (in GroupInput) ToModel() *models.Group {
	return &models.Group{
		Name:        in.Name,
		Description: in.Description,
	}
}
