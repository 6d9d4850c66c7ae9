package service

import (
	"context"
	"fmt"

	"github.com/bitfantasy/joinery/internal/joinery/cache"
	"github.com/bitfantasy/joinery/internal/joinery/entity"
	"github.com/bitfantasy/joinery/internal/joinery/repository"
	"github.com/bitfantasy/joinery/internal/joinery/validation"
	"github.com/google/uuid"
)

// TemplateCabinetService handles the standard cabinet catalog
type TemplateCabinetService struct {
	repo *repository.TemplateCabinetRepository
	qc   cache.Store
}

// NewTemplateCabinetService creates the template cabinet service
func NewTemplateCabinetService(repo *repository.TemplateCabinetRepository, qc cache.Store) *TemplateCabinetService {
	return &TemplateCabinetService{repo: repo, qc: qc}
}

// CreateTemplateCabinetRequest carries a new catalog template
type CreateTemplateCabinetRequest struct {
	Category  string  `json:"category"`
	Type      string  `json:"type"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Depth     float64 `json:"depth"`
	DoorQty   int     `json:"door_qty"`
	DrawerQty int     `json:"drawer_qty"`
	ShelfQty  int     `json:"shelf_qty"`
	HingeQty  int     `json:"hinge_qty"`
	Notes     string  `json:"notes"`
}

// UpdateTemplateCabinetRequest carries a partial template update
type UpdateTemplateCabinetRequest struct {
	Category  *string  `json:"category"`
	Type      *string  `json:"type"`
	Width     *float64 `json:"width"`
	Height    *float64 `json:"height"`
	Depth     *float64 `json:"depth"`
	DoorQty   *int     `json:"door_qty"`
	DrawerQty *int     `json:"drawer_qty"`
	ShelfQty  *int     `json:"shelf_qty"`
	HingeQty  *int     `json:"hinge_qty"`
	Notes     *string  `json:"notes"`
}

func validCategory(category string) bool {
	for _, c := range entity.CabinetCategories {
		if c == category {
			return true
		}
	}
	return false
}

// List returns templates in catalog order, optionally narrowed to a category
func (s *TemplateCabinetService) List(ctx context.Context, category string) ([]entity.TemplateCabinet, error) {
	return cache.Through(ctx, s.qc, cache.NewKey(TagTemplateCabinet, "list", category), func(ctx context.Context) ([]entity.TemplateCabinet, error) {
		return s.repo.FindAll(ctx, category)
	})
}

// Get returns one template
func (s *TemplateCabinetService) Get(ctx context.Context, id string) (*entity.TemplateCabinet, error) {
	return cache.Through(ctx, s.qc, cache.NewKey(TagTemplateCabinet, "id", id), func(ctx context.Context) (*entity.TemplateCabinet, error) {
		return s.repo.FindByID(ctx, id)
	})
}

// Create validates and stores a new template. Dimensions must be strictly
// positive and the category must be a known one.
func (s *TemplateCabinetService) Create(ctx context.Context, req *CreateTemplateCabinetRequest) (*entity.TemplateCabinet, error) {
	errs := validation.Errors{}
	validation.Required(errs, "category", "Category", req.Category)
	validation.Required(errs, "type", "Type", req.Type)
	if req.Category != "" && !validCategory(req.Category) {
		errs["category"] = "Unknown cabinet category"
	}
	validation.Positive(errs, "width", "Width", req.Width)
	validation.Positive(errs, "height", "Height", req.Height)
	validation.Positive(errs, "depth", "Depth", req.Depth)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	tpl := &entity.TemplateCabinet{
		ID:        uuid.New().String()[:32],
		Category:  req.Category,
		Type:      validation.Clean(req.Type),
		Width:     req.Width,
		Height:    req.Height,
		Depth:     req.Depth,
		DoorQty:   req.DoorQty,
		DrawerQty: req.DrawerQty,
		ShelfQty:  req.ShelfQty,
		HingeQty:  req.HingeQty,
		Notes:     req.Notes,
	}

	if err := s.repo.Create(ctx, tpl); err != nil {
		return nil, fmt.Errorf("create template cabinet: %w", err)
	}

	invalidate(ctx, s.qc, TagTemplateCabinet, tpl.ID, "created")
	return tpl, nil
}

// Update validates and applies a partial update
func (s *TemplateCabinetService) Update(ctx context.Context, id string, req *UpdateTemplateCabinetRequest) (*entity.TemplateCabinet, error) {
	errs := validation.Errors{}
	if req.Category != nil && !validCategory(*req.Category) {
		errs["category"] = "Unknown cabinet category"
	}
	if req.Type != nil {
		validation.Required(errs, "type", "Type", *req.Type)
	}
	if req.Width != nil {
		validation.Positive(errs, "width", "Width", *req.Width)
	}
	if req.Height != nil {
		validation.Positive(errs, "height", "Height", *req.Height)
	}
	if req.Depth != nil {
		validation.Positive(errs, "depth", "Depth", *req.Depth)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	tpl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Category != nil {
		tpl.Category = *req.Category
	}
	if req.Type != nil {
		tpl.Type = validation.Clean(*req.Type)
	}
	if req.Width != nil {
		tpl.Width = *req.Width
	}
	if req.Height != nil {
		tpl.Height = *req.Height
	}
	if req.Depth != nil {
		tpl.Depth = *req.Depth
	}
	if req.DoorQty != nil {
		tpl.DoorQty = *req.DoorQty
	}
	if req.DrawerQty != nil {
		tpl.DrawerQty = *req.DrawerQty
	}
	if req.ShelfQty != nil {
		tpl.ShelfQty = *req.ShelfQty
	}
	if req.HingeQty != nil {
		tpl.HingeQty = *req.HingeQty
	}
	if req.Notes != nil {
		tpl.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, tpl); err != nil {
		return nil, fmt.Errorf("update template cabinet: %w", err)
	}

	invalidate(ctx, s.qc, TagTemplateCabinet, tpl.ID, "updated")
	return tpl, nil
}

// Delete removes a template. Templates referenced by cabinet instances
// are protected by the store and rejected with a conflict.
func (s *TemplateCabinetService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return conflictOnFK(err, "Cannot delete template: cabinets have been created from it. Delete those cabinets first.")
	}
	invalidate(ctx, s.qc, TagTemplateCabinet, id, "deleted")
	return nil
}
