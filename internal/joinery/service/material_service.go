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

// MaterialService handles material catalog operations
type MaterialService struct {
	repo *repository.MaterialRepository
	qc   cache.Store
}

// NewMaterialService creates the material service
func NewMaterialService(repo *repository.MaterialRepository, qc cache.Store) *MaterialService {
	return &MaterialService{repo: repo, qc: qc}
}

// CreateMaterialRequest carries a new material catalog item
type CreateMaterialRequest struct {
	SupplierID  *string `json:"supplier_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Dimension   string  `json:"dimension"`
	CostPerUnit float64 `json:"cost_per_unit"`
}

// UpdateMaterialRequest carries a partial material update
type UpdateMaterialRequest struct {
	SupplierID  *string  `json:"supplier_id"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Dimension   *string  `json:"dimension"`
	CostPerUnit *float64 `json:"cost_per_unit"`
}

// List returns materials ordered by name, optionally narrowed to a supplier
func (s *MaterialService) List(ctx context.Context, supplierID string) ([]entity.Material, error) {
	return cache.Through(ctx, s.qc, cache.NewKey(TagMaterial, "list", supplierID), func(ctx context.Context) ([]entity.Material, error) {
		return s.repo.FindAll(ctx, supplierID)
	})
}

// Get returns one material
func (s *MaterialService) Get(ctx context.Context, id string) (*entity.Material, error) {
	return cache.Through(ctx, s.qc, cache.NewKey(TagMaterial, "id", id), func(ctx context.Context) (*entity.Material, error) {
		return s.repo.FindByID(ctx, id)
	})
}

// Create validates and stores a new material
func (s *MaterialService) Create(ctx context.Context, req *CreateMaterialRequest) (*entity.Material, error) {
	errs := validation.Errors{}
	validation.Required(errs, "name", "Name", req.Name)
	validation.NonNegative(errs, "cost_per_unit", "Cost per unit", req.CostPerUnit)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	m := &entity.Material{
		ID:          uuid.New().String()[:32],
		SupplierID:  validation.CleanPtr(req.SupplierID),
		Name:        validation.Clean(req.Name),
		Description: req.Description,
		Dimension:   validation.Clean(req.Dimension),
		CostPerUnit: req.CostPerUnit,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create material: %w", err)
	}

	invalidate(ctx, s.qc, TagMaterial, m.ID, "created")
	return m, nil
}

// Update validates and applies a partial update
func (s *MaterialService) Update(ctx context.Context, id string, req *UpdateMaterialRequest) (*entity.Material, error) {
	errs := validation.Errors{}
	if req.Name != nil {
		validation.Required(errs, "name", "Name", *req.Name)
	}
	if req.CostPerUnit != nil {
		validation.NonNegative(errs, "cost_per_unit", "Cost per unit", *req.CostPerUnit)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SupplierID != nil {
		m.SupplierID = validation.CleanPtr(req.SupplierID)
	}
	if req.Name != nil {
		m.Name = validation.Clean(*req.Name)
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.Dimension != nil {
		m.Dimension = validation.Clean(*req.Dimension)
	}
	if req.CostPerUnit != nil {
		m.CostPerUnit = *req.CostPerUnit
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("update material: %w", err)
	}

	invalidate(ctx, s.qc, TagMaterial, m.ID, "updated")
	return m, nil
}

// Delete removes a material. Materials referenced by joinery work are
// protected by the store and rejected with a conflict.
func (s *MaterialService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return conflictOnFK(err, "Cannot delete material: this material is used by joinery items or cabinets. Remove those references first.")
	}
	invalidate(ctx, s.qc, TagMaterial, id, "deleted")
	return nil
}
