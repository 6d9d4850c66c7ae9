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

// HardwareService handles hardware catalog operations
type HardwareService struct {
	repo *repository.HardwareRepository
	qc   cache.Store
}

// NewHardwareService creates the hardware service
func NewHardwareService(repo *repository.HardwareRepository, qc cache.Store) *HardwareService {
	return &HardwareService{repo: repo, qc: qc}
}

// CreateHardwareRequest carries a new hardware catalog item
type CreateHardwareRequest struct {
	SupplierID  *string `json:"supplier_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Dimension   string  `json:"dimension"`
	CostPerUnit float64 `json:"cost_per_unit"`
}

// UpdateHardwareRequest carries a partial hardware update
type UpdateHardwareRequest struct {
	SupplierID  *string  `json:"supplier_id"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Dimension   *string  `json:"dimension"`
	CostPerUnit *float64 `json:"cost_per_unit"`
}

// List returns hardware ordered by name, optionally narrowed to a supplier
func (s *HardwareService) List(ctx context.Context, supplierID string) ([]entity.Hardware, error) {
	return cache.Through(ctx, s.qc, cache.NewKey(TagHardware, "list", supplierID), func(ctx context.Context) ([]entity.Hardware, error) {
		return s.repo.FindAll(ctx, supplierID)
	})
}

// Get returns one hardware item
func (s *HardwareService) Get(ctx context.Context, id string) (*entity.Hardware, error) {
	return cache.Through(ctx, s.qc, cache.NewKey(TagHardware, "id", id), func(ctx context.Context) (*entity.Hardware, error) {
		return s.repo.FindByID(ctx, id)
	})
}

// Create validates and stores a new hardware item
func (s *HardwareService) Create(ctx context.Context, req *CreateHardwareRequest) (*entity.Hardware, error) {
	errs := validation.Errors{}
	validation.Required(errs, "name", "Name", req.Name)
	validation.NonNegative(errs, "cost_per_unit", "Cost per unit", req.CostPerUnit)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	hw := &entity.Hardware{
		ID:          uuid.New().String()[:32],
		SupplierID:  validation.CleanPtr(req.SupplierID),
		Name:        validation.Clean(req.Name),
		Description: req.Description,
		Dimension:   validation.Clean(req.Dimension),
		CostPerUnit: req.CostPerUnit,
	}

	if err := s.repo.Create(ctx, hw); err != nil {
		return nil, fmt.Errorf("create hardware: %w", err)
	}

	invalidate(ctx, s.qc, TagHardware, hw.ID, "created")
	return hw, nil
}

// Update validates and applies a partial update
func (s *HardwareService) Update(ctx context.Context, id string, req *UpdateHardwareRequest) (*entity.Hardware, error) {
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

	hw, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SupplierID != nil {
		hw.SupplierID = validation.CleanPtr(req.SupplierID)
	}
	if req.Name != nil {
		hw.Name = validation.Clean(*req.Name)
	}
	if req.Description != nil {
		hw.Description = *req.Description
	}
	if req.Dimension != nil {
		hw.Dimension = validation.Clean(*req.Dimension)
	}
	if req.CostPerUnit != nil {
		hw.CostPerUnit = *req.CostPerUnit
	}

	if err := s.repo.Update(ctx, hw); err != nil {
		return nil, fmt.Errorf("update hardware: %w", err)
	}

	invalidate(ctx, s.qc, TagHardware, hw.ID, "updated")
	return hw, nil
}

// Delete removes a hardware item. Items referenced by joinery work are
// protected by the store and rejected with a conflict.
func (s *HardwareService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return conflictOnFK(err, "Cannot delete hardware: this item is used by joinery items or cabinets. Remove those references first.")
	}
	invalidate(ctx, s.qc, TagHardware, id, "deleted")
	return nil
}
