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

// CabinetService handles cabinet instances within joinery items
type CabinetService struct {
	repo     *repository.CabinetRepository
	itemRepo *repository.JoineryItemRepository
	tplRepo  *repository.TemplateCabinetRepository
	qc       cache.Store
}

// NewCabinetService creates the cabinet service
func NewCabinetService(
	repo *repository.CabinetRepository,
	itemRepo *repository.JoineryItemRepository,
	tplRepo *repository.TemplateCabinetRepository,
	qc cache.Store,
) *CabinetService {
	return &CabinetService{repo: repo, itemRepo: itemRepo, tplRepo: tplRepo, qc: qc}
}

// CabinetHardwareInput is one hardware line on a cabinet
type CabinetHardwareInput struct {
	HardwareID string  `json:"hardware_id"`
	Quantity   float64 `json:"quantity"`
}

// CabinetMaterialInput is one material line on a cabinet
type CabinetMaterialInput struct {
	MaterialID string  `json:"material_id"`
	Quantity   float64 `json:"quantity"`
}

// CreateCabinetRequest carries a new cabinet instance. Quantity defaults
// to 1 when omitted or zero.
type CreateCabinetRequest struct {
	TemplateCabinetID *string                `json:"template_cabinet_id"`
	Width             *float64               `json:"width"`
	Height            *float64               `json:"height"`
	Depth             *float64               `json:"depth"`
	Quantity          int                    `json:"quantity"`
	Notes             string                 `json:"notes"`
	Hardware          []CabinetHardwareInput `json:"hardware"`
	Materials         []CabinetMaterialInput `json:"materials"`
}

// UpdateCabinetRequest carries a partial cabinet update. Non-nil Hardware
// or Materials replace the cabinet's lines wholesale.
type UpdateCabinetRequest struct {
	TemplateCabinetID *string                 `json:"template_cabinet_id"`
	Width             *float64                `json:"width"`
	Height            *float64                `json:"height"`
	Depth             *float64                `json:"depth"`
	Quantity          *int                    `json:"quantity"`
	Notes             *string                 `json:"notes"`
	Hardware          *[]CabinetHardwareInput `json:"hardware"`
	Materials         *[]CabinetMaterialInput `json:"materials"`
}

// ListByItem returns a joinery item's cabinets in creation order
func (s *CabinetService) ListByItem(ctx context.Context, joineryItemID string) ([]entity.Cabinet, error) {
	return cache.Through(ctx, s.qc, cache.NewKey(TagCabinet, "list", joineryItemID), func(ctx context.Context) ([]entity.Cabinet, error) {
		return s.repo.FindByJoineryItem(ctx, joineryItemID)
	})
}

// Get returns one cabinet
func (s *CabinetService) Get(ctx context.Context, id string) (*entity.Cabinet, error) {
	return cache.Through(ctx, s.qc, cache.NewKey(TagCabinet, "id", id), func(ctx context.Context) (*entity.Cabinet, error) {
		return s.repo.FindByID(ctx, id)
	})
}

// Create validates and stores a cabinet under a joinery item
func (s *CabinetService) Create(ctx context.Context, joineryItemID string, req *CreateCabinetRequest) (*entity.Cabinet, error) {
	errs := validation.Errors{}
	if req.Width != nil {
		validation.Positive(errs, "width", "Width", *req.Width)
	}
	if req.Height != nil {
		validation.Positive(errs, "height", "Height", *req.Height)
	}
	if req.Depth != nil {
		validation.Positive(errs, "depth", "Depth", *req.Depth)
	}
	if req.Quantity < 0 {
		errs["quantity"] = "Quantity must be zero or greater"
	}
	if req.TemplateCabinetID != nil && *req.TemplateCabinetID != "" {
		if _, err := s.tplRepo.FindByID(ctx, *req.TemplateCabinetID); err != nil {
			errs["template_cabinet_id"] = "Template not found"
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	if _, err := s.itemRepo.FindByID(ctx, joineryItemID); err != nil {
		return nil, err
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	cab := &entity.Cabinet{
		ID:                uuid.New().String()[:32],
		JoineryItemID:     joineryItemID,
		TemplateCabinetID: validation.CleanPtr(req.TemplateCabinetID),
		Width:             req.Width,
		Height:            req.Height,
		Depth:             req.Depth,
		Quantity:          quantity,
		Notes:             req.Notes,
	}

	if err := s.repo.Create(ctx, cab); err != nil {
		return nil, fmt.Errorf("create cabinet: %w", err)
	}

	if len(req.Hardware) > 0 {
		if err := s.repo.ReplaceHardware(ctx, cab.ID, hardwareRows(cab.ID, req.Hardware)); err != nil {
			return nil, conflictOnFK(err, "Unknown hardware reference on this cabinet.")
		}
	}
	if len(req.Materials) > 0 {
		if err := s.repo.ReplaceMaterials(ctx, cab.ID, materialRows(cab.ID, req.Materials)); err != nil {
			return nil, conflictOnFK(err, "Unknown material reference on this cabinet.")
		}
	}

	s.invalidateAll(ctx, cab.ID, "created")
	return s.repo.FindByID(ctx, cab.ID)
}

// Update validates and applies a partial update
func (s *CabinetService) Update(ctx context.Context, id string, req *UpdateCabinetRequest) (*entity.Cabinet, error) {
	errs := validation.Errors{}
	if req.Width != nil {
		validation.Positive(errs, "width", "Width", *req.Width)
	}
	if req.Height != nil {
		validation.Positive(errs, "height", "Height", *req.Height)
	}
	if req.Depth != nil {
		validation.Positive(errs, "depth", "Depth", *req.Depth)
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		errs["quantity"] = "Quantity must be zero or greater"
	}
	if req.TemplateCabinetID != nil && *req.TemplateCabinetID != "" {
		if _, err := s.tplRepo.FindByID(ctx, *req.TemplateCabinetID); err != nil {
			errs["template_cabinet_id"] = "Template not found"
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	cab, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.TemplateCabinetID != nil {
		cab.TemplateCabinetID = validation.CleanPtr(req.TemplateCabinetID)
	}
	if req.Width != nil {
		cab.Width = req.Width
	}
	if req.Height != nil {
		cab.Height = req.Height
	}
	if req.Depth != nil {
		cab.Depth = req.Depth
	}
	if req.Quantity != nil {
		cab.Quantity = *req.Quantity
	}
	if req.Notes != nil {
		cab.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, cab); err != nil {
		return nil, fmt.Errorf("update cabinet: %w", err)
	}

	if req.Hardware != nil {
		if err := s.repo.ReplaceHardware(ctx, cab.ID, hardwareRows(cab.ID, *req.Hardware)); err != nil {
			return nil, conflictOnFK(err, "Unknown hardware reference on this cabinet.")
		}
	}
	if req.Materials != nil {
		if err := s.repo.ReplaceMaterials(ctx, cab.ID, materialRows(cab.ID, *req.Materials)); err != nil {
			return nil, conflictOnFK(err, "Unknown material reference on this cabinet.")
		}
	}

	s.invalidateAll(ctx, cab.ID, "updated")
	return s.repo.FindByID(ctx, cab.ID)
}

// Delete removes a cabinet and its hardware/material lines
func (s *CabinetService) Delete(ctx context.Context, id string) error {
	cab, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.ReplaceHardware(ctx, id, nil); err != nil {
		return err
	}
	if err := s.repo.ReplaceMaterials(ctx, id, nil); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateAll(ctx, cab.ID, "deleted")
	return nil
}

// invalidateAll evicts cabinet reads plus item reads, which embed the
// cabinet tree.
func (s *CabinetService) invalidateAll(ctx context.Context, id, action string) {
	if s.qc != nil {
		s.qc.Invalidate(ctx, TagJoineryItem)
	}
	invalidate(ctx, s.qc, TagCabinet, id, action)
}

func hardwareRows(cabinetID string, inputs []CabinetHardwareInput) []entity.CabinetHardware {
	rows := make([]entity.CabinetHardware, 0, len(inputs))
	for _, in := range inputs {
		quantity := in.Quantity
		if quantity == 0 {
			quantity = 1
		}
		rows = append(rows, entity.CabinetHardware{
			ID:         uuid.New().String()[:32],
			CabinetID:  cabinetID,
			HardwareID: in.HardwareID,
			Quantity:   quantity,
		})
	}
	return rows
}

func materialRows(cabinetID string, inputs []CabinetMaterialInput) []entity.CabinetMaterial {
	rows := make([]entity.CabinetMaterial, 0, len(inputs))
	for _, in := range inputs {
		quantity := in.Quantity
		if quantity == 0 {
			quantity = 1
		}
		rows = append(rows, entity.CabinetMaterial{
			ID:         uuid.New().String()[:32],
			CabinetID:  cabinetID,
			MaterialID: in.MaterialID,
			Quantity:   quantity,
		})
	}
	return rows
}
