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

// JoineryItemService handles joinery items and their specialized items.
// Specialized items point at hardware or materials through a type
// discriminator; the target is resolved with a secondary fetch and a
// dangling reference resolves to nil rather than failing the read.
type JoineryItemService struct {
	repo         *repository.JoineryItemRepository
	qpRepo       *repository.QuoteProjectRepository
	hardwareRepo *repository.HardwareRepository
	materialRepo *repository.MaterialRepository
	qc           cache.Store
}

// NewJoineryItemService creates the joinery item service
func NewJoineryItemService(
	repo *repository.JoineryItemRepository,
	qpRepo *repository.QuoteProjectRepository,
	hardwareRepo *repository.HardwareRepository,
	materialRepo *repository.MaterialRepository,
	qc cache.Store,
) *JoineryItemService {
	return &JoineryItemService{
		repo:         repo,
		qpRepo:       qpRepo,
		hardwareRepo: hardwareRepo,
		materialRepo: materialRepo,
		qc:           qc,
	}
}

// CreateJoineryItemRequest carries a new joinery item
type CreateJoineryItemRequest struct {
	Name              string  `json:"name"`
	FaceMaterial1ID   *string `json:"face_material1_id"`
	FaceMaterial2ID   *string `json:"face_material2_id"`
	FaceMaterial3ID   *string `json:"face_material3_id"`
	FaceMaterial4ID   *string `json:"face_material4_id"`
	CarcassMaterialID *string `json:"carcass_material_id"`
	HingeHardwareID   *string `json:"hinge_hardware_id"`
	DrawerHardwareID  *string `json:"drawer_hardware_id"`
	Notes             string  `json:"notes"`
}

// UpdateJoineryItemRequest carries a partial joinery item update
type UpdateJoineryItemRequest struct {
	Name              *string `json:"name"`
	FaceMaterial1ID   *string `json:"face_material1_id"`
	FaceMaterial2ID   *string `json:"face_material2_id"`
	FaceMaterial3ID   *string `json:"face_material3_id"`
	FaceMaterial4ID   *string `json:"face_material4_id"`
	CarcassMaterialID *string `json:"carcass_material_id"`
	HingeHardwareID   *string `json:"hinge_hardware_id"`
	DrawerHardwareID  *string `json:"drawer_hardware_id"`
	Notes             *string `json:"notes"`
}

// CreateSpecializedItemRequest carries a new specialized item. Quantity
// defaults to 1 when omitted or zero.
type CreateSpecializedItemRequest struct {
	ItemType string  `json:"item_type"`
	ItemID   string  `json:"item_id"`
	Quantity float64 `json:"quantity"`
	Notes    string  `json:"notes"`
}

// ListByQuoteProject returns a quote/project's items in creation order,
// specialized references resolved.
func (s *JoineryItemService) ListByQuoteProject(ctx context.Context, quoteProjectID string) ([]entity.JoineryItem, error) {
	return cache.Through(ctx, s.qc, cache.NewKey(TagJoineryItem, "list", quoteProjectID), func(ctx context.Context) ([]entity.JoineryItem, error) {
		items, err := s.repo.FindByQuoteProject(ctx, quoteProjectID)
		if err != nil {
			return nil, err
		}
		for i := range items {
			s.resolveSpecialized(ctx, items[i].SpecializedItems)
		}
		return items, nil
	})
}

// Get returns one joinery item, specialized references resolved
func (s *JoineryItemService) Get(ctx context.Context, id string) (*entity.JoineryItem, error) {
	return cache.Through(ctx, s.qc, cache.NewKey(TagJoineryItem, "id", id), func(ctx context.Context) (*entity.JoineryItem, error) {
		item, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		s.resolveSpecialized(ctx, item.SpecializedItems)
		return item, nil
	})
}

// Create validates and stores a new item under a quote or project
func (s *JoineryItemService) Create(ctx context.Context, quoteProjectID string, req *CreateJoineryItemRequest) (*entity.JoineryItem, error) {
	errs := validation.Errors{}
	validation.Required(errs, "name", "Name", req.Name)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	qp, err := s.qpRepo.FindByID(ctx, quoteProjectID)
	if err != nil {
		return nil, err
	}

	item := &entity.JoineryItem{
		ID:                uuid.New().String()[:32],
		QuoteProjectID:    qp.ID,
		Name:              validation.Clean(req.Name),
		IsQuote:           qp.IsQuote,
		FaceMaterial1ID:   validation.CleanPtr(req.FaceMaterial1ID),
		FaceMaterial2ID:   validation.CleanPtr(req.FaceMaterial2ID),
		FaceMaterial3ID:   validation.CleanPtr(req.FaceMaterial3ID),
		FaceMaterial4ID:   validation.CleanPtr(req.FaceMaterial4ID),
		CarcassMaterialID: validation.CleanPtr(req.CarcassMaterialID),
		HingeHardwareID:   validation.CleanPtr(req.HingeHardwareID),
		DrawerHardwareID:  validation.CleanPtr(req.DrawerHardwareID),
		Notes:             req.Notes,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, conflictOnFK(err, "Unknown material or hardware reference on this item.")
	}

	invalidate(ctx, s.qc, TagJoineryItem, item.ID, "created")
	return item, nil
}

// Update validates and applies a partial update
func (s *JoineryItemService) Update(ctx context.Context, id string, req *UpdateJoineryItemRequest) (*entity.JoineryItem, error) {
	errs := validation.Errors{}
	if req.Name != nil {
		validation.Required(errs, "name", "Name", *req.Name)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = validation.Clean(*req.Name)
	}
	if req.FaceMaterial1ID != nil {
		item.FaceMaterial1ID = validation.CleanPtr(req.FaceMaterial1ID)
	}
	if req.FaceMaterial2ID != nil {
		item.FaceMaterial2ID = validation.CleanPtr(req.FaceMaterial2ID)
	}
	if req.FaceMaterial3ID != nil {
		item.FaceMaterial3ID = validation.CleanPtr(req.FaceMaterial3ID)
	}
	if req.FaceMaterial4ID != nil {
		item.FaceMaterial4ID = validation.CleanPtr(req.FaceMaterial4ID)
	}
	if req.CarcassMaterialID != nil {
		item.CarcassMaterialID = validation.CleanPtr(req.CarcassMaterialID)
	}
	if req.HingeHardwareID != nil {
		item.HingeHardwareID = validation.CleanPtr(req.HingeHardwareID)
	}
	if req.DrawerHardwareID != nil {
		item.DrawerHardwareID = validation.CleanPtr(req.DrawerHardwareID)
	}
	if req.Notes != nil {
		item.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, conflictOnFK(err, "Unknown material or hardware reference on this item.")
	}

	invalidate(ctx, s.qc, TagJoineryItem, item.ID, "updated")
	return item, nil
}

// Delete removes a joinery item with its cabinets and specialized items
func (s *JoineryItemService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return conflictOnFK(err, "Cannot delete: this item still has cabinets. Delete them first.")
	}
	invalidate(ctx, s.qc, TagJoineryItem, id, "deleted")
	return nil
}

// === Specialized items ===

// ListSpecialized returns an item's specialized items, targets resolved
func (s *JoineryItemService) ListSpecialized(ctx context.Context, joineryItemID string) ([]entity.SpecializedItem, error) {
	if _, err := s.repo.FindByID(ctx, joineryItemID); err != nil {
		return nil, err
	}
	rows, err := s.repo.FindSpecialized(ctx, joineryItemID)
	if err != nil {
		return nil, err
	}
	s.resolveSpecialized(ctx, rows)
	return rows, nil
}

// CreateSpecialized validates and stores a specialized item. The target
// must exist at creation time; it may later be deleted, in which case
// reads resolve the reference to nil.
func (s *JoineryItemService) CreateSpecialized(ctx context.Context, joineryItemID string, req *CreateSpecializedItemRequest) (*entity.SpecializedItem, error) {
	errs := validation.Errors{}
	validation.Required(errs, "item_id", "Item", req.ItemID)
	if req.ItemType != entity.SpecializedItemTypeHardware && req.ItemType != entity.SpecializedItemTypeMaterial {
		errs["item_type"] = "Item type must be hardware or material"
	}
	if req.Quantity < 0 {
		errs["quantity"] = "Quantity must be zero or greater"
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByID(ctx, joineryItemID); err != nil {
		return nil, err
	}
	if resolved, _ := s.resolveOne(ctx, req.ItemType, req.ItemID); resolved == nil {
		return nil, validation.Errors{"item_id": "Referenced item not found"}.Err()
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	row := &entity.SpecializedItem{
		ID:            uuid.New().String()[:32],
		JoineryItemID: joineryItemID,
		ItemType:      req.ItemType,
		ItemID:        req.ItemID,
		Quantity:      quantity,
		Notes:         req.Notes,
	}

	if err := s.repo.CreateSpecialized(ctx, row); err != nil {
		return nil, fmt.Errorf("create specialized item: %w", err)
	}

	row.Resolved, _ = s.resolveOne(ctx, row.ItemType, row.ItemID)
	invalidate(ctx, s.qc, TagJoineryItem, joineryItemID, "updated")
	return row, nil
}

// DeleteSpecialized removes a specialized item
func (s *JoineryItemService) DeleteSpecialized(ctx context.Context, id string) error {
	if err := s.repo.DeleteSpecialized(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, s.qc, TagJoineryItem, id, "updated")
	return nil
}

// resolveSpecialized fills Resolved on each row by the type dispatch
// table. Unknown types and dangling references are left nil.
func (s *JoineryItemService) resolveSpecialized(ctx context.Context, rows []entity.SpecializedItem) {
	for i := range rows {
		resolved, err := s.resolveOne(ctx, rows[i].ItemType, rows[i].ItemID)
		if err != nil {
			continue
		}
		rows[i].Resolved = resolved
	}
}

func (s *JoineryItemService) resolveOne(ctx context.Context, itemType, itemID string) (interface{}, error) {
	resolvers := map[string]func(context.Context, string) (interface{}, error){
		entity.SpecializedItemTypeHardware: func(ctx context.Context, id string) (interface{}, error) {
			hw, err := s.hardwareRepo.FindByID(ctx, id)
			if err != nil {
				return nil, err
			}
			return hw, nil
		},
		entity.SpecializedItemTypeMaterial: func(ctx context.Context, id string) (interface{}, error) {
			m, err := s.materialRepo.FindByID(ctx, id)
			if err != nil {
				return nil, err
			}
			return m, nil
		},
	}

	resolve, ok := resolvers[itemType]
	if !ok {
		return nil, nil
	}
	return resolve(ctx, itemID)
}
