package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/joinery/internal/joinery/entity"
	"github.com/bitfantasy/joinery/internal/joinery/store"
	"gorm.io/gorm"
)

// JoineryItemRepository is the joinery item + specialized item data access
// layer. Item reads embed the material/hardware roles and the cabinet
// tree; the polymorphic specialized references are resolved by the
// service in a secondary fetch.
type JoineryItemRepository struct {
	store *store.Store
}

func NewJoineryItemRepository(st *store.Store) *JoineryItemRepository {
	return &JoineryItemRepository{store: st}
}

func (r *JoineryItemRepository) preloadAll(db *gorm.DB) *gorm.DB {
	return db.
		Preload("FaceMaterial1").
		Preload("FaceMaterial2").
		Preload("FaceMaterial3").
		Preload("FaceMaterial4").
		Preload("CarcassMaterial").
		Preload("HingeHardware").
		Preload("DrawerHardware").
		Preload("Cabinets").
		Preload("Cabinets.Template").
		Preload("Cabinets.Hardware").
		Preload("Cabinets.Hardware.Item").
		Preload("Cabinets.Materials").
		Preload("Cabinets.Materials.Item").
		Preload("SpecializedItems")
}

// FindByQuoteProject returns every item of one quote/project in creation
// order, fully embedded.
func (r *JoineryItemRepository) FindByQuoteProject(ctx context.Context, quoteProjectID string) ([]entity.JoineryItem, error) {
	if !r.store.Available() {
		return []entity.JoineryItem{}, nil
	}
	var items []entity.JoineryItem
	err := r.preloadAll(r.store.DB().WithContext(ctx)).
		Where("quote_project_id = ?", quoteProjectID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *JoineryItemRepository) FindByID(ctx context.Context, id string) (*entity.JoineryItem, error) {
	if !r.store.Available() {
		return nil, ErrNotFound
	}
	var item entity.JoineryItem
	err := r.preloadAll(r.store.DB().WithContext(ctx)).
		Where("id = ?", id).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *JoineryItemRepository) Create(ctx context.Context, item *entity.JoineryItem) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Create(item).Error
}

func (r *JoineryItemRepository) Update(ctx context.Context, item *entity.JoineryItem) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Omit("Cabinets", "SpecializedItems").Save(item).Error
}

func (r *JoineryItemRepository) Delete(ctx context.Context, id string) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Where("id = ?", id).Delete(&entity.JoineryItem{}).Error
}

// === Specialized items ===

func (r *JoineryItemRepository) FindSpecialized(ctx context.Context, joineryItemID string) ([]entity.SpecializedItem, error) {
	if !r.store.Available() {
		return []entity.SpecializedItem{}, nil
	}
	var rows []entity.SpecializedItem
	err := r.store.DB().WithContext(ctx).
		Where("joinery_item_id = ?", joineryItemID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *JoineryItemRepository) CreateSpecialized(ctx context.Context, row *entity.SpecializedItem) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Create(row).Error
}

func (r *JoineryItemRepository) DeleteSpecialized(ctx context.Context, id string) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Where("id = ?", id).Delete(&entity.SpecializedItem{}).Error
}
