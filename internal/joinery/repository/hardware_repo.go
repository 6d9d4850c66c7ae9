package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/joinery/internal/joinery/entity"
	"github.com/bitfantasy/joinery/internal/joinery/store"
	"gorm.io/gorm"
)

// HardwareRepository is the hardware catalog data access layer
type HardwareRepository struct {
	store *store.Store
}

func NewHardwareRepository(st *store.Store) *HardwareRepository {
	return &HardwareRepository{store: st}
}

// FindAll returns hardware ordered by name with the supplier joined.
// An optional supplier id narrows the result.
func (r *HardwareRepository) FindAll(ctx context.Context, supplierID string) ([]entity.Hardware, error) {
	if !r.store.Available() {
		return []entity.Hardware{}, nil
	}
	var items []entity.Hardware
	query := r.store.DB().WithContext(ctx).Preload("Supplier")
	if supplierID != "" {
		query = query.Where("supplier_id = ?", supplierID)
	}
	err := query.Order("name ASC").Find(&items).Error
	return items, err
}

func (r *HardwareRepository) FindByID(ctx context.Context, id string) (*entity.Hardware, error) {
	if !r.store.Available() {
		return nil, ErrNotFound
	}
	var hw entity.Hardware
	err := r.store.DB().WithContext(ctx).
		Preload("Supplier").
		Where("id = ?", id).
		First(&hw).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &hw, nil
}

func (r *HardwareRepository) Create(ctx context.Context, hw *entity.Hardware) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Create(hw).Error
}

func (r *HardwareRepository) Update(ctx context.Context, hw *entity.Hardware) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Save(hw).Error
}

func (r *HardwareRepository) Delete(ctx context.Context, id string) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Where("id = ?", id).Delete(&entity.Hardware{}).Error
}
