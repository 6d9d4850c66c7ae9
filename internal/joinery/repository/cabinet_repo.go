package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/joinery/internal/joinery/entity"
	"github.com/bitfantasy/joinery/internal/joinery/store"
	"gorm.io/gorm"
)

// CabinetRepository is the cabinet instance data access layer
type CabinetRepository struct {
	store *store.Store
}

func NewCabinetRepository(st *store.Store) *CabinetRepository {
	return &CabinetRepository{store: st}
}

func (r *CabinetRepository) FindByJoineryItem(ctx context.Context, joineryItemID string) ([]entity.Cabinet, error) {
	if !r.store.Available() {
		return []entity.Cabinet{}, nil
	}
	var items []entity.Cabinet
	err := r.store.DB().WithContext(ctx).
		Preload("Template").
		Preload("Hardware").
		Preload("Hardware.Item").
		Preload("Materials").
		Preload("Materials.Item").
		Where("joinery_item_id = ?", joineryItemID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *CabinetRepository) FindByID(ctx context.Context, id string) (*entity.Cabinet, error) {
	if !r.store.Available() {
		return nil, ErrNotFound
	}
	var cab entity.Cabinet
	err := r.store.DB().WithContext(ctx).
		Preload("Template").
		Preload("Hardware").
		Preload("Hardware.Item").
		Preload("Materials").
		Preload("Materials.Item").
		Where("id = ?", id).
		First(&cab).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cab, nil
}

func (r *CabinetRepository) Create(ctx context.Context, cab *entity.Cabinet) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Create(cab).Error
}

func (r *CabinetRepository) Update(ctx context.Context, cab *entity.Cabinet) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Omit("Hardware", "Materials").Save(cab).Error
}

func (r *CabinetRepository) Delete(ctx context.Context, id string) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Where("id = ?", id).Delete(&entity.Cabinet{}).Error
}

// ReplaceHardware swaps the cabinet's hardware join rows
func (r *CabinetRepository) ReplaceHardware(ctx context.Context, cabinetID string, rows []entity.CabinetHardware) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cabinet_id = ?", cabinetID).Delete(&entity.CabinetHardware{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

// ReplaceMaterials swaps the cabinet's material join rows
func (r *CabinetRepository) ReplaceMaterials(ctx context.Context, cabinetID string, rows []entity.CabinetMaterial) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cabinet_id = ?", cabinetID).Delete(&entity.CabinetMaterial{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}
