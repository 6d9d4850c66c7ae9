package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/joinery/internal/joinery/entity"
	"github.com/bitfantasy/joinery/internal/joinery/store"
	"gorm.io/gorm"
)

// MaterialRepository is the material catalog data access layer
type MaterialRepository struct {
	store *store.Store
}

func NewMaterialRepository(st *store.Store) *MaterialRepository {
	return &MaterialRepository{store: st}
}

// FindAll returns materials ordered by name with the supplier joined.
// An optional supplier id narrows the result.
func (r *MaterialRepository) FindAll(ctx context.Context, supplierID string) ([]entity.Material, error) {
	if !r.store.Available() {
		return []entity.Material{}, nil
	}
	var items []entity.Material
	query := r.store.DB().WithContext(ctx).Preload("Supplier")
	if supplierID != "" {
		query = query.Where("supplier_id = ?", supplierID)
	}
	err := query.Order("name ASC").Find(&items).Error
	return items, err
}

func (r *MaterialRepository) FindByID(ctx context.Context, id string) (*entity.Material, error) {
	if !r.store.Available() {
		return nil, ErrNotFound
	}
	var m entity.Material
	err := r.store.DB().WithContext(ctx).
		Preload("Supplier").
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MaterialRepository) Create(ctx context.Context, m *entity.Material) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Create(m).Error
}

func (r *MaterialRepository) Update(ctx context.Context, m *entity.Material) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Save(m).Error
}

func (r *MaterialRepository) Delete(ctx context.Context, id string) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Where("id = ?", id).Delete(&entity.Material{}).Error
}
