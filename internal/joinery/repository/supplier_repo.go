package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/joinery/internal/joinery/entity"
	"github.com/bitfantasy/joinery/internal/joinery/store"
	"gorm.io/gorm"
)

// SupplierRepository is the supplier data access layer
type SupplierRepository struct {
	store *store.Store
}

func NewSupplierRepository(st *store.Store) *SupplierRepository {
	return &SupplierRepository{store: st}
}

// FindAll returns all suppliers ordered alphabetically
func (r *SupplierRepository) FindAll(ctx context.Context) ([]entity.Supplier, error) {
	if !r.store.Available() {
		return []entity.Supplier{}, nil
	}
	var items []entity.Supplier
	err := r.store.DB().WithContext(ctx).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

func (r *SupplierRepository) FindByID(ctx context.Context, id string) (*entity.Supplier, error) {
	if !r.store.Available() {
		return nil, ErrNotFound
	}
	var supplier entity.Supplier
	err := r.store.DB().WithContext(ctx).
		Where("id = ?", id).
		First(&supplier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

func (r *SupplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Create(supplier).Error
}

func (r *SupplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Save(supplier).Error
}

// Delete removes a supplier by id; fails with an FK violation while
// hardware or materials still reference it.
func (r *SupplierRepository) Delete(ctx context.Context, id string) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Where("id = ?", id).Delete(&entity.Supplier{}).Error
}
