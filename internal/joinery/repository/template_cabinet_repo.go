package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/joinery/internal/joinery/entity"
	"github.com/bitfantasy/joinery/internal/joinery/store"
	"gorm.io/gorm"
)

// TemplateCabinetRepository is the cabinet catalog data access layer
type TemplateCabinetRepository struct {
	store *store.Store
}

func NewTemplateCabinetRepository(st *store.Store) *TemplateCabinetRepository {
	return &TemplateCabinetRepository{store: st}
}

// FindAll returns templates in catalog order: category, type, width,
// height. An optional category narrows the result.
func (r *TemplateCabinetRepository) FindAll(ctx context.Context, category string) ([]entity.TemplateCabinet, error) {
	if !r.store.Available() {
		return []entity.TemplateCabinet{}, nil
	}
	var items []entity.TemplateCabinet
	query := r.store.DB().WithContext(ctx)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.
		Order("category ASC").
		Order("type ASC").
		Order("width ASC").
		Order("height ASC").
		Find(&items).Error
	return items, err
}

func (r *TemplateCabinetRepository) FindByID(ctx context.Context, id string) (*entity.TemplateCabinet, error) {
	if !r.store.Available() {
		return nil, ErrNotFound
	}
	var tpl entity.TemplateCabinet
	err := r.store.DB().WithContext(ctx).
		Where("id = ?", id).
		First(&tpl).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &tpl, nil
}

func (r *TemplateCabinetRepository) Create(ctx context.Context, tpl *entity.TemplateCabinet) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Create(tpl).Error
}

func (r *TemplateCabinetRepository) Update(ctx context.Context, tpl *entity.TemplateCabinet) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Save(tpl).Error
}

func (r *TemplateCabinetRepository) Delete(ctx context.Context, id string) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Where("id = ?", id).Delete(&entity.TemplateCabinet{}).Error
}
