package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/joinery/internal/joinery/entity"
	"github.com/bitfantasy/joinery/internal/joinery/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository is the key/value settings data access layer
type SettingRepository struct {
	store *store.Store
}

func NewSettingRepository(st *store.Store) *SettingRepository {
	return &SettingRepository{store: st}
}

func (r *SettingRepository) FindAll(ctx context.Context) ([]entity.Setting, error) {
	if !r.store.Available() {
		return []entity.Setting{}, nil
	}
	var items []entity.Setting
	err := r.store.DB().WithContext(ctx).Order("key ASC").Find(&items).Error
	return items, err
}

func (r *SettingRepository) FindByKey(ctx context.Context, key string) (*entity.Setting, error) {
	if !r.store.Available() {
		return nil, ErrNotFound
	}
	var s entity.Setting
	err := r.store.DB().WithContext(ctx).Where("key = ?", key).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Upsert writes a setting, inserting or overwriting by key
func (r *SettingRepository) Upsert(ctx context.Context, s *entity.Setting) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(s).Error
}

func (r *SettingRepository) Delete(ctx context.Context, key string) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Where("key = ?", key).Delete(&entity.Setting{}).Error
}
