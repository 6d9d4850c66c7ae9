package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/joinery/internal/joinery/entity"
	"github.com/bitfantasy/joinery/internal/joinery/store"
	"gorm.io/gorm"
)

// InstallerRepository is the installer data access layer
type InstallerRepository struct {
	store *store.Store
}

func NewInstallerRepository(st *store.Store) *InstallerRepository {
	return &InstallerRepository{store: st}
}

func (r *InstallerRepository) FindAll(ctx context.Context) ([]entity.Installer, error) {
	if !r.store.Available() {
		return []entity.Installer{}, nil
	}
	var items []entity.Installer
	err := r.store.DB().WithContext(ctx).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *InstallerRepository) FindByID(ctx context.Context, id string) (*entity.Installer, error) {
	if !r.store.Available() {
		return nil, ErrNotFound
	}
	var ins entity.Installer
	err := r.store.DB().WithContext(ctx).Where("id = ?", id).First(&ins).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ins, nil
}

func (r *InstallerRepository) Create(ctx context.Context, ins *entity.Installer) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Create(ins).Error
}

func (r *InstallerRepository) Update(ctx context.Context, ins *entity.Installer) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Save(ins).Error
}

func (r *InstallerRepository) Delete(ctx context.Context, id string) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Where("id = ?", id).Delete(&entity.Installer{}).Error
}
