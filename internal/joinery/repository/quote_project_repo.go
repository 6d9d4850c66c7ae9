package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/joinery/internal/joinery/entity"
	"github.com/bitfantasy/joinery/internal/joinery/store"
	"gorm.io/gorm"
)

// QuoteProjectRepository is the quote/project data access layer
type QuoteProjectRepository struct {
	store *store.Store
}

func NewQuoteProjectRepository(st *store.Store) *QuoteProjectRepository {
	return &QuoteProjectRepository{store: st}
}

// FindAll returns quotes or projects (by the duality flag) newest first,
// with the customer joined.
func (r *QuoteProjectRepository) FindAll(ctx context.Context, isQuote bool) ([]entity.QuoteProject, error) {
	if !r.store.Available() {
		return []entity.QuoteProject{}, nil
	}
	var items []entity.QuoteProject
	err := r.store.DB().WithContext(ctx).
		Preload("Customer").
		Where("is_quote = ?", isQuote).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// FindSchedule returns all projects ordered by install commencement date
// with unscheduled projects last.
func (r *QuoteProjectRepository) FindSchedule(ctx context.Context) ([]entity.QuoteProject, error) {
	if !r.store.Available() {
		return []entity.QuoteProject{}, nil
	}
	var items []entity.QuoteProject
	err := r.store.DB().WithContext(ctx).
		Preload("Customer").
		Where("is_quote = ?", false).
		Order("install_commencement_date ASC NULLS LAST").
		Order("priority DESC").
		Find(&items).Error
	return items, err
}

// FindActiveProjectIDs returns ids of projects that are not completed,
// the scope of the cross-project tasks view and the flag limit.
func (r *QuoteProjectRepository) FindActiveProjectIDs(ctx context.Context) ([]string, error) {
	if !r.store.Available() {
		return []string{}, nil
	}
	var ids []string
	err := r.store.DB().WithContext(ctx).
		Model(&entity.QuoteProject{}).
		Where("is_quote = ? AND status <> ?", false, entity.ProjectStatusCompleted).
		Order("created_at DESC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *QuoteProjectRepository) FindByID(ctx context.Context, id string) (*entity.QuoteProject, error) {
	if !r.store.Available() {
		return nil, ErrNotFound
	}
	var qp entity.QuoteProject
	err := r.store.DB().WithContext(ctx).
		Preload("Customer").
		Where("id = ?", id).
		First(&qp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &qp, nil
}

func (r *QuoteProjectRepository) Create(ctx context.Context, qp *entity.QuoteProject) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Create(qp).Error
}

func (r *QuoteProjectRepository) Update(ctx context.Context, qp *entity.QuoteProject) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Save(qp).Error
}

func (r *QuoteProjectRepository) Delete(ctx context.Context, id string) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Where("id = ?", id).Delete(&entity.QuoteProject{}).Error
}

// === Installer assignments ===

func (r *QuoteProjectRepository) FindInstallers(ctx context.Context, projectID string) ([]entity.ProjectInstaller, error) {
	if !r.store.Available() {
		return []entity.ProjectInstaller{}, nil
	}
	var rows []entity.ProjectInstaller
	err := r.store.DB().WithContext(ctx).
		Preload("Installer").
		Where("quote_project_id = ?", projectID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *QuoteProjectRepository) AssignInstaller(ctx context.Context, row *entity.ProjectInstaller) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Create(row).Error
}

func (r *QuoteProjectRepository) UnassignInstaller(ctx context.Context, projectID, installerID string) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).
		Where("quote_project_id = ? AND installer_id = ?", projectID, installerID).
		Delete(&entity.ProjectInstaller{}).Error
}
