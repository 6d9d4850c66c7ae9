package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/joinery/internal/joinery/entity"
	"github.com/bitfantasy/joinery/internal/joinery/store"
	"gorm.io/gorm"
)

// DocumentRepository is the project document metadata data access layer.
// File bytes live in object storage; only metadata rows are kept here.
type DocumentRepository struct {
	store *store.Store
}

func NewDocumentRepository(st *store.Store) *DocumentRepository {
	return &DocumentRepository{store: st}
}

func (r *DocumentRepository) FindByQuoteProject(ctx context.Context, quoteProjectID string) ([]entity.ProjectDocument, error) {
	if !r.store.Available() {
		return []entity.ProjectDocument{}, nil
	}
	var docs []entity.ProjectDocument
	err := r.store.DB().WithContext(ctx).
		Where("quote_project_id = ?", quoteProjectID).
		Order("created_at DESC").
		Find(&docs).Error
	return docs, err
}

func (r *DocumentRepository) FindByID(ctx context.Context, id string) (*entity.ProjectDocument, error) {
	if !r.store.Available() {
		return nil, ErrNotFound
	}
	var doc entity.ProjectDocument
	err := r.store.DB().WithContext(ctx).Where("id = ?", id).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepository) Create(ctx context.Context, doc *entity.ProjectDocument) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Create(doc).Error
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Where("id = ?", id).Delete(&entity.ProjectDocument{}).Error
}
