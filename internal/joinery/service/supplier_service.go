package service

import (
	"context"
	"fmt"

	"github.com/bitfantasy/joinery/internal/joinery/cache"
	"github.com/bitfantasy/joinery/internal/joinery/entity"
	"github.com/bitfantasy/joinery/internal/joinery/repository"
	"github.com/bitfantasy/joinery/internal/joinery/validation"
	"github.com/google/uuid"
)

// SupplierService handles supplier operations
type SupplierService struct {
	repo *repository.SupplierRepository
	qc   cache.Store
}

// NewSupplierService creates the supplier service
func NewSupplierService(repo *repository.SupplierRepository, qc cache.Store) *SupplierService {
	return &SupplierService{repo: repo, qc: qc}
}

// CreateSupplierRequest carries a new supplier
type CreateSupplierRequest struct {
	Name        string  `json:"name"`
	ContactName string  `json:"contact_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	Notes       string  `json:"notes"`
}

// UpdateSupplierRequest carries a partial supplier update
type UpdateSupplierRequest struct {
	Name        *string `json:"name"`
	ContactName *string `json:"contact_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	Notes       *string `json:"notes"`
}

// List returns all suppliers alphabetically
func (s *SupplierService) List(ctx context.Context) ([]entity.Supplier, error) {
	return cache.Through(ctx, s.qc, cache.NewKey(TagSupplier, "list"), func(ctx context.Context) ([]entity.Supplier, error) {
		return s.repo.FindAll(ctx)
	})
}

// Get returns one supplier
func (s *SupplierService) Get(ctx context.Context, id string) (*entity.Supplier, error) {
	return cache.Through(ctx, s.qc, cache.NewKey(TagSupplier, "id", id), func(ctx context.Context) (*entity.Supplier, error) {
		return s.repo.FindByID(ctx, id)
	})
}

// Create validates and stores a new supplier
func (s *SupplierService) Create(ctx context.Context, userID string, req *CreateSupplierRequest) (*entity.Supplier, error) {
	errs := validation.Errors{}
	validation.Required(errs, "name", "Name", req.Name)
	validation.Email(errs, "email", req.Email)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	supplier := &entity.Supplier{
		ID:          uuid.New().String()[:32],
		Name:        validation.Clean(req.Name),
		ContactName: validation.Clean(req.ContactName),
		Email:       validation.CleanPtr(req.Email),
		Phone:       validation.CleanPtr(req.Phone),
		Address:     validation.CleanPtr(req.Address),
		Notes:       req.Notes,
		CreatedBy:   userID,
	}

	if err := s.repo.Create(ctx, supplier); err != nil {
		return nil, fmt.Errorf("create supplier: %w", err)
	}

	invalidate(ctx, s.qc, TagSupplier, supplier.ID, "created")
	return supplier, nil
}

// Update validates and applies a partial update
func (s *SupplierService) Update(ctx context.Context, id string, req *UpdateSupplierRequest) (*entity.Supplier, error) {
	errs := validation.Errors{}
	if req.Name != nil {
		validation.Required(errs, "name", "Name", *req.Name)
	}
	validation.Email(errs, "email", req.Email)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		supplier.Name = validation.Clean(*req.Name)
	}
	if req.ContactName != nil {
		supplier.ContactName = validation.Clean(*req.ContactName)
	}
	if req.Email != nil {
		supplier.Email = validation.CleanPtr(req.Email)
	}
	if req.Phone != nil {
		supplier.Phone = validation.CleanPtr(req.Phone)
	}
	if req.Address != nil {
		supplier.Address = validation.CleanPtr(req.Address)
	}
	if req.Notes != nil {
		supplier.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, supplier); err != nil {
		return nil, fmt.Errorf("update supplier: %w", err)
	}

	invalidate(ctx, s.qc, TagSupplier, supplier.ID, "updated")
	return supplier, nil
}

// Delete removes a supplier. Suppliers referenced by catalog items are
// protected by the store and rejected with a conflict.
func (s *SupplierService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return conflictOnFK(err, "Cannot delete supplier: this supplier is being used in materials or hardware. Reassign or delete those items first.")
	}
	invalidate(ctx, s.qc, TagSupplier, id, "deleted")
	return nil
}
