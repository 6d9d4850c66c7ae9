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

// InstallerService handles install crew members
type InstallerService struct {
	repo *repository.InstallerRepository
	qc   cache.Store
}

// NewInstallerService creates the installer service
func NewInstallerService(repo *repository.InstallerRepository, qc cache.Store) *InstallerService {
	return &InstallerService{repo: repo, qc: qc}
}

// CreateInstallerRequest carries a new installer
type CreateInstallerRequest struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
	Notes string  `json:"notes"`
}

// UpdateInstallerRequest carries a partial installer update
type UpdateInstallerRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
	Notes *string `json:"notes"`
}

// List returns all installers alphabetically
func (s *InstallerService) List(ctx context.Context) ([]entity.Installer, error) {
	return cache.Through(ctx, s.qc, cache.NewKey(TagInstaller, "list"), func(ctx context.Context) ([]entity.Installer, error) {
		return s.repo.FindAll(ctx)
	})
}

// Get returns one installer
func (s *InstallerService) Get(ctx context.Context, id string) (*entity.Installer, error) {
	return cache.Through(ctx, s.qc, cache.NewKey(TagInstaller, "id", id), func(ctx context.Context) (*entity.Installer, error) {
		return s.repo.FindByID(ctx, id)
	})
}

// Create validates and stores a new installer
func (s *InstallerService) Create(ctx context.Context, req *CreateInstallerRequest) (*entity.Installer, error) {
	errs := validation.Errors{}
	validation.Required(errs, "name", "Name", req.Name)
	validation.Email(errs, "email", req.Email)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	ins := &entity.Installer{
		ID:    uuid.New().String()[:32],
		Name:  validation.Clean(req.Name),
		Phone: validation.CleanPtr(req.Phone),
		Email: validation.CleanPtr(req.Email),
		Notes: req.Notes,
	}

	if err := s.repo.Create(ctx, ins); err != nil {
		return nil, fmt.Errorf("create installer: %w", err)
	}

	invalidate(ctx, s.qc, TagInstaller, ins.ID, "created")
	return ins, nil
}

// Update validates and applies a partial update
func (s *InstallerService) Update(ctx context.Context, id string, req *UpdateInstallerRequest) (*entity.Installer, error) {
	errs := validation.Errors{}
	if req.Name != nil {
		validation.Required(errs, "name", "Name", *req.Name)
	}
	validation.Email(errs, "email", req.Email)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	ins, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		ins.Name = validation.Clean(*req.Name)
	}
	if req.Phone != nil {
		ins.Phone = validation.CleanPtr(req.Phone)
	}
	if req.Email != nil {
		ins.Email = validation.CleanPtr(req.Email)
	}
	if req.Notes != nil {
		ins.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, ins); err != nil {
		return nil, fmt.Errorf("update installer: %w", err)
	}

	invalidate(ctx, s.qc, TagInstaller, ins.ID, "updated")
	return ins, nil
}

// Delete removes an installer. Installers assigned to projects are
// protected by the store and rejected with a conflict.
func (s *InstallerService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return conflictOnFK(err, "Cannot delete installer: this installer is assigned to projects. Unassign them first.")
	}
	invalidate(ctx, s.qc, TagInstaller, id, "deleted")
	return nil
}
