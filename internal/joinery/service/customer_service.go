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

// CustomerService handles customer operations
type CustomerService struct {
	repo *repository.CustomerRepository
	qc   cache.Store
}

// NewCustomerService creates the customer service
func NewCustomerService(repo *repository.CustomerRepository, qc cache.Store) *CustomerService {
	return &CustomerService{repo: repo, qc: qc}
}

// CreateCustomerRequest carries a new customer
type CreateCustomerRequest struct {
	CompanyName string  `json:"company_name"`
	ContactName string  `json:"contact_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	Notes       string  `json:"notes"`
}

// UpdateCustomerRequest carries a partial customer update; nil fields are
// left untouched.
type UpdateCustomerRequest struct {
	CompanyName *string `json:"company_name"`
	ContactName *string `json:"contact_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	Notes       *string `json:"notes"`
}

// List returns all customers alphabetically by company name
func (s *CustomerService) List(ctx context.Context) ([]entity.Customer, error) {
	return cache.Through(ctx, s.qc, cache.NewKey(TagCustomer, "list"), func(ctx context.Context) ([]entity.Customer, error) {
		return s.repo.FindAll(ctx)
	})
}

// Get returns one customer
func (s *CustomerService) Get(ctx context.Context, id string) (*entity.Customer, error) {
	return cache.Through(ctx, s.qc, cache.NewKey(TagCustomer, "id", id), func(ctx context.Context) (*entity.Customer, error) {
		return s.repo.FindByID(ctx, id)
	})
}

// Create validates and stores a new customer
func (s *CustomerService) Create(ctx context.Context, userID string, req *CreateCustomerRequest) (*entity.Customer, error) {
	errs := validation.Errors{}
	validation.Required(errs, "company_name", "Company name", req.CompanyName)
	validation.Email(errs, "email", req.Email)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	customer := &entity.Customer{
		ID:          uuid.New().String()[:32],
		CompanyName: validation.Clean(req.CompanyName),
		ContactName: validation.Clean(req.ContactName),
		Email:       validation.CleanPtr(req.Email),
		Phone:       validation.CleanPtr(req.Phone),
		Address:     validation.CleanPtr(req.Address),
		Notes:       req.Notes,
		CreatedBy:   userID,
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	invalidate(ctx, s.qc, TagCustomer, customer.ID, "created")
	return customer, nil
}

// Update validates and applies a partial update
func (s *CustomerService) Update(ctx context.Context, id string, req *UpdateCustomerRequest) (*entity.Customer, error) {
	errs := validation.Errors{}
	if req.CompanyName != nil {
		validation.Required(errs, "company_name", "Company name", *req.CompanyName)
	}
	validation.Email(errs, "email", req.Email)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CompanyName != nil {
		customer.CompanyName = validation.Clean(*req.CompanyName)
	}
	if req.ContactName != nil {
		customer.ContactName = validation.Clean(*req.ContactName)
	}
	if req.Email != nil {
		customer.Email = validation.CleanPtr(req.Email)
	}
	if req.Phone != nil {
		customer.Phone = validation.CleanPtr(req.Phone)
	}
	if req.Address != nil {
		customer.Address = validation.CleanPtr(req.Address)
	}
	if req.Notes != nil {
		customer.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}

	invalidate(ctx, s.qc, TagCustomer, customer.ID, "updated")
	return customer, nil
}

// Delete removes a customer. Customers referenced by quotes or projects
// are protected by the store and rejected with a conflict.
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return conflictOnFK(err, "Cannot delete customer: this customer has quotes or projects. Delete or reassign them first.")
	}
	invalidate(ctx, s.qc, TagCustomer, id, "deleted")
	return nil
}
