package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/joinery/internal/joinery/entity"
	"github.com/bitfantasy/joinery/internal/joinery/store"
	"gorm.io/gorm"
)

// CustomerRepository is the customer data access layer
type CustomerRepository struct {
	store *store.Store
}

func NewCustomerRepository(st *store.Store) *CustomerRepository {
	return &CustomerRepository{store: st}
}

// FindAll returns all customers ordered alphabetically by company name
func (r *CustomerRepository) FindAll(ctx context.Context) ([]entity.Customer, error) {
	if !r.store.Available() {
		return []entity.Customer{}, nil
	}
	var items []entity.Customer
	err := r.store.DB().WithContext(ctx).
		Order("company_name ASC").
		Find(&items).Error
	return items, err
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*entity.Customer, error) {
	if !r.store.Available() {
		return nil, ErrNotFound
	}
	var customer entity.Customer
	err := r.store.DB().WithContext(ctx).
		Where("id = ?", id).
		First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Create(customer).Error
}

func (r *CustomerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Save(customer).Error
}

// Delete removes a customer by id. Referential integrity is the store's
// job: a customer still referenced by quotes fails with an FK violation.
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Where("id = ?", id).Delete(&entity.Customer{}).Error
}
