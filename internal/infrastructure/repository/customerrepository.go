package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"warden/internal/domain/account"
	"warden/internal/infrastructure/persistence/mappers"
	"warden/internal/infrastructure/persistence/models"
)

type CustomerRepository struct {
	base
	mapper mappers.AccountMapper
}

func NewCustomerRepository(db *gorm.DB, timeout time.Duration) account.CustomerRepository {
	return &CustomerRepository{
		base:   newBase(db, timeout),
		mapper: mappers.NewAccountMapper(),
	}
}

func (r *CustomerRepository) Create(ctx context.Context, c *account.Customer) error {
	tx, cancel := r.conn(ctx)
	defer cancel()

	if err := tx.Create(r.mapper.CustomerToModel(c)).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*account.Customer, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*account.Customer, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *CustomerRepository) first(ctx context.Context, query string, arg any) (*account.Customer, error) {
	tx, cancel := r.conn(ctx)
	defer cancel()

	var model models.CustomerModel
	if err := tx.Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return r.mapper.CustomerToEntity(&model), nil
}

func (r *CustomerRepository) List(ctx context.Context) ([]*account.Customer, error) {
	tx, cancel := r.conn(ctx)
	defer cancel()

	var list []*models.CustomerModel
	if err := tx.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	out := make([]*account.Customer, 0, len(list))
	for _, m := range list {
		out = append(out, r.mapper.CustomerToEntity(m))
	}
	return out, nil
}
