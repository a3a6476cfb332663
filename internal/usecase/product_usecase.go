package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-storefront-backend/internal/domain"
	"go-storefront-backend/pkg/apperror"
)

type productUsecase struct {
	productRepo domain.ProductRepository
}

func NewProductUsecase(productRepo domain.ProductRepository) domain.ProductUsecase {
	return &productUsecase{productRepo: productRepo}
}

func (u *productUsecase) CreateProduct(ctx context.Context, p *domain.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return apperror.BadRequest("Product name is required")
	}
	if p.Price <= 0 {
		return apperror.BadRequest("Product price must be greater than zero")
	}
	if p.Stock < 0 {
		return apperror.BadRequest("Product stock cannot be negative")
	}

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	return u.productRepo.Create(ctx, p)
}

func (u *productUsecase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	p, err := u.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Product not found")
		}
		return nil, err
	}
	return p, nil
}

func (u *productUsecase) ListProducts(ctx context.Context, filter domain.ProductFilter, page, pageSize int) ([]domain.Product, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return u.productRepo.Fetch(ctx, filter, pageSize, (page-1)*pageSize)
}

func (u *productUsecase) UpdateProduct(ctx context.Context, p *domain.Product) error {
	if p.Price <= 0 {
		return apperror.BadRequest("Product price must be greater than zero")
	}
	if _, err := u.productRepo.GetByID(ctx, p.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Product not found")
		}
		return err
	}
	p.UpdatedAt = time.Now()
	return u.productRepo.Update(ctx, p)
}

func (u *productUsecase) SetProductImage(ctx context.Context, id, imageURL string) error {
	if err := u.productRepo.UpdateImage(ctx, id, imageURL); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Product not found")
		}
		return err
	}
	return nil
}

func (u *productUsecase) DeleteProduct(ctx context.Context, id string) error {
	if err := u.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Product not found")
		}
		return err
	}
	return nil
}
