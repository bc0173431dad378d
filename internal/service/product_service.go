package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sales-api/internal/domain"
	"sales-api/internal/repository"
)

// SearchLimit caps the number of products a text search returns
const SearchLimit = 10

// ProductService manages the product catalog
type ProductService interface {
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, input ProductInput) (*domain.Product, error)
	Remove(ctx context.Context, id string) (string, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Search(ctx context.Context, text string) ([]*domain.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if err := validateProduct(input); err != nil {
		return nil, err
	}

	product := &domain.Product{CreatedAt: time.Now().UTC()}
	applyProductInput(product, input)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *productService) Update(ctx context.Context, id string, input ProductInput) (*domain.Product, error) {
	if err := validateProduct(input); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyProductInput(product, input)

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Remove(ctx context.Context, id string) (string, error) {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return "", err
	}
	return "The product was removed", nil
}

func (s *productService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

func (s *productService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.productRepo.List(ctx)
}

// Search returns up to SearchLimit products ranked by text relevance
func (s *productService) Search(ctx context.Context, text string) ([]*domain.Product, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &domain.ValidationError{Fields: []string{"text"}}
	}
	return s.productRepo.Search(ctx, text, SearchLimit)
}

func validateProduct(input ProductInput) error {
	var fields []string
	if strings.TrimSpace(input.Name) == "" {
		fields = append(fields, "name")
	}
	if input.Stock < 0 {
		fields = append(fields, "stock")
	}
	if input.Price < 0 {
		fields = append(fields, "price")
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

func applyProductInput(product *domain.Product, input ProductInput) {
	product.Name = strings.TrimSpace(input.Name)
	product.Stock = input.Stock
	product.Price = input.Price
	if input.Description != nil {
		product.Description = *input.Description
	}
}
