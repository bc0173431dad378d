package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sales-api/internal/domain"
	"sales-api/internal/repository"
)

// CustomerService manages customers on behalf of the seller who owns them
type CustomerService interface {
	Create(ctx context.Context, sellerID string, input CustomerInput) (*domain.Customer, error)
	Update(ctx context.Context, sellerID, id string, input CustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, sellerID, id string) (string, error)
	Get(ctx context.Context, sellerID, id string) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*domain.Customer, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new instance of CustomerService
func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) Create(ctx context.Context, sellerID string, input CustomerInput) (*domain.Customer, error) {
	seller, err := sellerObjectID(sellerID)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(input.Email)
	existing, err := s.customerRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrCustomerNotFound) {
		return nil, fmt.Errorf("failed to check existing customer: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicateEmail
	}

	customer := &domain.Customer{
		Seller:    seller,
		CreatedAt: time.Now().UTC(),
	}
	applyCustomerInput(customer, input)

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) Update(ctx context.Context, sellerID, id string, input CustomerInput) (*domain.Customer, error) {
	customer, err := s.owned(ctx, sellerID, id)
	if err != nil {
		return nil, err
	}
	applyCustomerInput(customer, input)

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) Delete(ctx context.Context, sellerID, id string) (string, error) {
	customer, err := s.owned(ctx, sellerID, id)
	if err != nil {
		return "", err
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return "", err
	}
	return fmt.Sprintf("The customer %s %s was removed", customer.Name, customer.LastName), nil
}

func (s *customerService) Get(ctx context.Context, sellerID, id string) (*domain.Customer, error) {
	return s.owned(ctx, sellerID, id)
}

func (s *customerService) List(ctx context.Context) ([]*domain.Customer, error) {
	return s.customerRepo.List(ctx)
}

func (s *customerService) ListBySeller(ctx context.Context, sellerID string) ([]*domain.Customer, error) {
	seller, err := sellerObjectID(sellerID)
	if err != nil {
		return nil, err
	}
	return s.customerRepo.ListBySeller(ctx, seller)
}

// owned loads a customer and checks that sellerID owns it. Existence is
// checked before ownership.
func (s *customerService) owned(ctx context.Context, sellerID, id string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeCustomer(sellerID, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func applyCustomerInput(customer *domain.Customer, input CustomerInput) {
	customer.Name = strings.TrimSpace(input.Name)
	customer.LastName = strings.TrimSpace(input.LastName)
	customer.Company = strings.TrimSpace(input.Company)
	customer.Email = strings.TrimSpace(input.Email)
	if input.CellPhone != nil {
		customer.CellPhone = *input.CellPhone
	}
}
