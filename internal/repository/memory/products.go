package memory

import (
	"context"
	"strings"

	"sales-api/internal/domain"
	"sales-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductRepository struct{ s *Store }

var _ repository.ProductRepository = (*ProductRepository)(nil)

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	stored := *product
	r.s.products[product.ID] = &stored
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	stored := *product
	r.s.products[product.ID] = &stored
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := repository.ParseID(id, repository.ErrProductNotFound)
	if err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.products[oid]; !ok {
		return repository.ErrProductNotFound
	}
	delete(r.s.products, oid)
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := repository.ParseID(id, repository.ErrProductNotFound)
	if err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	product, ok := r.s.products[oid]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	found := *product
	return &found, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	products := make([]*domain.Product, 0, len(r.s.products))
	for _, product := range r.s.products {
		found := *product
		products = append(products, &found)
	}
	sortByID(products, func(p *domain.Product) primitive.ObjectID { return p.ID })
	return products, nil
}

// Search matches any whitespace-separated term against name and description,
// case-insensitively, mirroring a $text query without stemming.
func (r *ProductRepository) Search(ctx context.Context, text string, limit int) ([]*domain.Product, error) {
	terms := strings.Fields(strings.ToLower(text))
	if len(terms) == 0 {
		return []*domain.Product{}, nil
	}

	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	products := []*domain.Product{}
	for _, product := range all {
		haystack := strings.ToLower(product.Name + " " + product.Description)
		for _, term := range terms {
			if strings.Contains(haystack, term) {
				products = append(products, product)
				break
			}
		}
		if limit > 0 && len(products) == limit {
			break
		}
	}
	return products, nil
}
