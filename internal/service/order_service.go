package service

import (
	"context"
	"fmt"
	"time"

	"sales-api/internal/domain"
	"sales-api/internal/logger"
	"sales-api/internal/repository"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "sales-api/internal/service"

// OrderService places and maintains orders. Placing an order decrements the
// stock of every product it references.
type OrderService interface {
	Create(ctx context.Context, sellerID string, input OrderInput) (*domain.Order, error)
	Update(ctx context.Context, sellerID, id string, input OrderInput) (*domain.Order, error)
	Remove(ctx context.Context, sellerID, id string) (string, error)
	Get(ctx context.Context, sellerID, id string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*domain.Order, error)
	ListByState(ctx context.Context, sellerID string, state domain.OrderState) ([]*domain.Order, error)
}

type orderService struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	logger       *zap.Logger
	tracer       trace.Tracer
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	log *zap.Logger,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		logger:       log,
		tracer:       otel.Tracer(tracerName),
	}
}

func (s *orderService) Create(ctx context.Context, sellerID string, input OrderInput) (order *domain.Order, err error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Create",
		trace.WithAttributes(
			attribute.String("seller.id", sellerID),
			attribute.String("customer.id", input.CustomerID),
			attribute.Int("order.items", len(input.Items)),
		))
	defer func() { endSpan(span, err) }()

	if err := validateOrderInput(input); err != nil {
		return nil, err
	}
	seller, err := sellerObjectID(sellerID)
	if err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if err := authorizeCustomer(sellerID, customer); err != nil {
		return nil, err
	}

	items, err := s.reserveStock(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	order = &domain.Order{
		Items:     items,
		Total:     orderTotal(items, input.Total),
		Customer:  customer.ID,
		Seller:    seller,
		State:     domain.OrderStatePending,
		CreatedAt: time.Now().UTC(),
	}
	if input.State != nil {
		order.State = *input.State
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	logger.FromContext(ctx, s.logger).Info("Order placed",
		zap.String("order_id", order.ID.Hex()),
		zap.String("seller_id", sellerID),
		zap.String("customer_id", input.CustomerID),
		zap.Float64("total", order.Total),
	)
	return order, nil
}

func (s *orderService) Update(ctx context.Context, sellerID, id string, input OrderInput) (order *domain.Order, err error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Update",
		trace.WithAttributes(
			attribute.String("seller.id", sellerID),
			attribute.String("order.id", id),
		))
	defer func() { endSpan(span, err) }()

	if err := validateOrderInput(input); err != nil {
		return nil, err
	}

	order, err = s.owned(ctx, sellerID, id)
	if err != nil {
		return nil, err
	}

	customerID := input.CustomerID
	if customerID == "" {
		customerID = order.Customer.Hex()
	}
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := authorizeCustomer(sellerID, customer); err != nil {
		return nil, err
	}
	order.Customer = customer.ID

	// Replaced lines are not restocked.
	if input.Items != nil {
		items, err := s.reserveStock(ctx, input.Items)
		if err != nil {
			return nil, err
		}
		order.Items = items
		order.Total = orderTotal(items, input.Total)
	} else if input.Total != nil {
		order.Total = *input.Total
	}
	if input.State != nil {
		order.State = *input.State
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	logger.FromContext(ctx, s.logger).Info("Order updated",
		zap.String("order_id", id),
		zap.String("seller_id", sellerID),
		zap.String("state", string(order.State)),
	)
	return order, nil
}

func (s *orderService) Remove(ctx context.Context, sellerID, id string) (string, error) {
	if _, err := s.owned(ctx, sellerID, id); err != nil {
		return "", err
	}
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return "", err
	}
	return "The order was removed", nil
}

func (s *orderService) Get(ctx context.Context, sellerID, id string) (*domain.Order, error) {
	return s.owned(ctx, sellerID, id)
}

func (s *orderService) List(ctx context.Context) ([]*domain.Order, error) {
	return s.orderRepo.List(ctx)
}

func (s *orderService) ListBySeller(ctx context.Context, sellerID string) ([]*domain.Order, error) {
	seller, err := sellerObjectID(sellerID)
	if err != nil {
		return nil, err
	}
	return s.orderRepo.ListBySeller(ctx, seller)
}

func (s *orderService) ListByState(ctx context.Context, sellerID string, state domain.OrderState) ([]*domain.Order, error) {
	if !state.Valid() {
		return nil, &domain.ValidationError{Fields: []string{"state"}}
	}
	seller, err := sellerObjectID(sellerID)
	if err != nil {
		return nil, err
	}
	return s.orderRepo.ListBySellerAndState(ctx, seller, state)
}

func (s *orderService) owned(ctx context.Context, sellerID, id string) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOrder(sellerID, order); err != nil {
		return nil, err
	}
	return order, nil
}

// reserveStock walks the requested lines in order, decrementing and saving
// each product before moving on. A failing line aborts the walk; products
// already decremented stay decremented.
func (s *orderService) reserveStock(ctx context.Context, lines []LineItemInput) ([]domain.LineItem, error) {
	log := logger.FromContext(ctx, s.logger)
	items := make([]domain.LineItem, 0, len(lines))

	for _, line := range lines {
		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", err, line.ProductID)
		}

		if line.Quantity > product.Stock {
			log.Warn("Insufficient stock",
				zap.String("product_id", line.ProductID),
				zap.Int("requested", line.Quantity),
				zap.Int("available", product.Stock),
			)
			return nil, &domain.InsufficientStockError{
				Product:   product.Name,
				Requested: line.Quantity,
				Available: product.Stock,
			}
		}

		product.Stock -= line.Quantity
		if err := s.productRepo.Update(ctx, product); err != nil {
			return nil, fmt.Errorf("failed to update stock: %w", err)
		}
		log.Debug("Stock decremented",
			zap.String("product_id", line.ProductID),
			zap.Int("quantity", line.Quantity),
			zap.Int("remaining", product.Stock),
		)

		items = append(items, domain.LineItem{
			Product:  product.ID,
			Quantity: line.Quantity,
			Name:     product.Name,
			Price:    product.Price,
		})
	}
	return items, nil
}

func validateOrderInput(input OrderInput) error {
	var fields []string
	for _, line := range input.Items {
		if line.Quantity < 1 {
			fields = append(fields, "quantity")
			break
		}
	}
	if input.Total != nil && *input.Total < 0 {
		fields = append(fields, "total")
	}
	if input.State != nil && !input.State.Valid() {
		fields = append(fields, "state")
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// orderTotal uses the caller's total when given, otherwise the sum of the
// snapshotted line prices.
func orderTotal(items []domain.LineItem, total *float64) float64 {
	if total != nil {
		return *total
	}
	var sum float64
	for _, item := range items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
