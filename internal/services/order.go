package service

import (
	"context"
	"errors"

	appErrors "github.com/vurel/storefront/internal/errors"
	"github.com/vurel/storefront/internal/models"
	repository "github.com/vurel/storefront/internal/repositories"
)

// OrderStore is the persistence surface the order flows need;
// *repository.OrderRepository satisfies it.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID int64, page int, size int) ([]models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) error
}

type OrderService struct {
	repo OrderStore
}

func NewOrderService(repo OrderStore) *OrderService {
	return &OrderService{repo: repo}
}

// GetOrder returns the order when the caller owns it or is an admin. A nil
// claims is the anonymous confirmation view: the payment redirect lands here
// before a freshly created guest account has stored its token, so access by
// order id alone is allowed.
func (s *OrderService) GetOrder(ctx context.Context, claims *models.Claims, id int64) (*models.Order, error) {

	order, err := s.repo.GetOrderByID(ctx, id)

	if err != nil {

		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Order not found")
		}

		return nil, appErrors.DatabaseError("Failed to load order").WithError(err)
	}

	if claims == nil || claims.IsAdmin {
		return order, nil
	}

	if order.CustomerID == nil || *order.CustomerID != claims.UserID {
		return nil, appErrors.ForbiddenError("You do not have access to this order")
	}

	return order, nil
}

func (s *OrderService) ListMyOrders(ctx context.Context, claims *models.Claims, page int, size int) (*models.PaginatedOrders, error) {

	if page < 1 {
		page = 1
	}

	if size < 1 || size > 50 {
		size = 10
	}

	orders, total, err := s.repo.ListOrdersByCustomer(ctx, claims.UserID, page, size)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list orders").WithError(err)
	}

	return &models.PaginatedOrders{
		Orders:   orders,
		Total:    total,
		Page:     page,
		PageSize: size,
	}, nil
}

// UpdateStatus is admin-only; the handler enforces that.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, req *models.UpdateOrderStatusRequest) (*models.Order, error) {

	err := s.repo.UpdateOrderStatus(ctx, id, req.Status)

	if err != nil {

		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Order not found")
		}

		return nil, appErrors.DatabaseError("Failed to update order status").WithError(err)
	}

	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to reload order").WithError(err)
	}

	return order, nil
}
