package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"bookstore-service/internal/domain/entities"
	"bookstore-service/internal/domain/repositories"

	"github.com/google/uuid"
)

type OrderRepositoryMemory struct {
	mu     sync.RWMutex
	orders map[string]*entities.Order
}

func NewOrderRepositoryMemory() *OrderRepositoryMemory {
	return &OrderRepositoryMemory{
		orders: make(map[string]*entities.Order),
	}
}

func (r *OrderRepositoryMemory) Create(ctx context.Context, order *entities.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.OrderID == "" {
		order.OrderID = uuid.NewString()
	}
	if _, exists := r.orders[order.OrderID]; exists {
		return repositories.ErrOrderAlreadyExists
	}

	r.orders[order.OrderID] = copyOrder(order)
	return nil
}

func (r *OrderRepositoryMemory) GetByID(ctx context.Context, orderID string) (*entities.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[orderID]
	if !exists {
		return nil, repositories.ErrOrderNotFound
	}

	return copyOrder(order), nil
}

func (r *OrderRepositoryMemory) ListByUser(ctx context.Context, userID string) ([]*entities.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entities.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			out = append(out, copyOrder(order))
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *OrderRepositoryMemory) List(ctx context.Context, skip, limit int) ([]*entities.Order, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*entities.Order, 0, len(r.orders))
	for _, order := range r.orders {
		all = append(all, copyOrder(order))
	}
	sortNewestFirst(all)

	return page(all, skip, limit), int64(len(all)), nil
}

func (r *OrderRepositoryMemory) TransitionStatus(ctx context.Context, orderID string, from, to entities.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, exists := r.orders[orderID]
	if !exists {
		return repositories.ErrOrderNotFound
	}
	if order.Status != from {
		return repositories.ErrStatusConflict
	}

	order.Status = to
	order.UpdatedAt = time.Now()
	return nil
}

func (r *OrderRepositoryMemory) UpdatePaymentStatus(ctx context.Context, orderID string, status entities.PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, exists := r.orders[orderID]
	if !exists {
		return repositories.ErrOrderNotFound
	}

	order.PaymentStatus = status
	order.UpdatedAt = time.Now()
	return nil
}

func copyOrder(order *entities.Order) *entities.Order {
	orderCopy := *order
	orderCopy.Items = append([]entities.Item(nil), order.Items...)
	return &orderCopy
}

func sortNewestFirst(orders []*entities.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

func page[T any](items []T, skip, limit int) []T {
	if skip < 0 || skip >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	return items[skip:end]
}
