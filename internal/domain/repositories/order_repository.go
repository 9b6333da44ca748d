package repositories

import (
	"context"

	"bookstore-service/internal/domain/entities"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entities.Order) error
	GetByID(ctx context.Context, orderID string) (*entities.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*entities.Order, error)
	List(ctx context.Context, skip, limit int) ([]*entities.Order, int64, error)
	// TransitionStatus sets the status only while the stored status still
	// equals from, returning ErrStatusConflict otherwise.
	TransitionStatus(ctx context.Context, orderID string, from, to entities.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, orderID string, status entities.PaymentStatus) error
}
