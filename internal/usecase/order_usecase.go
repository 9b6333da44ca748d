package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"bookstore-service/internal/domain/entities"
	"bookstore-service/internal/domain/repositories"
	"bookstore-service/internal/infrastructure/logger"

	"github.com/shopspring/decimal"
)

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event entities.OrderEvent) error
	Close()
}

type OrderUseCase struct {
	orderRepo repositories.OrderRepository
	bookRepo  repositories.BookRepository
	userRepo  repositories.UserRepository
	publisher EventPublisher
	logger    *logger.Logger
	now       func() time.Time
}

func NewOrderUseCase(
	orderRepo repositories.OrderRepository,
	bookRepo repositories.BookRepository,
	userRepo repositories.UserRepository,
	publisher EventPublisher,
	logger *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo: orderRepo,
		bookRepo:  bookRepo,
		userRepo:  userRepo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

type CreateOrderInput struct {
	Items           []entities.ItemRequest
	ShippingAddress entities.Address
	PaymentMethod   entities.PaymentMethod
}

// OrderDetails is an order together with the user and books it references.
// Books that were deleted after the order was placed are absent from Books.
type OrderDetails struct {
	Order *entities.Order
	User  *entities.User
	Books map[string]*entities.Book
}

type OrderPage struct {
	Orders      []*OrderDetails
	TotalPages  int
	CurrentPage int
	Total       int64
}

// CreateOrder prices the requested items against the catalog, reserves stock
// and stores the order. Either every item is reserved and the order saved,
// or no stock is changed at all.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, userID string, input CreateOrderInput) (*OrderDetails, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	if len(input.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	for i, item := range input.Items {
		if item.BookID == "" {
			return nil, fmt.Errorf("%w: item %d has no book", ErrInvalidItem, i)
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item %d has invalid quantity", ErrInvalidItem, i)
		}
	}

	lines, total, err := uc.reserve(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	order := &entities.Order{
		UserID:          userID,
		Items:           lines,
		TotalAmount:     total,
		Status:          entities.StatusPending,
		PaymentStatus:   entities.PaymentPending,
		PaymentMethod:   input.PaymentMethod,
		ShippingAddress: input.ShippingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.orderRepo.Create(ctx, order); err != nil {
		uc.release(ctx, lines)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	uc.logger.Info("Order created",
		"order_id", order.OrderID,
		"user_id", userID,
		"items", len(lines),
		"total_amount", total)

	uc.publish(entities.EventOrderCreated, order)

	return uc.details(ctx, order)
}

// reserve walks the items in order, snapshotting prices and decrementing
// stock with a guarded update. On the first failure every reservation made
// so far is released.
func (uc *OrderUseCase) reserve(ctx context.Context, items []entities.ItemRequest) ([]entities.Item, float64, error) {
	lines := make([]entities.Item, 0, len(items))
	total := decimal.Zero

	fail := func(err error) ([]entities.Item, float64, error) {
		uc.release(ctx, lines)
		return nil, 0, err
	}

	for _, item := range items {
		book, err := uc.bookRepo.GetByID(ctx, item.BookID)
		if err != nil {
			if errors.Is(err, repositories.ErrBookNotFound) {
				return fail(fmt.Errorf("%w: %s", ErrBookNotFound, item.BookID))
			}
			return fail(fmt.Errorf("failed to get book: %w", err))
		}

		if book.Stock < item.Quantity {
			return fail(insufficientStock(book.Title, book.Stock))
		}

		if err := uc.bookRepo.DecrementStock(ctx, book.ID, item.Quantity); err != nil {
			switch {
			case errors.Is(err, repositories.ErrInsufficientStock):
				available := 0
				if fresh, getErr := uc.bookRepo.GetByID(ctx, book.ID); getErr == nil {
					available = fresh.Stock
				}
				return fail(insufficientStock(book.Title, available))
			case errors.Is(err, repositories.ErrBookNotFound):
				return fail(fmt.Errorf("%w: %s", ErrBookNotFound, item.BookID))
			default:
				return fail(fmt.Errorf("failed to reserve stock: %w", err))
			}
		}

		lines = append(lines, entities.Item{
			BookID:   book.ID,
			Quantity: item.Quantity,
			Price:    book.Price,
		})
		total = total.Add(decimal.NewFromFloat(book.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return lines, total.InexactFloat64(), nil
}

// release puts reserved units back. It runs even when the request context
// has been cancelled.
func (uc *OrderUseCase) release(ctx context.Context, lines []entities.Item) {
	ctx = context.WithoutCancel(ctx)
	for _, line := range lines {
		if err := uc.bookRepo.IncrementStock(ctx, line.BookID, line.Quantity); err != nil {
			uc.logger.Error("Failed to release reserved stock",
				"book_id", line.BookID,
				"quantity", line.Quantity,
				"error", err)
		}
	}
}

func insufficientStock(title string, available int) error {
	return fmt.Errorf("%w for: %s. Available: %d", ErrInsufficientStock, title, available)
}

func (uc *OrderUseCase) GetOrder(ctx context.Context, requester *entities.User, orderID string) (*OrderDetails, error) {
	order, err := uc.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.UserID != requester.ID && !requester.IsAdmin() {
		return nil, fmt.Errorf("%w to view this order", ErrForbidden)
	}

	return uc.details(ctx, order)
}

func (uc *OrderUseCase) ListUserOrders(ctx context.Context, userID string) ([]*OrderDetails, error) {
	orders, err := uc.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return uc.populate(ctx, orders)
}

func (uc *OrderUseCase) ListOrders(ctx context.Context, page, limit int) (*OrderPage, error) {
	page, limit = normalizePage(page, limit)

	orders, total, err := uc.orderRepo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	details, err := uc.populate(ctx, orders)
	if err != nil {
		return nil, err
	}

	return &OrderPage{
		Orders:      details,
		TotalPages:  totalPages(total, limit),
		CurrentPage: page,
		Total:       total,
	}, nil
}

// CancelOrder lets an owner cancel a pending order and an admin cancel an
// order in any status. Stock is restored for every line.
func (uc *OrderUseCase) CancelOrder(ctx context.Context, requester *entities.User, orderID string) (*OrderDetails, error) {
	order, err := uc.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.UserID != requester.ID && !requester.IsAdmin() {
		return nil, fmt.Errorf("%w to cancel this order", ErrForbidden)
	}
	if order.Status == entities.StatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	if !requester.IsAdmin() && order.Status != entities.StatusPending {
		return nil, ErrCannotCancel
	}

	if err := uc.cancel(ctx, order); err != nil {
		return nil, err
	}
	return uc.details(ctx, order)
}

func (uc *OrderUseCase) cancel(ctx context.Context, order *entities.Order) error {
	if err := uc.transition(ctx, order, entities.StatusCancelled); err != nil {
		return err
	}

	for _, item := range order.Items {
		err := uc.bookRepo.IncrementStock(ctx, item.BookID, item.Quantity)
		switch {
		case err == nil:
		case errors.Is(err, repositories.ErrBookNotFound):
			uc.logger.Warn("Book removed from catalog, stock not restored",
				"order_id", order.OrderID,
				"book_id", item.BookID)
		default:
			uc.logger.Error("Failed to restore stock",
				"order_id", order.OrderID,
				"book_id", item.BookID,
				"quantity", item.Quantity,
				"error", err)
		}
	}

	uc.logger.Info("Order cancelled", "order_id", order.OrderID)
	uc.publish(entities.EventOrderCancelled, order)
	return nil
}

// UpdateOrderStatus moves an order along the status graph. Moving to
// cancelled goes through cancellation so stock is restored.
func (uc *OrderUseCase) UpdateOrderStatus(ctx context.Context, orderID string, status entities.OrderStatus) (*OrderDetails, error) {
	if !entities.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	order, err := uc.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == status {
		return uc.details(ctx, order)
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w from %s to %s", ErrInvalidTransition, order.Status, status)
	}

	if status == entities.StatusCancelled {
		if err := uc.cancel(ctx, order); err != nil {
			return nil, err
		}
		return uc.details(ctx, order)
	}

	if err := uc.transition(ctx, order, status); err != nil {
		return nil, err
	}

	uc.publish(entities.EventOrderStatusUpdated, order)
	return uc.details(ctx, order)
}

func (uc *OrderUseCase) UpdatePaymentStatus(ctx context.Context, orderID string, status entities.PaymentStatus) (*OrderDetails, error) {
	if !entities.ValidPaymentStatus(status) {
		return nil, ErrInvalidPaymentStatus
	}
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}

	if err := uc.orderRepo.UpdatePaymentStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}

	order, err := uc.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	uc.publish(entities.EventOrderPaymentStatusUpdated, order)
	return uc.details(ctx, order)
}

// transition applies from -> to only if nobody changed the order since it
// was read, and updates order in place.
func (uc *OrderUseCase) transition(ctx context.Context, order *entities.Order, to entities.OrderStatus) error {
	err := uc.orderRepo.TransitionStatus(ctx, order.OrderID, order.Status, to)
	switch {
	case err == nil:
		order.Status = to
		order.UpdatedAt = uc.now()
		return nil
	case errors.Is(err, repositories.ErrOrderNotFound):
		return ErrOrderNotFound
	case errors.Is(err, repositories.ErrStatusConflict):
		return fmt.Errorf("%w: order was modified concurrently", ErrInvalidTransition)
	default:
		return fmt.Errorf("failed to update order status: %w", err)
	}
}

func (uc *OrderUseCase) getOrder(ctx context.Context, orderID string) (*entities.Order, error) {
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}

	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

func (uc *OrderUseCase) details(ctx context.Context, order *entities.Order) (*OrderDetails, error) {
	details, err := uc.populate(ctx, []*entities.Order{order})
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

// populate resolves the users and books of a batch of orders with one
// lookup per collection.
func (uc *OrderUseCase) populate(ctx context.Context, orders []*entities.Order) ([]*OrderDetails, error) {
	userIDs := make([]string, 0, len(orders))
	bookIDs := make([]string, 0)
	seenUsers := make(map[string]bool)
	seenBooks := make(map[string]bool)
	for _, order := range orders {
		if !seenUsers[order.UserID] {
			seenUsers[order.UserID] = true
			userIDs = append(userIDs, order.UserID)
		}
		for _, item := range order.Items {
			if !seenBooks[item.BookID] {
				seenBooks[item.BookID] = true
				bookIDs = append(bookIDs, item.BookID)
			}
		}
	}

	users, err := uc.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load order users: %w", err)
	}
	books, err := uc.bookRepo.GetByIDs(ctx, bookIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load order books: %w", err)
	}

	out := make([]*OrderDetails, len(orders))
	for i, order := range orders {
		out[i] = &OrderDetails{
			Order: order,
			User:  users[order.UserID],
			Books: books,
		}
	}
	return out, nil
}

func (uc *OrderUseCase) publish(eventType string, order *entities.Order) {
	if uc.publisher == nil {
		return
	}

	event := entities.NewOrderEvent(eventType, order)
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := uc.publisher.PublishOrderEvent(pubCtx, event); err != nil {
			uc.logger.Warn("Failed to publish order event",
				"type", eventType,
				"order_id", event.OrderID,
				"error", err)
		}
	}()
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	// (page-1)*limit must stay representable.
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	return int(math.Ceil(float64(total) / float64(limit)))
}
