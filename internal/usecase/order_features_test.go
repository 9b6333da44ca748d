package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"bookstore-service/internal/domain/entities"
	"bookstore-service/internal/infrastructure/logger"
	"bookstore-service/internal/infrastructure/memory"

	"github.com/cucumber/godog"
)

type orderFeatureContext struct {
	orders    *OrderUseCase
	orderRepo *memory.OrderRepositoryMemory
	bookRepo  *memory.BookRepositoryMemory
	userRepo  *memory.UserRepositoryMemory
	users     map[string]*entities.User
	books     map[string]*entities.Book
	lastOrder *entities.Order
	err       error
}

func (c *orderFeatureContext) reset() {
	c.orderRepo = memory.NewOrderRepositoryMemory()
	c.bookRepo = memory.NewBookRepositoryMemory()
	c.userRepo = memory.NewUserRepositoryMemory()
	c.orders = NewOrderUseCase(c.orderRepo, c.bookRepo, c.userRepo, nil, logger.NewNop())
	c.users = make(map[string]*entities.User)
	c.books = make(map[string]*entities.Book)
	c.lastOrder = nil
	c.err = nil
}

func (c *orderFeatureContext) addUser(name string, role entities.Role) error {
	user := &entities.User{Username: name, Email: name + "@example.com", Role: role}
	if err := c.userRepo.Create(context.Background(), user); err != nil {
		return err
	}
	c.users[name] = user
	return nil
}

func (c *orderFeatureContext) aCustomer(name string) error {
	return c.addUser(name, entities.RoleUser)
}

func (c *orderFeatureContext) anAdmin(name string) error {
	return c.addUser(name, entities.RoleAdmin)
}

func (c *orderFeatureContext) aBookPricedWithStock(title string, price float64, stock int) error {
	book := &entities.Book{
		Title:    title,
		Author:   "Author",
		ISBN:     fmt.Sprintf("%010d", len(c.books)+1),
		Category: "Fiction",
		Price:    price,
		Stock:    stock,
	}
	if err := c.bookRepo.Create(context.Background(), book); err != nil {
		return err
	}
	c.books[title] = book
	return nil
}

func (c *orderFeatureContext) user(name string) (*entities.User, error) {
	user, ok := c.users[name]
	if !ok {
		return nil, fmt.Errorf("unknown user %q", name)
	}
	return user, nil
}

func (c *orderFeatureContext) placeOrder(name string, items []entities.ItemRequest) error {
	user, err := c.user(name)
	if err != nil {
		return err
	}

	details, err := c.orders.CreateOrder(context.Background(), user.ID, CreateOrderInput{
		Items:         items,
		PaymentMethod: entities.PaymentCreditCard,
	})
	c.err = err
	if err == nil {
		c.lastOrder = details.Order
	}
	return nil
}

func (c *orderFeatureContext) orders1(name string, qty int, title string) error {
	return c.placeOrder(name, []entities.ItemRequest{
		{BookID: c.books[title].ID, Quantity: qty},
	})
}

func (c *orderFeatureContext) orders2(name string, qtyA int, titleA string, qtyB int, titleB string) error {
	return c.placeOrder(name, []entities.ItemRequest{
		{BookID: c.books[titleA].ID, Quantity: qtyA},
		{BookID: c.books[titleB].ID, Quantity: qtyB},
	})
}

func (c *orderFeatureContext) cancelsTheLastOrder(name string) error {
	user, err := c.user(name)
	if err != nil {
		return err
	}
	if c.lastOrder == nil {
		return errors.New("no order was placed")
	}

	_, c.err = c.orders.CancelOrder(context.Background(), user, c.lastOrder.OrderID)
	return nil
}

func (c *orderFeatureContext) setsTheLastOrderStatusTo(name, status string) error {
	if _, err := c.user(name); err != nil {
		return err
	}
	if c.lastOrder == nil {
		return errors.New("no order was placed")
	}

	_, c.err = c.orders.UpdateOrderStatus(context.Background(), c.lastOrder.OrderID, entities.OrderStatus(status))
	return nil
}

func (c *orderFeatureContext) theOrderIsAcceptedWithTotal(total float64) error {
	if c.err != nil {
		return fmt.Errorf("expected order to be accepted, got %v", c.err)
	}
	if c.lastOrder.TotalAmount != total {
		return fmt.Errorf("expected total %.2f, got %.2f", total, c.lastOrder.TotalAmount)
	}
	return nil
}

func (c *orderFeatureContext) theOrderIsRejectedWith(message string) error {
	if c.err == nil {
		return errors.New("expected order to be rejected")
	}
	if !errors.Is(c.err, ErrInsufficientStock) {
		return fmt.Errorf("expected insufficient stock, got %v", c.err)
	}
	return c.theRequestFailsWith(message)
}

func (c *orderFeatureContext) theRequestFailsWith(message string) error {
	if c.err == nil {
		return errors.New("expected request to fail")
	}
	if !strings.Contains(c.err.Error(), message) {
		return fmt.Errorf("expected error containing %q, got %q", message, c.err.Error())
	}
	return nil
}

func (c *orderFeatureContext) hasInStock(title string, stock int) error {
	book, err := c.bookRepo.GetByID(context.Background(), c.books[title].ID)
	if err != nil {
		return err
	}
	if book.Stock != stock {
		return fmt.Errorf("expected %s stock %d, got %d", title, stock, book.Stock)
	}
	return nil
}

func (c *orderFeatureContext) theLastOrderIs(status string) error {
	order, err := c.orderRepo.GetByID(context.Background(), c.lastOrder.OrderID)
	if err != nil {
		return err
	}
	if string(order.Status) != status {
		return fmt.Errorf("expected status %s, got %s", status, order.Status)
	}
	return nil
}

func InitializeOrderScenario(ctx *godog.ScenarioContext) {
	tc := &orderFeatureContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^a customer "([^"]*)"$`, tc.aCustomer)
	ctx.Step(`^an admin "([^"]*)"$`, tc.anAdmin)
	ctx.Step(`^a book "([^"]*)" priced (\d+\.\d+) with (\d+) in stock$`, tc.aBookPricedWithStock)

	ctx.Step(`^"([^"]*)" orders (\d+) of "([^"]*)"$`, tc.orders1)
	ctx.Step(`^"([^"]*)" orders (\d+) of "([^"]*)" and (\d+) of "([^"]*)"$`, tc.orders2)
	ctx.Step(`^"([^"]*)" cancels the last order$`, tc.cancelsTheLastOrder)
	ctx.Step(`^"([^"]*)" sets the last order status to "([^"]*)"$`, tc.setsTheLastOrderStatusTo)

	ctx.Step(`^the order is accepted with total (\d+\.\d+)$`, tc.theOrderIsAcceptedWithTotal)
	ctx.Step(`^the order is rejected with "([^"]*)"$`, tc.theOrderIsRejectedWith)
	ctx.Step(`^the request fails with "([^"]*)"$`, tc.theRequestFailsWith)
	ctx.Step(`^"([^"]*)" has (\d+) in stock$`, tc.hasInStock)
	ctx.Step(`^the last order is "([^"]*)"$`, tc.theLastOrderIs)
}

func TestOrderFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeOrderScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/orders.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
