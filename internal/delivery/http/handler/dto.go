package handler

import (
	"strings"
	"time"

	"bookstore-service/internal/domain/entities"
	"bookstore-service/internal/usecase"
)

type CreateBookRequest struct {
	Title         string   `json:"title" validate:"required,min=1,max=200"`
	Author        string   `json:"author" validate:"required,min=1,max=100"`
	ISBN          string   `json:"isbn" validate:"required,min=10,max=13"`
	Price         *float64 `json:"price" validate:"required,gte=0"`
	Category      string   `json:"category" validate:"required"`
	Stock         *int     `json:"stock" validate:"required,gte=0"`
	Description   string   `json:"description" validate:"max=1000"`
	ImageURL      string   `json:"imageUrl" validate:"omitempty,url"`
	Publisher     string   `json:"publisher" validate:"max=200"`
	PublishedDate string   `json:"publishedDate" validate:"omitempty,isodate"`
}

func (r *CreateBookRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
	r.ISBN = strings.TrimSpace(r.ISBN)
	r.Category = strings.TrimSpace(r.Category)
	r.Description = strings.TrimSpace(r.Description)
}

func (r *CreateBookRequest) toBook() *entities.Book {
	book := &entities.Book{
		Title:       r.Title,
		Author:      r.Author,
		ISBN:        r.ISBN,
		Price:       *r.Price,
		Category:    r.Category,
		Stock:       *r.Stock,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Publisher:   r.Publisher,
	}
	if r.PublishedDate != "" {
		if t, err := parseDate(r.PublishedDate); err == nil {
			book.PublishedDate = &t
		}
	}
	return book
}

// UpdateBookRequest applies the create rules to whichever fields are sent.
type UpdateBookRequest struct {
	Title         *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Author        *string  `json:"author" validate:"omitempty,min=1,max=100"`
	ISBN          *string  `json:"isbn" validate:"omitempty,min=10,max=13"`
	Price         *float64 `json:"price" validate:"omitempty,gte=0"`
	Category      *string  `json:"category" validate:"omitempty,min=1"`
	Stock         *int     `json:"stock" validate:"omitempty,gte=0"`
	Description   *string  `json:"description" validate:"omitempty,max=1000"`
	ImageURL      *string  `json:"imageUrl" validate:"omitempty,url"`
	Publisher     *string  `json:"publisher" validate:"omitempty,max=200"`
	PublishedDate *string  `json:"publishedDate" validate:"omitempty,isodate"`
}

func (r *UpdateBookRequest) normalize() {
	for _, field := range []*string{r.Title, r.Author, r.ISBN, r.Category, r.Description} {
		if field != nil {
			*field = strings.TrimSpace(*field)
		}
	}
}

func (r *UpdateBookRequest) toUpdate() entities.BookUpdate {
	update := entities.BookUpdate{
		Title:       r.Title,
		Author:      r.Author,
		ISBN:        r.ISBN,
		Price:       r.Price,
		Category:    r.Category,
		Stock:       r.Stock,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Publisher:   r.Publisher,
	}
	if r.PublishedDate != nil {
		if t, err := parseDate(*r.PublishedDate); err == nil {
			update.PublishedDate = &t
		}
	}
	return update
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,password"`
}

func (r *RegisterRequest) normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type UpdateProfileRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=30,username"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty,max=20"`
}

func (r *UpdateProfileRequest) normalize() {
	if r.Username != nil {
		*r.Username = strings.TrimSpace(*r.Username)
	}
	if r.Email != nil {
		*r.Email = strings.ToLower(strings.TrimSpace(*r.Email))
	}
	if r.Phone != nil {
		*r.Phone = strings.TrimSpace(*r.Phone)
	}
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" validate:"dive"`
	ShippingAddress AddressRequest     `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod" validate:"required,oneof=credit_card paypal stripe"`
}

type OrderItemRequest struct {
	Book     string `json:"book" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=1"`
}

type AddressRequest struct {
	Street  string `json:"street" validate:"max=200"`
	City    string `json:"city" validate:"max=100"`
	State   string `json:"state" validate:"max=100"`
	ZipCode string `json:"zipCode" validate:"max=20"`
	Country string `json:"country" validate:"max=100"`
}

func (r *CreateOrderRequest) toInput() usecase.CreateOrderInput {
	items := make([]entities.ItemRequest, len(r.Items))
	for i, item := range r.Items {
		items[i] = entities.ItemRequest{BookID: strings.TrimSpace(item.Book), Quantity: item.Quantity}
	}
	return usecase.CreateOrderInput{
		Items: items,
		ShippingAddress: entities.Address{
			Street:  strings.TrimSpace(r.ShippingAddress.Street),
			City:    strings.TrimSpace(r.ShippingAddress.City),
			State:   strings.TrimSpace(r.ShippingAddress.State),
			ZipCode: strings.TrimSpace(r.ShippingAddress.ZipCode),
			Country: strings.TrimSpace(r.ShippingAddress.Country),
		},
		PaymentMethod: entities.PaymentMethod(r.PaymentMethod),
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus" validate:"required"`
}

type BookListResponse struct {
	Books       []*entities.Book `json:"books"`
	TotalPages  int              `json:"totalPages"`
	CurrentPage int              `json:"currentPage"`
	Total       int64            `json:"total"`
}

type SessionResponse struct {
	ID       string        `json:"_id"`
	Username string        `json:"username"`
	Email    string        `json:"email"`
	Role     entities.Role `json:"role"`
	Token    string        `json:"token"`
}

func toSessionResponse(session *usecase.Session) SessionResponse {
	return SessionResponse{
		ID:       session.User.ID,
		Username: session.User.Username,
		Email:    session.User.Email,
		Role:     session.User.Role,
		Token:    session.Token,
	}
}

type UserSummary struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type BookSummary struct {
	ID       string  `json:"_id"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	ImageURL string  `json:"imageUrl,omitempty"`
	Price    float64 `json:"price"`
}

type OrderItemResponse struct {
	Book     *BookSummary `json:"book"`
	Quantity int          `json:"quantity"`
	Price    float64      `json:"price"`
}

type OrderResponse struct {
	ID              string                 `json:"_id"`
	User            *UserSummary           `json:"user"`
	Items           []OrderItemResponse    `json:"items"`
	TotalAmount     float64                `json:"totalAmount"`
	Status          entities.OrderStatus   `json:"status"`
	PaymentStatus   entities.PaymentStatus `json:"paymentStatus"`
	PaymentMethod   entities.PaymentMethod `json:"paymentMethod"`
	ShippingAddress entities.Address       `json:"shippingAddress"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

type OrderListResponse struct {
	Orders      []OrderResponse `json:"orders"`
	TotalPages  int             `json:"totalPages"`
	CurrentPage int             `json:"currentPage"`
	Total       int64           `json:"total"`
}

func toOrderResponse(details *usecase.OrderDetails) OrderResponse {
	order := details.Order
	resp := OrderResponse{
		ID:              order.OrderID,
		Items:           make([]OrderItemResponse, len(order.Items)),
		TotalAmount:     order.TotalAmount,
		Status:          order.Status,
		PaymentStatus:   order.PaymentStatus,
		PaymentMethod:   order.PaymentMethod,
		ShippingAddress: order.ShippingAddress,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}

	if user := details.User; user != nil {
		resp.User = &UserSummary{ID: user.ID, Username: user.Username, Email: user.Email}
	}

	for i, item := range order.Items {
		resp.Items[i] = OrderItemResponse{Quantity: item.Quantity, Price: item.Price}
		if book, ok := details.Books[item.BookID]; ok {
			resp.Items[i].Book = &BookSummary{
				ID:       book.ID,
				Title:    book.Title,
				Author:   book.Author,
				ImageURL: book.ImageURL,
				Price:    book.Price,
			}
		}
	}
	return resp
}

func toOrderResponses(details []*usecase.OrderDetails) []OrderResponse {
	out := make([]OrderResponse, len(details))
	for i, d := range details {
		out[i] = toOrderResponse(d)
	}
	return out
}
