package handler

import (
	"net/http"

	"bookstore-service/internal/delivery/http/middleware"
	"bookstore-service/internal/delivery/http/site"
	"bookstore-service/internal/infrastructure/logger"
	"bookstore-service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	books    *usecase.BookUseCase
	auth     *usecase.AuthUseCase
	orders   *usecase.OrderUseCase
	logger   *logger.Logger
	validate *validator.Validate
}

func NewHandler(books *usecase.BookUseCase, auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, logger *logger.Logger) *Handler {
	return &Handler{
		books:    books,
		auth:     auth,
		orders:   orders,
		logger:   logger,
		validate: newValidator(),
	}
}

type Deps struct {
	Books   *usecase.BookUseCase
	Auth    *usecase.AuthUseCase
	Orders  *usecase.OrderUseCase
	Tasks   *usecase.TaskUseCase
	Logger  *logger.Logger
	GinMode string
}

func API(deps Deps) *gin.Engine {
	if deps.GinMode == gin.ReleaseMode || deps.GinMode == gin.TestMode {
		gin.SetMode(deps.GinMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(middleware.TraceID(), middleware.Logger(deps.Logger), middleware.Recovery(deps.Logger))

	h := NewHandler(deps.Books, deps.Auth, deps.Orders, deps.Logger)
	m := middleware.NewMid(deps.Auth, deps.Logger)

	r.GET("/", welcome)
	r.GET("/ping", healthCheck)

	api := r.Group("/api")
	{
		books := api.Group("/books")
		books.GET("", h.ListBooks)
		books.GET("/:id", h.GetBook)
		books.POST("", m.Authentication(), m.Admin(), h.CreateBook)
		books.PUT("/:id", m.Authentication(), m.Admin(), h.UpdateBook)
		books.DELETE("/:id", m.Authentication(), m.Admin(), h.DeleteBook)

		authGroup := api.Group("/auth")
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)

		users := api.Group("/users", m.Authentication())
		users.GET("/profile", h.GetProfile)
		users.PUT("/profile", h.UpdateProfile)

		orders := api.Group("/orders", m.Authentication())
		orders.POST("", h.CreateOrder)
		orders.GET("", h.ListMyOrders)

		admin := orders.Group("/admin/orders", m.Admin())
		admin.GET("", h.ListAllOrders)
		admin.PUT("/:id/status", h.UpdateOrderStatus)
		admin.PUT("/:id/payment-status", h.UpdatePaymentStatus)
		admin.PUT("/:id/cancel", h.CancelOrder)

		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id", h.CancelOrder)
	}

	site.Register(r, deps.Tasks, deps.Logger)
	r.NoRoute(site.NotFound)

	return r
}

func welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to BookStore API"})
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
