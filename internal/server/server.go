package server

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"course-market/internal/handler"
	"course-market/internal/middleware"
	"course-market/internal/service"
)

type Server struct {
	echo           *echo.Echo
	authService    service.AuthService
	authHandler    *handler.AuthHandler
	paymentHandler *handler.PaymentHandler
	productHandler *handler.ProductHandler
	orderHandler   *handler.OrderHandler
	reviewHandler  *handler.ReviewHandler
	userHandler    *handler.UserHandler
	adminHandler   *handler.AdminHandler
}

func NewServer(
	authService service.AuthService,
	checkoutService service.CheckoutService,
	productService service.ProductService,
	orderService service.OrderService,
	reviewService service.ReviewService,
	userService service.UserService,
	baseURL string,
) *Server {
	e := echo.New()

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	s := &Server{
		echo:           e,
		authService:    authService,
		authHandler:    handler.NewAuthHandler(authService, baseURL),
		paymentHandler: handler.NewPaymentHandler(checkoutService),
		productHandler: handler.NewProductHandler(productService),
		orderHandler:   handler.NewOrderHandler(orderService),
		reviewHandler:  handler.NewReviewHandler(reviewService),
		userHandler:    handler.NewUserHandler(userService),
		adminHandler:   handler.NewAdminHandler(orderService, userService, reviewService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")
	authed := middleware.Auth(s.authService)
	optionalAuth := middleware.OptionalAuth(s.authService)

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- auth --------
	api.POST("/auth/kakao", s.authHandler.KakaoLogin)
	api.GET("/auth/kakao/callback", s.authHandler.KakaoCallback)
	api.POST("/auth/profile", s.authHandler.EnsureProfile, authed)
	api.GET("/auth/me", s.authHandler.Me, authed)

	// -------- payments --------
	// Optional auth: the checkout service answers an unauthenticated caller
	// with the login redirect target itself.
	api.POST("/checkout/:productID", s.paymentHandler.Checkout, optionalAuth)
	api.POST("/payment/confirm", s.paymentHandler.Confirm, optionalAuth)
	api.GET("/payment/success", s.paymentHandler.HandleSuccess, optionalAuth)
	api.GET("/payment/fail", s.paymentHandler.HandleFail)

	// -------- catalog --------
	api.GET("/products", s.productHandler.List)
	api.GET("/products/:productID", s.productHandler.Get)
	api.GET("/products/:productID/reviews", s.reviewHandler.ListByProduct)

	// -------- orders / reviews / profile --------
	api.GET("/orders", s.orderHandler.ListMine, authed)
	api.GET("/orders/:orderID", s.orderHandler.Get, authed)
	api.POST("/reviews", s.reviewHandler.Submit, authed)
	api.GET("/reviews/me", s.reviewHandler.ListMine, authed)
	api.PUT("/reviews/:reviewID", s.reviewHandler.Update, authed)
	api.DELETE("/reviews/:reviewID", s.reviewHandler.Delete, authed)
	api.PUT("/users/me", s.userHandler.UpdateMe, authed)

	// -------- back office --------
	admin := api.Group("/admin", authed, middleware.RequireAdmin())
	admin.GET("/users", s.adminHandler.ListUsers)
	admin.PATCH("/users/:uid", s.adminHandler.UpdateUser)
	admin.GET("/orders", s.adminHandler.ListOrders)
	admin.PATCH("/orders/:orderID/status", s.adminHandler.UpdateOrderStatus)
	admin.GET("/reviews", s.adminHandler.ListReviews)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
