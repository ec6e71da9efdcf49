package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecosync-hub/config"
	"ecosync-hub/internal/handler"
	"ecosync-hub/internal/middleware"
	"ecosync-hub/internal/realtime"
	"ecosync-hub/internal/redis"
	"ecosync-hub/internal/services"
	"ecosync-hub/internal/transport/httpdto"
	"ecosync-hub/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Message      *handler.MessageHandler
	Notification *handler.NotificationHandler
	Badge        *handler.BadgeHandler
	Friend       *handler.FriendHandler
	Shop         *handler.ShopHandler
	Payment      *handler.PaymentHandler
	Challenge    *handler.ChallengeHandler
	Admin        *handler.AdminHandler
	Upload       *handler.UploadHandler
	Public       *handler.PublicHandler
	Realtime     *realtime.Handler
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.AppPort),
			Handler: engine,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

// SetupRoutes mounts the full API surface. The WebSocket endpoint does its
// own token check inside the connect handler, so it sits outside the auth
// middleware.
func (s *Server) SetupRoutes(handlers *Handlers, authService *services.AuthService, limiter *redis.RateLimiter) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.CORSMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"message": "pong"}))
	})

	authGuard := middleware.AuthMiddleware(authService, s.logger)
	adminGuard := middleware.RequireRole("admin")

	auth := s.engine.Group("/api/auth")
	auth.Use(middleware.AuthRateLimitMiddleware(limiter, s.logger))
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
	}

	s.engine.GET("/api/stats", handlers.Public.Stats)
	s.engine.GET("/api/leaderboard/top", handlers.Public.Leaderboard)

	users := s.engine.Group("/api/users", authGuard)
	{
		users.GET("/me", handlers.User.Me)
		users.GET("/search", handlers.User.Search)
	}

	messages := s.engine.Group("/api/messages", authGuard)
	{
		messages.GET("/conversations", handlers.Message.Conversations)
		messages.GET("", handlers.Message.Thread)
		messages.POST("", handlers.Message.Send)
		messages.POST("/mark-read", handlers.Message.MarkRead)
		messages.GET("/unread-count", handlers.Message.UnreadCount)
		messages.DELETE("/:id", handlers.Message.Delete)
	}

	notifications := s.engine.Group("/api/notifications", authGuard)
	{
		notifications.GET("", handlers.Notification.List)
		notifications.PUT("/:id/read", handlers.Notification.MarkRead)
		notifications.DELETE("/:id", handlers.Notification.Delete)
	}

	s.engine.GET("/api/badges", authGuard, handlers.Badge.Counts)

	friends := s.engine.Group("/api/friends", authGuard)
	{
		friends.GET("", handlers.Friend.List)
		friends.GET("/requests", handlers.Friend.Pending)
		friends.POST("/request", handlers.Friend.Request)
		friends.POST("/accept/:id", handlers.Friend.Accept)
	}

	products := s.engine.Group("/api/products")
	{
		products.GET("", handlers.Shop.Catalog)
		products.GET("/:id", handlers.Shop.GetProduct)
		products.POST("", authGuard, middleware.RequireAnyRole("seller", "admin"), handlers.Shop.CreateProduct)
	}

	cart := s.engine.Group("/api/cart", authGuard)
	{
		cart.GET("", handlers.Shop.Cart)
		cart.POST("", handlers.Shop.AddToCart)
		cart.DELETE("/:id", handlers.Shop.RemoveFromCart)
		cart.POST("/checkout", handlers.Shop.Checkout)
	}

	wishlist := s.engine.Group("/api/wishlist", authGuard)
	{
		wishlist.GET("", handlers.Shop.Wishlist)
		wishlist.POST("", handlers.Shop.AddToWishlist)
		wishlist.DELETE("/:id", handlers.Shop.RemoveFromWishlist)
	}

	payment := s.engine.Group("/api/payment", authGuard)
	{
		payment.POST("/initiate", handlers.Payment.Initiate)
		payment.POST("/confirm", handlers.Payment.Confirm)
	}

	challenges := s.engine.Group("/api/challenges", authGuard)
	{
		challenges.GET("", handlers.Challenge.List)
		challenges.POST("/join/:id", handlers.Challenge.Join)
		challenges.POST("/complete/:id", handlers.Challenge.Complete)
	}

	admin := s.engine.Group("/api/admin", authGuard, adminGuard)
	{
		admin.POST("/sellers/:id/approve", handlers.Admin.ApproveSeller)
		admin.GET("/products/pending", handlers.Admin.PendingProducts)
		admin.POST("/products/:id/approve", handlers.Admin.ApproveProduct)
	}

	s.engine.POST("/api/upload/presign", authGuard, handlers.Upload.Presign)

	s.engine.GET("/ws", handlers.Realtime.Connect)
}

func (s *Server) Start() error {
	go func() {
		s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Errorf("Error in starting the server: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	s.logger.Infof("Shutdown signal received, draining connections")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Errorf("Error in the graceful shutdown of the server: %s", err)
		return err
	}

	s.logger.Infof("Server stopped gracefully")
	return nil
}
