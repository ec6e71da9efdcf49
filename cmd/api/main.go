package main

import (
	"context"
	"log"
	"time"

	"ecosync-hub/config"
	"ecosync-hub/internal/domain/challenge"
	"ecosync-hub/internal/domain/message"
	"ecosync-hub/internal/domain/notification"
	"ecosync-hub/internal/domain/shop"
	"ecosync-hub/internal/domain/social"
	"ecosync-hub/internal/domain/user"
	"ecosync-hub/internal/handler"
	"ecosync-hub/internal/realtime"
	"ecosync-hub/internal/redis"
	"ecosync-hub/internal/repository"
	"ecosync-hub/internal/server"
	"ecosync-hub/internal/services"
	"ecosync-hub/internal/storage"
	"ecosync-hub/pkg/database"
	"ecosync-hub/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	mode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		mode = logger.ProductionMode
	}
	l := logger.New(mode)
	defer l.Logger.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&user.User{},
		&message.Message{},
		&notification.Notification{},
		&social.Friend{},
		&shop.Product{},
		&shop.CartItem{},
		&shop.WishlistItem{},
		&shop.Order{},
		&shop.OrderItem{},
		&challenge.Challenge{},
		&challenge.UserChallenge{},
		&challenge.CarbonLog{},
	); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	redisClient := redis.NewClient(redis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
	})
	limiter := redis.NewRateLimiter(redisClient, redis.DefaultRateLimitConfig())

	// S3 is optional; without it the presign endpoint reports not configured.
	var s3Client *storage.Client
	if cfg.S3Bucket != "" {
		s3Client, err = storage.NewClient(context.Background(), storage.S3Config{
			Region:     cfg.S3Region,
			Bucket:     cfg.S3Bucket,
			AccessKey:  cfg.S3AccessKey,
			SecretKey:  cfg.S3SecretKey,
			Endpoint:   cfg.S3Endpoint,
			PublicBase: cfg.S3PublicBase,
			PresignTTL: 15 * time.Minute,
		})
		if err != nil {
			log.Fatalf("Failed to initialize S3 client: %v", err)
		}
	}

	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	shopRepo := repository.NewShopRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)

	hub := realtime.NewHub(l)

	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo)
	messageService := services.NewMessageService(messageRepo, hub, limiter, l)
	notificationService := services.NewNotificationService(notificationRepo, hub, l)
	badgeService := services.NewBadgeService(shopRepo, notificationRepo, messageRepo)
	friendService := services.NewFriendService(friendRepo, userRepo, notificationService)
	shopService := services.NewShopService(shopRepo)
	paymentService := services.NewPaymentService(shopRepo, notificationService)
	challengeService := services.NewChallengeService(challengeRepo, userRepo, notificationService)
	adminService := services.NewAdminService(userRepo, shopRepo, notificationService)
	statsService := services.NewStatsService(userRepo, shopRepo)
	uploadService := services.NewUploadService(s3Client)

	handlers := &server.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		User:         handler.NewUserHandler(userService),
		Message:      handler.NewMessageHandler(messageService),
		Notification: handler.NewNotificationHandler(notificationService),
		Badge:        handler.NewBadgeHandler(badgeService),
		Friend:       handler.NewFriendHandler(friendService),
		Shop:         handler.NewShopHandler(shopService),
		Payment:      handler.NewPaymentHandler(paymentService),
		Challenge:    handler.NewChallengeHandler(challengeService),
		Admin:        handler.NewAdminHandler(adminService),
		Upload:       handler.NewUploadHandler(uploadService),
		Public:       handler.NewPublicHandler(statsService),
		Realtime:     realtime.NewHandler(authService, hub, messageService, l),
	}

	srv := server.New(cfg, l)
	srv.SetupRoutes(handlers, authService, limiter)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}
