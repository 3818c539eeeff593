package main

import (
	"log"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/events"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/migrations"
	"storefront/internal/redis"
	"storefront/internal/repository"
	"storefront/internal/services"
	"storefront/pkg/mailer"
	"storefront/pkg/paystack"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := migrations.RunMigrations(db, cfg.AdminEmail); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// External clients
	gatewayClient := paystack.NewClient(cfg.PaystackBaseURL, cfg.PaystackSecretKey)
	mailerClient := mailer.NewClient(cfg.MailerBaseURL, cfg.MailerAPIKey, cfg.MailerFromAddress)
	publisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.OrderEventsTopic, cfg.PaymentAlertsTopic)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	newsletterRepo := repository.NewNewsletterRepository(db)
	contactRepo := repository.NewContactRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo, cfg.JWTSecret)
	productService := services.NewProductService(productRepo)
	notificationService := services.NewNotificationService(mailerClient, cfg.AdminEmail)
	orderService := services.NewOrderService(
		orderRepo,
		gatewayClient,
		redisClient,
		notificationService,
		publisher,
		cfg.ShippingRatePercent,
		time.Duration(cfg.VerifyCacheTTL)*time.Second,
	)
	webhookService := services.NewWebhookService(orderRepo, publisher)
	newsletterService := services.NewNewsletterService(newsletterRepo)
	contactService := services.NewContactService(contactRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	webhookHandler := handlers.NewWebhookHandler(webhookService, cfg.PaystackWebhookSecret)
	adminHandler := handlers.NewAdminHandler(orderService, newsletterService, contactService)
	contactHandler := handlers.NewContactHandler(contactService, newsletterService)

	// Setup routes
	router := gin.Default()

	limited := middleware.RateLimit(redisClient, cfg.RateLimitPerMinute)

	api := router.Group("/api")
	{
		api.POST("/auth/register", limited, authHandler.Register)
		api.POST("/auth/login", limited, authHandler.Login)

		api.GET("/products", productHandler.ListProducts)
		api.GET("/products/:id", productHandler.GetProduct)

		api.POST("/checkout", orderHandler.Checkout)
		api.POST("/webhooks/paystack", webhookHandler.HandlePaystackWebhook)

		api.POST("/newsletter/subscribe", limited, contactHandler.Subscribe)
		api.POST("/contact", limited, contactHandler.SubmitMessage)

		authed := api.Group("", middleware.RequireAuth(cfg.JWTSecret))
		{
			authed.GET("/orders/mine", orderHandler.MyOrders)
		}

		admin := api.Group("/admin", middleware.RequireAuth(cfg.JWTSecret), middleware.RequireAdmin())
		{
			admin.POST("/products", productHandler.CreateProduct)
			admin.PUT("/products/:id", productHandler.UpdateProduct)
			admin.DELETE("/products/:id", productHandler.DeleteProduct)

			admin.GET("/orders", adminHandler.ListOrders)
			admin.GET("/orders/:id", adminHandler.GetOrder)
			admin.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)

			admin.GET("/newsletter/subscribers", adminHandler.ListSubscribers)
			admin.DELETE("/newsletter/subscribers/:id", adminHandler.DeleteSubscriber)

			admin.GET("/messages", adminHandler.ListMessages)
			admin.DELETE("/messages/:id", adminHandler.DeleteMessage)
		}
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
