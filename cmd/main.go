package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"yogurt-cleaning/internal/config"
	"yogurt-cleaning/internal/handler"
	"yogurt-cleaning/internal/repository"
	"yogurt-cleaning/internal/services"
	"yogurt-cleaning/internal/utils"
)

func main() {
	// 1. Базовый контекст + менеджер завершения
	baseCtx := context.Background()
	ctx, shutdownManager := utils.NewShutdownManager(baseCtx)
	shutdownManager.StartListening()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// 2. Инициализация MongoDB
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	db := mongoClient.Database(cfg.MongoDatabase)

	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Closing MongoDB connection...")
		return mongoClient.Disconnect(ctx)
	})

	// 3. Инициализация Redis
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatal("Invalid Redis URL:", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}

	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Closing Redis connection...")
		return rdb.Close()
	})

	// 4. Репозитории
	orderRepo := repository.NewOrderRepository(db)
	cleanerRepo := repository.NewCleanerRepository(db, orderRepo)
	clientRepo := repository.NewClientRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	bundleRepo := repository.NewBundleRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	objectRepo := repository.NewCleaningObjectRepository(db)

	// 5. Сервисы
	locks := utils.NewKeyedMutex()
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret)
	notifier := services.NewSMTPNotifier(cfg)

	crewService := services.NewCrewService(cleanerRepo, orderRepo, locks)
	orderService := services.NewOrderService(orderRepo, objectRepo, bundleRepo, serviceRepo, crewService, notifier, rdb, cfg)
	ratingService := services.NewRatingService(orderRepo, commentRepo, cleanerRepo, clientRepo, locks)
	commentService := services.NewCommentService(commentRepo, orderRepo, ratingService)
	catalogService := services.NewCatalogService(bundleRepo, serviceRepo)
	objectService := services.NewCleaningObjectService(objectRepo)
	authService := services.NewAuthService(adminRepo, clientRepo, cleanerRepo, jwtUtil)

	authHandler := handler.NewAuthHandler(authService)
	orderHandler := handler.NewOrderHandler(orderService, crewService)
	commentHandler := handler.NewCommentHandler(commentService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	objectHandler := handler.NewCleaningObjectHandler(objectService)
	ratingHandler := handler.NewRatingHandler(ratingService)

	// 6. Фоновые задачи
	cacheRefresher := services.NewCacheRefresher(orderRepo, rdb)
	cacheRefresher.Start(ctx)

	cron := services.NewCronJobService(orderRepo, orderService)
	cron.Start(ctx)

	// 7. Настройка роутера
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	auth := router.Group("/api/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register/client", authHandler.RegisterClient)
		auth.POST("/register/cleaner", authHandler.RegisterCleaner)
	}

	catalog := router.Group("/api/catalog")
	{
		catalog.GET("/bundles", catalogHandler.GetBundles)
		catalog.GET("/services", catalogHandler.GetServices)

		protected := catalog.Group("/")
		protected.Use(utils.AuthMiddleware(jwtUtil), utils.RequireRoles("admin"))
		{
			protected.POST("/bundles", catalogHandler.CreateBundle)
			protected.PUT("/bundles", catalogHandler.UpdateBundle)
			protected.PATCH("/bundles/:id/status", catalogHandler.SetBundleStatus)
			protected.POST("/services", catalogHandler.CreateService)
			protected.PUT("/services", catalogHandler.UpdateService)
			protected.PATCH("/services/:id/status", catalogHandler.SetServiceStatus)
		}
	}

	objects := router.Group("/api/objects")
	objects.Use(utils.AuthMiddleware(jwtUtil), utils.RequireRoles("client"))
	{
		objects.POST("/", objectHandler.Create)
		objects.GET("/my", objectHandler.GetMy)
		objects.PUT("/:id", objectHandler.Update)
		objects.DELETE("/:id", objectHandler.Delete)
	}

	orders := router.Group("/api/orders")
	orders.Use(utils.AuthMiddleware(jwtUtil))
	{
		clientOrders := orders.Group("/")
		clientOrders.Use(utils.RequireRoles("client"))
		{
			clientOrders.POST("/", orderHandler.CreateOrder)
			clientOrders.GET("/my", orderHandler.GetMyOrders)
			clientOrders.PUT("/:id", orderHandler.UpdateOrder)
			clientOrders.DELETE("/:id", orderHandler.CancelOrder)
		}

		adminOrders := orders.Group("/")
		adminOrders.Use(utils.RequireRoles("admin"))
		{
			adminOrders.GET("/all", orderHandler.GetAllOrders)
			adminOrders.GET("/:id", orderHandler.GetOrder)
			adminOrders.GET("/:id/free-cleaners", orderHandler.FreeCleaners)
			adminOrders.PUT("/:id/assemble-crew", orderHandler.AssembleCrew)
		}

		cleanerOrders := orders.Group("/")
		cleanerOrders.Use(utils.RequireRoles("cleaner"))
		{
			cleanerOrders.PUT("/:id/start", orderHandler.StartOrder)
			cleanerOrders.PUT("/:id/complete", orderHandler.CompleteOrder)
		}
	}

	comments := router.Group("/api/comments")
	comments.Use(utils.AuthMiddleware(jwtUtil))
	{
		comments.POST("/", commentHandler.CreateComment)
		comments.GET("/order/:id", commentHandler.GetCommentsByOrder)

		adminComments := comments.Group("/")
		adminComments.Use(utils.RequireRoles("admin"))
		{
			adminComments.DELETE("/:id", commentHandler.DeleteComment)
		}
	}

	ratings := router.Group("/api/ratings")
	ratings.Use(utils.AuthMiddleware(jwtUtil))
	{
		ratings.GET("/cleaner/:id", ratingHandler.GetCleanerRating)
		ratings.GET("/client/:id", ratingHandler.GetClientRating)
	}

	// 8. Запуск сервера
	server := &http.Server{
		Addr:    cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Println("Yogurt cleaning service running on", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Shutting down HTTP server...")
		return server.Shutdown(ctx)
	})

	select {}
}
