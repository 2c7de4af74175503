package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/atlastile/cms-go-api/internal/audit"
	"github.com/atlastile/cms-go-api/internal/config"
	"github.com/atlastile/cms-go-api/internal/database"
	"github.com/atlastile/cms-go-api/internal/handler"
	"github.com/atlastile/cms-go-api/internal/middleware"
	"github.com/atlastile/cms-go-api/internal/models"
	"github.com/atlastile/cms-go-api/internal/repository"
	"github.com/atlastile/cms-go-api/internal/router"
	"github.com/atlastile/cms-go-api/internal/service"
	cloud "github.com/atlastile/cms-go-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.ProductCategory{},
		&models.Brochure{},
		&models.Product{},
		&models.Menu{},
		&models.MenuItem{},
		&models.Page{},
		&models.Banner{},
		&models.Article{},
		&models.Distributor{},
		&models.Subscriber{},
		&models.Setting{},
		&models.Store{},
		&models.Project{},
		&models.UploadRecord{},
		&audit.Record{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Drain()
	}

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	brochureRepo := repository.NewBrochureRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	pageRepo := repository.NewPageRepository(db)
	bannerRepo := repository.NewBannerRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	distributorRepo := repository.NewDistributorRepository(db)
	subscriberRepo := repository.NewSubscriberRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	uploadRepo := repository.NewUploadRepository(db)

	auditor := audit.NewWriter(activityRepo, logger)
	events := service.NewNatsPublisher(natsConn, logger)

	authService := service.NewAuthService(userRepo, auditor, validate, logger, cfg.JWTSecret, cfg.TokenTTL)
	productService := service.NewProductService(productRepo, categoryRepo, brochureRepo, auditor, validate, logger)
	catalogService := service.NewCatalogService(categoryRepo, brochureRepo, auditor, validate, logger)
	menuService := service.NewMenuService(menuRepo, redisClient, auditor, validate, logger)
	pageService := service.NewPageService(pageRepo, auditor, validate, logger)
	bannerService := service.NewBannerService(bannerRepo, auditor, validate, logger)
	articleService := service.NewArticleService(articleRepo, auditor, validate, logger)
	distributorService := service.NewDistributorService(distributorRepo, events, auditor, validate, logger)
	subscriberService := service.NewSubscriberService(subscriberRepo, events, auditor, validate, logger)
	settingService, err := service.NewSettingService(settingRepo, auditor, validate, logger)
	if err != nil {
		log.Fatalf("failed to create setting service: %v", err)
	}
	activityService := service.NewActivityService(activityRepo, validate, logger)
	storeService := service.NewStoreService(storeRepo, auditor, validate, logger)
	projectService := service.NewProjectService(projectRepo, auditor, validate, logger)
	userService := service.NewUserService(userRepo, auditor, validate, logger, cfg.JWTSecret)
	uploadService := service.NewUploadService(uploader, uploadRepo, auditor, cfg.UploadMaxMB, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:        handler.NewAuthHandler(authService, logger),
		ProductHandler:     handler.NewProductHandler(productService, logger),
		CatalogHandler:     handler.NewCatalogHandler(catalogService, logger),
		MenuHandler:        handler.NewMenuHandler(menuService, logger),
		PageHandler:        handler.NewPageHandler(pageService, logger),
		BannerHandler:      handler.NewBannerHandler(bannerService, logger),
		ArticleHandler:     handler.NewArticleHandler(articleService, logger),
		DistributorHandler: handler.NewDistributorHandler(distributorService, logger),
		SubscriberHandler:  handler.NewSubscriberHandler(subscriberService, logger),
		SettingHandler:     handler.NewSettingHandler(settingService, logger),
		ActivityHandler:    handler.NewActivityHandler(activityService, logger),
		UploadHandler:      handler.NewUploadHandler(uploadService, logger),
		StoreHandler:       handler.NewStoreHandler(storeService, logger),
		ProjectHandler:     handler.NewProjectHandler(projectService, logger),
		UserHandler:        handler.NewUserHandler(userService, logger),
		JWTMiddleware:      middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
