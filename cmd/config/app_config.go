package config

import (
	"Recipe-Share-Backend/internal/api/handlers"
	"Recipe-Share-Backend/internal/api/routes"
	"Recipe-Share-Backend/internal/middleware"
	"Recipe-Share-Backend/internal/utils"
	"Recipe-Share-Backend/internal/utils/mailing"
	"Recipe-Share-Backend/internal/utils/storage"
	"Recipe-Share-Backend/pkg/jwt"
	"Recipe-Share-Backend/pkg/recipe"
	"Recipe-Share-Backend/pkg/social"
	"Recipe-Share-Backend/pkg/user"
	"context"
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

// AppOptions carries the collaborators NewApp resolves from configuration.
type AppOptions struct {
	LogOutput io.Writer
	// RateLimit is requests per second per client; zero disables the limiter.
	RateLimit int
	JWTSecret string
	AppURL    string
	S3        storage.AwsS3
	Mailer    mailing.Mailer
}

func NewApp(db *gorm.DB) (*fiber.App, error) {
	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}

	// utils
	s3, err := storage.NewAwsS3(context.Background())
	if err != nil {
		return nil, err
	}
	if s3 == nil {
		log.Info("AWS_S3_BUCKET not set, recipe image upload disabled")
	}

	var mailer mailing.Mailer
	if mailConfig := mailing.LoadMailConfig(); mailConfig.Enabled() {
		mailer = mailing.NewMailer(mailConfig)
	} else {
		log.Info("SMTP not configured, comment notifications disabled")
	}

	cfg := utils.CurrentConfig()
	return BuildApp(db, AppOptions{
		LogOutput: file,
		RateLimit: cfg.RateLimit,
		JWTSecret: cfg.JWTSecret,
		AppURL:    cfg.AppURL,
		S3:        s3,
		Mailer:    mailer,
	}), nil
}

// BuildApp wires repositories, services, handlers and routes onto a new app.
func BuildApp(db *gorm.DB, opts AppOptions) *fiber.App {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: opts.LogOutput != nil,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	if opts.LogOutput != nil {
		app.Use(logger.New(logger.Config{
			TimeFormat: "2006-01-02 15:04:05",
			TimeZone:   "UTC",
			Output:     opts.LogOutput,
		}))
	}

	if opts.RateLimit > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        opts.RateLimit,
			Expiration: 1 * time.Second,
		}))
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	socialRepository := social.NewSocialRepository(db)

	// Service
	jwtService := jwt.NewJWTService(opts.JWTSecret)
	userService := user.NewUserService(userRepository, jwtService)
	recipeService := recipe.NewRecipeService(recipeRepository, opts.S3)
	var notifier social.CommentNotifier
	if opts.Mailer != nil {
		notifier = social.NewMailCommentNotifier(socialRepository, opts.Mailer, opts.AppURL)
	}
	socialService := social.NewSocialService(socialRepository, notifier)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	socialHandler := handlers.NewSocialHandler(socialService, validator)

	// routes
	routesConfig := routes.Config{
		App:           app,
		UserHandler:   userHandler,
		RecipeHandler: recipeHandler,
		SocialHandler: socialHandler,
		Middleware:    middlewares,
		JWTService:    jwtService,
	}
	routesConfig.Setup()
	return app
}
