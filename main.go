package main

import (
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	gormpostgres "gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"zonelink/internal/handlers"
	"zonelink/internal/middleware"
	"zonelink/internal/models"
	"zonelink/internal/repositories"
	"zonelink/internal/services"
	"zonelink/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	// Optional .env for local development, then environment variables.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "")
	viper.SetDefault("JWT_SECRET", "dev_secret_change_me")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("DEFAULT_TIMEZONE", "")
	viper.AutomaticEnv() // Load environment variables

	appPort := viper.GetString("APP_PORT")
	jwtSecret := viper.GetString("JWT_SECRET")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// DEFAULT_TIMEZONE is used for registrations that omit a timezone; when
	// unset, the server process's own zone stands in for the device zone.
	defaultTimezone := viper.GetString("DEFAULT_TIMEZONE")
	if defaultTimezone == "" {
		defaultTimezone = time.Now().Location().String()
	}

	// --- Initialize Repositories ---
	// Without a DSN the server runs on in-memory repositories, enough for
	// local development; state does not survive a restart.
	var userRepo repositories.UserRepository
	var contactRepo repositories.ContactRepository

	dsn := viper.GetString("DATABASE_DSN")
	if dsn == "" {
		log.Println("DATABASE_DSN not set, using in-memory repositories")
		userRepo = repositories.NewMockUserRepository()
		contactRepo = repositories.NewMockContactRepository()
	} else {
		var dialector gorm.Dialector
		switch driver := viper.GetString("DATABASE_DRIVER"); driver {
		case "postgres":
			dialector = gormpostgres.Open(dsn)
		case "sqlite":
			dialector = gormsqlite.Open(dsn)
		default:
			log.Fatalf("Unsupported DATABASE_DRIVER: %s", driver)
		}

		db, err := gorm.Open(dialector, &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.AutoMigrate(&models.User{}, &models.Contact{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}

		userRepo = repositories.NewGORMUserRepository(db)
		contactRepo = repositories.NewGORMContactRepository(db)
	}

	// --- Initialize RabbitMQ Client ---
	// The broker is optional: contact-added events are a notification hook,
	// not part of the CRUD path.
	var mqClient *rabbitmq.Client
	var publisher services.EventPublisher
	if rabbitMQURL != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Printf("Warning: failed to initialize RabbitMQ client, continuing without events: %v", err)
		} else {
			defer mqClient.Close()
			publisher = mqClient
		}
	}

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, jwtSecret, defaultTimezone)
	profileService := services.NewProfileService(userRepo)
	contactService := services.NewContactService(contactRepo, userRepo, publisher)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService)
	contactHandler := handlers.NewContactHandler(contactService)
	clockHandler := handlers.NewClockHandler(profileService, contactService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")

	// Authentication routes (public)
	authHandler.RegisterRoutes(apiV1)

	// Protected routes (require JWT authentication)
	protectedRoutes := apiV1.Group("", middleware.AuthRequired(authService))
	profileHandler.RegisterRoutes(protectedRoutes)
	contactHandler.RegisterRoutes(protectedRoutes)
	clockHandler.RegisterRoutes(protectedRoutes)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start RabbitMQ Consumer in a Goroutine ---
	// This is where a push-notification sender would hang off the contact
	// events; for now the consumer just logs them.
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for contact events...")
			messageHandler := func(msg amqp.Delivery) error {
				var event services.ContactAddedEvent
				if err := json.Unmarshal(msg.Body, &event); err != nil {
					log.Printf("Discarding malformed contact event (tag %d): %v", msg.DeliveryTag, err)
					return nil // malformed messages are not worth requeueing
				}
				log.Printf("Notify user %s: added as a contact by user %s", event.TargetID, event.OwnerID)
				return nil
			}
			if consumerErr := mqClient.ConsumeContactEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	// RabbitMQ connection close is handled by defer in main
	log.Println("Server gracefully stopped")
}
