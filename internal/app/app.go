package app

import (
	"fmt"
	"log"
	"net/http"

	"brinquedos/internal/config"
	"brinquedos/internal/database"
	"brinquedos/internal/handlers"
	"brinquedos/internal/repositories"
	"brinquedos/internal/services"
	"brinquedos/pkg/cache"
	"brinquedos/pkg/rabbitmq"
	"brinquedos/web"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// App is the wired HTTP server together with the resources it owns.
type App struct {
	fiber   *fiber.App
	cfg     config.Config
	closers []func()
}

// NewApp connects every configured collaborator and builds the Fiber app.
// Nothing listens until Listen is called.
func NewApp(cfg config.Config) (*App, error) {
	a := &App{cfg: cfg}

	repo, err := a.newRepository()
	if err != nil {
		a.close()
		return nil, err
	}

	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			a.close()
			return nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		a.closers = append(a.closers, func() {
			if err := mqClient.Close(); err != nil {
				log.Printf("Error closing RabbitMQ client: %v", err)
			}
		})
		if err := mqClient.ConsumeToyEvents(rabbitmq.LogToyEvent); err != nil {
			log.Printf("Failed to start RabbitMQ audit consumer: %v", err)
		}
		publisher = mqClient
	} else {
		log.Println("RABBITMQ_URL not set, catalog events are disabled.")
	}

	a.fiber = NewFiberApp(cfg, services.NewToyService(repo, publisher))
	return a, nil
}

func (a *App) newRepository() (repositories.ToyRepository, error) {
	var repo repositories.ToyRepository

	if a.cfg.DatabaseDriver == config.DriverMemory {
		memRepo, err := repositories.NewMemDBToyRepository()
		if err != nil {
			return nil, err
		}
		log.Println("Using in-memory toy repository.")
		repo = memRepo
	} else {
		db, err := database.Open(a.cfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { database.Close(db) })
		repo = repositories.NewGORMToyRepository(db)
	}

	if a.cfg.RedisAddr != "" {
		redisClient, err := cache.NewRedisClient(cache.Config{
			Addr:     a.cfg.RedisAddr,
			Password: a.cfg.RedisPassword,
			TTL:      a.cfg.CacheTTL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
		}
		a.closers = append(a.closers, redisClient.Close)
		repo = repositories.NewCachedToyRepository(repo, redisClient)
	}
	return repo, nil
}

// NewFiberApp builds the HTTP boundary around a toy catalog.
func NewFiberApp(cfg config.Config, catalog handlers.ToyCatalog) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Loja de Brinquedos",
		ErrorHandler: handlers.ErrorHandler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,X-Request-ID",
	}))

	// --- API Routes ---
	api := app.Group("/api")
	api.Get("/test", handlers.HandleHealth)
	handlers.NewToyHandler(catalog).RegisterRoutes(api)

	// --- Frontend ---
	app.Use(filesystem.New(filesystem.Config{
		Root:  staticRoot(cfg.StaticDir),
		Index: "index.html",
	}))

	app.Use(handlers.NotFound)
	return app
}

func staticRoot(dir string) http.FileSystem {
	if dir != "" {
		log.Printf("Serving frontend from %s", dir)
		return http.Dir(dir)
	}
	return http.FS(web.Assets())
}

// Fiber exposes the underlying Fiber app, mainly for app.Test in tests.
func (a *App) Fiber() *fiber.App {
	return a.fiber
}

// Listen blocks serving HTTP on the configured port.
func (a *App) Listen() error {
	log.Printf("Starting server on port %s", a.cfg.Port)
	return a.fiber.Listen(a.cfg.Port)
}

// Shutdown stops the HTTP server and then releases every owned resource.
func (a *App) Shutdown() error {
	err := a.fiber.ShutdownWithTimeout(a.cfg.ShutdownTimeout)
	a.close()
	return err
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
