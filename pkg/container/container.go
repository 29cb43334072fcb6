package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"bookstore-admin/internal/config"
	infraCache "bookstore-admin/internal/infrastructure/cache"
	"bookstore-admin/internal/infrastructure/database"
	"bookstore-admin/internal/infrastructure/session"
	"bookstore-admin/pkg/cache"
	"bookstore-admin/pkg/cache/memory"
	"bookstore-admin/pkg/jwt"
	"bookstore-admin/pkg/logger"

	"bookstore-admin/internal/domains/author"
	authorHandler "bookstore-admin/internal/domains/author/handler"
	authorRepo "bookstore-admin/internal/domains/author/repository"
	authorService "bookstore-admin/internal/domains/author/service"

	"bookstore-admin/internal/domains/book"
	bookHandler "bookstore-admin/internal/domains/book/handler"
	bookRepo "bookstore-admin/internal/domains/book/repository"
	bookService "bookstore-admin/internal/domains/book/service"

	"bookstore-admin/internal/domains/user"
	userHandler "bookstore-admin/internal/domains/user/handler"
	userRepo "bookstore-admin/internal/domains/user/repository"
	userService "bookstore-admin/internal/domains/user/service"
)

// jwtIssuer là iss claim của session token
const jwtIssuer = "bookstore-admin"

// Container chứa TẤT CẢ dependencies của application
// Thứ tự init: config -> infrastructure -> repositories -> services -> handlers
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache // Redis, hoặc in-memory khi dev không có Redis
	JWTManager *jwt.Manager
	Sessions   *session.Store

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	UserRepo   user.Repository
	AuthorRepo author.Repository
	BookRepo   book.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================
	UserService   user.Service
	AuthorService author.Service
	BookService   book.Service

	// ========================================
	// HANDLER LAYER
	// ========================================
	UserHandler   *userHandler.UserHandler
	AuthorHandler *authorHandler.AuthorHandler
	BookHandler   *bookHandler.BookHandler
}

// NewContainer tạo và initialize toàn bộ dependency graph
func NewContainer() (*Container, error) {
	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	logger.Init(cfg.App.Environment)
	logger.Info("Initializing DI container", map[string]interface{}{
		"app":         cfg.App.Name,
		"environment": cfg.App.Environment,
		"version":     cfg.App.Version,
	})

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	// ========================================
	// STEP 3: INITIALIZE CACHE + SESSIONS
	// ========================================
	if err := c.initCache(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	c.JWTManager = jwt.NewManager(cfg.Session.Secret, jwtIssuer)
	c.Sessions = session.NewStore(c.Cache, c.JWTManager, cfg.Session.TTL, cfg.Session.RememberTTL)

	// ========================================
	// STEP 4-6: REPOSITORIES -> SERVICES -> HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Debug("DI container initialized")
	return c, nil
}

// initCache: Redis là bắt buộc ngoài development vì session nằm trong đó
func (c *Container) initCache(ctx context.Context) error {
	redisCache := infraCache.NewRedisCache(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)

	if err := redisCache.Connect(ctx); err != nil {
		_ = redisCache.Close()
		if c.Config.App.Environment != "development" {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Error("Redis unavailable, falling back to in-memory cache", err)
		c.Cache = memory.New()
		return nil
	}

	c.Cache = redisCache
	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.AuthorRepo = authorRepo.NewPostgresRepository(pool, c.Cache)
	c.BookRepo = bookRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.Config.Auth.LoginRedirect)
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)

	// Book cần author để kiểm tra authorId (cross-domain dependency)
	c.BookService = bookService.NewBookService(c.BookRepo, c.AuthorService)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(
		c.UserService,
		c.Sessions,
		userHandler.CookieConfig{
			Name:   c.Config.Session.CookieName,
			Secure: c.Config.Session.CookieSecure,
		},
		c.Config.Auth.LoginRedirect,
	)
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService, c.AuthorService)
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			logger.Error("Failed to close Redis", err)
		} else {
			log.Info().Msg("[REDIS] Connection closed")
		}
	}
}
