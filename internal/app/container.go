package app

import (
	"context"
	"fmt"

	"github.com/kapu/meal-browser-go/internal/config"
	"github.com/kapu/meal-browser-go/internal/service/cache"
	"github.com/kapu/meal-browser-go/internal/service/contact"
	"github.com/kapu/meal-browser-go/internal/service/database"
	"github.com/kapu/meal-browser-go/internal/service/mealdb"
	"go.uber.org/zap"
)

// Container bundles assembled services for constructing sessions.
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	Meals  *mealdb.Client

	contacts contact.Store
	closers  []func()
}

// Build assembles the data client and its optional backing services. Redis
// and PostgreSQL are only contacted when enabled in cfg.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	var responseCache mealdb.ResponseCache
	if cfg.Cache.Enabled {
		cacheSvc, cacheErr := cache.NewCacheService(cache.CacheConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if cacheErr != nil {
			return nil, fmt.Errorf("failed to create cache service: %w", cacheErr)
		}
		closers = append(closers, func() {
			_ = cacheSvc.Close()
		})
		responseCache = cacheSvc
	}

	var contacts contact.Store
	if cfg.Contact.StoreEnabled {
		postgresSvc, pgErr := database.NewPostgresService(database.PostgresConfig{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			Database: cfg.Postgres.Database,
		}, logger)
		if pgErr != nil {
			return nil, fmt.Errorf("failed to create postgres service: %w", pgErr)
		}
		closers = append(closers, func() {
			_ = postgresSvc.Close()
		})
		contacts = contact.NewRepository(postgresSvc, logger)
	}

	meals := mealdb.NewClient(mealdb.Options{
		BaseURL:          cfg.MealDB.BaseURL,
		Timeout:          cfg.MealDB.Timeout,
		RateLimit:        cfg.MealDB.RateLimit,
		RateBurst:        cfg.MealDB.RateBurst,
		BreakerThreshold: cfg.MealDB.BreakerThreshold,
		BreakerReset:     cfg.MealDB.BreakerReset,
		Cache:            responseCache,
		CacheTTL:         cfg.Cache.TTL,
	}, logger)

	logger.Info("Meal browser services ready",
		zap.String("mealdb", cfg.MealDB.BaseURL),
		zap.Bool("cache", cfg.Cache.Enabled),
		zap.Bool("contact_store", cfg.Contact.StoreEnabled),
	)

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Meals:    meals,
		contacts: contacts,
		closers:  closers,
	}, nil
}

// NewSession creates a session drawing on surface.
func (c *Container) NewSession(ctx context.Context, surface Surface) *Session {
	return NewSession(ctx, surface, c.Meals, c.Logger, SessionOptions{
		DropStaleResponses: c.Config.UI.DropStaleResponses,
		Contacts:           c.contacts,
	})
}

// Close releases backing services in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
