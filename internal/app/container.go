package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	sharedApplication "github.com/felixgeelhaar/cadence/internal/shared/application"
	"github.com/felixgeelhaar/cadence/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/cadence/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/cadence/internal/shared/infrastructure/migrations"
	sharedPersistence "github.com/felixgeelhaar/cadence/internal/shared/infrastructure/persistence"
	"github.com/felixgeelhaar/cadence/internal/tracking/application/commands"
	"github.com/felixgeelhaar/cadence/internal/tracking/application/queries"
	"github.com/felixgeelhaar/cadence/internal/tracking/application/services"
	"github.com/felixgeelhaar/cadence/internal/tracking/domain"
	trackingPersistence "github.com/felixgeelhaar/cadence/internal/tracking/infrastructure/persistence"
	"github.com/felixgeelhaar/cadence/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	Driver database.Driver

	ActivityRepo domain.ActivityRepository
	StreakRepo   domain.StreakRepository
	UnitOfWork   sharedApplication.UnitOfWork
	Publisher    eventbus.Publisher
	Cache        services.DashboardCache

	LogTask      *commands.LogTaskHandler
	LogBreak     *commands.LogBreakHandler
	LogMood      *commands.LogMoodHandler
	GetDashboard *queries.GetDashboardHandler
	GetUserStats *queries.GetUserStatsHandler
	Refresher    *services.Refresher

	pool        *pgxpool.Pool
	sqliteDB    *sql.DB
	redisClient *redis.Client
}

// NewContainer wires the application graph: config, database (Postgres or
// zero-config SQLite, by connection string), event publisher, cache, and
// the command/query handlers.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
		Driver: database.DetectDriver(cfg.DatabaseURL),
	}

	if err := c.setupDatabase(ctx); err != nil {
		return nil, err
	}
	if err := c.setupPublisher(); err != nil {
		c.Close()
		return nil, err
	}
	c.setupCache(ctx)

	builder := services.NewDashboardBuilder(c.ActivityRepo, c.StreakRepo, cfg.DefaultWeeklyGoalHours)

	c.LogTask = commands.NewLogTaskHandler(c.ActivityRepo, c.StreakRepo, c.UnitOfWork, c.Publisher, logger, cfg.DefaultWeeklyGoalHours)
	c.LogBreak = commands.NewLogBreakHandler(c.ActivityRepo, c.UnitOfWork, c.Publisher, logger)
	c.LogMood = commands.NewLogMoodHandler(c.ActivityRepo, c.UnitOfWork, c.Publisher, logger)
	c.GetDashboard = queries.NewGetDashboardHandler(builder, c.StreakRepo, c.UnitOfWork, c.Cache, c.Publisher, logger, cfg.DashboardTTL)
	c.GetUserStats = queries.NewGetUserStatsHandler(c.ActivityRepo, c.StreakRepo, cfg.DefaultWeeklyGoalHours)

	refresherConfig := services.RefresherConfig{
		Interval:  cfg.RefreshInterval,
		BatchSize: cfg.RefreshBatchSize,
		CacheTTL:  cfg.DashboardTTL,
	}
	c.Refresher = services.NewRefresher(builder, c.ActivityRepo, c.StreakRepo, c.UnitOfWork, c.Cache, c.Publisher, refresherConfig, logger)

	return c, nil
}

func (c *Container) setupDatabase(ctx context.Context) error {
	switch c.Driver {
	case database.DriverPostgres:
		pool, err := database.NewPostgresPool(ctx, c.Config.DatabaseURL, c.Config.MaxConns)
		if err != nil {
			return err
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		c.pool = pool
		c.ActivityRepo = trackingPersistence.NewPostgresActivityRepository(pool)
		c.StreakRepo = trackingPersistence.NewPostgresStreakRepository(pool)
		c.UnitOfWork = sharedPersistence.NewPostgresUnitOfWork(pool)
		c.Logger.Info("using PostgreSQL", "driver", c.Driver)

	case database.DriverSQLite:
		db, err := database.NewSQLiteDB(ctx, c.Config.SQLitePath)
		if err != nil {
			return err
		}
		if err := migrations.RunSQLiteMigrations(ctx, db); err != nil {
			db.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		c.sqliteDB = db
		c.ActivityRepo = trackingPersistence.NewSQLiteActivityRepository(db)
		c.StreakRepo = trackingPersistence.NewSQLiteStreakRepository(db)
		c.UnitOfWork = sharedPersistence.NewSQLiteUnitOfWork(db)
		c.Logger.Info("using SQLite", "driver", c.Driver)

	default:
		return fmt.Errorf("unsupported database driver: %s", c.Driver)
	}

	return nil
}

// setupPublisher connects to RabbitMQ when configured. Local SQLite mode
// gets the in-process bus, an unset broker URL the noop publisher, so the
// broker is never a hard dependency outside production.
func (c *Container) setupPublisher() error {
	if c.Driver == database.DriverSQLite {
		c.Publisher = eventbus.NewInProcessBus(c.Logger)
		return nil
	}
	if c.Config.RabbitMQURL == "" {
		c.Publisher = eventbus.NewNoopPublisher(c.Logger)
		return nil
	}

	publisher, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, c.Logger)
	if err != nil {
		if c.Config.IsProduction() {
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		c.Logger.Warn("RabbitMQ unavailable, using in-process bus", "error", err)
		c.Publisher = eventbus.NewInProcessBus(c.Logger)
		return nil
	}

	c.Publisher = publisher
	return nil
}

// setupCache connects to Redis when reachable. The cache is optional:
// everything works without it, just slower.
func (c *Container) setupCache(ctx context.Context) {
	if c.Driver == database.DriverSQLite || c.Config.RedisURL == "" {
		return
	}

	opts, err := redis.ParseURL(c.Config.RedisURL)
	if err != nil {
		c.Logger.Warn("invalid Redis URL, caching disabled", "error", err)
		return
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		c.Logger.Warn("Redis unreachable, caching disabled", "error", err)
		_ = client.Close()
		return
	}

	c.redisClient = client
	c.Cache = trackingPersistence.NewRedisDashboardCache(client)
}

// Close releases all container resources.
func (c *Container) Close() {
	if c.Publisher != nil {
		if err := c.Publisher.Close(); err != nil {
			c.Logger.Warn("error closing publisher", "error", err)
		}
	}
	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis client", "error", err)
		}
	}
	if c.pool != nil {
		c.pool.Close()
	}
	if c.sqliteDB != nil {
		if err := c.sqliteDB.Close(); err != nil {
			c.Logger.Warn("error closing SQLite database", "error", err)
		}
	}
}
