package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	accountApp "warden/internal/application/account"
	banApp "warden/internal/application/ban"
	"warden/internal/application/command"
	"warden/internal/application/identity"
	licenseApp "warden/internal/application/license"
	"warden/internal/application/liveness"
	"warden/internal/application/serverlog"
	"warden/internal/infrastructure/auth"
	"warden/internal/infrastructure/blob"
	"warden/internal/infrastructure/config"
	"warden/internal/infrastructure/mirror"
	"warden/internal/infrastructure/permission"
	"warden/internal/infrastructure/ratelimit"
	"warden/internal/infrastructure/scheduler"
	"warden/internal/shared/db"
	"warden/internal/shared/logger"
)

// allServices holds the application services and the infrastructure they
// share with the HTTP layer.
type allServices struct {
	signer      *auth.AssertionSigner
	jwtSvc      *auth.JWTService
	enforcer    *permission.Enforcer
	blobStore   *blob.FileStore
	rateLimiter ratelimit.Limiter

	resolver   *identity.Resolver
	licenses   *licenseApp.Service
	tracker    *liveness.Tracker
	queue      *command.Queue
	logs       *serverlog.Service
	bans       *banApp.Service
	customers  *accountApp.CustomerService
	admins     *accountApp.PanelAdminService
	operator   *accountApp.OperatorService
	settings   *accountApp.SettingsService
}

// ============================================================
// Section 1: Infrastructure
// ============================================================

func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log
	timeout := cfg.Database.QueryTimeout()

	c.redis = initRedis(cfg, log)
	c.mirror = mirror.NewWriter(timeout, log.Named("mirror"))
	c.repos = newRepositories(c.db, timeout, log)

	enforcer, err := permission.NewEnforcer(log.Named("permission"))
	if err != nil {
		return fmt.Errorf("failed to build permission enforcer: %w", err)
	}

	var limiter ratelimit.Limiter
	if c.redis != nil {
		limiter = ratelimit.NewRedisRateLimiter(c.redis, "login", ratelimit.Config{
			Requests: cfg.RateLimit.Requests,
			Window:   cfg.RateLimit.Window(),
		})
	}

	c.svcs = &allServices{
		signer:      auth.NewAssertionSigner(cfg.License.SigningSecret),
		jwtSvc:      auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes),
		enforcer:    enforcer,
		blobStore:   blob.NewFileStore(cfg.Storage.EvidenceDir, cfg.Server.BaseURL, cfg.Storage.PublicPath),
		rateLimiter: limiter,
	}
	return nil
}

// initRedis connects when redis is enabled. An unreachable server is logged
// and rate limiting is switched off rather than failing startup.
func initRedis(cfg *config.Config, log logger.Interface) *redis.Client {
	if !cfg.Redis.Enabled {
		log.Infow("redis disabled, rate limiting is off")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warnw("failed to connect to Redis, rate limiting is off", "addr", cfg.Redis.GetAddr(), "error", err)
		_ = client.Close()
		return nil
	}

	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())
	return client
}

// ============================================================
// Section 2: Services
// ============================================================

func (c *Container) initServices() {
	cfg := c.cfg
	log := c.log
	r := c.repos
	s := c.svcs

	s.resolver = identity.NewResolver(r.customerRepo, r.panelAdminRepo, log.Named("identity"))
	s.licenses = licenseApp.NewService(
		r.licenseRepo,
		db.NewTransactionManager(c.db),
		s.signer,
		s.resolver,
		cfg.License.KeyPrefix,
		log.Named("license"),
	)
	s.tracker = liveness.NewTracker(r.statusMirror, c.mirror, log.Named("liveness"))
	s.queue = command.NewQueue(s.resolver, log.Named("command"))
	s.logs = serverlog.NewService(r.logRepo, c.mirror, log.Named("serverlog"))
	s.bans = banApp.NewService(
		r.banRepo,
		s.queue,
		s.resolver,
		s.blobStore,
		cfg.Storage.EvidenceBucket,
		cfg.Server.LegacyUnban,
		log.Named("ban"),
	)
	s.customers = accountApp.NewCustomerService(
		r.customerRepo,
		r.licenseRepo,
		s.resolver,
		s.tracker,
		s.queue,
		s.bans,
		log.Named("customer"),
	)
	s.customers.SetLatestAgentVersion(cfg.Server.LatestAgentVersion)
	s.admins = accountApp.NewPanelAdminService(r.panelAdminRepo, log.Named("panel_admin"))
	s.operator = accountApp.NewOperatorService(
		cfg.Auth.OperatorPasswordHash,
		auth.OperatorSubject,
		auth.NewBcryptPasswordHasher(cfg.Auth.BcryptCost),
		s.jwtSvc,
		log.Named("operator"),
	)
	s.settings = accountApp.NewSettingsService(r.settingsRepo, log.Named("settings"))
}

// ============================================================
// Section 3: Maintenance jobs
// ============================================================

func (c *Container) initScheduler() error {
	manager, err := scheduler.NewSchedulerManager(c.log.Named("scheduler"))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	if err := manager.RegisterLogRetentionJob(serverlog.NewRetentionJob(c.repos.logRepo, c.cfg.Retention.ServerLogsDays)); err != nil {
		return fmt.Errorf("failed to register log retention job: %w", err)
	}

	interval := time.Duration(c.cfg.Retention.SweepIntervalMinutes) * time.Minute
	if err := manager.RegisterStatusSweepJob(liveness.NewStaleSweep(c.repos.statusMirror), interval); err != nil {
		return fmt.Errorf("failed to register status sweep job: %w", err)
	}

	c.schedulerManager = manager
	return nil
}
