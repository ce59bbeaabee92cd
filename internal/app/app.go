package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/naitik09090/backend-games/internal/auth"
	"github.com/naitik09090/backend-games/internal/config"
	"github.com/naitik09090/backend-games/internal/domain"
	"github.com/naitik09090/backend-games/internal/games"
	"github.com/naitik09090/backend-games/internal/httpserver"
	"github.com/naitik09090/backend-games/internal/httpserver/deps"
	"github.com/naitik09090/backend-games/internal/logger"
	"github.com/naitik09090/backend-games/internal/metrics"
	"github.com/naitik09090/backend-games/internal/scheduler"
	"github.com/naitik09090/backend-games/internal/seed"
	"github.com/naitik09090/backend-games/internal/store"
	"github.com/naitik09090/backend-games/internal/version"
)

type App struct {
	cfg     *config.Config
	logger  logger.Logger
	server  *httpserver.Server
	store   domain.Store
	metrics *metrics.Metrics
}

func New() (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Token settings are checked before anything else so a bad secret never
	// reaches a listening server.
	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}

	hasher, err := auth.NewHasher(cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}

	st, err := store.Open(cfg, loggerClient)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	loggerClient.Info("record store configured",
		logger.String("backend", st.Backend()),
		logger.String("target", config.RedactURL(cfg.DatabaseURL)))

	m := metrics.New()

	lister := domain.NewLister(st.Local(), st.Catalog(), cfg.DefaultPageSize)
	lister.OnServed = func(src domain.Source, n int) { m.ObserveList(string(src), n) }

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:    loggerClient,
		StartTime: time.Now(),
		Version:   version.Version,
		Commit:    version.Commit,
		BuildDate: version.BuildDate,
		GoVersion: version.GoVersion,
		TimeNow:   time.Now,

		AllowedCIDRS:  cfg.AllowedCIDRS,
		TrustProxy:    cfg.TrustProxy,
		CORSOrigins:   cfg.CORSOrigins,
		AuthRateLimit: cfg.AuthRateLimit,
		RequireAuth:   cfg.RequireAuth,

		MaxUploadBytes: cfg.MaxUploadBytes,
		ImagesDir:      cfg.ImagesDir,
		PublicBaseURL:  cfg.PublicBaseURL,

		Store:    st,
		Lister:   lister,
		Resolver: domain.NewResolver(st.Local(), st.Catalog()),
		Games:    games.NewService(st.Local(), loggerClient),
		Catalog:  games.NewCatalog(st.Catalog(), loggerClient),
		Auth:     auth.NewService(st.Users(), hasher, tokens, loggerClient),
		Metrics:  m,
	}

	return &App{
		cfg:     cfg,
		logger:  loggerClient,
		server:  httpserver.New(cfg, loggerClient, d),
		store:   st,
		metrics: m,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting games API v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info(version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.cfg.SeedIfEmpty {
		a.seedIfEmpty(ctx)
	}

	if a.cfg.StatsInterval > 0 {
		stats := scheduler.NewStoreStats(a.store, a.metrics, a.logger, a.cfg.StatsInterval, a.cfg.ConnectTimeout)
		stats.Start(ctx)
		defer stats.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		a.closeStore()
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.closeStore()
	a.logger.Info("✅ games API stopped cleanly")
	return nil
}

// seedIfEmpty inserts the seed set when the local store is empty. Failures
// are logged only: the store connects lazily and may come up later.
func (a *App) seedIfEmpty(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.ConnectTimeout)
	defer cancel()

	_, list, err := seed.LoadGames(a.cfg.SeedFile)
	if err != nil {
		a.logger.Warn("startup seeding skipped", logger.Error(err))
		return
	}
	n, err := seed.NewSeeder(a.store.Local(), a.logger).SeedIfEmpty(ctx, list)
	if err != nil {
		a.logger.Warn("startup seeding failed", logger.Error(err))
		return
	}
	if n > 0 {
		a.logger.Info("local games seeded at startup", logger.Int("inserted", n))
	}
}

func (a *App) closeStore() {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.store.Close(ctx); err != nil {
		a.logger.Warnf("failed to close %s store: %v", a.store.Backend(), err)
		return
	}
	a.logger.Infof("✅ %s store closed cleanly", a.store.Backend())
}
