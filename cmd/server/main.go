package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/sessionlab/core/config"
	"github.com/dmitrymomot/sessionlab/core/cookie"
	"github.com/dmitrymomot/sessionlab/core/httpsession"
	"github.com/dmitrymomot/sessionlab/core/logger"
	"github.com/dmitrymomot/sessionlab/core/server"
	"github.com/dmitrymomot/sessionlab/core/session"
	"github.com/dmitrymomot/sessionlab/internal/auth"
	"github.com/dmitrymomot/sessionlab/internal/item"
	"github.com/dmitrymomot/sessionlab/internal/login"
	"github.com/dmitrymomot/sessionlab/internal/member"
	"github.com/dmitrymomot/sessionlab/internal/metrics"
	"github.com/dmitrymomot/sessionlab/internal/seed"
	"github.com/dmitrymomot/sessionlab/internal/web"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg Config
	config.MustLoad(&cfg) // panic on error

	log := newLogger(cfg)
	logger.SetAsDefault(log)

	// Cookie manager for the signed member cookie and flash messages
	if len(cfg.Cookie.SecretList()) == 0 {
		secret, err := ephemeralSecret()
		if err != nil {
			log.Error("Failed to generate cookie secret", logger.Component("cookie"), logger.Error(err))
			os.Exit(1)
		}
		cfg.Cookie.Secrets = secret
		log.Warn("COOKIE_SECRETS is empty, using a random secret for this run", logger.Component("cookie"))
	}
	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		log.Error("Failed to create cookie manager", logger.Component("cookie"), logger.Error(err))
		os.Exit(1)
	}

	m := metrics.New()

	// Container sessions, in memory or in Redis
	backend, err := newSessionStore(ctx, cfg, m)
	if err != nil {
		log.Error("Failed to create session store", logger.Component("session"), logger.Error(err))
		os.Exit(1)
	}
	defer func() { _ = backend.close() }()

	sessions := httpsession.NewFromConfig(backend.store, cfg.Session,
		httpsession.WithLogger(log.With(logger.Component("httpsession"))))

	tokens := session.NewManager[member.Member](session.WithLogger(log))
	m.SessionGauge("manager", "Live mySessionId tokens", tokens.Len)

	members := member.NewRepository()
	items := item.NewRepository()
	accounts := login.NewService(members, login.WithLogger(log))

	if cfg.SeedData {
		if err := seed.Load(ctx, items, accounts); err != nil {
			log.Error("Failed to load seed data", logger.Component("seed"), logger.Error(err))
			os.Exit(1)
		}
	}

	strategy, err := auth.New(cfg.SessionStrategy, auth.Deps{
		Container: sessions,
		Manager:   tokens,
		Cookies:   cookies,
		Members:   members,
	})
	if err != nil {
		log.Error("Failed to create session strategy", logger.Component("auth"), logger.Error(err))
		os.Exit(1)
	}

	r, err := web.NewRouter(web.Deps{
		Logger:   log,
		Strategy: strategy,
		Accounts: accounts,
		Items:    items,
		Cookies:  cookies,
		Sessions: sessions,
		Metrics:  m,
		Checks:   backend.checks,
		Gate:     cfg.AuthGate,
	})
	if err != nil {
		log.Error("Failed to create router", logger.Component("router"), logger.Error(err))
		os.Exit(1)
	}

	log.Info("Application configured",
		logger.Component("app"),
		logger.Key("session_strategy", strategy.Name()),
		logger.Key("auth_gate", cfg.AuthGate),
		logger.Key("session_store", cfg.Session.Store),
		logger.Count("routes", len(r.Routes())),
	)

	eg, ctx := errgroup.WithContext(ctx)

	sessions.StartCleanup(ctx, cfg.Session.CleanupInterval)

	s, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
	if err != nil {
		log.Error("Failed to create server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}
	eg.Go(s.Run(ctx, r))

	if err := eg.Wait(); err != nil {
		log.Error("Failed to run server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	log.Info("Application stopped")
}
