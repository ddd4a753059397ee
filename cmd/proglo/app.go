package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/and161185/proglo/internal/config"
	"github.com/and161185/proglo/internal/kv"
	"github.com/and161185/proglo/internal/kv/filestore"
	"github.com/and161185/proglo/internal/kv/memstore"
	"github.com/and161185/proglo/internal/kv/pgstore"
	"github.com/and161185/proglo/internal/kv/sealed"
	"github.com/and161185/proglo/internal/limiter"
	"github.com/and161185/proglo/internal/migrate"
	"github.com/and161185/proglo/internal/repository/local"
	"github.com/and161185/proglo/internal/service"
	"go.uber.org/zap"
)

const deviceKeyLen = 32

type app struct {
	cfg    *config.Config
	log    *zap.Logger
	out    io.Writer
	errOut io.Writer

	store  kv.Store
	sealed *sealed.Store // nil unless a seal passphrase is configured
	close  func()

	auth     *service.AuthServiceImpl
	tracking *service.TrackingServiceImpl
	goals    *service.GoalServiceImpl
	summary  *service.SummaryServiceImpl
	admin    *service.AdminServiceImpl
}

// openStore builds the configured backend and, with a passphrase, wraps it in a sealed store.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (kv.Store, *sealed.Store, func(), error) {
	var (
		inner   kv.Store
		closeFn = func() {}
	)
	switch cfg.Backend {
	case config.BackendFile:
		fs, err := filestore.New(cfg.DataDir)
		if err != nil {
			return nil, nil, nil, err
		}
		inner = fs
	case config.BackendMemory:
		inner = memstore.New()
	case config.BackendPostgres:
		ver, err := migrate.Up(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("migrate up: %w", err)
		}
		log.Debug("schema ready", zap.Int64("version", ver))
		pg, err := pgstore.New(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, nil, err
		}
		inner, closeFn = pg, pg.Close
	default:
		return nil, nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	log.Debug("store opened", zap.String("backend", cfg.Backend))

	if cfg.SealPassphrase == "" {
		if err := sealed.RequirePlain(ctx, inner); err != nil {
			closeFn()
			return nil, nil, nil, err
		}
		return inner, nil, closeFn, nil
	}
	s, err := sealed.Open(ctx, inner, cfg.SealPassphrase)
	if err != nil {
		closeFn()
		return nil, nil, nil, err
	}
	return s, s, closeFn, nil
}

func openApp(ctx context.Context, cfg *config.Config, log *zap.Logger, out, errOut io.Writer) (*app, error) {
	store, sealedStore, closeFn, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	signKey, err := kv.Secret(ctx, store, kv.KeyDeviceKey, deviceKeyLen)
	if err != nil {
		closeFn()
		return nil, fmt.Errorf("device key: %w", err)
	}

	repos := local.Open(store, log)
	lim := limiter.NewStore(store, log, cfg.LoginWindow, cfg.LoginMaxFailures, cfg.LoginBlock)
	auth := service.NewAuthService(repos.Users, repos.Sessions, signKey, cfg.SessionTTL, lim, log)
	tracking := service.NewTrackingService(auth, service.TrackingRepos{
		Activities: repos.Activities,
		BMI:        repos.BMI,
		Nutrition:  repos.Nutrition,
		Sleep:      repos.Sleep,
		Hydration:  repos.Hydration,
	}, log)
	goals := service.NewGoalService(auth, repos.Goals)

	return &app{
		cfg:      cfg,
		log:      log,
		out:      out,
		errOut:   errOut,
		store:    store,
		sealed:   sealedStore,
		close:    closeFn,
		auth:     auth,
		tracking: tracking,
		goals:    goals,
		summary:  service.NewSummaryService(auth, tracking, goals),
		admin:    service.NewAdminService(auth, repos.Users, log),
	}, nil
}

func (a *app) Close() { a.close() }

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
