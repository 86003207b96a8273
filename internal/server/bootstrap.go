package server

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/Linda-Mensah/hire-link/internal/auth"
	"github.com/Linda-Mensah/hire-link/internal/config"
	"github.com/Linda-Mensah/hire-link/internal/server/ratelimit"
	"github.com/Linda-Mensah/hire-link/internal/storage"
	"github.com/Linda-Mensah/hire-link/internal/store"
)

// Stores are the two rehydrated state containers sharing one slot.
type Stores struct {
	Applications *store.Store
	Sessions     *auth.Store
	Slot         storage.Slot
}

// SlotOptions maps the storage settings in cfg onto storage.Options.
func SlotOptions(cfg config.Config) storage.Options {
	return storage.Options{
		Backend:     cfg.StorageBackend,
		DataDir:     cfg.DataDir,
		RedisAddr:   cfg.RedisAddr,
		RedisPass:   cfg.RedisPassword,
		DatabaseURL: cfg.DatabaseURL,
	}
}

// OpenStores opens the configured slot, builds both stores on it and loads them concurrently.
func OpenStores(ctx context.Context, cfg config.Config, passwords *config.PasswordConfig) (*Stores, error) {
	slot, err := storage.Open(ctx, SlotOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	sessions, err := auth.New(passwords, auth.DefaultCredentials,
		auth.WithSlot(slot),
		auth.WithLoginDelay(cfg.LoginDelay.Duration),
	)
	if err != nil {
		_ = slot.Close()
		return nil, fmt.Errorf("failed to create auth store: %w", err)
	}
	jobs, err := store.Catalog(cfg.JobsFile)
	if err != nil {
		_ = slot.Close()
		return nil, err
	}
	apps := store.New(store.WithSlot(slot), store.WithJobs(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result, err := apps.Load(gctx)
		if err != nil {
			return err
		}
		log.Printf("[store] Application state %s (%d candidates)", result, len(apps.Snapshot().Candidates))
		return nil
	})
	g.Go(func() error {
		result, err := sessions.Load(gctx)
		if err != nil {
			return err
		}
		log.Printf("[auth] Session state %s", result)
		return nil
	})
	if err := g.Wait(); err != nil {
		_ = slot.Close()
		return nil, err
	}

	return &Stores{Applications: apps, Sessions: sessions, Slot: slot}, nil
}

// Open builds a ready-to-start server from configuration and the JWT_* and BCRYPT_* environment.
func Open(ctx context.Context, cfg config.Config) (*Server, error) {
	passwords, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	stores, err := OpenStores(ctx, cfg, passwords)
	if err != nil {
		return nil, err
	}

	return New(Config{Port: cfg.Port}, Dependencies{
		Applications: stores.Applications,
		Sessions:     stores.Sessions,
		JWT:          NewJWTService(jwtConfig),
		Limiter:      ratelimit.NewLimiter(ratelimit.LoadConfig()),
		Slot:         stores.Slot,
	})
}
