package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/vitalstats/internal/config"
	"github.com/2beens/vitalstats/internal/fitness"
	"github.com/2beens/vitalstats/internal/keyval"
	"github.com/2beens/vitalstats/internal/logging"
	"github.com/2beens/vitalstats/internal/nutrition"
	"github.com/2beens/vitalstats/internal/profile"
	"github.com/2beens/vitalstats/pkg"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// Engine bundles the profile store and the two ledgers behind a
// single entry point. The host UI reads analytics straight off the
// components and calls their mutation methods; Engine only wires
// them together over one persistence gateway.
type Engine struct {
	store     keyval.Store
	profile   *profile.Store
	nutrition *nutrition.Ledger
	fitness   *fitness.Ledger
}

// New builds an engine from config: disk-backed when a data dir is
// set, in-memory otherwise. Logging is set up from the config's log
// settings. All three collections are loaded (or demo seeded) before
// it returns.
func New(ctx context.Context, cfg *config.Config) (*Engine, error) {
	logging.Setup(logging.LoggerSetupParams{
		LogFileName: cfg.LogsPath,
		LogToStdout: cfg.LogToStdout,
		LogLevel:    cfg.LogLevel,
	})

	loc := time.UTC
	if cfg.TimeZone != "" {
		var err error
		if loc, err = time.LoadLocation(cfg.TimeZone); err != nil {
			return nil, fmt.Errorf("load time zone %q: %w", cfg.TimeZone, err)
		}
	}

	var store keyval.Store
	if cfg.DataDir != "" {
		diskStore, err := keyval.NewDiskStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("new disk store: %w", err)
		}
		store = diskStore
		log.Debugf("engine: using disk store at %s", cfg.DataDir)
	} else {
		store = keyval.NewMemoryStore(cfg.CacheSizeMB)
		log.Debugf("engine: using in-memory store")
	}

	return NewWithStore(ctx, store, loc), nil
}

// NewWithStore wires the components over an already built gateway.
func NewWithStore(ctx context.Context, store keyval.Store, loc *time.Location) *Engine {
	idGen := pkg.UUIDGenerator{}

	e := &Engine{
		store:     store,
		profile:   profile.NewStore(store, idGen),
		nutrition: nutrition.NewLedger(store, idGen, loc),
		fitness:   fitness.NewLedger(store, idGen, loc),
	}

	e.profile.Load(ctx)
	e.nutrition.Load(ctx)
	e.fitness.Load(ctx)

	return e
}

func (e *Engine) Profile() *profile.Store {
	return e.profile
}

func (e *Engine) Nutrition() *nutrition.Ledger {
	return e.nutrition
}

func (e *Engine) Fitness() *fitness.Ledger {
	return e.fitness
}

// Reset wipes all persisted and in-memory state: profile gone, both
// ledgers back to the demo dataset. Failures are combined so one bad
// key does not mask the others.
func (e *Engine) Reset(ctx context.Context) error {
	var err error
	err = multierr.Append(err, e.profile.Reset(ctx))
	err = multierr.Append(err, e.nutrition.ResetToDefaults(ctx))
	err = multierr.Append(err, e.fitness.ResetToDefaults(ctx))
	if err != nil {
		return fmt.Errorf("engine reset: %w", err)
	}
	log.Infof("engine: state reset")
	return nil
}
