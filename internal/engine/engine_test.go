package engine_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/2beens/vitalstats/internal/config"
	"github.com/2beens/vitalstats/internal/engine"
	"github.com/2beens/vitalstats/internal/keyval"
	"github.com/2beens/vitalstats/internal/profile"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNew_DiskStore(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.DataDir = filepath.Join(t.TempDir(), "vitalstats-data")

	e, err := engine.New(ctx, cfg)
	require.NoError(t, err)

	// both ledgers come up demo seeded, profile stays unset
	assert.False(t, e.Profile().IsSet())
	assert.Len(t, e.Nutrition().Meals(), 3)
	assert.Len(t, e.Fitness().Workouts(), 3)

	// a second engine over the same data dir sees the persisted state
	_, err = e.Profile().Create(ctx, profile.CreateParams{
		Name: "Iva", Age: 30, HeightCm: 168, WeightKg: 61,
		ActivityLevel: profile.LightlyActive,
		DietaryGoal:   profile.LoseWeight,
	})
	require.NoError(t, err)

	reopened, err := engine.New(ctx, cfg)
	require.NoError(t, err)
	require.True(t, reopened.Profile().IsSet())
	current, _ := reopened.Profile().Current()
	assert.Equal(t, "Iva", current.Name)
	assert.Len(t, reopened.Nutrition().Meals(), 3)
}

func TestNew_MemoryStore(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	require.Empty(t, cfg.DataDir)
	cfg.LogLevel = "warn"

	e, err := engine.New(ctx, cfg)
	require.NoError(t, err)
	assert.Len(t, e.Nutrition().Meals(), 3)
	assert.Len(t, e.Fitness().Workouts(), 3)

	// log settings from config are applied
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())
	logrus.SetLevel(logrus.TraceLevel)
}

func TestNew_InvalidTimeZone(t *testing.T) {
	cfg := config.Default()
	cfg.TimeZone = "Mars/Olympus_Mons"

	_, err := engine.New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestEngine_Reset(t *testing.T) {
	ctx := context.Background()
	store := keyval.NewTestStore()
	e := engine.NewWithStore(ctx, store, time.UTC)

	_, err := e.Profile().Create(ctx, profile.CreateParams{
		Name: "Marko", Age: 35, HeightCm: 185, WeightKg: 90,
		ActivityLevel: profile.VeryActive,
		DietaryGoal:   profile.BuildMuscle,
	})
	require.NoError(t, err)
	require.NoError(t, e.Nutrition().ClearAll(ctx))

	require.NoError(t, e.Reset(ctx))

	assert.False(t, e.Profile().IsSet())
	assert.Len(t, e.Nutrition().Meals(), 3)
	assert.Len(t, e.Fitness().Workouts(), 3)

	_, ok := store.Stored(keyval.KeyProfile)
	assert.False(t, ok)
}
