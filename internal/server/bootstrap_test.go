package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Linda-Mensah/hire-link/internal/config"
	"github.com/Linda-Mensah/hire-link/internal/types"
)

func TestOpenStores_FileBackendRoundTrip(t *testing.T) {
	ctx := context.Background()
	cfg := config.Defaults()
	cfg.DataDir = t.TempDir()
	cfg.LoginDelay = config.Duration{}
	passwords := &config.PasswordConfig{BcryptCost: bcrypt.MinCost}

	first, err := OpenStores(ctx, cfg, passwords)
	require.NoError(t, err)
	assert.Len(t, first.Applications.Snapshot().Candidates, 2)

	first.Applications.UpdateCandidateStage(ctx, "1", types.StageOfferSent)
	ok, err := first.Sessions.Login(ctx, "admin@hirelink.com", "admin123")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, first.Slot.Close())

	second, err := OpenStores(ctx, cfg, passwords)
	require.NoError(t, err)
	defer second.Slot.Close()

	c, found := second.Applications.GetCandidate("1")
	require.True(t, found)
	assert.Equal(t, types.StageOfferSent, c.Stage)
	assert.True(t, second.Sessions.IsAuthenticated())
}

func TestOpenStores_UnknownBackend(t *testing.T) {
	cfg := config.Defaults()
	cfg.StorageBackend = "floppy"

	_, err := OpenStores(context.Background(), cfg, &config.PasswordConfig{BcryptCost: bcrypt.MinCost})
	assert.Error(t, err)
}

func TestOpen_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	cfg := config.Defaults()
	cfg.StorageBackend = "memory"

	_, err := Open(context.Background(), cfg)
	assert.Error(t, err)
}

func TestOpen_MemoryBackend(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	cfg := config.Defaults()
	cfg.StorageBackend = "memory"

	srv, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer srv.release()

	assert.Equal(t, ":8080", srv.httpServer.Addr)
	assert.NotNil(t, srv.Handler())
}

func TestOpenStores_JobsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"go-1","title":"Go Engineer","department":"Platform"}]`), 0o644))

	cfg := config.Defaults()
	cfg.StorageBackend = "memory"
	cfg.JobsFile = path

	stores, err := OpenStores(context.Background(), cfg, &config.PasswordConfig{BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)
	defer stores.Slot.Close()

	jobs := stores.Applications.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "Go Engineer", jobs[0].Title)
	_, ok := stores.Applications.GetJobByID("1")
	assert.False(t, ok)
}

func TestOpenStores_BadJobsFile(t *testing.T) {
	cfg := config.Defaults()
	cfg.StorageBackend = "memory"
	cfg.JobsFile = filepath.Join(t.TempDir(), "missing.json")

	_, err := OpenStores(context.Background(), cfg, &config.PasswordConfig{BcryptCost: bcrypt.MinCost})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read job catalog")
}
