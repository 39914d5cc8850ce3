package license

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"warden/internal/application/identity"
	"warden/internal/application/testutil"
	"warden/internal/domain/license"
	"warden/internal/infrastructure/auth"
	"warden/internal/infrastructure/persistence/models"
	"warden/internal/infrastructure/repository"
	shareddb "warden/internal/shared/db"
	"warden/internal/shared/logger"
)

// gatedRepo holds the first n Get calls until all of them arrived, so every
// verify reads the license before any of them binds it.
type gatedRepo struct {
	license.Repository
	calls   atomic.Int32
	n       int32
	arrived sync.WaitGroup
}

func newGatedRepo(inner license.Repository, n int) *gatedRepo {
	g := &gatedRepo{Repository: inner, n: int32(n)}
	g.arrived.Add(n)
	return g
}

func (g *gatedRepo) Get(ctx context.Context, key string) (*license.License, error) {
	l, err := g.Repository.Get(ctx, key)
	if g.calls.Add(1) <= g.n {
		g.arrived.Done()
		g.arrived.Wait()
	}
	return l, err
}

func openStore(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func TestVerify_ConcurrentDevicesBindExactlyOne(t *testing.T) {
	db := openStore(t)
	ctx := context.Background()
	store := repository.NewLicenseRepository(db, 5*time.Second, logger.NewNopLogger())
	require.NoError(t, store.Create(ctx, &license.License{
		LicenseKey: "WARD-A",
		Status:     license.StatusActive,
		CreatedAt:  epoch,
	}))

	log := testutil.NewMockLogger()
	resolver := identity.NewResolver(testutil.NewMockCustomerRepository(), testutil.NewMockPanelAdminRepository(), log)
	svc := NewService(newGatedRepo(store, 2), shareddb.NewTransactionManager(db),
		auth.NewAssertionSigner(testSecret), resolver, "WARD", log)

	devices := []string{"dev-1", "dev-2"}
	results := make([]*VerifyResult, len(devices))
	errs := make([]error, len(devices))
	var wg sync.WaitGroup
	for i, hwid := range devices {
		wg.Add(1)
		go func(i int, hwid string) {
			defer wg.Done()
			results[i], errs[i] = svc.Verify(ctx, "WARD-A", hwid)
		}(i, hwid)
	}
	wg.Wait()

	stored, err := store.Get(ctx, "WARD-A")
	require.NoError(t, err)
	bound := stored.BoundHWID()
	require.Contains(t, devices, bound)

	valid := 0
	for i, hwid := range devices {
		require.NoError(t, errs[i])
		if hwid == bound {
			assert.True(t, results[i].Valid, hwid)
			assert.NotEmpty(t, results[i].Signature)
			valid++
			continue
		}
		assert.False(t, results[i].Valid, hwid)
		assert.Equal(t, license.ReasonHWIDMismatch, results[i].Reason)
		assert.Empty(t, results[i].Signature)
	}
	assert.Equal(t, 1, valid)
}
