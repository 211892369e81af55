package factory

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/yx043749/beaver-farm/internal/catalog"
	"github.com/yx043749/beaver-farm/internal/dependencies/mocks"
	"github.com/yx043749/beaver-farm/internal/services/auth"
	"github.com/yx043749/beaver-farm/internal/storage/memory"
	"github.com/yx043749/beaver-farm/internal/testutil"
)

// TestSecret signs tokens issued by a TestApp
const TestSecret = "test-secret"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	MockIDs   *mocks.MockIDGenerator
}

// NewTestApp creates an App configured for testing with mocked dependencies
// and the bundled catalog
func NewTestApp() *TestApp {
	cat, err := catalog.Default()
	if err != nil {
		panic(err)
	}
	return NewTestAppWithCatalog(cat)
}

// NewTestAppWithCatalog creates a test App around the given catalog
func NewTestAppWithCatalog(cat *catalog.Catalog) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	mockIDs := mocks.NewMockIDGenerator()

	authCfg := auth.DefaultConfig()
	authCfg.Secret = TestSecret
	authCfg.BcryptCost = bcrypt.MinCost

	app := newWithDependencies(store, mockClock, mockIDs, cat, authCfg, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		MockIDs:   mockIDs,
	}
}

// AdvanceDays moves the mock clock forward by n calendar days
func (t *TestApp) AdvanceDays(n int) {
	t.MockClock.Advance(time.Duration(n) * 24 * time.Hour)
}
