package factory

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/padelmixer/padelmixer-admin/internal/dependencies/mocks"
	"github.com/padelmixer/padelmixer-admin/internal/session"
	"github.com/padelmixer/padelmixer-admin/internal/testutil"
)

// TestSecret signs the tokens of every TestApp
const TestSecret = "test-secret"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	KV         *session.MemoryKV

	navigations []string
}

// NewTestApp creates an in-memory App with mocked dependencies and no latency
func NewTestApp() *TestApp {
	return newTestApp(Config{StorageType: StorageTypeMemory})
}

// NewRemoteTestApp creates an App talking to the API at baseURL with mocked dependencies
func NewRemoteTestApp(baseURL string) *TestApp {
	return newTestApp(Config{StorageType: StorageTypeRemote, RemoteURL: baseURL})
}

func newTestApp(cfg Config) *TestApp {
	t := &TestApp{
		MockClock:  mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)),
		MockRandom: mocks.NewMockRandom(),
		KV:         session.NewMemoryKV(),
	}
	cfg.SessionKV = t.KV
	cfg.JWTSecret = TestSecret
	cfg.Navigator = session.NavigatorFunc(func(path string) {
		t.navigations = append(t.navigations, path)
	})

	app, err := build(cfg, deps{
		clock:      t.MockClock,
		random:     t.MockRandom,
		logger:     testutil.NopLogger(),
		bcryptCost: bcrypt.MinCost,
	})
	if err != nil {
		panic(err)
	}
	t.App = app
	return t
}

// Navigations returns the routes the session store navigated to
func (t *TestApp) Navigations() []string {
	return t.navigations
}
