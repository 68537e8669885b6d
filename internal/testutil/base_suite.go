package testutil

import (
	"context"

	"github.com/stretchr/testify/suite"

	"github.com/leaseflow/leaseflow/internal/cache"
	"github.com/leaseflow/leaseflow/internal/config"
	"github.com/leaseflow/leaseflow/internal/logger"
	"github.com/leaseflow/leaseflow/internal/types"
)

// Stores bundles every in-memory repository and fake collaborator for tests
type Stores struct {
	LeaseRepo        *InMemoryLeaseStore
	ChargeRepo       *InMemoryChargeStore
	TemplateRepo     *InMemoryTemplateStore
	NotificationRepo *InMemoryNotificationStore
	UserRepo         *InMemoryUserStore
	PropertySyncer   *RecordingStatusSyncer
	Publisher        *CapturingPublisher
}

// BaseServiceTestSuite provides fresh stores, config, logger and context for
// every service test.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	logger *logger.Logger
	config *config.Configuration
	db     *TestClient
	cache  cache.Cache
	stores Stores
}

// SetupTest initializes fresh state before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.logger = logger.GetLogger()
	s.config = config.GetDefaultConfig()
	s.db = NewTestClient()
	s.cache = cache.GetInMemoryCache()
	s.stores = Stores{
		LeaseRepo:        NewInMemoryLeaseStore(),
		ChargeRepo:       NewInMemoryChargeStore(),
		TemplateRepo:     NewInMemoryTemplateStore(),
		NotificationRepo: NewInMemoryNotificationStore(),
		UserRepo:         NewInMemoryUserStore(),
		PropertySyncer:   NewRecordingStatusSyncer(),
		Publisher:        NewCapturingPublisher(),
	}

	ctx := types.WithRequestID(context.Background(),
		types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REQUEST))
	s.ctx = types.WithUserID(ctx, "user_test")

	// The cache is a process-wide singleton; keep tests isolated
	s.cache.Flush(s.ctx)
}

// TearDownTest cleans up shared state after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.cache.Flush(s.ctx)
}

// GetContext returns the per-test context carrying request and user ids
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetConfig returns the default configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetDB returns the fake transactional client
func (s *BaseServiceTestSuite) GetDB() *TestClient {
	return s.db
}

// GetCache returns the test cache
func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

// GetStores returns the in-memory stores
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}
