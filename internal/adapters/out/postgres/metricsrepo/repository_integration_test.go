package metricsrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/metricsrepo"
	"dispatch/internal/core/domain/model/address"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MetricRepositoryIntegrationTestSuite provides integration tests for
// MetricRepository using PostgreSQL containers.
type MetricRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *metricsrepo.GormMetricRepository
}

func (suite *MetricRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&metricsrepo.MetricDTO{}))
}

func (suite *MetricRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE geocode_metrics").Error)
	suite.repository = metricsrepo.NewGormMetricRepository(suite.db)
}

func (suite *MetricRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *MetricRepositoryIntegrationTestSuite) TestAddBatch_WritesAllEvents() {
	ctx := context.Background()
	now := time.Now()

	events := []address.MetricEvent{
		{Variant: address.VariantOriginal, Success: false, Timestamp: now},
		{Variant: address.VariantNormalized, Success: false, Timestamp: now},
		{Variant: address.VariantNoUnit, Success: true, Timestamp: now},
	}

	suite.Require().NoError(suite.repository.AddBatch(ctx, events))

	var count int64
	suite.Require().NoError(suite.db.Model(&metricsrepo.MetricDTO{}).Count(&count).Error)
	suite.Equal(int64(3), count)

	var successes int64
	suite.Require().NoError(suite.db.Model(&metricsrepo.MetricDTO{}).
		Where("variant = ? AND success", string(address.VariantNoUnit)).
		Count(&successes).Error)
	suite.Equal(int64(1), successes)
}

func (suite *MetricRepositoryIntegrationTestSuite) TestAddBatch_EmptyBatchIsNoOp() {
	suite.Require().NoError(suite.repository.AddBatch(context.Background(), nil))

	var count int64
	suite.Require().NoError(suite.db.Model(&metricsrepo.MetricDTO{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *MetricRepositoryIntegrationTestSuite) TestAddBatch_SweepsExpiredRows() {
	ctx := context.Background()

	stale := []address.MetricEvent{{
		Variant:   address.VariantOriginal,
		Success:   true,
		Timestamp: time.Now().Add(-31 * 24 * time.Hour),
	}}
	suite.Require().NoError(suite.repository.AddBatch(ctx, stale))

	fresh := []address.MetricEvent{{
		Variant:   address.VariantStreetZip,
		Success:   false,
		Timestamp: time.Now(),
	}}
	suite.Require().NoError(suite.repository.AddBatch(ctx, fresh))

	var variants []string
	suite.Require().NoError(suite.db.Model(&metricsrepo.MetricDTO{}).
		Pluck("variant", &variants).Error)
	suite.Equal([]string{string(address.VariantStreetZip)}, variants)
}

func TestMetricRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(MetricRepositoryIntegrationTestSuite))
}
