package cmd

import (
	"log/slog"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/here"
	"dispatch/internal/adapters/out/metricsqueue"
	"dispatch/internal/adapters/out/postgres/metricsrepo"
	"dispatch/internal/adapters/out/postgres/technicianrepo"
	"dispatch/internal/adapters/out/redis/availabilitycache"
	"dispatch/internal/adapters/out/ssm"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters, domain services and use case handlers.
// Shared infrastructure (database, redis, credential cache, metric queue) is
// created once; handlers are cheap and built per call.
type CompositionRoot struct {
	configs     Config
	gormDB      *gorm.DB
	cache       *availabilitycache.RedisAvailabilityCache
	credentials *ssm.ParameterStore
	queue       *metricsqueue.Queue
	logger      *slog.Logger
}

func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	logger *slog.Logger,
) CompositionRoot {
	capacity := configs.MetricQueueCapacity
	if capacity <= 0 {
		capacity = metricsqueue.DefaultCapacity
	}

	return CompositionRoot{
		configs:     configs,
		gormDB:      gormDB,
		cache:       availabilitycache.NewRedisAvailabilityCache(redisClient),
		credentials: ssm.NewParameterStore(configs.CredentialParameter, configs.AWSRegion),
		queue:       metricsqueue.NewQueue(capacity, logger),
		logger:      logger,
	}
}

func (c *CompositionRoot) CreateDispatchCommandHandler() commands.DispatchCommandHandler {
	resolver := c.createGeocodeResolver()
	estimator := services.NewTravelEstimator(
		resolver,
		here.NewRouter(c.configs.RoutingBaseURL, c.credentials),
		c.credentials,
		c.logger,
	)
	calculator := services.NewAvailabilityCalculator(
		resolver, estimator, c.configs.BaseAddresses, c.logger)

	return commands.NewDispatchCommandHandler(
		technicianrepo.NewGormTechnicianRepository(c.gormDB),
		resolver,
		calculator,
		c.cache,
		c.queue,
		c.configs.BaseAddresses,
		c.logger,
	)
}

func (c *CompositionRoot) CreateRecordMetricsBatchCommandHandler() commands.RecordMetricsBatchCommandHandler {
	return commands.NewRecordMetricsBatchCommandHandler(
		metricsrepo.NewGormMetricRepository(c.gormDB))
}

func (c *CompositionRoot) CreateGetAllTechniciansQueryHandler() queries.GetAllTechniciansQueryHandler {
	return queries.NewGetAllTechniciansQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetNextAvailableQueryHandler() queries.GetNextAvailableQueryHandler {
	return queries.NewGetNextAvailableQueryHandler(c.cache)
}

// CreateServer builds the HTTP server over all command and query handlers.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateDispatchCommandHandler(),
		c.CreateRecordMetricsBatchCommandHandler(),
		c.CreateGetAllTechniciansQueryHandler(),
		c.CreateGetNextAvailableQueryHandler(),
	)
}

// CreateJobManager builds the background job manager draining the metric
// queue into the database.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.queue, c.CreateRecordMetricsBatchCommandHandler(), c.logger)
}

func (c *CompositionRoot) createGeocodeResolver() *services.GeocodeResolver {
	return services.NewGeocodeResolver(
		here.NewGeocoder(c.configs.GeocodeBaseURL, c.credentials),
		c.credentials,
		c.logger,
	)
}
