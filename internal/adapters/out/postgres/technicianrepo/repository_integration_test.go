package technicianrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/technicianrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/technician"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TechnicianRepositoryIntegrationTestSuite provides integration tests for
// TechnicianRepository using PostgreSQL containers to verify database
// persistence behavior.
type TechnicianRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *technicianrepo.GormTechnicianRepository
}

func (suite *TechnicianRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(
		&technicianrepo.TechnicianDTO{},
		&technicianrepo.JobDTO{},
	))
}

func (suite *TechnicianRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE technician_jobs, technicians").Error)
	suite.repository = technicianrepo.NewGormTechnicianRepository(suite.db)
}

func (suite *TechnicianRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *TechnicianRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()

	jobPoint, err := kernel.NewGeoPoint(38.8561, -77.0848)
	suite.Require().NoError(err)

	firstJob, err := technician.NewQueuedJob(30, 5, true, "first job", nil)
	suite.Require().NoError(err)
	secondJob, err := technician.NewQueuedJob(10, 15, false, "second job", &jobPoint)
	suite.Require().NoError(err)

	tech, err := technician.NewTechnician("tech-1", "QuickFix")
	suite.Require().NoError(err)
	suite.Require().NoError(tech.EnqueueJob(firstJob))
	suite.Require().NoError(tech.EnqueueJob(secondJob))

	suite.Require().NoError(suite.repository.Add(ctx, tech))

	restored, err := suite.repository.Get(ctx, "QuickFix", "tech-1")
	suite.Require().NoError(err)

	suite.Equal("tech-1", restored.ID())
	suite.Equal("QuickFix", restored.Company())
	suite.Nil(restored.BaseLocation())

	queue := restored.JobQueue()
	suite.Require().Len(queue, 2)
	suite.Equal("first job", queue[0].Address())
	suite.True(queue[0].Arrived())
	suite.Nil(queue[0].Point())
	suite.Equal("second job", queue[1].Address())
	suite.False(queue[1].Arrived())
	suite.Require().NotNil(queue[1].Point())
	suite.True(queue[1].Point().IsEqual(jobPoint))

	suite.InDelta(float64(45), restored.WorkloadMinutes(), 0.0001)
}

func (suite *TechnicianRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), "QuickFix", "missing")

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TechnicianRepositoryIntegrationTestSuite) TestGetAllByCompany_OrderedByID() {
	ctx := context.Background()

	for _, id := range []string{"tech-3", "tech-1", "tech-2"} {
		tech, err := technician.NewTechnician(id, "QuickFix")
		suite.Require().NoError(err)
		suite.Require().NoError(suite.repository.Add(ctx, tech))
	}

	other, err := technician.NewTechnician("tech-1", "OtherCo")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, other))

	technicians, err := suite.repository.GetAllByCompany(ctx, "QuickFix")
	suite.Require().NoError(err)

	suite.Require().Len(technicians, 3)
	suite.Equal("tech-1", technicians[0].ID())
	suite.Equal("tech-2", technicians[1].ID())
	suite.Equal("tech-3", technicians[2].ID())
}

func (suite *TechnicianRepositoryIntegrationTestSuite) TestGetAllByCompany_Empty() {
	technicians, err := suite.repository.GetAllByCompany(context.Background(), "NoSuchCo")

	suite.Require().NoError(err)
	suite.Empty(technicians)
}

func (suite *TechnicianRepositoryIntegrationTestSuite) TestUpdateBaseLocation_Persists() {
	ctx := context.Background()

	tech, err := technician.NewTechnician("tech-1", "QuickFix")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, tech))

	basePoint, err := kernel.NewGeoPoint(38.8410, -77.0860)
	suite.Require().NoError(err)
	location, err := technician.NewBaseLocation("1614 10th St S, Arlington, VA 22204", basePoint)
	suite.Require().NoError(err)
	suite.Require().NoError(tech.SetBaseLocation(location))

	suite.Require().NoError(suite.repository.UpdateBaseLocation(ctx, tech))

	restored, err := suite.repository.Get(ctx, "QuickFix", "tech-1")
	suite.Require().NoError(err)

	restoredLocation := restored.BaseLocation()
	suite.Require().NotNil(restoredLocation)
	suite.Equal("1614 10th St S, Arlington, VA 22204", restoredLocation.Address())
	suite.True(restoredLocation.Point().IsEqual(basePoint))
}

func (suite *TechnicianRepositoryIntegrationTestSuite) TestUpdateBaseLocation_MissingRecord() {
	ctx := context.Background()

	tech, err := technician.NewTechnician("ghost", "QuickFix")
	suite.Require().NoError(err)

	basePoint, err := kernel.NewGeoPoint(38.8410, -77.0860)
	suite.Require().NoError(err)
	location, err := technician.NewBaseLocation("somewhere", basePoint)
	suite.Require().NoError(err)
	suite.Require().NoError(tech.SetBaseLocation(location))

	err = suite.repository.UpdateBaseLocation(ctx, tech)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TechnicianRepositoryIntegrationTestSuite) TestUpdateBaseLocation_WithoutLocation() {
	ctx := context.Background()

	tech, err := technician.NewTechnician("tech-1", "QuickFix")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, tech))

	err = suite.repository.UpdateBaseLocation(ctx, tech)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrValueIsRequired)
}

func TestTechnicianRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(TechnicianRepositoryIntegrationTestSuite))
}
