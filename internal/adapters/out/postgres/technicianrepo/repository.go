package technicianrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/technician"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTechnicianRepository implements TechnicianRepository using GORM.
type GormTechnicianRepository struct {
	db *gorm.DB
}

// NewGormTechnicianRepository creates a new GORM technician repository.
func NewGormTechnicianRepository(db *gorm.DB) *GormTechnicianRepository {
	return &GormTechnicianRepository{db: db}
}

// Add saves a new technician to the database.
func (r *GormTechnicianRepository) Add(ctx context.Context, aggregate *technician.Technician) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a technician by company and identifier, with the job queue
// in stored order.
func (r *GormTechnicianRepository) Get(
	ctx context.Context, company string, id string,
) (*technician.Technician, error) {
	if company == "" {
		return nil, errs.NewValueIsRequiredError("company")
	}
	if id == "" {
		return nil, errs.NewValueIsRequiredError("id")
	}

	var dto TechnicianDTO
	err := r.db.WithContext(ctx).
		Preload("Jobs", orderedByPosition).
		First(&dto, "company = ? AND id = ?", company, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("technician", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByCompany retrieves every technician record for a company. Results
// are ordered by identifier so repeated dispatches over the same data stay
// deterministic.
func (r *GormTechnicianRepository) GetAllByCompany(
	ctx context.Context, company string,
) ([]*technician.Technician, error) {
	if company == "" {
		return nil, errs.NewValueIsRequiredError("company")
	}

	var dtos []TechnicianDTO
	err := r.db.WithContext(ctx).
		Preload("Jobs", orderedByPosition).
		Where("company = ?", company).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	technicians := make([]*technician.Technician, 0, len(dtos))
	for _, dto := range dtos {
		tech, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		technicians = append(technicians, tech)
	}

	return technicians, nil
}

// UpdateBaseLocation persists a technician's resolved base location. Only
// the base location columns are touched; the job queue is owned by the
// upstream job system and never written back here.
func (r *GormTechnicianRepository) UpdateBaseLocation(
	ctx context.Context, aggregate *technician.Technician,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	location := aggregate.BaseLocation()
	if location == nil {
		return errs.NewValueIsRequiredError("baseLocation")
	}

	result := r.db.WithContext(ctx).
		Model(&TechnicianDTO{}).
		Where("company = ? AND id = ?", aggregate.Company(), aggregate.ID()).
		Updates(map[string]any{
			"base_address": location.Address(),
			"base_lat":     location.Point().Lat(),
			"base_lng":     location.Point().Lng(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("technician", aggregate.ID())
	}

	return nil
}

func orderedByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
