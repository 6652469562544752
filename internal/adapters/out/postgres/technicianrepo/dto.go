// Package technicianrepo provides data transfer objects and mapping functions
// for technician persistence. This package implements the repository pattern
// for the technician domain aggregate, handling the conversion between domain
// entities and database representations.
package technicianrepo

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/technician"
)

// TechnicianDTO represents the database structure for persisting technician
// aggregates. Technicians are keyed by company plus identifier: identifiers
// are assigned per company and are only unique within one.
type TechnicianDTO struct {
	ID          string   `gorm:"type:varchar(64);primaryKey"`
	Company     string   `gorm:"type:varchar(255);primaryKey"`
	BaseAddress *string  `gorm:"type:varchar(512)"`
	BaseLat     *float64 `gorm:"type:double precision"`
	BaseLng     *float64 `gorm:"type:double precision"`
	Jobs        []JobDTO `gorm:"foreignKey:TechnicianID,Company;references:ID,Company;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for technician entities.
// Overrides GORM's default naming convention to use "technicians" instead of
// "technician_dtos".
func (TechnicianDTO) TableName() string {
	return "technicians"
}

// JobDTO represents one queued assignment. Position preserves queue order;
// the final position is the origin of the technician's next leg.
type JobDTO struct {
	TechnicianID     string   `gorm:"type:varchar(64);primaryKey"`
	Company          string   `gorm:"type:varchar(255);primaryKey"`
	Position         int      `gorm:"primaryKey"`
	EstimatedMinutes float64  `gorm:"not null"`
	TravelMinutes    float64  `gorm:"not null"`
	Arrived          bool     `gorm:"not null"`
	Address          string   `gorm:"type:varchar(512);not null"`
	Lat              *float64 `gorm:"type:double precision"`
	Lng              *float64 `gorm:"type:double precision"`
}

// TableName specifies the database table name for queued job entities.
// Overrides GORM's default naming convention to use "technician_jobs" instead
// of "job_dtos".
func (JobDTO) TableName() string {
	return "technician_jobs"
}

// fromDomain converts a technician domain aggregate to its database
// representation, including the ordered job queue and any resolved base
// location.
func fromDomain(tech *technician.Technician) TechnicianDTO {
	jobs := make([]JobDTO, 0, len(tech.JobQueue()))
	for position, job := range tech.JobQueue() {
		var lat, lng *float64
		if point := job.Point(); point != nil {
			latValue, lngValue := point.Lat(), point.Lng()
			lat, lng = &latValue, &lngValue
		}

		jobs = append(jobs, JobDTO{
			TechnicianID:     tech.ID(),
			Company:          tech.Company(),
			Position:         position,
			EstimatedMinutes: job.EstimatedMinutes(),
			TravelMinutes:    job.TravelMinutes(),
			Arrived:          job.Arrived(),
			Address:          job.Address(),
			Lat:              lat,
			Lng:              lng,
		})
	}

	dto := TechnicianDTO{
		ID:      tech.ID(),
		Company: tech.Company(),
		Jobs:    jobs,
	}

	if location := tech.BaseLocation(); location != nil {
		addr := location.Address()
		lat, lng := location.Point().Lat(), location.Point().Lng()
		dto.BaseAddress = &addr
		dto.BaseLat = &lat
		dto.BaseLng = &lng
	}

	return dto
}

// toDomain converts a database DTO to a technician domain aggregate.
// Reconstructs the complete aggregate including the job queue using
// RestoreTechnician.
func toDomain(dto TechnicianDTO) (*technician.Technician, error) {
	jobs := make([]technician.QueuedJob, 0, len(dto.Jobs))
	for _, jobDto := range dto.Jobs {
		job, err := jobToDomain(jobDto)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	var baseLocation *technician.BaseLocation
	if dto.BaseAddress != nil && dto.BaseLat != nil && dto.BaseLng != nil {
		point, err := kernel.NewGeoPoint(*dto.BaseLat, *dto.BaseLng)
		if err != nil {
			return nil, err
		}
		location, err := technician.NewBaseLocation(*dto.BaseAddress, point)
		if err != nil {
			return nil, err
		}
		baseLocation = &location
	}

	return technician.RestoreTechnician(dto.ID, dto.Company, jobs, baseLocation)
}

// jobToDomain converts a job DTO to its domain value object. Stored
// coordinates are carried over only when both components are present.
func jobToDomain(dto JobDTO) (technician.QueuedJob, error) {
	var point *kernel.GeoPoint
	if dto.Lat != nil && dto.Lng != nil {
		p, err := kernel.NewGeoPoint(*dto.Lat, *dto.Lng)
		if err != nil {
			return technician.QueuedJob{}, err
		}
		point = &p
	}

	return technician.NewQueuedJob(
		dto.EstimatedMinutes,
		dto.TravelMinutes,
		dto.Arrived,
		dto.Address,
		point,
	)
}
