package http

import (
	"errors"
	"io"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server handles HTTP requests for the dispatch service.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	dispatchHandler      commands.DispatchCommandHandler
	recordMetricsHandler commands.RecordMetricsBatchCommandHandler

	// Query handlers
	getAllTechniciansHandler queries.GetAllTechniciansQueryHandler
	getNextAvailableHandler  queries.GetNextAvailableQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	dispatchHandler commands.DispatchCommandHandler,
	recordMetricsHandler commands.RecordMetricsBatchCommandHandler,
	getAllTechniciansHandler queries.GetAllTechniciansQueryHandler,
	getNextAvailableHandler queries.GetNextAvailableQueryHandler,
) *Server {
	return &Server{
		dispatchHandler:          dispatchHandler,
		recordMetricsHandler:     recordMetricsHandler,
		getAllTechniciansHandler: getAllTechniciansHandler,
		getNextAvailableHandler:  getNextAvailableHandler,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/dispatch", s.Dispatch)
	e.GET("/api/v1/technicians", s.GetTechnicians)
	e.GET("/api/v1/next-available/:company", s.GetNextAvailable)
	e.GET("/health", s.Health)
}

// Dispatch handles POST /api/v1/dispatch. The body is classified into one of
// the accepted shapes first; an unrecognized shape is rejected without any
// side effects.
func (s *Server) Dispatch(ctx echo.Context) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Could not read request body",
		})
	}

	payload, err := classifyDispatchPayload(body)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Unrecognized request payload",
		})
	}

	if payload.kind == payloadMetricsBatch {
		return s.recordMetricsBatch(ctx, payload)
	}

	return s.dispatch(ctx, payload)
}

func (s *Server) dispatch(ctx echo.Context, payload dispatchPayload) error {
	cmd, err := commands.NewDispatchCommand(payload.company, payload.address)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid dispatch request: " + err.Error(),
		})
	}

	result, err := s.dispatchHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.dispatchError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, DispatchResponse{
		TechnicianID: result.TechnicianID,
		EtaMinutes:   result.EtaMinutes,
	})
}

func (s *Server) dispatchError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid dispatch request: " + err.Error(),
		})
	case errors.Is(err, commands.ErrNoTechniciansFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "No technicians found",
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to evaluate dispatch",
		})
	}
}

// recordMetricsBatch handles the self-addressed metrics flush callback.
func (s *Server) recordMetricsBatch(ctx echo.Context, payload dispatchPayload) error {
	if len(payload.metrics) == 0 {
		return ctx.JSON(http.StatusOK, MetricsBatchResponse{Processed: 0})
	}

	cmd, err := commands.NewRecordMetricsBatchCommand(payload.metrics)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid metrics batch: " + err.Error(),
		})
	}

	if err := s.recordMetricsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to record metrics",
		})
	}

	return ctx.JSON(http.StatusOK, MetricsBatchResponse{Processed: len(payload.metrics)})
}

// GetTechnicians handles GET /api/v1/technicians - retrieves all technicians.
func (s *Server) GetTechnicians(ctx echo.Context) error {
	query := queries.NewGetAllTechniciansQuery()

	technicians, err := s.getAllTechniciansHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve technicians",
		})
	}

	response := make([]Technician, len(technicians))
	for i, tech := range technicians {
		response[i] = Technician{
			ID:              tech.ID,
			Company:         tech.Company,
			QueuedJobs:      tech.QueuedJobs,
			HasBaseLocation: tech.HasBaseLocation,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetNextAvailable handles GET /api/v1/next-available/:company - returns the
// cached decision of the most recent dispatch evaluation for the company.
func (s *Server) GetNextAvailable(ctx echo.Context) error {
	query, err := queries.NewGetNextAvailableQuery(ctx.Param("company"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request: " + err.Error(),
		})
	}

	entry, err := s.getNextAvailableHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "No availability entry for company",
			})
		}

		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve availability",
		})
	}

	response := NextAvailable{
		Company:       entry.Company,
		TechnicianID:  entry.TechnicianID,
		TravelMinutes: entry.TravelMinutes,
		JobAddress:    entry.JobAddress,
	}
	if entry.Point != nil {
		lat, lng := entry.Point.Lat(), entry.Point.Lng()
		response.Lat, response.Lng = &lat, &lng
	}

	return ctx.JSON(http.StatusOK, response)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}
