package queries_test

import (
	"context"
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAvailabilityCache struct{ mock.Mock }

func (m *MockAvailabilityCache) Put(ctx context.Context, entry ports.AvailabilityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAvailabilityCache) Get(
	ctx context.Context, company string,
) (ports.AvailabilityEntry, bool, error) {
	args := m.Called(ctx, company)
	return args.Get(0).(ports.AvailabilityEntry), args.Bool(1), args.Error(2)
}

func TestGetNextAvailableQueryHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	technicianID := "tech-7"

	cache := new(MockAvailabilityCache)
	cache.On("Get", ctx, "QuickFix").Return(ports.AvailabilityEntry{
		Company:       "QuickFix",
		TechnicianID:  &technicianID,
		TravelMinutes: 14,
		JobAddress:    "456 Oak Ave, Springfield, VA 22150",
	}, true, nil).Once()

	query, err := queries.NewGetNextAvailableQuery("QuickFix")
	require.NoError(t, err)

	handler := queries.NewGetNextAvailableQueryHandler(cache)
	response, err := handler.Handle(ctx, query)

	require.NoError(t, err)
	assert.Equal(t, "QuickFix", response.Company)
	require.NotNil(t, response.TechnicianID)
	assert.Equal(t, "tech-7", *response.TechnicianID)
	assert.Equal(t, 14, response.TravelMinutes)
	cache.AssertExpectations(t)
}

func TestGetNextAvailableQueryHandler_Handle_Miss(t *testing.T) {
	ctx := t.Context()

	cache := new(MockAvailabilityCache)
	cache.On("Get", ctx, "QuickFix").
		Return(ports.AvailabilityEntry{}, false, nil).Once()

	query, err := queries.NewGetNextAvailableQuery("QuickFix")
	require.NoError(t, err)

	handler := queries.NewGetNextAvailableQueryHandler(cache)
	_, err = handler.Handle(ctx, query)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGetNextAvailableQueryHandler_Handle_CacheError(t *testing.T) {
	ctx := t.Context()

	cache := new(MockAvailabilityCache)
	cache.On("Get", ctx, "QuickFix").
		Return(ports.AvailabilityEntry{}, false, errors.New("redis down")).Once()

	query, err := queries.NewGetNextAvailableQuery("QuickFix")
	require.NoError(t, err)

	handler := queries.NewGetNextAvailableQueryHandler(cache)
	_, err = handler.Handle(ctx, query)

	require.Error(t, err)
	require.EqualError(t, err, "redis down")
}

func TestNewGetNextAvailableQuery_EmptyCompany(t *testing.T) {
	_, err := queries.NewGetNextAvailableQuery("")

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGetNextAvailableQuery_Validate_NotConstructed(t *testing.T) {
	query := queries.GetNextAvailableQuery{}

	err := query.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetNextAvailableQueryIsNotConstructed)
}
