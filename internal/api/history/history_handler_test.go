package history

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/FACorreiaa/go-budget-trip-planner/internal/types"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockHistoryService is a mock implementation of Service.
type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) SaveItinerary(ctx context.Context, req types.TripRequest, it *types.Itinerary) (uuid.UUID, error) {
	args := m.Called(ctx, req, it)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockHistoryService) GetItinerary(ctx context.Context, id uuid.UUID) (*types.SavedItinerary, error) {
	args := m.Called(ctx, id)
	var saved *types.SavedItinerary
	if v := args.Get(0); v != nil {
		saved = v.(*types.SavedItinerary)
	}
	return saved, args.Error(1)
}

func (m *MockHistoryService) GetItineraries(ctx context.Context, page, pageSize int) (*types.PaginatedSavedItinerariesResponse, error) {
	args := m.Called(ctx, page, pageSize)
	var resp *types.PaginatedSavedItinerariesResponse
	if v := args.Get(0); v != nil {
		resp = v.(*types.PaginatedSavedItinerariesResponse)
	}
	return resp, args.Error(1)
}

func (m *MockHistoryService) DeleteItinerary(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func serveWithID(t *testing.T, handlerFunc http.HandlerFunc, method, target, id string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rr := httptest.NewRecorder()
	handlerFunc(rr, req)
	return rr
}

func newMockHandler(svc Service) *Handler {
	return NewHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGetItineraryHandler_NotFound(t *testing.T) {
	svc := new(MockHistoryService)
	id := uuid.New()
	svc.On("GetItinerary", mock.Anything, id).
		Return(nil, fmt.Errorf("itinerary %s: %w", id, types.ErrNotFound))

	rr := serveWithID(t, newMockHandler(svc).GetItinerary, http.MethodGet, "/api/v1/plans/"+id.String(), id.String())
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetItineraryHandler_InvalidID(t *testing.T) {
	svc := new(MockHistoryService)

	rr := serveWithID(t, newMockHandler(svc).GetItinerary, http.MethodGet, "/api/v1/plans/nope", "nope")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "GetItinerary", mock.Anything, mock.Anything)
}

func TestDeleteItineraryHandler_NotFound(t *testing.T) {
	svc := new(MockHistoryService)
	id := uuid.New()
	svc.On("DeleteItinerary", mock.Anything, id).
		Return(fmt.Errorf("itinerary %s: %w", id, types.ErrNotFound))

	rr := serveWithID(t, newMockHandler(svc).DeleteItinerary, http.MethodDelete, "/api/v1/plans/"+id.String(), id.String())
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteItineraryHandler_Success(t *testing.T) {
	svc := new(MockHistoryService)
	id := uuid.New()
	svc.On("DeleteItinerary", mock.Anything, id).Return(nil)

	rr := serveWithID(t, newMockHandler(svc).DeleteItinerary, http.MethodDelete, "/api/v1/plans/"+id.String(), id.String())
	assert.Equal(t, http.StatusNoContent, rr.Code)
	svc.AssertExpectations(t)
}
