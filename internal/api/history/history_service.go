package history

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/FACorreiaa/go-budget-trip-planner/internal/types"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for the trip history.
type Service interface {
	SaveItinerary(ctx context.Context, req types.TripRequest, it *types.Itinerary) (uuid.UUID, error)
	GetItinerary(ctx context.Context, id uuid.UUID) (*types.SavedItinerary, error)
	GetItineraries(ctx context.Context, page, pageSize int) (*types.PaginatedSavedItinerariesResponse, error)
	DeleteItinerary(ctx context.Context, id uuid.UUID) error
}

type ServiceImpl struct {
	logger            *slog.Logger
	historyRepository Repository
}

func NewServiceImpl(historyRepository Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:            logger,
		historyRepository: historyRepository,
	}
}

func (s *ServiceImpl) SaveItinerary(ctx context.Context, req types.TripRequest, it *types.Itinerary) (uuid.UUID, error) {
	id, err := s.historyRepository.SaveItinerary(ctx, req, it)
	if err != nil {
		s.logger.Error("failed to save itinerary", "error", err)
		return uuid.Nil, err
	}
	return id, nil
}

func (s *ServiceImpl) GetItinerary(ctx context.Context, id uuid.UUID) (*types.SavedItinerary, error) {
	ctx, span := otel.Tracer("HistoryService").Start(ctx, "GetItinerary")
	defer span.End()

	saved, err := s.historyRepository.GetItinerary(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to get itinerary", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get itinerary: %w", err)
	}
	if saved == nil {
		return nil, fmt.Errorf("itinerary %s: %w", id, types.ErrNotFound)
	}

	span.SetStatus(codes.Ok, "Itinerary retrieved successfully")
	return saved, nil
}

func (s *ServiceImpl) GetItineraries(ctx context.Context, page, pageSize int) (*types.PaginatedSavedItinerariesResponse, error) {
	ctx, span := otel.Tracer("HistoryService").Start(ctx, "GetItineraries", trace.WithAttributes(
		attribute.Int("page", page),
		attribute.Int("page_size", pageSize),
	))
	defer span.End()

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	itineraries, totalRecords, err := s.historyRepository.GetItineraries(ctx, page, pageSize)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to get itineraries", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("failed to retrieve itineraries: %w", err)
	}

	span.SetAttributes(attribute.Int("itineraries.count", len(itineraries)), attribute.Int("total_records", totalRecords))
	span.SetStatus(codes.Ok, "Itineraries retrieved")

	return &types.PaginatedSavedItinerariesResponse{
		Itineraries:  itineraries,
		TotalRecords: totalRecords,
		Page:         page,
		PageSize:     pageSize,
	}, nil
}

func (s *ServiceImpl) DeleteItinerary(ctx context.Context, id uuid.UUID) error {
	ctx, span := otel.Tracer("HistoryService").Start(ctx, "DeleteItinerary")
	defer span.End()

	if err := s.historyRepository.DeleteItinerary(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to delete itinerary", slog.Any("error", err))
		span.RecordError(err)
		return err
	}
	span.SetStatus(codes.Ok, "Itinerary deleted")
	return nil
}
