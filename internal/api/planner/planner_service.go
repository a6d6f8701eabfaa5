package planner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/FACorreiaa/go-budget-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-budget-trip-planner/internal/api/catalog"
	"github.com/FACorreiaa/go-budget-trip-planner/internal/api/geo"
	"github.com/FACorreiaa/go-budget-trip-planner/internal/api/history"
	"github.com/FACorreiaa/go-budget-trip-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-budget-trip-planner/internal/api/maps"
	"github.com/FACorreiaa/go-budget-trip-planner/internal/api/spatial"
	"github.com/FACorreiaa/go-budget-trip-planner/internal/api/weather"
	"github.com/FACorreiaa/go-budget-trip-planner/internal/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var _ Service = (*ServiceImpl)(nil)

// Service is the planner facade exposed to the presentation layer. Only
// invalid trip parameters surface as errors; every upstream failure below
// this boundary degrades to fallback content.
type Service interface {
	ResolvePlan(ctx context.Context, req types.TripRequest) (*types.Itinerary, error)
	GetMapLayers(ctx context.Context, req types.MapLayerRequest) ([]types.Annotation, error)
	Weather(ctx context.Context, destination string) string
	ClearCache(ctx context.Context)
}

type ServiceImpl struct {
	logger        *slog.Logger
	geoResolver   geo.Resolver
	catalog       catalog.Service
	assembler     itinerary.Service
	mapBuilder    maps.Builder
	weatherClient weather.Client
	spatialClient spatial.Client
	historyRepo   history.Repository // may be nil when persistence is disabled
}

func NewServiceImpl(
	geoResolver geo.Resolver,
	catalogService catalog.Service,
	assembler itinerary.Service,
	mapBuilder maps.Builder,
	weatherClient weather.Client,
	spatialClient spatial.Client,
	historyRepo history.Repository,
	logger *slog.Logger,
) *ServiceImpl {
	metrics.InitAppMetrics()
	return &ServiceImpl{
		logger:        logger,
		geoResolver:   geoResolver,
		catalog:       catalogService,
		assembler:     assembler,
		mapBuilder:    mapBuilder,
		weatherClient: weatherClient,
		spatialClient: spatialClient,
		historyRepo:   historyRepo,
	}
}

// ResolvePlan runs the full pipeline: geocode both endpoints, collect the
// POI catalog for the destination, assemble the day-by-day plan and attach
// the weather summary. The itinerary carries PartialData when any geocode or
// POI list fell back to static content.
func (s *ServiceImpl) ResolvePlan(ctx context.Context, req types.TripRequest) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "ResolvePlan")
	defer span.End()
	span.SetAttributes(
		attribute.String("trip.origin", req.Origin),
		attribute.String("trip.destination", req.Destination),
		attribute.Int("trip.days", req.Days),
	)
	start := time.Now()

	_, originPrecise := s.geoResolver.Resolve(ctx, req.Origin)
	destCoord, destPrecise := s.geoResolver.Resolve(ctx, req.Destination)

	cat := s.catalog.Collect(ctx, req.Destination, destCoord)

	it, err := s.assembler.Assemble(ctx, req, cat)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Assembly failed")
		return nil, fmt.Errorf("failed to assemble itinerary: %w", err)
	}

	if !originPrecise || !destPrecise {
		it.PartialData = true
	}
	it.Weather = s.weatherClient.Summary(ctx, destCoord)

	if s.historyRepo != nil {
		// Best effort: a history outage must not fail plan generation.
		if _, err := s.historyRepo.SaveItinerary(ctx, req, it); err != nil {
			s.logger.WarnContext(ctx, "Failed to persist itinerary to history", slog.Any("error", err))
		}
	}

	metrics.Get().PlanGenerationsTotal.Add(ctx, 1)
	metrics.Get().PlanDurationSeconds.Record(ctx, time.Since(start).Seconds())
	span.SetAttributes(attribute.Bool("plan.partial_data", it.PartialData))
	span.SetStatus(codes.Ok, "Plan resolved")
	return it, nil
}

// GetMapLayers resolves the destination and projects the requested category
// into renderable annotations. Only that category is queried; the spatial
// cache still makes repeated layer requests for one destination cheap.
// Lodging markers are labelled with the trip's hotel tier when the request
// carries a budget.
func (s *ServiceImpl) GetMapLayers(ctx context.Context, req types.MapLayerRequest) ([]types.Annotation, error) {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "GetMapLayers")
	defer span.End()
	span.SetAttributes(
		attribute.String("layer.category", string(req.Category)),
		attribute.String("layer.destination", req.Destination),
	)

	if !types.ValidCategory(string(req.Category)) {
		span.SetStatus(codes.Error, "Unknown category")
		return nil, fmt.Errorf("unknown category %q: %w", req.Category, types.ErrInvalidInput)
	}

	coord, _ := s.geoResolver.Resolve(ctx, req.Destination)
	places, _ := s.catalog.Places(ctx, req.Destination, coord, req.Category)

	label := ""
	if req.Category == types.CategoryLodging && req.Budget > 0 {
		label = string(itinerary.TierFor(req.Budget, req.Days, req.Members))
	}

	annotations := s.mapBuilder.Build(req.Category, coord, places, label)
	span.SetAttributes(attribute.Int("annotations.count", len(annotations)))
	span.SetStatus(codes.Ok, "Map layers built")
	return annotations, nil
}

// Weather resolves the destination and returns a one-line weather summary,
// or the unavailable string.
func (s *ServiceImpl) Weather(ctx context.Context, destination string) string {
	coord, _ := s.geoResolver.Resolve(ctx, destination)
	return s.weatherClient.Summary(ctx, coord)
}

// ClearCache drops every cached spatial and geocode result ("refresh data").
func (s *ServiceImpl) ClearCache(ctx context.Context) {
	s.spatialClient.ClearCache()
	s.geoResolver.ClearCache()
	s.logger.InfoContext(ctx, "Query caches cleared")
}
