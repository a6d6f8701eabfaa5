package catalog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/FACorreiaa/go-budget-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-budget-trip-planner/config"
	"github.com/FACorreiaa/go-budget-trip-planner/internal/api/spatial"
	"github.com/FACorreiaa/go-budget-trip-planner/internal/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var _ Service = (*ServiceImpl)(nil)

// Service turns raw spatial features into deduplicated, named place lists.
// Every method returns a non-empty list: static fallback content keyed by the
// destination name is substituted whenever the upstream yields nothing
// usable, and the second return value reports that substitution.
//
// Dedupe is case-sensitive by exact display name, preserving first-seen
// order. Two same-named distinct physical locations collapse to one entry;
// coordinate proximity is deliberately not considered (known limitation,
// matching source behavior).
type Service interface {
	Hotels(ctx context.Context, destination string, coord types.Coordinate, limit int) ([]types.NamedPlace, bool)
	Attractions(ctx context.Context, destination string, coord types.Coordinate, limit int) ([]types.NamedPlace, bool)
	FoodPlaces(ctx context.Context, destination string, coord types.Coordinate) ([]types.NamedPlace, []types.NamedPlace, bool)
	Transit(ctx context.Context, destination string, coord types.Coordinate) ([]types.NamedPlace, bool)
	Places(ctx context.Context, destination string, coord types.Coordinate, category types.PlaceCategory) ([]types.NamedPlace, bool)
	Collect(ctx context.Context, destination string, coord types.Coordinate) types.POICatalogResult
}

type ServiceImpl struct {
	logger        *slog.Logger
	spatialClient spatial.Client

	hotelRadiusM      int
	attractionRadiusM int
	transitRadiusM    int
	foodRadiusM       int
	hotelLimit        int
	attractionLimit   int
}

func NewServiceImpl(spatialClient spatial.Client, cfg *config.Config, logger *slog.Logger) *ServiceImpl {
	metrics.InitAppMetrics()
	return &ServiceImpl{
		logger:            logger,
		spatialClient:     spatialClient,
		hotelRadiusM:      cfg.Search.HotelRadiusM,
		attractionRadiusM: cfg.Search.AttractionRadiusM,
		transitRadiusM:    cfg.Search.TransitRadiusM,
		foodRadiusM:       cfg.Search.FoodRadiusM,
		hotelLimit:        cfg.Search.HotelLimit,
		attractionLimit:   cfg.Search.AttractionLimit,
	}
}

// titleCase converts a raw tag token to a display word:
// underscores become spaces and each word is capitalized.
func titleCase(s string) string {
	words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// tagKeyOrder fixes the lookup order for the primary tag when synthesizing a
// display name for an unnamed feature.
var tagKeyOrder = []string{"historic", "tourism", "leisure", "amenity", "railway", "aeroway"}

// synthesizeName builds a label from the feature's primary tag, e.g.
// historic=monument becomes "Historic Monument".
func synthesizeName(tags map[string]string, category types.PlaceCategory) string {
	for _, key := range tagKeyOrder {
		if v, ok := tags[key]; ok && v != "" {
			if key == "historic" {
				return "Historic " + titleCase(v)
			}
			return titleCase(v)
		}
	}
	// No recognizable tag at all; label by requested category.
	return titleCase(string(category))
}

// cleanPlaces applies the naming policy and the ordered, case-sensitive
// name dedupe. Truncation to limit happens after dedupe; limit <= 0 means
// unlimited.
func cleanPlaces(features []types.RawFeature, category types.PlaceCategory, limit int) []types.NamedPlace {
	seen := make(map[string]struct{}, len(features))
	places := make([]types.NamedPlace, 0, len(features))
	for _, f := range features {
		name := f.Name
		if name == "" {
			name = synthesizeName(f.Tags, category)
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		places = append(places, types.NamedPlace{
			Name:        name,
			Category:    category,
			Coordinate:  f.Coordinate,
			HasLocation: true,
		})
	}
	if limit > 0 && len(places) > limit {
		places = places[:limit]
	}
	return places
}

// queryPlaces runs one category query and cleans the result. Upstream
// failure collapses to an empty list here; the caller decides on fallback.
func (s *ServiceImpl) queryPlaces(ctx context.Context, coord types.Coordinate, category types.PlaceCategory, radiusM, limit int) []types.NamedPlace {
	features, err := s.spatialClient.Query(ctx, types.PlaceQuery{
		Center:   coord,
		RadiusM:  radiusM,
		Category: category,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "Spatial query degraded to empty result",
			slog.String("category", string(category)), slog.Any("error", err))
		return nil
	}
	return cleanPlaces(features, category, limit)
}

func (s *ServiceImpl) Hotels(ctx context.Context, destination string, coord types.Coordinate, limit int) ([]types.NamedPlace, bool) {
	ctx, span := otel.Tracer("POICatalog").Start(ctx, "Hotels")
	defer span.End()

	places := s.queryPlaces(ctx, coord, types.CategoryLodging, s.hotelRadiusM, limit)
	if len(places) > 0 {
		span.SetStatus(codes.Ok, "Hotels from live data")
		return places, false
	}

	metrics.Get().FallbackServedTotal.Add(ctx, 1)
	span.SetAttributes(attribute.Bool("fallback", true))
	span.SetStatus(codes.Ok, "Hotels from fallback")
	return fallbackPlaces(fallbackFor(destination).hotels, types.CategoryLodging), true
}

func (s *ServiceImpl) Attractions(ctx context.Context, destination string, coord types.Coordinate, limit int) ([]types.NamedPlace, bool) {
	ctx, span := otel.Tracer("POICatalog").Start(ctx, "Attractions")
	defer span.End()

	places := s.queryPlaces(ctx, coord, types.CategoryAttraction, s.attractionRadiusM, limit)

	// Secondary enrichment: a broader-radius pass tops up a non-empty but
	// short list, appending only names not already present.
	if len(places) > 0 && len(places) < limit {
		extra := s.queryPlaces(ctx, coord, types.CategoryAttraction, s.attractionRadiusM*3, 0)
		seen := make(map[string]struct{}, len(places))
		for _, p := range places {
			seen[p.Name] = struct{}{}
		}
		for _, p := range extra {
			if len(places) >= limit {
				break
			}
			if _, dup := seen[p.Name]; dup {
				continue
			}
			seen[p.Name] = struct{}{}
			places = append(places, p)
		}
	}

	if len(places) > 0 {
		span.SetAttributes(attribute.Int("attractions.count", len(places)))
		span.SetStatus(codes.Ok, "Attractions from live data")
		return places, false
	}

	metrics.Get().FallbackServedTotal.Add(ctx, 1)
	span.SetAttributes(attribute.Bool("fallback", true))
	span.SetStatus(codes.Ok, "Attractions from fallback")
	return fallbackPlaces(fallbackFor(destination).attractions, types.CategoryAttraction), true
}

// FoodPlaces returns two disjoint lists: fast-food-tagged budget venues and
// restaurant-tagged premium venues, each with its own fallback.
func (s *ServiceImpl) FoodPlaces(ctx context.Context, destination string, coord types.Coordinate) ([]types.NamedPlace, []types.NamedPlace, bool) {
	ctx, span := otel.Tracer("POICatalog").Start(ctx, "FoodPlaces")
	defer span.End()

	usedFallback := false
	budget := s.queryPlaces(ctx, coord, types.CategoryFoodBudget, s.foodRadiusM, 0)
	if len(budget) == 0 {
		metrics.Get().FallbackServedTotal.Add(ctx, 1)
		budget = fallbackPlaces(fallbackFor(destination).budgetFood, types.CategoryFoodBudget)
		usedFallback = true
	}

	premium := s.queryPlaces(ctx, coord, types.CategoryFoodPremium, s.foodRadiusM, 0)
	if len(premium) == 0 {
		metrics.Get().FallbackServedTotal.Add(ctx, 1)
		premium = fallbackPlaces(fallbackFor(destination).premiumFood, types.CategoryFoodPremium)
		usedFallback = true
	}

	span.SetAttributes(attribute.Bool("fallback", usedFallback))
	span.SetStatus(codes.Ok, "Food places collected")
	return budget, premium, usedFallback
}

func (s *ServiceImpl) Transit(ctx context.Context, destination string, coord types.Coordinate) ([]types.NamedPlace, bool) {
	ctx, span := otel.Tracer("POICatalog").Start(ctx, "Transit")
	defer span.End()

	places := s.queryPlaces(ctx, coord, types.CategoryTransit, s.transitRadiusM, 0)
	if len(places) > 0 {
		span.SetStatus(codes.Ok, "Transit hubs from live data")
		return places, false
	}

	metrics.Get().FallbackServedTotal.Add(ctx, 1)
	span.SetAttributes(attribute.Bool("fallback", true))
	span.SetStatus(codes.Ok, "Transit hubs from fallback")
	return fallbackPlaces(fallbackFor(destination).transit, types.CategoryTransit), true
}

// Places fetches one category using the configured limits, so a single map
// layer does not pay for the whole catalog.
func (s *ServiceImpl) Places(ctx context.Context, destination string, coord types.Coordinate, category types.PlaceCategory) ([]types.NamedPlace, bool) {
	switch category {
	case types.CategoryLodging:
		return s.Hotels(ctx, destination, coord, s.hotelLimit)
	case types.CategoryAttraction:
		return s.Attractions(ctx, destination, coord, s.attractionLimit)
	case types.CategoryTransit:
		return s.Transit(ctx, destination, coord)
	case types.CategoryFoodBudget:
		budget, _, usedFallback := s.FoodPlaces(ctx, destination, coord)
		return budget, usedFallback
	case types.CategoryFoodPremium:
		_, premium, usedFallback := s.FoodPlaces(ctx, destination, coord)
		return premium, usedFallback
	}
	return nil, false
}

// Collect builds the full result set for one destination using the
// configured limits.
func (s *ServiceImpl) Collect(ctx context.Context, destination string, coord types.Coordinate) types.POICatalogResult {
	ctx, span := otel.Tracer("POICatalog").Start(ctx, "Collect")
	defer span.End()

	hotels, hotelsFB := s.Hotels(ctx, destination, coord, s.hotelLimit)
	attractions, attractionsFB := s.Attractions(ctx, destination, coord, s.attractionLimit)
	budgetFood, premiumFood, foodFB := s.FoodPlaces(ctx, destination, coord)

	result := types.POICatalogResult{
		Destination:  coord,
		Hotels:       hotels,
		Attractions:  attractions,
		BudgetFood:   budgetFood,
		PremiumFood:  premiumFood,
		UsedFallback: hotelsFB || attractionsFB || foodFB,
	}
	span.SetAttributes(
		attribute.Int("hotels.count", len(hotels)),
		attribute.Int("attractions.count", len(attractions)),
		attribute.Bool("used_fallback", result.UsedFallback),
	)
	span.SetStatus(codes.Ok, "Catalog collected")
	return result
}
