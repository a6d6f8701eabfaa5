package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/FACorreiaa/go-budget-trip-planner/config"
	"github.com/FACorreiaa/go-budget-trip-planner/internal/types"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var _ Resolver = (*ResolverImpl)(nil)

// Resolver turns a free-text place name into a coordinate. The contract
// cannot fail: a live lookup is attempted once (no retry), then a static
// city table, then the default centroid. The boolean reports whether the
// result came from a precise source (live lookup or static table) so the
// itinerary can carry a partial-data note; the coordinate itself never
// distinguishes the cases.
type Resolver interface {
	Resolve(ctx context.Context, placeName string) (types.Coordinate, bool)
	ClearCache()
}

// staticCities is the offline fallback table, keyed by lowercased name.
var staticCities = map[string]types.Coordinate{
	"goa":       {Latitude: 15.2993, Longitude: 74.1240},
	"manali":    {Latitude: 32.2396, Longitude: 77.1887},
	"jaipur":    {Latitude: 26.9124, Longitude: 75.7873},
	"delhi":     {Latitude: 28.6139, Longitude: 77.2090},
	"agra":      {Latitude: 27.1767, Longitude: 78.0081},
	"mumbai":    {Latitude: 19.0760, Longitude: 72.8777},
	"rishikesh": {Latitude: 30.0869, Longitude: 78.2676},
	"udaipur":   {Latitude: 24.5854, Longitude: 73.7125},
	"varanasi":  {Latitude: 25.3176, Longitude: 82.9739},
}

type ResolverImpl struct {
	logger     *slog.Logger
	endpoint   string
	userAgent  string
	httpClient *http.Client
	cache      *cache.Cache
}

func NewResolverImpl(cfg *config.Config, logger *slog.Logger) *ResolverImpl {
	timeout := cfg.Upstream.GeocodeTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ResolverImpl{
		logger:     logger,
		endpoint:   cfg.Upstream.NominatimURL,
		userAgent:  cfg.Upstream.UserAgent,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache.New(cache.NoExpiration, 0),
	}
}

type geocodeResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (r *ResolverImpl) Resolve(ctx context.Context, placeName string) (types.Coordinate, bool) {
	ctx, span := otel.Tracer("GeoResolver").Start(ctx, "Resolve")
	defer span.End()

	name := strings.TrimSpace(placeName)
	span.SetAttributes(attribute.String("place.name", name))
	if name == "" {
		span.SetStatus(codes.Ok, "Empty input, default coordinate")
		return types.DefaultCoordinate, false
	}

	key := strings.ToLower(name)
	if cached, found := r.cache.Get(key); found {
		span.SetStatus(codes.Ok, "Served from cache")
		return cached.(types.Coordinate), true
	}

	if coord, err := r.lookup(ctx, name); err == nil {
		r.cache.Set(key, coord, cache.NoExpiration)
		span.SetStatus(codes.Ok, "Resolved via live lookup")
		return coord, true
	} else {
		r.logger.WarnContext(ctx, "Live geocode failed, falling back to static table",
			slog.String("place", name), slog.Any("error", err))
		span.RecordError(err)
	}

	if coord, ok := staticCities[key]; ok {
		span.SetStatus(codes.Ok, "Resolved via static table")
		return coord, true
	}

	span.SetStatus(codes.Ok, "Unknown place, default coordinate")
	return types.DefaultCoordinate, false
}

// lookup performs the single live geocode attempt.
func (r *ResolverImpl) lookup(ctx context.Context, name string) (types.Coordinate, error) {
	q := url.Values{}
	q.Set("q", name)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return types.Coordinate{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return types.Coordinate{}, fmt.Errorf("request failed: %v: %w", err, types.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.Coordinate{}, fmt.Errorf("unexpected status %d: %w", resp.StatusCode, types.ErrUpstreamUnavailable)
	}

	var results []geocodeResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return types.Coordinate{}, fmt.Errorf("malformed response: %v: %w", err, types.ErrUpstreamUnavailable)
	}
	if len(results) == 0 {
		return types.Coordinate{}, fmt.Errorf("no results: %w", types.ErrUpstreamUnavailable)
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return types.Coordinate{}, fmt.Errorf("malformed coordinate: %w", types.ErrUpstreamUnavailable)
	}

	coord := types.Coordinate{Latitude: lat, Longitude: lon}
	if !coord.InRange() {
		return types.Coordinate{}, fmt.Errorf("coordinate out of range: %w", types.ErrUpstreamUnavailable)
	}
	return coord, nil
}

// ClearCache drops every cached geocode result.
func (r *ResolverImpl) ClearCache() {
	r.cache.Flush()
}
