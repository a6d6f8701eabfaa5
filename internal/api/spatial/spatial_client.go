package spatial

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/FACorreiaa/go-budget-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-budget-trip-planner/config"
	"github.com/FACorreiaa/go-budget-trip-planner/internal/types"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/singleflight"
)

var _ Client = (*ClientImpl)(nil)

// Client executes "find features near point" queries against the spatial data
// endpoint. The whole result set is materialized, never lazy.
//
// Failure contract: exhausting retries yields an empty slice together with an
// error wrapping types.ErrUpstreamUnavailable, never a panic. Callers treat
// "no data" and "API down" identically and degrade to fallback content.
type Client interface {
	Query(ctx context.Context, q types.PlaceQuery) ([]types.RawFeature, error)
	ClearCache()
}

type ClientImpl struct {
	logger         *slog.Logger
	endpoint       string
	statusEndpoint string
	userAgent      string
	attempts       int
	backoff        time.Duration
	httpClient     *http.Client

	// Read-through cache keyed by exact query text. Populated on first
	// success (an empty result set is a success), never expired
	// automatically; ClearCache is the only invalidation.
	cache *cache.Cache
	group singleflight.Group
}

func NewClientImpl(cfg *config.Config, logger *slog.Logger) *ClientImpl {
	metrics.InitAppMetrics()
	attempts := cfg.Upstream.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &ClientImpl{
		logger:         logger,
		endpoint:       cfg.Upstream.OverpassURL,
		statusEndpoint: cfg.Upstream.OverpassStatusURL,
		userAgent:      cfg.Upstream.UserAgent,
		attempts:       attempts,
		backoff:        cfg.Upstream.RetryBackoff,
		httpClient:     &http.Client{Timeout: cfg.Upstream.Timeout},
		cache:          cache.New(cache.NoExpiration, 0),
	}
}

// categorySelectors maps a place category to its node filters. Attractions
// union three sub-categories: tourist attraction, historic
// monument/castle/ruins and park.
func categorySelectors(c types.PlaceCategory) []string {
	switch c {
	case types.CategoryLodging:
		return []string{`"tourism"="hotel"`, `"tourism"="hostel"`}
	case types.CategoryAttraction:
		return []string{`"tourism"="attraction"`, `"historic"~"monument|castle|ruins"`, `"leisure"="park"`}
	case types.CategoryTransit:
		return []string{`"amenity"="bus_station"`, `"railway"="station"`, `"aeroway"="aerodrome"`}
	case types.CategoryFoodBudget:
		return []string{`"amenity"="fast_food"`}
	case types.CategoryFoodPremium:
		return []string{`"amenity"="restaurant"`}
	}
	return nil
}

// BuildQuery renders the Overpass QL for one place query. Identical queries
// render to identical text, which doubles as the cache key.
func BuildQuery(q types.PlaceQuery) string {
	var b strings.Builder
	b.WriteString("[out:json];(")
	for _, sel := range categorySelectors(q.Category) {
		fmt.Fprintf(&b, "node[%s](around:%d,%.4f,%.4f);", sel, q.RadiusM, q.Center.Latitude, q.Center.Longitude)
	}
	b.WriteString(");out;")
	return b.String()
}

type overpassElement struct {
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

func (c *ClientImpl) Query(ctx context.Context, q types.PlaceQuery) ([]types.RawFeature, error) {
	ctx, span := otel.Tracer("SpatialClient").Start(ctx, "Query")
	defer span.End()
	span.SetAttributes(
		attribute.String("query.category", string(q.Category)),
		attribute.Int("query.radius_m", q.RadiusM),
	)

	queryText := BuildQuery(q)
	if cached, found := c.cache.Get(queryText); found {
		metrics.Get().QueryCacheHitsTotal.Add(ctx, 1)
		span.SetStatus(codes.Ok, "Served from cache")
		return cached.([]types.RawFeature), nil
	}

	// Collapse duplicate in-flight requests for the same query text. The
	// fetch is detached from the first caller's cancellation so collapsed
	// callers do not inherit it; the HTTP client timeout still bounds it.
	v, err, _ := c.group.Do(queryText, func() (interface{}, error) {
		return c.fetch(context.WithoutCancel(ctx), queryText)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Upstream query failed")
		return []types.RawFeature{}, err
	}

	features := v.([]types.RawFeature)
	span.SetAttributes(attribute.Int("result.count", len(features)))
	span.SetStatus(codes.Ok, "Query completed")
	return features, nil
}

func (c *ClientImpl) fetch(ctx context.Context, queryText string) ([]types.RawFeature, error) {
	l := c.logger.With(slog.String("method", "fetch"))

	if !c.probeHealthy(ctx) {
		l.WarnContext(ctx, "Upstream health probe failed, short-circuiting to empty result")
		return []types.RawFeature{}, fmt.Errorf("health probe failed: %w", types.ErrUpstreamUnavailable)
	}

	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		features, err := c.doRequest(ctx, queryText)
		if err == nil {
			c.cache.Set(queryText, features, cache.NoExpiration)
			return features, nil
		}
		lastErr = err
		l.WarnContext(ctx, "Spatial query attempt failed",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", c.attempts),
			slog.Any("error", err),
		)
		if attempt < c.attempts {
			select {
			case <-time.After(c.backoff):
			case <-ctx.Done():
				return []types.RawFeature{}, fmt.Errorf("query cancelled: %w", types.ErrUpstreamUnavailable)
			}
		}
	}
	metrics.Get().UpstreamErrorsTotal.Add(ctx, 1)
	return []types.RawFeature{}, fmt.Errorf("retries exhausted: %v: %w", lastErr, types.ErrUpstreamUnavailable)
}

func (c *ClientImpl) doRequest(ctx context.Context, queryText string) ([]types.RawFeature, error) {
	start := time.Now()
	metrics.Get().UpstreamRequestsTotal.Add(ctx, 1)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader("data="+queryText))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	metrics.Get().UpstreamDurationSecs.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// The endpoint answers 504 under load; treated like any other failure.
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var parsed overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		// A 200 with an unparsable body counts as an empty result, not a
		// retryable failure, matching the degradation contract.
		c.logger.WarnContext(ctx, "Unparsable spatial response body, treating as empty", slog.Any("error", err))
		return []types.RawFeature{}, nil
	}

	features := make([]types.RawFeature, 0, len(parsed.Elements))
	for _, el := range parsed.Elements {
		features = append(features, types.RawFeature{
			Name:       el.Tags["name"],
			Coordinate: types.Coordinate{Latitude: el.Lat, Longitude: el.Lon},
			Tags:       el.Tags,
		})
	}
	return features, nil
}

// probeHealthy checks the optional upstream status endpoint before spending
// retry budget on the main call. No status endpoint configured means healthy.
func (c *ClientImpl) probeHealthy(ctx context.Context) bool {
	if c.statusEndpoint == "" {
		return true
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.statusEndpoint, nil)
	if err != nil {
		return true
	}
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// ClearCache drops every cached query result. User-triggered ("refresh data").
func (c *ClientImpl) ClearCache() {
	c.cache.Flush()
}
