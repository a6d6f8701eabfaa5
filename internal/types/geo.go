package types

// Coordinate is a WGS84 point. Produced by the geo resolver and consumed by
// every downstream spatial query.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// InRange reports whether the coordinate lies inside the valid
// latitude/longitude envelope.
func (c Coordinate) InRange() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// DefaultCoordinate is India's geographic centroid, returned whenever a place
// name cannot be resolved at all.
var DefaultCoordinate = Coordinate{Latitude: 20.5937, Longitude: 78.9629}

// PlaceCategory is one semantic class of spatial feature.
type PlaceCategory string

const (
	CategoryLodging     PlaceCategory = "lodging"
	CategoryAttraction  PlaceCategory = "attraction"
	CategoryTransit     PlaceCategory = "transit"
	CategoryFoodBudget  PlaceCategory = "food-budget"
	CategoryFoodPremium PlaceCategory = "food-premium"
)

// ValidCategory reports whether s names a known place category.
func ValidCategory(s string) bool {
	switch PlaceCategory(s) {
	case CategoryLodging, CategoryAttraction, CategoryTransit, CategoryFoodBudget, CategoryFoodPremium:
		return true
	}
	return false
}

// PlaceQuery bounds one spatial request: a center, a radius and a single
// category filter. Value object, built per request, never persisted.
type PlaceQuery struct {
	Center   Coordinate    `json:"center"`
	RadiusM  int           `json:"radius_m"`
	Category PlaceCategory `json:"category"`
}

// RawFeature is one record as returned by the spatial data source. Name may
// be empty; Tags carries the source's free-form key/value pairs
// (e.g. tourism=hotel).
type RawFeature struct {
	Name       string            `json:"name,omitempty"`
	Coordinate Coordinate        `json:"coordinate"`
	Tags       map[string]string `json:"tags,omitempty"`
}

// NamedPlace is a cleaned entity with a display name that is never empty.
// HasLocation is false for static fallback entries, whose coordinates must be
// synthesized before rendering.
type NamedPlace struct {
	Name        string        `json:"name"`
	Category    PlaceCategory `json:"category"`
	Coordinate  Coordinate    `json:"coordinate"`
	HasLocation bool          `json:"has_location"`
}

// POICatalogResult bundles the cleaned, deduplicated place lists for one
// destination. Every list is non-empty: a static fallback is substituted when
// the upstream source yields nothing usable. UsedFallback is set when any
// list came from fallback content.
type POICatalogResult struct {
	Destination  Coordinate   `json:"destination"`
	Hotels       []NamedPlace `json:"hotels"`
	Attractions  []NamedPlace `json:"attractions"`
	BudgetFood   []NamedPlace `json:"budget_food"`
	PremiumFood  []NamedPlace `json:"premium_food"`
	UsedFallback bool         `json:"used_fallback"`
}

// Annotation is one renderable map marker.
type Annotation struct {
	Name       string        `json:"name"`
	Coordinate Coordinate    `json:"coordinate"`
	Category   PlaceCategory `json:"category"`
	Label      string        `json:"label,omitempty"`
}

// MapLayerRequest selects one category of markers around a destination.
// Budget, Days and Members are optional; when Budget is set, lodging markers
// are labelled with the matching hotel tier.
type MapLayerRequest struct {
	Category    PlaceCategory `json:"category"`
	Destination string        `json:"destination"`
	Budget      int           `json:"budget,omitempty"`
	Days        int           `json:"days,omitempty"`
	Members     int           `json:"members,omitempty"`
}
