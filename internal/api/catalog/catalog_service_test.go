package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/FACorreiaa/go-budget-trip-planner/config"
	"github.com/FACorreiaa/go-budget-trip-planner/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSpatialClient is a mock implementation of spatial.Client.
type MockSpatialClient struct {
	mock.Mock
}

func (m *MockSpatialClient) Query(ctx context.Context, q types.PlaceQuery) ([]types.RawFeature, error) {
	args := m.Called(ctx, q)
	var features []types.RawFeature
	if v := args.Get(0); v != nil {
		features = v.([]types.RawFeature)
	}
	return features, args.Error(1)
}

func (m *MockSpatialClient) ClearCache() {
	m.Called()
}

func newTestService(client *MockSpatialClient) *ServiceImpl {
	cfg := &config.Config{}
	cfg.Search.HotelRadiusM = 3000
	cfg.Search.AttractionRadiusM = 10000
	cfg.Search.TransitRadiusM = 5000
	cfg.Search.FoodRadiusM = 3000
	cfg.Search.HotelLimit = 5
	cfg.Search.AttractionLimit = 12
	return NewServiceImpl(client, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func forCategory(category types.PlaceCategory) interface{} {
	return mock.MatchedBy(func(q types.PlaceQuery) bool {
		return q.Category == category
	})
}

func named(names ...string) []types.RawFeature {
	features := make([]types.RawFeature, 0, len(names))
	for i, n := range names {
		features = append(features, types.RawFeature{
			Name:       n,
			Coordinate: types.Coordinate{Latitude: float64(i), Longitude: float64(i)},
		})
	}
	return features
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Fast Food", titleCase("fast_food"))
	assert.Equal(t, "Bus Station", titleCase("bus_station"))
	assert.Equal(t, "Attraction", titleCase("attraction"))
}

func TestSynthesizeName(t *testing.T) {
	tests := []struct {
		name     string
		tags     map[string]string
		category types.PlaceCategory
		want     string
	}{
		{"historic monument", map[string]string{"historic": "monument"}, types.CategoryAttraction, "Historic Monument"},
		{"tourism attraction", map[string]string{"tourism": "attraction"}, types.CategoryAttraction, "Attraction"},
		{"amenity fast food", map[string]string{"amenity": "fast_food"}, types.CategoryFoodBudget, "Fast Food"},
		{"railway station", map[string]string{"railway": "station"}, types.CategoryTransit, "Station"},
		{"historic wins over tourism", map[string]string{"tourism": "attraction", "historic": "castle"}, types.CategoryAttraction, "Historic Castle"},
		{"no tags at all", map[string]string{}, types.CategoryLodging, "Lodging"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, synthesizeName(tt.tags, tt.category))
		})
	}
}

func TestCleanPlaces_DedupeAndLimit(t *testing.T) {
	features := []types.RawFeature{
		{Name: "Taj Mahal", Coordinate: types.Coordinate{Latitude: 27.17, Longitude: 78.04}},
		{Name: "Taj Mahal", Coordinate: types.Coordinate{Latitude: 27.18, Longitude: 78.05}},
		{Name: "taj mahal"},
		{Name: "Agra Fort"},
		{Name: "", Tags: map[string]string{"historic": "monument"}},
		{Name: "", Tags: map[string]string{"historic": "monument"}},
		{Name: "Mehtab Bagh"},
	}

	places := cleanPlaces(features, types.CategoryAttraction, 4)
	require.Len(t, places, 4, "truncation happens after dedupe")
	assert.Equal(t, "Taj Mahal", places[0].Name, "first occurrence wins")
	assert.Equal(t, 27.17, places[0].Coordinate.Latitude)
	assert.Equal(t, "taj mahal", places[1].Name, "dedupe is case-sensitive")
	assert.Equal(t, "Agra Fort", places[2].Name)
	assert.Equal(t, "Historic Monument", places[3].Name)
	for _, p := range places {
		assert.True(t, p.HasLocation)
	}
}

func TestCleanPlaces_NoLimit(t *testing.T) {
	places := cleanPlaces(named("A", "B", "C"), types.CategoryLodging, 0)
	assert.Len(t, places, 3)
}

func TestHotels_LiveData(t *testing.T) {
	client := new(MockSpatialClient)
	client.On("Query", mock.Anything, forCategory(types.CategoryLodging)).
		Return(named("Seaside Guest House", "Palm Lodge"), nil)

	svc := newTestService(client)
	hotels, fromFallback := svc.Hotels(context.Background(), "Goa", types.Coordinate{}, 5)

	assert.False(t, fromFallback)
	require.Len(t, hotels, 2)
	assert.Equal(t, "Seaside Guest House", hotels[0].Name)
	client.AssertExpectations(t)
}

func TestHotels_FallbackOnUpstreamError(t *testing.T) {
	client := new(MockSpatialClient)
	client.On("Query", mock.Anything, forCategory(types.CategoryLodging)).
		Return([]types.RawFeature{}, fmt.Errorf("retries exhausted: %w", types.ErrUpstreamUnavailable))

	svc := newTestService(client)
	hotels, fromFallback := svc.Hotels(context.Background(), "Goa", types.Coordinate{}, 5)

	assert.True(t, fromFallback)
	require.NotEmpty(t, hotels)
	assert.Equal(t, "Seaside Guest House", hotels[0].Name)
	for _, h := range hotels {
		assert.False(t, h.HasLocation, "fallback entries carry no real location")
	}
}

func TestHotels_FallbackOnEmptyResult(t *testing.T) {
	client := new(MockSpatialClient)
	client.On("Query", mock.Anything, forCategory(types.CategoryLodging)).
		Return([]types.RawFeature{}, nil)

	svc := newTestService(client)
	hotels, fromFallback := svc.Hotels(context.Background(), "Somewhere In Manali", types.Coordinate{}, 5)

	assert.True(t, fromFallback)
	require.NotEmpty(t, hotels)
	assert.Equal(t, "Snow View Lodge", hotels[0].Name, "keyword match on the destination picks the region set")
}

func TestAttractions_BroaderRadiusTopUp(t *testing.T) {
	client := new(MockSpatialClient)
	client.On("Query", mock.Anything, mock.MatchedBy(func(q types.PlaceQuery) bool {
		return q.Category == types.CategoryAttraction && q.RadiusM == 10000
	})).Return(named("Taj Mahal", "Agra Fort"), nil)
	client.On("Query", mock.Anything, mock.MatchedBy(func(q types.PlaceQuery) bool {
		return q.Category == types.CategoryAttraction && q.RadiusM == 30000
	})).Return(named("Agra Fort", "Fatehpur Sikri", "Mehtab Bagh"), nil)

	svc := newTestService(client)
	attractions, fromFallback := svc.Attractions(context.Background(), "Agra", types.Coordinate{}, 12)

	assert.False(t, fromFallback)
	require.Len(t, attractions, 4)
	assert.Equal(t, "Taj Mahal", attractions[0].Name)
	assert.Equal(t, "Agra Fort", attractions[1].Name)
	assert.Equal(t, "Fatehpur Sikri", attractions[2].Name, "top-up skips names already present")
	assert.Equal(t, "Mehtab Bagh", attractions[3].Name)
	client.AssertExpectations(t)
}

func TestAttractions_GenericFallbackForUnknownDestination(t *testing.T) {
	client := new(MockSpatialClient)
	client.On("Query", mock.Anything, mock.Anything).Return([]types.RawFeature{}, nil)

	svc := newTestService(client)
	attractions, fromFallback := svc.Attractions(context.Background(), "Xyzabc", types.Coordinate{}, 12)

	assert.True(t, fromFallback)
	assert.GreaterOrEqual(t, len(attractions), 3, "generic fallback must cover a multi-day plan")
	assert.Equal(t, "City Museum", attractions[0].Name)
}

func TestFoodPlaces_PartialFallback(t *testing.T) {
	client := new(MockSpatialClient)
	client.On("Query", mock.Anything, forCategory(types.CategoryFoodBudget)).
		Return([]types.RawFeature{}, nil)
	client.On("Query", mock.Anything, forCategory(types.CategoryFoodPremium)).
		Return(named("Mughlai Kitchen"), nil)

	svc := newTestService(client)
	budget, premium, usedFallback := svc.FoodPlaces(context.Background(), "Agra", types.Coordinate{})

	assert.True(t, usedFallback, "one empty list is enough to flag fallback")
	require.NotEmpty(t, budget)
	assert.Equal(t, "Street Food", budget[0].Name)
	require.Len(t, premium, 1)
	assert.Equal(t, "Mughlai Kitchen", premium[0].Name)
	assert.True(t, premium[0].HasLocation, "live list stays live even when the other falls back")
}

func TestTransit_Fallback(t *testing.T) {
	client := new(MockSpatialClient)
	client.On("Query", mock.Anything, forCategory(types.CategoryTransit)).
		Return([]types.RawFeature{}, nil)

	svc := newTestService(client)
	hubs, fromFallback := svc.Transit(context.Background(), "Delhi", types.Coordinate{})

	assert.True(t, fromFallback)
	require.NotEmpty(t, hubs)
	assert.Equal(t, "New Delhi Railway Station", hubs[0].Name)
}

func TestPlaces_QueriesOnlyTheRequestedCategory(t *testing.T) {
	client := new(MockSpatialClient)
	client.On("Query", mock.Anything, forCategory(types.CategoryTransit)).
		Return(named("Agra Cantt Railway Station"), nil)

	svc := newTestService(client)
	hubs, fromFallback := svc.Places(context.Background(), "Agra", types.Coordinate{}, types.CategoryTransit)

	assert.False(t, fromFallback)
	require.Len(t, hubs, 1)
	assert.Equal(t, "Agra Cantt Railway Station", hubs[0].Name)
	client.AssertNumberOfCalls(t, "Query", 1)
}

func TestPlaces_FoodSplit(t *testing.T) {
	client := new(MockSpatialClient)
	client.On("Query", mock.Anything, forCategory(types.CategoryFoodBudget)).
		Return(named("Snack Bar"), nil)
	client.On("Query", mock.Anything, forCategory(types.CategoryFoodPremium)).
		Return(named("Diner"), nil)

	svc := newTestService(client)

	budget, _ := svc.Places(context.Background(), "Agra", types.Coordinate{}, types.CategoryFoodBudget)
	require.Len(t, budget, 1)
	assert.Equal(t, "Snack Bar", budget[0].Name)

	premium, _ := svc.Places(context.Background(), "Agra", types.Coordinate{}, types.CategoryFoodPremium)
	require.Len(t, premium, 1)
	assert.Equal(t, "Diner", premium[0].Name)
}

func TestPlaces_AppliesConfiguredHotelLimit(t *testing.T) {
	client := new(MockSpatialClient)
	client.On("Query", mock.Anything, forCategory(types.CategoryLodging)).
		Return(named("H1", "H2", "H3", "H4", "H5", "H6", "H7"), nil)

	svc := newTestService(client)
	hotels, _ := svc.Places(context.Background(), "Agra", types.Coordinate{}, types.CategoryLodging)
	assert.Len(t, hotels, 5)
}

func TestCollect_AggregatesFallbackFlag(t *testing.T) {
	client := new(MockSpatialClient)
	client.On("Query", mock.Anything, forCategory(types.CategoryLodging)).
		Return(named("Hotel One"), nil)
	client.On("Query", mock.Anything, forCategory(types.CategoryAttraction)).
		Return(named("Spot A", "Spot B", "Spot C"), nil)
	client.On("Query", mock.Anything, forCategory(types.CategoryFoodBudget)).
		Return([]types.RawFeature{}, nil)
	client.On("Query", mock.Anything, forCategory(types.CategoryFoodPremium)).
		Return(named("Diner"), nil)

	svc := newTestService(client)
	coord := types.Coordinate{Latitude: 28.6139, Longitude: 77.2090}
	result := svc.Collect(context.Background(), "Delhi", coord)

	assert.Equal(t, coord, result.Destination)
	assert.Len(t, result.Hotels, 1)
	assert.Len(t, result.Attractions, 3)
	assert.NotEmpty(t, result.BudgetFood)
	assert.Len(t, result.PremiumFood, 1)
	assert.True(t, result.UsedFallback, "any substituted list marks the whole catalog partial")
}

func TestCollect_AllLiveIsNotFallback(t *testing.T) {
	client := new(MockSpatialClient)
	client.On("Query", mock.Anything, forCategory(types.CategoryLodging)).
		Return(named("Hotel One", "Hotel Two"), nil)
	client.On("Query", mock.Anything, forCategory(types.CategoryAttraction)).
		Return(named("A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"), nil)
	client.On("Query", mock.Anything, forCategory(types.CategoryFoodBudget)).
		Return(named("Snack Bar"), nil)
	client.On("Query", mock.Anything, forCategory(types.CategoryFoodPremium)).
		Return(named("Diner"), nil)

	svc := newTestService(client)
	result := svc.Collect(context.Background(), "Delhi", types.Coordinate{})
	assert.False(t, result.UsedFallback)
}
