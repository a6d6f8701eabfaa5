package types

import (
	"time"

	"github.com/google/uuid"
)

// TripRequest carries the traveller's parameters for one plan generation.
// Shuffle randomizes attraction order once per generation; Seed makes that
// shuffle reproducible.
type TripRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Days        int    `json:"days"`
	Budget      int    `json:"budget"`
	Members     int    `json:"members"`
	Shuffle     bool   `json:"shuffle,omitempty"`
	Seed        *int64 `json:"seed,omitempty"`
}

// HotelTier classifies lodging by per-person-per-day budget.
type HotelTier string

const (
	TierBudget   HotelTier = "Budget"
	TierMidRange HotelTier = "Mid-range"
	TierLuxury   HotelTier = "Luxury"
)

// DayPlan is one day of the itinerary. The hotel cycles through the hotel
// list by (day-1) mod count; the three attraction slots consume consecutive
// values from a single cyclic walk over the attraction list that never resets
// between days.
type DayPlan struct {
	Day            int        `json:"day"`
	Hotel          NamedPlace `json:"hotel"`
	HotelTier      HotelTier  `json:"hotel_tier"`
	HotelCost      int        `json:"hotel_cost"`
	TransportCost  int        `json:"transport_cost"`
	FoodCost       int        `json:"food_cost"`
	Morning        NamedPlace `json:"morning"`
	Afternoon      NamedPlace `json:"afternoon"`
	Evening        NamedPlace `json:"evening"`
	PerPersonSpend int        `json:"per_person_spend"`
}

// BudgetBreakdown itemizes the trip cost. PerPersonPerDay is
// floor(budget/days/members), clamped at the configured floor.
type BudgetBreakdown struct {
	Total           int `json:"total"`
	PerDay          int `json:"per_day"`
	PerPersonPerDay int `json:"per_person_per_day"`
	HotelTotal      int `json:"hotel_total"`
	TransportTotal  int `json:"transport_total"`
	FoodTotal       int `json:"food_total"`
}

// Itinerary is one generated plan. Immutable after creation; a new generate
// action supersedes it rather than mutating it. PartialData is set when any
// geocode or POI list fell back to static content, so the presentation layer
// can tell the user results may be generic.
type Itinerary struct {
	ID          uuid.UUID       `json:"id"`
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
	Days        []DayPlan       `json:"days"`
	Budget      BudgetBreakdown `json:"budget"`
	Tips        string          `json:"tips,omitempty"`
	Weather     string          `json:"weather,omitempty"`
	PartialData bool            `json:"partial_data"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SavedItinerary is one row of the trip history.
type SavedItinerary struct {
	ID          uuid.UUID `json:"id"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Days        int       `json:"days"`
	Budget      int       `json:"budget"`
	Members     int       `json:"members"`
	Plan        Itinerary `json:"plan"`
	CreatedAt   time.Time `json:"created_at"`
}

// PaginatedSavedItinerariesResponse wraps a history page.
type PaginatedSavedItinerariesResponse struct {
	Itineraries  []SavedItinerary `json:"itineraries"`
	TotalRecords int              `json:"total_records"`
	Page         int              `json:"page"`
	PageSize     int              `json:"page_size"`
}
