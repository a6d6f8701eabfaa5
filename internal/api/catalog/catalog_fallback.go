package catalog

import (
	"strings"

	"github.com/FACorreiaa/go-budget-trip-planner/internal/types"
)

// regionFallback is the static substitute content for one coarse region,
// selected by substring match against the destination name. Attraction lists
// stay at ten or more entries so multi-day cycling does not visibly repeat on
// short trips.
type regionFallback struct {
	keywords    []string
	hotels      []string
	attractions []string
	budgetFood  []string
	premiumFood []string
	transit     []string
}

var regionFallbacks = []regionFallback{
	{
		keywords: []string{"goa", "beach"},
		hotels:   []string{"Seaside Guest House", "Beachfront Budget Inn", "Palm Grove Lodge", "Sunset Villa Stay"},
		attractions: []string{
			"Baga Beach", "Calangute Beach", "Fort Aguada", "Basilica of Bom Jesus",
			"Chapora Fort", "Anjuna Flea Market", "Dudhsagar Falls", "Palolem Beach",
			"Se Cathedral", "Candolim Beach",
		},
		budgetFood:  []string{"Street Food", "Beach Shack Snacks", "Fish Curry Stall"},
		premiumFood: []string{"Popular Restaurant", "Seafood Grill House", "Riverside Fine Dining"},
		transit:     []string{"Madgaon Railway Station", "Panaji Bus Stand", "Dabolim Airport"},
	},
	{
		keywords: []string{"manali", "mountain"},
		hotels:   []string{"Snow View Lodge", "Pine Valley Guest House", "Riverside Cottage", "Mountain Trail Inn"},
		attractions: []string{
			"Hadimba Temple", "Solang Valley", "Rohtang Pass", "Old Manali",
			"Jogini Waterfall", "Vashisht Hot Springs", "Mall Road", "Manu Temple",
			"Beas Riverside Walk", "Naggar Castle",
		},
		budgetFood:  []string{"Street Food", "Momo Corner", "Mall Road Maggi Point"},
		premiumFood: []string{"Popular Restaurant", "Himalayan Kitchen", "Orchard View Cafe"},
		transit:     []string{"Manali Bus Stand", "Joginder Nagar Railway Station", "Bhuntar Airport"},
	},
	{
		keywords: []string{"delhi"},
		hotels:   []string{"Paharganj Backpackers", "Karol Bagh Residency", "Old City Guest House"},
		attractions: []string{
			"India Gate", "Red Fort", "Qutub Minar", "Humayun's Tomb",
			"Lotus Temple", "Jama Masjid", "Chandni Chowk", "Akshardham Temple",
			"Lodhi Garden", "Connaught Place",
		},
		budgetFood:  []string{"Street Food", "Chandni Chowk Chaat", "Paratha Lane"},
		premiumFood: []string{"Popular Restaurant", "Connaught Place Diner", "Hauz Khas Rooftop"},
		transit:     []string{"New Delhi Railway Station", "Kashmere Gate ISBT", "Indira Gandhi Airport"},
	},
	{
		keywords: []string{"agra"},
		hotels:   []string{"Taj View Guest House", "Riverside Budget Hotel", "Heritage Stay Agra"},
		attractions: []string{
			"Taj Mahal", "Agra Fort", "Mehtab Bagh", "Tomb of Itimad-ud-Daulah",
			"Fatehpur Sikri", "Akbar's Tomb", "Jama Masjid Agra", "Kinari Bazaar",
			"Anguri Bagh", "Taj Nature Walk",
		},
		budgetFood:  []string{"Street Food", "Petha Sweet Shop", "Sadar Bazaar Snacks"},
		premiumFood: []string{"Popular Restaurant", "Mughlai Kitchen", "Rooftop Taj View Cafe"},
		transit:     []string{"Agra Cantt Railway Station", "Idgah Bus Stand", "Agra Airport"},
	},
}

var genericFallback = regionFallback{
	hotels: []string{"Budget Stay Inn", "City Centre Lodge", "Traveller's Rest"},
	attractions: []string{
		"City Museum", "Central Park", "Old Market", "Heritage Temple",
		"Lakeside Promenade", "Art Gallery", "Botanical Garden", "Hilltop Viewpoint",
		"Local Bazaar", "Riverfront Walk",
	},
	budgetFood:  []string{"Street Food", "Local Dhaba", "Tea Stall Corner"},
	premiumFood: []string{"Popular Restaurant", "City Fine Dining", "Garden Restaurant"},
	transit:     []string{"Railway Station", "Central Bus Stand", "Nearest Airport"},
}

// fallbackFor selects static content by keyword match on the destination
// name, defaulting to the generic set.
func fallbackFor(destination string) regionFallback {
	d := strings.ToLower(destination)
	for _, rf := range regionFallbacks {
		for _, kw := range rf.keywords {
			if strings.Contains(d, kw) {
				return rf
			}
		}
	}
	return genericFallback
}

// fallbackPlaces wraps static names as NamedPlace entries. Fallback entries
// carry no real location; the map layer synthesizes offsets for them.
func fallbackPlaces(names []string, category types.PlaceCategory) []types.NamedPlace {
	places := make([]types.NamedPlace, 0, len(names))
	for _, n := range names {
		places = append(places, types.NamedPlace{Name: n, Category: category})
	}
	return places
}
