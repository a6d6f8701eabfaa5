package itinerary

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/FACorreiaa/go-budget-trip-planner/config"
	"github.com/FACorreiaa/go-budget-trip-planner/internal/types"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var _ Service = (*ServiceImpl)(nil)

// Service assembles a catalog result set and trip parameters into a
// day-by-day plan.
type Service interface {
	Assemble(ctx context.Context, req types.TripRequest, cat types.POICatalogResult) (*types.Itinerary, error)
}

// Per-day cost model carried over from the original plan generator.
const (
	transportCostPerMember = 300
	budgetHotelNightly     = 800
	midRangeHotelNightly   = 2000
	luxuryHotelNightly     = 4000
)

type ServiceImpl struct {
	logger     *slog.Logger
	spendFloor int
}

func NewServiceImpl(cfg *config.Config, logger *slog.Logger) *ServiceImpl {
	floor := cfg.Planner.SpendFloor
	if floor < 0 {
		floor = 0
	}
	return &ServiceImpl{logger: logger, spendFloor: floor}
}

// TierFor classifies the trip's lodging tier from the raw request numbers,
// so map layers can label hotel markers the same way the assembler prices
// them. Non-positive days or members count as 1.
func TierFor(budget, days, members int) types.HotelTier {
	if days < 1 {
		days = 1
	}
	if members < 1 {
		members = 1
	}
	tier, _ := hotelTier(budget/days/members, members)
	return tier
}

// hotelTier classifies lodging by per-person-per-day spend and returns the
// tier with its nightly cost for the whole party.
func hotelTier(perPersonPerDay, members int) (types.HotelTier, int) {
	switch {
	case perPersonPerDay < 1000:
		return types.TierBudget, budgetHotelNightly * members
	case perPersonPerDay <= 3000:
		return types.TierMidRange, midRangeHotelNightly * members
	default:
		return types.TierLuxury, luxuryHotelNightly * members
	}
}

// Assemble builds the itinerary. Hotels cycle by (day-1) mod count. The
// three daily attraction slots consume consecutive values from one cyclic
// index over the attraction list that never resets between days, so day 2's
// morning continues where day 1's evening left off. The optional shuffle
// reorders attractions once per generation, before cycling.
func (s *ServiceImpl) Assemble(ctx context.Context, req types.TripRequest, cat types.POICatalogResult) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryAssembler").Start(ctx, "Assemble")
	defer span.End()
	span.SetAttributes(
		attribute.String("trip.destination", req.Destination),
		attribute.Int("trip.days", req.Days),
		attribute.Int("trip.members", req.Members),
	)

	if req.Days < 1 {
		span.SetStatus(codes.Error, "Invalid days")
		return nil, fmt.Errorf("days must be at least 1, got %d: %w", req.Days, types.ErrInvalidInput)
	}
	if req.Members < 1 {
		span.SetStatus(codes.Error, "Invalid members")
		return nil, fmt.Errorf("members must be at least 1, got %d: %w", req.Members, types.ErrInvalidInput)
	}
	if len(cat.Hotels) == 0 || len(cat.Attractions) == 0 {
		// The catalog guarantees non-empty lists; an empty one here is a
		// caller bug, not an upstream outage.
		span.SetStatus(codes.Error, "Empty catalog")
		return nil, fmt.Errorf("catalog lists must be non-empty: %w", types.ErrInvalidInput)
	}

	perPerson := req.Budget / req.Days / req.Members
	if perPerson < s.spendFloor {
		perPerson = s.spendFloor
	}

	tier, hotelCost := hotelTier(perPerson, req.Members)
	transportCost := transportCostPerMember * req.Members
	// 30% of the total budget goes to food, spread evenly over the days.
	foodCostPerDay := req.Budget * 3 / (10 * req.Days)

	attractions := cat.Attractions
	if req.Shuffle {
		seed := time.Now().UnixNano()
		if req.Seed != nil {
			seed = *req.Seed
		}
		rng := rand.New(rand.NewSource(seed))
		shuffled := make([]types.NamedPlace, len(attractions))
		copy(shuffled, attractions)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		attractions = shuffled
	}

	days := make([]types.DayPlan, 0, req.Days)
	idx := 0
	next := func() types.NamedPlace {
		p := attractions[idx%len(attractions)]
		idx++
		return p
	}
	for day := 1; day <= req.Days; day++ {
		days = append(days, types.DayPlan{
			Day:            day,
			Hotel:          cat.Hotels[(day-1)%len(cat.Hotels)],
			HotelTier:      tier,
			HotelCost:      hotelCost,
			TransportCost:  transportCost,
			FoodCost:       foodCostPerDay,
			Morning:        next(),
			Afternoon:      next(),
			Evening:        next(),
			PerPersonSpend: perPerson,
		})
	}

	it := &types.Itinerary{
		ID:          uuid.New(),
		Origin:      req.Origin,
		Destination: req.Destination,
		Days:        days,
		Budget: types.BudgetBreakdown{
			Total:           req.Budget,
			PerDay:          req.Budget / req.Days,
			PerPersonPerDay: perPerson,
			HotelTotal:      hotelCost * req.Days,
			TransportTotal:  transportCost * req.Days,
			FoodTotal:       foodCostPerDay * req.Days,
		},
		Tips:        "Use public transport, eat local street food, and book budget hotels early.",
		PartialData: cat.UsedFallback,
		CreatedAt:   time.Now().UTC(),
	}

	s.logger.DebugContext(ctx, "Itinerary assembled",
		slog.String("destination", req.Destination),
		slog.Int("days", req.Days),
		slog.Int("per_person_per_day", perPerson),
	)
	span.SetStatus(codes.Ok, "Itinerary assembled")
	return it, nil
}
