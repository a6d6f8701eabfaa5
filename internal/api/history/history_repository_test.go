package history

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/FACorreiaa/go-budget-trip-planner/internal/types"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (*PostgresHistoryRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)
	repo := NewPostgresHistoryRepository(mockPool, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return repo, mockPool
}

func testRequest() types.TripRequest {
	return types.TripRequest{Origin: "Delhi", Destination: "Agra", Days: 3, Budget: 9000, Members: 3}
}

func testItinerary() *types.Itinerary {
	return &types.Itinerary{
		ID:          uuid.New(),
		Origin:      "Delhi",
		Destination: "Agra",
		Tips:        "Use public transport, eat local street food, and book budget hotels early.",
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
}

func TestSaveItinerary(t *testing.T) {
	repo, mockPool := newMockRepository(t)
	id := uuid.New()

	mockPool.ExpectQuery(regexp.QuoteMeta("INSERT INTO trip_history")).
		WithArgs("Delhi", "Agra", 3, 9000, 3, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(id))

	got, err := repo.SaveItinerary(context.Background(), testRequest(), testItinerary())
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestSaveItinerary_DBError(t *testing.T) {
	repo, mockPool := newMockRepository(t)

	mockPool.ExpectQuery(regexp.QuoteMeta("INSERT INTO trip_history")).
		WithArgs("Delhi", "Agra", 3, 9000, 3, pgxmock.AnyArg()).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.SaveItinerary(context.Background(), testRequest(), testItinerary())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert itinerary")
}

func TestGetItinerary(t *testing.T) {
	repo, mockPool := newMockRepository(t)
	id := uuid.New()
	it := testItinerary()
	planJSON, err := json.Marshal(it)
	require.NoError(t, err)
	created := time.Now().UTC()

	mockPool.ExpectQuery(regexp.QuoteMeta("SELECT id, origin, destination, days, budget, members, plan, created_at")).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id", "origin", "destination", "days", "budget", "members", "plan", "created_at"}).
			AddRow(id, "Delhi", "Agra", 3, 9000, 3, planJSON, created))

	saved, err := repo.GetItinerary(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, id, saved.ID)
	assert.Equal(t, "Agra", saved.Destination)
	assert.Equal(t, it.Tips, saved.Plan.Tips)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestGetItinerary_NotFound(t *testing.T) {
	repo, mockPool := newMockRepository(t)
	id := uuid.New()

	mockPool.ExpectQuery(regexp.QuoteMeta("SELECT id, origin, destination, days, budget, members, plan, created_at")).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id", "origin", "destination", "days", "budget", "members", "plan", "created_at"}))

	saved, err := repo.GetItinerary(context.Background(), id)
	require.NoError(t, err, "a missing row is not an error at the repository layer")
	assert.Nil(t, saved)
}

func TestGetItineraries(t *testing.T) {
	repo, mockPool := newMockRepository(t)
	it := testItinerary()
	planJSON, err := json.Marshal(it)
	require.NoError(t, err)
	created := time.Now().UTC()

	mockPool.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM trip_history")).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))
	mockPool.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs(2, 2).
		WillReturnRows(pgxmock.NewRows([]string{"id", "origin", "destination", "days", "budget", "members", "plan", "created_at"}).
			AddRow(uuid.New(), "Delhi", "Agra", 3, 9000, 3, planJSON, created).
			AddRow(uuid.New(), "Mumbai", "Goa", 5, 20000, 2, planJSON, created))

	itineraries, total, err := repo.GetItineraries(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	require.Len(t, itineraries, 2)
	assert.Equal(t, "Agra", itineraries[0].Destination)
	assert.Equal(t, "Goa", itineraries[1].Destination)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestDeleteItinerary(t *testing.T) {
	repo, mockPool := newMockRepository(t)
	id := uuid.New()

	mockPool.ExpectExec(regexp.QuoteMeta("DELETE FROM trip_history WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.DeleteItinerary(context.Background(), id))
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestDeleteItinerary_NotFound(t *testing.T) {
	repo, mockPool := newMockRepository(t)
	id := uuid.New()

	mockPool.ExpectExec(regexp.QuoteMeta("DELETE FROM trip_history WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.DeleteItinerary(context.Background(), id)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrNotFound))
}
