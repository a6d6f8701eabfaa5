package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/FACorreiaa/go-budget-trip-planner/internal/types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var _ Repository = (*PostgresHistoryRepository)(nil)

// PgxPool is the subset of pgxpool.Pool the repository needs; pgxmock
// implements the same surface in tests.
type PgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository persists generated itineraries. The core pipeline stays
// stateless; history is the server-side stand-in for the session continuity
// the presentation layer used to provide.
type Repository interface {
	SaveItinerary(ctx context.Context, req types.TripRequest, it *types.Itinerary) (uuid.UUID, error)
	GetItinerary(ctx context.Context, id uuid.UUID) (*types.SavedItinerary, error)
	GetItineraries(ctx context.Context, page, pageSize int) ([]types.SavedItinerary, int, error)
	DeleteItinerary(ctx context.Context, id uuid.UUID) error
}

type PostgresHistoryRepository struct {
	logger *slog.Logger
	pgpool PgxPool
}

func NewPostgresHistoryRepository(pgpool PgxPool, logger *slog.Logger) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *PostgresHistoryRepository) SaveItinerary(ctx context.Context, req types.TripRequest, it *types.Itinerary) (uuid.UUID, error) {
	planJSON, err := json.Marshal(it)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal plan: %w", err)
	}

	query := `
        INSERT INTO trip_history (
            origin, destination, days, budget, members, plan
        ) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id
    `
	var id uuid.UUID
	if err = r.pgpool.QueryRow(ctx, query,
		req.Origin, req.Destination, req.Days, req.Budget, req.Members, planJSON,
	).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert itinerary: %w", err)
	}
	return id, nil
}

func (r *PostgresHistoryRepository) GetItinerary(ctx context.Context, id uuid.UUID) (*types.SavedItinerary, error) {
	query := `
        SELECT id, origin, destination, days, budget, members, plan, created_at
        FROM trip_history
        WHERE id = $1
    `
	var saved types.SavedItinerary
	var planJSON []byte
	if err := r.pgpool.QueryRow(ctx, query, id).Scan(
		&saved.ID, &saved.Origin, &saved.Destination, &saved.Days,
		&saved.Budget, &saved.Members, &planJSON, &saved.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find itinerary: %w", err)
	}
	if err := json.Unmarshal(planJSON, &saved.Plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
	}
	return &saved, nil
}

func (r *PostgresHistoryRepository) GetItineraries(ctx context.Context, page, pageSize int) ([]types.SavedItinerary, int, error) {
	var total int
	if err := r.pgpool.QueryRow(ctx, `SELECT COUNT(*) FROM trip_history`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count itineraries: %w", err)
	}

	query := `
        SELECT id, origin, destination, days, budget, members, plan, created_at
        FROM trip_history
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2
    `
	rows, err := r.pgpool.Query(ctx, query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list itineraries: %w", err)
	}
	defer rows.Close()

	var itineraries []types.SavedItinerary
	for rows.Next() {
		var saved types.SavedItinerary
		var planJSON []byte
		if err := rows.Scan(
			&saved.ID, &saved.Origin, &saved.Destination, &saved.Days,
			&saved.Budget, &saved.Members, &planJSON, &saved.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan itinerary row: %w", err)
		}
		if err := json.Unmarshal(planJSON, &saved.Plan); err != nil {
			return nil, 0, fmt.Errorf("failed to unmarshal plan: %w", err)
		}
		itineraries = append(itineraries, saved)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed iterating itinerary rows: %w", err)
	}
	return itineraries, total, nil
}

func (r *PostgresHistoryRepository) DeleteItinerary(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx, `DELETE FROM trip_history WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete itinerary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("itinerary %s: %w", id, types.ErrNotFound)
	}
	return nil
}
