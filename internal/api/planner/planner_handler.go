package planner

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/FACorreiaa/go-budget-trip-planner/internal/api"
	"github.com/FACorreiaa/go-budget-trip-planner/internal/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

type Handler struct {
	logger  *slog.Logger
	service Service
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// GeneratePlan handles POST /plan.
func (h *Handler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlannerHandler").Start(r.Context(), "GeneratePlan")
	defer span.End()

	l := h.logger.With(slog.String("method", "GeneratePlan"))

	var req types.TripRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	it, err := h.service.ResolvePlan(ctx, req)
	if err != nil {
		if errors.Is(err, types.ErrInvalidInput) {
			span.SetStatus(codes.Error, "Invalid trip parameters")
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		l.ErrorContext(ctx, "Failed to resolve plan", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to generate plan")
		return
	}

	span.SetStatus(codes.Ok, "Plan generated")
	api.WriteJSONResponse(w, r, http.StatusOK, it)
}

// MapLayers handles GET /map-layers?category=&destination=. Optional
// budget, days and members parameters add the hotel tier label to lodging
// markers.
func (h *Handler) MapLayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlannerHandler").Start(r.Context(), "MapLayers")
	defer span.End()

	l := h.logger.With(slog.String("method", "MapLayers"))

	q := r.URL.Query()
	if q.Get("destination") == "" {
		span.SetStatus(codes.Error, "Missing destination")
		api.ErrorResponse(w, r, http.StatusBadRequest, "destination query parameter is required")
		return
	}
	budget, _ := strconv.Atoi(q.Get("budget"))
	days, _ := strconv.Atoi(q.Get("days"))
	members, _ := strconv.Atoi(q.Get("members"))

	annotations, err := h.service.GetMapLayers(ctx, types.MapLayerRequest{
		Category:    types.PlaceCategory(q.Get("category")),
		Destination: q.Get("destination"),
		Budget:      budget,
		Days:        days,
		Members:     members,
	})
	if err != nil {
		if errors.Is(err, types.ErrInvalidInput) {
			span.SetStatus(codes.Error, "Unknown category")
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		l.ErrorContext(ctx, "Failed to build map layers", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to build map layers")
		return
	}

	span.SetStatus(codes.Ok, "Map layers returned")
	api.WriteJSONResponse(w, r, http.StatusOK, annotations)
}

// Weather handles GET /weather?destination=.
func (h *Handler) Weather(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlannerHandler").Start(r.Context(), "Weather")
	defer span.End()

	destination := r.URL.Query().Get("destination")
	if destination == "" {
		span.SetStatus(codes.Error, "Missing destination")
		api.ErrorResponse(w, r, http.StatusBadRequest, "destination query parameter is required")
		return
	}

	summary := h.service.Weather(ctx, destination)
	span.SetStatus(codes.Ok, "Weather returned")
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{"weather": summary})
}

// ClearCache handles POST /cache/clear ("refresh data").
func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlannerHandler").Start(r.Context(), "ClearCache")
	defer span.End()

	h.service.ClearCache(ctx)
	span.SetStatus(codes.Ok, "Caches cleared")
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}
