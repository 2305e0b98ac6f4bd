package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"staffing-server/calendar"
	apperrors "staffing-server/errors"
	services "staffing-server/service"
	"staffing-server/util"
)

const (
	WEEK_QUERY_ARG              = "week"
	DESIRED_ATTENTION_QUERY_ARG = "desired_attention"
	GROWTH_FACTOR_QUERY_ARG     = "growth_factor"
	UNROUNDED_QUERY_ARG         = "unrounded"
	FROM_QUERY_ARG              = "from"
	TO_QUERY_ARG                = "to"
	SESSION_QUERY_ARG           = "session_id"
)

// RecommendationHandler serves the weekly staffing recommendation surface.
type RecommendationHandler struct {
	recommendationService *services.RecommendationService
	syncService           *services.TrafficSyncService
}

func NewRecommendationHandler(
	recommendationService *services.RecommendationService,
	syncService *services.TrafficSyncService,
) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationService: recommendationService,
		syncService:           syncService,
	}
}

// GetWeekRecommendation handles GET /v1/stores/{storeId}/recommendations
func (h *RecommendationHandler) GetWeekRecommendation(w http.ResponseWriter, r *http.Request) {
	storeID := mux.Vars(r)["storeId"]
	week := r.URL.Query().Get(WEEK_QUERY_ARG)
	if week == "" {
		http.Error(w, "Missing argument "+WEEK_QUERY_ARG, http.StatusBadRequest)
		return
	}

	opts, ok := h.parseOptions(r, w)
	if !ok {
		return // error already written
	}

	result, err := h.recommendationService.GetWeekRecommendation(r.Context(), storeID, week, opts)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetWeekChart handles GET /v1/stores/{storeId}/recommendations/chart
func (h *RecommendationHandler) GetWeekChart(w http.ResponseWriter, r *http.Request) {
	storeID := mux.Vars(r)["storeId"]
	week := r.URL.Query().Get(WEEK_QUERY_ARG)
	if week == "" {
		http.Error(w, "Missing argument "+WEEK_QUERY_ARG, http.StatusBadRequest)
		return
	}

	result, err := h.recommendationService.GetWeekRecommendation(r.Context(), storeID, week,
		services.RecommendationOptions{})
	if err != nil {
		writeEngineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := util.RenderWeekChart(w, result); err != nil {
		log.Println("Error rendering chart:", err)
	}
}

// SyncTraffic handles POST /v1/stores/{storeId}/traffic-sync
func (h *RecommendationHandler) SyncTraffic(w http.ResponseWriter, r *http.Request) {
	storeID := mux.Vars(r)["storeId"]
	query := r.URL.Query()

	to := time.Now().UTC().AddDate(0, 0, -1)
	from := to.AddDate(0, 0, -6)
	var err error
	if s := query.Get(FROM_QUERY_ARG); s != "" {
		if from, err = calendar.ParseDate(s); err != nil {
			http.Error(w, "Invalid argument "+FROM_QUERY_ARG, http.StatusBadRequest)
			return
		}
	}
	if s := query.Get(TO_QUERY_ARG); s != "" {
		if to, err = calendar.ParseDate(s); err != nil {
			http.Error(w, "Invalid argument "+TO_QUERY_ARG, http.StatusBadRequest)
			return
		}
	}

	result, err := h.syncService.SyncStore(r.Context(), query.Get(SESSION_QUERY_ARG), storeID, from, to)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	status := http.StatusOK
	if result.InBackground {
		status = http.StatusAccepted
	}
	writeJSON(w, status, result)
}

// Ping handles GET /ping
func (h *RecommendationHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}

func (h *RecommendationHandler) parseOptions(r *http.Request, w http.ResponseWriter) (services.RecommendationOptions, bool) {
	var opts services.RecommendationOptions
	query := r.URL.Query()

	if s := query.Get(DESIRED_ATTENTION_QUERY_ARG); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			http.Error(w, "Invalid argument "+DESIRED_ATTENTION_QUERY_ARG, http.StatusBadRequest)
			return opts, false
		}
		opts.DesiredAttention = &v
	}
	if s := query.Get(GROWTH_FACTOR_QUERY_ARG); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			http.Error(w, "Invalid argument "+GROWTH_FACTOR_QUERY_ARG, http.StatusBadRequest)
			return opts, false
		}
		opts.GrowthFactor = &v
	}
	if s := query.Get(UNROUNDED_QUERY_ARG); s != "" {
		opts.Unrounded, _ = strconv.ParseBool(s)
	}
	return opts, true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Println("Error encoding response:", err)
	}
}

// writeEngineError maps engine errors onto HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	var validationErr *apperrors.ValidationError
	switch {
	case errors.As(err, &validationErr):
		http.Error(w, validationErr.Error(), http.StatusBadRequest)
	case errors.Is(err, apperrors.ErrStoreNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Println("Internal error:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
