package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"staffing-server/metrics"
)

// RecommendationRoutes is implemented by the recommendation handler.
type RecommendationRoutes interface {
	GetWeekRecommendation(w http.ResponseWriter, r *http.Request)
	GetWeekChart(w http.ResponseWriter, r *http.Request)
	SyncTraffic(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

// ConfigRoutes is implemented by the historical-config handler.
type ConfigRoutes interface {
	GetHistoricalConfig(w http.ResponseWriter, r *http.Request)
	PutHistoricalConfig(w http.ResponseWriter, r *http.Request)
	BulkApply(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	recommendationHandler RecommendationRoutes
	configHandler         ConfigRoutes
	router                *mux.Router
}

// NewRouter creates a router with the app's routes.
func NewRouter(
	recommendationHandler RecommendationRoutes,
	configHandler ConfigRoutes,
	router *mux.Router) *Router {
	return &Router{
		recommendationHandler: recommendationHandler,
		configHandler:         configHandler,
		router:                router,
	}
}

func (r *Router) RegisterRoutes() {
	// expects ?week={W<NN> <YYYY>}&desired_attention={float}&growth_factor={float}&unrounded={bool}
	r.router.HandleFunc("/v1/stores/{storeId}/recommendations",
		r.recommendationHandler.GetWeekRecommendation).Methods("GET")
	r.router.HandleFunc("/v1/stores/{storeId}/recommendations/chart",
		r.recommendationHandler.GetWeekChart).Methods("GET")

	r.router.HandleFunc("/v1/stores/{storeId}/historical-config",
		r.configHandler.GetHistoricalConfig).Methods("GET")
	r.router.HandleFunc("/v1/stores/{storeId}/historical-config",
		r.configHandler.PutHistoricalConfig).Methods("PUT")
	r.router.HandleFunc("/v1/stores/bulk-config",
		r.configHandler.BulkApply).Methods("POST")

	// expects ?from={YYYY-MM-DD}&to={YYYY-MM-DD}&session_id={string}
	r.router.HandleFunc("/v1/stores/{storeId}/traffic-sync",
		r.recommendationHandler.SyncTraffic).Methods("POST")

	r.router.Handle("/metrics",
		promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})).Methods("GET")

	r.router.HandleFunc("/ping", r.recommendationHandler.Ping).Methods("GET")
}
