package di

import (
	"context"
	"fmt"
	"log"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"

	"staffing-server/api"
	"staffing-server/api/footfall"
	"staffing-server/config"
	redisdao "staffing-server/dao/redis"
	"staffing-server/db"
	"staffing-server/progress"
	"staffing-server/server"
	"staffing-server/server/handlers"
	services "staffing-server/service"
)

// Container holds all application dependencies.
type Container struct {
	RedisClient           db.RedisClient
	StoreDao              *redisdao.RedisStoreDAO
	FootfallAPI           footfall.FootfallAPI
	ProgressStore         progress.Store
	ConfigService         *services.HistoricalConfigService
	RecommendationService *services.RecommendationService
	BulkApplyService      *services.BulkApplyService
	TrafficSyncService    *services.TrafficSyncService
	RecommendationHandler *handlers.RecommendationHandler
	ConfigHandler         *handlers.ConfigHandler
	MuxRouter             *mux.Router
	Router                *server.Router
	StaffingHttpServer    *server.StaffingHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(env string) *Container {
	log.Printf("initializing container - env: %s", env)
	ctx := context.Background()

	redisInternalClient := goredis.NewClient(&goredis.Options{
		Addr:     config.RedisAddress(),
		Password: config.REDIS_DB_PASSWORD,
		DB:       config.REDIS_DB,
	})

	// Initialize Redis client
	redisClient := db.NewStoreRedisClient(ctx, redisInternalClient)
	if err := redisClient.Ping(); err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}

	// Initialize Store DAO
	storeDao := redisdao.NewRedisStoreDAO(redisClient)

	// Initialize Footfall API client - fixture-backed mock outside prod
	var footfallApiClient footfall.FootfallAPI
	if env != "prod" {
		footfallApiClient = footfall.NewFootfallApiClientMock()
		log.Printf("Using mock footfall api")
	} else {
		log.Printf("Using prod footfall api")
		httpClient := api.NewHTTPClient(config.TrafficEndpoint(), config.TRAFFIC_FETCH_TIMEOUT)

		client := footfall.NewFootfallApiClient(httpClient)
		client.SetCredentials(config.GetEnv("TRAFFIC_API_KEY", ""))
		footfallApiClient = client
	}

	// Progress store lifetime is owned here, not by the services using it
	progressStore := progress.NewMemoryStore()

	// Initialize service layer
	configService := services.NewHistoricalConfigService(storeDao)
	recommendationService := services.NewRecommendationService(storeDao, footfallApiClient, configService)
	bulkApplyService := services.NewBulkApplyService(configService, progressStore)
	trafficSyncService := services.NewTrafficSyncService(storeDao, footfallApiClient, progressStore)

	// Initialize handlers
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService, trafficSyncService)
	configHandler := handlers.NewConfigHandler(configService, bulkApplyService)

	// Initialize mux router
	muxRouter := mux.NewRouter()

	// Initialize router
	router := server.NewRouter(recommendationHandler, configHandler, muxRouter)

	// Initialize staffing server
	staffingHttpServer := server.NewStaffingHttpServer(router, muxRouter, config.ServerAddress())

	return &Container{
		RedisClient:           redisClient,
		StoreDao:              storeDao,
		FootfallAPI:           footfallApiClient,
		ProgressStore:         progressStore,
		ConfigService:         configService,
		RecommendationService: recommendationService,
		BulkApplyService:      bulkApplyService,
		TrafficSyncService:    trafficSyncService,
		RecommendationHandler: recommendationHandler,
		ConfigHandler:         configHandler,
		MuxRouter:             muxRouter,
		Router:                router,
		StaffingHttpServer:    staffingHttpServer,
	}
}
