package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"

	"staffing-server/config"
	"staffing-server/di"
	"staffing-server/util"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	env := config.GetEnv("APP_ENV", "prod")
	container := di.NewContainer(env)

	if env != "prod" {
		seedStores(container)
	}

	log.Println("starting periodic traffic sync job")
	container.TrafficSyncService.StartPeriodicJob(config.TRAFFIC_SYNC_SERVICE_SCHEDULE_MINUTES * time.Minute)

	log.Println("starting server")
	container.StaffingHttpServer.Start()
}

// seedStores loads the fixture store records so local runs have data to serve.
func seedStores(container *di.Container) {
	stores, err := util.ReadStoresFromJSON(config.GetResourcePath(config.STORES_RESOURCE))
	if err != nil {
		log.Printf("Failed to read store fixtures: %v", err)
		return
	}
	for _, store := range stores {
		if err := container.StoreDao.UpsertStore(store); err != nil {
			log.Printf("Failed to seed store %s: %v", store.StoreID, err)
			continue
		}
		log.Printf("Seeded store %s", store.StoreID)
	}
}
