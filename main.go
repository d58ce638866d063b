package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/SafeTrails/ST-Backend/internal/db"
	"github.com/SafeTrails/ST-Backend/internal/middleware"
	"github.com/SafeTrails/ST-Backend/internal/observability"
	"github.com/SafeTrails/ST-Backend/internal/reports"
	"github.com/SafeTrails/ST-Backend/internal/storage"
	"github.com/SafeTrails/ST-Backend/internal/store"
	"github.com/SafeTrails/ST-Backend/internal/tourists"
	"github.com/SafeTrails/ST-Backend/internal/weather"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	tourists.Init()
	reports.Init()

	records := store.NewGormStore(db.DB)
	metrics := observability.NewMetrics()

	var blobs store.BlobStore
	storageClient, err := storage.NewClient()
	if err != nil {
		log.Printf("[storage] disabled: %v", err)
	}
	if storageClient != nil {
		blobs = storageClient
		// Best-effort bucket provisioning; never blocks request serving.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := storageClient.EnsureBucket(ctx); err != nil {
				log.Printf("[storage] could not ensure bucket %q: %v", storageClient.Bucket(), err)
			}
		}()
	}

	weatherHandler := weather.NewHandler(weather.NewClient(metrics))
	touristHandler := tourists.NewHandler(records, blobs)
	reportHandler := reports.NewHandler(records)

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.MetricsMiddleware(metrics))
	r.Get("/", RootHandler)
	r.Handle("/metrics", observability.Handler())

	r.Mount("/weather", weather.SetupRoutes(weatherHandler))
	r.Mount("/api/tourists", tourists.SetupRoutes(touristHandler))
	r.Mount("/api/reports", reports.SetupRoutes(reportHandler))

	fmt.Println("Server listening on port :" + port + "...")

	http.ListenAndServe("0.0.0.0:"+port, r)
}
