package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"snaphistory/handlers"
	"snaphistory/middleware"
	"snaphistory/services"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := newLogger(os.Getenv("APP_ENV"))
	defer logger.Sync()
	middleware.SetLogger(logger)

	apiKeys := parseAPIKeys(os.Getenv("PLUGIN_API_KEYS"))
	if len(apiKeys) == 0 {
		logger.Fatal("PLUGIN_API_KEYS environment variable is not set")
	}

	ctx := context.Background()

	visionService, err := services.NewVisionService(ctx, os.Getenv("GOOGLE_VISION_KEY"), logger)
	if err != nil {
		logger.Fatal("failed to initialize recognition client", zap.Error(err))
	}
	if !visionService.Configured() {
		logger.Warn("GOOGLE_VISION_KEY not set, recognition disabled")
	}

	redisClient := newRedisClient(logger)
	historyCollection := newHistoryCollection(ctx, logger)

	quotesPath := os.Getenv("QUOTES_PATH")
	if quotesPath == "" {
		quotesPath = "data/quotes.json"
	}

	exifService := services.NewExifService(logger)
	geocodeService := services.NewGeocodeService(logger)
	wikiService := services.NewWikiService(logger)
	narrativeService := services.NewNarrativeService(services.LoadQuoteBank(quotesPath))
	historyService := services.NewHistoryService(historyCollection, logger)
	identifyService := services.NewIdentifyService(
		exifService, visionService, geocodeService, wikiService,
		narrativeService, historyService, redisClient, logger)

	identifyHandler := handlers.NewIdentifyHandler(identifyService)
	historyHandler := handlers.NewHistoryHandler(historyService)

	r := mux.NewRouter()
	r.Use(middleware.CORSMiddleware(allowedOrigins()))
	r.Use(middleware.ErrorMiddleware())
	r.Use(middleware.RequestIDMiddleware(logger))

	auth := middleware.APIKeyMiddleware(apiKeys)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/health", handlers.HealthCheck).Methods("GET", "OPTIONS")
	v1.Handle("/identify", auth(http.HandlerFunc(identifyHandler.IdentifyPlace))).Methods("POST", "OPTIONS")
	v1.Handle("/history", auth(http.HandlerFunc(historyHandler.GetHistory))).Methods("GET", "OPTIONS")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("server starting", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(env string) *zap.Logger {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

func parseAPIKeys(raw string) map[string]struct{} {
	keys := make(map[string]struct{})
	for _, key := range strings.Split(raw, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys[key] = struct{}{}
		}
	}
	return keys
}

func allowedOrigins() []string {
	raw := os.Getenv("ALLOWED_ORIGINS")
	if raw == "" {
		return []string{"*"}
	}
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// newRedisClient connects the result cache. The cache is optional: an unset
// REDIS_ADDR or a failed ping leaves caching off without stopping startup.
func newRedisClient(logger *zap.Logger) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		logger.Info("REDIS_ADDR not set, result cache disabled")
		return nil
	}

	db := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			db = parsed
		}
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, result cache disabled", zap.String("addr", addr), zap.Error(err))
		return nil
	}
	return client
}

// newHistoryCollection connects the identification trail. Like the cache it
// is optional and never blocks startup.
func newHistoryCollection(ctx context.Context, logger *zap.Logger) *mongo.Collection {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		logger.Info("MONGODB_URI not set, history disabled")
		return nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		logger.Warn("mongo connect failed, history disabled", zap.Error(err))
		return nil
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		logger.Warn("mongo unreachable, history disabled", zap.Error(err))
		return nil
	}
	return client.Database("snaphistory").Collection("identifications")
}
