package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"storefront-gateway/internal/application"
	"storefront-gateway/internal/config"
	apiinfra "storefront-gateway/internal/infrastructure/api"
	"storefront-gateway/internal/infrastructure/cache"
	"storefront-gateway/internal/infrastructure/encryption"
	gatewaymiddleware "storefront-gateway/internal/infrastructure/middleware"
	"storefront-gateway/internal/infrastructure/repository"
	"storefront-gateway/internal/infrastructure/session"
	shopifyinfra "storefront-gateway/internal/infrastructure/shopify"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx := context.Background()

	// Connect to MongoDB
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer mongoClient.Disconnect(ctx)
	db := mongoClient.Database(cfg.MongoDatabase)

	// Connect to redis (OAuth state store)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()

	// Infrastructure
	encryptor, err := encryption.NewService(cfg.EncryptionKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize encryption service")
	}

	credentialRepo, err := repository.NewMongoCredentialRepository(ctx, db)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize credential repository")
	}

	stateStore := session.NewRedisStateStore(redisClient, cfg.OAuthStateTTL)
	aliasCache := cache.NewAliasCache()
	catalogClient := shopifyinfra.NewClient(cfg.ShopifyAPIVersion, cfg.UpstreamTimeout, logger)

	// Application services
	credentialsService := application.NewCredentialsService(credentialRepo, encryptor, logger)
	resolver := application.NewDomainResolver(aliasCache, credentialRepo, logger)
	catalogService := application.NewCatalogService(resolver, credentialsService, catalogClient, logger)

	// Handlers
	productsHandler := apiinfra.NewProductsHandler(catalogService, logger)
	authHandler := apiinfra.NewAuthHandler(
		credentialsService,
		resolver,
		stateStore,
		cfg.ShopifyAPIKey,
		cfg.ShopifyAPISecret,
		cfg.AppURL,
		cfg.ShopifyScopes,
		logger,
	)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := gatewaymiddleware.NewMetrics(registry)

	// Router
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Handler)
	r.Use(cors.Handler(cors.Options{
		// Unresolved origins are denied; requests without an Origin header
		// (server-to-server) bypass CORS entirely.
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			return resolver.IsKnownOrigin(r.Context(), origin)
		},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, "./docs/swagger.json")
	})

	// API routes
	r.Route("/agent-api", func(r chi.Router) {
		r.Get("/products", productsHandler.Search)
		r.Get("/products/{id}", productsHandler.Detail)

		r.Get("/auth", authHandler.Install)
		r.Get("/auth/callback", authHandler.Callback)
		r.Post("/auth/shopify/init", authHandler.Init)
		r.Delete("/auth/{shop}", authHandler.Deactivate)
	})

	logger.Info().Str("port", cfg.Port).Msg("Starting API server")
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}
