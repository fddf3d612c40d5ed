package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"storefront/internal/catalog"
	"storefront/internal/events"
	"storefront/internal/httpapi"
	"storefront/internal/repository"
	"storefront/internal/storage"
	"storefront/internal/store"
)

type Config struct {
	HTTPPort        string
	StorageBackend  string
	RedisAddr       string
	RedisPassword   string
	SQLitePath      string
	MigrationsPath  string
	MongoURI        string
	MongoDBName     string
	CatalogURL      string
	KafkaBrokers    string
	KafkaTopic      string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		StorageBackend:  getEnv("STORAGE_BACKEND", "sqlite"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		SQLitePath:      getEnv("SQLITE_PATH", "storefront.db"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "internal/storage/migrations"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "storefront"),
		CatalogURL:      getEnv("CATALOG_URL", "https://api.escuelajs.co/graphql"),
		KafkaBrokers:    getEnv("KAFKA_BROKERS", ""),
		KafkaTopic:      getEnv("KAFKA_TOPIC", "cart-events"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	var (
		cartStorage  storage.Storage
		productCache catalog.ProductCache
		closeStorage func()
	)

	switch cfg.StorageBackend {
	case "redis":
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Redis connection failed:", err)
		}
		log.Printf("Connected to Redis at %s", cfg.RedisAddr)

		cartStorage = storage.NewRedisStorage(redisClient)
		productCache = catalog.NewRedisProductCache(redisClient)
		closeStorage = func() { redisClient.Close() }

	case "sqlite":
		sqliteStorage, err := storage.NewSQLiteStorage(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to open SQLite storage: %v", err)
		}
		if err := sqliteStorage.RunMigrations(cfg.MigrationsPath); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Printf("SQLite storage ready at %s", cfg.SQLitePath)

		cartStorage = sqliteStorage
		closeStorage = func() { sqliteStorage.Close() }

	case "mongo":
		mongoDB, err := storage.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		log.Printf("Connected to MongoDB at %s", cfg.MongoURI)

		cartStorage = storage.NewMongoStorage(mongoDB)
		closeStorage = func() { mongoDB.Client().Disconnect(ctx) }

	default:
		log.Fatalf("Unknown storage backend %q (want redis, sqlite or mongo)", cfg.StorageBackend)
	}

	cartStore := store.New(cartStorage)
	go cartStore.Hydrate(ctx)

	cartRepo := repository.New(cartStore)

	catalogClient := catalog.NewClient(cfg.CatalogURL)
	catalogService := catalog.NewService(catalogClient, productCache)
	log.Printf("Catalog source: %s", cfg.CatalogURL)

	var publisher *events.Publisher
	if cfg.KafkaBrokers != "" {
		publisher = events.NewPublisher(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaTopic)
		cartStore.Subscribe(publisher.Notify)
		log.Printf("Publishing cart events to %s", cfg.KafkaBrokers)
	}

	cartHandler := httpapi.NewCartHandler(cartRepo, catalogService)
	productHandler := httpapi.NewProductHandler(catalogService)
	router := httpapi.NewRouter(cartHandler, productHandler, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down storefront...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}

	cartStore.Close()
	if publisher != nil {
		publisher.Close()
	}
	closeStorage()
	log.Println("storefront stopped")
}
