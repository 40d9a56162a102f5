package main

import (
	"context"
	"embed"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"callouts/internal/callouts"
	"callouts/internal/config"
	"callouts/internal/db"
	"callouts/internal/events"
	"callouts/internal/likes"
	mcpserver "callouts/internal/mcp"
	"callouts/internal/site"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/redis/go-redis/v9"
)

//go:embed static
var staticFS embed.FS

func main() {
	// Config
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to load .env: %v", err)
	}
	cfg, err := config.Load(getEnv("CALLOUTS_CONFIG", "callouts.yaml"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	port := strconv.Itoa(cfg.Server.Port)

	// Logger
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))

	// Context for startup
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Callout persistence
	var persister callouts.Persister
	switch cfg.Store.Backend {
	case config.BackendMongo:
		logger.Info("connecting to MongoDB", "uri", cfg.Store.MongoURI)
		database, err := db.Connect(ctx, cfg.Store.MongoURI, cfg.Store.MongoDatabase)
		if err != nil {
			log.Fatalf("failed to connect to MongoDB: %v", err)
		}
		defer database.Close(context.Background())
		logger.Info("connected to MongoDB")
		persister = callouts.NewMongoPersister(database.DB)
	default:
		logger.Info("using data file", "path", cfg.Store.DataFile)
		persister = callouts.NewFilePersister(cfg.Store.DataFile)
	}

	store, err := callouts.Open(ctx, persister, cfg.Store.SeedSamples)
	if err != nil {
		log.Fatalf("failed to load callouts: %v", err)
	}
	logger.Info("callouts loaded", "count", store.Len())

	// Liked sets
	var sessions callouts.LikeSessions
	switch cfg.Likes.Backend {
	case config.BackendRedis:
		opts, err := likes.RedisOptions(cfg.Likes.RedisURL, cfg.Likes.RedisAddr, cfg.Likes.RedisPassword, cfg.Likes.RedisDB)
		if err != nil {
			log.Fatalf("invalid Redis config: %v", err)
		}
		rdb := redis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to connect to Redis: %v", err)
		}
		defer rdb.Close()
		logger.Info("connected to Redis", "addr", opts.Addr)
		sessions = likes.NewRedisSessions(rdb, cfg.Likes.TTL)
	default:
		sessions = likes.NewMemorySessions()
	}

	// Events
	var publisher events.Publisher = events.Nop{}
	if cfg.Events.NatsURL != "" {
		nats, err := events.NewNATSPublisher(events.Config{
			URL:           cfg.Events.NatsURL,
			MaxReconnects: 10,
			ReconnectWait: 2 * time.Second,
			ClientName:    "callouts-server",
		}, logger)
		if err != nil {
			log.Fatalf("failed to connect to NATS: %v", err)
		}
		defer nats.Close()
		logger.Info("publishing events", "url", cfg.Events.NatsURL)
		publisher = nats
	}

	// Wire dependencies
	calloutSvc := callouts.NewService(store, sessions, publisher, logger)
	calloutHandler := callouts.NewHandler(calloutSvc, logger)
	siteHandler := site.NewHandler(publisher, logger)

	// Create MCP server
	mcpSrv := mcpserver.NewServer(calloutSvc)

	// HTTP router
	mux := http.NewServeMux()

	// Static files
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Fatalf("failed to get static fs: %v", err)
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(sub))))

	// REST API and web pages
	calloutHandler.Register(mux)
	siteHandler.Register(mux)

	// MCP endpoint (HTTP transport)
	// MCP uses POST for requests and GET for SSE streams
	mcpHTTP := server.NewStreamableHTTPServer(mcpSrv)
	mux.Handle("POST /mcp", mcpHTTP)
	mux.Handle("GET /mcp", mcpHTTP)
	mux.Handle("DELETE /mcp", mcpHTTP)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Start server
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		logger.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
	}()

	logger.Info("server starting", "port", port)
	logger.Info("endpoints available",
		"web", "http://localhost:"+port,
		"api", "http://localhost:"+port+"/api",
		"mcp", "http://localhost:"+port+"/mcp",
	)

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}

	logger.Info("server stopped")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
