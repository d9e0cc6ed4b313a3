package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/obaflips/court-reads/internal/airtable"
	"github.com/obaflips/court-reads/internal/clickhouse"
	"github.com/obaflips/court-reads/internal/config"
	"github.com/obaflips/court-reads/internal/handlers"
	"github.com/obaflips/court-reads/internal/lineup"
	"github.com/obaflips/court-reads/internal/logger"
	"github.com/obaflips/court-reads/internal/models"
	"github.com/obaflips/court-reads/internal/nbastats"
	"github.com/obaflips/court-reads/internal/pubsub"
	"github.com/obaflips/court-reads/internal/rng"
	"github.com/obaflips/court-reads/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Server.LogLevel)
	logger.Info("Starting court-reads server")

	// Team store
	var teamStore store.TeamStore
	switch cfg.Database.Driver {
	case "memory":
		teamStore = store.NewMemoryStore()
		logger.Info("Using in-memory team store")
	case "sqlite":
		teamStore, err = store.NewSQLiteStore(cfg.Database.Path)
		if err != nil {
			logger.Error("Failed to initialize SQLite", "error", err)
			log.Fatalf("Failed to initialize SQLite: %v", err)
		}
		logger.Info("Connected to SQLite team store", "file", cfg.Database.Path)
	case "postgres":
		teamStore, err = store.NewPostgresStore(cfg.Database.DSN())
		if err != nil {
			logger.Error("Failed to initialize Postgres", "error", err)
			log.Fatalf("Failed to initialize Postgres: %v", err)
		}
		logger.Info("Connected to Postgres team store", "host", cfg.Database.Host)
	default:
		log.Fatalf("Unknown database driver: %s (valid: memory, sqlite, postgres)", cfg.Database.Driver)
	}
	defer teamStore.Close()

	// Pub/sub: embedded NATS for local development, real NATS otherwise.
	var upstream pubsub.Upstream
	if cfg.NATS.Embedded {
		logger.Info("Starting embedded NATS server")
		embedded, err := pubsub.NewEmbeddedNATSPubSub(pubsub.DefaultEmbeddedNATSOptions())
		if err != nil {
			logger.Error("Failed to initialize embedded NATS", "error", err)
			log.Fatalf("Failed to initialize embedded NATS: %v", err)
		}
		defer embedded.Close()
		upstream = embedded
		logger.Info("Embedded NATS server ready", "url", embedded.GetServerURL())
	} else {
		logger.Info("Connecting to NATS JetStream", "url", cfg.NATS.URL)
		real, err := pubsub.NewNATSPubSub(cfg.NATS.URL, "courtreads.events")
		if err != nil {
			logger.Error("Failed to initialize NATS", "error", err)
			log.Fatalf("Failed to initialize NATS: %v", err)
		}
		defer real.Close()
		upstream = real
	}
	ps := pubsub.NewWithUpstream(upstream)

	// Stats cache: Redis when enabled, in-process memory otherwise.
	var cache nbastats.Cache
	if cfg.Redis.Enabled {
		client, err := nbastats.ConnectRedis(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Error("Failed to connect to Redis", "error", err, "addr", cfg.Redis.Addr())
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		cache = nbastats.NewRedisCache(client, nbastats.DefaultTTL)
		logger.Info("Using Redis stats cache", "addr", cfg.Redis.Addr())
	} else {
		cache = nbastats.NewMemoryCache(nbastats.DefaultTTL)
		logger.Info("Using in-memory stats cache")
	}
	provider := nbastats.NewProvider(cache)

	// Library: the Airtable base when credentials are set, a built-in
	// sample shelf otherwise so the server works out of the box.
	books, characters, players, series := loadLibrary(cfg)

	ctx := context.Background()
	resolved := provider.ResolveAll(ctx, players)
	pool := lineup.BuildPool(books, characters, resolved, series)
	logger.Info("Draft pool built", "books", len(books), "characters", len(pool))

	// ClickHouse warehouse sync, when enabled.
	var warehouse *clickhouse.Client
	if cfg.Warehouse.Enabled {
		ch, err := clickhouse.NewClient(cfg.Warehouse.Addr, cfg.Warehouse.Database,
			cfg.Warehouse.User, cfg.Warehouse.Password)
		if err != nil {
			logger.Error("Failed to initialize ClickHouse", "error", err, "addr", cfg.Warehouse.Addr)
			log.Fatalf("Failed to initialize ClickHouse: %v", err)
		}
		defer ch.Close()
		if err := ch.EnsureSchema(ctx); err != nil {
			logger.Error("Failed to ensure warehouse schema", "error", err)
			log.Fatalf("Failed to ensure warehouse schema: %v", err)
		}
		logger.Info("Connected to ClickHouse", "addr", cfg.Warehouse.Addr)
		warehouse = ch

		go func() {
			ticker := time.NewTicker(5 * time.Minute)
			defer ticker.Stop()

			syncWarehouse(ch, provider)
			for range ticker.C {
				syncWarehouse(ch, provider)
			}
		}()
	} else {
		logger.Info("Warehouse sync disabled")
	}

	// HTTP routes
	api := handlers.NewAPIHandlers(books, pool, teamStore, ps, rng.New())
	mux := http.NewServeMux()

	mux.HandleFunc("/api/pool", api.GetPool)
	mux.HandleFunc("/api/lineups/auto", api.GetAutoLineups)
	mux.HandleFunc("/api/lineups/hof", api.GetHallOfFameLineup)

	mux.HandleFunc("/api/draft/start", api.StartDraft)
	mux.HandleFunc("/api/draft/state", api.GetDraftState)
	mux.HandleFunc("/api/draft/pick", api.DraftPick)
	mux.HandleFunc("/api/draft/auto-pick", api.AutoPick)
	mux.HandleFunc("/api/draft/ai-advance", api.AdvanceAI)
	mux.HandleFunc("/api/draft/reset", api.ResetDraft)

	mux.HandleFunc("/api/lineup/quick-pick", api.QuickPick)
	mux.HandleFunc("/api/simulate", api.Simulate)
	mux.HandleFunc("/api/team-names", api.TeamNameOptions)

	mux.HandleFunc("/api/teams", api.ListTeams)
	mux.HandleFunc("/api/teams/get", api.GetTeam)
	mux.HandleFunc("/api/teams/save", api.SaveTeam)
	mux.HandleFunc("/api/teams/result", api.RecordResult)
	mux.HandleFunc("/api/teams/delete", api.DeleteTeam)

	mux.HandleFunc("/api/events", api.EventsSSE)

	if warehouse != nil {
		mux.HandleFunc("/api/warehouse/top", func(w http.ResponseWriter, r *http.Request) {
			top, err := warehouse.TopPerformers(r.Context(), 10)
			if err != nil {
				logger.Error("Warehouse query failed", "error", err)
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(top)
		})
	}

	mux.HandleFunc("/api/health", api.Health)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if len(pool) == 0 {
			http.Error(w, "pool not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ready")
	})

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Server starting", "address", addr)
	if err := serve(ctx, srv); err != nil {
		logger.Error("Server failed", "error", err)
		log.Fatal(err)
	}
	logger.Info("Server stopped")
}

// serve runs the HTTP server until it fails or ctx is cancelled, then
// drains in-flight connections before returning.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("Shutdown signal received, draining connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func loadLibrary(cfg *config.Config) ([]models.Book, []models.Character, []models.Player, []models.Series) {
	if cfg.Airtable.APIKey == "" {
		logger.Info("No Airtable credentials, using the built-in sample shelf")
		return sampleLibrary()
	}

	client := airtable.New(cfg.Airtable.APIKey, cfg.Airtable.BaseID)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	data, err := client.GetAllData(ctx)
	if err != nil {
		logger.Error("Failed to fetch Airtable base", "error", err)
		log.Fatalf("Failed to fetch Airtable base: %v", err)
	}
	logger.Info("Airtable base loaded",
		"books", len(data.Books), "characters", len(data.Characters),
		"players", len(data.Players), "series", len(data.Series))
	return data.Books, data.Characters, data.Players, data.Series
}

func syncWarehouse(ch *clickhouse.Client, provider *nbastats.Provider) {
	snapshot := provider.Snapshot()
	if len(snapshot) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := ch.SyncPlayerStats(ctx, snapshot); err != nil {
		logger.Error("Warehouse sync failed", "error", err)
		return
	}
	logger.Debug("Warehouse sync complete", "players", len(snapshot))
}
