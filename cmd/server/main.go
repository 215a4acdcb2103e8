package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/playpool/pocketball/internal/admin"
	"github.com/playpool/pocketball/internal/api"
	"github.com/playpool/pocketball/internal/audio"
	"github.com/playpool/pocketball/internal/config"
	"github.com/playpool/pocketball/internal/database"
	"github.com/playpool/pocketball/internal/middleware"
	"github.com/playpool/pocketball/internal/migrations"
	"github.com/playpool/pocketball/internal/ranking"
	"github.com/playpool/pocketball/internal/redis"
	"github.com/playpool/pocketball/internal/session"
	"github.com/playpool/pocketball/internal/table"
	"github.com/playpool/pocketball/internal/ws"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		db    *sqlx.DB
		rdb   *goredis.Client
		store ranking.Store
		err   error
	)
	var notifiers []ranking.Notifier

	switch cfg.RankingBackend {
	case config.BackendPostgres:
		if cfg.MigrateOnStart {
			log.Println("[MIGRATE] Running DB migrations on startup...")
			if err := migrations.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
				log.Fatalf("Failed to run migrations: %v", err)
			}
		}
		db, err = database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		store = ranking.NewPostgresStore(db)

	case config.BackendRedis:
		rdb, err = redis.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()
		store = ranking.NewRedisStore(rdb)
		notifiers = append(notifiers, ranking.NewRedisPublisher(rdb))

	default:
		if cfg.RankingBackend != config.BackendMemory {
			log.Printf("[RANKING] warning: unknown RANKING_BACKEND %q, using memory", cfg.RankingBackend)
		}
		store = ranking.NewMemoryStore()
	}
	log.Printf("[RANKING] Using %s ranking store", cfg.RankingBackend)

	if cfg.SlackWebhookURL != "" {
		notifiers = append(notifiers, ranking.NewSlackNotifier(cfg.SlackWebhookURL))
		log.Println("[RANKING] Slack announcements enabled")
	}
	if cfg.AdminTokenHash == "" {
		log.Println("[ADMIN] warning: ADMIN_TOKEN_HASH not set, admin routes are disabled")
	}

	rankings := ranking.NewManager(store, notifiers...)

	sounds := audio.NewBank(audio.DefaultSampleRate)
	if err := sounds.Preload(); err != nil {
		log.Printf("[AUDIO] warning: %v", err)
	}

	hub := ws.NewHub(func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || middleware.OriginAllowed(cfg, origin)
	})

	board := table.DefaultBoardConfig()
	board.BodyCount = cfg.BoardBodyCount
	board.MaxRetries = cfg.BoardMaxRetries
	registry := session.NewRegistry(ctx, session.Config{
		Layout:      table.StandardLayout(float64(cfg.BoardWidth), float64(cfg.BoardHeight)),
		Board:       board,
		SettleDelay: cfg.SettleDelay(),
		Volume:      cfg.SoundVolume,
		MatchLength: cfg.DefaultMatchLength,
	}, rankings, hub, cfg.TableIdleTimeout())
	registry.OnClose(hub.CloseTable)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	api.SetupRoutes(router, cfg, api.Deps{
		Registry: registry,
		Hub:      hub,
		Rankings: rankings,
		Auditor:  admin.NewAuditor(db),
		Sounds:   sounds,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		return registry.RunExpiry(gctx, time.Minute)
	})
	if rdb != nil {
		g.Go(func() error {
			return hub.SubscribeRankingEvents(gctx, rdb)
		})
	}
	g.Go(func() error {
		log.Printf("Starting pocketball server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		registry.CloseAll()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
