package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"yt-planner/internal/auth"
	"yt-planner/internal/authctx"
	"yt-planner/internal/config"
	"yt-planner/internal/db"
	"yt-planner/internal/handlers"
	"yt-planner/internal/middleware"
	"yt-planner/internal/planner"
	"yt-planner/internal/relay"
	"yt-planner/pkg/tasks"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

// initDataTTL is how long a signed init-data credential stays valid.
const initDataTTL = 24 * time.Hour

type app struct {
	handler  http.Handler
	handlers *handlers.Handlers
}

// newApp wires the HTTP side. redisClient may be nil in demo mode, where the
// identity provider is never consulted.
func newApp(cfg *config.Config, store *db.Store, enqueuer tasks.TaskEnqueuer, redisClient redis.UniversalClient) *app {
	var provider auth.Provider
	if !cfg.IsDemo() {
		provider = auth.NewTelegramProvider(cfg.TelegramBotToken, initDataTTL, auth.NewRedisRevocations(redisClient))
	}
	detector := authctx.Detector{
		EmbedderHosts:   cfg.EmbedderHosts,
		ForceDemo:       cfg.ForceMockAuth,
		TrustEmbedHints: cfg.IsDemo(),
	}
	source := auth.NewMockSource(rand.New(rand.NewSource(time.Now().UnixNano())))
	selector := auth.NewSelector(detector, provider, source, cfg.IsDemo())
	log.WithFields(log.Fields{"mode": cfg.Mode, "demoUser": source.Identity().ID}).Info("Auth configured")

	svc := planner.NewService(store, enqueuer, nil)
	h := handlers.New(svc, cfg.BaseURL)
	handler := h.Router(handlers.RouterConfig{
		Auth:    middleware.NewAuthenticator(selector, svc),
		Limiter: middleware.NewRateLimiterMiddleware(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		Frame: middleware.FrameOptions{
			FrameAncestors:    cfg.FrameAncestors,
			OmitXFrameOptions: cfg.OmitXFrameOptions,
			CORSOrigins:       cfg.FrameAncestors,
		},
		Relay: relay.NewHub(cfg.RelayOrigins, cfg.IsDemo()),
	})
	return &app{handler: handler, handlers: h}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	store, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("could not open database: %v", err)
	}
	defer store.Close()
	if err := store.Migrate(context.Background()); err != nil {
		log.Fatalf("could not migrate database: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer asynqClient.Close()

	a := newApp(cfg, store, asynqClient, redisClient)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TelegramBotEnabled {
		bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
		if err != nil {
			log.Fatalf("could not start Telegram bot: %v", err)
		}
		log.Printf("Authorized on account %s", bot.Self.UserName)
		go a.handlers.RunTelegramBot(ctx, bot)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}()

	log.Printf("Starting server on :%s (commit: %s, mode: %s)", cfg.Port, CommitSHA, cfg.Mode)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
