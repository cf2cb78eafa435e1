package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/rollcall/internal/code"
	"github.com/KirkDiggler/rollcall/internal/common/clock"
	"github.com/KirkDiggler/rollcall/internal/common/uuid"
	"github.com/KirkDiggler/rollcall/internal/config"
	"github.com/KirkDiggler/rollcall/internal/db"
	"github.com/KirkDiggler/rollcall/internal/handlers/discord"
	internalhttp "github.com/KirkDiggler/rollcall/internal/handlers/http"
	"github.com/KirkDiggler/rollcall/internal/notify"
	attendanceRepo "github.com/KirkDiggler/rollcall/internal/repositories/attendance"
	sessionRepo "github.com/KirkDiggler/rollcall/internal/repositories/session"
	userRepo "github.com/KirkDiggler/rollcall/internal/repositories/user"
	attendanceService "github.com/KirkDiggler/rollcall/internal/services/attendance"
	identityService "github.com/KirkDiggler/rollcall/internal/services/identity"
	"github.com/KirkDiggler/rollcall/internal/services/messaging"
	sessionService "github.com/KirkDiggler/rollcall/internal/services/session"
	"github.com/redis/go-redis/v9"
)

type repositories struct {
	sessions   sessionRepo.Repository
	attendance attendanceRepo.Repository
	users      userRepo.Repository
}

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis backs the default store and the admission notifier
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		cancel()
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	cancel()
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Failed to close Redis: %v", err)
		}
	}()

	repos, closeStore, err := openStore(ctx, cfg, redisClient)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer closeStore()

	clk := clock.New()
	uuidGen := uuid.New()

	sessionSvc, err := sessionService.New(&sessionService.Config{
		SessionRepo:     repos.sessions,
		Clock:           clk,
		UUIDGenerator:   uuidGen,
		CodeGenerator:   code.New(&code.Config{}),
		MaxCodeAttempts: cfg.MaxCodeAttempts,
	})
	if err != nil {
		log.Fatalf("Failed to create session service: %v", err)
	}

	publisher, err := notify.NewRedis(&notify.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create notifier: %v", err)
	}

	attendanceSvc, err := attendanceService.New(&attendanceService.Config{
		SessionService: sessionSvc,
		AttendanceRepo: repos.attendance,
		Clock:          clk,
		Notifier:       publisher,
	})
	if err != nil {
		log.Fatalf("Failed to create attendance service: %v", err)
	}

	identitySvc, err := identityService.New(&identityService.Config{
		UserRepo:      repos.users,
		UUIDGenerator: uuidGen,
		Clock:         clk,
		Secret:        cfg.JWTSecret,
		Issuer:        cfg.JWTIssuer,
		TokenTTL:      cfg.TokenTTL,
	})
	if err != nil {
		log.Fatalf("Failed to create identity service: %v", err)
	}

	server, err := internalhttp.NewServer(&internalhttp.Config{
		IdentityService:   identitySvc,
		SessionService:    sessionSvc,
		AttendanceService: attendanceSvc,
		Clock:             clk,
		Events:            publisher,
	})
	if err != nil {
		log.Fatalf("Failed to create HTTP server: %v", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("rollcall http listening on %s (%s store)", cfg.HTTPAddr, cfg.StoreDriver)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	var bot *discord.Bot
	if cfg.DiscordToken != "" {
		messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{})
		if err != nil {
			log.Fatalf("Failed to create messaging service: %v", err)
		}

		bot, err = discord.New(&discord.Config{
			Token:             cfg.DiscordToken,
			ApplicationID:     cfg.ApplicationID,
			GuildID:           cfg.GuildID,
			SessionService:    sessionSvc,
			AttendanceService: attendanceSvc,
			MessagingService:  messagingSvc,
			Clock:             clk,
		})
		if err != nil {
			log.Fatalf("Failed to create Discord bot: %v", err)
		}

		if err := bot.Start(); err != nil {
			log.Fatalf("Failed to start Discord bot: %v", err)
		}
	} else {
		log.Println("DISCORD_TOKEN not set, Discord bot disabled")
	}

	<-ctx.Done()

	if bot != nil {
		if err := bot.Stop(); err != nil {
			log.Printf("Error stopping bot: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shut down HTTP server: %v", err)
	}

	log.Println("rollcall has been shut down")
}

// openStore builds the repositories for the configured driver
func openStore(ctx context.Context, cfg config.Config, redisClient *redis.Client) (*repositories, func(), error) {
	if cfg.StoreDriver == config.StorePostgres {
		return openPostgres(ctx, cfg)
	}

	if cfg.StoreDriver != config.StoreRedis {
		log.Printf("Unknown STORE_DRIVER %q, using redis", cfg.StoreDriver)
	}

	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{RedisClient: redisClient})
	if err != nil {
		return nil, nil, err
	}

	attendance, err := attendanceRepo.NewRedis(&attendanceRepo.Config{RedisClient: redisClient})
	if err != nil {
		return nil, nil, err
	}

	users, err := userRepo.NewRedis(&userRepo.Config{RedisClient: redisClient})
	if err != nil {
		return nil, nil, err
	}

	return &repositories{sessions: sessions, attendance: attendance, users: users}, func() {}, nil
}

func openPostgres(ctx context.Context, cfg config.Config) (*repositories, func(), error) {
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	if err := db.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}

	sessions, err := sessionRepo.NewPostgres(&sessionRepo.PostgresConfig{Pool: pool})
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	attendance, err := attendanceRepo.NewPostgres(&attendanceRepo.PostgresConfig{Pool: pool})
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	users, err := userRepo.NewPostgres(&userRepo.PostgresConfig{Pool: pool})
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	return &repositories{sessions: sessions, attendance: attendance, users: users}, pool.Close, nil
}
