package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/pethero/pethero-api/internal/api"
	"github.com/pethero/pethero-api/internal/core/service"
	"github.com/pethero/pethero-api/internal/infrastructure/config"
	"github.com/pethero/pethero-api/internal/infrastructure/db/postgres"
	redisdb "github.com/pethero/pethero-api/internal/infrastructure/db/redis"
	"github.com/pethero/pethero-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Postgres ---
	pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Database.URL})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connect failed")
	}
	defer pool.Close()

	if err := postgres.Migrate(cfg.Database.URL); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}
	if err := postgres.Seed(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}

	userRepo := postgres.NewUserRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	bookingRepo := postgres.NewBookingRepository(pool)
	petRepo := postgres.NewPetRepository(pool)
	voucherRepo := postgres.NewVoucherRepository(pool)

	// --- Redis (optional: only the login throttle depends on it) ---
	var throttle service.LoginThrottle
	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connect failed")
		}
		defer client.Close()
		rdb = client
		throttle = redisdb.NewLoginThrottle(client, cfg.Login.MaxAttempts, cfg.Login.AttemptWindow)
	} else {
		log.Warn().Msg("REDIS_ADDR not set, login throttling disabled")
	}

	// --- Services ---
	tokenService, err := service.NewJWTTokenService(service.TokenConfig{
		Secret:         cfg.JWT.Secret,
		Issuer:         cfg.JWT.Issuer,
		Audience:       cfg.JWT.Audience,
		ExpiresMinutes: cfg.JWT.ExpiresMinutes,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("token service init failed")
	}

	authService := service.NewAuthService(userRepo, profileRepo, tokenService, throttle, log)
	bookingService := service.NewBookingService(bookingRepo, log)
	petService := service.NewPetService(petRepo, bookingRepo, log)
	voucherService := service.NewVoucherService(voucherRepo, bookingRepo, log)

	e := api.NewRouter(api.Dependencies{
		Log:          log,
		Tokens:       tokenService,
		Auth:         authService,
		Bookings:     bookingService,
		Pets:         petService,
		Vouchers:     voucherService,
		Users:        userRepo,
		Profiles:     profileRepo,
		Guardians:    postgres.NewGuardianRepository(pool),
		Availability: postgres.NewAvailabilityRepository(pool),
		Favorites:    postgres.NewFavoriteRepository(pool),
		Reviews:      postgres.NewReviewRepository(pool),
		Messages:     postgres.NewMessageRepository(pool),
		Payments:     postgres.NewPaymentRepository(pool),
		DB:           pool,
		Redis:        rdb,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting api")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("shutdown complete")
}
