package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"course-market/internal/client"
	"course-market/internal/config"
	"course-market/internal/repository"
	"course-market/internal/server"
	"course-market/internal/service"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	setupLogger(&cfg.Log)

	if cfg.Toss.SecretKey == "" {
		log.Warn().Msg("TOSS_SECRET_KEY is not set, payment confirmation will fail")
	}

	ctx := context.Background()

	db, authClient, err := client.InitFirebase(ctx, &cfg.Firebase)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init firebase")
	}
	defer db.Close()

	rdb := client.InitRedisClient(cfg.Redis.Addr)
	if rdb == nil {
		log.Info().Msg("redis not configured, confirmation locking disabled")
	}

	tossClient := client.NewTossClient(&cfg.Toss)
	kakaoClient := client.NewKakaoClient(&cfg.Kakao)
	identityClient := client.NewIdentityClient(authClient)

	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	productRepo := repository.NewProductRepository(db)

	if err := productRepo.Seed(ctx); err != nil {
		log.Warn().Err(err).Msg("product seeding failed")
	}

	authService := service.NewAuthService(identityClient, kakaoClient, userRepo)
	checkoutService := service.NewCheckoutService(tossClient, orderRepo, productRepo, rdb, cfg)
	productService := service.NewProductService(productRepo)
	orderService := service.NewOrderService(orderRepo)
	reviewService := service.NewReviewService(reviewRepo, productRepo)
	userService := service.NewUserService(userRepo)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(
		authService,
		checkoutService,
		productService,
		orderService,
		reviewService,
		userService,
		cfg.BaseURL,
	)

	log.Info().Str("addr", serverAddr).Msg("starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info().Msg("signal received, starting graceful shutdown")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("HTTP server shutdown error")
	}
}

func setupLogger(cfg *config.Log) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
