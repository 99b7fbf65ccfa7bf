package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	accountapp "github.com/dimasqi/storefront/internal/account/app"
	accountpg "github.com/dimasqi/storefront/internal/account/infra/postgres"
	accountredis "github.com/dimasqi/storefront/internal/account/infra/redis"

	cartapp "github.com/dimasqi/storefront/internal/cart/app"
	cartadapter "github.com/dimasqi/storefront/internal/cart/infra/adapter"
	cartpg "github.com/dimasqi/storefront/internal/cart/infra/postgres"

	catalogapp "github.com/dimasqi/storefront/internal/catalog/app"
	catalogpg "github.com/dimasqi/storefront/internal/catalog/infra/postgres"

	checkoutapp "github.com/dimasqi/storefront/internal/checkout/app"
	checkoutadapter "github.com/dimasqi/storefront/internal/checkout/infra/adapter"
	checkoutsession "github.com/dimasqi/storefront/internal/checkout/infra/session"

	orderapp "github.com/dimasqi/storefront/internal/order/app"
	orderpg "github.com/dimasqi/storefront/internal/order/infra/postgres"

	"github.com/dimasqi/storefront/internal/httpapi"
	"github.com/dimasqi/storefront/pkg/config"
	"github.com/dimasqi/storefront/pkg/logger"
	"github.com/dimasqi/storefront/pkg/postgres"
	"github.com/dimasqi/storefront/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   "storefront",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	db, err := postgres.Open(postgres.Config{
		Host:    cfg.Postgres.Host,
		Port:    cfg.Postgres.Port,
		User:    cfg.Postgres.User,
		Pass:    cfg.Postgres.Pass,
		DB:      cfg.Postgres.DB,
		SSLMode: cfg.Postgres.SSLMode,
	})
	if err != nil {
		log.Error("db open failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.Migrate(db, cfg.Postgres.MigrationsPath); err != nil {
		log.Error("migrations failed", slog.Any("err", err))
		os.Exit(1)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error("redis ping failed", slog.Any("err", err))
		os.Exit(1)
	}

	// Accounts
	userRepo := accountpg.NewUserRepo(db)
	sessionStore := accountredis.NewSessionStore(rdb, cfg.SessionTTL)
	accountSvc := accountapp.NewService(userRepo, sessionStore)

	// Catalog
	productRepo := catalogpg.NewProductRepo(db)
	catalogSvc := catalogapp.NewService(productRepo)

	// Cart
	cartRepo := cartpg.NewCartRepo(db)
	cartSvc := cartapp.NewService(cartRepo, cartadapter.NewCatalogServiceReader(catalogSvc), 10)

	// Orders
	orderRepo := orderpg.NewOrderRepo(db)
	orderSvc := orderapp.NewService(orderRepo)

	// Checkout (adapters)
	staging := checkoutsession.NewRedisStaging(rdb, cfg.SessionTTL)
	cartReader := checkoutadapter.NewCartServiceReader(cartSvc)
	committer := checkoutadapter.NewOrderServiceCommitter(orderSvc)
	checkoutSvc := checkoutapp.NewService(staging, cartReader, committer)

	api := httpapi.NewServer(accountSvc, catalogSvc, cartSvc, checkoutSvc, orderSvc, log, cfg.SessionTTL)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           api.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}
