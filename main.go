package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"auctiondata/internal/config"
	"auctiondata/internal/database/db_client"
	"auctiondata/internal/database/migrations"
	"auctiondata/internal/http/http_server"
	"auctiondata/internal/services/analytics"
	"auctiondata/internal/services/bid"
	"auctiondata/internal/services/lot"
	"auctiondata/internal/services/user"

	"go.uber.org/zap"
)

var (
	Log, _ = zap.NewDevelopment()
)

func main() {
	defer Log.Sync()
	zap.ReplaceGlobals(Log)

	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		Log.Fatal("Failed to load configuration", zap.Error(err))
	}
	Log.Debug("Configuration loaded successfully", zap.Any("config", cfg))

	// 2. Context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	// 3. Postgres db client
	pgDb, err := db_client.Open(cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDb)
	if err != nil {
		Log.Fatal("pg-open", zap.Error(err))
	}
	defer pgDb.Close()

	// 4. Apply pending schema migrations
	if err := migrations.Run(pgDb, cfg.MigrationsDir); err != nil {
		Log.Fatal("pg-migrate", zap.Error(err))
	}

	// 5. Initialize the domain services
	lotService := lot.NewLotService(pgDb)
	bidService := bid.NewBidService(pgDb)
	userService := user.NewUserService(pgDb)
	analyticsService := analytics.NewAnalyticsService(pgDb)

	// 6. HTTP server
	httpServer := http_server.NewHttpServer(ctx, cfg.HttpServerPort,
		lotService, bidService, userService, analyticsService)
	if err := httpServer.Start(); err != nil {
		Log.Fatal("Failed to start HTTP server", zap.Error(err))
	}
}
