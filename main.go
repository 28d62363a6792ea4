package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bounty-board-service/config"
	"bounty-board-service/handlers"
	"bounty-board-service/logger"
	"bounty-board-service/market"
	"bounty-board-service/middleware"
	"bounty-board-service/models"
	"bounty-board-service/services"
	"bounty-board-service/utils"
	"bounty-board-service/workers"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, reading environment variables directly")
	}

	cfg := config.Load()

	if cfg.Log.Output == "file" {
		fileLogger, err := logger.NewWithFileRotation(logger.ParseLogLevel(cfg.Log.Level), cfg.Log.File)
		if err != nil {
			logger.Fatal("failed to initialize file logger: %v", err)
		}
		logger.SetDefaultLogger(fileLogger)
	} else if l, err := logger.New(logger.ParseLogLevel(cfg.Log.Level)); err == nil {
		logger.SetDefaultLogger(l)
	}
	defer logger.Sync()

	app := fiber.New(fiber.Config{
		BodyLimit: 50 * 1024 * 1024, // 50MB, evidence uploads included
	})

	// Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		logger.Warn("ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-Service-Token, X-Wallet-Address",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	if err := utils.InitR2(
		cfg.Storage.AccountID,
		cfg.Storage.AccessKeyID,
		cfg.Storage.AccessKeySecret,
		cfg.Storage.Bucket,
		cfg.Storage.CDNBaseURL,
	); err != nil {
		logger.Fatal("failed to initialize R2 client: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Bounty{},
		&models.Claim{},
		&models.Participant{},
		&models.MarketEvent{},
		&models.ReceiptToken{},
	); err != nil {
		logger.Fatal("failed to migrate database: %v", err)
	}

	if !common.IsHexAddress(cfg.Market.TreasuryAddress) {
		logger.Fatal("market.treasury_address is not a valid address: %q", cfg.Market.TreasuryAddress)
	}

	mkt := market.New(market.Config{
		FeeNumerator:   cfg.Market.FeeNumerator,
		FeeDenominator: cfg.Market.FeeDenominator,
		Treasury:       common.HexToAddress(cfg.Market.TreasuryAddress),
		VotingWindow:   time.Duration(cfg.Market.VotingWindowHours) * time.Hour,
	}, market.WithMinter(services.NewReceiptEnqueuer(db)))

	mirror, err := services.NewMirror(db, mkt)
	if err != nil {
		logger.Fatal("failed to create mirror: %v", err)
	}
	defer mirror.Close()

	bountyService := services.NewBountyService(mkt, mirror)
	claimService := services.NewClaimService(mkt, mirror)
	votingService := services.NewVotingService(mkt, mirror)
	queryService := services.NewQueryService(db, mkt)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.NFT.ServiceURL == "" {
		logger.Fatal("nft.service_url is not set — receipts cannot be minted")
	}
	mintClient := workers.NewReceiptMintClient(db, cfg.NFT.ServiceURL, cfg.NFT.ServiceToken)
	go workers.PollReceipts(ctx, mintClient, time.Duration(cfg.NFT.PollIntervalSeconds)*time.Second)

	votingService.StartDeadlineScheduler()

	handlers.SetupBountyRoutes(app, bountyService, claimService, votingService, queryService)

	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			logger.Error("Server error: %v", err)
		}
	}()

	logger.Info("Server running on http://localhost:%s", cfg.Server.Port)
	logger.Info("Receipt mint worker running (every %ds)", cfg.NFT.PollIntervalSeconds)
	logger.Info("Voting deadline scheduler running (every 1m)")
	logger.Info("GatewayAuthMiddleware enforced globally — all requests must come from Gateway")

	<-ctx.Done()
	logger.Info("Shutting down server...")
	_ = app.Shutdown()
}
