package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"go.uber.org/zap"

	"fernbot/bot"
	"fernbot/config"
	"fernbot/match"
	"fernbot/store"
	"fernbot/web"
)

func main() {
	ctx := context.Background()

	// Initialize logger with default level to load config
	tempLogger, err := config.InitLogger("info")
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	// Load config (which includes log level setting)
	cfg := config.Load(tempLogger)

	// Re-initialize logger with configured level
	logger, err := config.InitLogger(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to re-initialize logger with configured level: %v\n", err)
		os.Exit(1)
	}
	defer config.Cleanup()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	contentStore, err := store.NewFirestoreStore(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsJSON, cfg.ContentCollection, logger)
	if err != nil {
		logger.Fatal("Failed to connect to Firestore", zap.Error(err))
	}
	defer contentStore.Close()

	scorer := match.NewScorer(match.DefaultWeights)
	engine := match.NewEngine(contentStore, scorer, cfg.AcceptThreshold, bot.ZapTraceSink(logger))

	lineAPI, err := messaging_api.NewMessagingApiAPI(cfg.ChannelAccessToken)
	if err != nil {
		logger.Fatal("Failed to initialize LINE client", zap.Error(err))
	}

	limiter, err := bot.NewChatLimiter(cfg.RateLimitMessagesPerMin, cfg.RateLimitBurstSize, cfg.RateLimitMaxChats)
	if err != nil {
		logger.Fatal("Failed to initialize rate limiter", zap.Error(err))
	}

	processor := bot.NewProcessor(engine, bot.NewLineReplier(lineAPI), limiter, cfg.SuggestionLimit, logger)

	// Initialize web server
	webServer := web.NewServer(processor, engine, contentStore, logger, cfg)

	// Create context that listens for interrupt signals
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Start web server
	port := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting Fern & Nannam bot web server", zap.String("port", port))
	if err := webServer.Start(ctx, port); err != nil {
		logger.Error("Web server error", zap.Error(err))
		os.Exit(1)
	}
}
