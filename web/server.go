package web

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fernbot/bot"
	"fernbot/config"
	"fernbot/match"
	"fernbot/web/handlers"
)

type Server struct {
	router *gin.Engine
	logger *zap.Logger
	config *config.Config
}

// NewServer builds the HTTP surface: the LINE webhook plus the liveness and
// operator diagnostics routes.
func NewServer(processor *bot.Processor, engine *match.Engine, store handlers.ContentStore, logger *zap.Logger, cfg *config.Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())

	server := &Server{
		router: router,
		logger: logger,
		config: cfg,
	}

	server.setupRoutes(processor, engine, store)
	return server
}

func (s *Server) setupRoutes(processor *bot.Processor, engine *match.Engine, store handlers.ContentStore) {
	webhookHandler := handlers.NewWebhookHandler(processor, s.config.ChannelSecret, s.logger)
	diagHandler := handlers.NewDiagnosticsHandler(engine, store, s.config, s.logger)

	s.router.GET("/", diagHandler.Index)
	s.router.GET("/health", diagHandler.Health)
	s.router.GET("/debug", diagHandler.Debug)
	s.router.GET("/test-similarity/:q", diagHandler.TestSimilarity)

	// The webhook is the only mutating-looking entry point; signature
	// verification happens inside the handler via the LINE SDK.
	s.router.POST("/webhook", webhookHandler.Callback)
}

func (s *Server) Start(ctx context.Context, addr string) error {
	s.logger.Info("Starting web server", zap.String("address", addr))

	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Web server failed to start", zap.Error(err))
		}
	}()

	// Wait for context cancellation
	<-ctx.Done()

	s.logger.Info("Shutting down web server")
	return srv.Shutdown(context.Background())
}
