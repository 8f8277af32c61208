package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/izzydoesit/gemini-api/config"
	"github.com/izzydoesit/gemini-api/db/postgres"
	providers "github.com/izzydoesit/gemini-api/db/postgres/providers"
	"github.com/izzydoesit/gemini-api/repository"
	"github.com/izzydoesit/gemini-api/routes"
	"github.com/izzydoesit/gemini-api/service"
	"github.com/izzydoesit/gemini-api/utils"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	logger, err := utils.NewLogger()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// 1. Instrument/server config
	configPath := os.Getenv("GATEWAY_CONFIG")
	if configPath == "" {
		configPath = "configs/gateway.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	// 2. Connect PostgreSQL
	postgresClient := postgres.ConnectDB()
	defer postgresClient.Stop()

	// 2.1 Init schema (development only)
	if err := postgresClient.InitSchema(); err != nil {
		logger.Fatal("failed to initialize database schema", zap.Error(err))
	}

	dbHelper, err := providers.NewDbProvider(postgresClient.PostgresClient)
	if err != nil {
		logger.Fatal("failed to initialize DB helper", zap.Error(err))
	}

	// 3. Credentials are loaded once; the gateway never writes them.
	credentialRepo := repository.NewCredentialRepository(dbHelper)
	credentials, err := credentialRepo.LoadAll(context.Background())
	if err != nil {
		logger.Fatal("failed to load credentials", zap.Error(err))
	}
	logger.Info("credentials loaded", zap.Int("count", len(credentials)))

	// 4. Gateway pipeline
	decoder, err := service.NewPayloadDecoder(cfg, routes.NewOrderPath)
	if err != nil {
		logger.Fatal("failed to build payload decoder", zap.Error(err))
	}

	orderRepo := repository.NewOrderRepository(dbHelper)
	dispatcher := service.NewEngineDispatcher(service.NewJournalSink(orderRepo, logger), logger)
	defer dispatcher.Close()

	gateway := service.NewGateway(credentials, decoder, dispatcher, logger)

	// 5. Gin router & handlers
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	routes.RegisterRoutes(router, gateway)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// 6. Run server in a goroutine so main stays free to handle signals
	go func() {
		logger.Info("order intake gateway running", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// 7. Wait for OS signal to shut down gracefully
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("received signal, shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("shutdown complete")
}
