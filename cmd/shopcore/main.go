package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/openmerch/shopcore/api"
	"github.com/openmerch/shopcore/internal/accounts"
	"github.com/openmerch/shopcore/internal/config"
	"github.com/openmerch/shopcore/internal/customers"
	"github.com/openmerch/shopcore/internal/database"
	"github.com/openmerch/shopcore/internal/orders"
	"github.com/openmerch/shopcore/internal/products"
	"github.com/openmerch/shopcore/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zapLogger, err := logger.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := database.New(cfg.Database)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zapLogger.Fatal("failed to migrate schema", zap.Error(err))
	}

	customerSvc, err := customers.NewService(zapLogger, db)
	if err != nil {
		zapLogger.Fatal("failed to create customer service", zap.Error(err))
	}
	accountSvc, err := accounts.NewService(zapLogger, db)
	if err != nil {
		zapLogger.Fatal("failed to create account service", zap.Error(err))
	}
	productSvc, err := products.NewService(zapLogger, db)
	if err != nil {
		zapLogger.Fatal("failed to create product service", zap.Error(err))
	}
	orderSvc, err := orders.NewService(zapLogger, db)
	if err != nil {
		zapLogger.Fatal("failed to create order service", zap.Error(err))
	}

	server := api.NewServer(zapLogger, customerSvc, accountSvc, productSvc, orderSvc)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      server.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		zapLogger.Info("starting API server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		zapLogger.Error("forced shutdown", zap.Error(err))
	}
}
