package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/catalog"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/checkout"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/config"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/db"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/gate"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/policy"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/receipt"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/sched"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/store"
)

var (
	envFileFlag  = flag.String("env", ".env", "Environment file to load before reading configuration")
	seedOnlyFlag = flag.Bool("seed-only", false, "Migrate and seed the database, then exit")
)

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load(*envFileFlag)

	// Load configuration from environment
	cfg := config.Load()

	log, err := newLogger(cfg.App.Dev)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("configuration rejected", zap.Error(err))
	}

	products := catalog.Generate(cfg.POS.CatalogSize, catalog.NewRand(cfg.POS.CatalogSeed))
	dbConn, err := db.Setup(cfg.Database.DSN, cfg.Database.Debug, products)
	if err != nil {
		log.Fatal("database setup failed", zap.Error(err))
	}
	if *seedOnlyFlag {
		log.Info("seeding completed", zap.Int("products", len(products)))
		return
	}

	role, err := gate.ParseRole(cfg.POS.DefaultRole)
	if err != nil {
		log.Warn("falling back to admin role", zap.String("configured", cfg.POS.DefaultRole))
		role = gate.RoleAdmin
	}
	st, err := store.New(dbConn, store.Options{
		TaxRate:     cfg.POS.TaxRate,
		DefaultRole: role,
		Logger:      log.Named("store"),
	})
	if err != nil {
		log.Fatal("store init failed", zap.Error(err))
	}

	exporter, err := newExporter(cfg.POS.ExportDir, log.Named("receipt"))
	if err != nil {
		log.Fatal("exporter init failed", zap.Error(err))
	}
	process := checkout.New(checkout.Config{
		Register:      st,
		Gateway:       checkout.SimulatedGateway{Scheduler: sched.Real{}, Delay: cfg.POS.PaymentDelay},
		Exporter:      exporter,
		Scheduler:     sched.Real{},
		QRDetectDelay: cfg.POS.QRDetectDelay,
		Logger:        log.Named("checkout"),
	})

	routerCfg := policy.NewRouterConfig(st, process, time.Now, log)
	appHandler := NewApp(routerCfg, log)

	// Create server with config timeouts
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      withLogging(log.Named("http"), appHandler),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("server starting",
			zap.String("port", cfg.Server.Port),
			zap.Bool("dev", cfg.App.Dev),
			zap.Float64("tax_rate", cfg.POS.TaxRate),
			zap.Int("catalog", len(products)))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}
	process.Shutdown()
	log.Info("server stopped gracefully")
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// newExporter writes receipts into dir, or only logs them when dir is empty.
func newExporter(dir string, log *zap.Logger) (checkout.Exporter, error) {
	if dir == "" {
		return receipt.LogExporter{Logger: log}, nil
	}
	e, err := receipt.NewDirExporter(dir, log)
	if err != nil {
		return nil, err
	}
	return e, nil
}
