package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"airline-sentiment-dashboard/internal/dashboard/config"
	delivery "airline-sentiment-dashboard/internal/dashboard/delivery/http"
	"airline-sentiment-dashboard/internal/dashboard/repository"
	"airline-sentiment-dashboard/internal/dashboard/service"
	"airline-sentiment-dashboard/internal/metrics"
	"airline-sentiment-dashboard/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath        string
	snapshotAirline   string
	snapshotSentiment string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the dashboard service",
	Run:   runServe,
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Runs one refresh and prints the dashboard view model as JSON",
	Run:   runSnapshot,
}

// bootstrap loads configuration and builds the logger and orchestrator shared by every command.
func bootstrap() (*config.Config, *logger.Logger, service.Orchestrator) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to load .env file: %v", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	zap.ReplaceGlobals(appLogger.Logger)

	metrics.Init()

	repo := repository.NewSentimentRepository(cfg, appLogger)
	filters := service.NewFilterState()
	orchestrator := service.NewOrchestrator(repo, filters, appLogger, service.Options{
		RecordLimit:  cfg.Dashboard.RecordLimit,
		CycleTimeout: cfg.Dashboard.CycleTimeout,
	})
	return cfg, appLogger, orchestrator
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, appLogger, orchestrator := bootstrap()
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Dashboard Service",
		logger.Field("name", cfg.App.Name),
		logger.StringField("backend", cfg.Backend.BaseURL))

	hub := delivery.NewHub(appLogger)
	go hub.Run(ctx)
	unsubscribe := orchestrator.Subscribe(hub.Publish)
	defer unsubscribe()

	orchestrator.Start(ctx)

	if cfg.Dashboard.ReloadSchedule != "" {
		refreshScheduler, err := service.NewRefreshScheduler(orchestrator, cfg.Dashboard.ReloadSchedule, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize refresh scheduler", logger.ErrorField(err))
		}
		go refreshScheduler.Start(ctx)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	delivery.RegisterRoutes(e, orchestrator, hub, appLogger)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.API.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.ErrorField(err))
	}
	orchestrator.Wait()

	appLogger.Info("Server exiting")
}

func runSnapshot(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, appLogger, orchestrator := bootstrap()
	defer func() { _ = appLogger.Sync() }()

	started := time.Now()
	orchestrator.Start(ctx)
	orchestrator.Wait()

	filters := orchestrator.Filters()
	if snapshotAirline != "" {
		filters.SetAirline(snapshotAirline)
	}
	if snapshotSentiment != "" {
		if err := filters.SetSentiment(snapshotSentiment); err != nil {
			appLogger.Fatal("Invalid sentiment filter", logger.ErrorField(err))
		}
	}
	orchestrator.Wait()

	vm := orchestrator.Current()
	appLogger.Info("Snapshot complete",
		logger.Uint64Field("cycle", vm.Cycle),
		logger.Field("elapsed", time.Since(started)))

	out, err := json.MarshalIndent(vm, "", "  ")
	if err != nil {
		appLogger.Fatal("Failed to encode view model", logger.ErrorField(err))
	}
	fmt.Println(string(out))

	if vm.LastError != nil {
		_ = appLogger.Sync()
		os.Exit(1)
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Airline sentiment dashboard client",
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-dashboard.yaml", "Path to the configuration file")
	snapshotCmd.Flags().StringVar(&snapshotAirline, "airline", "", "Airline to filter the record feed by")
	snapshotCmd.Flags().StringVar(&snapshotSentiment, "sentiment", "", "Sentiment to filter the record feed by (positive, negative, neutral)")

	rootCmd.AddCommand(serveCmd, snapshotCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing dashboard CLI: %s\n", err)
		os.Exit(1)
	}
}
