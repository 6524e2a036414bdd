package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/natevvv/osm-delivery-routing/pkg/config"
	"github.com/natevvv/osm-delivery-routing/pkg/dataset"
	"github.com/natevvv/osm-delivery-routing/pkg/server/openapi_server"
	"github.com/natevvv/osm-delivery-routing/pkg/solver"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configFile := flag.String("config", "", "YAML configuration file")
	dataDir := flag.String("data", "", "directory with points.csv and edges.csv")
	address := flag.String("address", "", "listen address")
	mode := flag.String("mode", "", "default shortest path search: astar or dijkstra")
	dev := flag.Bool("dev", false, "development logging")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data":
			cfg.DataDir = *dataDir
		case "address":
			cfg.Server.Address = *address
		case "mode":
			cfg.Solver.Mode = *mode
		case "dev":
			cfg.Log.Development = *dev
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger, err := cfg.Log.NewLogger()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	defaults, err := cfg.Solver.SolverConfig()
	if err != nil {
		return err
	}

	start := time.Now()
	alg, coords, err := dataset.LoadGraph(cfg.DataDir)
	if err != nil {
		return err
	}
	s := solver.NewSolver(alg, coords)
	s.SetLogger(logger)
	fmt.Printf("[TIME] Load graph: %s\n", time.Since(start))

	metrics := openapi_server.NewMetrics("delivery")
	service, err := openapi_server.NewDefaultApiService(s, openapi_server.ServiceConfig{
		Defaults:         defaults,
		SolveTimeout:     cfg.Server.SolveTimeout,
		MaxStoredResults: cfg.Server.MaxStoredResults,
	}, metrics, logger)
	if err != nil {
		return err
	}
	router := openapi_server.NewRouter(logger, metrics, openapi_server.NewDefaultApiController(service))

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("address", cfg.Server.Address), zap.Int("nodes", s.Graph().NodeCount()))
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
