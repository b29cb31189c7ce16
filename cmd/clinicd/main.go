package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jto5108/Community-Clinic-Load-Manager/appointment"
	"github.com/jto5108/Community-Clinic-Load-Manager/center"
	"github.com/jto5108/Community-Clinic-Load-Manager/config"
	"github.com/jto5108/Community-Clinic-Load-Manager/decay"
	"github.com/jto5108/Community-Clinic-Load-Manager/routing"
	"github.com/jto5108/Community-Clinic-Load-Manager/server"
	"github.com/jto5108/Community-Clinic-Load-Manager/util/logger"
	"github.com/jto5108/Community-Clinic-Load-Manager/util/metrics"
	"github.com/jto5108/Community-Clinic-Load-Manager/util/tracing"
)

const version = "1.0.0"

func main() {
	var (
		configFile = flag.String("config", "", "Path to YAML configuration file")
		// Direct flags for running without a config file
		httpAddr      = flag.String("listen", "", "HTTP listen address (e.g. ':8000')")
		decayStep     = flag.Float64("decay-step", 0, "Work units removed per tick for a capacity-10 center")
		decayInterval = flag.Float64("decay-interval", 0, "Seconds between decay ticks")
		logLevel      = flag.String("log-level", "", "Log level (debug, info, warn, error)")
	)
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		cfg = loaded
		log.Printf("Starting with configuration from %s", *configFile)
	}
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}
	if *decayStep != 0 {
		cfg.Decay.Step = *decayStep
	}
	if *decayInterval != 0 {
		cfg.Decay.IntervalSeconds = *decayInterval
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	mainLog := logger.NewLogger("clinicd")
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}
	mainLog.SetLevel(level)

	if cfg.Tracing.Enabled {
		if err := tracing.Init("clinicd", version, cfg.Tracing.OutputFile); err != nil {
			log.Fatalf("Failed to initialize tracing: %v", err)
		}
	}

	// Wire the core: one registry, factory, history, router, and decay
	// engine for the lifetime of the process.
	registry := center.NewRegistry()
	history := routing.NewHistory()
	router := routing.NewRouter(registry, history)
	factory := appointment.NewFactory()

	for _, cc := range cfg.Centers {
		c := registry.Add(cc.Name, cc.Capacity)
		metrics.SetCenterLoad(c.ID, 0)
		metrics.SetCenterUp(c.ID, true)
		mainLog.Infof("seeded center %d %q (capacity %d)", c.ID, c.Name, c.Capacity)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engine := decay.NewEngine(registry, cfg.Decay.Step, cfg.Decay.Interval())
	engine.Start(ctx)
	defer engine.Stop()

	srv := server.New(cfg.HTTPAddr, registry, factory, router, history)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run(ctx)
	}()

	select {
	case sig := <-sigChan:
		mainLog.Infof("received signal %v, shutting down...", sig)
		cancel()
		if err := <-errChan; err != nil {
			mainLog.Errorf("server error during shutdown: %v", err)
		}
	case err := <-errChan:
		if err != nil {
			mainLog.Errorf("server error: %v", err)
		}
	}

	mainLog.Infof("clinicd stopped")
}
