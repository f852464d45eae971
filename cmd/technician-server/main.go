// Command technician-server runs only the technician tracking API, for demos
// where each service is deployed as its own pod.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/acmehome/fieldops/internal/adapters/inbound/httpapi"
	"github.com/acmehome/fieldops/internal/adapters/outbound/inmemory"
	"github.com/acmehome/fieldops/internal/app"
	"github.com/acmehome/fieldops/internal/config"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	versionFlag := flag.Bool("version", false, "Print version information and exit")
	configPath := flag.String("config", "", "Path to fieldops config file (empty for defaults)")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("technician-server %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	fx, err := inmemory.DefaultFixtures()
	if err != nil {
		log.Fatalf("Failed to load fixtures: %v", err)
	}
	if cfg.Fixtures.Dir != "" {
		if fx, err = inmemory.LoadFixtures(cfg.Fixtures.Dir); err != nil {
			log.Fatalf("Failed to load fixtures from %s: %v", cfg.Fixtures.Dir, err)
		}
	}
	stores := inmemory.NewStores(fx)

	svc := app.NewTechnicianService(stores.Technicians, app.SystemClock{}, nil)
	handler := httpapi.NewTechnicianHandler(svc).Router(cfg.Auth.APIKey)

	srv, err := httpapi.NewServer(cfg.Services.Technician.Addr, handler)
	if err != nil {
		log.Fatalf("Failed to configure server: %v", err)
	}
	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Printf("technician-server %s listening on %s", version, cfg.Services.Technician.Addr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}
