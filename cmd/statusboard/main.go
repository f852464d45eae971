// Command statusboard serves the cluster upgrade status page. It is meant to
// run in-cluster behind a LoadBalancer during the live upgrade demo.
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
	"github.com/acmehome/fieldops/internal/adapters/inbound/statusboard"
	"github.com/acmehome/fieldops/internal/adapters/outbound/kube"
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
		fmt.Printf("statusboard %s\n", version)
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

	inspector, err := kube.NewEnvironmentInspector()
	if err != nil {
		log.Fatalf("Failed to connect to cluster: %v", err)
	}

	board := app.NewStatusBoard(inspector, app.SystemClock{}, nil,
		cfg.StatusBoard.Namespace, cfg.StatusBoard.LabelSelector,
		cfg.StatusBoard.PodName, cfg.StatusBoard.NodeName)
	handler := statusboard.NewHandler(board, cfg.StatusBoard.PublicURL, cfg.StatusBoard.PodName)

	srv, err := httpapi.NewServer(cfg.StatusBoard.Addr, handler.Router())
	if err != nil {
		log.Fatalf("Failed to configure server: %v", err)
	}
	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Printf("statusboard %s listening on %s (pod %s, node %s)",
		version, cfg.StatusBoard.Addr, cfg.StatusBoard.PodName, cfg.StatusBoard.NodeName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}
