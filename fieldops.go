// Package fieldops runs the EKS demo platform: three mock field-service REST
// APIs (customer, appointment, technician) and a cluster upgrade status board,
// all fed from in-memory fixture data.
//
// Quick start:
//
//	package main
//
//	import "github.com/acmehome/fieldops"
//
//	func main() {
//	    if err := fieldops.Run("fieldops.yaml"); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// Run blocks until SIGINT or SIGTERM. For embedding, Start returns a shutdown
// function instead.
package fieldops

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/acmehome/fieldops/internal/adapters/inbound/httpapi"
	sbhttp "github.com/acmehome/fieldops/internal/adapters/inbound/statusboard"
	"github.com/acmehome/fieldops/internal/adapters/outbound/inmemory"
	"github.com/acmehome/fieldops/internal/adapters/outbound/kube"
	"github.com/acmehome/fieldops/internal/app"
	"github.com/acmehome/fieldops/internal/bg"
	"github.com/acmehome/fieldops/internal/config"
)

// locationTick is how often the background simulator advances en-route
// technicians toward their destinations.
const locationTick = 5 * time.Second

// shutdownTimeout bounds graceful drain of each HTTP server.
const shutdownTimeout = 5 * time.Second

// Start loads configuration from configPath (empty for defaults), starts the
// three mock services, and, when a Kubernetes API is reachable, the status
// board.
//
// Returns a shutdown function that stops everything and is safe to call more
// than once.
func Start(configPath string) (shutdown func() error, err error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return startWith(cfg)
}

// startWith wires every component from a validated config.
func startWith(cfg config.FileConfig) (func() error, error) {
	fx, err := loadFixtures(cfg)
	if err != nil {
		return nil, err
	}
	stores := inmemory.NewStores(fx)

	clock := app.SystemClock{}
	customers := app.NewCustomerService(stores.Customers, stores.Claims, clock)
	appointments := app.NewAppointmentService(stores.Appointments, stores.Technicians, clock)
	technicians := app.NewTechnicianService(stores.Technicians, clock, nil)

	type namedServer struct {
		name string
		srv  *httpapi.Server
	}
	var running []namedServer

	// stopAll tears down whatever started, newest first.
	simCtx, stopSim := context.WithCancel(context.Background())
	stopAll := func() error {
		stopSim()
		var firstErr error
		for i := len(running) - 1; i >= 0; i-- {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			if err := running[i].srv.Stop(ctx); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("failed to stop %s: %w", running[i].name, err)
			}
			cancel()
		}
		return firstErr
	}

	start := func(name, addr string, handler http.Handler) error {
		srv, err := httpapi.NewServer(addr, handler)
		if err != nil {
			return fmt.Errorf("failed to configure %s: %w", name, err)
		}
		if err := srv.Start(); err != nil {
			return fmt.Errorf("failed to start %s: %w", name, err)
		}
		running = append(running, namedServer{name: name, srv: srv})
		return nil
	}

	key := cfg.Auth.APIKey
	if err := start("customer service", cfg.Services.Customer.Addr,
		httpapi.NewCustomerHandler(customers).Router(key)); err != nil {
		_ = stopAll()
		return nil, err
	}
	if err := start("appointment service", cfg.Services.Appointment.Addr,
		httpapi.NewAppointmentHandler(appointments).Router(key)); err != nil {
		_ = stopAll()
		return nil, err
	}
	if err := start("technician service", cfg.Services.Technician.Addr,
		httpapi.NewTechnicianHandler(technicians).Router(key)); err != nil {
		_ = stopAll()
		return nil, err
	}

	// The status board needs a Kubernetes API. Outside a cluster without a
	// kubeconfig the demo services still run, just without the board.
	if inspector, err := kube.NewEnvironmentInspector(); err != nil {
		log.Printf("status board disabled: %v", err)
	} else {
		board := app.NewStatusBoard(inspector, clock, nil,
			cfg.StatusBoard.Namespace, cfg.StatusBoard.LabelSelector,
			cfg.StatusBoard.PodName, cfg.StatusBoard.NodeName)
		handler := sbhttp.NewHandler(board, cfg.StatusBoard.PublicURL, cfg.StatusBoard.PodName)
		if err := start("status board", cfg.StatusBoard.Addr, handler.Router()); err != nil {
			_ = stopAll()
			return nil, err
		}
	}

	// Location simulator: en-route technicians keep moving between polls.
	sim := app.LocationSimulator{Service: technicians, Interval: locationTick, Runner: bg.Async{}}
	sim.Start(simCtx)

	var once sync.Once
	var stopErr error
	return func() error {
		once.Do(func() { stopErr = stopAll() })
		return stopErr
	}, nil
}

// loadFixtures picks the configured fixture directory or the embedded seed
// data.
func loadFixtures(cfg config.FileConfig) (inmemory.FixtureSet, error) {
	if cfg.Fixtures.Dir != "" {
		fx, err := inmemory.LoadFixtures(cfg.Fixtures.Dir)
		if err != nil {
			return inmemory.FixtureSet{}, fmt.Errorf("failed to load fixtures: %w", err)
		}
		return fx, nil
	}
	fx, err := inmemory.DefaultFixtures()
	if err != nil {
		return inmemory.FixtureSet{}, fmt.Errorf("failed to load embedded fixtures: %w", err)
	}
	return fx, nil
}

// Run starts the platform and blocks until SIGINT or SIGTERM, then shuts down
// gracefully.
func Run(configPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := Start(configPath)
	if err != nil {
		return err
	}

	log.Println("fieldops running - press Ctrl+C to stop")
	<-ctx.Done()
	stop()
	log.Println("shutting down gracefully...")

	return shutdown()
}
