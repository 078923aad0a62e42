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

	"github.com/IsaacDSC/miracle/cmd/setup"
	"github.com/IsaacDSC/miracle/internal/cfg"
	"github.com/IsaacDSC/miracle/pkg/logs"
	"github.com/hibiken/asynq"
)

const shutdownTimeout = time.Minute

// go run ./cmd/api --service=server
// go run ./cmd/api --service=worker
// go run ./cmd/api (server and worker)
func main() {
	service := flag.String("service", "all", "service to run: server, worker or all")
	flag.Parse()

	if err := run(*service); err != nil {
		logs.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(service string) error {
	conf := cfg.Get()
	logs.SetDefault(setup.NewLogger(conf))

	if service != "server" && service != "worker" && service != "all" {
		return fmt.Errorf("unknown service %q", service)
	}

	ctx := context.Background()

	deps, err := setup.Build(ctx, conf)
	if err != nil {
		return err
	}
	defer deps.Close(ctx)

	var (
		server *http.Server
		worker *asynq.Server
	)

	if service == "server" || service == "all" {
		server = setup.StartServer(conf, deps.Insights)
	}

	if service == "worker" || service == "all" {
		worker, err = setup.StartWorker(conf, deps.Registry, deps.Cache, deps.Insights)
		if err != nil {
			if server != nil {
				_ = server.Close()
			}
			return err
		}
	}

	waitForShutdown(server, worker)

	return nil
}

// waitForShutdown blocks until SIGINT or SIGTERM, then stops both services.
func waitForShutdown(server *http.Server, worker *asynq.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdown(server, worker, shutdownTimeout)
}

// shutdown drains the HTTP server within timeout, then the worker. In-flight
// tasks are given the worker's own grace period.
func shutdown(server *http.Server, worker *asynq.Server, timeout time.Duration) {
	logs.Info("Shutting down servers...")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if server != nil {
		start := time.Now()
		if err := server.Shutdown(ctx); err != nil {
			logs.Error("HTTP server forced to shutdown", "error", err)
		}
		logs.Info("HTTP server stopped", "duration", time.Since(start))
	}

	if worker != nil {
		start := time.Now()
		worker.Shutdown()
		logs.Info("Worker stopped", "duration", time.Since(start))
	}

	logs.Info("All servers shutdown complete")
}
