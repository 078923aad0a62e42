package setup

import (
	"errors"
	"net/http"
	"time"

	"github.com/IsaacDSC/miracle/internal/cfg"
	"github.com/IsaacDSC/miracle/internal/health"
	"github.com/IsaacDSC/miracle/internal/insights"
	"github.com/IsaacDSC/miracle/pkg/httpadapter"
	"github.com/IsaacDSC/miracle/pkg/logs"
)

func NewHandler(conf cfg.Config, reader insights.Reader) http.Handler {
	mux := http.NewServeMux()

	routes := health.Routes(conf.StaticDir)
	if reader != nil {
		routes = append(routes, insights.GetInsightsHandler(reader))
	}

	httpadapter.Register(mux, routes...)

	return LoggerMiddleware(mux)
}

// StartServer listens in the background and returns the server for shutdown.
func StartServer(conf cfg.Config, reader insights.Reader) *http.Server {
	server := &http.Server{
		Addr:              conf.ApiPort.String(),
		Handler:           NewHandler(conf, reader),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logs.Info("Starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logs.Error("HTTP server error", "error", err)
		}
	}()

	return server
}
