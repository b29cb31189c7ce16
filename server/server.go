package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jto5108/Community-Clinic-Load-Manager/appointment"
	"github.com/jto5108/Community-Clinic-Load-Manager/center"
	"github.com/jto5108/Community-Clinic-Load-Manager/routing"
	"github.com/jto5108/Community-Clinic-Load-Manager/util/logger"
)

// Server is the HTTP/JSON transport over the routing core. It owns no
// domain state of its own; everything lives in the registry, factory,
// router, and history it is wired with at startup.
type Server struct {
	registry *center.Registry
	factory  *appointment.Factory
	router   *routing.Router
	history  *routing.History
	log      *logger.Logger
	httpSrv  *http.Server
}

// New wires a server over the given core components, listening on addr
// once Run is called.
func New(addr string, registry *center.Registry, factory *appointment.Factory,
	router *routing.Router, history *routing.History) *Server {

	s := &Server{
		registry: registry,
		factory:  factory,
		router:   router,
		history:  history,
		log:      logger.NewLogger("Server"),
	}
	s.httpSrv = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	return s
}

// Handler builds the route table. Exposed so tests can drive the server
// through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/centers", s.handleCenters)
	mux.HandleFunc("/centers/", s.handleCenterByID)
	mux.HandleFunc("/appointments", s.handleAppointments)
	mux.HandleFunc("/history", s.handleHistory)
	mux.HandleFunc("/dashboard", s.handleDashboard)
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("HTTP server listening on %s", s.httpSrv.Addr)
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Infof("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
