package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	stdhttp "net/http"
	"time"

	"github.com/freekieb7/tinyhttp/http"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const readHeaderTimeout = 5 * time.Second

// Server exposes operational endpoints next to the main listener:
// /healthz and /routes, the registered route table.
type Server struct {
	Logger *slog.Logger

	server *stdhttp.Server
}

func NewServer(router *http.Router, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		Logger: logger,
		server: &stdhttp.Server{
			Handler:           otelhttp.NewHandler(NewHandler(router), "admin"),
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// NewHandler returns the admin mux without instrumentation.
func NewHandler(router *http.Router) stdhttp.Handler {
	routes := router.Routes()

	mux := stdhttp.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprintln(w, "ok")
	})
	mux.HandleFunc("GET /routes", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		w.Header().Set("Content-Type", "text/plain")
		for _, route := range routes {
			fmt.Fprintf(w, "%s %s\n", route.Method, route.Prefix)
		}
	})

	return mux
}

func (s *Server) ListenAndServe(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	return s.Serve(listener)
}

func (s *Server) Serve(listener net.Listener) error {
	s.Logger.Info("admin listening", "addr", listener.Addr().String())

	if err := s.server.Serve(listener); !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
