package http

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/freekieb7/tinyhttp/http"

var ErrServerClosed = errors.New("http: server closed")

// Server owns the accept loop. Every connection is served on its own
// goroutine and carries exactly one request/response exchange.
type Server struct {
	Name    string
	Handler Handler
	Logger  *slog.Logger

	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider

	initOnce sync.Once
	tracer   trace.Tracer
	requests metric.Int64Counter
	duration metric.Float64Histogram

	mu       sync.Mutex
	listener net.Listener
	closed   bool
	conns    sync.WaitGroup
}

func NewServer(name string, handler Handler) *Server {
	return &Server{
		Name:    name,
		Handler: handler,
	}
}

func (s *Server) init() {
	s.initOnce.Do(func() {
		if s.Handler == nil {
			s.Handler = NotFoundHandler
		}
		if s.Logger == nil {
			s.Logger = slog.Default()
		}
		s.Logger = s.Logger.With("server", s.Name)
		if s.TracerProvider == nil {
			s.TracerProvider = otel.GetTracerProvider()
		}
		if s.MeterProvider == nil {
			s.MeterProvider = otel.GetMeterProvider()
		}

		s.tracer = s.TracerProvider.Tracer(instrumentationName)
		meter := s.MeterProvider.Meter(instrumentationName)

		var err error
		s.requests, err = meter.Int64Counter("http.server.requests",
			metric.WithDescription("The number of requests answered by status code"),
			metric.WithUnit("{request}"))
		if err != nil {
			s.Logger.Error("creating request counter failed", "error", err)
		}
		s.duration, err = meter.Float64Histogram("http.server.request.duration",
			metric.WithDescription("Time from accepting a connection to writing its response"),
			metric.WithUnit("s"))
		if err != nil {
			s.Logger.Error("creating duration histogram failed", "error", err)
		}
	})
}

func (s *Server) ListenAndServe(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	return s.Serve(listener)
}

func (s *Server) Serve(listener net.Listener) error {
	s.init()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		listener.Close()
		return ErrServerClosed
	}
	s.listener = listener
	s.mu.Unlock()

	s.Logger.Info("listening", "addr", listener.Addr().String())

	for {
		conn, err := listener.Accept()
		if err != nil {
			if s.isClosed() {
				return ErrServerClosed
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}

			s.Logger.Error("accepting connection failed", "error", err)
			continue
		}

		if !s.trackConn() {
			conn.Close()
			return ErrServerClosed
		}
		go func() {
			defer s.conns.Done()
			s.ServeConn(conn)
		}()
	}
}

// Addr returns the address of the listener passed to Serve, if any.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// trackConn registers a connection with Shutdown unless it has already begun.
func (s *Server) trackConn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.conns.Add(1)
	return true
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// ServeConn parses one request from conn, dispatches it, writes the response
// and closes the connection.
func (s *Server) ServeConn(conn net.Conn) {
	s.init()
	defer conn.Close()

	start := time.Now()
	connID := uuid.NewString()
	logger := s.Logger.With("conn_id", connID, "remote_addr", conn.RemoteAddr().String())

	ctx, span := s.tracer.Start(context.Background(), "http.exchange",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attribute.String("connection.id", connID)))
	defer span.End()

	br := bufio.NewReaderSize(conn, DefaultReadBufferSize)

	method := "_OTHER"
	var res *Response

	req, err := ReadRequest(br)
	switch {
	case err == nil:
		method = req.Method.String()
		span.SetName(method)
		span.SetAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", req.Target),
		)
		res = s.dispatch(ctx, logger, req)
	case IsBadRequest(err):
		logger.WarnContext(ctx, "rejecting malformed request", "error", err)
		res = BadRequest()
	case errors.Is(err, io.EOF):
		logger.DebugContext(ctx, "connection closed before sending a request")
		return
	default:
		logger.ErrorContext(ctx, "reading request failed", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "read request")
		return
	}

	span.SetAttributes(attribute.Int("http.response.status_code", int(res.Status)))
	if res.Status >= StatusInternalServerError {
		span.SetStatus(codes.Error, res.Status.String())
	}

	bw := bufio.NewWriterSize(conn, DefaultWriteBufferSize)
	_, err = res.WriteTo(bw)
	if err == nil {
		err = bw.Flush()
	}
	if err != nil {
		// the client is gone, only this connection is affected
		logger.ErrorContext(ctx, "writing response failed", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "write response")
	}

	attrs := metric.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.Int("http.response.status_code", int(res.Status)),
	)
	if s.requests != nil {
		s.requests.Add(ctx, 1, attrs)
	}
	if s.duration != nil {
		s.duration.Record(ctx, time.Since(start).Seconds(), attrs)
	}

	logger.InfoContext(ctx, "request served",
		"method", method,
		"status", int(res.Status),
		"duration", time.Since(start),
	)
}

// dispatch runs the handler and folds both sides of its result into the
// response that goes on the wire.
func (s *Server) dispatch(ctx context.Context, logger *slog.Logger, req *Request) *Response {
	res, err := s.Handler(req)
	if err != nil {
		var responseErr *ResponseError
		if errors.As(err, &responseErr) && responseErr.Response != nil {
			return responseErr.Response
		}

		logger.ErrorContext(ctx, "handler failed", "error", err)
		return InternalServerError()
	}

	if res == nil {
		logger.ErrorContext(ctx, "handler returned no response", "target", req.Target)
		return InternalServerError()
	}

	return res
}

// Shutdown stops accepting connections and waits for the ones in flight.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	var err error
	if s.listener != nil {
		err = s.listener.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.conns.Wait()
		close(done)
	}()

	select {
	case <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
