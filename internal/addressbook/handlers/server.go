// Package handlers provides gRPC and HTTP server implementations for
// serving the AddressBookService, bridging the transport layer and the
// command layer.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gartstein/connectify/internal/addressbook/auth"
	e "github.com/gartstein/connectify/internal/addressbook/errors"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Server holds references to both a gRPC server and an HTTP server.
type Server struct {
	grpcServer   *grpc.Server
	httpServer   *http.Server
	logger       *zap.Logger
	grpcEndpoint string
	httpEndpoint string
}

// NewServer constructs a Server with separate endpoints for gRPC and HTTP.
func NewServer(
	grpcPort int,
	httpPort int,
	logger *zap.Logger,
	grpcOpts ...grpc.ServerOption,
) *Server {
	return &Server{
		grpcServer:   grpc.NewServer(grpcOpts...),
		httpServer:   &http.Server{ReadHeaderTimeout: 10 * time.Second},
		logger:       logger.Named("server"),
		grpcEndpoint: fmt.Sprintf(":%d", grpcPort),
		httpEndpoint: fmt.Sprintf(":%d", httpPort),
	}
}

// RegisterGRPCHandler registers the handler for the AddressBookService.
func (s *Server) RegisterGRPCHandler(h AddressBookServer) {
	s.grpcServer.RegisterService(&ServiceDesc, h)
}

// RegisterHTTPGateway exposes every RPC as a JSON route on the HTTP server.
// Mutating routes require a bearer token signed with jwtSecret.
func (s *Server) RegisterHTTPGateway(h AddressBookServer, jwtSecret string) error {
	mux, err := NewGatewayMux(h)
	if err != nil {
		return err
	}
	s.httpServer.Handler = auth.HTTPMiddleware(mux, jwtSecret)
	s.httpServer.Addr = s.httpEndpoint
	return nil
}

// NewGatewayMux builds a gateway mux that calls h in-process. Path
// parameters are merged into the JSON body as numbers.
func NewGatewayMux(h AddressBookServer) (*runtime.ServeMux, error) {
	mux := runtime.NewServeMux()
	for _, r := range routes {
		if err := mux.HandlePath(r.httpMethod, r.pattern, gatewayHandler(mux, h, r)); err != nil {
			return nil, fmt.Errorf("register route %s %s: %w", r.httpMethod, r.pattern, err)
		}
	}
	return mux, nil
}

func gatewayHandler(mux *runtime.ServeMux, h AddressBookServer, r route) runtime.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request, pathParams map[string]string) {
		ctx := req.Context()
		inbound, outbound := runtime.MarshalerForRequest(mux, req)

		in := &structpb.Struct{Fields: map[string]*structpb.Value{}}
		if err := inbound.NewDecoder(req.Body).Decode(in); err != nil && !errors.Is(err, io.EOF) {
			runtime.HTTPError(ctx, mux, outbound, w, req, status.Errorf(codes.InvalidArgument, "%v: malformed body", e.ErrInvalidInput))
			return
		}
		if in.Fields == nil {
			in.Fields = map[string]*structpb.Value{}
		}
		// Non-numeric path parameters are passed on as strings and
		// rejected by the handler in its own error order.
		for key, raw := range pathParams {
			if n, err := strconv.Atoi(raw); err == nil {
				in.Fields[key] = structpb.NewNumberValue(float64(n))
			} else {
				in.Fields[key] = structpb.NewStringValue(raw)
			}
		}

		resp, err := r.call(h, ctx, in)
		if err != nil {
			runtime.HTTPError(ctx, mux, outbound, w, req, err)
			return
		}
		runtime.ForwardResponseMessage(ctx, mux, outbound, w, req, resp)
	}
}

// Start runs the gRPC and HTTP servers concurrently, returning on the first error.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.grpcEndpoint)
	if err != nil {
		return fmt.Errorf("gRPC listen error: %w", err)
	}
	return s.Serve(lis)
}

// Serve runs the gRPC server on lis and, when a gateway is registered, the
// HTTP server on its endpoint.
func (s *Server) Serve(lis net.Listener) error {
	var wg sync.WaitGroup
	errChan := make(chan error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.logger.Info("Starting gRPC server", zap.String("endpoint", lis.Addr().String()))
		if err := s.grpcServer.Serve(lis); err != nil {
			errChan <- fmt.Errorf("gRPC serve error: %w", err)
		}
	}()

	if s.httpServer.Handler != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.logger.Info("Starting HTTP server", zap.String("endpoint", s.httpEndpoint))
			if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errChan <- fmt.Errorf("HTTP serve error: %w", err)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(errChan)
	}()

	for err := range errChan {
		if err != nil {
			return err
		}
	}
	return nil
}

// Stop gracefully shuts down both gRPC and HTTP servers.
func (s *Server) Stop() {
	s.logger.Info("Shutting down servers...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.grpcServer.GracefulStop()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	s.logger.Info("Servers stopped")
}
