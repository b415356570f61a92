// Package daemon serves interview sessions over JSON-RPC 2.0 on a Unix
// socket so that several front ends can drive the same sessions.
package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"promptloom/src/database"
	"promptloom/src/graph"
	"promptloom/src/interview"
)

type Server struct {
	store *database.SessionStore
	log   *zap.Logger

	listener   net.Listener
	server     *http.Server
	socketPath string
	started    time.Time

	mu       sync.RWMutex
	graph    *graph.Graph
	sessions map[string]*interview.Engine
}

type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
	ID      interface{}     `json:"id"`
}

type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	Result  interface{} `json:"result,omitempty"`
	Error   *RPCError   `json:"error,omitempty"`
	ID      interface{} `json:"id"`
}

type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return e.Message
}

// JSON-RPC error codes
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternal       = -32603

	CodeNotFound         = -32001
	CodeConflict         = -32002
	CodeStoreUnavailable = -32003
)

// ServerOption configures a Server
type ServerOption func(*Server)

func WithLogger(l *zap.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithStore enables the session.save, session.load and session.list methods
func WithStore(store *database.SessionStore) ServerOption {
	return func(s *Server) { s.store = store }
}

// NewServer creates a JSON-RPC server for sessions over g
func NewServer(g *graph.Graph, socketPath string, opts ...ServerOption) *Server {
	s := &Server{
		graph:      g,
		socketPath: socketPath,
		log:        zap.NewNop(),
		sessions:   make(map[string]*interview.Engine),
		started:    time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetGraph swaps the graph used by sessions created from now on. Open
// sessions keep the graph they started with.
func (s *Server) SetGraph(g *graph.Graph) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph = g
}

func (s *Server) currentGraph() *graph.Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph
}

// Start begins listening for JSON-RPC requests
func (s *Server) Start() error {
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0660); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	s.log.Info("JSON-RPC server listening", zap.String("socket", s.socketPath))

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("JSON-RPC server stopped", zap.Error(err))
		}
	}()
	return nil
}

// Handler returns the HTTP handler serving /rpc
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/rpc", s.handleRPC)
	return mux
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}
	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)

	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// handleRPC processes JSON-RPC requests
func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req JSONRPCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, nil, CodeParseError, "Parse error")
		return
	}

	if req.JSONRPC != "2.0" {
		s.writeError(w, req.ID, CodeInvalidRequest, "Invalid Request")
		return
	}

	result, err := s.routeMethod(r.Context(), req.Method, req.Params)
	if err != nil {
		rpcErr := toRPCError(err)
		if rpcErr.Code == CodeInternal {
			s.log.Warn("rpc failed", zap.String("method", req.Method), zap.Error(err))
		}
		s.writeError(w, req.ID, rpcErr.Code, rpcErr.Message)
		return
	}

	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		Result:  result,
		ID:      req.ID,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// writeError writes a JSON-RPC error response
func (s *Server) writeError(w http.ResponseWriter, id interface{}, code int, message string) {
	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		Error: &RPCError{
			Code:    code,
			Message: message,
		},
		ID: id,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
