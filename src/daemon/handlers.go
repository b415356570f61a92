package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"promptloom/src/database"
	perrors "promptloom/src/errors"
	"promptloom/src/graph"
	"promptloom/src/interview"
	"promptloom/src/session"
)

// routeMethod routes JSON-RPC methods to their handlers
func (s *Server) routeMethod(ctx context.Context, method string, params json.RawMessage) (interface{}, error) {
	switch method {
	case "session.create":
		return s.handleSessionCreate(params)
	case "session.apply":
		return s.handleSessionApply(params)
	case "session.state":
		return s.handleSessionState(params)
	case "session.preview":
		return s.handleSessionPreview(params)
	case "session.summary":
		return s.handleSessionSummary(params)
	case "session.weights":
		return s.handleSessionWeights(params)
	case "session.save":
		return s.handleSessionSave(ctx, params)
	case "session.load":
		return s.handleSessionLoad(ctx, params)
	case "session.list":
		return s.handleSessionList(ctx)
	case "session.close":
		return s.handleSessionClose(params)
	case "graph.node":
		return s.handleGraphNode(params)
	case "status.get":
		return s.handleStatusGet()
	default:
		return nil, &RPCError{Code: CodeMethodNotFound, Message: "Method not found"}
	}
}

// toRPCError maps domain errors onto JSON-RPC error codes
func toRPCError(err error) *RPCError {
	var rpcErr *RPCError
	switch {
	case errors.As(err, &rpcErr):
		return rpcErr
	case perrors.IsNotFound(err):
		return &RPCError{Code: CodeNotFound, Message: err.Error()}
	case errors.Is(err, perrors.ErrSessionExists):
		return &RPCError{Code: CodeConflict, Message: err.Error()}
	case errors.Is(err, perrors.ErrInvalidInput), errors.Is(err, perrors.ErrInvalidEvent):
		return &RPCError{Code: CodeInvalidParams, Message: err.Error()}
	default:
		return &RPCError{Code: CodeInternal, Message: err.Error()}
	}
}

func decodeParams(params json.RawMessage, v interface{}) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return &RPCError{Code: CodeInvalidParams, Message: "Invalid params"}
	}
	return nil
}

// SessionParams addresses an open session
type SessionParams struct {
	SessionID string `json:"session_id"`
}

func (s *Server) engine(params json.RawMessage) (*interview.Engine, string, error) {
	var p SessionParams
	if err := decodeParams(params, &p); err != nil {
		return nil, "", err
	}
	s.mu.RLock()
	e, ok := s.sessions[p.SessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", perrors.ErrSessionNotFound, p.SessionID)
	}
	return e, p.SessionID, nil
}

// open registers a new engine under id, generating one when id is empty
func (s *Server) open(id string, opts ...interview.Option) (string, *interview.Engine, error) {
	if id == "" {
		id = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[id]; exists {
		return "", nil, fmt.Errorf("%w: %s", perrors.ErrSessionExists, id)
	}
	opts = append([]interview.Option{interview.WithLogger(s.log.With(zap.String("session", id)))}, opts...)
	e := interview.New(s.graph, opts...)
	s.sessions[id] = e
	return id, e, nil
}

// SessionView is the state a front end needs to render the current screen
type SessionView struct {
	SessionID           string       `json:"session_id"`
	Node                *graph.Node  `json:"node,omitempty"`
	Refinement          *graph.Node  `json:"refinement,omitempty"`
	History             []string     `json:"history"`
	Finished            bool         `json:"finished"`
	CanGoToNext         bool         `json:"can_go_to_next"`
	CanAdd              bool         `json:"can_add"`
	ShowIntensitySlider bool         `json:"show_intensity_slider"`
	Intensity           float64      `json:"intensity"`
	Version             int64        `json:"version"`
	Preview             previewReply `json:"preview"`
}

type previewReply struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt"`
}

func viewOf(id string, e *interview.Engine) SessionView {
	v := SessionView{
		SessionID:           id,
		History:             e.History(),
		Finished:            e.IsFinished(),
		CanGoToNext:         e.CanGoToNext(),
		CanAdd:              e.CanAdd(),
		ShowIntensitySlider: e.ShowIntensitySlider(),
		Intensity:           e.CurrentIntensity(),
		Version:             e.Snapshot().Version,
	}
	if n, ok := e.CurrentNode(); ok {
		v.Node = n
	}
	if r, ok := e.CurrentRefinement(); ok {
		v.Refinement = &r
	}
	res := e.PreviewPrompt()
	v.Preview = previewReply{Prompt: res.Prompt, NegativePrompt: res.NegativePrompt}
	return v
}

// SessionCreateParams names the new session; empty generates an id
type SessionCreateParams struct {
	SessionID string `json:"session_id,omitempty"`
}

func (s *Server) handleSessionCreate(params json.RawMessage) (interface{}, error) {
	var p SessionCreateParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	id, e, err := s.open(strings.TrimSpace(p.SessionID))
	if err != nil {
		return nil, err
	}
	s.log.Info("session created", zap.String("session", id))
	return viewOf(id, e), nil
}

// SessionApplyParams carries one interview event
type SessionApplyParams struct {
	SessionID string          `json:"session_id"`
	Event     interview.Event `json:"event"`
}

func (s *Server) handleSessionApply(params json.RawMessage) (interface{}, error) {
	var p SessionApplyParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	e, id, err := s.engine(params)
	if err != nil {
		return nil, err
	}
	applied, err := e.Apply(p.Event)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"applied": applied,
		"view":    viewOf(id, e),
	}, nil
}

func (s *Server) handleSessionState(params json.RawMessage) (interface{}, error) {
	e, _, err := s.engine(params)
	if err != nil {
		return nil, err
	}
	return e.Snapshot(), nil
}

func (s *Server) handleSessionPreview(params json.RawMessage) (interface{}, error) {
	e, _, err := s.engine(params)
	if err != nil {
		return nil, err
	}
	return e.PreviewPrompt(), nil
}

func (s *Server) handleSessionSummary(params json.RawMessage) (interface{}, error) {
	e, _, err := s.engine(params)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"selections": e.SelectionSummary(),
	}, nil
}

func (s *Server) handleSessionWeights(params json.RawMessage) (interface{}, error) {
	e, _, err := s.engine(params)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"weights":               e.ActiveWeights(),
		"intensity":             e.CurrentIntensity(),
		"show_intensity_slider": e.ShowIntensitySlider(),
		"intensity_enabled":     e.Snapshot().EnabledSliders[session.IntensityID],
	}, nil
}

func (s *Server) requireStore() error {
	if s.store == nil {
		return &RPCError{Code: CodeStoreUnavailable, Message: "session store is not configured"}
	}
	return nil
}

// SessionSaveParams saves an open session under Name, defaulting to its id
type SessionSaveParams struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name,omitempty"`
}

func (s *Server) handleSessionSave(ctx context.Context, params json.RawMessage) (interface{}, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}
	var p SessionSaveParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	e, id, err := s.engine(params)
	if err != nil {
		return nil, err
	}
	name := p.Name
	if name == "" {
		name = id
	}

	state := e.Snapshot()
	if err := s.store.Save(ctx, name, state, e.PreviewPrompt()); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"status":  "saved",
		"name":    name,
		"version": state.Version,
	}, nil
}

// SessionLoadParams opens a saved session. SessionID defaults to Name.
type SessionLoadParams struct {
	Name      string `json:"name"`
	SessionID string `json:"session_id,omitempty"`
}

func (s *Server) handleSessionLoad(ctx context.Context, params json.RawMessage) (interface{}, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}
	var p SessionLoadParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if p.Name == "" {
		return nil, &RPCError{Code: CodeInvalidParams, Message: "name is required"}
	}

	state, err := s.store.Load(ctx, p.Name)
	if err != nil {
		return nil, err
	}
	g := s.currentGraph()
	if !g.Has(state.CurrentNodeID) {
		return nil, fmt.Errorf("%w: saved position %s", perrors.ErrNodeNotFound, state.CurrentNodeID)
	}

	id := p.SessionID
	if id == "" {
		id = p.Name
	}
	id, e, err := s.open(id, interview.WithState(state))
	if err != nil {
		return nil, err
	}
	return viewOf(id, e), nil
}

// SessionListReply lists open sessions and, with a store, saved ones
type SessionListReply struct {
	Open  []string               `json:"open"`
	Saved []database.SessionInfo `json:"saved,omitempty"`
}

func (s *Server) handleSessionList(ctx context.Context) (interface{}, error) {
	var reply SessionListReply
	s.mu.RLock()
	for id := range s.sessions {
		reply.Open = append(reply.Open, id)
	}
	s.mu.RUnlock()
	sort.Strings(reply.Open)

	if s.store != nil {
		saved, err := s.store.List(ctx)
		if err != nil {
			return nil, err
		}
		reply.Saved = saved
	}
	return reply, nil
}

func (s *Server) handleSessionClose(params json.RawMessage) (interface{}, error) {
	var p SessionParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	s.mu.Lock()
	_, ok := s.sessions[p.SessionID]
	delete(s.sessions, p.SessionID)
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", perrors.ErrSessionNotFound, p.SessionID)
	}
	s.log.Info("session closed", zap.String("session", p.SessionID))
	return map[string]interface{}{"status": "closed"}, nil
}

// GraphNodeParams looks up a node by id
type GraphNodeParams struct {
	NodeID string `json:"node_id"`
}

func (s *Server) handleGraphNode(params json.RawMessage) (interface{}, error) {
	var p GraphNodeParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	n, ok := s.currentGraph().Node(p.NodeID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", perrors.ErrNodeNotFound, p.NodeID)
	}
	return n, nil
}

func (s *Server) handleStatusGet() (interface{}, error) {
	s.mu.RLock()
	open := len(s.sessions)
	nodes := s.graph.Len()
	s.mu.RUnlock()

	return map[string]interface{}{
		"daemon":   "running",
		"sessions": open,
		"nodes":    nodes,
		"store":    s.store != nil,
		"uptime":   time.Since(s.started).Round(time.Second).String(),
	}, nil
}
