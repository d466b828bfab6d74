// Package gateway exposes the sandboxed terminal over HTTP and websocket.
// Every remote session runs against its own executor, so working directory
// and dry run state never leak between clients.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"mvdan.cc/sh/v3/shell"

	"goterm/internal/commands"
	"goterm/internal/config"
	"goterm/internal/executor"
	"goterm/internal/history"
	"goterm/internal/monitor"
	"goterm/pkg/logger"
)

// sessionIdleTimeout is how long an HTTP session may sit unused before the
// sweeper reclaims it.
const sessionIdleTimeout = 30 * time.Minute

// Server is the HTTP gateway.
type Server struct {
	cfg        config.GatewayConfig
	httpServer *http.Server
	router     *mux.Router
	sessions   *sessionManager
	metrics    *metrics
	hist       *history.Store
	system     *executor.Executor
	watcher    *monitor.Watcher
	upgrader   websocket.Upgrader
	sweepDone  chan struct{}
}

// NewServer creates a gateway server. build produces per-session executors;
// hist may be nil to disable history recording.
func NewServer(cfg config.GatewayConfig, build SessionBuilder, hist *history.Store) (*Server, error) {
	system, _, err := build()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		router:   mux.NewRouter(),
		sessions: newSessionManager(build),
		metrics:  newMetrics(),
		hist:     hist,
		system:   system,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		sweepDone: make(chan struct{}),
	}

	s.setupRoutes()
	s.httpServer = &http.Server{
		Addr:        cfg.Addr(),
		Handler:     recovery(logging(s.router)),
		ReadTimeout: 60 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	watcher, err := monitor.NewWatcher(system.RecycleDir(), s.updateRecycleGauge)
	if err != nil {
		return nil, err
	}
	s.watcher = watcher
	s.updateRecycleGauge()

	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/api/execute", s.handleExecute).Methods(http.MethodPost)
	s.router.HandleFunc("/api/status", s.handleStatus).Methods(http.MethodGet)
	s.router.HandleFunc("/api/trash", s.handleTrash).Methods(http.MethodGet)
	s.router.HandleFunc("/api/ws", s.handleWS).Methods(http.MethodGet)
	s.router.Handle("/metrics", s.metrics.handler()).Methods(http.MethodGet)
}

// Handler returns the full middleware-wrapped handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins serving and watching the recycle bin. It blocks until the
// server stops.
func (s *Server) Start() error {
	if err := s.watcher.Start(); err != nil {
		logger.Warn().Err(err).Msg("recycle bin watcher unavailable")
	}
	go s.sweepSessions()
	logger.Info().Str("addr", s.cfg.Addr()).Msg("gateway listening")

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	close(s.sweepDone)
	s.watcher.Stop()
	return s.httpServer.Shutdown(ctx)
}

// sweepSessions periodically reclaims idle HTTP sessions so clients that
// never send exit do not pin executors forever.
func (s *Server) sweepSessions() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.sweepDone:
			return
		case <-ticker.C:
			if n := s.sessions.expire(sessionIdleTimeout); n > 0 {
				logger.Debug().Int("expired", n).Msg("reclaimed idle sessions")
				s.metrics.sessions.Set(float64(s.sessions.count()))
			}
		}
	}
}

type executeRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Line      string `json:"line"`
}

type executeResponse struct {
	SessionID string `json:"session_id"`
	Output    string `json:"output"`
	IsError   bool   `json:"is_error"`
	Exited    bool   `json:"exited,omitempty"`
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Line == "" {
		sendError(w, http.StatusBadRequest, "line is required")
		return
	}

	sess, err := s.sessions.get(req.SessionID)
	if err != nil {
		sendError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.metrics.sessions.Set(float64(s.sessions.count()))

	resp := s.dispatch(r.Context(), sess, req.Line)
	if resp.Exited {
		s.sessions.drop(sess.id)
		s.metrics.sessions.Set(float64(s.sessions.count()))
	}
	sendJSON(w, http.StatusOK, resp)
}

// dispatch parses and runs one command line for a session, recording
// history and metrics.
func (s *Server) dispatch(ctx context.Context, sess *session, line string) executeResponse {
	fields, err := shell.Fields(line, nil)
	if err != nil || len(fields) == 0 {
		return executeResponse{SessionID: sess.id, Output: "could not parse command line", IsError: true}
	}

	res, err := sess.registry.Dispatch(ctx, fields[0], fields[1:])
	exited := errors.Is(err, commands.ErrExit)
	if err != nil && !exited {
		res = commands.NewErrorResult(err.Error())
	}

	s.metrics.observeCommand(fields[0], res.IsError)
	if s.hist != nil {
		hErr := s.hist.Append(ctx, history.Entry{
			SessionID: sess.id,
			Line:      line,
			IsError:   res.IsError,
		})
		if hErr != nil {
			logger.Warn().Err(hErr).Msg("history append failed")
		}
	}

	return executeResponse{
		SessionID: sess.id,
		Output:    res.Output,
		IsError:   res.IsError,
		Exited:    exited,
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	stats, err := monitor.Snapshot(s.system.Root(), s.system.RecycleDir())
	if err != nil {
		sendError(w, http.StatusInternalServerError, err.Error())
		return
	}
	sendJSON(w, http.StatusOK, stats)
}

type trashEntry struct {
	Name  string `json:"name"`
	IsDir bool   `json:"is_dir"`
	Size  int64  `json:"size"`
}

func (s *Server) handleTrash(w http.ResponseWriter, r *http.Request) {
	entries, err := s.system.TrashEntries()
	if err != nil {
		sendError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]trashEntry, 0, len(entries))
	for _, entry := range entries {
		te := trashEntry{Name: entry.Name(), IsDir: entry.IsDir()}
		if info, err := entry.Info(); err == nil {
			te.Size = info.Size()
		}
		out = append(out, te)
	}
	sendJSON(w, http.StatusOK, out)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleWS runs an interactive session over a websocket. Each connection
// gets its own session; the connection closes when the client exits.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	sess, err := s.sessions.get("")
	if err != nil {
		conn.WriteJSON(executeResponse{Output: err.Error(), IsError: true})
		return
	}
	defer s.sessions.drop(sess.id)
	s.metrics.sessions.Set(float64(s.sessions.count()))

	for {
		var req executeRequest
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug().Err(err).Msg("websocket read ended")
			}
			return
		}

		resp := s.dispatch(r.Context(), sess, req.Line)
		if err := conn.WriteJSON(resp); err != nil {
			return
		}
		if resp.Exited {
			return
		}
	}
}

func (s *Server) updateRecycleGauge() {
	entries, err := s.system.TrashEntries()
	if err != nil {
		return
	}
	s.metrics.recycleEntries.Set(float64(len(entries)))
}

func sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("encode response failed")
	}
}

func sendError(w http.ResponseWriter, status int, msg string) {
	sendJSON(w, status, map[string]string{"error": msg})
}
