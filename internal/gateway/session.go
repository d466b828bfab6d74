package gateway

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"goterm/internal/commands"
	"goterm/internal/executor"
)

// SessionBuilder creates an isolated executor and command registry for one
// session. Each session gets its own working directory and dry run state.
type SessionBuilder func() (*executor.Executor, *commands.Registry, error)

type session struct {
	id       string
	exec     *executor.Executor
	registry *commands.Registry
	lastSeen time.Time
}

// sessionManager tracks live sessions by id.
type sessionManager struct {
	mu       sync.Mutex
	sessions map[string]*session
	build    SessionBuilder
}

func newSessionManager(build SessionBuilder) *sessionManager {
	return &sessionManager{
		sessions: make(map[string]*session),
		build:    build,
	}
}

// get returns the session with the given id, creating a fresh one when the
// id is empty or unknown.
func (m *sessionManager) get(id string) (*session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id != "" {
		if s, ok := m.sessions[id]; ok {
			s.lastSeen = time.Now()
			return s, nil
		}
	}

	exec, registry, err := m.build()
	if err != nil {
		return nil, err
	}
	s := &session{
		id:       uuid.NewString(),
		exec:     exec,
		registry: registry,
		lastSeen: time.Now(),
	}
	m.sessions[s.id] = s
	return s, nil
}

func (m *sessionManager) drop(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

func (m *sessionManager) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// expire drops sessions that have been idle longer than maxIdle and returns
// how many were removed. Websocket sessions are dropped on disconnect and
// never grow old enough to expire.
func (m *sessionManager) expire(maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for id, s := range m.sessions {
		if time.Since(s.lastSeen) > maxIdle {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}
