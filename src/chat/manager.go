// Package chat tracks the connection to a remote agent and the conversation
// held with it.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Turn is one exchange in the conversation log.
type Turn struct {
	User      string    `json:"user"`
	Assistant string    `json:"assistant"`
	At        time.Time `json:"at"`
}

// ConnectOutcome reports the result of Connect or TestConnection.
type ConnectOutcome struct {
	Connected bool   `json:"connected"`
	ToolCount int    `json:"tool_count"`
	Message   string `json:"message"`
}

// SessionStatus describes the manager's current state.
type SessionStatus struct {
	Connected bool     `json:"connected"`
	Endpoint  string   `json:"endpoint,omitempty"`
	ToolCount int      `json:"tool_count"`
	ToolNames []string `json:"tool_names,omitempty"`
	Backend   string   `json:"backend"`
	Turns     int      `json:"turns"`
}

// Manager owns at most one live session and the append-only conversation
// log. All methods are safe for concurrent use and report failures as text.
type Manager struct {
	backend AgentBackend
	logger  *slog.Logger
	now     func() time.Time

	// connMu serializes Connect and Disconnect.
	connMu sync.Mutex

	mu       sync.Mutex
	session  Session
	endpoint string
	turns    []Turn

	busy atomic.Bool
}

// NewManager creates a manager over backend.
func NewManager(backend AgentBackend, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		backend: backend,
		logger:  logger.With("component", "session_manager", "backend", backend.Name()),
		now:     time.Now,
	}
}

// Backend returns the name of the backend in use.
func (m *Manager) Backend() string { return m.backend.Name() }

// Connect replaces the live session with a new one to endpointURL. The old
// session is closed first; if the new one cannot be opened, no session is
// live afterwards.
func (m *Manager) Connect(ctx context.Context, endpointURL string) ConnectOutcome {
	m.connMu.Lock()
	defer m.connMu.Unlock()

	m.teardown()

	sess, err := m.open(ctx, endpointURL)
	if err != nil {
		m.logger.Warn("connect failed", "endpoint", endpointURL, "error", err)
		return ConnectOutcome{Message: Describe(err)}
	}

	m.mu.Lock()
	m.session = sess
	m.endpoint = endpointURL
	m.mu.Unlock()

	tools := sess.ToolNames()
	m.logger.Info("connected", "endpoint", endpointURL, "tools", len(tools))
	return connectedOutcome(sess)
}

// TestConnection opens a probe session to endpointURL and closes it again.
// The live session and the conversation log are left alone.
func (m *Manager) TestConnection(ctx context.Context, endpointURL string) ConnectOutcome {
	sess, err := m.open(ctx, endpointURL)
	if err != nil {
		m.logger.Info("connection test failed", "endpoint", endpointURL, "error", err)
		return ConnectOutcome{Message: Describe(err)}
	}
	outcome := connectedOutcome(sess)
	m.closeSession(sess)
	return outcome
}

// Disconnect closes the live session, if any.
func (m *Manager) Disconnect() {
	m.connMu.Lock()
	defer m.connMu.Unlock()
	m.teardown()
}

// SendMessage runs text through the live session and records the exchange.
// The returned text is exactly what was recorded as the assistant reply.
func (m *Manager) SendMessage(ctx context.Context, text string) string {
	reply, _ := m.Exchange(ctx, text)
	return reply
}

// Exchange is SendMessage that also reports the log length observed when the
// reply was recorded, or the current length when nothing was recorded.
func (m *Manager) Exchange(ctx context.Context, text string) (reply string, turns int) {
	if strings.TrimSpace(text) == "" {
		return Describe(ErrEmptyMessage), m.turnCount()
	}

	if !m.busy.CompareAndSwap(false, true) {
		return Describe(ErrBusy), m.turnCount()
	}
	defer m.busy.Store(false)

	m.mu.Lock()
	sess := m.session
	m.mu.Unlock()
	if sess == nil {
		sess = m.backend.Standby()
	}
	if sess == nil {
		return Describe(ErrNotConnected), m.turnCount()
	}

	start := m.now()
	reply, err := runSession(ctx, sess, text)
	if err != nil {
		m.logger.Warn("agent run failed", "error", err, "duration", time.Since(start))
		reply = Describe(&ExecutionError{Err: err})
	} else {
		m.logger.Debug("agent replied", "duration", time.Since(start), "reply_len", len(reply))
	}

	m.mu.Lock()
	m.turns = append(m.turns, Turn{User: text, Assistant: reply, At: m.now()})
	turns = len(m.turns)
	m.mu.Unlock()

	return reply, turns
}

func (m *Manager) turnCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.turns)
}

// History returns a copy of the conversation log, oldest first.
func (m *Manager) History() []Turn {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Turn, len(m.turns))
	copy(out, m.turns)
	return out
}

// ClearHistory empties the conversation log.
func (m *Manager) ClearHistory() {
	m.mu.Lock()
	m.turns = nil
	m.mu.Unlock()
}

// Status reports the current connection state.
func (m *Manager) Status() SessionStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := SessionStatus{
		Connected: m.session != nil,
		Endpoint:  m.endpoint,
		Backend:   m.backend.Name(),
		Turns:     len(m.turns),
	}
	if m.session != nil {
		st.ToolNames = m.session.ToolNames()
		st.ToolCount = len(st.ToolNames)
	}
	return st
}

// teardown detaches the live session and closes it. Callers hold connMu.
func (m *Manager) teardown() {
	m.mu.Lock()
	sess := m.session
	m.session = nil
	m.endpoint = ""
	m.mu.Unlock()

	if sess != nil {
		m.closeSession(sess)
	}
}

func (m *Manager) closeSession(sess Session) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Warn("panic while closing session", "panic", r)
		}
	}()
	if err := sess.Close(); err != nil {
		m.logger.Warn("error closing session", "error", err)
	}
}

// open asks the backend for a session, converting every failure, including
// a panic, into a *ConnectionError.
func (m *Manager) open(ctx context.Context, endpointURL string) (sess Session, err error) {
	defer func() {
		if r := recover(); r != nil {
			sess, err = nil, &ConnectionError{URL: endpointURL, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	sess, err = m.backend.Connect(ctx, endpointURL)
	if err != nil {
		return nil, &ConnectionError{URL: endpointURL, Err: err}
	}
	if sess == nil {
		return nil, &ConnectionError{URL: endpointURL, Err: fmt.Errorf("backend returned no session")}
	}
	return sess, nil
}

func runSession(ctx context.Context, sess Session, text string) (reply string, err error) {
	defer func() {
		if r := recover(); r != nil {
			reply, err = "", fmt.Errorf("panic: %v", r)
		}
	}()
	return sess.Run(ctx, text)
}

func connectedOutcome(sess Session) ConnectOutcome {
	count := len(sess.ToolNames())
	msg := fmt.Sprintf("✅ Connected successfully! Available tools: %d", count)
	if cm, ok := sess.(connectedMessager); ok {
		msg = cm.ConnectedMessage()
	}
	return ConnectOutcome{Connected: true, ToolCount: count, Message: msg}
}
