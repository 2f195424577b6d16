package socket

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

var (
	// ErrUpgradeRefused is returned when the upgrade-decision hook declines
	// the connection. The dispatcher maps it to a 400 response.
	ErrUpgradeRefused = errors.New("websocket upgrade refused")

	// ErrMissingPath is returned by New when the config has no upgrade path.
	ErrMissingPath = errors.New("websocket config requires an upgrade path")
)

// Config wires the bridge's upgrade path and lifecycle hooks. Only Path is
// required; nil hooks are skipped.
type Config struct {
	// Path is the request path that triggers the upgrade. Requests to it
	// bypass method routing entirely.
	Path string

	// OnUpgrade decides whether to accept the connection. It receives the
	// raw request before the protocol switch; returning false refuses the
	// upgrade, any other result attaches the returned value as the session
	// state. Nil means every request upgrades with no attached state.
	OnUpgrade func(r *http.Request) (any, bool)

	// OnConnected fires once per session after a successful upgrade.
	OnConnected func(s *Session)

	// OnMessage fires for every inbound frame.
	OnMessage func(s *Session, m Message)

	// OnClose fires once when the session's read loop ends.
	OnClose func(s *Session)
}

// Bridge upgrades HTTP requests to WebSocket sessions and pumps their
// inbound frames to the configured hooks. It satisfies the dispatcher's
// Upgrader collaborator interface.
type Bridge struct {
	cfg      Config
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the logger for session diagnostics. The default discards
// everything.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithBufferSizes sets the read and write buffer sizes of the underlying
// upgrader.
func WithBufferSizes(read, write int) Option {
	return func(b *Bridge) {
		b.upgrader.ReadBufferSize = read
		b.upgrader.WriteBufferSize = write
	}
}

// WithCheckOrigin sets the origin policy. The default accepts any origin;
// production deployments should restrict it.
func WithCheckOrigin(check func(r *http.Request) bool) Option {
	return func(b *Bridge) {
		b.upgrader.CheckOrigin = check
	}
}

// New creates a bridge for the given config.
func New(cfg Config, opts ...Option) (*Bridge, error) {
	if cfg.Path == "" {
		return nil, ErrMissingPath
	}

	b := &Bridge{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

// Path returns the configured upgrade path.
func (b *Bridge) Path() string {
	return b.cfg.Path
}

// Upgrade runs the decision hook, switches protocols, and starts the
// session's read loop. On success the connection has left HTTP and no
// response body may be written. A refusal or a failed protocol switch is
// reported as an error for the dispatcher to turn into a 400.
func (b *Bridge) Upgrade(w http.ResponseWriter, r *http.Request) error {
	var state any
	if b.cfg.OnUpgrade != nil {
		attached, ok := b.cfg.OnUpgrade(r)
		if !ok {
			return ErrUpgradeRefused
		}
		state = attached
	}

	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("websocket upgrade: %w", err)
	}

	sess := newSession(conn, state, b.logger)

	b.logger.Info("websocket session opened",
		"session_id", sess.ID(),
		"remote_addr", sess.RemoteAddr(),
	)

	if b.cfg.OnConnected != nil {
		b.cfg.OnConnected(sess)
	}

	go b.readLoop(sess)
	return nil
}

// readLoop pumps inbound frames to the message hook until the connection
// closes. Hooks for one session run sequentially; distinct sessions run
// concurrently.
func (b *Bridge) readLoop(sess *Session) {
	defer func() {
		if p := recover(); p != nil {
			b.logger.Error("websocket hook panicked",
				"session_id", sess.ID(),
				"value", p,
			)
		}
		sess.Close()
		if b.cfg.OnClose != nil {
			b.cfg.OnClose(sess)
		}
		b.logger.Info("websocket session closed", "session_id", sess.ID())
	}()

	for {
		frameType, data, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				b.logger.Debug("websocket read ended",
					"session_id", sess.ID(),
					"error", err,
				)
			}
			return
		}

		if b.cfg.OnMessage != nil {
			b.cfg.OnMessage(sess, newMessage(frameType, data))
		}
	}
}
