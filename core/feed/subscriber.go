package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// State is the lifecycle position of a feed connection.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateSubscribed
	StateReceiving
	StateError
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateSubscribed:
		return "subscribed"
	case StateReceiving:
		return "receiving"
	case StateError:
		return "error"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// ErrClosed is returned by Run once Close has been called.
var ErrClosed = errors.New("feed subscriber closed")

// ErrHandler marks Run errors returned by the Handler rather than the transport.
var ErrHandler = errors.New("feed handler failed")

// Conn is the subset of a websocket connection used by the Subscriber.
// *websocket.Conn satisfies it.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (messageType int, p []byte, err error)
	SetReadDeadline(t time.Time) error
	Close() error
}

// Dialer opens feed connections.
type Dialer interface {
	Dial(ctx context.Context, url string) (Conn, error)
}

// Handler receives decoded sale batches.
// A non-nil error stops the receive loop.
type Handler interface {
	HandleBatch(ctx context.Context, batch SaleBatch) error
}

// WebsocketDialer dials the feed with gorilla/websocket.
type WebsocketDialer struct {
	Dialer *websocket.Dialer
	Header http.Header
}

// NewWebsocketDialer creates a dialer with the configured handshake timeout.
func NewWebsocketDialer(cfg Config) *WebsocketDialer {
	timeout := cfg.HandshakeTimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	return &WebsocketDialer{
		Dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: time.Duration(timeout) * time.Second,
		},
	}
}

func (d *WebsocketDialer) Dial(ctx context.Context, url string) (Conn, error) {
	conn, resp, err := d.Dialer.DialContext(ctx, url, d.Header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("websocket handshake failed with status %d: %w", resp.StatusCode, err)
		}
		return nil, err
	}
	return conn, nil
}

// Subscriber maintains one feed connection at a time, subscribes to the sales channel
// of every world and hands decoded batches to a Handler from a single goroutine.
type Subscriber struct {
	url         string
	readTimeout time.Duration
	dialer      Dialer
	handler     Handler
	logger      *zap.Logger

	state atomic.Int32

	mu      sync.Mutex
	conn    Conn
	closing bool
}

// NewSubscriber creates a subscriber for the configured feed URL.
func NewSubscriber(cfg Config, dialer Dialer, handler Handler, logger *zap.Logger) *Subscriber {
	return &Subscriber{
		url:         cfg.URL,
		readTimeout: time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		dialer:      dialer,
		handler:     handler,
		logger:      logger,
	}
}

// State reports the current connection state.
func (s *Subscriber) State() State {
	return State(s.state.Load())
}

func (s *Subscriber) setState(state State) {
	s.state.Store(int32(state))
}

// Run connects, subscribes to every world and processes frames until the connection
// fails, the handler fails, or Close is called. Cancelling ctx closes the connection.
// Run returns nil after Close and the transport or handler error otherwise.
func (s *Subscriber) Run(ctx context.Context, worlds []int64) error {
	if s.isClosing() {
		return ErrClosed
	}

	s.setState(StateConnecting)
	conn, err := s.dialer.Dial(ctx, s.url)
	if err != nil {
		s.setState(StateError)
		return fmt.Errorf("failed to connect to feed %s: %w", s.url, err)
	}

	s.mu.Lock()
	if s.closing {
		s.mu.Unlock()
		_ = conn.Close()
		s.setState(StateClosed)
		return nil
	}
	s.conn = conn
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.conn = nil
		s.mu.Unlock()
	}()

	stop := context.AfterFunc(ctx, func() { _ = s.Close() })
	defer stop()

	l := s.logger.With(zap.String("conn_id", uuid.NewString()))
	l.Info("Connected to feed", zap.String("url", s.url))

	if err := s.subscribe(conn, worlds, l); err != nil {
		return s.fail(conn, err)
	}
	s.setState(StateSubscribed)

	for {
		if s.readTimeout > 0 {
			if err := conn.SetReadDeadline(time.Now().Add(s.readTimeout)); err != nil {
				return s.fail(conn, fmt.Errorf("failed to set read deadline: %w", err))
			}
		}

		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if s.isClosing() {
				s.setState(StateClosed)
				l.Info("Feed connection closed")
				return nil
			}
			return s.fail(conn, fmt.Errorf("feed read failed: %w", err))
		}
		s.setState(StateReceiving)

		if messageType != websocket.BinaryMessage {
			l.Debug("Ignoring non-binary frame", zap.Int("type", messageType))
			continue
		}

		batch, err := Decode(data)
		if err != nil {
			l.Warn("Dropping undecodable frame", zap.Error(err), zap.Int("bytes", len(data)))
			continue
		}

		if err := s.handler.HandleBatch(ctx, batch); err != nil {
			return s.fail(conn, fmt.Errorf("%w: item %d on world %d: %w", ErrHandler, batch.ItemID, batch.WorldID, err))
		}
	}
}

func (s *Subscriber) subscribe(conn Conn, worlds []int64, l *zap.Logger) error {
	ordered := slices.Clone(worlds)
	slices.Sort(ordered)

	for _, world := range ordered {
		frame, err := EncodeSubscribe(world)
		if err != nil {
			return fmt.Errorf("failed to encode subscription for world %d: %w", world, err)
		}
		if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
			return fmt.Errorf("failed to subscribe to world %d: %w", world, err)
		}
		l.Debug("Subscribed to world", zap.Int64("world_id", world), zap.String("channel", SalesChannel(world)))
	}
	return nil
}

func (s *Subscriber) fail(conn Conn, err error) error {
	if s.isClosing() {
		s.setState(StateClosed)
	} else {
		s.setState(StateError)
	}
	_ = conn.Close()
	return err
}

func (s *Subscriber) isClosing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closing
}

// Close stops the subscriber. An in-progress Run returns once the batch it is
// handling completes; later calls to Run return ErrClosed.
func (s *Subscriber) Close() error {
	s.mu.Lock()
	s.closing = true
	conn := s.conn
	s.mu.Unlock()

	if conn == nil {
		s.setState(StateClosed)
		return nil
	}
	return conn.Close()
}

// Supervise runs the subscriber and reconnects after transport errors, waiting delay
// between attempts. Every reconnect subscribes all worlds again. It returns nil once
// the subscriber is closed or ctx is done, and returns handler errors immediately.
// A zero delay disables reconnects.
func (s *Subscriber) Supervise(ctx context.Context, worlds []int64, delay time.Duration) error {
	for {
		err := s.Run(ctx, worlds)
		switch {
		case err == nil, errors.Is(err, ErrClosed):
			return nil
		case errors.Is(err, ErrHandler), delay <= 0:
			return err
		}

		s.logger.Warn("Feed connection lost, reconnecting", zap.Error(err), zap.Duration("delay", delay))

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			s.setState(StateClosed)
			return nil
		case <-t.C:
		}
	}
}
