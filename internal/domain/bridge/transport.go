package bridge

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// ErrNoHost is returned when a host transport has no attached connection.
var ErrNoHost = errors.New("no host connection attached")

// Mode selects the transport at start-up.
type Mode string

const (
	// ModeLocal is the web-preview fallback: messages are logged and the
	// widget drives its own navigation.
	ModeLocal Mode = "local"
	// ModeHost posts messages to a connected native host, which drives navigation.
	ModeHost Mode = "host"
)

// ParseMode validates a configured mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLocal, ModeHost:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown bridge mode %q", s)
	}
}

// Transport delivers outbound messages to the host.
type Transport interface {
	Send(msg Outbound) error
	// HostDriven reports whether the host performs navigation and re-rendering.
	HostDriven() bool
}

// Poster writes one encoded message to a host connection.
type Poster interface {
	Post(data []byte) error
}

// LocalTransport logs messages instead of delivering them.
type LocalTransport struct {
	logger *zap.Logger
}

// NewLocalTransport creates the web-preview transport
func NewLocalTransport(logger *zap.Logger) *LocalTransport {
	return &LocalTransport{logger: logger}
}

func (t *LocalTransport) Send(msg Outbound) error {
	data, err := Encode(msg)
	if err != nil {
		return err
	}
	t.logger.Debug("Message to host (web preview)",
		zap.String("type", string(msg.Kind())),
		zap.ByteString("payload", data),
	)
	return nil
}

func (t *LocalTransport) HostDriven() bool { return false }

// HostTransport posts messages to the currently attached host connection.
type HostTransport struct {
	mu     sync.RWMutex
	poster Poster // Protected by mu
}

// NewHostTransport creates a host transport with no connection attached
func NewHostTransport() *HostTransport {
	return &HostTransport{}
}

// Attach makes p the host connection, replacing any previous one.
func (t *HostTransport) Attach(p Poster) {
	t.mu.Lock()
	t.poster = p
	t.mu.Unlock()
}

// Detach removes p if it is still the attached connection.
func (t *HostTransport) Detach(p Poster) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.poster != p {
		return false
	}
	t.poster = nil
	return true
}

// Connected reports whether a host connection is attached
func (t *HostTransport) Connected() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.poster != nil
}

func (t *HostTransport) Send(msg Outbound) error {
	data, err := Encode(msg)
	if err != nil {
		return err
	}

	t.mu.RLock()
	poster := t.poster
	t.mu.RUnlock()

	if poster == nil {
		return ErrNoHost
	}
	if err := poster.Post(data); err != nil {
		return fmt.Errorf("failed to post %s: %w", msg.Kind(), err)
	}
	return nil
}

func (t *HostTransport) HostDriven() bool { return true }
