package duplex

import (
	"context"
	"fmt"
	"net"
	"sync"
)

// Acceptor - IPv4 TCP listener which services exactly one connection.
type Acceptor struct {
	settings
	listener net.Listener

	mu        sync.Mutex
	accepted  bool
	connected bool
	closed    bool
}

// Listen - binds address (host:port, empty host means all interfaces) with backlog of 1.
// There is no retry on bind failure.
func Listen(address string, options ...Option) (*Acceptor, error) {
	a := &Acceptor{settings: defaultSettings()}
	if err := a.setup(options...); err != nil {
		return nil, err
	}
	addr, err := net.ResolveTCPAddr("tcp4", address)
	if err != nil {
		return nil, fmt.Errorf("duplex.Listen: %w", err)
	}
	a.listener, err = listenTCP4(addr, DefaultBacklog)
	if err != nil {
		return nil, fmt.Errorf("duplex.Listen: %w", err)
	}
	a.log.Info("listener.bound", "address", a.listener.Addr().String(), "backlog", DefaultBacklog)
	return a, nil
}

// Addr - returns bound address.
func (a *Acceptor) Addr() net.Addr {
	return a.listener.Addr()
}

// Accept - blocks without timeout until a peer connects.
// Only the first call may succeed, next ones return ErrAlreadyAccepted.
// The listener is kept open, so later connection attempts are left pending.
func (a *Acceptor) Accept(ctx context.Context) (net.Conn, net.Addr, error) {
	a.mu.Lock()
	if a.accepted {
		a.mu.Unlock()
		return nil, nil, ErrAlreadyAccepted
	}
	a.accepted = true
	a.mu.Unlock()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			// release blocked Accept, unless the peer is already taken
			a.mu.Lock()
			if !a.connected {
				a.closeListener()
			}
			a.mu.Unlock()
		case <-stop:
		}
	}()

	conn, err := a.listener.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		return nil, nil, fmt.Errorf("duplex.Acceptor: accept: %w", err)
	}
	a.mu.Lock()
	if a.closed {
		// listener was closed while the connection was being accepted
		a.mu.Unlock()
		conn.Close()
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		return nil, nil, fmt.Errorf("duplex.Acceptor: accept: %w", net.ErrClosed)
	}
	a.connected = true
	a.mu.Unlock()
	a.log.Info("peer.accepted", "peer", conn.RemoteAddr().String())
	return conn, conn.RemoteAddr(), nil
}

// Close - closes listener, pending connection attempts are dropped.
// Repeated calls do nothing.
func (a *Acceptor) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closeListener()
}

// closeListener - must be called under a.mu.
func (a *Acceptor) closeListener() error {
	if a.closed {
		return nil
	}
	a.closed = true
	return a.listener.Close()
}
