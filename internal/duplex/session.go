package duplex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/wtask/duplex/pkg/background"
)

// Terminal - operator side of a session.
type Terminal interface {
	// Prompt - invites operator to type next line.
	Prompt() error
	// ReadLine - blocks for one operator line, returned without line terminator.
	ReadLine() (string, error)
	// Print - shows received payload.
	Print(payload []byte) error
	// Drain - shows bytes Print has held back, called once inbound is over.
	Drain() error
	// Noticef - shows service line.
	Noticef(format string, args ...interface{}) error
}

// Session - pair of inbound and outbound loops over single connection.
type Session struct {
	settings
	conn     net.Conn
	terminal Terminal
}

// NewSession - builds session over established connection.
func NewSession(conn net.Conn, terminal Terminal, options ...Option) (*Session, error) {
	s := defaultSettings()
	if err := s.setup(options...); err != nil {
		return nil, err
	}
	return newSession(conn, terminal, s)
}

func newSession(conn net.Conn, terminal Terminal, s settings) (*Session, error) {
	if conn == nil {
		return nil, ErrNilConn
	}
	if terminal == nil {
		return nil, errors.New("duplex.NewSession: terminal is nil")
	}
	return &Session{settings: s, conn: conn, terminal: terminal}, nil
}

// Run - runs both loops and blocks until session ends, the connection is closed on return.
// Returns ErrPeerClosed when peer has gone, ctx.Err() when ctx is cancelled
// or first fatal IO error of any loop.
func (s *Session) Run(ctx context.Context) error {
	scope, cancel := background.NewScope(ctx)
	defer cancel()

	peer := s.conn.RemoteAddr().String()
	s.log.Info("session.started", "peer", peer, "chunk_size", s.chunkSize)

	scope.Go(func(ctx context.Context) error {
		<-ctx.Done()
		// release reader blocked on connection
		s.conn.Close()
		return nil
	})
	scope.Go(s.maintainInbound)
	scope.Go(s.maintainOutbound)

	err := scope.Wait()
	if err == nil {
		err = ctx.Err()
	}
	s.log.Info("session.closed", "peer", peer, "reason", fmt.Sprint(err))
	return err
}

func (s *Session) maintainInbound(ctx context.Context) (err error) {
	defer func() {
		if derr := s.terminal.Drain(); derr != nil && err == nil {
			err = fmt.Errorf("duplex.Session: print: %w", derr)
		}
	}()
	buf := make([]byte, s.chunkSize)
	for {
		n, err := s.conn.Read(buf)
		if n > 0 {
			s.log.Debug("inbound.chunk", "size", n)
			if perr := s.terminal.Print(buf[:n]); perr != nil {
				return fmt.Errorf("duplex.Session: print: %w", perr)
			}
		}
		if err == nil {
			continue
		}
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if errors.Is(err, io.EOF) {
			return ErrPeerClosed
		}
		return fmt.Errorf("duplex.Session: read: %w", err)
	}
}

type operatorLine struct {
	text string
	err  error
}

// readOperator - terminal reads can not be interrupted, so it runs outside of session scope
// and stays blocked on input when session ends.
func (s *Session) readOperator(ctx context.Context, lines chan<- operatorLine) {
	for {
		var line operatorLine
		if line.err = s.terminal.Prompt(); line.err == nil {
			line.text, line.err = s.terminal.ReadLine()
		}
		select {
		case lines <- line:
		case <-ctx.Done():
			return
		}
		if line.err != nil {
			return
		}
	}
}

func (s *Session) maintainOutbound(ctx context.Context) error {
	lines := make(chan operatorLine)
	go s.readOperator(ctx, lines)

	reader := strings.NewReader("")
	for {
		var line operatorLine
		select {
		case line = <-lines:
		case <-ctx.Done():
			return nil
		}
		if line.text != "" {
			reader.Reset(line.text)
			n, err := reader.WriteTo(s.conn)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("duplex.Session: write: %w", err)
			}
			s.log.Debug("outbound.sent", "size", n)
		}
		switch {
		case line.err == nil:
			continue
		case errors.Is(line.err, io.EOF):
			// operator has nothing more to say, but peer still may talk
			s.log.Info("operator.eof")
			return nil
		default:
			return fmt.Errorf("duplex.Session: operator input: %w", line.err)
		}
	}
}
