package duplex

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Server - accepts single peer and chats with it through the terminal.
type Server struct {
	settings
	terminal Terminal
}

// NewServer - creates server over operator terminal.
func NewServer(terminal Terminal, options ...Option) (*Server, error) {
	if terminal == nil {
		return nil, errors.New("duplex.NewServer: terminal is nil")
	}
	s := &Server{settings: defaultSettings(), terminal: terminal}
	if err := s.setup(options...); err != nil {
		return nil, err
	}
	return s, nil
}

// Serve - waits for a peer on acceptor and runs session with it.
func (srv *Server) Serve(ctx context.Context, acceptor *Acceptor) error {
	if acceptor == nil {
		return errors.New("duplex.Server: acceptor is nil")
	}
	conn, peer, err := acceptor.Accept(ctx)
	if err != nil {
		return err
	}
	srv.log.Info("peer.connected", "peer", peer.String())
	if err := srv.terminal.Noticef("Connected by %s", peer); err != nil {
		conn.Close()
		return fmt.Errorf("duplex.Server: %w", err)
	}
	return srv.Run(ctx, conn)
}

// Run - runs session over established connection, for example dialed one.
func (srv *Server) Run(ctx context.Context, conn net.Conn) error {
	session, err := newSession(conn, srv.terminal, srv.settings)
	if err != nil {
		return err
	}
	return session.Run(ctx)
}
