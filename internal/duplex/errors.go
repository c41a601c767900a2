package duplex

import "errors"

var (
	// ErrAlreadyAccepted - returns in case if Acceptor has already accepted its single connection.
	// Later connection attempts stay pending in listener queue and are never serviced.
	ErrAlreadyAccepted = errors.New("duplex.Acceptor: connection is accepted already")

	// ErrPeerClosed - returns when the peer has closed its side of connection.
	ErrPeerClosed = errors.New("duplex.Session: peer closed connection")

	// ErrNilConn - returns when session is built over nil connection.
	ErrNilConn = errors.New("duplex.Session: net connection is nil")
)
