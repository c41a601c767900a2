package duplex

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

const (
	// DefaultChunkSize - max number of bytes taken from connection by a single read.
	DefaultChunkSize = 1024
	// DefaultBacklog - listener queue length for not yet accepted connections.
	DefaultBacklog = 1
)

type settings struct {
	chunkSize int
	log       *slog.Logger
}

// Option - tunes Acceptor, Server or Session.
type Option func(s *settings) error

func defaultSettings() settings {
	return settings{
		chunkSize: DefaultChunkSize,
		log:       slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
}

func (s *settings) setup(options ...Option) error {
	for _, option := range options {
		if option == nil {
			continue
		}
		if err := option(s); err != nil {
			return err
		}
	}
	return nil
}

// WithChunkSize - overwrites default read chunk size of inbound loop.
func WithChunkSize(size int) Option {
	return func(s *settings) error {
		if size <= 0 {
			return fmt.Errorf("duplex.WithChunkSize: invalid size (%d)", size)
		}
		s.chunkSize = size
		return nil
	}
}

// WithLogger - attach structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) error {
		if l == nil {
			return errors.New("duplex.WithLogger: logger is nil")
		}
		s.log = l
		return nil
	}
}
