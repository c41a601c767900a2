package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/wtask/duplex/internal/console"
)

const (
	DefaultPort      = 5000
	DefaultChunkSize = 1024
	MaxChunkSize     = 64 * 1024

	RenderText   = "text"
	RenderQuoted = "quoted"
)

type Config struct {
	Listen  Listen  `yaml:"listen"`
	Session Session `yaml:"session"`
	Console Console `yaml:"console"`
	Log     Log     `yaml:"log"`
}

type Listen struct {
	// Address - bind address, empty means all IPv4 interfaces.
	Address string `yaml:"address"`
	Port    int    `yaml:"port"`
}

type Session struct {
	// ChunkSize - max number of bytes taken from the connection by a single read.
	ChunkSize int    `yaml:"chunk_size"`
	Render    string `yaml:"render"`
}

type Console struct {
	Prompt string `yaml:"prompt"`
	Prefix string `yaml:"prefix"`
	Color  bool   `yaml:"color"`
}

type Log struct {
	File  string `yaml:"file"`
	Debug bool   `yaml:"debug"`
}

// Error - invalid configuration value or unreadable config file.
type Error struct {
	Path  string
	Field string
	Err   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := "config"
	if e.Path != "" {
		msg += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Default - configuration used when neither file nor flags say otherwise.
func Default() Config {
	return Config{
		Listen:  Listen{Address: "", Port: DefaultPort},
		Session: Session{ChunkSize: DefaultChunkSize, Render: RenderText},
		Console: Console{Prompt: console.DefaultPrompt, Prefix: console.DefaultPrefix},
	}
}

// Load - reads YAML file over defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &Error{Path: path, Err: err}
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, &Error{Path: path, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		var cerr *Error
		if errors.As(err, &cerr) {
			cerr.Path = path
		}
		return cfg, err
	}
	return cfg, nil
}

// Validate - checks values are usable.
func (c Config) Validate() error {
	if c.Listen.Port < 0 || c.Listen.Port > 65535 {
		return &Error{Field: "listen.port", Err: fmt.Errorf("out of range (%d)", c.Listen.Port)}
	}
	if c.Listen.Address != "" {
		ip := net.ParseIP(c.Listen.Address)
		if ip == nil || ip.To4() == nil {
			return &Error{Field: "listen.address", Err: fmt.Errorf("not an IPv4 address (%q)", c.Listen.Address)}
		}
	}
	if c.Session.ChunkSize <= 0 || c.Session.ChunkSize > MaxChunkSize {
		return &Error{
			Field: "session.chunk_size",
			Err:   fmt.Errorf("must be in 1..%d (%d)", MaxChunkSize, c.Session.ChunkSize),
		}
	}
	switch c.Session.Render {
	case RenderText, RenderQuoted:
	default:
		return &Error{Field: "session.render", Err: fmt.Errorf("unknown mode %q", c.Session.Render)}
	}
	return nil
}

// ListenAddress - host:port to bind.
func (c Config) ListenAddress() string {
	return net.JoinHostPort(c.Listen.Address, strconv.Itoa(c.Listen.Port))
}
