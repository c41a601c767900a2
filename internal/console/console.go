// Package console implements the operator side of a duplex session:
// prompt, line input and printing of received payloads.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/wtask/duplex/internal/duplex/message"
)

const (
	DefaultPrompt = "input:$ "
	DefaultPrefix = "> "
)

// Render - the way received payload is printed.
type Render int

const (
	// RenderText - payload is printed as single-line text, non-graphic bytes are escaped.
	RenderText Render = iota
	// RenderQuoted - payload is printed as Go-quoted string.
	RenderQuoted
)

// ParseRender - maps config value to Render.
func ParseRender(s string) (Render, error) {
	switch s {
	case "", "text":
		return RenderText, nil
	case "quoted":
		return RenderQuoted, nil
	}
	return RenderText, fmt.Errorf("console.ParseRender: unknown render %q", s)
}

// Theme - styles applied when console is colored.
type Theme struct {
	Prompt lipgloss.Style
	Prefix lipgloss.Style
	Notice lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Prompt: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Prefix: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Notice: lipgloss.NewStyle().Faint(true),
	}
}

// Console - operator terminal. Writes are serialized, so it is safe to print
// received payloads while another goroutine waits for operator input.
type Console struct {
	mu  sync.Mutex
	out io.Writer
	in  *bufio.Reader

	prompt, prefix string
	render         Render
	theme          *Theme
	text           message.Builder
}

type Option func(c *Console) error

// WithPrompt - overwrites default input prompt.
func WithPrompt(prompt string) Option {
	return func(c *Console) error {
		c.prompt = prompt
		return nil
	}
}

// WithPrefix - overwrites default prefix of received payloads.
func WithPrefix(prefix string) Option {
	return func(c *Console) error {
		c.prefix = prefix
		return nil
	}
}

// WithRender - sets the way received payload is printed.
func WithRender(r Render) Option {
	return func(c *Console) error {
		if r != RenderText && r != RenderQuoted {
			return fmt.Errorf("console.WithRender: invalid render (%d)", r)
		}
		c.render = r
		return nil
	}
}

// WithTheme - enables colored output.
func WithTheme(t Theme) Option {
	return func(c *Console) error {
		c.theme = &t
		return nil
	}
}

// New - builds console over operator input and output.
func New(in io.Reader, out io.Writer, options ...Option) (*Console, error) {
	if in == nil {
		return nil, fmt.Errorf("console.New: input is nil")
	}
	if out == nil {
		return nil, fmt.Errorf("console.New: output is nil")
	}
	c := &Console{
		out:    out,
		in:     bufio.NewReader(in),
		prompt: DefaultPrompt,
		prefix: DefaultPrefix,
	}
	for _, option := range options {
		if option == nil {
			continue
		}
		if err := option(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Console) style(s lipgloss.Style, text string) string {
	if c.theme == nil || text == "" {
		return text
	}
	return s.Render(text)
}

// Prompt - prints input prompt without line break.
func (c *Console) Prompt() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.prompt
	if c.theme != nil {
		p = c.style(c.theme.Prompt, p)
	}
	_, err := io.WriteString(c.out, p)
	return err
}

// ReadLine - blocks for one operator line and returns it without line terminator.
// On end of input the last unterminated line is returned along with io.EOF.
// Invalid UTF-8 is replaced with U+FFFD.
func (c *Console) ReadLine() (string, error) {
	line, err := c.in.ReadString('\n')
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	if !utf8.ValidString(line) {
		line = strings.ToValidUTF8(line, string(utf8.RuneError))
	}
	return line, err
}

// Print - prints received payload in a single write with the prefix.
func (c *Console) Print(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var body string
	switch c.render {
	case RenderQuoted:
		body = strconv.Quote(string(payload))
	default:
		c.text.Write(payload)
		body = c.text.Flush()
	}
	return c.printLine(body)
}

// Drain - prints bytes held back as incomplete UTF-8 sequence, if any.
// Call it when no more payload will come.
func (c *Console) Drain() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	body := c.text.Drain()
	if body == "" {
		return nil
	}
	return c.printLine(body)
}

func (c *Console) printLine(body string) error {
	prefix := c.prefix
	if c.theme != nil {
		prefix = c.style(c.theme.Prefix, prefix)
	}
	_, err := io.WriteString(c.out, prefix+body+"\n")
	return err
}

// Noticef - prints service line, like connection announce.
func (c *Console) Noticef(format string, args ...interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	line := fmt.Sprintf(format, args...)
	if c.theme != nil {
		line = c.style(c.theme.Notice, line)
	}
	_, err := io.WriteString(c.out, line+"\n")
	return err
}
