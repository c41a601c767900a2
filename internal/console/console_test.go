package console

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func newTestConsole(test *testing.T, input string, options ...Option) (*Console, *bytes.Buffer) {
	out := &bytes.Buffer{}
	c, err := New(strings.NewReader(input), out, options...)
	if err != nil {
		test.Fatal("console.New, unexpected error:", err)
	}
	return c, out
}

func TestNew_ErrorCase(test *testing.T) {
	if _, err := New(nil, &bytes.Buffer{}); err == nil {
		test.Error("Expected error for nil input")
	}
	if _, err := New(strings.NewReader(""), nil); err == nil {
		test.Error("Expected error for nil output")
	}
	if _, err := New(strings.NewReader(""), &bytes.Buffer{}, WithRender(Render(42))); err == nil {
		test.Error("Expected error for invalid render")
	}
}

func TestConsole_Prompt(test *testing.T) {
	c, out := newTestConsole(test, "")
	if err := c.Prompt(); err != nil {
		test.Fatal("Unexpected error:", err)
	}
	if out.String() != "input:$ " {
		test.Errorf("Expected prompt %q, actual %q", "input:$ ", out.String())
	}
}

func TestConsole_Print(test *testing.T) {
	cases := []struct {
		render   Render
		payload  []byte
		expected string
	}{
		{RenderText, []byte("hello"), "> hello\n"},
		{RenderText, []byte("hello\r\n"), "> hello\\r\\n\n"},
		{RenderText, []byte("two\nlines"), "> two\\nlines\n"},
		{RenderText, []byte("\x00\x01\x02"), "> \\x00\\x01\\x02\n"},
		{RenderText, []byte("\n"), "> \\n\n"},
		{RenderQuoted, []byte("hello"), "> \"hello\"\n"},
		{RenderQuoted, []byte("a\nb"), "> \"a\\nb\"\n"},
	}
	for _, c := range cases {
		console, out := newTestConsole(test, "", WithRender(c.render))
		if err := console.Print(c.payload); err != nil {
			test.Fatal("Unexpected error:", err)
		}
		if out.String() != c.expected {
			test.Errorf("Print(%q): expected %q, actual %q", c.payload, c.expected, out.String())
		}
	}
}

func TestConsole_Print_splitRune(test *testing.T) {
	c, out := newTestConsole(test, "", WithPrefix("<< "))
	r := []byte("⌘")
	c.Print(append([]byte("a"), r[:1]...))
	c.Print(append(r[1:], 'b'))
	expected := "<< a\n<< ⌘b\n"
	if out.String() != expected {
		test.Errorf("Expected %q, actual %q", expected, out.String())
	}
}

func TestConsole_Drain(test *testing.T) {
	c, out := newTestConsole(test, "")
	c.Print([]byte{'a', 0xe2, 0x82})
	if err := c.Drain(); err != nil {
		test.Fatal("Unexpected error:", err)
	}
	c.Drain()
	expected := "> a\n> \\xe2\\x82\n"
	if out.String() != expected {
		test.Errorf("Expected %q, actual %q", expected, out.String())
	}
}

func TestConsole_ReadLine(test *testing.T) {
	c, _ := newTestConsole(test, "ping\nwin\r\n\nlast")
	expected := []string{"ping", "win", "", "last"}
	for i, e := range expected {
		line, err := c.ReadLine()
		if line != e {
			test.Errorf("Line #%d: expected %q, actual %q", i, e, line)
		}
		if i < len(expected)-1 && err != nil {
			test.Errorf("Line #%d: unexpected error %v", i, err)
		}
		if i == len(expected)-1 && err != io.EOF {
			test.Errorf("Line #%d: expected io.EOF, got %v", i, err)
		}
	}
}

func TestConsole_ReadLine_invalidUTF8(test *testing.T) {
	c, _ := newTestConsole(test, "ok\xff\n")
	line, err := c.ReadLine()
	if err != nil {
		test.Fatal("Unexpected error:", err)
	}
	if line != "ok�" {
		test.Errorf("Expected replacement rune, actual %q", line)
	}
}

func TestConsole_Noticef(test *testing.T) {
	c, out := newTestConsole(test, "")
	c.Noticef("Connected by %s", "127.0.0.1:40000")
	if out.String() != "Connected by 127.0.0.1:40000\n" {
		test.Errorf("Unexpected notice %q", out.String())
	}
}

func TestConsole_Theme(test *testing.T) {
	c, out := newTestConsole(test, "", WithTheme(DefaultTheme()))
	c.Print([]byte("hello"))
	if !strings.Contains(out.String(), ">") || !strings.HasSuffix(out.String(), "hello\n") {
		test.Errorf("Themed output lost content: %q", out.String())
	}
}

func TestParseRender(test *testing.T) {
	for s, expected := range map[string]Render{"": RenderText, "text": RenderText, "quoted": RenderQuoted} {
		r, err := ParseRender(s)
		if err != nil || r != expected {
			test.Errorf("ParseRender(%q) = %v, %v", s, r, err)
		}
	}
	if _, err := ParseRender("hex"); err == nil {
		test.Error("Expected error for unknown render")
	}
}
