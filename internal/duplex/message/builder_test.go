package message

import "testing"

func TestBuilder(test *testing.T) {
	builder := Builder{}
	if s := builder.Flush(); s != "" {
		test.Error("Invalid string has built just after init", s)
	}
	content := []byte("Hello Builder!")
	builder.Write(content)
	cpoint := []byte{226, 140, 152} // ⌘
	// write incomplete unicode sequence
	builder.Write(cpoint[:2])
	if s := builder.Flush(); s != string(content) {
		test.Error("Expected Flush() result:", string(content), "actual:", s)
	}
	// complete the sequence, Builder remembers previous bytes
	builder.Write(cpoint[2:])
	if s := builder.Flush(); s != string(cpoint) {
		test.Error("Expected Flush() result:", string(cpoint), "actual:", s)
	}
	if s := builder.Drain(); s != "" {
		test.Error("Unexpected drained text:", s)
	}
}

func TestBuilder_Escape(test *testing.T) {
	cases := []struct {
		data     []byte
		expected string
	}{
		{[]byte("hello"), "hello"},
		{[]byte("hello world"), "hello world"},
		{[]byte("hello\n"), `hello\n`},
		{[]byte("a\r\n\n\tb"), `a\r\n\n\tb`},
		{[]byte("\x00\x01\x02"), `\x00\x01\x02`},
		{[]byte{'o', 'k', 0xff, '!'}, `ok\xff!`},
		{[]byte(`it's a\b`), `it's a\\b`},
		{[]byte("�"), "�"},
		{[]byte("Hello, 世界"), "Hello, 世界"},
	}
	for _, c := range cases {
		builder := Builder{}
		n, err := builder.Write(c.data)
		if err != nil || n != len(c.data) {
			test.Errorf("Write(%q): n=%d err=%v", c.data, n, err)
		}
		if s := builder.Flush(); s != c.expected {
			test.Errorf("Write(%q): expected %q, actual %q", c.data, c.expected, s)
		}
	}
}

func TestBuilder_Drain(test *testing.T) {
	builder := Builder{}
	builder.Write([]byte{'a', 0xe2, 0x82})
	if s := builder.Flush(); s != "a" {
		test.Error("Expected Flush() result: a, actual:", s)
	}
	if s := builder.Drain(); s != `\xe2\x82` {
		test.Errorf("Expected pending bytes escaped, actual %q", s)
	}
	if s := builder.Drain(); s != "" {
		test.Errorf("Expected nothing after drain, actual %q", s)
	}
}
