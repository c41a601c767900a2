package message

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Builder - implements io.Writer interface to build printable text from raw network chunks.
// Nothing is dropped: non-graphic runes are escaped Go-style (\x00, \n),
// invalid bytes are written as \xNN. An incomplete UTF-8 sequence at the end of a chunk
// is kept until the next Write, so a rune split by the transport is not broken.
type Builder struct {
	pending []byte
	str     strings.Builder
}

func (b *Builder) Write(p []byte) (n int, err error) {
	b.pending = append(b.pending, p...)
	data := b.pending
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size <= 1 {
			if !utf8.FullRune(data) {
				// wait for the rest of sequence
				break
			}
			b.writeByte(data[0])
			data = data[1:]
			continue
		}
		data = data[size:]
		b.writeRune(r)
	}
	b.pending = append(b.pending[:0], data...)
	return len(p), nil
}

func (b *Builder) writeByte(c byte) {
	fmt.Fprintf(&b.str, `\x%02x`, c)
}

func (b *Builder) writeRune(r rune) {
	if r == '\'' {
		b.str.WriteRune(r)
		return
	}
	q := strconv.QuoteRuneToGraphic(r)
	b.str.WriteString(q[1 : len(q)-1])
}

// Flush - returns built string and resets internal builder.
// Pending bytes are kept.
func (b *Builder) Flush() string {
	defer b.str.Reset()
	return b.str.String()
}

// Drain - escapes pending bytes, which will never be completed, and returns the rest of text.
func (b *Builder) Drain() string {
	for _, c := range b.pending {
		b.writeByte(c)
	}
	b.pending = b.pending[:0]
	return b.Flush()
}
