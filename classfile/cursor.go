package classfile

import (
	"encoding/binary"
	"io"
	"math"
)

// Cursor consumes an in-memory buffer front to back. It never rewinds.
type Cursor struct {
	data []byte
	off  int
}

func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Offset is the number of bytes consumed so far.
func (c *Cursor) Offset() int { return c.off }

// Remaining is the number of bytes left to consume.
func (c *Cursor) Remaining() int { return len(c.data) - c.off }

// Take consumes exactly n bytes. On a short buffer nothing is consumed and
// a Truncated error is returned.
func (c *Cursor) Take(n int) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, newError(Truncated, c.off, "need %d bytes, %d remain", n, c.Remaining())
	}
	b := c.data[c.off : c.off+n : c.off+n]
	c.off += n
	return b, nil
}

// ReadU1 consumes a single byte. It returns io.EOF, rather than a Truncated
// error, when the buffer is already exhausted.
func (c *Cursor) ReadU1() (uint8, error) {
	if c.Remaining() == 0 {
		return 0, io.EOF
	}
	b := c.data[c.off]
	c.off++
	return b, nil
}

func (c *Cursor) ReadU2() (uint16, error) {
	b, err := c.Take(2)
	if err != nil {
		return 0, err
	}
	return U16(b), nil
}

func U16(b []byte) uint16 {
	return binary.BigEndian.Uint16(b)
}

func U32(b []byte) uint32 {
	return binary.BigEndian.Uint32(b)
}

func I32(b []byte) int32 {
	return int32(binary.BigEndian.Uint32(b))
}

func F32(b []byte) float32 {
	return math.Float32frombits(binary.BigEndian.Uint32(b))
}

func I64(b []byte) int64 {
	return int64(binary.BigEndian.Uint64(b))
}

func F64(b []byte) float64 {
	return math.Float64frombits(binary.BigEndian.Uint64(b))
}
