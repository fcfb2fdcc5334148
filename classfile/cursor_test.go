package classfile

import (
	"errors"
	"io"
	"math"
	"testing"
)

func TestCursorTake(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3})

	b, err := c.Take(2)
	if err != nil {
		t.Fatalf("Take(2) error: %v", err)
	}
	if b[0] != 1 || b[1] != 2 {
		t.Errorf("Take(2) = %v, want [1 2]", b)
	}

	if _, err := c.Take(2); !errors.Is(err, ErrTruncated) {
		t.Fatalf("Take(2) past end error = %v, want truncated", err)
	}
	if c.Offset() != 2 {
		t.Errorf("failed Take advanced the cursor to %d", c.Offset())
	}

	b, err = c.Take(1)
	if err != nil || b[0] != 3 {
		t.Fatalf("Take(1) = %v, %v", b, err)
	}
	if c.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", c.Remaining())
	}
	if _, err := c.ReadU1(); err != io.EOF {
		t.Errorf("ReadU1 at end = %v, want io.EOF", err)
	}
}

func TestCursorTruncatedOffset(t *testing.T) {
	c := NewCursor([]byte{0xAA, 0xBB, 0xCC})
	if _, err := c.Take(1); err != nil {
		t.Fatal(err)
	}
	_, err := c.Take(4)
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("error %v is not *Error", err)
	}
	if e.Offset != 1 {
		t.Errorf("Offset = %d, want 1", e.Offset)
	}
}

func TestPrimitiveDecoders(t *testing.T) {
	if got := U16([]byte{0x12, 0x34}); got != 0x1234 {
		t.Errorf("U16 = %#x", got)
	}
	if got := I32([]byte{0xFF, 0xFF, 0xFF, 0xFE}); got != -2 {
		t.Errorf("I32 = %d, want -2", got)
	}
	if got := F32([]byte{0x3F, 0x80, 0x00, 0x00}); got != 1.0 {
		t.Errorf("F32 = %v, want 1", got)
	}
	if got := F32([]byte{0x7F, 0xC0, 0x00, 0x00}); !math.IsNaN(float64(got)) {
		t.Errorf("F32 = %v, want NaN", got)
	}
	if got := I64([]byte{0x80, 0, 0, 0, 0, 0, 0, 0}); got != math.MinInt64 {
		t.Errorf("I64 = %d, want MinInt64", got)
	}
	if got := F64([]byte{0xC0, 0x00, 0, 0, 0, 0, 0, 0}); got != -2.0 {
		t.Errorf("F64 = %v, want -2", got)
	}
}
