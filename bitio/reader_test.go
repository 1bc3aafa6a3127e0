package bitio

import (
	"errors"
	"testing"
)

func TestReaderPrimitives(t *testing.T) {
	buf := []byte{0x2A, 0xFF, 0x01, 0xCD, 0xAB, 0x78, 0x56, 0x34, 0x12}
	r := NewReader(buf)

	u8, err := r.U8()
	if err != nil || u8 != 0x2A {
		t.Fatalf("U8() = %v, %v; want 0x2A, nil", u8, err)
	}

	i8, err := r.I8()
	if err != nil || i8 != -1 {
		t.Fatalf("I8() = %v, %v; want -1, nil", i8, err)
	}

	b, err := r.Bool()
	if err != nil || !b {
		t.Fatalf("Bool() = %v, %v; want true, nil", b, err)
	}

	u16, err := r.U16()
	if err != nil || u16 != 0xABCD {
		t.Fatalf("U16() = %#x, %v; want 0xABCD, nil", u16, err)
	}

	i32, err := r.I32()
	if err != nil || i32 != 0x12345678 {
		t.Fatalf("I32() = %#x, %v; want 0x12345678, nil", i32, err)
	}
}

func TestReaderEndOfInput(t *testing.T) {
	r := NewReader([]byte{0x01})
	if _, err := r.I32(); !errors.Is(err, ErrEndOfInput) {
		t.Fatalf("I32() past end = %v; want ErrEndOfInput", err)
	}
}

func TestReaderByteSizeString(t *testing.T) {
	buf := []byte{0x05, 'h', 'e', 'l', 'l', 'o'}
	r := NewReader(buf)
	s, err := r.ByteSizeString()
	if err != nil || s != "hello" {
		t.Fatalf("ByteSizeString() = %q, %v; want \"hello\", nil", s, err)
	}
}

func TestReaderMalformedString(t *testing.T) {
	buf := []byte{0xFF, 0xFF, 0xFF, 0x7F, 'x'} // i32 length way beyond remaining
	r := NewReader(buf)
	if _, err := r.IntSizeString(); !errors.Is(err, ErrMalformedString) {
		t.Fatalf("IntSizeString() = %v; want ErrMalformedString", err)
	}
}

func TestReaderPaddedString(t *testing.T) {
	buf := make([]byte, 1+10)
	buf[0] = 3
	copy(buf[1:], "abc")
	r := NewReader(buf)
	s, err := r.PaddedString(11)
	if err != nil || s != "abc" {
		t.Fatalf("PaddedString() = %q, %v; want \"abc\", nil", s, err)
	}
	if r.Pos() != 11 {
		t.Fatalf("Pos() = %d; want 11", r.Pos())
	}
}

func TestReaderColor(t *testing.T) {
	buf := []byte{0x10, 0x20, 0x30, 0x00}
	r := NewReader(buf)
	c, err := r.Color()
	if err != nil {
		t.Fatalf("Color() error = %v", err)
	}
	want := uint32(0x10)<<16 | uint32(0x20)<<8 | uint32(0x30)
	if c != want {
		t.Fatalf("Color() = %#x; want %#x", c, want)
	}
}
