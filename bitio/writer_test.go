package bitio

import (
	"bytes"
	"testing"
)

func TestWriterRoundTripsReader(t *testing.T) {
	w := NewWriter()
	w.U8(0x2A)
	w.I8(-1)
	w.Bool(true)
	w.U16(0xABCD)
	w.I32(0x12345678)
	w.ByteSizeString("hello")
	w.IntSizeString("world")
	w.Color(0x102030)
	w.PaddedString("abc", 11)

	r := NewReader(w.Bytes())

	if v, _ := r.U8(); v != 0x2A {
		t.Fatalf("U8 = %#x", v)
	}
	if v, _ := r.I8(); v != -1 {
		t.Fatalf("I8 = %d", v)
	}
	if v, _ := r.Bool(); !v {
		t.Fatalf("Bool = %v", v)
	}
	if v, _ := r.U16(); v != 0xABCD {
		t.Fatalf("U16 = %#x", v)
	}
	if v, _ := r.I32(); v != 0x12345678 {
		t.Fatalf("I32 = %#x", v)
	}
	if v, _ := r.ByteSizeString(); v != "hello" {
		t.Fatalf("ByteSizeString = %q", v)
	}
	if v, _ := r.IntSizeString(); v != "world" {
		t.Fatalf("IntSizeString = %q", v)
	}
	if v, _ := r.Color(); v != 0x102030 {
		t.Fatalf("Color = %#x", v)
	}
	if v, _ := r.PaddedString(11); v != "abc" {
		t.Fatalf("PaddedString = %q", v)
	}
}

func TestWriterPaddedStringLength(t *testing.T) {
	w := NewWriter()
	w.PaddedString("abc", 11)
	if got := w.Bytes(); len(got) != 11 {
		t.Fatalf("PaddedString wrote %d bytes; want 11", len(got))
	}
	if !bytes.Equal(w.Bytes()[:4], []byte{3, 'a', 'b', 'c'}) {
		t.Fatalf("PaddedString prefix = %v", w.Bytes()[:4])
	}
}
