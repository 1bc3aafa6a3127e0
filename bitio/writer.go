package bitio

import (
	"encoding/binary"
	"math"
)

// Writer is an append-only sink mirroring Reader byte-for-byte.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// Raw appends b verbatim.
func (w *Writer) Raw(b []byte) { w.buf = append(w.buf, b...) }

// U8 appends one unsigned byte.
func (w *Writer) U8(v uint8) { w.buf = append(w.buf, v) }

// I8 appends one signed byte.
func (w *Writer) I8(v int8) { w.U8(uint8(v)) }

// Bool appends 0x01 for true, 0x00 for false.
func (w *Writer) Bool(v bool) {
	if v {
		w.U8(1)
	} else {
		w.U8(0)
	}
}

// U16 appends a little-endian uint16.
func (w *Writer) U16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.Raw(b[:])
}

// I16 appends a little-endian int16.
func (w *Writer) I16(v int16) { w.U16(uint16(v)) }

// U32 appends a little-endian uint32.
func (w *Writer) U32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.Raw(b[:])
}

// I32 appends a little-endian int32.
func (w *Writer) I32(v int32) { w.U32(uint32(v)) }

// F32 appends a little-endian IEEE-754 float32.
func (w *Writer) F32(v float32) { w.U32(math.Float32bits(v)) }

// F64 appends a little-endian IEEE-754 float64.
func (w *Writer) F64(v float64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	w.Raw(b[:])
}

// ByteSizeString appends a u8 length prefix then the string bytes.
func (w *Writer) ByteSizeString(s string) {
	w.U8(uint8(len(s)))
	w.Raw([]byte(s))
}

// IntSizeString appends an i32 length prefix then the string bytes.
func (w *Writer) IntSizeString(s string) {
	w.I32(int32(len(s)))
	w.Raw([]byte(s))
}

// IntByteSizeString appends the doubled-length shape: i32(len+1), u8(len),
// bytes.
func (w *Writer) IntByteSizeString(s string) {
	w.I32(int32(len(s) + 1))
	w.U8(uint8(len(s)))
	w.Raw([]byte(s))
}

// PaddedString appends a u8 length, the string bytes, then zero-pads the
// field out to total bytes.
func (w *Writer) PaddedString(s string, total int) {
	w.U8(uint8(len(s)))
	w.Raw([]byte(s))
	pad := total - 1 - len(s)
	for i := 0; i < pad; i++ {
		w.U8(0)
	}
}

// Color appends R,G,B then one pad byte, unpacking packed = R*65536+G*256+B.
func (w *Writer) Color(packed uint32) {
	w.U8(uint8(packed >> 16))
	w.U8(uint8(packed >> 8))
	w.U8(uint8(packed))
	w.U8(0)
}
