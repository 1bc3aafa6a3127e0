// Package bitio is a cursor over an immutable byte buffer and a sink onto a
// growing one, generalized from the struct+binary.Read idiom used to parse
// fixed-layout tracker formats to the flag-bitmasked, variable-length
// records a Guitar Pro file is built from.
package bitio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"unicode/utf8"
)

// ErrEndOfInput is returned when a read would advance past the end of the
// buffer.
var ErrEndOfInput = errors.New("end of input")

// ErrMalformedString is returned when a length-prefixed string's length
// exceeds the remaining buffer, or its bytes are not valid UTF-8.
var ErrMalformedString = errors.New("malformed string")

// Reader is a read-only cursor over buf. It never mutates buf.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for reading. buf is not copied; the caller must not
// mutate it while the Reader is in use.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Pos returns the current cursor offset.
func (r *Reader) Pos() int { return r.pos }

// Len returns the number of unread bytes.
func (r *Reader) Len() int { return len(r.buf) - r.pos }

// Seek moves the cursor to an absolute offset.
func (r *Reader) Seek(pos int) error {
	if pos < 0 || pos > len(r.buf) {
		return fmt.Errorf("seek %d: %w", pos, ErrEndOfInput)
	}
	r.pos = pos
	return nil
}

// Skip advances the cursor by n bytes, failing if that runs past the end.
func (r *Reader) Skip(n int) error {
	if n < 0 || r.pos+n > len(r.buf) {
		return fmt.Errorf("skip %d at %d: %w", n, r.pos, ErrEndOfInput)
	}
	r.pos += n
	return nil
}

func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.buf) {
		return nil, fmt.Errorf("read %d at %d: %w", n, r.pos, ErrEndOfInput)
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Bytes reads n raw bytes.
func (r *Reader) Bytes(n int) ([]byte, error) {
	b, err := r.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// U8 reads one unsigned byte.
func (r *Reader) U8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// I8 reads one signed byte.
func (r *Reader) I8() (int8, error) {
	b, err := r.U8()
	return int8(b), err
}

// Bool reads one byte; nonzero is true.
func (r *Reader) Bool() (bool, error) {
	b, err := r.U8()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

// U16 reads a little-endian uint16.
func (r *Reader) U16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// I16 reads a little-endian int16.
func (r *Reader) I16() (int16, error) {
	v, err := r.U16()
	return int16(v), err
}

// U32 reads a little-endian uint32.
func (r *Reader) U32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// I32 reads a little-endian int32.
func (r *Reader) I32() (int32, error) {
	v, err := r.U32()
	return int32(v), err
}

// F32 reads a little-endian IEEE-754 float32.
func (r *Reader) F32() (float32, error) {
	v, err := r.U32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// F64 reads a little-endian IEEE-754 float64.
func (r *Reader) F64() (float64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

// ByteSizeString reads a u8 length prefix followed by that many bytes.
func (r *Reader) ByteSizeString() (string, error) {
	n, err := r.U8()
	if err != nil {
		return "", err
	}
	return r.rawString(int(n))
}

// IntSizeString reads an i32 length prefix followed by that many bytes.
func (r *Reader) IntSizeString() (string, error) {
	n, err := r.I32()
	if err != nil {
		return "", err
	}
	return r.rawString(int(n))
}

// IntByteSizeString reads an i32 of (length+1), then a redundant u8 length,
// then that many bytes. Guitar Pro uses this doubled-length shape for the
// mix-table tempo name and the page-setup header/footer texts.
func (r *Reader) IntByteSizeString() (string, error) {
	if _, err := r.I32(); err != nil {
		return "", err
	}
	n, err := r.U8()
	if err != nil {
		return "", err
	}
	return r.rawString(int(n))
}

// PaddedString reads a u8 length prefix, that many content bytes, then pads
// the cursor out to total bytes (content + pad = total - 1, matching the
// on-wire "Pascal string in a fixed field" shape used for track/instrument
// names).
func (r *Reader) PaddedString(total int) (string, error) {
	n, err := r.U8()
	if err != nil {
		return "", err
	}
	s, err := r.rawString(int(n))
	if err != nil {
		return "", err
	}
	pad := total - 1 - int(n)
	if pad > 0 {
		if err := r.Skip(pad); err != nil {
			return "", err
		}
	}
	return s, nil
}

func (r *Reader) rawString(n int) (string, error) {
	if n < 0 || n > r.Len() {
		return "", fmt.Errorf("string length %d at %d: %w", n, r.pos, ErrMalformedString)
	}
	b, err := r.take(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("invalid utf8 at %d: %w", r.pos-n, ErrMalformedString)
	}
	return string(b), nil
}

// Color reads 3 bytes (R,G,B) then one pad byte, packed as R*65536+G*256+B.
func (r *Reader) Color() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]), nil
}
