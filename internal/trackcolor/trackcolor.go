// Package trackcolor converts a decoded Track.Color (packed 0xRRGGBB) to and
// from a colorful.Color for swatch-style CLI output.
package trackcolor

import "github.com/lucasb-eyer/go-colorful"

// FromPacked unpacks a 0xRRGGBB color into a colorful.Color.
func FromPacked(packed uint32) colorful.Color {
	r := float64((packed>>16)&0xFF) / 255
	g := float64((packed>>8)&0xFF) / 255
	b := float64(packed&0xFF) / 255
	return colorful.Color{R: r, G: g, B: b}
}

// ToPacked packs a colorful.Color back into 0xRRGGBB, clamping each channel
// to [0,1] first.
func ToPacked(c colorful.Color) uint32 {
	r, g, b := clamp8(c.R), clamp8(c.G), clamp8(c.B)
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}

// Swatch returns the ANSI 24-bit background escape sequence for the color,
// used by the dump tool to print a track's color next to its name.
func Swatch(packed uint32) string {
	c := FromPacked(packed)
	r, g, b := clamp8(c.R), clamp8(c.G), clamp8(c.B)
	return sprintfEsc(r, g, b)
}

func sprintfEsc(r, g, b uint8) string {
	const esc = "\x1b[48;2;"
	return esc + itoa(r) + ";" + itoa(g) + ";" + itoa(b) + "m  \x1b[0m"
}

func itoa(v uint8) string {
	if v == 0 {
		return "0"
	}
	var buf [3]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
