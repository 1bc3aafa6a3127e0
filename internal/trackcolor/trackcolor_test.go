package trackcolor

import "testing"

func TestPackedRoundTrip(t *testing.T) {
	for _, packed := range []uint32{0x000000, 0xFF0000, 0x00FF00, 0x123456} {
		c := FromPacked(packed)
		got := ToPacked(c)
		if got != packed {
			t.Errorf("ToPacked(FromPacked(%#06x)) = %#06x", packed, got)
		}
	}
}

func TestSwatchContainsEscape(t *testing.T) {
	s := Swatch(0xFF8000)
	if len(s) == 0 {
		t.Fatal("Swatch returned empty string")
	}
}
