package gp

import (
	"testing"

	"github.com/slundi/gogp/bitio"
)

func TestOldChordRoundTrip(t *testing.T) {
	c := &Chord{
		Name:      "Am",
		FirstFret: 0,
		Strings:   []int8{0, 1, 2, 2, 0, -1},
		Length:    6,
	}

	w := bitio.NewWriter()
	encodeChord(w, c)

	r := bitio.NewReader(w.Bytes())
	got, err := decodeChord(r, 6)
	if err != nil {
		t.Fatalf("decodeChord: %v", err)
	}
	if got.Name != "Am" {
		t.Errorf("Name = %q, want Am", got.Name)
	}
	if len(got.Strings) != 6 || got.Strings[1] != 1 || got.Strings[5] != -1 {
		t.Errorf("Strings = %v", got.Strings)
	}
}
