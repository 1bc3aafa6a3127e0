package gp

import (
	"testing"

	"github.com/slundi/gogp/bitio"
)

func TestBendEffectRoundTrip(t *testing.T) {
	// Raw wire bend block: kind, value, point count, then (position, value,
	// vibrato) per point in un-rescaled wire units.
	w := bitio.NewWriter()
	w.I8(int8(BendBend))
	w.I32(0)
	w.I32(3)
	for _, p := range [][2]int32{{0, 0}, {30, 50}, {60, 0}} {
		w.I32(p[0])
		w.I32(p[1])
		w.Bool(false)
	}

	r := bitio.NewReader(w.Bytes())
	got, err := decodeBendEffect(r)
	if err != nil {
		t.Fatalf("decodeBendEffect: %v", err)
	}
	if got == nil {
		t.Fatal("decodeBendEffect returned nil")
	}

	wantPos := []int8{0, 6, 12}
	wantVal := []int8{0, 2, 0}
	if len(got.Points) != 3 {
		t.Fatalf("points = %d; want 3", len(got.Points))
	}
	for i, p := range got.Points {
		if p.Position != wantPos[i] {
			t.Errorf("point %d position = %d; want %d", i, p.Position, wantPos[i])
		}
		if p.Value != wantVal[i] {
			t.Errorf("point %d value = %d; want %d", i, p.Value, wantVal[i])
		}
	}

	w2 := bitio.NewWriter()
	encodeBendEffect(w2, *got)
	r2 := bitio.NewReader(w2.Bytes())
	back, err := decodeBendEffect(r2)
	if err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	for i, p := range back.Points {
		if p.Position != wantPos[i] || p.Value != wantVal[i] {
			t.Errorf("re-encoded point %d = (%d,%d); want (%d,%d)", i, p.Position, p.Value, wantPos[i], wantVal[i])
		}
	}
}

func TestNoteRoundTripIgnoresHeavyAccent(t *testing.T) {
	v := Version{Major: 4, Minor: 0}
	n := &Note{
		String:      6,
		Value:       5,
		Velocity:    95,
		Kind:        NoteKindNormal,
		Ghost:       true,
		HeavyAccent: true, // has no wire representation; must not round-trip
	}

	w := bitio.NewWriter()
	encodeNote(w, v, n)

	r := bitio.NewReader(w.Bytes())
	got, err := decodeNote(r, v, &Track{Strings: []TrackString{{Index: 6, Pitch: 40}}}, 6)
	if err != nil {
		t.Fatalf("decodeNote: %v", err)
	}
	if !got.Ghost {
		t.Errorf("Ghost = false, want true")
	}
	if got.HeavyAccent {
		t.Errorf("HeavyAccent = true after decode; the bit it would use gates the kind byte, not accent state")
	}
	if got.Kind != NoteKindNormal {
		t.Errorf("Kind = %v, want NoteKindNormal", got.Kind)
	}
}

func TestResolveTiedNote(t *testing.T) {
	track := &Track{Number: 1}
	priorBeat := &Beat{Notes: []*Note{{String: 3, Value: 7, Kind: NoteKindNormal}}}
	voice := &Voice{Beats: []*Beat{priorBeat}}
	measure := &Measure{Voices: []*Voice{voice}}
	track.Measures = append(track.Measures, measure)

	value, ok := resolveTiedNote(track, 3)
	if !ok || value != 7 {
		t.Fatalf("resolveTiedNote = (%d, %v); want (7, true)", value, ok)
	}

	if _, ok := resolveTiedNote(track, 5); ok {
		t.Errorf("resolveTiedNote on unbacked string = true; want false")
	}
}
