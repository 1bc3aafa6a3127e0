package gp

import (
	"testing"

	"github.com/slundi/gogp/bitio"
)

func TestTrackRseRoundTripV500(t *testing.T) {
	v := Version{Major: 5, Minor: 0}
	rse := &TrackRse{Humanize: 3, Instrument: 25, Unknown1: 1, SoundBank: 0, EffectNumber: 7}

	w := bitio.NewWriter()
	encodeTrackRse(w, v, rse)

	r := bitio.NewReader(w.Bytes())
	got, err := decodeTrackRse(r, v)
	if err != nil {
		t.Fatalf("decodeTrackRse: %v", err)
	}
	if got.Humanize != 3 || got.Instrument != 25 || got.EffectNumber != 7 {
		t.Errorf("got %+v", got)
	}
	if len(got.Equalizer.Knobs) != 0 {
		t.Errorf("v5.00 track equalizer Knobs = %v, want none", got.Equalizer.Knobs)
	}
}

func TestTrackRseRoundTripV510(t *testing.T) {
	v := Version{Major: 5, Minor: 1}
	rse := &TrackRse{
		Humanize: 1, Instrument: 30, Unknown1: 1, SoundBank: 2, EffectNumber: 9,
		Equalizer:      RseEqualizer{Knobs: []float64{0.1, -0.2, 0.3}, Gain: 0.5},
		EffectName:     "Overdrive",
		EffectCategory: "Distortion",
	}

	w := bitio.NewWriter()
	encodeTrackRse(w, v, rse)

	r := bitio.NewReader(w.Bytes())
	got, err := decodeTrackRse(r, v)
	if err != nil {
		t.Fatalf("decodeTrackRse: %v", err)
	}
	if len(got.Equalizer.Knobs) != 3 {
		t.Fatalf("Knobs = %v, want 3 entries", got.Equalizer.Knobs)
	}
	if got.EffectName != "Overdrive" || got.EffectCategory != "Distortion" {
		t.Errorf("effect name/category = %q/%q", got.EffectName, got.EffectCategory)
	}
}

func TestMultiTrackV5DoesNotMisalignCursor(t *testing.T) {
	v := Version{Major: 5, Minor: 1}

	w := bitio.NewWriter()
	encodeTrackRse(w, v, &TrackRse{Humanize: 1})
	encodeTrackRse(w, v, &TrackRse{Humanize: 2, Instrument: 11})

	r := bitio.NewReader(w.Bytes())
	first, err := decodeTrackRse(r, v)
	if err != nil {
		t.Fatalf("first decodeTrackRse: %v", err)
	}
	second, err := decodeTrackRse(r, v)
	if err != nil {
		t.Fatalf("second decodeTrackRse: %v", err)
	}
	if first.Humanize != 1 || second.Humanize != 2 || second.Instrument != 11 {
		t.Errorf("cursor misaligned: first=%+v second=%+v", first, second)
	}
}
