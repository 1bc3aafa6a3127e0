package gp

import (
	"fmt"

	"github.com/slundi/gogp/bitio"
)

// decodeEqualizer reads knobCount knob bytes plus one gain byte, shared by
// the RSE master effect (10 knobs) and per-track equalizer (3 knobs)
// blocks. Each byte is unpacked as -value/10.0.
func decodeEqualizer(r *bitio.Reader, knobCount int) (RseEqualizer, error) {
	var eq RseEqualizer
	eq.Knobs = make([]float64, knobCount)
	for i := range eq.Knobs {
		b, err := r.I8()
		if err != nil {
			return eq, fmt.Errorf("equalizer knob %d: %w", i, err)
		}
		eq.Knobs[i] = -float64(b) / 10.0
	}
	gain, err := r.I8()
	if err != nil {
		return eq, fmt.Errorf("equalizer gain: %w", err)
	}
	eq.Gain = -float64(gain) / 10.0
	return eq, nil
}

func encodeEqualizer(w *bitio.Writer, eq RseEqualizer) {
	for _, k := range eq.Knobs {
		w.I8(int8(-k * 10.0))
	}
	w.I8(int8(-eq.Gain * 10.0))
}

// decodeMasterEffect reads the v5.10 song-wide RSE master effect block:
// volume plus a 10-band equalizer.
func decodeMasterEffect(r *bitio.Reader) (RseMasterEffect, error) {
	var m RseMasterEffect
	vol, err := r.I32()
	if err != nil {
		return m, fmt.Errorf("master effect volume: %w", err)
	}
	m.Volume = vol
	eq, err := decodeEqualizer(r, 10)
	if err != nil {
		return m, fmt.Errorf("master effect equalizer: %w", err)
	}
	m.Equalizer = eq
	return m, nil
}

func encodeMasterEffect(w *bitio.Writer, m RseMasterEffect) {
	w.I32(m.Volume)
	eq := m.Equalizer
	if len(eq.Knobs) != 10 {
		eq.Knobs = make([]float64, 10)
	}
	encodeEqualizer(w, eq)
}

// decodeTrackRse reads the v5 trailing per-track RSE block: a humanize
// byte, 15 bytes of unlabeled padding, the RSE instrument fields, and —
// v5.10 only — a 3-band equalizer and instrument effect name/category.
func decodeTrackRse(r *bitio.Reader, v Version) (*TrackRse, error) {
	rse := &TrackRse{}

	humanize, err := r.U8()
	if err != nil {
		return nil, fmt.Errorf("track rse humanize: %w", err)
	}
	rse.Humanize = humanize
	if err := r.Skip(3 + 12); err != nil {
		return nil, fmt.Errorf("track rse pad: %w", err)
	}

	if rse.Instrument, err = r.I32(); err != nil {
		return nil, fmt.Errorf("track rse instrument: %w", err)
	}
	if rse.Unknown1, err = r.I32(); err != nil {
		return nil, fmt.Errorf("track rse unknown: %w", err)
	}
	if rse.SoundBank, err = r.I32(); err != nil {
		return nil, fmt.Errorf("track rse sound bank: %w", err)
	}
	if v.Minor == 0 {
		n, err := r.I16()
		if err != nil {
			return nil, fmt.Errorf("track rse effect number: %w", err)
		}
		rse.EffectNumber = int32(n)
		if err := r.Skip(1); err != nil { // v5.00 pad
			return nil, fmt.Errorf("track rse pad: %w", err)
		}
	} else {
		if rse.EffectNumber, err = r.I32(); err != nil {
			return nil, fmt.Errorf("track rse effect number: %w", err)
		}
	}

	if v.Minor >= 1 {
		eq, err := decodeEqualizer(r, 3)
		if err != nil {
			return nil, fmt.Errorf("track rse equalizer: %w", err)
		}
		rse.Equalizer = eq
		if rse.EffectName, err = r.IntSizeString(); err != nil {
			return nil, fmt.Errorf("track rse effect name: %w", err)
		}
		if rse.EffectCategory, err = r.IntSizeString(); err != nil {
			return nil, fmt.Errorf("track rse effect category: %w", err)
		}
	}

	return rse, nil
}

func encodeTrackRse(w *bitio.Writer, v Version, rse *TrackRse) {
	if rse == nil {
		rse = &TrackRse{}
	}
	w.U8(rse.Humanize)
	w.Raw(make([]byte, 3+12))

	w.I32(rse.Instrument)
	w.I32(rse.Unknown1)
	w.I32(rse.SoundBank)
	if v.Minor == 0 {
		w.I16(int16(rse.EffectNumber))
		w.U8(0)
	} else {
		w.I32(rse.EffectNumber)
	}

	if v.Minor >= 1 {
		eq := rse.Equalizer
		if len(eq.Knobs) != 3 {
			eq.Knobs = make([]float64, 3)
		}
		encodeEqualizer(w, eq)
		w.IntSizeString(rse.EffectName)
		w.IntSizeString(rse.EffectCategory)
	}
}
