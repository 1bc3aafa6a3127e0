package gp

import (
	"fmt"
	"math"

	"github.com/slundi/gogp/bitio"
)

const (
	beatFlagDotted     = 0x01
	beatFlagChord      = 0x02
	beatFlagText       = 0x04
	beatFlagEffects    = 0x08
	beatFlagMixTable   = 0x10
	beatFlagTuplet     = 0x20
	beatFlagNonNormal  = 0x40
)

// decodeVoiceBeats reads one voice's beat sequence, merging duplicate
// starts per the beat-lookup rule. Each beat starts where the previous one's
// consumed time ends.
func decodeVoiceBeats(r *bitio.Reader, v Version, track *Track, voice *Voice, beatCount int32, start int64) error {
	cursor := start
	for i := int32(0); i < beatCount; i++ {
		consumed, err := decodeBeat(r, v, track, voice, cursor)
		if err != nil {
			return fmt.Errorf("beat %d: %w", i, err)
		}
		cursor += consumed
	}
	return nil
}

func decodeBeat(r *bitio.Reader, v Version, track *Track, voice *Voice, start int64) (int64, error) {
	flags, err := r.U8()
	if err != nil {
		return 0, fmt.Errorf("flags: %w", err)
	}

	beat := findOrAppendBeat(voice, start)

	beat.Status = BeatStatusNormal
	if flags&beatFlagNonNormal != 0 {
		sb, err := r.U8()
		if err != nil {
			return 0, fmt.Errorf("status: %w", err)
		}
		switch sb {
		case 0:
			beat.Status = BeatStatusEmpty
		case 1:
			beat.Status = BeatStatusNormal
		case 2:
			beat.Status = BeatStatusRest
		default:
			return 0, fmt.Errorf("beat status %d: %w", sb, ErrOutOfRange)
		}
	}

	durCode, err := r.I8()
	if err != nil {
		return 0, fmt.Errorf("duration: %w", err)
	}
	dur := NewDuration(durationCodeToValue(durCode))
	dur.Dotted = flags&beatFlagDotted != 0

	if flags&beatFlagTuplet != 0 {
		code, err := r.I32()
		if err != nil {
			return 0, fmt.Errorf("tuplet: %w", err)
		}
		enters, times, err := tupletCodeToRatio(code)
		if err != nil {
			return 0, err
		}
		dur.Enters, dur.Times = enters, times
	} else {
		dur.Enters, dur.Times = 1, 1
	}
	beat.Duration = dur

	if flags&beatFlagChord != 0 {
		chord, err := decodeChord(r, len(track.Strings))
		if err != nil {
			return 0, fmt.Errorf("chord: %w", err)
		}
		beat.Effects.Chord = chord
	}

	if flags&beatFlagText != 0 {
		text, err := r.IntSizeString()
		if err != nil {
			return 0, fmt.Errorf("text: %w", err)
		}
		beat.Text = text
	}

	if flags&beatFlagEffects != 0 {
		if v.Major == 3 {
			if err := decodeBeatEffectsV3(r, beat); err != nil {
				return 0, fmt.Errorf("v3 effects: %w", err)
			}
		} else {
			if err := decodeBeatEffectsV4(r, beat, v.Major == 5); err != nil {
				return 0, fmt.Errorf("v4 effects: %w", err)
			}
		}
	}

	if flags&beatFlagMixTable != 0 {
		mtc, err := decodeMixTableChange(r, v)
		if err != nil {
			return 0, fmt.Errorf("mix table change: %w", err)
		}
		beat.Effects.MixTableChange = mtc
	}

	notes, err := decodeBeatNotes(r, v, track)
	if err != nil {
		return 0, fmt.Errorf("notes: %w", err)
	}
	beat.Notes = notes

	if v.Major == 5 {
		if err := decodeBeatDisplayV5(r, beat); err != nil {
			return 0, fmt.Errorf("v5 display: %w", err)
		}
	}

	if beat.Status == BeatStatusEmpty {
		return 0, nil
	}
	return beat.Duration.Time(), nil
}

func findOrAppendBeat(voice *Voice, start int64) *Beat {
	for i := len(voice.Beats) - 1; i >= 0; i-- {
		if voice.Beats[i].Start == start {
			return voice.Beats[i]
		}
	}
	b := &Beat{Start: start}
	voice.Beats = append(voice.Beats, b)
	return b
}

func encodeVoiceBeats(w *bitio.Writer, v Version, beats []*Beat) {
	for _, b := range beats {
		encodeBeat(w, v, b)
	}
}

func encodeBeat(w *bitio.Writer, v Version, beat *Beat) {
	var flags uint8
	if beat.Duration.Dotted {
		flags |= beatFlagDotted
	}
	if beat.Effects.Chord != nil {
		flags |= beatFlagChord
	}
	if beat.Text != "" {
		flags |= beatFlagText
	}
	hasEffects := beatHasEffects(beat)
	if hasEffects {
		flags |= beatFlagEffects
	}
	if beat.Effects.MixTableChange != nil {
		flags |= beatFlagMixTable
	}
	isTuplet := beat.Duration.Enters != 1 || beat.Duration.Times != 1
	if isTuplet {
		flags |= beatFlagTuplet
	}
	if beat.Status != BeatStatusNormal {
		flags |= beatFlagNonNormal
	}
	w.U8(flags)

	if flags&beatFlagNonNormal != 0 {
		w.U8(uint8(beat.Status))
	}

	code, err := durationValueToCode(beat.Duration.Value)
	if err != nil {
		code = 0
	}
	w.I8(code)

	if isTuplet {
		w.I32(tupletRatioToCode(beat.Duration.Enters))
	}

	if flags&beatFlagChord != 0 {
		encodeChord(w, beat.Effects.Chord)
	}
	if flags&beatFlagText != 0 {
		w.IntSizeString(beat.Text)
	}
	if hasEffects {
		if v.Major == 3 {
			encodeBeatEffectsV3(w, beat)
		} else {
			encodeBeatEffectsV4(w, beat, v.Major == 5)
		}
	}
	if beat.Effects.MixTableChange != nil {
		encodeMixTableChange(w, v, beat.Effects.MixTableChange)
	}

	encodeBeatNotes(w, v, beat.Notes)

	if v.Major == 5 {
		encodeBeatDisplayV5(w, beat)
	}
}

func beatHasEffects(beat *Beat) bool {
	e := beat.Effects
	return e.Vibrato || e.WideVibrato || e.NaturalHarmonic || e.ArtificialHarmonic ||
		e.FadeIn || e.Slap != SlapNone || e.TremoloBar != nil || e.Stroke != nil ||
		e.HasRasgueado || e.PickStroke != VoiceDirectionNone
}

func decodeBeatEffectsV3(r *bitio.Reader, beat *Beat) error {
	flags, err := r.U8()
	if err != nil {
		return err
	}
	beat.Effects.Vibrato = flags&0x01 != 0
	beat.Effects.WideVibrato = flags&0x02 != 0
	beat.Effects.NaturalHarmonic = flags&0x04 != 0
	beat.Effects.ArtificialHarmonic = flags&0x08 != 0
	beat.Effects.FadeIn = flags&0x10 != 0

	if flags&0x20 != 0 {
		sel, err := r.U8()
		if err != nil {
			return err
		}
		if sel == 0 {
			depth, err := r.I32()
			if err != nil {
				return err
			}
			beat.Effects.TremoloBar = synthesizeDipBend(depth)
		} else {
			switch sel {
			case 1:
				beat.Effects.Slap = SlapTapping
			case 2:
				beat.Effects.Slap = SlapSlapping
			case 3:
				beat.Effects.Slap = SlapPopping
			default:
				return fmt.Errorf("slap code %d: %w", sel, ErrOutOfRange)
			}
			if _, err := r.I32(); err != nil { // discarded
				return err
			}
		}
	}

	if flags&0x40 != 0 {
		stroke, err := decodeBeatStroke(r, false)
		if err != nil {
			return err
		}
		beat.Effects.Stroke = stroke
	}

	return nil
}

func encodeBeatEffectsV3(w *bitio.Writer, beat *Beat) {
	e := beat.Effects
	var flags uint8
	if e.Vibrato {
		flags |= 0x01
	}
	if e.WideVibrato {
		flags |= 0x02
	}
	if e.NaturalHarmonic {
		flags |= 0x04
	}
	if e.ArtificialHarmonic {
		flags |= 0x08
	}
	if e.FadeIn {
		flags |= 0x10
	}
	if e.TremoloBar != nil || e.Slap != SlapNone {
		flags |= 0x20
	}
	if e.Stroke != nil {
		flags |= 0x40
	}
	w.U8(flags)

	if flags&0x20 != 0 {
		if e.TremoloBar != nil {
			w.U8(0)
			w.I32(dipBendToDepth(e.TremoloBar))
		} else {
			switch e.Slap {
			case SlapTapping:
				w.U8(1)
			case SlapSlapping:
				w.U8(2)
			case SlapPopping:
				w.U8(3)
			}
			w.I32(0)
		}
	}
	if flags&0x40 != 0 {
		encodeBeatStroke(w, *e.Stroke, false)
	}
}

func decodeBeatEffectsV4(r *bitio.Reader, beat *Beat, swapStroke bool) error {
	b1, err := r.U8()
	if err != nil {
		return err
	}
	b2, err := r.U8()
	if err != nil {
		return err
	}

	beat.Effects.WideVibrato = b1&0x02 != 0
	beat.Effects.FadeIn = b1&0x10 != 0

	if b1&0x20 != 0 {
		code, err := r.I8()
		if err != nil {
			return err
		}
		switch code {
		case 1:
			beat.Effects.Slap = SlapTapping
		case 2:
			beat.Effects.Slap = SlapSlapping
		case 3:
			beat.Effects.Slap = SlapPopping
		}
	}

	if b1&0x40 != 0 {
		stroke, err := decodeBeatStroke(r, swapStroke)
		if err != nil {
			return err
		}
		beat.Effects.Stroke = stroke
	}

	beat.Effects.HasRasgueado = b2&0x01 != 0

	if b2&0x02 != 0 {
		dir, err := r.I8()
		if err != nil {
			return err
		}
		if dir != 0 {
			beat.Effects.PickStroke = VoiceDirectionUp
		} else {
			beat.Effects.PickStroke = VoiceDirectionDown
		}
	}

	if b2&0x04 != 0 {
		bend, err := decodeBendEffect(r)
		if err != nil {
			return err
		}
		beat.Effects.TremoloBar = bend
	}

	return nil
}

func encodeBeatEffectsV4(w *bitio.Writer, beat *Beat, swapStroke bool) {
	e := beat.Effects
	var b1, b2 uint8
	if e.WideVibrato {
		b1 |= 0x02
	}
	if e.FadeIn {
		b1 |= 0x10
	}
	if e.Slap != SlapNone {
		b1 |= 0x20
	}
	if e.Stroke != nil {
		b1 |= 0x40
	}
	if e.HasRasgueado {
		b2 |= 0x01
	}
	if e.PickStroke != VoiceDirectionNone {
		b2 |= 0x02
	}
	if e.TremoloBar != nil {
		b2 |= 0x04
	}
	w.U8(b1)
	w.U8(b2)

	if b1&0x20 != 0 {
		switch e.Slap {
		case SlapTapping:
			w.I8(1)
		case SlapSlapping:
			w.I8(2)
		case SlapPopping:
			w.I8(3)
		}
	}
	if b1&0x40 != 0 {
		encodeBeatStroke(w, *e.Stroke, swapStroke)
	}
	if b2&0x02 != 0 {
		if e.PickStroke == VoiceDirectionUp {
			w.I8(1)
		} else {
			w.I8(0)
		}
	}
	if b2&0x04 != 0 {
		encodeBendEffect(w, *e.TremoloBar)
	}
}

// decodeBeatStroke reads the down/up speed pair. v5 swaps the stored
// direction on both read and write.
func decodeBeatStroke(r *bitio.Reader, swapV5 bool) (*BeatStroke, error) {
	down, err := r.I8()
	if err != nil {
		return nil, err
	}
	up, err := r.I8()
	if err != nil {
		return nil, err
	}

	stroke := &BeatStroke{}
	switch {
	case up != 0:
		stroke.Direction = VoiceDirectionUp
		stroke.Value = NewDuration(strokeValueFromRaw(up))
	case down != 0:
		stroke.Direction = VoiceDirectionDown
		stroke.Value = NewDuration(strokeValueFromRaw(down))
	}
	if swapV5 {
		if stroke.Direction == VoiceDirectionUp {
			stroke.Direction = VoiceDirectionDown
		} else if stroke.Direction == VoiceDirectionDown {
			stroke.Direction = VoiceDirectionUp
		}
	}
	return stroke, nil
}

func encodeBeatStroke(w *bitio.Writer, s BeatStroke, swapV5 bool) {
	dir := s.Direction
	if swapV5 {
		if dir == VoiceDirectionUp {
			dir = VoiceDirectionDown
		} else if dir == VoiceDirectionDown {
			dir = VoiceDirectionUp
		}
	}
	var down, up int8
	switch dir {
	case VoiceDirectionDown:
		down = 1
	case VoiceDirectionUp:
		up = 1
	}
	w.I8(down)
	w.I8(up)
}

// synthesizeDipBend builds the three-point Dip bend used to represent a v3
// tremolo bar: (0,0), (6, round(-value/25)), (12,0).
func synthesizeDipBend(value int32) *BendEffect {
	mid := int8(math.Round(-float64(value) / 25.0))
	return &BendEffect{
		Kind:           BendDip,
		SemitoneLength: 1,
		Points: []BendPoint{
			{Position: 0, Value: 0},
			{Position: 6, Value: mid},
			{Position: 12, Value: 0},
		},
	}
}

func dipBendToDepth(b *BendEffect) int32 {
	if len(b.Points) < 2 {
		return 0
	}
	return int32(math.Round(-float64(b.Points[1].Value) * 25.0))
}

const (
	beatV5FlagBreakBeam       = 0x0001
	beatV5FlagBeamDown        = 0x0002
	beatV5FlagForceBeam       = 0x0004
	beatV5FlagBeamUp          = 0x0008
	beatV5FlagOttava          = 0x0010
	beatV5FlagOttavaBassa     = 0x0020
	beatV5FlagTupletStart     = 0x0200
	beatV5FlagTupletEnd       = 0x0400
	beatV5FlagBreakSecondary  = 0x0800
	beatV5FlagQuindicesima    = 0x0100
	beatV5FlagBreakSecTuplet  = 0x1000
	beatV5FlagForceBracket    = 0x2000
)

func decodeBeatDisplayV5(r *bitio.Reader, beat *Beat) error {
	flags, err := r.I16()
	if err != nil {
		return err
	}
	f := uint16(flags)

	d := &beat.Display
	d.BreakBeam = f&beatV5FlagBreakBeam != 0
	d.ForceBeam = f&beatV5FlagForceBeam != 0
	switch {
	case f&beatV5FlagBeamDown != 0:
		d.BeamDirection = VoiceDirectionDown
	case f&beatV5FlagBeamUp != 0:
		d.BeamDirection = VoiceDirectionUp
	}

	switch {
	case f&beatV5FlagOttava != 0:
		beat.Octave = OctaveOttava
	case f&beatV5FlagOttavaBassa != 0:
		beat.Octave = OctaveOttavaBassa
	case f&0x0040 != 0:
		beat.Octave = OctaveQuindicesima
	case f&beatV5FlagQuindicesima != 0:
		beat.Octave = OctaveQuindicesimaBassa
	}

	d.TupletBracketOpen = f&beatV5FlagTupletStart != 0
	d.TupletBracketClose = f&beatV5FlagTupletEnd != 0
	d.BreakSecondaryTuplet = f&beatV5FlagBreakSecTuplet != 0
	d.ForceBracket = f&beatV5FlagForceBracket != 0

	if f&beatV5FlagBreakSecondary != 0 {
		d.BreakSecondary = true
		count, err := r.U8()
		if err != nil {
			return err
		}
		d.BreakSecondaryCount = count
	}

	return nil
}

func encodeBeatDisplayV5(w *bitio.Writer, beat *Beat) {
	d := beat.Display
	var f uint16
	if d.BreakBeam {
		f |= beatV5FlagBreakBeam
	}
	if d.ForceBeam {
		f |= beatV5FlagForceBeam
	}
	if d.BeamDirection == VoiceDirectionDown {
		f |= beatV5FlagBeamDown
	} else if d.BeamDirection == VoiceDirectionUp {
		f |= beatV5FlagBeamUp
	}
	switch beat.Octave {
	case OctaveOttava:
		f |= beatV5FlagOttava
	case OctaveOttavaBassa:
		f |= beatV5FlagOttavaBassa
	case OctaveQuindicesima:
		f |= 0x0040
	case OctaveQuindicesimaBassa:
		f |= beatV5FlagQuindicesima
	}
	if d.TupletBracketOpen {
		f |= beatV5FlagTupletStart
	}
	if d.TupletBracketClose {
		f |= beatV5FlagTupletEnd
	}
	if d.BreakSecondary {
		f |= beatV5FlagBreakSecondary
	}
	if d.BreakSecondaryTuplet {
		f |= beatV5FlagBreakSecTuplet
	}
	if d.ForceBracket {
		f |= beatV5FlagForceBracket
	}
	w.I16(int16(f))
	if d.BreakSecondary {
		w.U8(d.BreakSecondaryCount)
	}
}
