package gp

import (
	"fmt"

	"github.com/slundi/gogp/bitio"
)

const (
	noteFlagDuration    = 0x01
	noteFlagHeavyAccent = 0x02
	noteFlagGhost       = 0x04
	noteFlagEffects     = 0x08
	noteFlagVelocity    = 0x10
	noteFlagFret        = 0x20
	noteFlagAccent      = 0x40
	noteFlagFingering   = 0x80
)

// decodeBeatNotes reads the per-string bitmask then each present note, in
// string order, resolving Tie notes by searching backward through track's
// already-decoded measures.
func decodeBeatNotes(r *bitio.Reader, v Version, track *Track) ([]*Note, error) {
	mask, err := r.U8()
	if err != nil {
		return nil, fmt.Errorf("note string mask: %w", err)
	}

	var notes []*Note
	for stringIdx := 0; stringIdx < 7; stringIdx++ {
		if mask&(1<<uint(7-stringIdx)) == 0 {
			continue
		}
		n, err := decodeNote(r, v, track, stringIdx+1)
		if err != nil {
			return nil, fmt.Errorf("note string %d: %w", stringIdx+1, err)
		}
		notes = append(notes, n)
	}
	return notes, nil
}

func encodeBeatNotes(w *bitio.Writer, v Version, notes []*Note) {
	var mask uint8
	byString := map[int]*Note{}
	for _, n := range notes {
		byString[n.String] = n
		mask |= 1 << uint(7-(n.String-1))
	}
	w.U8(mask)
	for stringIdx := 0; stringIdx < 7; stringIdx++ {
		n, ok := byString[stringIdx+1]
		if !ok {
			continue
		}
		encodeNote(w, v, n)
	}
}

func decodeNote(r *bitio.Reader, v Version, track *Track, stringNumber int) (*Note, error) {
	flags, err := r.U8()
	if err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}

	n := &Note{String: stringNumber, DurationPercent: 1.0, Kind: NoteKindNormal}

	if flags&noteFlagDuration != 0 {
		if err := r.Skip(2); err != nil { // shadow duration/tuplet code, not retained
			return nil, fmt.Errorf("time-independent duration: %w", err)
		}
	}

	n.Ghost = flags&noteFlagGhost != 0

	// noteFlagHeavyAccent (0x02) gates the kind byte, not a standalone
	// accent state; the source's own heavy-accent field is declared but
	// never populated from the wire, so HeavyAccent stays model-only here.
	kindFlagSet := flags&noteFlagHeavyAccent != 0
	if kindFlagSet {
		kb, err := r.U8()
		if err != nil {
			return nil, fmt.Errorf("kind: %w", err)
		}
		switch kb {
		case 0:
			n.Kind = NoteKindRest
		case 1:
			n.Kind = NoteKindNormal
		case 2:
			n.Kind = NoteKindTie
		case 3:
			n.Kind = NoteKindDead
		default:
			return nil, fmt.Errorf("note kind %d: %w", kb, ErrOutOfRange)
		}
	}

	if flags&noteFlagVelocity != 0 {
		v, err := r.I8()
		if err != nil {
			return nil, fmt.Errorf("velocity: %w", err)
		}
		n.Velocity = UnpackVelocity(v)
	} else {
		n.Velocity = DefaultVelocity
	}

	if flags&noteFlagFret != 0 {
		fret, err := r.I8()
		if err != nil {
			return nil, fmt.Errorf("fret: %w", err)
		}
		if n.Kind == NoteKindTie {
			resolved, ok := resolveTiedNote(track, stringNumber)
			if !ok {
				return nil, fmt.Errorf("tie on string %d with no prior note: %w", stringNumber, ErrInvariantViolation)
			}
			n.Value = resolved
		} else {
			n.Value = fret
		}
	} else if n.Kind == NoteKindTie {
		resolved, ok := resolveTiedNote(track, stringNumber)
		if !ok {
			return nil, fmt.Errorf("tie on string %d with no prior note: %w", stringNumber, ErrInvariantViolation)
		}
		n.Value = resolved
	}
	if n.Value < 0 {
		n.Value = 0
	}
	if n.Value > 99 {
		n.Value = 99
	}

	n.Accent = flags&noteFlagAccent != 0

	if flags&noteFlagFingering != 0 {
		left, err := r.I8()
		if err != nil {
			return nil, fmt.Errorf("fingering left: %w", err)
		}
		right, err := r.I8()
		if err != nil {
			return nil, fmt.Errorf("fingering right: %w", err)
		}
		n.Fingering = &Fingering{Left: left, Right: right}
	}

	if flags&noteFlagEffects != 0 {
		eff, err := decodeNoteEffect(r, v)
		if err != nil {
			return nil, fmt.Errorf("effects: %w", err)
		}
		n.Effect = eff
	}

	return n, nil
}

func encodeNote(w *bitio.Writer, v Version, n *Note) {
	var flags uint8
	if n.Ghost {
		flags |= noteFlagGhost
	}
	// noteFlagHeavyAccent (0x02) doubles as "kind byte follows"; the source's
	// own heavy-accent field is declared but never actually read from or
	// written to the wire, so this bit only ever gates the kind byte here.
	flags |= noteFlagHeavyAccent
	flags |= noteFlagVelocity
	flags |= noteFlagFret
	if n.Accent {
		flags |= noteFlagAccent
	}
	if n.Fingering != nil {
		flags |= noteFlagFingering
	}
	hasEffects := n.Effect.Bend != nil || n.Effect.Grace != nil || n.Effect.HammerPullOff ||
		len(n.Effect.Slide) > 0 || n.Effect.LetRing || n.Effect.Staccato || n.Effect.PalmMute ||
		n.Effect.TremoloPicking != nil || n.Effect.Harmonic != nil || n.Effect.Trill != nil || n.Effect.Vibrato
	if hasEffects {
		flags |= noteFlagEffects
	}
	w.U8(flags)

	var kb uint8
	switch n.Kind {
	case NoteKindRest:
		kb = 0
	case NoteKindNormal:
		kb = 1
	case NoteKindTie:
		kb = 2
	case NoteKindDead:
		kb = 3
	}
	w.U8(kb)

	w.I8(PackVelocity(n.Velocity))
	w.I8(n.Value)

	if n.Fingering != nil {
		w.I8(n.Fingering.Left)
		w.I8(n.Fingering.Right)
	}

	if hasEffects {
		encodeNoteEffect(w, v, n.Effect)
	}
}

// resolveTiedNote walks backward through track's measures (including the
// current, in-progress one), most recent beat first, to find the last
// non-tie note on stringNumber.
func resolveTiedNote(track *Track, stringNumber int) (int8, bool) {
	for mi := len(track.Measures) - 1; mi >= 0; mi-- {
		m := track.Measures[mi]
		if m == nil {
			continue
		}
		for vi := len(m.Voices) - 1; vi >= 0; vi-- {
			voice := m.Voices[vi]
			for bi := len(voice.Beats) - 1; bi >= 0; bi-- {
				beat := voice.Beats[bi]
				for ni := len(beat.Notes) - 1; ni >= 0; ni-- {
					n := beat.Notes[ni]
					if n.String == stringNumber && n.Kind != NoteKindTie {
						return n.Value, true
					}
				}
			}
		}
	}
	return -1, false
}

// decodeNoteEffect reads the two-byte (v4/v5) or one-byte (v3) NoteEffect
// flag block and its payloads.
func decodeNoteEffect(r *bitio.Reader, v Version) (NoteEffect, error) {
	var eff NoteEffect

	b1, err := r.U8()
	if err != nil {
		return eff, fmt.Errorf("byte1: %w", err)
	}

	var b2 uint8
	if v.Major >= 4 {
		b2, err = r.U8()
		if err != nil {
			return eff, fmt.Errorf("byte2: %w", err)
		}
	}

	hasBend := b1&0x01 != 0
	eff.HammerPullOff = b1&0x02 != 0
	hasSlideV3 := b1&0x04 != 0
	eff.LetRing = b1&0x08 != 0
	hasGrace := b1&0x10 != 0

	if hasBend {
		bend, err := decodeBendEffect(r)
		if err != nil {
			return eff, fmt.Errorf("bend: %w", err)
		}
		eff.Bend = bend
	}

	if hasSlideV3 && v.Major == 3 {
		eff.Slide = append(eff.Slide, SlideShiftSlideTo)
	}

	if hasGrace {
		grace, err := decodeGraceEffect(r)
		if err != nil {
			return eff, fmt.Errorf("grace: %w", err)
		}
		eff.Grace = grace
	}

	if v.Major >= 4 {
		eff.Staccato = b2&0x01 != 0
		eff.PalmMute = b2&0x02 != 0

		if b2&0x04 != 0 {
			code, err := r.I8()
			if err != nil {
				return eff, fmt.Errorf("tremolo picking: %w", err)
			}
			eff.TremoloPicking = &TremoloPickingEffect{Duration: code}
		}

		if b2&0x08 != 0 {
			code, err := r.U8()
			if err != nil {
				return eff, fmt.Errorf("slide type: %w", err)
			}
			st, err := slideTypeFromCode(code)
			if err != nil {
				return eff, err
			}
			eff.Slide = append(eff.Slide, st)
		}

		if b2&0x10 != 0 {
			harmonic, err := decodeHarmonicEffect(r)
			if err != nil {
				return eff, fmt.Errorf("harmonic: %w", err)
			}
			eff.Harmonic = harmonic
		}

		if b2&0x20 != 0 {
			fret, err := r.I8()
			if err != nil {
				return eff, fmt.Errorf("trill fret: %w", err)
			}
			dur, err := r.I8()
			if err != nil {
				return eff, fmt.Errorf("trill duration: %w", err)
			}
			eff.Trill = &TrillEffect{Fret: fret, Duration: dur}
		}
	}

	return eff, nil
}

func encodeNoteEffect(w *bitio.Writer, v Version, eff NoteEffect) {
	var b1 uint8
	if eff.Bend != nil {
		b1 |= 0x01
	}
	if eff.HammerPullOff {
		b1 |= 0x02
	}
	hasShiftSlideV3 := false
	for _, s := range eff.Slide {
		if s == SlideShiftSlideTo {
			hasShiftSlideV3 = true
		}
	}
	if v.Major == 3 && hasShiftSlideV3 {
		b1 |= 0x04
	}
	if eff.LetRing {
		b1 |= 0x08
	}
	if eff.Grace != nil {
		b1 |= 0x10
	}

	var b2 uint8
	if v.Major >= 4 {
		if eff.Staccato {
			b2 |= 0x01
		}
		if eff.PalmMute {
			b2 |= 0x02
		}
		if eff.TremoloPicking != nil {
			b2 |= 0x04
		}
		if len(eff.Slide) > 0 && v.Major >= 4 {
			b2 |= 0x08
		}
		if eff.Harmonic != nil {
			b2 |= 0x10
		}
		if eff.Trill != nil {
			b2 |= 0x20
		}
	}

	w.U8(b1)
	if v.Major >= 4 {
		w.U8(b2)
	}

	if eff.Bend != nil {
		encodeBendEffect(w, *eff.Bend)
	}
	if v.Major == 3 {
		// ShiftSlideTo carries no payload beyond the flag bit.
	}
	if eff.Grace != nil {
		encodeGraceEffect(w, *eff.Grace)
	}

	if v.Major >= 4 {
		if eff.TremoloPicking != nil {
			w.I8(eff.TremoloPicking.Duration)
		}
		if len(eff.Slide) > 0 {
			w.U8(slideTypeToCode(eff.Slide[0]))
		}
		if eff.Harmonic != nil {
			encodeHarmonicEffect(w, *eff.Harmonic)
		}
		if eff.Trill != nil {
			w.I8(eff.Trill.Fret)
			w.I8(eff.Trill.Duration)
		}
	}
}

func slideTypeFromCode(code uint8) (SlideType, error) {
	switch int8(code) {
	case -2:
		return SlideIntoFromBelow, nil
	case -1:
		return SlideIntoFromAbove, nil
	case 0:
		return SlideNone, nil
	case 1:
		return SlideShiftSlideTo, nil
	case 2:
		return SlideLegatoSlideTo, nil
	case 3:
		return SlideOutDownwards, nil
	case 4:
		return SlideOutUpwards, nil
	default:
		return SlideNone, fmt.Errorf("slide type %d: %w", int8(code), ErrOutOfRange)
	}
}

func slideTypeToCode(s SlideType) uint8 {
	switch s {
	case SlideIntoFromBelow:
		return 0xFE // -2 as a signed byte
	case SlideIntoFromAbove:
		return 0xFF // -1 as a signed byte
	case SlideShiftSlideTo:
		return 1
	case SlideLegatoSlideTo:
		return 2
	case SlideOutDownwards:
		return 3
	case SlideOutUpwards:
		return 4
	default:
		return 0
	}
}

func decodeBendEffect(r *bitio.Reader) (*BendEffect, error) {
	kind, err := r.I8()
	if err != nil {
		return nil, fmt.Errorf("kind: %w", err)
	}
	if kind < 0 || kind > 11 {
		return nil, fmt.Errorf("bend kind %d: %w", kind, ErrOutOfRange)
	}
	value, err := r.I32()
	if err != nil {
		return nil, fmt.Errorf("value: %w", err)
	}
	count, err := r.I32()
	if err != nil {
		return nil, fmt.Errorf("point count: %w", err)
	}
	if count == 0 {
		return nil, nil
	}

	be := &BendEffect{Kind: BendType(kind), Value: int16(value), SemitoneLength: 1}
	for i := int32(0); i < count; i++ {
		rawPos, err := r.I32()
		if err != nil {
			return nil, fmt.Errorf("point %d position: %w", i, err)
		}
		rawVal, err := r.I32()
		if err != nil {
			return nil, fmt.Errorf("point %d value: %w", i, err)
		}
		vibrato, err := r.Bool()
		if err != nil {
			return nil, fmt.Errorf("point %d vibrato: %w", i, err)
		}
		be.Points = append(be.Points, BendPoint{
			Position: rescaleBendPosition(rawPos),
			Value:    rescaleBendValue(rawVal),
			Vibrato:  vibrato,
		})
	}
	return be, nil
}

func encodeBendEffect(w *bitio.Writer, be BendEffect) {
	w.I8(int8(be.Kind))
	w.I32(int32(be.Value))
	w.I32(int32(len(be.Points)))
	for _, p := range be.Points {
		w.I32(unrescaleBendPosition(p.Position))
		w.I32(unrescaleBendValue(p.Value))
		w.Bool(p.Vibrato)
	}
}

func decodeGraceEffect(r *bitio.Reader) (*GraceEffect, error) {
	fret, err := r.I8()
	if err != nil {
		return nil, fmt.Errorf("fret: %w", err)
	}
	velocity, err := r.U8()
	if err != nil {
		return nil, fmt.Errorf("velocity: %w", err)
	}
	transition, err := r.U8()
	if err != nil {
		return nil, fmt.Errorf("transition: %w", err)
	}
	durCode, err := r.U8()
	if err != nil {
		return nil, fmt.Errorf("duration: %w", err)
	}
	if transition > 3 {
		return nil, fmt.Errorf("grace transition %d: %w", transition, ErrOutOfRange)
	}
	return &GraceEffect{
		Fret:       fret,
		IsDead:     fret == -1,
		Velocity:   UnpackVelocity(int8(velocity)),
		Transition: GraceTransition(transition),
		Duration:   graceDurationFromCode(int8(durCode)),
	}, nil
}

func encodeGraceEffect(w *bitio.Writer, g GraceEffect) {
	w.I8(g.Fret)
	w.U8(uint8(PackVelocity(g.Velocity)))
	w.U8(uint8(g.Transition))
	// Inverse of graceDurationFromCode: d = 7 - log2(duration).
	d := int8(7)
	val := g.Duration
	for val > 1 {
		val >>= 1
		d--
	}
	w.U8(uint8(d))
}

func decodeHarmonicEffect(r *bitio.Reader) (*HarmonicEffect, error) {
	kind, err := r.U8()
	if err != nil {
		return nil, fmt.Errorf("kind: %w", err)
	}
	h := &HarmonicEffect{}
	switch kind {
	case 1:
		h.Kind = HarmonicNatural
	case 2:
		h.Kind = HarmonicArtificial
		just, err := r.I8()
		if err != nil {
			return nil, fmt.Errorf("artificial pitch: %w", err)
		}
		octave, err := r.I8()
		if err != nil {
			return nil, fmt.Errorf("artificial octave: %w", err)
		}
		pc := PitchClass{Just: just}
		h.Pitch = &pc
		h.Octave = octave
	case 3:
		h.Kind = HarmonicTapped
		value, err := r.I8()
		if err != nil {
			return nil, fmt.Errorf("tapped fret: %w", err)
		}
		h.Fret = value + 12
	case 4:
		h.Kind = HarmonicPinch
	case 5:
		h.Kind = HarmonicSemi
	default:
		return nil, fmt.Errorf("harmonic kind %d: %w", kind, ErrOutOfRange)
	}
	return h, nil
}

func encodeHarmonicEffect(w *bitio.Writer, h HarmonicEffect) {
	switch h.Kind {
	case HarmonicNatural:
		w.U8(1)
	case HarmonicArtificial:
		w.U8(2)
		if h.Pitch != nil {
			w.I8(h.Pitch.Just)
		} else {
			w.I8(0)
		}
		w.I8(h.Octave)
	case HarmonicTapped:
		w.U8(3)
		w.I8(h.Fret - 12)
	case HarmonicPinch:
		w.U8(4)
	case HarmonicSemi:
		w.U8(5)
	}
}
