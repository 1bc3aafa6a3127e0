package gp

import (
	"fmt"

	"github.com/slundi/gogp/bitio"
)

// Encode serializes a Song back to the bytes its Version's dialect expects.
// The caller is responsible for ensuring Song.Version describes a dialect
// the model can represent; cross-dialect re-encoding is best-effort.
func Encode(s *Song) ([]byte, error) {
	if err := validateForEncode(s); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	w := bitio.NewWriter()
	v := s.Version

	writeVersion(w, v)
	writeClipboard(w, v, s.Clip)
	encodeMetadata(w, v, s)
	encodeChannels(w, s.Channels)

	w.I32(int32(len(s.MeasureHeaders)))
	w.I32(int32(len(s.Tracks)))

	encodeMeasureHeaders(w, v, s.MeasureHeaders)

	if v.Major == 5 {
		encodeDirections(w, s.Directions)
		encodePageSetup(w, s.PageSetup)
		w.I8(s.Key.Key)
		w.Raw([]byte{0, 0, 0, 0})
		encodeLyrics(w, s.Lyrics)
		if v.Minor >= 1 {
			encodeMasterEffect(w, s.MasterEffect)
		}
	}

	for _, t := range s.Tracks {
		encodeTrack(w, v, t)
	}

	if v.Major == 5 {
		w.Raw([]byte{0, 0})
	}

	encodeScoreBody(w, v, s)

	return w.Bytes(), nil
}

func encodeScoreBody(w *bitio.Writer, v Version, s *Song) {
	voicesPerMeasure := 1
	if v.Major == 5 {
		voicesPerMeasure = 2
	}

	for hi := range s.MeasureHeaders {
		for _, track := range s.Tracks {
			measure := measureFor(track, hi)
			for vi := 0; vi < voicesPerMeasure; vi++ {
				var beats []*Beat
				if measure != nil && vi < len(measure.Voices) {
					beats = measure.Voices[vi].Beats
				}
				w.I32(int32(len(beats)))
				encodeVoiceBeats(w, v, beats)
			}
		}
	}
}

func measureFor(track *Track, headerIndex int) *Measure {
	for _, m := range track.Measures {
		if m.HeaderIndex == headerIndex {
			return m
		}
	}
	return nil
}

// validateForEncode surfaces OutOfRange/InvariantViolation per the
// encoder's narrow error contract (spec 7): the model must hold values
// every write path can represent.
func validateForEncode(s *Song) error {
	if s == nil {
		return fmt.Errorf("nil song: %w", ErrInvariantViolation)
	}
	if len(s.MeasureHeaders) == 0 && len(s.Tracks) > 0 {
		for _, t := range s.Tracks {
			if len(t.Measures) != 0 {
				return fmt.Errorf("track %d has measures but song has no headers: %w", t.Number, ErrInvariantViolation)
			}
		}
	}
	for _, t := range s.Tracks {
		if len(t.Measures) != len(s.MeasureHeaders) {
			return fmt.Errorf("track %d has %d measures, want %d: %w", t.Number, len(t.Measures), len(s.MeasureHeaders), ErrInvariantViolation)
		}
		for _, m := range t.Measures {
			for _, voice := range m.Voices {
				for _, b := range voice.Beats {
					for _, n := range b.Notes {
						if n.Value < 0 || n.Value > 99 {
							return fmt.Errorf("track %d note value %d: %w", t.Number, n.Value, ErrOutOfRange)
						}
						if n.String < 1 || n.String > len(t.Strings) {
							return fmt.Errorf("track %d note string %d: %w", t.Number, n.String, ErrOutOfRange)
						}
					}
				}
			}
		}
	}
	return nil
}
