package gp

import (
	"fmt"

	"github.com/slundi/gogp/bitio"
)

// decodeMetadata reads the title/artist/... block, the notices sequence,
// and (v3/v4 only) the triplet-feel flag, tempo, and key that precede the
// channel table.
func decodeMetadata(r *bitio.Reader, v Version, s *Song) error {
	var err error
	if s.Title, err = r.IntSizeString(); err != nil {
		return fmt.Errorf("title: %w", err)
	}
	if s.Subtitle, err = r.IntSizeString(); err != nil {
		return fmt.Errorf("subtitle: %w", err)
	}
	if s.Artist, err = r.IntSizeString(); err != nil {
		return fmt.Errorf("artist: %w", err)
	}
	if s.Album, err = r.IntSizeString(); err != nil {
		return fmt.Errorf("album: %w", err)
	}
	if s.Words, err = r.IntSizeString(); err != nil {
		return fmt.Errorf("words: %w", err)
	}
	if s.Copyright, err = r.IntSizeString(); err != nil {
		return fmt.Errorf("copyright: %w", err)
	}
	if s.Tab, err = r.IntSizeString(); err != nil {
		return fmt.Errorf("tab author: %w", err)
	}
	if s.Instructions, err = r.IntSizeString(); err != nil {
		return fmt.Errorf("instructions: %w", err)
	}

	noticeCount, err := r.I32()
	if err != nil {
		return fmt.Errorf("notice count: %w", err)
	}
	s.Notices = make([]string, noticeCount)
	for i := range s.Notices {
		if s.Notices[i], err = r.IntSizeString(); err != nil {
			return fmt.Errorf("notice %d: %w", i, err)
		}
	}

	if v.Major == 3 || v.Major == 4 {
		triplet, err := r.Bool()
		if err != nil {
			return fmt.Errorf("triplet feel: %w", err)
		}
		if triplet {
			s.TripletFeel = TripletFeelEighth
		}
		if s.Tempo, err = r.I32(); err != nil {
			return fmt.Errorf("tempo: %w", err)
		}
		// Key is stored as a full i32 whose low byte is the signed key
		// value; v4 additionally reads a trailing octave byte.
		key, err := r.I32()
		if err != nil {
			return fmt.Errorf("key: %w", err)
		}
		s.Key = KeySignature{Key: int8(key)}
		if v.Major == 4 {
			if _, err := r.I8(); err != nil { // octave byte, discarded
				return fmt.Errorf("key octave: %w", err)
			}
		}
	}

	return nil
}

func encodeMetadata(w *bitio.Writer, v Version, s *Song) {
	w.IntSizeString(s.Title)
	w.IntSizeString(s.Subtitle)
	w.IntSizeString(s.Artist)
	w.IntSizeString(s.Album)
	w.IntSizeString(s.Words)
	w.IntSizeString(s.Copyright)
	w.IntSizeString(s.Tab)
	w.IntSizeString(s.Instructions)

	w.I32(int32(len(s.Notices)))
	for _, n := range s.Notices {
		w.IntSizeString(n)
	}

	if v.Major == 3 || v.Major == 4 {
		w.Bool(s.TripletFeel == TripletFeelEighth)
		w.I32(s.Tempo)
		w.I32(int32(s.Key.Key))
		if v.Major == 4 {
			w.I8(0) // octave byte
		}
	}
}

// decodeChannels reads the fixed 64-entry MIDI channel table.
func decodeChannels(r *bitio.Reader) ([64]MidiChannel, error) {
	var channels [64]MidiChannel
	for i := 0; i < 64; i++ {
		c := MidiChannel{Channel: i, EffectChannel: i}
		instrument, err := r.I32()
		if err != nil {
			return channels, fmt.Errorf("channel %d instrument: %w", i, err)
		}
		c.Instrument = instrument
		if c.IsPercussion() && c.Instrument == -1 {
			c.Instrument = 0
		}
		vals := make([]int8, 6)
		for j := range vals {
			if vals[j], err = r.I8(); err != nil {
				return channels, fmt.Errorf("channel %d field %d: %w", i, j, err)
			}
		}
		c.Volume, c.Balance, c.Chorus, c.Reverb, c.Phaser, c.Tremolo = vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]
		if err := r.Skip(2); err != nil { // pad
			return channels, fmt.Errorf("channel %d pad: %w", i, err)
		}
		channels[i] = c
	}
	return channels, nil
}

func encodeChannels(w *bitio.Writer, channels [64]MidiChannel) {
	for _, c := range channels {
		w.I32(c.Instrument)
		w.I8(c.Volume)
		w.I8(c.Balance)
		w.I8(c.Chorus)
		w.I8(c.Reverb)
		w.I8(c.Phaser)
		w.I8(c.Tremolo)
		w.U8(0)
		w.U8(0)
	}
}

// measureHeaderFlag bits (spec 4.3).
const (
	mhNumerator         = 0x01
	mhDenominator       = 0x02
	mhRepeatOpen        = 0x04
	mhRepeatClose       = 0x08
	mhRepeatAlternative = 0x10
	mhMarker            = 0x20
	mhKeyChange         = 0x40
	mhDoubleBar         = 0x80
)

// decodeRepeatAlternativeV3 recovers the v3/v4 repeat-alternative bitset.
// The wire byte is not the bitset itself: it is ((1<<n)-1) XOR'd against the
// OR of every alternative bitset already seen back to the matching repeat
// open, so that each new ending only needs to encode the count of endings
// it closes out.
func decodeRepeatAlternativeV3(n uint8, headers []*MeasureHeader) uint8 {
	var existing uint8
	for i := len(headers) - 1; i >= 0; i-- {
		existing |= headers[i].RepeatAlternative
		if headers[i].RepeatOpen {
			break
		}
	}
	return uint8((1<<n)-1) ^ existing
}

// encodeRepeatAlternativeV3 inverts decodeRepeatAlternativeV3: given the
// already-encoded headers back to the matching open, find the n whose
// ((1<<n)-1) XOR existing reproduces alt.
func encodeRepeatAlternativeV3(alt uint8, headers []*MeasureHeader) uint8 {
	var existing uint8
	for i := len(headers) - 1; i >= 0; i-- {
		existing |= headers[i].RepeatAlternative
		if headers[i].RepeatOpen {
			break
		}
	}
	raw := alt ^ existing
	for n := uint8(0); n < 8; n++ {
		if uint8((1<<n)-1) == raw {
			return n
		}
	}
	return raw
}

// decodeMeasureHeaders reads the count-prefixed measure header table,
// inheriting numerator/denominator/key from the prior header when their
// flag bits are unset, and accumulating Start per header.
func decodeMeasureHeaders(r *bitio.Reader, v Version, count int32) ([]*MeasureHeader, error) {
	headers := make([]*MeasureHeader, 0, count)
	var prev *MeasureHeader
	var start int64

	for i := int32(0); i < count; i++ {
		if v.Major == 5 && i > 0 {
			if err := r.Skip(1); err != nil {
				return nil, fmt.Errorf("measure header %d pad: %w", i, err)
			}
		}

		flags, err := r.U8()
		if err != nil {
			return nil, fmt.Errorf("measure header %d flags: %w", i, err)
		}

		h := &MeasureHeader{Number: int(i) + 1, RepeatClose: -1}
		if prev != nil {
			h.TimeSignature = prev.TimeSignature
			h.KeySignature = prev.KeySignature
			h.TripletFeel = prev.TripletFeel
		} else {
			h.TimeSignature.Denominator = NewDuration(4)
		}

		if flags&mhNumerator != 0 {
			n, err := r.I8()
			if err != nil {
				return nil, fmt.Errorf("measure header %d numerator: %w", i, err)
			}
			h.TimeSignature.Numerator = n
		}
		if flags&mhDenominator != 0 {
			den, err := r.I8()
			if err != nil {
				return nil, fmt.Errorf("measure header %d denominator: %w", i, err)
			}
			h.TimeSignature.Denominator = NewDuration(den)
		}

		h.RepeatOpen = flags&mhRepeatOpen != 0

		if flags&mhRepeatClose != 0 {
			n, err := r.I8()
			if err != nil {
				return nil, fmt.Errorf("measure header %d repeat close: %w", i, err)
			}
			if v.Major == 5 {
				h.RepeatClose = n
			} else {
				h.RepeatClose = n - 1
			}
		}

		if flags&mhRepeatAlternative != 0 {
			n, err := r.U8()
			if err != nil {
				return nil, fmt.Errorf("measure header %d repeat alt: %w", i, err)
			}
			if v.Major == 5 {
				h.RepeatAlternative = n
			} else {
				h.RepeatAlternative = decodeRepeatAlternativeV3(n, headers)
			}
		}

		if flags&mhMarker != 0 {
			title, err := r.IntSizeString()
			if err != nil {
				return nil, fmt.Errorf("measure header %d marker title: %w", i, err)
			}
			color, err := r.Color()
			if err != nil {
				return nil, fmt.Errorf("measure header %d marker color: %w", i, err)
			}
			h.Marker = &Marker{Title: title, Color: color}
		}

		if flags&mhKeyChange != 0 {
			key, err := r.I8()
			if err != nil {
				return nil, fmt.Errorf("measure header %d key: %w", i, err)
			}
			minor, err := r.Bool()
			if err != nil {
				return nil, fmt.Errorf("measure header %d key minor: %w", i, err)
			}
			h.KeySignature = KeySignature{Key: key, IsMinor: minor}
		}

		h.DoubleBar = flags&mhDoubleBar != 0

		if v.Major == 5 {
			if flags&mhNumerator != 0 && flags&mhDenominator != 0 {
				for b := 0; b < 4; b++ {
					if h.TimeSignature.Beams[b], err = r.U8(); err != nil {
						return nil, fmt.Errorf("measure header %d beams: %w", i, err)
					}
				}
			} else if prev != nil {
				h.TimeSignature.Beams = prev.TimeSignature.Beams
			}
			if flags&mhRepeatAlternative == 0 {
				if err := r.Skip(1); err != nil {
					return nil, fmt.Errorf("measure header %d pad2: %w", i, err)
				}
			}
			tf, err := r.I8()
			if err != nil {
				return nil, fmt.Errorf("measure header %d triplet feel: %w", i, err)
			}
			if tf != 0 {
				h.TripletFeel = TripletFeelEighth
			} else {
				h.TripletFeel = TripletFeelNone
			}
		}

		h.Start = start
		start += int64(h.TimeSignature.Numerator) * h.TimeSignature.Denominator.Time()

		headers = append(headers, h)
		prev = h
	}

	return headers, nil
}

func encodeMeasureHeaders(w *bitio.Writer, v Version, headers []*MeasureHeader) {
	var prev *MeasureHeader
	for i, h := range headers {
		if v.Major == 5 && i > 0 {
			w.U8(0)
		}

		var flags uint8
		numeratorChanged := prev == nil || h.TimeSignature.Numerator != prev.TimeSignature.Numerator
		denominatorChanged := prev == nil || h.TimeSignature.Denominator != prev.TimeSignature.Denominator
		if numeratorChanged {
			flags |= mhNumerator
		}
		if denominatorChanged {
			flags |= mhDenominator
		}
		if h.RepeatOpen {
			flags |= mhRepeatOpen
		}
		if h.RepeatClose >= 0 {
			flags |= mhRepeatClose
		}
		if h.RepeatAlternative != 0 {
			flags |= mhRepeatAlternative
		}
		if h.Marker != nil {
			flags |= mhMarker
		}
		if h.KeySignature != (KeySignature{}) && (prev == nil || h.KeySignature != prev.KeySignature) {
			flags |= mhKeyChange
		}
		if h.DoubleBar {
			flags |= mhDoubleBar
		}
		w.U8(flags)

		if flags&mhNumerator != 0 {
			w.I8(h.TimeSignature.Numerator)
		}
		if flags&mhDenominator != 0 {
			w.I8(h.TimeSignature.Denominator.Value)
		}
		if flags&mhRepeatClose != 0 {
			if v.Major == 5 {
				w.I8(h.RepeatClose)
			} else {
				w.I8(h.RepeatClose + 1)
			}
		}
		if flags&mhRepeatAlternative != 0 {
			if v.Major == 5 {
				w.U8(h.RepeatAlternative)
			} else {
				w.U8(encodeRepeatAlternativeV3(h.RepeatAlternative, headers[:i]))
			}
		}
		if flags&mhMarker != 0 {
			w.IntSizeString(h.Marker.Title)
			w.Color(h.Marker.Color)
		}
		if flags&mhKeyChange != 0 {
			w.I8(h.KeySignature.Key)
			w.Bool(h.KeySignature.IsMinor)
		}

		if v.Major == 5 {
			if flags&mhNumerator != 0 && flags&mhDenominator != 0 {
				for _, b := range h.TimeSignature.Beams {
					w.U8(b)
				}
			}
			if flags&mhRepeatAlternative == 0 {
				w.U8(0)
			}
			if h.TripletFeel == TripletFeelEighth {
				w.I8(1)
			} else {
				w.I8(0)
			}
		}

		prev = h
	}
}

// decodeDirections reads the v5 19-entry jump-target table.
func decodeDirections(r *bitio.Reader) (Directions, error) {
	var d Directions
	for i := range d {
		v, err := r.I16()
		if err != nil {
			return d, fmt.Errorf("direction %d: %w", i, err)
		}
		d[i] = v
	}
	return d, nil
}

func encodeDirections(w *bitio.Writer, d Directions) {
	for _, v := range d {
		w.I16(v)
	}
}
