package gp

import (
	"fmt"

	"github.com/slundi/gogp/bitio"
)

const (
	trackFlagPercussion   = 0x01
	trackFlagTwelveString = 0x02
	trackFlagBanjo        = 0x04
)

// decodeTrack reads one track's header fields (not its measures, which are
// decoded header-major/track-minor by decodeScoreBody).
func decodeTrack(r *bitio.Reader, v Version, number int) (*Track, error) {
	flags, err := r.U8()
	if err != nil {
		return nil, fmt.Errorf("track %d flags: %w", number, err)
	}
	t := &Track{
		Number:      number,
		Percussion:  flags&trackFlagPercussion != 0,
		TwelveString: flags&trackFlagTwelveString != 0,
		Banjo:        flags&trackFlagBanjo != 0,
		Visible:      true,
	}

	if t.Name, err = r.PaddedString(40); err != nil {
		return nil, fmt.Errorf("track %d name: %w", number, err)
	}

	stringCount, err := r.I32()
	if err != nil {
		return nil, fmt.Errorf("track %d string count: %w", number, err)
	}
	if stringCount < 1 || stringCount > 7 {
		return nil, fmt.Errorf("track %d string count %d: %w", number, stringCount, ErrOutOfRange)
	}

	tunings := make([]int32, 7)
	for i := range tunings {
		if tunings[i], err = r.I32(); err != nil {
			return nil, fmt.Errorf("track %d tuning %d: %w", number, i, err)
		}
	}
	t.Strings = make([]TrackString, stringCount)
	for i := 0; i < int(stringCount); i++ {
		t.Strings[i] = TrackString{Index: i + 1, Pitch: int8(tunings[i])}
	}

	port, err := r.I32()
	if err != nil {
		return nil, fmt.Errorf("track %d port: %w", number, err)
	}
	t.Port = port

	channel, err := r.I32()
	if err != nil {
		return nil, fmt.Errorf("track %d channel: %w", number, err)
	}
	t.ChannelIndex = int(channel) - 1

	effectChannel, err := r.I32()
	if err != nil {
		return nil, fmt.Errorf("track %d effect channel: %w", number, err)
	}
	t.EffectChannelIndex = int(effectChannel) - 1

	if t.FretCount, err = r.I32(); err != nil {
		return nil, fmt.Errorf("track %d fret count: %w", number, err)
	}
	if t.Offset, err = r.I32(); err != nil {
		return nil, fmt.Errorf("track %d offset: %w", number, err)
	}
	color, err := r.Color()
	if err != nil {
		return nil, fmt.Errorf("track %d color: %w", number, err)
	}
	t.Color = color

	if v.Major == 5 {
		rse, err := decodeTrackRse(r, v)
		if err != nil {
			return nil, fmt.Errorf("track %d rse: %w", number, err)
		}
		t.Rse = rse
	}

	return t, nil
}

func encodeTrack(w *bitio.Writer, v Version, t *Track) {
	var flags uint8
	if t.Percussion {
		flags |= trackFlagPercussion
	}
	if t.TwelveString {
		flags |= trackFlagTwelveString
	}
	if t.Banjo {
		flags |= trackFlagBanjo
	}
	w.U8(flags)

	w.PaddedString(t.Name, 40)

	w.I32(int32(len(t.Strings)))
	tunings := make([]int32, 7)
	for i, s := range t.Strings {
		if i < 7 {
			tunings[i] = int32(s.Pitch)
		}
	}
	for _, tn := range tunings {
		w.I32(tn)
	}

	w.I32(t.Port)
	w.I32(int32(t.ChannelIndex + 1))
	w.I32(int32(t.EffectChannelIndex + 1))
	w.I32(t.FretCount)
	w.I32(t.Offset)
	w.Color(t.Color)

	if v.Major == 5 {
		encodeTrackRse(w, v, t.Rse)
	}
}

// bindChannel forces percussion when the bound MIDI channel is a percussion
// channel, per the binding invariant in spec 4.4.
func bindChannel(t *Track, channels [64]MidiChannel) {
	if t.ChannelIndex < 0 || t.ChannelIndex >= len(channels) {
		return
	}
	ch := channels[t.ChannelIndex]
	if ch.IsPercussion() {
		t.Percussion = true
	}
}

