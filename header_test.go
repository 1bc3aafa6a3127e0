package gp

import (
	"testing"

	"github.com/slundi/gogp/bitio"
)

func TestRepeatAlternativeV3RoundTrip(t *testing.T) {
	open := &MeasureHeader{Number: 1, RepeatOpen: true}

	// First ending: wire count 1 against no prior alternatives in the group.
	n1 := encodeRepeatAlternativeV3(1, []*MeasureHeader{open})
	if n1 != 1 {
		t.Fatalf("encode first ending n = %d, want 1", n1)
	}
	got1 := decodeRepeatAlternativeV3(n1, []*MeasureHeader{open})
	if got1 != 1 {
		t.Errorf("decode first ending = %d, want bitset 1", got1)
	}

	// Second ending: builds on the first, which must be distinguishable as
	// its own bit rather than colliding with the first ending's bit.
	first := &MeasureHeader{Number: 2, RepeatAlternative: got1}
	n2 := encodeRepeatAlternativeV3(2, []*MeasureHeader{open, first})
	got2 := decodeRepeatAlternativeV3(n2, []*MeasureHeader{open, first})
	if got2 != 2 {
		t.Errorf("decode second ending = %d, want bitset 2", got2)
	}
	if got2 == got1 {
		t.Errorf("second ending bitset %d collided with first ending bitset %d", got2, got1)
	}
}

func TestChannelTableRoundTrip(t *testing.T) {
	var channels [64]MidiChannel
	for i := range channels {
		channels[i] = MidiChannel{Channel: i, EffectChannel: i, Instrument: 24, Volume: 100, Balance: 64}
	}
	// channel 9 is the percussion channel; a stored -1 instrument must clamp to 0 on decode.
	channels[9].Instrument = -1

	w := bitio.NewWriter()
	encodeChannels(w, channels)

	r := bitio.NewReader(w.Bytes())
	got, err := decodeChannels(r)
	if err != nil {
		t.Fatalf("decodeChannels: %v", err)
	}
	if got[0].Instrument != 24 || got[0].Volume != 100 || got[0].Balance != 64 {
		t.Errorf("channel 0 = %+v", got[0])
	}
	if got[9].Instrument != 0 {
		t.Errorf("channel 9 (percussion) instrument = %d, want 0", got[9].Instrument)
	}
}

func TestMeasureHeaderRoundTripV4(t *testing.T) {
	v := Version{Major: 4, Minor: 0}
	headers := []*MeasureHeader{
		{Number: 1, RepeatClose: -1, TimeSignature: TimeSignature{Numerator: 4, Denominator: NewDuration(4)}},
		{Number: 2, RepeatClose: -1, RepeatOpen: true, TimeSignature: TimeSignature{Numerator: 4, Denominator: NewDuration(4)}},
		{Number: 3, RepeatClose: 2, TimeSignature: TimeSignature{Numerator: 4, Denominator: NewDuration(4)}},
	}

	w := bitio.NewWriter()
	encodeMeasureHeaders(w, v, headers)

	r := bitio.NewReader(w.Bytes())
	got, err := decodeMeasureHeaders(r, v, int32(len(headers)))
	if err != nil {
		t.Fatalf("decodeMeasureHeaders: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d headers, want 3", len(got))
	}
	if !got[1].RepeatOpen {
		t.Errorf("header 2 RepeatOpen = false, want true")
	}
	if got[2].RepeatClose != 2 {
		t.Errorf("header 3 RepeatClose = %d, want 2 (v4 close index is stored 1-off)", got[2].RepeatClose)
	}
	if got[1].Start == got[0].Start {
		t.Errorf("header 2 Start did not advance past header 1's")
	}
}
