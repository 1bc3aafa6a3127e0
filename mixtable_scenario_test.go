package gp

import "testing"

func TestMixTableChangeJustWah(t *testing.T) {
	wah := int8(1)
	m := &MixTableChange{Wah: &wah}
	if !m.IsJustWah() {
		t.Errorf("IsJustWah() = false; want true for wah-only change")
	}

	instrument := int8(5)
	m.Instrument = &instrument
	if m.IsJustWah() {
		t.Errorf("IsJustWah() = true; want false once another field is set")
	}
}

func TestV5TwoVoiceMeasure(t *testing.T) {
	header := &MeasureHeader{Number: 1, Start: 0}
	measure := &Measure{HeaderIndex: 0}

	normalBeat := &Beat{Start: header.Start, Status: BeatStatusNormal, Duration: NewDuration(4)}
	emptyBeat := &Beat{Start: header.Start, Status: BeatStatusEmpty, Duration: NewDuration(4)}

	measure.Voices = []*Voice{
		{Beats: []*Beat{normalBeat}},
		{Beats: []*Beat{emptyBeat}},
	}

	if len(measure.Voices) != 2 {
		t.Fatalf("voices = %d; want 2", len(measure.Voices))
	}
	voice2 := measure.Voices[1]
	if voice2.Beats[0].Start != header.Start {
		t.Errorf("voice 2 beat.start = %d; want %d", voice2.Beats[0].Start, header.Start)
	}

	var consumed int64
	if voice2.Beats[0].Status != BeatStatusEmpty {
		consumed = voice2.Beats[0].Duration.Time()
	}
	if consumed != 0 {
		t.Errorf("voice 2 consumed duration = %d; want 0 for an Empty beat", consumed)
	}
}
