package midiname

import "testing"

func TestInstrumentPercussionFallback(t *testing.T) {
	if got := Instrument(36, true); got != "Bass Drum 1" {
		t.Errorf("Instrument(36, true) = %q; want Bass Drum 1", got)
	}
	if got := Instrument(99, true); got != "Percussion" {
		t.Errorf("Instrument(99, true) = %q; want Percussion", got)
	}
}

func TestInstrumentOutOfRange(t *testing.T) {
	if got := Instrument(200, false); got != "Unknown" {
		t.Errorf("Instrument(200, false) = %q; want Unknown", got)
	}
}
