// Package midiname resolves a channel's General MIDI program number to a
// human-readable instrument name for dump/CLI output.
package midiname

import "gitlab.com/gomidi/midi/v2"

// percussionNames covers channel 10 (percussion), which the v2 GM table
// does not name since its table is melodic-only.
var percussionNames = map[int8]string{
	35: "Acoustic Bass Drum", 36: "Bass Drum 1", 38: "Acoustic Snare",
	40: "Electric Snare", 42: "Closed Hi-Hat", 46: "Open Hi-Hat",
	49: "Crash Cymbal 1", 51: "Ride Cymbal 1",
}

// Instrument returns the instrument name for a program number on the given
// channel. percussion selects the percussion table over the melodic GM one.
func Instrument(program int32, percussion bool) string {
	if percussion {
		if name, ok := percussionNames[int8(program)]; ok {
			return name
		}
		return "Percussion"
	}
	if program < 0 || program > 127 {
		return "Unknown"
	}
	return midi.GMInstrumentName(uint8(program))
}
