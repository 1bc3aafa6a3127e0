package gp

// keySignatureMajorNames and keySignatureMinorNames name each of the 15
// circle-of-fifths positions
// (-7..7 flats/sharps) for major and minor tonality. Purely descriptive:
// not required by the wire format, used by String() for dump/debug output.
var keySignatureMajorNames = map[int8]string{
	-7: "Cb", -6: "Gb", -5: "Db", -4: "Ab", -3: "Eb", -2: "Bb", -1: "F",
	0: "C",
	1: "G", 2: "D", 3: "A", 4: "E", 5: "B", 6: "F#", 7: "C#",
}

var keySignatureMinorNames = map[int8]string{
	-7: "Ab", -6: "Eb", -5: "Bb", -4: "F", -3: "C", -2: "G", -1: "D",
	0: "A",
	1: "E", 2: "B", 3: "F#", 4: "C#", 5: "G#", 6: "D#", 7: "A#",
}

// String returns the conventional key name, e.g. "D minor" or "Bb".
func (k KeySignature) String() string {
	if k.IsMinor {
		return keySignatureMinorNames[k.Key] + " minor"
	}
	return keySignatureMajorNames[k.Key]
}
