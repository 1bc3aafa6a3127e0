package gp

import (
	"bytes"
	"testing"

	"github.com/slundi/gogp/bitio"
)

// buildV3Banner writes a v3.00 banner padded to the 31-byte slot.
func buildV3Banner(w *bitio.Writer) {
	w.ByteSizeString("FICHIER GUITAR PRO v3.00")
	for w.Len() < 31 {
		w.U8(0)
	}
}

// buildEmptySongV3 builds the literal byte sequence for an empty v3.00 song:
// banner, 8 empty metadata strings, 0 notices, no triplet feel, tempo 120,
// key 0, 64 empty channel records, 0 measures, 0 tracks.
func buildEmptySongV3(tempo int32) []byte {
	w := bitio.NewWriter()
	buildV3Banner(w)
	for i := 0; i < 8; i++ {
		w.IntSizeString("")
	}
	w.I32(0) // notice count
	w.Bool(false)
	w.I32(tempo)
	w.I32(0) // key
	for i := 0; i < 64; i++ {
		w.I32(0) // instrument
		for j := 0; j < 6; j++ {
			w.I8(0)
		}
		w.U8(0)
		w.U8(0)
	}
	w.I32(0) // measure count
	w.I32(0) // track count
	return w.Bytes()
}

func TestDecodeEmptyV3Song(t *testing.T) {
	buf := buildEmptySongV3(120)

	song, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if song.Title != "" {
		t.Errorf("Title = %q; want empty", song.Title)
	}
	if song.Tempo != 120 {
		t.Errorf("Tempo = %d; want 120", song.Tempo)
	}
	if len(song.MeasureHeaders) != 0 || len(song.Tracks) != 0 {
		t.Errorf("expected empty song, got %d headers, %d tracks", len(song.MeasureHeaders), len(song.Tracks))
	}

	out, err := Encode(song)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(out, buf) {
		t.Fatalf("re-encoded bytes differ from input\nwant %x\ngot  %x", buf, out)
	}
}

// buildSingleQuarterNoteSong extends the empty v3 song with one measure, one
// standard-6-string track, one voice, one quarter-note beat on string 6.
func buildSingleQuarterNoteSong() []byte {
	w := bitio.NewWriter()
	buildV3Banner(w)
	for i := 0; i < 8; i++ {
		w.IntSizeString("")
	}
	w.I32(0)
	w.Bool(false)
	w.I32(120)
	w.I32(0)
	for i := 0; i < 64; i++ {
		w.I32(0)
		for j := 0; j < 6; j++ {
			w.I8(0)
		}
		w.U8(0)
		w.U8(0)
	}
	w.I32(1) // 1 measure
	w.I32(1) // 1 track

	// Measure header: flags 0x03 (numerator+denominator present) for the
	// first header so the time signature isn't left at an implicit default.
	w.U8(0x03)
	w.I8(4) // numerator
	w.I8(4) // denominator (quarter)

	// Track: standard 6-string tuning (E4 B3 G3 D3 A2 E2 in semitone values
	// is irrelevant to the decoder; only the string count matters here).
	w.U8(0) // flags
	w.PaddedString("Track 1", 40)
	w.I32(6)
	tunings := []int32{64, 59, 55, 50, 45, 40, 0}
	for _, tn := range tunings {
		w.I32(tn)
	}
	w.I32(1)          // port
	w.I32(1)          // channel (1-based)
	w.I32(1)          // effect channel (1-based)
	w.I32(24)         // fret count
	w.I32(0)          // offset
	w.Color(0xFF0000) // color

	// Score body: measure 1, track 1, voice 1: 1 beat.
	w.I32(1) // beat count
	w.U8(0x00) // beat flags
	w.I8(0)    // duration code 0 -> quarter
	w.U8(0x04) // note string mask: string 6 present (bit 1<<(7-5)=0x04)
	w.U8(0x20 | 0x10) // note flags: fret + velocity
	w.I8(6)           // velocity step -> forte (95)
	w.I8(0)           // fret

	return w.Bytes()
}

func TestDecodeSingleQuarterNote(t *testing.T) {
	buf := buildSingleQuarterNoteSong()

	song, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(song.Tracks) != 1 {
		t.Fatalf("tracks = %d; want 1", len(song.Tracks))
	}
	track := song.Tracks[0]
	if len(track.Measures) != 1 {
		t.Fatalf("measures = %d; want 1", len(track.Measures))
	}
	measure := track.Measures[0]
	if len(measure.Voices) != 1 || len(measure.Voices[0].Beats) != 1 {
		t.Fatalf("expected 1 voice with 1 beat, got %+v", measure.Voices)
	}
	beat := measure.Voices[0].Beats[0]
	if beat.Duration.Value != 4 {
		t.Errorf("duration.value = %d; want 4", beat.Duration.Value)
	}
	if len(beat.Notes) != 1 {
		t.Fatalf("notes = %d; want 1", len(beat.Notes))
	}
	note := beat.Notes[0]
	if note.String != 6 {
		t.Errorf("note.string = %d; want 6", note.String)
	}
	if note.Value != 0 {
		t.Errorf("note.value = %d; want 0", note.Value)
	}
	if note.Velocity != 95 {
		t.Errorf("note.velocity = %d; want 95", note.Velocity)
	}
}
