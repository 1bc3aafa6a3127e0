package gp

import (
	"fmt"
	"sort"

	"github.com/slundi/gogp/bitio"
)

// decodeLyrics reads the v5 lyrics block: a track choice then five lines,
// each a starting measure and an int-size-prefixed text whose
// space/newline-delimited syllable runs are kept keyed by measure number
// the way the source's BTreeMap<u16,String> orders them.
func decodeLyrics(r *bitio.Reader) (Lyrics, error) {
	var l Lyrics
	choice, err := r.I32()
	if err != nil {
		return l, fmt.Errorf("lyrics track choice: %w", err)
	}
	l.TrackChoice = choice

	for i := range l.Lines {
		start, err := r.I32()
		if err != nil {
			return l, fmt.Errorf("lyrics line %d start: %w", i, err)
		}
		text, err := r.IntSizeString()
		if err != nil {
			return l, fmt.Errorf("lyrics line %d text: %w", i, err)
		}
		l.Lines[i] = LyricLine{
			StartingMeasure: start,
			Syllables:       splitSyllables(text, int(start)),
		}
	}
	return l, nil
}

func encodeLyrics(w *bitio.Writer, l Lyrics) {
	w.I32(l.TrackChoice)
	for _, line := range l.Lines {
		w.I32(line.StartingMeasure)
		w.IntSizeString(joinSyllables(line.Syllables, int(line.StartingMeasure)))
	}
}

// splitSyllables assigns consecutive measure numbers (starting at start) to
// each whitespace-delimited run in text, matching how Guitar Pro advances a
// measure per "[space]"-delimited syllable on decode.
func splitSyllables(text string, start int) map[int]string {
	out := map[int]string{}
	if text == "" {
		return out
	}
	measure := start
	word := ""
	flush := func() {
		if word != "" {
			out[measure] = word
			measure++
			word = ""
		}
	}
	for _, r := range text {
		if r == ' ' || r == '\n' {
			flush()
			continue
		}
		word += string(r)
	}
	flush()
	return out
}

func joinSyllables(syllables map[int]string, start int) string {
	keys := make([]int, 0, len(syllables))
	for k := range syllables {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	out := ""
	for i, k := range keys {
		if i > 0 {
			out += " "
		}
		out += syllables[k]
	}
	return out
}
