package gp

import (
	"fmt"

	"github.com/slundi/gogp/bitio"
)

// decodeChord reads a chord diagram, selecting the old (v3) or new (v4+)
// wire shape by the leading bool.
func decodeChord(r *bitio.Reader, stringCount int) (*Chord, error) {
	newFormat, err := r.Bool()
	if err != nil {
		return nil, fmt.Errorf("chord format flag: %w", err)
	}

	if !newFormat {
		return decodeOldChord(r, stringCount)
	}
	return decodeNewChord(r, stringCount)
}

func decodeOldChord(r *bitio.Reader, stringCount int) (*Chord, error) {
	c := &Chord{NewFormat: false, Length: stringCount}
	var err error
	if c.Name, err = r.IntSizeString(); err != nil {
		return nil, fmt.Errorf("old chord name: %w", err)
	}
	if c.FirstFret, err = r.I32(); err != nil {
		return nil, fmt.Errorf("old chord first fret: %w", err)
	}
	frets := make([]int32, 6)
	for i := range frets {
		if frets[i], err = r.I32(); err != nil {
			return nil, fmt.Errorf("old chord fret %d: %w", i, err)
		}
	}
	c.Strings = make([]int8, stringCount)
	for i := 0; i < stringCount && i < 6; i++ {
		c.Strings[i] = int8(frets[i])
	}
	return c, nil
}

func decodeNewChord(r *bitio.Reader, stringCount int) (*Chord, error) {
	c := &Chord{NewFormat: true, Length: stringCount}
	var err error
	if c.Sharp, err = r.Bool(); err != nil {
		return nil, fmt.Errorf("new chord sharp: %w", err)
	}
	if err := r.Skip(3); err != nil {
		return nil, fmt.Errorf("new chord pad: %w", err)
	}

	root, err := r.I32()
	if err != nil {
		return nil, fmt.Errorf("new chord root: %w", err)
	}
	if root >= 0 {
		pc := PitchClass{Just: int8(root)}
		c.Root = &pc
	}

	chordType, err := r.I32()
	if err != nil {
		return nil, fmt.Errorf("new chord type: %w", err)
	}
	if chordType < 0 || chordType > 14 {
		return nil, fmt.Errorf("chord type %d: %w", chordType, ErrOutOfRange)
	}
	c.Type = ChordType(chordType)

	extension, err := r.I32()
	if err != nil {
		return nil, fmt.Errorf("new chord extension: %w", err)
	}
	if extension < 0 || extension > 3 {
		return nil, fmt.Errorf("chord extension %d: %w", extension, ErrOutOfRange)
	}
	c.Extension = ChordExtension(extension)

	bass, err := r.I32()
	if err != nil {
		return nil, fmt.Errorf("new chord bass: %w", err)
	}
	if bass >= 0 {
		pc := PitchClass{Just: int8(bass)}
		c.Bass = &pc
	}

	tonality, err := r.I32()
	if err != nil {
		return nil, fmt.Errorf("new chord tonality: %w", err)
	}
	c.Tonality = ChordAlteration(tonality)

	if c.Add, err = r.Bool(); err != nil {
		return nil, fmt.Errorf("new chord add: %w", err)
	}

	if c.Name, err = r.PaddedString(22); err != nil {
		return nil, fmt.Errorf("new chord name: %w", err)
	}

	fifth, err := r.I32()
	if err != nil {
		return nil, fmt.Errorf("new chord fifth: %w", err)
	}
	c.Fifth = ChordAlteration(fifth)
	ninth, err := r.I32()
	if err != nil {
		return nil, fmt.Errorf("new chord ninth: %w", err)
	}
	c.Ninth = ChordAlteration(ninth)
	eleventh, err := r.I32()
	if err != nil {
		return nil, fmt.Errorf("new chord eleventh: %w", err)
	}
	c.Eleventh = ChordAlteration(eleventh)

	if c.FirstFret, err = r.I32(); err != nil {
		return nil, fmt.Errorf("new chord first fret: %w", err)
	}

	frets := make([]int32, 6)
	for i := range frets {
		if frets[i], err = r.I32(); err != nil {
			return nil, fmt.Errorf("new chord fret %d: %w", i, err)
		}
	}
	c.Strings = make([]int8, stringCount)
	for i := 0; i < stringCount && i < 6; i++ {
		c.Strings[i] = int8(frets[i])
	}

	barreCount, err := r.I32()
	if err != nil {
		return nil, fmt.Errorf("new chord barre count: %w", err)
	}
	frets2 := make([]int32, 2)
	starts := make([]int32, 2)
	ends := make([]int32, 2)
	for i := range frets2 {
		if frets2[i], err = r.I32(); err != nil {
			return nil, fmt.Errorf("barre fret %d: %w", i, err)
		}
	}
	for i := range starts {
		if starts[i], err = r.I32(); err != nil {
			return nil, fmt.Errorf("barre start %d: %w", i, err)
		}
	}
	for i := range ends {
		if ends[i], err = r.I32(); err != nil {
			return nil, fmt.Errorf("barre end %d: %w", i, err)
		}
	}
	for i := 0; i < int(barreCount) && i < 2; i++ {
		c.Barres = append(c.Barres, Barre{Fret: frets2[i], Start: starts[i], End: ends[i]})
	}

	for i := range c.Omissions {
		if c.Omissions[i], err = r.Bool(); err != nil {
			return nil, fmt.Errorf("omission %d: %w", i, err)
		}
	}
	if err := r.Skip(1); err != nil {
		return nil, fmt.Errorf("new chord trailing pad: %w", err)
	}

	return c, nil
}

func encodeChord(w *bitio.Writer, c *Chord) {
	w.Bool(c.NewFormat)
	if !c.NewFormat {
		encodeOldChord(w, c)
		return
	}
	encodeNewChord(w, c)
}

func encodeOldChord(w *bitio.Writer, c *Chord) {
	w.IntSizeString(c.Name)
	w.I32(c.FirstFret)
	frets := make([]int32, 6)
	for i := 0; i < len(c.Strings) && i < 6; i++ {
		frets[i] = int32(c.Strings[i])
	}
	for _, f := range frets {
		w.I32(f)
	}
}

func encodeNewChord(w *bitio.Writer, c *Chord) {
	w.Bool(c.Sharp)
	w.Raw([]byte{0, 0, 0})

	if c.Root != nil {
		w.I32(int32(c.Root.Just))
	} else {
		w.I32(-1)
	}
	w.I32(int32(c.Type))
	w.I32(int32(c.Extension))
	if c.Bass != nil {
		w.I32(int32(c.Bass.Just))
	} else {
		w.I32(-1)
	}
	w.I32(int32(c.Tonality))
	w.Bool(c.Add)
	w.PaddedString(c.Name, 22)
	w.I32(int32(c.Fifth))
	w.I32(int32(c.Ninth))
	w.I32(int32(c.Eleventh))
	w.I32(c.FirstFret)

	frets := make([]int32, 6)
	for i := 0; i < len(c.Strings) && i < 6; i++ {
		frets[i] = int32(c.Strings[i])
	}
	for _, f := range frets {
		w.I32(f)
	}

	w.I32(int32(len(c.Barres)))
	frets2 := make([]int32, 2)
	starts := make([]int32, 2)
	ends := make([]int32, 2)
	for i, b := range c.Barres {
		if i < 2 {
			frets2[i], starts[i], ends[i] = b.Fret, b.Start, b.End
		}
	}
	for _, f := range frets2 {
		w.I32(f)
	}
	for _, s := range starts {
		w.I32(s)
	}
	for _, e := range ends {
		w.I32(e)
	}

	for _, o := range c.Omissions {
		w.Bool(o)
	}
	w.U8(0)
}
