package gp

import (
	"fmt"

	"github.com/slundi/gogp/bitio"
)

// decodePageSetup reads the v5 page-layout block: page size, margins, and
// the header/footer text template placeholders.
func decodePageSetup(r *bitio.Reader) (PageSetup, error) {
	var p PageSetup
	var err error
	if p.PageWidth, err = r.I32(); err != nil {
		return p, fmt.Errorf("page width: %w", err)
	}
	if p.PageHeight, err = r.I32(); err != nil {
		return p, fmt.Errorf("page height: %w", err)
	}
	if p.MarginLeft, err = r.I32(); err != nil {
		return p, fmt.Errorf("margin left: %w", err)
	}
	if p.MarginRight, err = r.I32(); err != nil {
		return p, fmt.Errorf("margin right: %w", err)
	}
	if p.MarginTop, err = r.I32(); err != nil {
		return p, fmt.Errorf("margin top: %w", err)
	}
	if p.MarginBottom, err = r.I32(); err != nil {
		return p, fmt.Errorf("margin bottom: %w", err)
	}
	if p.ScoreSizeProportion, err = r.F32(); err != nil {
		return p, fmt.Errorf("score size proportion: %w", err)
	}
	if p.HeaderAndFooter, err = r.U8(); err != nil {
		return p, fmt.Errorf("header/footer flags: %w", err)
	}

	fields := []*string{
		&p.Title, &p.Subtitle, &p.Artist, &p.Album,
		&p.Words, &p.Music, &p.WordsAndMusic,
		&p.Copyright1, &p.Copyright2, &p.PageNumber,
	}
	for i, f := range fields {
		if *f, err = r.IntByteSizeString(); err != nil {
			return p, fmt.Errorf("page setup template %d: %w", i, err)
		}
	}
	return p, nil
}

func encodePageSetup(w *bitio.Writer, p PageSetup) {
	w.I32(p.PageWidth)
	w.I32(p.PageHeight)
	w.I32(p.MarginLeft)
	w.I32(p.MarginRight)
	w.I32(p.MarginTop)
	w.I32(p.MarginBottom)
	w.F32(p.ScoreSizeProportion)
	w.U8(p.HeaderAndFooter)

	for _, f := range []string{
		p.Title, p.Subtitle, p.Artist, p.Album,
		p.Words, p.Music, p.WordsAndMusic,
		p.Copyright1, p.Copyright2, p.PageNumber,
	} {
		w.IntByteSizeString(f)
	}
}
