package gp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/slundi/gogp/bitio"
)

const versionBannerSize = 31 // 1 length byte + 30 content bytes

// versionBannerDialects maps a recognized banner prefix to its (major, minor) pair;
// patch is parsed out of the trailing "v4.0x"-style digits where present.
var versionBannerDialects = []struct {
	prefix string
	major  int
	minor  int
}{
	{"FICHIER GUITAR PRO v3.00", 3, 0},
	{"FICHIER GUITAR PRO v4.0", 4, 0},
	{"FICHIER GUITAR PRO v5.00", 5, 0},
	{"FICHIER GUITAR PRO v5.10", 5, 1},
	{"CLIPBOARD GUITAR PRO v4.0", 4, 0},
	{"CLIPBOARD GUITAR PRO v5.00", 5, 0},
	{"CLIPBOARD GUITAR PRO v5.10", 5, 1},
}

// readVersion reads the 30-byte Pascal-string banner and detects dialect.
func readVersion(r *bitio.Reader) (Version, error) {
	start := r.Pos()
	raw, err := r.ByteSizeString()
	if err != nil {
		return Version{}, fmt.Errorf("read version banner: %w", err)
	}
	if err := r.Seek(start + versionBannerSize); err != nil {
		return Version{}, fmt.Errorf("seek past version banner: %w", err)
	}

	v := Version{Raw: raw, Clipboard: strings.HasPrefix(raw, "CLIPBOARD")}

	var matched bool
	for _, d := range versionBannerDialects {
		if strings.HasPrefix(raw, d.prefix) {
			v.Major, v.Minor = d.major, d.minor
			matched = true
			break
		}
	}
	if !matched {
		return Version{}, fmt.Errorf("banner %q: %w", raw, ErrUnknownVersion)
	}

	// Tolerant numeric scan for the patch digit in "v4.0x" style banners.
	if idx := strings.LastIndexByte(raw, 'v'); idx >= 0 && idx+4 < len(raw) {
		tail := raw[idx+1:]
		parts := strings.SplitN(tail, ".", 2)
		if len(parts) == 2 && len(parts[1]) > 0 {
			digits := parts[1]
			// v4.0x -> literal 'x' placeholder, patch unknown (0); v5.10 -> "10"
			if n, err := strconv.Atoi(strings.TrimRight(digits, "x")); err == nil {
				if len(digits) >= 2 {
					v.Patch = n % 10
				}
			}
		}
	}
	if v.Major == 5 && v.Minor == 1 {
		v.Patch = 0
	}

	return v, nil
}

func writeVersion(w *bitio.Writer, v Version) {
	start := w.Len()
	w.ByteSizeString(v.Raw)
	for w.Len() < start+versionBannerSize {
		w.U8(0)
	}
}

// readClipboard reads the clipboard block that follows a "CLIPBOARD" banner.
func readClipboard(r *bitio.Reader, v Version) (*Clipboard, error) {
	if !v.Clipboard {
		return nil, nil
	}
	c := &Clipboard{}
	var err error
	if c.StartMeasure, err = r.I32(); err != nil {
		return nil, err
	}
	if c.StopMeasure, err = r.I32(); err != nil {
		return nil, err
	}
	if c.StartTrack, err = r.I32(); err != nil {
		return nil, err
	}
	if c.StopTrack, err = r.I32(); err != nil {
		return nil, err
	}
	if v.Major == 5 {
		if c.StartBeat, err = r.I32(); err != nil {
			return nil, err
		}
		if c.StopBeat, err = r.I32(); err != nil {
			return nil, err
		}
		sub, err := r.I32()
		if err != nil {
			return nil, err
		}
		c.SubBarCopy = sub != 0
	}
	return c, nil
}

func writeClipboard(w *bitio.Writer, v Version, c *Clipboard) {
	if !v.Clipboard || c == nil {
		return
	}
	w.I32(c.StartMeasure)
	w.I32(c.StopMeasure)
	w.I32(c.StartTrack)
	w.I32(c.StopTrack)
	if v.Major == 5 {
		w.I32(c.StartBeat)
		w.I32(c.StopBeat)
		if c.SubBarCopy {
			w.I32(1)
		} else {
			w.I32(0)
		}
	}
}
