package gp

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/slundi/gogp/bitio"
)

// Decode parses a Guitar Pro binary buffer into a Song. The dialect is
// always detected from the banner; Guitar Pro files are self-describing.
func Decode(buf []byte) (*Song, error) {
	r := bitio.NewReader(buf)

	version, err := readVersion(r)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	s := &Song{ID: uuid.New(), Version: version}

	if s.Clip, err = readClipboard(r, version); err != nil {
		return nil, fmt.Errorf("decode: clipboard: %w", err)
	}

	if err := decodeMetadata(r, version, s); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	channels, err := decodeChannels(r)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	s.Channels = channels

	measureCount, err := r.I32()
	if err != nil {
		return nil, fmt.Errorf("decode: measure count: %w", err)
	}
	trackCount, err := r.I32()
	if err != nil {
		return nil, fmt.Errorf("decode: track count: %w", err)
	}

	headers, err := decodeMeasureHeaders(r, version, measureCount)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	s.MeasureHeaders = headers

	if version.Major == 5 {
		directions, err := decodeDirections(r)
		if err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		s.Directions = directions

		pageSetup, err := decodePageSetup(r)
		if err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		s.PageSetup = pageSetup

		keyByte, err := r.I8()
		if err != nil {
			return nil, fmt.Errorf("decode: v5 key: %w", err)
		}
		s.Key = KeySignature{Key: keyByte}
		if err := r.Skip(4); err != nil { // octave + 3 reserved bytes
			return nil, fmt.Errorf("decode: v5 key pad: %w", err)
		}

		lyrics, err := decodeLyrics(r)
		if err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		s.Lyrics = lyrics

		if version.Minor >= 1 {
			masterEffect, err := decodeMasterEffect(r)
			if err != nil {
				return nil, fmt.Errorf("decode: %w", err)
			}
			s.MasterEffect = masterEffect
		}
	} else {
		s.PageSetup = DefaultPageSetup()
	}

	tracks := make([]*Track, 0, trackCount)
	for i := int32(0); i < trackCount; i++ {
		t, err := decodeTrack(r, version, int(i)+1)
		if err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		bindChannel(t, s.Channels)
		tracks = append(tracks, t)
	}
	s.Tracks = tracks

	if version.Major == 5 {
		if err := r.Skip(2); err != nil { // pad between track table and measure body
			return nil, fmt.Errorf("decode: track table pad: %w", err)
		}
	}

	if err := decodeScoreBody(r, version, s); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	return s, nil
}

// decodeScoreBody reads every measure in header-major, track-minor order:
// measure 1/track 1, measure 1/track 2, ..., measure 2/track 1, ...
func decodeScoreBody(r *bitio.Reader, v Version, s *Song) error {
	voicesPerMeasure := 1
	if v.Major == 5 {
		voicesPerMeasure = 2
	}

	for hi, header := range s.MeasureHeaders {
		for _, track := range s.Tracks {
			measure := &Measure{TrackIndex: track.Number - 1, HeaderIndex: hi}
			track.Measures = append(track.Measures, measure)

			for vi := 0; vi < voicesPerMeasure; vi++ {
				voice := &Voice{}
				measure.Voices = append(measure.Voices, voice)

				beatCount, err := r.I32()
				if err != nil {
					return fmt.Errorf("measure %d track %d voice %d beat count: %w", hi+1, track.Number, vi, err)
				}

				if err := decodeVoiceBeats(r, v, track, voice, beatCount, header.Start); err != nil {
					return fmt.Errorf("measure %d track %d voice %d: %w", hi+1, track.Number, vi, err)
				}
			}
		}
	}

	return nil
}
