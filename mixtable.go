package gp

import (
	"fmt"

	"github.com/slundi/gogp/bitio"
)

const (
	mtFlagAllVolume  = 0x01
	mtFlagAllBalance = 0x02
	mtFlagAllChorus  = 0x04
	mtFlagAllReverb  = 0x08
	mtFlagAllPhaser  = 0x10
	mtFlagAllTremolo = 0x20
	mtFlagUseRse     = 0x40
	mtFlagShowWah    = 0x80
)

// decodeMixTableChange reads a beat's values block, durations block, and
// (v4+) flags block.
func decodeMixTableChange(r *bitio.Reader, v Version) (*MixTableChange, error) {
	m := &MixTableChange{}

	instrument, err := r.I8()
	if err != nil {
		return nil, fmt.Errorf("instrument: %w", err)
	}
	if instrument != -1 {
		m.Instrument = &instrument
	}

	if v.Major == 5 {
		rse, err := decodeRseInstrument(r, v)
		if err != nil {
			return nil, fmt.Errorf("rse instrument: %w", err)
		}
		m.Rse = rse
		if v.Minor == 0 {
			if err := r.Skip(1); err != nil {
				return nil, fmt.Errorf("rse instrument pad: %w", err)
			}
		}
	}

	readField := func(name string) (*int8, error) {
		v, err := r.I8()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if v == -1 {
			return nil, nil
		}
		return &v, nil
	}

	if m.Volume, err = readField("volume"); err != nil {
		return nil, err
	}
	if m.Balance, err = readField("balance"); err != nil {
		return nil, err
	}
	if m.Chorus, err = readField("chorus"); err != nil {
		return nil, err
	}
	if m.Reverb, err = readField("reverb"); err != nil {
		return nil, err
	}
	if m.Phaser, err = readField("phaser"); err != nil {
		return nil, err
	}
	if m.Tremolo, err = readField("tremolo"); err != nil {
		return nil, err
	}

	if v.Major == 5 {
		if m.TempoName, err = r.IntByteSizeString(); err != nil {
			return nil, fmt.Errorf("tempo name: %w", err)
		}
	}
	tempo, err := r.I32()
	if err != nil {
		return nil, fmt.Errorf("tempo: %w", err)
	}
	if tempo != -1 {
		m.Tempo = &tempo
	}

	if m.Volume != nil {
		if m.VolumeDuration, err = r.I8(); err != nil {
			return nil, fmt.Errorf("volume duration: %w", err)
		}
	}
	if m.Balance != nil {
		if m.BalanceDuration, err = r.I8(); err != nil {
			return nil, fmt.Errorf("balance duration: %w", err)
		}
	}
	if m.Chorus != nil {
		if m.ChorusDuration, err = r.I8(); err != nil {
			return nil, fmt.Errorf("chorus duration: %w", err)
		}
	}
	if m.Reverb != nil {
		if m.ReverbDuration, err = r.I8(); err != nil {
			return nil, fmt.Errorf("reverb duration: %w", err)
		}
	}
	if m.Phaser != nil {
		if m.PhaserDuration, err = r.I8(); err != nil {
			return nil, fmt.Errorf("phaser duration: %w", err)
		}
	}
	if m.Tremolo != nil {
		if m.TremoloDuration, err = r.I8(); err != nil {
			return nil, fmt.Errorf("tremolo duration: %w", err)
		}
	}
	if m.Tempo != nil {
		if m.TempoDuration, err = r.I8(); err != nil {
			return nil, fmt.Errorf("tempo duration: %w", err)
		}
		if v.Major == 5 {
			if m.HideTempo, err = r.Bool(); err != nil {
				return nil, fmt.Errorf("hide tempo: %w", err)
			}
		}
	}

	if v.Major >= 4 {
		flags, err := r.U8()
		if err != nil {
			return nil, fmt.Errorf("flags: %w", err)
		}
		m.AllTracksVolume = flags&mtFlagAllVolume != 0
		m.AllTracksBalance = flags&mtFlagAllBalance != 0
		m.AllTracksChorus = flags&mtFlagAllChorus != 0
		m.AllTracksReverb = flags&mtFlagAllReverb != 0
		m.AllTracksPhaser = flags&mtFlagAllPhaser != 0
		m.AllTracksTremolo = flags&mtFlagAllTremolo != 0

		if v.Major == 5 {
			m.UseRse = flags&mtFlagUseRse != 0
			m.ShowWah = flags&mtFlagShowWah != 0

			wah, err := r.I8()
			if err != nil {
				return nil, fmt.Errorf("wah: %w", err)
			}
			m.Wah = &wah

			if v.Minor >= 1 {
				name, err := r.IntSizeString()
				if err != nil {
					return nil, fmt.Errorf("rse effect name: %w", err)
				}
				category, err := r.IntSizeString()
				if err != nil {
					return nil, fmt.Errorf("rse effect category: %w", err)
				}
				m.RseInstrumentEffect = &RseInstrumentEffect{Name: name, Category: category}
			}
		}
	}

	return m, nil
}

func encodeMixTableChange(w *bitio.Writer, v Version, m *MixTableChange) {
	if m.Instrument != nil {
		w.I8(*m.Instrument)
	} else {
		w.I8(-1)
	}

	if v.Major == 5 {
		if m.Rse != nil {
			encodeRseInstrument(w, v, *m.Rse)
		} else {
			encodeRseInstrument(w, v, RseInstrument{})
		}
		if v.Minor == 0 {
			w.U8(0)
		}
	}

	writeField := func(f *int8) {
		if f != nil {
			w.I8(*f)
		} else {
			w.I8(-1)
		}
	}
	writeField(m.Volume)
	writeField(m.Balance)
	writeField(m.Chorus)
	writeField(m.Reverb)
	writeField(m.Phaser)
	writeField(m.Tremolo)

	if v.Major == 5 {
		w.IntByteSizeString(m.TempoName)
	}
	if m.Tempo != nil {
		w.I32(*m.Tempo)
	} else {
		w.I32(-1)
	}

	if m.Volume != nil {
		w.I8(m.VolumeDuration)
	}
	if m.Balance != nil {
		w.I8(m.BalanceDuration)
	}
	if m.Chorus != nil {
		w.I8(m.ChorusDuration)
	}
	if m.Reverb != nil {
		w.I8(m.ReverbDuration)
	}
	if m.Phaser != nil {
		w.I8(m.PhaserDuration)
	}
	if m.Tremolo != nil {
		w.I8(m.TremoloDuration)
	}
	if m.Tempo != nil {
		w.I8(m.TempoDuration)
		if v.Major == 5 {
			w.Bool(m.HideTempo)
		}
	}

	if v.Major >= 4 {
		var flags uint8
		if m.AllTracksVolume {
			flags |= mtFlagAllVolume
		}
		if m.AllTracksBalance {
			flags |= mtFlagAllBalance
		}
		if m.AllTracksChorus {
			flags |= mtFlagAllChorus
		}
		if m.AllTracksReverb {
			flags |= mtFlagAllReverb
		}
		if m.AllTracksPhaser {
			flags |= mtFlagAllPhaser
		}
		if m.AllTracksTremolo {
			flags |= mtFlagAllTremolo
		}
		if v.Major == 5 {
			if m.UseRse {
				flags |= mtFlagUseRse
			}
			if m.ShowWah {
				flags |= mtFlagShowWah
			}
		}
		w.U8(flags)

		if v.Major == 5 {
			if m.Wah != nil {
				w.I8(*m.Wah)
			} else {
				w.I8(-1)
			}
			if v.Minor >= 1 {
				if m.RseInstrumentEffect != nil {
					w.IntSizeString(m.RseInstrumentEffect.Name)
					w.IntSizeString(m.RseInstrumentEffect.Category)
				} else {
					w.IntSizeString("")
					w.IntSizeString("")
				}
			}
		}
	}
}

// decodeRseInstrument reads the mix-table RSE instrument sub-block: v5.00
// uses an i16 effect number plus pad, v5.10 an i32.
func decodeRseInstrument(r *bitio.Reader, v Version) (*RseInstrument, error) {
	ri := &RseInstrument{}
	var err error
	if ri.Instrument, err = r.I32(); err != nil {
		return nil, fmt.Errorf("instrument: %w", err)
	}
	if ri.Unknown, err = r.I32(); err != nil {
		return nil, fmt.Errorf("unknown: %w", err)
	}
	if ri.SoundBank, err = r.I32(); err != nil {
		return nil, fmt.Errorf("sound bank: %w", err)
	}
	if v.Minor >= 1 {
		if ri.EffectNumber, err = r.I32(); err != nil {
			return nil, fmt.Errorf("effect number: %w", err)
		}
	} else {
		n, err := r.I16()
		if err != nil {
			return nil, fmt.Errorf("effect number: %w", err)
		}
		ri.EffectNumber = int32(n)
		if err := r.Skip(2); err != nil {
			return nil, fmt.Errorf("effect number pad: %w", err)
		}
	}
	return ri, nil
}

func encodeRseInstrument(w *bitio.Writer, v Version, ri RseInstrument) {
	w.I32(ri.Instrument)
	w.I32(ri.Unknown)
	w.I32(ri.SoundBank)
	if v.Minor >= 1 {
		w.I32(ri.EffectNumber)
	} else {
		w.I16(int16(ri.EffectNumber))
		w.U16(0)
	}
}
