package gp

import (
	"testing"

	"github.com/slundi/gogp/bitio"
)

func TestMixTableChangeRoundTripV4(t *testing.T) {
	v := Version{Major: 4, Minor: 0}
	volume := int8(80)
	tempo := int32(140)
	m := &MixTableChange{
		Volume:          &volume,
		VolumeDuration:  3,
		Tempo:           &tempo,
		TempoDuration:   2,
		AllTracksVolume: true,
	}

	w := bitio.NewWriter()
	encodeMixTableChange(w, v, m)

	r := bitio.NewReader(w.Bytes())
	got, err := decodeMixTableChange(r, v)
	if err != nil {
		t.Fatalf("decodeMixTableChange: %v", err)
	}
	if got.Volume == nil || *got.Volume != 80 {
		t.Errorf("Volume = %v, want 80", got.Volume)
	}
	if got.VolumeDuration != 3 {
		t.Errorf("VolumeDuration = %d, want 3", got.VolumeDuration)
	}
	if got.Tempo == nil || *got.Tempo != 140 {
		t.Errorf("Tempo = %v, want 140", got.Tempo)
	}
	if !got.AllTracksVolume {
		t.Errorf("AllTracksVolume = false, want true")
	}
	if got.Instrument != nil {
		t.Errorf("Instrument = %v, want nil", got.Instrument)
	}
}
