package gp

import "testing"

func TestDurationTime(t *testing.T) {
	cases := []struct {
		name string
		d    Duration
		want int64
	}{
		{"quarter", NewDuration(4), 960},
		{"eighth", NewDuration(8), 480},
		{"dotted quarter", Duration{Value: 4, Dotted: true, Enters: 1, Times: 1}, 1440},
		{"quarter triplet", Duration{Value: 4, Enters: 3, Times: 2}, 1440},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.d.Time(); got != c.want {
				t.Errorf("Time() = %d; want %d", got, c.want)
			}
		})
	}
}

func TestFractionIdempotence(t *testing.T) {
	d := NewDuration(8)
	want := d.Time()
	d.Enters, d.Times = 1, 1
	if got := d.Time(); got != want {
		t.Errorf("identity tuplet (1,1) changed Time(): got %d, want %d", got, want)
	}
}

func TestSupportedTupletsMembership(t *testing.T) {
	for _, d := range []Duration{
		{Value: 4, Enters: 3, Times: 2},
		{Value: 8, Enters: 5, Times: 4},
	} {
		found := false
		for _, st := range SupportedTuplets {
			if st[0] == d.Enters && st[1] == d.Times {
				found = true
			}
		}
		if !found {
			t.Errorf("(%d,%d) not in SupportedTuplets", d.Enters, d.Times)
		}
	}
}

func TestVelocityPackUnpack(t *testing.T) {
	for step := int8(1); step <= 6; step++ {
		v := UnpackVelocity(step)
		if got := PackVelocity(v); got != step {
			t.Errorf("PackVelocity(UnpackVelocity(%d)) = %d; want %d", step, got, step)
		}
	}
}

func TestUnpackVelocityForte(t *testing.T) {
	// MinVelocity=15, VelocityIncrement=16: step 6 -> forte (95).
	if got := UnpackVelocity(6); got != 95 {
		t.Errorf("UnpackVelocity(6) = %d; want 95", got)
	}
}

func TestStrokeValueFromRaw(t *testing.T) {
	cases := map[int8]int8{0: 64, 1: 128, 2: 64, 7: 64, -1: 64}
	for raw, want := range cases {
		if got := strokeValueFromRaw(raw); got != want {
			t.Errorf("strokeValueFromRaw(%d) = %d; want %d", raw, got, want)
		}
	}
}

func TestBendRescale(t *testing.T) {
	positions := []int32{0, 30, 60}
	values := []int32{0, 50, 0}
	wantPos := []int8{0, 6, 12}
	wantVal := []int8{0, 2, 0}

	for i := range positions {
		if got := rescaleBendPosition(positions[i]); got != wantPos[i] {
			t.Errorf("rescaleBendPosition(%d) = %d; want %d", positions[i], got, wantPos[i])
		}
		if got := rescaleBendValue(values[i]); got != wantVal[i] {
			t.Errorf("rescaleBendValue(%d) = %d; want %d", values[i], got, wantVal[i])
		}
	}

	// Round-trip through the un-rescale functions must reproduce the raw
	// wire values exactly for this scenario's points.
	for i := range wantPos {
		if got := unrescaleBendPosition(wantPos[i]); got != positions[i] {
			t.Errorf("unrescaleBendPosition(%d) = %d; want %d", wantPos[i], got, positions[i])
		}
		if got := unrescaleBendValue(wantVal[i]); got != values[i] {
			t.Errorf("unrescaleBendValue(%d) = %d; want %d", wantVal[i], got, values[i])
		}
	}
}
