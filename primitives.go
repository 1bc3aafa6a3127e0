package gp

import (
	"fmt"
	"math"
)

// Velocity packing constants (effects.rs): velocity is stored as a 1-based
// "step" and unpacked as MinVelocity + VelocityIncrement*(step-1).
const (
	MinVelocity       = 15
	VelocityIncrement = 16
	DefaultVelocity   = MinVelocity + VelocityIncrement*3 // step 4, mezzo-piano (63)
)

// UnpackVelocity converts a wire velocity step to a MIDI-range velocity.
func UnpackVelocity(step int8) int8 {
	return int8(MinVelocity + VelocityIncrement*(int(step)-1))
}

// PackVelocity is the inverse of UnpackVelocity.
func PackVelocity(v int8) int8 {
	return int8((int(v) - MinVelocity) / VelocityIncrement + 1)
}

// durationCodeToValue maps the signed beat-duration byte {-2,-1,0,1,2,3} to
// a note value via value = 1 << (b+2).
func durationCodeToValue(code int8) int8 {
	return int8(1 << uint(code+2))
}

// durationValueToCode is the inverse of durationCodeToValue.
func durationValueToCode(value int8) (int8, error) {
	for code := int8(-2); code <= 3; code++ {
		if durationCodeToValue(code) == value {
			return code, nil
		}
	}
	return 0, fmt.Errorf("duration value %d: %w", value, ErrOutOfRange)
}

// tupletCodeToRatio maps a wire tuplet i32 code to (enters, times). Guitar
// Pro stores the numerator of the ratio directly as the code; the
// denominator is derived from SupportedTuplets.
func tupletCodeToRatio(code int32) (int8, int8, error) {
	for _, t := range SupportedTuplets {
		if int32(t[0]) == code {
			return t[0], t[1], nil
		}
	}
	return 0, 0, fmt.Errorf("tuplet code %d: %w", code, ErrOutOfRange)
}

func tupletRatioToCode(enters int8) int32 { return int32(enters) }

// strokeValueTable maps the raw 1..6 stroke-speed byte to a note-value code;
// 1..6 give 128, 64, 32, 16, 8, 4 and any other value defaults to 64 (a
// sixty-fourth note's worth of strum speed).
var strokeValueTable = [7]int8{64, 128, 64, 32, 16, 8, 4}

func strokeValueFromRaw(raw int8) int8 {
	if raw < 1 || raw > 6 {
		return 64
	}
	return strokeValueTable[raw]
}

// rescaleBendPosition converts a raw wire position to the normalized 0..12
// grid: round(raw*12/60).
func rescaleBendPosition(raw int32) int8 {
	return int8(math.Round(float64(raw) * 12.0 / 60.0))
}

// unrescaleBendPosition is the inverse of rescaleBendPosition.
func unrescaleBendPosition(pos int8) int32 {
	return int32(math.Round(float64(pos) * 60.0 / 12.0))
}

// rescaleBendValue converts a raw wire value to the normalized grid:
// round(raw*1/25).
func rescaleBendValue(raw int32) int8 {
	return int8(math.Round(float64(raw) / 25.0))
}

// unrescaleBendValue is the inverse of rescaleBendValue.
func unrescaleBendValue(v int8) int32 {
	return int32(math.Round(float64(v) * 25.0))
}

// graceDurationFromCode maps the stored grace-duration byte d to
// the note value 1 << (7-d): d=1 gives 64, d=2 gives 32, d=3 gives 16.
func graceDurationFromCode(d int8) int8 {
	return int8(1 << uint(7-d))
}
