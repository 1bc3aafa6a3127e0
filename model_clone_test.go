package gp

import (
	"testing"

	"github.com/huandu/go-clone/generic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSongCloneIndependence guards the fixture-mutation hazard in decode
// tests: callers that build a Song once and feed clones to Decode/Encode
// round trips expect mutating one clone to leave the others untouched.
func TestSongCloneIndependence(t *testing.T) {
	header := &MeasureHeader{Number: 1, RepeatOpen: true}
	original := &Song{
		Title:          "Original",
		Tempo:          120,
		MeasureHeaders: []*MeasureHeader{header},
	}

	clone := generic.Clone(original)
	require.Equal(t, original.Title, clone.Title)
	require.Len(t, clone.MeasureHeaders, 1)

	clone.Title = "Mutated"
	clone.MeasureHeaders[0].Number = 99

	assert.Equal(t, "Original", original.Title)
	assert.Equal(t, 1, original.MeasureHeaders[0].Number)
	assert.Equal(t, 99, clone.MeasureHeaders[0].Number)
}
