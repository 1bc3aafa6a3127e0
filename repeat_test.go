package gp

import "testing"

func TestBuildRepeatGroupsScenario(t *testing.T) {
	headers := []*MeasureHeader{
		{Number: 1, RepeatClose: -1},
		{Number: 2, RepeatClose: -1, RepeatOpen: true},
		{Number: 3, RepeatClose: 2},
		{Number: 4, RepeatClose: -1, RepeatAlternative: 0},
	}

	groups := BuildRepeatGroups(headers)
	if len(groups) != 1 {
		t.Fatalf("groups = %d; want 1", len(groups))
	}
	g := groups[0]

	wantHeaders := []int{2, 3, 4}
	if !intSliceEqual(g.Headers, wantHeaders) {
		t.Errorf("Headers = %v; want %v", g.Headers, wantHeaders)
	}
	if !intSliceEqual(g.Openings, []int{2}) {
		t.Errorf("Openings = %v; want [2]", g.Openings)
	}
	if !intSliceEqual(g.Closings, []int{3}) {
		t.Errorf("Closings = %v; want [3]", g.Closings)
	}
}

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
