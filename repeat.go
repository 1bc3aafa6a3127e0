package gp

// BuildRepeatGroups aggregates consecutive measure headers into repeat
// groups: a header with RepeatOpen starts a new group; a header with
// RepeatClose >= 0 closes it; a header encountered after a close reopens a
// group (a repeat alternative) rather than starting a fresh one, matching
// the source's add_measure_header accumulation.
func BuildRepeatGroups(headers []*MeasureHeader) []RepeatGroup {
	var groups []RepeatGroup
	var cur *RepeatGroup

	for _, h := range headers {
		switch {
		case h.RepeatOpen:
			groups = append(groups, RepeatGroup{})
			cur = &groups[len(groups)-1]
			cur.Headers = append(cur.Headers, h.Number)
			cur.Openings = append(cur.Openings, h.Number)
		case cur != nil:
			cur.Headers = append(cur.Headers, h.Number)
			if cur.Closed && h.RepeatAlternative != 0 {
				cur.Closed = false
			}
		default:
			continue
		}

		if cur != nil && h.RepeatClose >= 0 {
			cur.Closings = append(cur.Closings, h.Number)
			cur.Closed = true
		}
	}

	return groups
}
