package road

// Merger joins segments which continue each other (the last node of one is the first node of the other)
// and have the same properties. It reduces the number of segments, the resulting road network stays the same.
type Merger struct {
	roads           []*Segment
	mergeCount      int
	unmergableCount int
}

func NewMerger(roads []*Segment) *Merger {
	return &Merger{
		roads: roads,
	}
}

func (m *Merger) Merge() {
	// segments by their first node
	startsAt := make(map[int64][]*Segment)
	for _, seg := range m.roads {
		if len(seg.NodeIds) < 2 {
			m.unmergableCount++
			continue
		}
		startsAt[seg.NodeIds[0]] = append(startsAt[seg.NodeIds[0]], seg)
	}

	merged := make(map[int64]bool)
	newRoads := make([]*Segment, 0, len(m.roads))
	for _, seg := range m.roads {
		if merged[seg.ID] || len(seg.NodeIds) < 2 {
			continue
		}
		merged[seg.ID] = true

		current := seg
		for {
			end := current.NodeIds[len(current.NodeIds)-1]
			foundNext := false
			for _, next := range startsAt[end] {
				if merged[next.ID] || !canMerge(current, next) {
					continue
				}
				current = mergeTwoSegments(current, next)
				merged[next.ID] = true
				m.mergeCount++
				foundNext = true
				break
			}
			if !foundNext {
				break
			}
		}
		newRoads = append(newRoads, current)
	}

	m.roads = newRoads
}

func canMerge(s1, s2 *Segment) bool {
	return s1.Type == s2.Type &&
		s1.OneWay == s2.OneWay &&
		s1.MaxSpeed == s2.MaxSpeed
}

func mergeTwoSegments(s1, s2 *Segment) *Segment {
	merged := &Segment{
		ID:       s1.ID,
		Type:     s1.Type,
		OneWay:   s1.OneWay,
		MaxSpeed: s1.MaxSpeed,
		Tags:     s1.Tags,
	}

	// the first node of s2 is the last node of s1
	merged.NodeIds = append(append(merged.NodeIds, s1.NodeIds...), s2.NodeIds[1:]...)
	if len(s1.Points) == len(s1.NodeIds) && len(s2.Points) == len(s2.NodeIds) {
		merged.Points = append(append(merged.Points, s1.Points...), s2.Points[1:]...)
	}
	return merged
}

func (m *Merger) Roads() []*Segment {
	return m.roads
}

func (m *Merger) MergeCount() int {
	return m.mergeCount
}

func (m *Merger) UnmergableRoadCount() int {
	return m.unmergableCount
}
