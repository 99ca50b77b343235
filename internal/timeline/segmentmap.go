package timeline

// Segment describes one span of a speed-changed clip: a contiguous source
// range placed at a timeline range, played at a multiplier on top of the
// clip's base rate. TimelineEnd-TimelineStart equals
// (SourceEnd-SourceStart)/SpeedMultiplier within floating tolerance.
type Segment struct {
	SourceStart     float64
	SourceEnd       float64
	TimelineStart   float64
	TimelineEnd     float64
	SpeedMultiplier float64
}

// SegmentMapping describes how one clip's original timeline extent was
// partitioned into new timeline segments at varying speeds. Segments are
// contiguous in source order.
type SegmentMapping struct {
	OriginalStart float64
	OriginalEnd   float64
	BaseRate      float64
	Segments      []Segment
}

// TimelineDelta returns the net timeline duration change the mapping
// introduces, or zero when the mapping is empty.
func (m *SegmentMapping) TimelineDelta() float64 {
	if m == nil || len(m.Segments) == 0 {
		return 0
	}
	last := m.Segments[len(m.Segments)-1]
	return last.TimelineEnd - m.OriginalEnd
}

// segmentOriginalExtent recomputes the segment's extent on the original
// (pre-speed-change) timeline directly from source offsets. Deriving each
// extent independently rather than by cumulative summation keeps long clips
// with many segments free of accumulated float drift.
func (m *SegmentMapping) segmentOriginalExtent(i int) (start, end float64) {
	first := m.Segments[0].SourceStart
	seg := m.Segments[i]
	start = m.OriginalStart + (seg.SourceStart-first)/m.BaseRate
	end = m.OriginalStart + (seg.SourceEnd-first)/m.BaseRate
	return start, end
}

// MapInstant remaps an instant on the original timeline through the speed
// change. Instants before the clip pass through unchanged; instants inside a
// segment interpolate linearly into the segment's new timeline range;
// instants past the last segment shift by the trailing delta. The mapping is
// monotonic non-decreasing.
func (m *SegmentMapping) MapInstant(t float64) float64 {
	if m == nil || len(m.Segments) == 0 {
		return t
	}
	if t < m.OriginalStart {
		return t
	}
	for i, seg := range m.Segments {
		segStart, segEnd := m.segmentOriginalExtent(i)
		if t <= segStart {
			return seg.TimelineStart
		}
		if t <= segEnd {
			if segEnd-segStart <= 0 {
				return seg.TimelineStart
			}
			ratio := (t - segStart) / (segEnd - segStart)
			return seg.TimelineStart + ratio*(seg.TimelineEnd-seg.TimelineStart)
		}
	}
	last := m.Segments[len(m.Segments)-1]
	_, lastEnd := m.segmentOriginalExtent(len(m.Segments) - 1)
	return last.TimelineEnd + (t - lastEnd)
}
