package timeline

// TimelineToSource converts a timeline instant to the clip's source-recording
// time. The result is not clamped to the clip's source window; callers clamp
// where relevant. The clip's playback rate must be positive.
func TimelineToSource(t float64, c *Clip) float64 {
	return c.SourceIn + (t-c.StartTime)*c.PlaybackRate
}

// SourceToTimeline converts a source-recording instant to timeline time for
// the given clip. The result is not clamped to the clip's timeline bounds.
func SourceToTimeline(s float64, c *Clip) float64 {
	return c.StartTime + (s-c.SourceIn)/c.PlaybackRate
}

// SourceDeltaToTimelineDelta converts a source-time duration to the timeline
// duration it occupies at the given playback rate.
func SourceDeltaToTimelineDelta(d, rate float64) float64 {
	return d / rate
}
