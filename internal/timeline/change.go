package timeline

// ChangeType names the structural edit a ClipChange describes.
type ChangeType string

const (
	ChangeAdd       ChangeType = "add"
	ChangeDelete    ChangeType = "delete"
	ChangeTrimStart ChangeType = "trim-start"
	ChangeTrimEnd   ChangeType = "trim-end"
	ChangeSplit     ChangeType = "split"
	ChangeReorder   ChangeType = "reorder"
	ChangeRate      ChangeType = "rate-change"
	ChangeUpdate    ChangeType = "update"
	ChangeSpeedUp   ChangeType = "speed-up"
)

// ClipChange describes one clip edit for the sync engine. It is created once
// by the clip-mutation primitive that performed the edit and consumed exactly
// once by the orchestrator; it is never persisted.
//
// Before is nil only for add. After is nil only for delete and split (a split
// produces new clips rather than mutating the original).
type ClipChange struct {
	Type            ChangeType
	ClipID          string
	RecordingID     string
	Before          *ClipState
	After           *ClipState
	TimelineDelta   float64
	NewClipIDs      []string
	Segments        *SegmentMapping
	SourceTrackType TrackType
}

// NewChange builds a ClipChange for a mutation of an existing clip.
func NewChange(typ ChangeType, clipID, recordingID string, before, after *ClipState, delta float64) *ClipChange {
	return &ClipChange{
		Type:          typ,
		ClipID:        clipID,
		RecordingID:   recordingID,
		Before:        before,
		After:         after,
		TimelineDelta: delta,
	}
}

// WithNewClips records the ids of clips the edit created, in timeline order.
func (c *ClipChange) WithNewClips(ids ...string) *ClipChange {
	c.NewClipIDs = ids
	return c
}

// WithSegments attaches the speed-change segment mapping.
func (c *ClipChange) WithSegments(m *SegmentMapping) *ClipChange {
	c.Segments = m
	return c
}

// WithSourceTrack records the track type the edit originated on.
func (c *ClipChange) WithSourceTrack(t TrackType) *ClipChange {
	c.SourceTrackType = t
	return c
}
