package effects

import (
	"fmt"
	"strconv"
	"strings"
)

// Type identifies an effect kind on the timeline.
type Type string

const (
	TypeBackground     Type = "background"
	TypeCursor         Type = "cursor"
	TypeZoom           Type = "zoom"
	TypeScreen         Type = "screen"
	TypePlugin         Type = "plugin"
	TypeAnnotation     Type = "annotation"
	TypeKeystroke      Type = "keystroke"
	TypeKeystrokeStyle Type = "keystroke-style"
)

// BindingKind describes how an effect is anchored to the timeline.
type BindingKind int

const (
	// BindingGlobal effects span the whole timeline and are never moved by sync.
	BindingGlobal BindingKind = iota
	// BindingClipBound effects mirror the range of the clip they reference.
	BindingClipBound
	// BindingTimeBased effects hold an independent anchored timeline range.
	BindingTimeBased
	// BindingManaged effects are fully regenerated from recording metadata.
	BindingManaged
)

var typeBindings = map[Type]BindingKind{
	TypeBackground:     BindingGlobal,
	TypeCursor:         BindingGlobal,
	TypeZoom:           BindingTimeBased,
	TypeScreen:         BindingTimeBased,
	TypePlugin:         BindingTimeBased,
	TypeAnnotation:     BindingTimeBased,
	TypeKeystroke:      BindingManaged,
	TypeKeystrokeStyle: BindingManaged,
}

// Binding returns the binding kind declared for the effect type.
func (t Type) Binding() BindingKind {
	return typeBindings[t]
}

// Effect is a time-anchored (or clip-anchored) overlay layered on the
// timeline.
type Effect struct {
	ID        string
	Type      Type
	StartTime float64
	EndTime   float64
	Enabled   bool
	ClipID    string
	Data      Data
}

// Binding returns the effect's effective binding kind. A clip reference makes
// any non-global effect clip-bound regardless of its declared kind.
func (e *Effect) Binding() BindingKind {
	kind := e.Type.Binding()
	if kind == BindingGlobal {
		return BindingGlobal
	}
	if e.ClipID != "" {
		return BindingClipBound
	}
	return kind
}

// Clone returns a deep copy of the effect. The caller assigns a fresh id.
func (e *Effect) Clone() *Effect {
	clone := *e
	if e.Data != nil {
		clone.Data = e.Data.Clone()
	}
	return &clone
}

// KeystrokeStyleID is the fixed id of the singleton keystroke style effect.
const KeystrokeStyleID = "keystroke-style"

const managedKeystrokePrefix = "keystroke|"

// ManagedKeystrokeID derives the deterministic id of a regenerated keystroke
// block from its recording, cluster, and merged-range indexes.
func ManagedKeystrokeID(recordingID string, cluster, rangeIndex int) string {
	return fmt.Sprintf("%s%s|%d|%d", managedKeystrokePrefix, recordingID, cluster, rangeIndex)
}

// IsManagedKeystrokeID reports whether the id belongs to a regenerated
// keystroke block. User-authored keystroke effects carry ordinary ids and are
// never touched by regeneration.
func IsManagedKeystrokeID(id string) bool {
	if !strings.HasPrefix(id, managedKeystrokePrefix) {
		return false
	}
	parts := strings.Split(id, "|")
	if len(parts) != 4 {
		return false
	}
	if _, err := strconv.Atoi(parts[2]); err != nil {
		return false
	}
	_, err := strconv.Atoi(parts[3])
	return err == nil
}
