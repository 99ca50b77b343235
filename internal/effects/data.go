package effects

import (
	"encoding/json"
	"fmt"
)

// Data is the per-type effect payload.
type Data interface {
	// Clone returns a deep copy of the payload.
	Clone() Data
}

// ZoomData controls a zoom/crop region.
type ZoomData struct {
	Scale   float64 `json:"scale"`
	CenterX float64 `json:"centerX"`
	CenterY float64 `json:"centerY"`
}

func (d *ZoomData) Clone() Data {
	cp := *d
	return &cp
}

// ScreenData styles the screen frame (background, padding, rounding).
type ScreenData struct {
	Background   string  `json:"background"`
	Padding      float64 `json:"padding"`
	CornerRadius float64 `json:"cornerRadius"`
}

func (d *ScreenData) Clone() Data {
	cp := *d
	return &cp
}

// PluginData carries an external plugin effect and its parameters.
type PluginData struct {
	PluginID string             `json:"pluginId"`
	Params   map[string]float64 `json:"params,omitempty"`
}

func (d *PluginData) Clone() Data {
	cp := *d
	if d.Params != nil {
		cp.Params = make(map[string]float64, len(d.Params))
		for k, v := range d.Params {
			cp.Params[k] = v
		}
	}
	return &cp
}

// AnnotationData is a positioned text annotation.
type AnnotationData struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

func (d *AnnotationData) Clone() Data {
	cp := *d
	return &cp
}

// KeystrokeData ties a regenerated keystroke block back to its cluster.
type KeystrokeData struct {
	RecordingID  string   `json:"recordingId"`
	ClusterIndex int      `json:"clusterIndex"`
	RangeIndex   int      `json:"rangeIndex"`
	Keys         []string `json:"keys,omitempty"`
}

func (d *KeystrokeData) Clone() Data {
	cp := *d
	if d.Keys != nil {
		cp.Keys = append([]string(nil), d.Keys...)
	}
	return &cp
}

// KeystrokeStyleData styles every keystroke block; one instance exists per
// project.
type KeystrokeStyleData struct {
	Position string  `json:"position"`
	Size     float64 `json:"size"`
	Theme    string  `json:"theme"`
}

func (d *KeystrokeStyleData) Clone() Data {
	cp := *d
	return &cp
}

// BackgroundData styles the global background layer.
type BackgroundData struct {
	Color string `json:"color"`
}

func (d *BackgroundData) Clone() Data {
	cp := *d
	return &cp
}

// CursorData styles the global cursor layer.
type CursorData struct {
	Size      float64 `json:"size"`
	Smoothing float64 `json:"smoothing"`
}

func (d *CursorData) Clone() Data {
	cp := *d
	return &cp
}

// DefaultKeystrokeStyle returns the style payload used when the singleton
// style effect is first created.
func DefaultKeystrokeStyle() *KeystrokeStyleData {
	return &KeystrokeStyleData{Position: "bottom-center", Size: 1.0, Theme: "dark"}
}

// EncodeData serializes a payload for persistence.
func EncodeData(d Data) ([]byte, error) {
	if d == nil {
		return nil, nil
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode effect data: %w", err)
	}
	return raw, nil
}

// DecodeData deserializes a payload for the given effect type. Empty input
// yields a nil payload.
func DecodeData(typ Type, raw []byte) (Data, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var target Data
	switch typ {
	case TypeZoom:
		target = &ZoomData{}
	case TypeScreen:
		target = &ScreenData{}
	case TypePlugin:
		target = &PluginData{}
	case TypeAnnotation:
		target = &AnnotationData{}
	case TypeKeystroke:
		target = &KeystrokeData{}
	case TypeKeystrokeStyle:
		target = &KeystrokeStyleData{}
	case TypeBackground:
		target = &BackgroundData{}
	case TypeCursor:
		target = &CursorData{}
	default:
		return nil, fmt.Errorf("decode effect data: unknown effect type %q", typ)
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("decode %s effect data: %w", typ, err)
	}
	return target, nil
}
