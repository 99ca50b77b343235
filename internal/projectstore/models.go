package projectstore

import (
	"encoding/json"
	"fmt"
	"time"

	"montage/internal/effects"
	"montage/internal/project"
	"montage/internal/timeline"
)

// Info summarizes a stored project without loading its timeline payloads.
type Info struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type clipDoc struct {
	ID           string  `json:"id"`
	RecordingID  string  `json:"recording_id"`
	StartTime    float64 `json:"start_time"`
	EndTime      float64 `json:"end_time"`
	PlaybackRate float64 `json:"playback_rate"`
	SourceIn     float64 `json:"source_in"`
	SourceOut    float64 `json:"source_out"`
}

type trackDoc struct {
	ID    string    `json:"id"`
	Type  string    `json:"type"`
	Clips []clipDoc `json:"clips"`
}

type effectDoc struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	StartTime float64         `json:"start_time"`
	EndTime   float64         `json:"end_time"`
	Enabled   bool            `json:"enabled"`
	ClipID    string          `json:"clip_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

type keyEventDoc struct {
	Timestamp float64 `json:"timestamp"`
	Key       string  `json:"key"`
}

type recordingDoc struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Duration       float64       `json:"duration"`
	KeyboardEvents []keyEventDoc `json:"keyboard_events,omitempty"`
	MetadataLoaded bool          `json:"metadata_loaded"`
}

func encodeTracks(tracks []*timeline.Track) ([]byte, error) {
	docs := make([]trackDoc, 0, len(tracks))
	for _, track := range tracks {
		doc := trackDoc{ID: track.ID, Type: string(track.Type), Clips: make([]clipDoc, 0, len(track.Clips))}
		for _, c := range track.Clips {
			doc.Clips = append(doc.Clips, clipDoc{
				ID:           c.ID,
				RecordingID:  c.RecordingID,
				StartTime:    c.StartTime,
				EndTime:      c.EndTime,
				PlaybackRate: c.PlaybackRate,
				SourceIn:     c.SourceIn,
				SourceOut:    c.SourceOut,
			})
		}
		docs = append(docs, doc)
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("encode tracks: %w", err)
	}
	return raw, nil
}

func decodeTracks(raw []byte) ([]*timeline.Track, error) {
	var docs []trackDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("decode tracks: %w", err)
	}
	tracks := make([]*timeline.Track, 0, len(docs))
	for _, doc := range docs {
		track := &timeline.Track{ID: doc.ID, Type: timeline.TrackType(doc.Type)}
		for _, c := range doc.Clips {
			track.Clips = append(track.Clips, &timeline.Clip{
				ID:           c.ID,
				RecordingID:  c.RecordingID,
				StartTime:    c.StartTime,
				EndTime:      c.EndTime,
				PlaybackRate: c.PlaybackRate,
				SourceIn:     c.SourceIn,
				SourceOut:    c.SourceOut,
			})
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}

func encodeEffects(store *effects.Store) ([]byte, error) {
	all := store.All()
	docs := make([]effectDoc, 0, len(all))
	for _, eff := range all {
		data, err := effects.EncodeData(eff.Data)
		if err != nil {
			return nil, fmt.Errorf("effect %s: %w", eff.ID, err)
		}
		docs = append(docs, effectDoc{
			ID:        eff.ID,
			Type:      string(eff.Type),
			StartTime: eff.StartTime,
			EndTime:   eff.EndTime,
			Enabled:   eff.Enabled,
			ClipID:    eff.ClipID,
			Data:      data,
		})
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("encode effects: %w", err)
	}
	return raw, nil
}

func decodeEffects(raw []byte) (*effects.Store, error) {
	var docs []effectDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("decode effects: %w", err)
	}
	store := effects.NewStore()
	for _, doc := range docs {
		typ := effects.Type(doc.Type)
		data, err := effects.DecodeData(typ, doc.Data)
		if err != nil {
			return nil, fmt.Errorf("effect %s: %w", doc.ID, err)
		}
		store.Add(&effects.Effect{
			ID:        doc.ID,
			Type:      typ,
			StartTime: doc.StartTime,
			EndTime:   doc.EndTime,
			Enabled:   doc.Enabled,
			ClipID:    doc.ClipID,
			Data:      data,
		})
	}
	return store, nil
}

func encodeRecordings(recordings []*project.Recording) ([]byte, error) {
	docs := make([]recordingDoc, 0, len(recordings))
	for _, rec := range recordings {
		doc := recordingDoc{
			ID:             rec.ID,
			Name:           rec.Name,
			Duration:       rec.Duration,
			MetadataLoaded: rec.MetadataLoaded,
		}
		for _, ev := range rec.KeyboardEvents {
			doc.KeyboardEvents = append(doc.KeyboardEvents, keyEventDoc{Timestamp: ev.Timestamp, Key: ev.Key})
		}
		docs = append(docs, doc)
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("encode recordings: %w", err)
	}
	return raw, nil
}

func decodeRecordings(raw []byte) ([]*project.Recording, error) {
	var docs []recordingDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("decode recordings: %w", err)
	}
	recordings := make([]*project.Recording, 0, len(docs))
	for _, doc := range docs {
		rec := &project.Recording{
			ID:             doc.ID,
			Name:           doc.Name,
			Duration:       doc.Duration,
			MetadataLoaded: doc.MetadataLoaded,
		}
		for _, ev := range doc.KeyboardEvents {
			rec.KeyboardEvents = append(rec.KeyboardEvents, project.KeyEvent{Timestamp: ev.Timestamp, Key: ev.Key})
		}
		recordings = append(recordings, rec)
	}
	return recordings, nil
}
