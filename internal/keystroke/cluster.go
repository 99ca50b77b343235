package keystroke

import (
	"sort"

	"montage/internal/project"
)

// Tunables for clustering and block sizing, all in milliseconds.
const (
	// MaxGap is the largest silence between consecutive key events that
	// still belongs to the same cluster.
	MaxGap = 2000.0
	// Padding extends each cluster on both sides in source time.
	Padding = 500.0
	// MinDuration drops timeline ranges too short to render legibly.
	MinDuration = 100.0
	// MergeTolerance joins ranges that touch within rounding error.
	MergeTolerance = 1.0
)

// Cluster is a padded group of key events in source-recording time.
type Cluster struct {
	Start float64
	End   float64
	Keys  []string
}

// ClusterEvents groups the events by gap and pads each group. Events are
// sorted by timestamp first; the input slice is not modified.
func ClusterEvents(events []project.KeyEvent) []Cluster {
	if len(events) == 0 {
		return nil
	}

	sorted := append([]project.KeyEvent(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	var clusters []Cluster
	current := Cluster{Start: sorted[0].Timestamp, End: sorted[0].Timestamp}
	current.Keys = appendKey(current.Keys, sorted[0].Key)

	for _, ev := range sorted[1:] {
		if ev.Timestamp-current.End > MaxGap {
			clusters = append(clusters, padCluster(current))
			current = Cluster{Start: ev.Timestamp, End: ev.Timestamp}
			current.Keys = appendKey(current.Keys, ev.Key)
			continue
		}
		current.End = ev.Timestamp
		current.Keys = appendKey(current.Keys, ev.Key)
	}
	clusters = append(clusters, padCluster(current))
	return clusters
}

func padCluster(c Cluster) Cluster {
	c.Start -= Padding
	if c.Start < 0 {
		c.Start = 0
	}
	c.End += Padding
	return c
}

func appendKey(keys []string, key string) []string {
	if key == "" {
		return keys
	}
	return append(keys, key)
}

// timeRange is one projected timeline extent of a cluster.
type timeRange struct {
	start float64
	end   float64
}

// mergeRanges collapses sorted-or-not ranges that overlap or sit within
// MergeTolerance of each other.
func mergeRanges(ranges []timeRange) []timeRange {
	if len(ranges) == 0 {
		return nil
	}

	sorted := append([]timeRange(nil), ranges...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].start < sorted[j].start
	})

	merged := []timeRange{sorted[0]}
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if r.start <= last.end+MergeTolerance {
			if r.end > last.end {
				last.end = r.end
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
