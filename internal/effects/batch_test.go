package effects_test

import (
	"testing"

	"montage/internal/effects"
)

func TestApplyBatchRemovalWinsOverUpdate(t *testing.T) {
	store := effects.NewStore(
		&effects.Effect{ID: "a", Type: effects.TypeZoom, StartTime: 0, EndTime: 1000},
		&effects.Effect{ID: "b", Type: effects.TypeZoom, StartTime: 1000, EndTime: 2000},
	)

	batch := effects.NewBatch()
	batch.Update("a", effects.RangePatch(500, 1500))
	batch.Remove("a")
	store.ApplyBatch(batch)

	if store.ByID("a") != nil {
		t.Fatal("effect queued for removal survived the batch")
	}
	if store.ByID("b") == nil {
		t.Fatal("untouched effect was dropped")
	}
}

func TestApplyBatchShallowMerge(t *testing.T) {
	store := effects.NewStore(&effects.Effect{
		ID:        "a",
		Type:      effects.TypeAnnotation,
		StartTime: 100,
		EndTime:   200,
		Enabled:   true,
		Data:      &effects.AnnotationData{Text: "note"},
	})

	batch := effects.NewBatch()
	end := 900.0
	batch.Update("a", effects.Patch{EndTime: &end})
	store.ApplyBatch(batch)

	got := store.ByID("a")
	if got.StartTime != 100 || got.EndTime != 900 {
		t.Fatalf("merged range = [%v, %v), want [100, 900)", got.StartTime, got.EndTime)
	}
	if data, ok := got.Data.(*effects.AnnotationData); !ok || data.Text != "note" {
		t.Fatalf("unpatched fields changed: %#v", got.Data)
	}
}

func TestApplyBatchAppendsAdditions(t *testing.T) {
	store := effects.NewStore()
	batch := effects.NewBatch()
	batch.Add(&effects.Effect{ID: "x", Type: effects.TypeZoom})
	batch.Add(&effects.Effect{ID: "y", Type: effects.TypeScreen})
	store.ApplyBatch(batch)

	all := store.All()
	if len(all) != 2 || all[0].ID != "x" || all[1].ID != "y" {
		t.Fatalf("additions not appended in order: %#v", all)
	}
}

func TestUpdateMergesSuccessivePatches(t *testing.T) {
	store := effects.NewStore(&effects.Effect{ID: "a", Type: effects.TypeZoom, StartTime: 0, EndTime: 100})

	batch := effects.NewBatch()
	start := 10.0
	end := 50.0
	batch.Update("a", effects.Patch{StartTime: &start})
	batch.Update("a", effects.Patch{EndTime: &end})
	store.ApplyBatch(batch)

	got := store.ByID("a")
	if got.StartTime != 10 || got.EndTime != 50 {
		t.Fatalf("successive patches not merged: [%v, %v)", got.StartTime, got.EndTime)
	}
}

func TestEmptyBatch(t *testing.T) {
	batch := effects.NewBatch()
	if !batch.Empty() {
		t.Fatal("new batch should be empty")
	}
	batch.Remove("a")
	if batch.Empty() {
		t.Fatal("batch with removal should not be empty")
	}
	if batch.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", batch.Size())
	}
}
