package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/dgallion1/formgest/internal/layout"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestNewJob(t *testing.T) {
	a := NewJob("form.png", []byte("img"), layout.ModeTagged)
	b := NewJob("form.png", []byte("img"), layout.ModeTagged)

	if a.ID == "" || a.ID == b.ID {
		t.Errorf("expected distinct non-empty IDs, got %q and %q", a.ID, b.ID)
	}
	if a.Status != StatusQueued {
		t.Errorf("expected status %q, got %q", StatusQueued, a.Status)
	}
	if a.ContentHash != ContentHashHex([]byte("img")) {
		t.Errorf("expected content hash of upload, got %q", a.ContentHash)
	}
	if string(a.FileData()) != "img" {
		t.Errorf("expected file data %q, got %q", "img", a.FileData())
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := &Job{
		ID:        "test-1",
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusRecognizing, "recognizing"},
		{StatusBuilding, "building"},
		{StatusRendering, "rendering"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		// Small sleep to ensure time difference is detectable.
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
}

func TestJobStatusDone(t *testing.T) {
	for _, s := range []JobStatus{StatusQueued, StatusLoading, StatusRecognizing, StatusBuilding, StatusRendering} {
		if s.Done() {
			t.Errorf("expected %q not done", s)
		}
	}
	if !StatusCompleted.Done() || !StatusFailed.Done() {
		t.Error("expected completed and failed to be done")
	}
}

func TestJob_Fail(t *testing.T) {
	job := &Job{ID: "fail", Status: StatusRecognizing, UpdatedAt: time.Now()}
	job.Fail("recognizing", errors.New("quota exceeded"))

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Errorf("expected status %q, got %q", StatusFailed, snap.Status)
	}
	if snap.Phase != "recognizing" {
		t.Errorf("expected phase recognizing, got %q", snap.Phase)
	}
	if snap.Error != "quota exceeded" {
		t.Errorf("expected error message, got %q", snap.Error)
	}
	if job.Result() != nil {
		t.Error("expected no result on failure")
	}
}

func TestJob_Complete(t *testing.T) {
	job := NewJob("a.txt", []byte("Nama: Budi"), layout.ModeTagged)
	res := &Result{Elements: []layout.Element{layout.HeaderText{Content: "Nama: Budi"}}}
	job.Complete(res)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Errorf("expected completed, got %q", snap.Status)
	}
	if snap.Elements != 1 {
		t.Errorf("expected 1 element, got %d", snap.Elements)
	}
	if job.Result() != res {
		t.Error("expected stored result")
	}
	if job.FileData() != nil {
		t.Error("expected upload bytes released after completion")
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "store-1", UpdatedAt: time.Now()}
	store.Put(job)

	got := store.Get("store-1")
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.ID != "store-1" {
		t.Errorf("expected ID %q, got %q", "store-1", got.ID)
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 job, got %d", store.Len())
	}
}

func TestJobStore_GetMissing(t *testing.T) {
	store := NewJobStore(time.Hour)
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := &Job{ID: "old", UpdatedAt: time.Now()}
	store.Put(expired)

	// Wait for the TTL to pass.
	time.Sleep(100 * time.Millisecond)

	fresh := &Job{ID: "new", UpdatedAt: time.Now()}
	store.Put(fresh)

	store.Cleanup()

	if store.Get("old") != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get("new") == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}

func TestJobStore_CleanupEmpty(t *testing.T) {
	store := NewJobStore(time.Hour)
	// Should not panic on empty store.
	store.Cleanup()
}
