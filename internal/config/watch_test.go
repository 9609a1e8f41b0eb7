package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/dgallion1/formgest/internal/layout"
)

func TestWatchLayoutOptionsNoFile(t *testing.T) {
	cfg := Config{}
	err := cfg.WatchLayoutOptions(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)), func(layout.Options) {
		t.Error("apply should not be called")
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestWatchLayoutOptionsReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.yaml")
	if err := os.WriteFile(path, []byte("keywords: [OMBUDSMAN]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan layout.Options, 4)
	cfg := Config{LayoutOptionsFile: path}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := cfg.WatchLayoutOptions(ctx, log, func(o layout.Options) { got <- o }); err != nil {
		t.Fatal(err)
	}

	// A broken file is skipped; the next good write is applied.
	if err := os.WriteFile(path, []byte("keywords: [\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * reloadDelay)
	if err := os.WriteFile(path, []byte("keywords: [PEMERINTAH, DINAS]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case opts := <-got:
		want := []string{"PEMERINTAH", "DINAS"}
		if !reflect.DeepEqual(opts.Keywords, want) {
			t.Errorf("expected keywords %v, got %v", want, opts.Keywords)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("expected options to be reloaded")
	}
}

func TestWatchLayoutOptionsIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.yaml")
	if err := os.WriteFile(path, []byte(""), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan layout.Options, 1)
	cfg := Config{LayoutOptionsFile: path}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := cfg.WatchLayoutOptions(ctx, log, func(o layout.Options) { got <- o }); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	select {
	case <-got:
		t.Error("expected no reload for an unrelated file")
	case <-time.After(4 * reloadDelay):
	}
}
