package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapLookup resolves text paths from a fixed map.
type mapLookup map[string]int64

func (m mapLookup) LookupID(_ context.Context, textPath string) (int64, bool, error) {
	id, ok := m[textPath]
	return id, ok, nil
}

func newTestWatcher(t *testing.T, lookup Lookup) (*Watcher, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "texts")
	require.NoError(t, os.Mkdir(dir, 0700))

	w, err := New(dir, lookup, 20*time.Millisecond)
	require.NoError(t, err)
	return w, dir
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		op   fsnotify.Op
		want ChangeKind
	}{
		{fsnotify.Write, ChangeModified},
		{fsnotify.Remove, ChangeRemoved},
		{fsnotify.Rename, ChangeRenamed},
		{fsnotify.Write | fsnotify.Remove, ChangeRemoved},
		{fsnotify.Write | fsnotify.Rename, ChangeRenamed},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, kindOf(tc.op), tc.op.String())
	}
}

func TestWatcher_Record(t *testing.T) {
	w, dir := newTestWatcher(t, mapLookup{})
	t.Cleanup(func() { _ = w.fsw.Close() })

	tests := []struct {
		name     string
		file     string
		op       fsnotify.Op
		recorded bool
	}{
		{"write", "doc-0001.txt", fsnotify.Write, true},
		{"remove", "doc-0002.txt", fsnotify.Remove, true},
		{"rename", "doc-0003.txt", fsnotify.Rename, true},
		{"create ignored", "doc-0004.txt", fsnotify.Create, false},
		{"chmod ignored", "doc-0005.txt", fsnotify.Chmod, false},
		{"hidden ignored", ".doc-0006.txt.swp", fsnotify.Write, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.file)
			w.record(fsnotify.Event{Name: path, Op: tc.op})

			_, ok := w.pending[path]
			assert.Equal(t, tc.recorded, ok)
		})
	}
}

func TestWatcher_FlushReportsRegisteredOnly(t *testing.T) {
	w, dir := newTestWatcher(t, mapLookup{"texts/doc-0001.txt": 7})
	t.Cleanup(func() { _ = w.fsw.Close() })

	w.record(fsnotify.Event{Name: filepath.Join(dir, "doc-0001.txt"), Op: fsnotify.Write})
	w.record(fsnotify.Event{Name: filepath.Join(dir, "doc-0001.txt"), Op: fsnotify.Remove})
	w.record(fsnotify.Event{Name: filepath.Join(dir, "doc-0002.txt"), Op: fsnotify.Write})

	w.flush(context.Background())

	require.Len(t, w.changes, 1)
	change := <-w.changes
	assert.Equal(t, Change{TextPath: "texts/doc-0001.txt", DocumentID: 7, Kind: ChangeRemoved}, change)
	assert.Equal(t, "texts/doc-0001.txt (document 7): removed", change.String())
	assert.Empty(t, w.pending)
}

func TestWatcher_Run(t *testing.T) {
	w, dir := newTestWatcher(t, mapLookup{"texts/doc-0001.txt": 1})
	path := filepath.Join(dir, "doc-0001.txt")
	require.NoError(t, os.WriteFile(path, []byte("Hello"), 0600))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Edit again once the watcher is running.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("Jello"), 0600))

	select {
	case change := <-w.Changes():
		assert.Equal(t, int64(1), change.DocumentID)
		assert.Equal(t, "texts/doc-0001.txt", change.TextPath)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}

	// Drain until closed.
	for range w.Changes() {
	}
}

func TestNew_MissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"), mapLookup{}, 0)
	assert.Error(t, err)
}
