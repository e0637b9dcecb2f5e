// Package watch reports out-of-band changes to a project's canonical texts.
//
// Canonical texts are immutable once registered. Any write, removal or
// rename seen here means snippets of that document may no longer match
// their segments.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/mise-cli/internal/logger"
)

// DefaultDebounce is how long changes are collected before they are reported.
const DefaultDebounce = 300 * time.Millisecond

const changeBuffer = 100

// ChangeKind is the kind of change seen on a text file.
type ChangeKind string

// Reported change kinds.
const (
	ChangeModified ChangeKind = "modified"
	ChangeRemoved  ChangeKind = "removed"
	ChangeRenamed  ChangeKind = "renamed"
)

// Change is an out-of-band change to a registered text file.
type Change struct {
	// TextPath is the document's text path, relative to the project root.
	TextPath string

	// DocumentID is the document registered for TextPath.
	DocumentID int64

	Kind ChangeKind
}

// String renders the change for the user.
func (c Change) String() string {
	return fmt.Sprintf("%s (document %d): %s", c.TextPath, c.DocumentID, c.Kind)
}

// Lookup resolves a text path to its document.
type Lookup interface {
	LookupID(ctx context.Context, textPath string) (int64, bool, error)
}

// Watcher watches a text directory and emits changes to registered files.
type Watcher struct {
	dir      string
	lookup   Lookup
	debounce time.Duration
	fsw      *fsnotify.Watcher

	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	changes chan Change
}

// New creates a watcher over dir, the project's text directory.
// A non-positive debounce uses DefaultDebounce.
func New(dir string, lookup Lookup, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	return &Watcher{
		dir:      dir,
		lookup:   lookup,
		debounce: debounce,
		fsw:      fsw,
		pending:  make(map[string]fsnotify.Op),
		changes:  make(chan Change, changeBuffer),
	}, nil
}

// Changes returns the channel of reported changes.
// It is closed when Run returns.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Run processes file events until ctx is done or the watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.changes)
	defer w.fsw.Close()

	logger.Debug("Watching %s", w.dir)

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.record(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

// record accumulates an event for the next flush. Creations are ignored:
// a new file is not registered yet.
func (w *Watcher) record(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return
	}

	w.pendingMu.Lock()
	w.pending[event.Name] |= event.Op
	w.pendingMu.Unlock()
}

// flush reports pending events on registered files, in path order.
func (w *Watcher) flush(ctx context.Context) {
	w.pendingMu.Lock()
	pending := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	paths := make([]string, 0, len(pending))
	for path := range pending {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		change, ok := w.resolve(ctx, path, pending[path])
		if !ok {
			continue
		}
		select {
		case w.changes <- change:
		case <-ctx.Done():
			return
		}
	}
}

// resolve turns an event on path into a Change if path is registered.
func (w *Watcher) resolve(ctx context.Context, path string, op fsnotify.Op) (Change, bool) {
	textPath := filepath.ToSlash(filepath.Join(filepath.Base(w.dir), filepath.Base(path)))

	id, ok, err := w.lookup.LookupID(ctx, textPath)
	if err != nil {
		logger.Warn("Looking up %s: %v", textPath, err)
		return Change{}, false
	}
	if !ok {
		logger.Debug("Ignoring change to unregistered %s", textPath)
		return Change{}, false
	}

	return Change{TextPath: textPath, DocumentID: id, Kind: kindOf(op)}, true
}

// kindOf picks the most severe kind in op.
func kindOf(op fsnotify.Op) ChangeKind {
	switch {
	case op.Has(fsnotify.Remove):
		return ChangeRemoved
	case op.Has(fsnotify.Rename):
		return ChangeRenamed
	default:
		return ChangeModified
	}
}
