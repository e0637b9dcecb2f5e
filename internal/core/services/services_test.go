package services

import (
	"context"
	"testing"

	"github.com/custodia-labs/mise-cli/internal/adapters/driven/storage/memory"
)

// testEnv bundles services over shared in-memory stores.
type testEnv struct {
	store *memory.Store
	texts *memory.TextStore

	documents *DocumentService
	codes     *CodeService
	segments  *SegmentService
	reports   *ReportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	texts := memory.NewTextStore()

	docs := store.DocumentStore()
	codes := store.CodeStore()
	segments := store.SegmentStore()

	return &testEnv{
		store:     store,
		texts:     texts,
		documents: NewDocumentService(docs, segments, texts),
		codes:     NewCodeService(codes, segments),
		segments:  NewSegmentService(segments, docs, codes, texts),
		reports:   NewReportService(docs, codes, segments, texts),
	}
}

// addDocument stores text and registers it as a document.
func (e *testEnv) addDocument(t *testing.T, name, text string) int64 {
	t.Helper()
	path, err := e.texts.Write(text)
	if err != nil {
		t.Fatalf("writing text: %v", err)
	}
	id, err := e.documents.Register(context.Background(), name, path)
	if err != nil {
		t.Fatalf("registering document: %v", err)
	}
	return id
}
