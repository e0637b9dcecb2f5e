package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mise-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/mise-cli/internal/core/domain"
	"github.com/custodia-labs/mise-cli/internal/core/services"
	"github.com/custodia-labs/mise-cli/internal/normalisers/markdown"
)

// testServices are services over shared in-memory stores.
type testServices struct {
	texts     *memory.TextStore
	documents *services.DocumentService
	codes     *services.CodeService
	segments  *services.SegmentService
}

// setupTestServices wires the commands to fresh in-memory services.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()
	store := memory.NewStore()
	texts := memory.NewTextStore()

	docs := store.DocumentStore()
	codes := store.CodeStore()
	segments := store.SegmentStore()

	ts := &testServices{
		texts:     texts,
		documents: services.NewDocumentService(docs, segments, texts),
		codes:     services.NewCodeService(codes, segments),
		segments:  services.NewSegmentService(segments, docs, codes, texts),
	}
	registry := services.NewNormaliserRegistry(markdown.New())

	SetServices(Services{
		Documents: ts.documents,
		Imports:   services.NewImportService(registry, texts, ts.documents),
		Codes:     ts.codes,
		Segments:  ts.segments,
		Reports:   services.NewReportService(docs, codes, segments, texts),
		Texts:     texts,
	})
	t.Cleanup(func() { SetServices(Services{}) })
	return ts
}

// addDocument stores text and registers it directly.
func (ts *testServices) addDocument(t *testing.T, name, text string) int64 {
	t.Helper()
	path, err := ts.texts.Write(text)
	require.NoError(t, err)
	id, err := ts.documents.Register(context.Background(), name, path)
	require.NoError(t, err)
	return id
}

func (ts *testServices) addCode(t *testing.T, code domain.NewCode) string {
	t.Helper()
	id, err := ts.codes.Add(context.Background(), code)
	require.NoError(t, err)
	return id
}

// executeCommand runs the root command with args and returns its output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	if closeErr := closeProject(); err == nil {
		err = closeErr
	}
	return buf.String(), err
}

// resetFlags restores every flag to its default so runs do not leak.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}
