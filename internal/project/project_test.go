package project

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mise-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/mise-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/mise-cli/internal/core/domain"
)

func createTestProject(t *testing.T) string {
	t.Helper()
	root, err := Create("study", t.TempDir())
	require.NoError(t, err)
	return root
}

func openTestProject(t *testing.T, root string) *Project {
	t.Helper()
	p, err := Open(root)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestCreate_Layout(t *testing.T) {
	parent := t.TempDir()

	root, err := Create("study", parent)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(parent, "study.mise"), root)

	marker, err := os.ReadFile(filepath.Join(root, MarkerFileName))
	require.NoError(t, err)
	assert.Equal(t, "This is a mise project\n", string(marker))

	assert.FileExists(t, filepath.Join(root, sqlite.DBFileName))
	assert.FileExists(t, filepath.Join(root, file.MetaDirName, file.MetadataFileName))
	assert.DirExists(t, filepath.Join(root, "texts"))
	assert.True(t, IsProject(root))
}

func TestCreate_StripsSuffix(t *testing.T) {
	parent := t.TempDir()

	root, err := Create(" study.mise ", parent)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(parent, "study.mise"), root)
}

func TestCreate_Errors(t *testing.T) {
	parent := t.TempDir()

	tests := []struct {
		name, project, parent string
		wantErr               error
	}{
		{"empty name", "", parent, domain.ErrInvalidInput},
		{"only suffix", ".mise", parent, domain.ErrInvalidInput},
		{"separator", "a/b", parent, domain.ErrInvalidInput},
		{"dot dot", "..", parent, domain.ErrInvalidInput},
		{"missing parent", "study", filepath.Join(parent, "nope"), domain.ErrInvalidInput},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Create(tc.project, tc.parent)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCreate_Exists(t *testing.T) {
	parent := t.TempDir()
	_, err := Create("study", parent)
	require.NoError(t, err)

	_, err = Create("study", parent)
	assert.ErrorIs(t, err, domain.ErrProjectExists)
	assert.True(t, IsProject(filepath.Join(parent, "study.mise")))
}

func TestCreate_ParentIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))

	_, err := Create("study", path)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOpen_NotAProject(t *testing.T) {
	_, err := Open(t.TempDir())
	assert.ErrorIs(t, err, domain.ErrNotAProject)
}

func TestOpen_UnsupportedVersion(t *testing.T) {
	root := createTestProject(t)

	meta, err := file.NewMetadataStore(root)
	require.NoError(t, err)
	md := domain.DefaultProjectMetadata()
	md.Version = domain.MetadataVersion + 1
	require.NoError(t, meta.Save(md))

	_, err = Open(root)
	assert.ErrorIs(t, err, domain.ErrUnsupportedVersion)
}

func TestOpen_Metadata(t *testing.T) {
	root := createTestProject(t)
	p := openTestProject(t, root)

	assert.Equal(t, "study", p.Name)
	assert.Equal(t, root, p.Root)
	assert.Equal(t, domain.DefaultProjectMetadata(), p.Metadata)
	assert.Equal(t, filepath.Join(root, "texts"), p.Texts.Dir())
}

func TestClose_Idempotent(t *testing.T) {
	p, err := Open(createTestProject(t))
	require.NoError(t, err)

	require.NoError(t, p.Close())
	assert.NoError(t, p.Close())
}

func TestResolve(t *testing.T) {
	parent := t.TempDir()
	root, err := Create("study", parent)
	require.NoError(t, err)

	t.Run("project itself", func(t *testing.T) {
		got, err := Resolve(root)
		require.NoError(t, err)
		assert.Equal(t, root, got)
	})

	t.Run("nested directory", func(t *testing.T) {
		got, err := Resolve(filepath.Join(root, "texts"))
		require.NoError(t, err)
		assert.Equal(t, root, got)
	})

	t.Run("single child", func(t *testing.T) {
		got, err := Resolve(parent)
		require.NoError(t, err)
		assert.Equal(t, root, got)
	})

	t.Run("ambiguous children", func(t *testing.T) {
		_, err := Create("other", parent)
		require.NoError(t, err)

		_, err = Resolve(parent)
		assert.ErrorIs(t, err, domain.ErrNotAProject)
	})

	t.Run("nothing", func(t *testing.T) {
		_, err := Resolve(t.TempDir())
		assert.ErrorIs(t, err, domain.ErrNotAProject)
	})
}

func TestRegistry_Extensions(t *testing.T) {
	assert.Equal(t, []string{".doc", ".docx", ".markdown", ".md", ".pdf"}, NewRegistry().SupportedExtensions())
}

func TestProject_EndToEnd(t *testing.T) {
	root := createTestProject(t)
	ctx := context.Background()

	src := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(src, []byte("Hello world.\r\nSecond line."), 0600))

	p := openTestProject(t, root)

	report := p.Imports.Import(ctx, []string{src, filepath.Join(t.TempDir(), "old.doc")})
	require.Len(t, report.DocumentIDs, 1)
	require.Len(t, report.Errors, 1)
	assert.ErrorIs(t, report.Errors[0], domain.ErrFormatUnsupported)
	docID := report.DocumentIDs[0]

	doc, err := p.Documents.Get(ctx, docID)
	require.NoError(t, err)
	assert.Equal(t, "texts/doc-0001.txt", doc.TextPath)
	assert.FileExists(t, filepath.Join(root, filepath.FromSlash(doc.TextPath)))

	code, err := p.Codes.Add(ctx, domain.NewCode{Label: "Greeting", Color: "#ff8800"})
	require.NoError(t, err)
	segID, err := p.Segments.Add(ctx, domain.NewSegment{DocumentID: docID, CodeID: code, StartOffset: 0, EndOffset: 5})
	require.NoError(t, err)

	require.NoError(t, p.Close())

	// Everything survives a reopen.
	p = openTestProject(t, root)

	seg, err := p.Segments.Get(ctx, segID)
	require.NoError(t, err)
	assert.Equal(t, "#ff8800", seg.CodeColor)

	snippet, err := p.Reports.Snippet(ctx, *doc, *seg)
	require.NoError(t, err)
	assert.Equal(t, "Hello", snippet)

	text, err := p.Documents.Text(ctx, docID)
	require.NoError(t, err)
	assert.Equal(t, "Hello world.\nSecond line.", text)

	n, textPath, err := p.Documents.Delete(ctx, docID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoFileExists(t, filepath.Join(root, filepath.FromSlash(textPath)))

	segments, err := p.Segments.ListForCode(ctx, code)
	require.NoError(t, err)
	assert.Empty(t, segments)
}
