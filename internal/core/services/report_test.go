package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
)

func TestReportService_Snippet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	docID := env.addDocument(t, "a.md", "Grüße aus Köln")
	doc, err := env.documents.Get(ctx, docID)
	require.NoError(t, err)

	tests := []struct {
		name       string
		start, end int
		want       string
	}{
		{"prefix", 0, 5, "Grüße"},
		{"suffix", 10, 14, "Köln"},
		{"empty", 3, 3, ""},
		{"clamped end", 10, 99, "Köln"},
		{"start past end", 50, 60, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := env.reports.Snippet(ctx, *doc, domain.Segment{StartOffset: tc.start, EndOffset: tc.end})
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReportService_SnippetUnavailable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doc := domain.Document{ID: 1, TextPath: "texts/doc-0099.txt"}
	_, err := env.reports.Snippet(ctx, doc, domain.Segment{StartOffset: 0, EndOffset: 1})
	assert.ErrorIs(t, err, domain.ErrSnippetUnavailable)
}

func TestReportService_CodeReport(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	present := env.addDocument(t, "a.md", "Hello world.")
	gone := env.addDocument(t, "b.md", "Goodbye.")
	code, err := env.codes.Add(ctx, domain.NewCode{Label: "Greeting"})
	require.NoError(t, err)
	unused, err := env.codes.Add(ctx, domain.NewCode{Label: "Unused"})
	require.NoError(t, err)

	_, err = env.segments.Add(ctx, domain.NewSegment{DocumentID: present, CodeID: code, StartOffset: 0, EndOffset: 5})
	require.NoError(t, err)
	_, err = env.segments.Add(ctx, domain.NewSegment{DocumentID: gone, CodeID: code, StartOffset: 0, EndOffset: 7})
	require.NoError(t, err)

	goneDoc, err := env.documents.Get(ctx, gone)
	require.NoError(t, err)
	require.NoError(t, env.texts.Remove(goneDoc.TextPath))

	reports, err := env.reports.CodeReport(ctx, []string{code, unused})
	require.NoError(t, err)
	require.Len(t, reports, 2)

	entries := reports[0].Entries
	require.Len(t, entries, 2)
	assert.Equal(t, "Hello", entries[0].Snippet)
	assert.False(t, entries[0].Missing)
	assert.Equal(t, domain.SnippetPlaceholder, entries[1].Snippet)
	assert.True(t, entries[1].Missing)

	assert.Equal(t, "Unused", reports[1].Code.Label)
	assert.Empty(t, reports[1].Entries)

	_, err = env.reports.CodeReport(ctx, []string{"missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportService_Overviews(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doc := env.addDocument(t, "a.md", "aaaaaaaaaa")
	empty := env.addDocument(t, "b.md", "b")
	x, err := env.codes.Add(ctx, domain.NewCode{Label: "X"})
	require.NoError(t, err)
	y, err := env.codes.Add(ctx, domain.NewCode{Label: "Y"})
	require.NoError(t, err)

	for _, seg := range []domain.NewSegment{
		{DocumentID: doc, CodeID: x, StartOffset: 0, EndOffset: 1},
		{DocumentID: doc, CodeID: x, StartOffset: 2, EndOffset: 3},
		{DocumentID: doc, CodeID: y, StartOffset: 4, EndOffset: 5},
	} {
		_, err := env.segments.Add(ctx, seg)
		require.NoError(t, err)
	}

	coding, err := env.reports.DocumentCodingOverview(ctx)
	require.NoError(t, err)
	require.Len(t, coding, 2)
	assert.Equal(t, doc, coding[0].Document.ID)
	assert.Equal(t, 3, coding[0].SegmentCount)
	assert.Equal(t, 2, coding[0].DistinctCodeCount)
	assert.Equal(t, empty, coding[1].Document.ID)
	assert.Zero(t, coding[1].SegmentCount)

	usage, err := env.reports.CodeUsage(ctx)
	require.NoError(t, err)
	require.Len(t, usage, 2)
	assert.Equal(t, 2, usage[0].SegmentCount)
	assert.Equal(t, 1, usage[1].SegmentCount)
}
