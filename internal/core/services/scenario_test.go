package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
)

func TestScenario_CodeLifecycle(t *testing.T) {
	env := newTestEnv(t)
	svc := newImportService(env, env.documents)
	ctx := context.Background()

	report := svc.Import(ctx, []string{writeFile(t, "notes.md", "Hello world.\nSecond line.")})
	require.Empty(t, report.Errors)
	require.Len(t, report.DocumentIDs, 1)
	n := report.DocumentIDs[0]

	c, err := env.codes.Add(ctx, domain.NewCode{Label: "Greeting"})
	require.NoError(t, err)
	segID, err := env.segments.Add(ctx, domain.NewSegment{DocumentID: n, CodeID: c, StartOffset: 0, EndOffset: 5})
	require.NoError(t, err)

	doc, err := env.documents.Get(ctx, n)
	require.NoError(t, err)
	seg, err := env.segments.Get(ctx, segID)
	require.NoError(t, err)
	snippet, err := env.reports.Snippet(ctx, *doc, *seg)
	require.NoError(t, err)
	assert.Equal(t, "Hello", snippet)

	require.NoError(t, env.codes.Delete(ctx, c))
	segments, err := env.segments.ListForDocument(ctx, n)
	require.NoError(t, err)
	assert.Empty(t, segments)

	c, err = env.codes.Add(ctx, domain.NewCode{Label: "Greeting"})
	require.NoError(t, err)
	segID, err = env.segments.Add(ctx, domain.NewSegment{DocumentID: n, CodeID: c, StartOffset: 0, EndOffset: 5})
	require.NoError(t, err)

	at, err := env.segments.AtPosition(ctx, n, 3)
	require.NoError(t, err)
	require.Len(t, at, 1)
	assert.Equal(t, segID, at[0].ID)
}

func TestScenario_TwoLevelTaxonomy(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, err := env.codes.Add(ctx, domain.NewCode{Label: "A"})
	require.NoError(t, err)
	b, err := env.codes.Add(ctx, domain.NewCode{Label: "B", ParentID: &a})
	require.NoError(t, err)

	_, err = env.codes.Add(ctx, domain.NewCode{Label: "C", ParentID: &b})
	assert.ErrorIs(t, err, domain.ErrInvalidParent)

	codes, err := env.codes.List(ctx)
	require.NoError(t, err)
	require.Len(t, codes, 2)
	assert.Equal(t, "A", codes[0].Label)
	assert.Equal(t, "B", codes[1].Label)
}

func TestScenario_DocumentDeletion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	d1 := env.addDocument(t, "a.md", "first text")
	d2 := env.addDocument(t, "b.md", "second text")
	c, err := env.codes.Add(ctx, domain.NewCode{Label: "X"})
	require.NoError(t, err)
	_, err = env.segments.Add(ctx, domain.NewSegment{DocumentID: d1, CodeID: c, StartOffset: 0, EndOffset: 5})
	require.NoError(t, err)
	_, err = env.segments.Add(ctx, domain.NewSegment{DocumentID: d2, CodeID: c, StartOffset: 0, EndOffset: 6})
	require.NoError(t, err)

	_, _, err = env.documents.Delete(ctx, d1)
	require.NoError(t, err)

	d3 := env.addDocument(t, "c.md", "third")
	assert.Greater(t, d3, d2)

	usage, err := env.codes.UsageOverview(ctx)
	require.NoError(t, err)
	require.Len(t, usage, 1)
	assert.Equal(t, 1, usage[0].SegmentCount)
	assert.Equal(t, 1, usage[0].DocumentCount)
}
