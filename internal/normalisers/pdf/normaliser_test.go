package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
	"github.com/custodia-labs/mise-cli/internal/core/ports/driven"
)

// createTestPDF builds a minimal PDF with one Helvetica text line per page.
func createTestPDF(pageTexts ...string) []byte {
	var objects []string

	// 1: catalog, 2: page tree, 3: font, then a page and content pair per page.
	kids := make([]string, 0, len(pageTexts))
	for i := range pageTexts {
		kids = append(kids, fmt.Sprintf("%d 0 R", 4+2*i))
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pageTexts)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	)
	for i, text := range pageTexts {
		stream := fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", text)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
				"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
	}

	buf := new(bytes.Buffer)
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, &Normaliser{}, normaliser)
}

func TestSupportedExtensions(t *testing.T) {
	assert.Equal(t, []string{".pdf"}, New().SupportedExtensions())
}

func TestNormalise_SinglePage(t *testing.T) {
	raw := &domain.RawDocument{Path: "/tmp/one.pdf", Extension: ".pdf", Content: createTestPDF("Hello")}

	text, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	assert.Contains(t, text, "Hello")
	assert.NotContains(t, text, pageSeparator)
}

func TestNormalise_PagesJoinedInOrder(t *testing.T) {
	raw := &domain.RawDocument{Path: "/tmp/two.pdf", Extension: ".pdf", Content: createTestPDF("Alpha", "Beta")}

	text, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)

	alpha := strings.Index(text, "Alpha")
	beta := strings.Index(text, "Beta")
	require.GreaterOrEqual(t, alpha, 0)
	require.Greater(t, beta, alpha)
	assert.Contains(t, text[alpha:beta], pageSeparator)
}

func TestNormalise_Deterministic(t *testing.T) {
	raw := &domain.RawDocument{Path: "/tmp/two.pdf", Extension: ".pdf", Content: createTestPDF("Alpha", "Beta")}

	first, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	second, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNormalise_NotAPDF(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
	}{
		{"plain text", []byte("definitely not a pdf")},
		{"empty", nil},
		{"truncated", createTestPDF("Hello")[:40]},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw := &domain.RawDocument{Path: "/tmp/bad.pdf", Extension: ".pdf", Content: tc.content}

			_, err := New().Normalise(context.Background(), raw)
			assert.ErrorIs(t, err, domain.ErrExtractionFailed)
			assert.Contains(t, err.Error(), "bad.pdf")
		})
	}
}

func TestNormalise_NilDocument(t *testing.T) {
	_, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Normaliser = (*Normaliser)(nil)
}
