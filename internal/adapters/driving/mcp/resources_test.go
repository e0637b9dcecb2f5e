package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
)

func TestExtractDocumentID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected int64
		ok       bool
	}{
		{"valid document URI", "mise://documents/42", 42, true},
		{"invalid prefix", "file://documents/42", 0, false},
		{"not a number", "mise://documents/doc-1", 0, false},
		{"zero", "mise://documents/0", 0, false},
		{"empty URI", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := extractDocumentID(tt.uri)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, id)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleDocumentsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil document service returns empty list", func(t *testing.T) {
		ports := validPorts()
		ports.Documents = nil
		server, err := NewServer(ports)
		require.NoError(t, err)

		result, err := server.handleDocumentsResource(ctx, makeReadResourceRequest("mise://documents"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns documents", func(t *testing.T) {
		ports := validPorts()
		ports.Documents = &mockDocumentService{documents: []domain.Document{
			{ID: 1, DisplayName: "Interview 1", OriginalFilename: "interview.docx"},
		}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		result, err := server.handleDocumentsResource(ctx, makeReadResourceRequest("mise://documents"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var docs []map[string]any
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &docs))
		require.Len(t, docs, 1)
		assert.Equal(t, "Interview 1", docs[0]["name"])
		assert.Equal(t, "interview.docx", docs[0]["original_filename"])
		assert.Equal(t, "mise://documents/1", docs[0]["uri"])
	})

	t.Run("returns error on failure", func(t *testing.T) {
		ports := validPorts()
		ports.Documents = &mockDocumentService{err: errors.New("disk error")}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, err = server.handleDocumentsResource(ctx, makeReadResourceRequest("mise://documents"))
		assert.ErrorContains(t, err, "listing documents")
	})
}

func TestServer_handleDocumentTextResource(t *testing.T) {
	ctx := context.Background()

	ports := validPorts()
	ports.Documents = &mockDocumentService{texts: map[int64]string{7: "Hello world."}}
	server, err := NewServer(ports)
	require.NoError(t, err)

	t.Run("returns canonical text", func(t *testing.T) {
		result, err := server.handleDocumentTextResource(ctx, makeReadResourceRequest("mise://documents/7"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
		assert.Equal(t, "Hello world.", result.Contents[0].Text)
	})

	t.Run("unknown document is not found", func(t *testing.T) {
		_, err := server.handleDocumentTextResource(ctx, makeReadResourceRequest("mise://documents/8"))
		assert.Error(t, err)
	})

	t.Run("malformed URI is not found", func(t *testing.T) {
		_, err := server.handleDocumentTextResource(ctx, makeReadResourceRequest("mise://documents/x"))
		assert.Error(t, err)
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		failing := validPorts()
		failing.Documents = &mockDocumentService{err: errors.New("disk error")}
		s, err := NewServer(failing)
		require.NoError(t, err)

		_, err = s.handleDocumentTextResource(ctx, makeReadResourceRequest("mise://documents/1"))
		assert.ErrorContains(t, err, "reading document text")
	})
}
