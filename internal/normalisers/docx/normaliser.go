// Package docx extracts paragraph text from Office Open XML documents.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
	"github.com/custodia-labs/mise-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// paragraphSeparator joins body paragraphs.
const paragraphSeparator = "\n\n"

// Normaliser handles DOCX documents.
type Normaliser struct{}

// New creates a new DOCX normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".docx"}
}

// Normalise joins the text of the document's body paragraphs.
// Empty paragraphs are kept so paragraph spacing survives.
func (n *Normaliser) Normalise(ctx context.Context, raw *domain.RawDocument) (string, error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}

	// Open as ZIP archive
	reader, err := zip.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrExtractionFailed, raw.Path, err)
	}

	content, err := readDocumentXML(reader)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrExtractionFailed, raw.Path, err)
	}

	paragraphs, err := parseDocumentXML(ctx, content)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrExtractionFailed, raw.Path, err)
	}

	return strings.Join(paragraphs, paragraphSeparator), nil
}

var errNoDocumentXML = errors.New("missing word/document.xml")

// readDocumentXML returns the raw bytes of word/document.xml.
func readDocumentXML(reader *zip.Reader) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()

		return io.ReadAll(rc)
	}
	return nil, errNoDocumentXML
}

// parseDocumentXML returns the text of each paragraph directly under
// w:body. Paragraphs nested in tables or text boxes are skipped.
func parseDocumentXML(ctx context.Context, content []byte) ([]string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(content))

	var (
		paragraphs []string
		current    strings.Builder
		stack      []string
		inText     bool
	)

	// inBodyParagraph reports whether the innermost open w:p is a body child.
	inBodyParagraph := func() bool {
		for i := len(stack) - 1; i >= 0; i-- {
			if stack[i] == "p" {
				return i > 0 && stack[i-1] == "body"
			}
		}
		return false
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing document.xml: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			stack = append(stack, el.Name.Local)
			if !inBodyParagraph() {
				continue
			}
			inRun := len(stack) > 1 && stack[len(stack)-2] == "r"
			switch el.Name.Local {
			case "p":
				current.Reset()
			case "t":
				inText = inRun
			case "tab":
				// Tab stops in paragraph properties share the name.
				if inRun {
					current.WriteString("\t")
				}
			case "br", "cr":
				if inRun {
					current.WriteString("\n")
				}
			}

		case xml.EndElement:
			if el.Name.Local == "t" {
				inText = false
			}
			if el.Name.Local == "p" && inBodyParagraph() {
				paragraphs = append(paragraphs, current.String())
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case xml.CharData:
			if inText && inBodyParagraph() {
				current.Write(el)
			}
		}
	}

	return paragraphs, nil
}
