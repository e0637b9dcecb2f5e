package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
	"github.com/custodia-labs/mise-cli/internal/core/ports/driven"
)

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

const documentColumns = "id, original_filename, display_name, text_path, doc_uuid, created_at"

// Register inserts a new document row.
func (s *documentStore) Register(ctx context.Context, originalFilename, textPath string) (int64, error) {
	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO documents (original_filename, display_name, text_path, created_at, doc_uuid)
		VALUES (?, ?, ?, ?, ?)
	`, originalFilename, originalFilename, textPath, formatTime(s.store.now()), uuid.New().String())
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("registering %s: %w", textPath, domain.ErrDuplicateDocument)
		}
		return 0, fmt.Errorf("registering document: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading document id: %w", err)
	}
	return id, nil
}

// Get retrieves a document by ID.
func (s *documentStore) Get(ctx context.Context, id int64) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE id = ?", id)

	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return doc, err
}

// LookupID resolves an exact text path to a document ID.
func (s *documentStore) LookupID(ctx context.Context, textPath string) (int64, bool, error) {
	var id int64
	err := s.store.db.QueryRowContext(ctx,
		"SELECT id FROM documents WHERE text_path = ?", textPath).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("looking up document: %w", err)
	}
	return id, true, nil
}

// List returns all documents ordered by ID.
func (s *documentStore) List(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+documentColumns+" FROM documents ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// Rename updates the display name only.
func (s *documentStore) Rename(ctx context.Context, id int64, displayName string) (int64, error) {
	res, err := s.store.db.ExecContext(ctx,
		"UPDATE documents SET display_name = ? WHERE id = ?", displayName, id)
	if err != nil {
		return 0, fmt.Errorf("renaming document: %w", err)
	}
	return res.RowsAffected()
}

// Delete removes the document's segments and the document in one transaction.
func (s *documentStore) Delete(ctx context.Context, id int64) (int64, string, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var textPath string
	err = tx.QueryRowContext(ctx, "SELECT text_path FROM documents WHERE id = ?", id).Scan(&textPath)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, "", nil
	}
	if err != nil {
		return 0, "", fmt.Errorf("reading document: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM coded_segments WHERE document_id = ?", id); err != nil {
		return 0, "", fmt.Errorf("deleting document segments: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return 0, "", fmt.Errorf("deleting document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, "", fmt.Errorf("counting deleted documents: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, "", fmt.Errorf("committing transaction: %w", err)
	}
	return n, textPath, nil
}

// CodingOverview returns per-document segment and distinct code counts.
func (s *documentStore) CodingOverview(ctx context.Context) ([]domain.DocumentCoding, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT d.id, d.original_filename, d.display_name, d.text_path, d.doc_uuid, d.created_at,
		       COUNT(cs.id), COUNT(DISTINCT cs.code_id)
		FROM documents AS d
		LEFT JOIN coded_segments AS cs ON cs.document_id = d.id
		GROUP BY d.id
		ORDER BY d.id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying document overview: %w", err)
	}
	defer rows.Close()

	var overview []domain.DocumentCoding //nolint:prealloc // size unknown from query
	for rows.Next() {
		var (
			item      domain.DocumentCoding
			createdAt string
		)
		doc := &item.Document
		if err := rows.Scan(&doc.ID, &doc.OriginalFilename, &doc.DisplayName, &doc.TextPath,
			&doc.UUID, &createdAt, &item.SegmentCount, &item.DistinctCodeCount); err != nil {
			return nil, fmt.Errorf("scanning document overview: %w", err)
		}
		if doc.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		overview = append(overview, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating document overview: %w", err)
	}

	return overview, nil
}

// scanDocument scans a document in documentColumns order.
// sql.ErrNoRows is returned unwrapped so callers can map it.
func scanDocument(row rowScanner) (*domain.Document, error) {
	var doc domain.Document
	var createdAt string

	if err := row.Scan(&doc.ID, &doc.OriginalFilename, &doc.DisplayName,
		&doc.TextPath, &doc.UUID, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	t, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	doc.CreatedAt = t

	return &doc, nil
}
