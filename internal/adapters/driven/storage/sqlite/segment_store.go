package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
	"github.com/custodia-labs/mise-cli/internal/core/ports/driven"
)

// segmentStore implements driven.SegmentStore.
type segmentStore struct {
	store *Store
}

var _ driven.SegmentStore = (*segmentStore)(nil)

// Add inserts a segment. Offsets are not checked against the text.
func (s *segmentStore) Add(ctx context.Context, seg domain.NewSegment) (int64, error) {
	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO coded_segments (document_id, code_id, start_offset, end_offset, memo, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, seg.DocumentID, seg.CodeID, seg.StartOffset, seg.EndOffset,
		nullString(seg.Memo), formatTime(s.store.now()))
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return 0, fmt.Errorf("adding segment: %w", domain.ErrReferentialViolation)
		case isCheckViolation(err):
			return 0, fmt.Errorf("adding segment [%d, %d]: %w",
				seg.StartOffset, seg.EndOffset, domain.ErrInvalidRange)
		}
		return 0, fmt.Errorf("adding segment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading segment id: %w", err)
	}
	return id, nil
}

// Get retrieves a segment by ID, with its code's color.
func (s *segmentStore) Get(ctx context.Context, id int64) (*domain.Segment, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT cs.id, cs.document_id, cs.code_id, cs.start_offset, cs.end_offset,
		       cs.memo, cs.created_at, c.color
		FROM coded_segments AS cs
		LEFT JOIN codes AS c ON cs.code_id = c.id
		WHERE cs.id = ?
	`, id)

	seg, err := scanSegment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return seg, err
}

// ListForDocument returns a document's segments by start offset.
// The join is a left join so a dangling code_id still lists, without color.
func (s *segmentStore) ListForDocument(ctx context.Context, documentID int64) ([]domain.Segment, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT cs.id, cs.document_id, cs.code_id, cs.start_offset, cs.end_offset,
		       cs.memo, cs.created_at, c.color
		FROM coded_segments AS cs
		LEFT JOIN codes AS c ON cs.code_id = c.id
		WHERE cs.document_id = ?
		ORDER BY cs.start_offset, cs.id
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying segments: %w", err)
	}
	defer rows.Close()

	return scanSegments(rows)
}

// ListForCode returns every use of a code with its document.
func (s *segmentStore) ListForCode(ctx context.Context, codeID string) ([]domain.CodedSpan, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT cs.id, cs.document_id, d.display_name, d.text_path,
		       cs.start_offset, cs.end_offset, cs.memo
		FROM coded_segments AS cs
		JOIN documents AS d ON cs.document_id = d.id
		WHERE cs.code_id = ?
		ORDER BY cs.document_id, cs.start_offset, cs.id
	`, codeID)
	if err != nil {
		return nil, fmt.Errorf("querying code segments: %w", err)
	}
	defer rows.Close()

	var spans []domain.CodedSpan //nolint:prealloc // size unknown from query
	for rows.Next() {
		var span domain.CodedSpan
		var memo sql.NullString
		if err := rows.Scan(&span.SegmentID, &span.DocumentID, &span.DocumentName, &span.TextPath,
			&span.StartOffset, &span.EndOffset, &memo); err != nil {
			return nil, fmt.Errorf("scanning code segment: %w", err)
		}
		span.Memo = memo.String
		spans = append(spans, span)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating code segments: %w", err)
	}

	return spans, nil
}

// AtPosition returns every segment covering offset.
func (s *segmentStore) AtPosition(ctx context.Context, documentID int64, offset int) ([]domain.Segment, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT cs.id, cs.document_id, cs.code_id, cs.start_offset, cs.end_offset,
		       cs.memo, cs.created_at, c.color
		FROM coded_segments AS cs
		LEFT JOIN codes AS c ON cs.code_id = c.id
		WHERE cs.document_id = ?
		  AND cs.start_offset <= ?
		  AND cs.end_offset >= ?
		ORDER BY cs.start_offset, cs.id
	`, documentID, offset, offset)
	if err != nil {
		return nil, fmt.Errorf("querying segments at position: %w", err)
	}
	defer rows.Close()

	return scanSegments(rows)
}

// Delete removes a segment by ID.
func (s *segmentStore) Delete(ctx context.Context, id int64) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM coded_segments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting segment: %w", err)
	}
	return nil
}

// scanSegment scans a segment row joined with its code color.
// sql.ErrNoRows is returned unwrapped so callers can map it.
func scanSegment(row rowScanner) (*domain.Segment, error) {
	var seg domain.Segment
	var memo, color sql.NullString
	var createdAt string

	if err := row.Scan(&seg.ID, &seg.DocumentID, &seg.CodeID, &seg.StartOffset,
		&seg.EndOffset, &memo, &createdAt, &color); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning segment: %w", err)
	}

	t, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	seg.CreatedAt = t
	seg.Memo = memo.String
	seg.CodeColor = color.String

	return &seg, nil
}

// scanSegments scans multiple segment rows.
func scanSegments(rows *sql.Rows) ([]domain.Segment, error) {
	var segments []domain.Segment //nolint:prealloc // size unknown from query
	for rows.Next() {
		seg, err := scanSegment(rows)
		if err != nil {
			return nil, err
		}
		segments = append(segments, *seg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating segments: %w", err)
	}

	return segments, nil
}
