package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
	"github.com/custodia-labs/mise-cli/internal/core/ports/driven"
)

// codeStore implements driven.CodeStore.
type codeStore struct {
	store *Store
}

var _ driven.CodeStore = (*codeStore)(nil)

const codeColumns = "id, label, parent_id, description, color, sort_order"

// Add inserts a code; sort_order is computed in the same statement.
func (s *codeStore) Add(ctx context.Context, code domain.NewCode) (string, error) {
	id := uuid.New().String()

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO codes (id, label, parent_id, description, color, sort_order)
		SELECT ?, ?, ?, ?, ?, COALESCE(MAX(sort_order), 0) + 1 FROM codes
	`, id, code.Label, nullPtr(code.ParentID), code.Description, nullString(code.Color))
	if err != nil {
		if isForeignKeyViolation(err) {
			return "", fmt.Errorf("adding code: parent: %w", domain.ErrNotFound)
		}
		return "", fmt.Errorf("adding code: %w", err)
	}
	return id, nil
}

// Get retrieves a code by ID.
func (s *codeStore) Get(ctx context.Context, id string) (*domain.Code, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+codeColumns+" FROM codes WHERE id = ?", id)

	code, err := scanCode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return code, err
}

// Update changes only the fields set in update.
func (s *codeStore) Update(ctx context.Context, id string, update domain.CodeUpdate) (int64, error) {
	var (
		sets []string
		args []any
	)
	if update.Label != nil {
		sets = append(sets, "label = ?")
		args = append(args, *update.Label)
	}
	if update.ClearParent {
		sets = append(sets, "parent_id = NULL")
	} else if update.ParentID != nil {
		sets = append(sets, "parent_id = ?")
		args = append(args, *update.ParentID)
	}
	if update.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *update.Description)
	}
	if update.Color != nil {
		sets = append(sets, "color = ?")
		args = append(args, nullString(*update.Color))
	}

	if len(sets) == 0 {
		// Nothing to change; report whether the code exists.
		var n int64
		err := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM codes WHERE id = ?", id).Scan(&n)
		if err != nil {
			return 0, fmt.Errorf("checking code: %w", err)
		}
		return n, nil
	}

	args = append(args, id)
	query := "UPDATE codes SET " + strings.Join(sets, ", ") + " WHERE id = ?" //nolint:gosec // fixed column names
	res, err := s.store.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("updating code: parent: %w", domain.ErrNotFound)
		}
		return 0, fmt.Errorf("updating code: %w", err)
	}
	return res.RowsAffected()
}

// Delete removes the code's segments and the code in one transaction.
// A code that is still a parent cannot be deleted; the transaction is
// rolled back and its segments survive.
func (s *codeStore) Delete(ctx context.Context, id string) (int64, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM coded_segments WHERE code_id = ?", id); err != nil {
		return 0, fmt.Errorf("deleting code segments: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM codes WHERE id = ?", id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("deleting code %s: %w", id, domain.ErrCodeHasChildren)
		}
		return 0, fmt.Errorf("deleting code: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted codes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return n, nil
}

// List returns all codes ordered by (sort_order, label).
func (s *codeStore) List(ctx context.Context) ([]domain.Code, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+codeColumns+" FROM codes ORDER BY sort_order, label")
	if err != nil {
		return nil, fmt.Errorf("querying codes: %w", err)
	}
	defer rows.Close()

	return scanCodes(rows)
}

// Children returns the direct children of a code.
func (s *codeStore) Children(ctx context.Context, id string) ([]domain.Code, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+codeColumns+" FROM codes WHERE parent_id = ? ORDER BY sort_order, label", id)
	if err != nil {
		return nil, fmt.Errorf("querying child codes: %w", err)
	}
	defer rows.Close()

	return scanCodes(rows)
}

// UsageOverview groups segments per code, keeping unused codes.
func (s *codeStore) UsageOverview(ctx context.Context) ([]domain.CodeUsage, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT c.id, c.label, c.parent_id, c.description, c.color, c.sort_order,
		       COUNT(cs.id), COUNT(DISTINCT cs.document_id)
		FROM codes AS c
		LEFT JOIN coded_segments AS cs ON cs.code_id = c.id
		GROUP BY c.id
		ORDER BY c.sort_order, c.label
	`)
	if err != nil {
		return nil, fmt.Errorf("querying code usage: %w", err)
	}
	defer rows.Close()

	var usage []domain.CodeUsage //nolint:prealloc // size unknown from query
	for rows.Next() {
		var (
			item            domain.CodeUsage
			parentID, color sql.NullString
		)
		c := &item.Code
		if err := rows.Scan(&c.ID, &c.Label, &parentID, &c.Description, &color, &c.SortOrder,
			&item.SegmentCount, &item.DocumentCount); err != nil {
			return nil, fmt.Errorf("scanning code usage: %w", err)
		}
		c.ParentID = ptrFromNull(parentID)
		c.Color = color.String
		usage = append(usage, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating code usage: %w", err)
	}

	return usage, nil
}

// scanCode scans a code in codeColumns order.
// sql.ErrNoRows is returned unwrapped so callers can map it.
func scanCode(row rowScanner) (*domain.Code, error) {
	var code domain.Code
	var parentID, color sql.NullString

	if err := row.Scan(&code.ID, &code.Label, &parentID, &code.Description,
		&color, &code.SortOrder); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning code: %w", err)
	}

	code.ParentID = ptrFromNull(parentID)
	code.Color = color.String

	return &code, nil
}

// scanCodes scans multiple code rows.
func scanCodes(rows *sql.Rows) ([]domain.Code, error) {
	var codes []domain.Code //nolint:prealloc // size unknown from query
	for rows.Next() {
		code, err := scanCode(rows)
		if err != nil {
			return nil, err
		}
		codes = append(codes, *code)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating codes: %w", err)
	}

	return codes, nil
}
