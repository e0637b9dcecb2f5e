package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
	"github.com/custodia-labs/mise-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mise-cli/internal/core/ports/driving"
	"github.com/custodia-labs/mise-cli/internal/logger"
)

// Ensure ImportService implements the interface.
var _ driving.ImportService = (*ImportService)(nil)

// ImportService canonicalises source files and registers them.
// Concurrent imports into the same project are not supported.
type ImportService struct {
	registry  driven.NormaliserRegistry
	textStore driven.TextStore
	documents driving.DocumentService
}

// NewImportService creates a new import service.
func NewImportService(
	registry driven.NormaliserRegistry,
	textStore driven.TextStore,
	documents driving.DocumentService,
) *ImportService {
	return &ImportService{
		registry:  registry,
		textStore: textStore,
		documents: documents,
	}
}

// SupportedExtensions lists the extensions Import accepts.
func (s *ImportService) SupportedExtensions() []string {
	return s.registry.SupportedExtensions()
}

// Import processes each path in order. Failures are collected per file;
// a cancelled context fails the files not yet processed.
func (s *ImportService) Import(ctx context.Context, paths []string) domain.ImportReport {
	logger.Section("Import")

	var report domain.ImportReport
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			report.Errors = append(report.Errors, domain.ImportError{File: path, Err: err})
			continue
		}

		id, err := s.importOne(ctx, path)
		if err != nil {
			logger.Warn("Import of %s failed: %v", path, err)
			report.Errors = append(report.Errors, domain.ImportError{File: path, Err: err})
			continue
		}
		report.DocumentIDs = append(report.DocumentIDs, id)
	}

	logger.Info("Imported %d of %d file(s)", report.Imported(), len(paths))
	return report
}

// importOne canonicalises, stores and registers a single file.
func (s *ImportService) importOne(ctx context.Context, path string) (int64, error) {
	text, err := s.registry.Canonicalise(ctx, path)
	if err != nil {
		return 0, err
	}

	textPath, err := s.textStore.Write(text)
	if err != nil {
		return 0, fmt.Errorf("storing text: %w", err)
	}

	id, err := s.documents.Register(ctx, filepath.Base(path), textPath)
	if err != nil {
		if rmErr := s.textStore.Remove(textPath); rmErr != nil {
			logger.Warn("Could not remove unregistered text %s: %v", textPath, rmErr)
		}
		return 0, err
	}

	logger.Debug("Imported %s as document %d (%s)", path, id, textPath)
	return id, nil
}
