package mcp

import (
	"context"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
)

// mockReportService is a mock implementation of driving.ReportService.
type mockReportService struct {
	coding  []domain.DocumentCoding
	usage   []domain.CodeUsage
	reports []domain.CodeReport
	err     error

	reportedIDs []string
}

func (m *mockReportService) DocumentCodingOverview(_ context.Context) ([]domain.DocumentCoding, error) {
	return m.coding, m.err
}

func (m *mockReportService) CodeUsage(_ context.Context) ([]domain.CodeUsage, error) {
	return m.usage, m.err
}

func (m *mockReportService) Snippet(_ context.Context, _ domain.Document, _ domain.Segment) (string, error) {
	return "", m.err
}

func (m *mockReportService) CodeReport(_ context.Context, codeIDs []string) ([]domain.CodeReport, error) {
	m.reportedIDs = codeIDs
	return m.reports, m.err
}

// mockCodeService is a mock implementation of driving.CodeService.
type mockCodeService struct {
	codes []domain.Code
	err   error
}

func (m *mockCodeService) Add(_ context.Context, _ domain.NewCode) (string, error) {
	return "", m.err
}

func (m *mockCodeService) Get(_ context.Context, _ string) (*domain.Code, error) {
	return nil, m.err
}

func (m *mockCodeService) Update(_ context.Context, _ string, _ domain.CodeUpdate) (int64, error) {
	return 0, m.err
}

func (m *mockCodeService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockCodeService) List(_ context.Context) ([]domain.Code, error) {
	return m.codes, m.err
}

func (m *mockCodeService) UsageOverview(_ context.Context) ([]domain.CodeUsage, error) {
	return nil, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.Document
	texts     map[int64]string
	err       error
}

func (m *mockDocumentService) Register(_ context.Context, _, _ string) (int64, error) {
	return 0, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ int64) (*domain.Document, error) {
	return nil, m.err
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) LookupID(_ context.Context, _ string) (int64, bool, error) {
	return 0, false, m.err
}

func (m *mockDocumentService) Text(_ context.Context, id int64) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	text, ok := m.texts[id]
	if !ok {
		return "", domain.ErrNotFound
	}
	return text, nil
}

func (m *mockDocumentService) Rename(_ context.Context, _ int64, _ string) (int64, error) {
	return 0, m.err
}

func (m *mockDocumentService) Delete(_ context.Context, _ int64) (int64, string, error) {
	return 0, "", m.err
}

func validPorts() *Ports {
	return &Ports{
		Reports:   &mockReportService{},
		Codes:     &mockCodeService{},
		Documents: &mockDocumentService{},
	}
}
