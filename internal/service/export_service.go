package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	appErrors "github.com/scoperhq/scoper-api/pkg/errors"
	"github.com/scoperhq/scoper-api/pkg/export"

	"github.com/scoperhq/scoper-api/internal/models"
)

// ExportFormat selects the rendered file type.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

var exportHeaders = []string{
	"ID", "Company", "Role", "Salary", "Year", "University",
	"Location", "Bonus", "Term", "Arrangement",
}

// ExportService renders the published report set as a downloadable file
// for offline review.
type ExportService struct {
	salaries SalaryRepo
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	maxRows  int
	logger   *zap.Logger
}

func NewExportService(salaries SalaryRepo, maxRows int, logger *zap.Logger) *ExportService {
	return &ExportService{
		salaries: salaries,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		maxRows:  maxRows,
		logger:   logger,
	}
}

// Export renders every published report in the requested format and
// returns the bytes, the content type and a filename.
func (s *ExportService) Export(ctx context.Context, format ExportFormat) ([]byte, string, string, error) {
	reports, err := s.salaries.ListAll(ctx)
	if err != nil {
		return nil, "", "", err
	}
	if s.maxRows > 0 && len(reports) > s.maxRows {
		reports = reports[:s.maxRows]
	}

	dataset := export.Dataset{
		Headers: exportHeaders,
		Rows:    make([][]string, 0, len(reports)),
	}
	for _, r := range reports {
		dataset.Rows = append(dataset.Rows, exportRow(r))
	}

	switch format {
	case FormatCSV:
		out, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", "", fmt.Errorf("render csv export: %w", err)
		}
		return out, "text/csv", "salary-reports.csv", nil
	case FormatPDF:
		out, err := s.pdf.Render(dataset, "Internship Salary Reports")
		if err != nil {
			return nil, "", "", fmt.Errorf("render pdf export: %w", err)
		}
		return out, "application/pdf", "salary-reports.pdf", nil
	default:
		return nil, "", "", appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}

func exportRow(r models.ReportedSalary) []string {
	bonus := ""
	if r.Bonus != nil {
		bonus = strconv.FormatFloat(*r.Bonus, 'f', 2, 64)
	}
	term := ""
	if r.Term != nil {
		term = strconv.Itoa(*r.Term)
	}
	return []string{
		strconv.FormatInt(r.ID, 10),
		r.Company,
		r.Role,
		strconv.FormatFloat(r.Salary, 'f', 2, 64),
		strconv.Itoa(r.Year),
		r.University,
		r.Location,
		bonus,
		term,
		string(r.Arrangement),
	}
}
