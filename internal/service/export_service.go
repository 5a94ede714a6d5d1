package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/greatday-recap-api/pkg/export"
)

// ExportService writes monthly recap artifacts (CSV and PDF) next to
// the webhook publish, for archival. It is optional; a nil exporter on
// the recap service disables it.
type ExportService struct {
	storageDir string
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
	logger     *zap.Logger
}

// NewExportService constructs the artifact writer.
func NewExportService(storageDir string, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		storageDir: storageDir,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		logger:     logger,
	}
}

// WriteMonthly renders the month's ranking tables to one CSV and one
// PDF file named after the month key.
func (s *ExportService) WriteMonthly(in MonthlyInput, idx *EmployeeIndex) error {
	if err := os.MkdirAll(s.storageDir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	headers := []string{"employee", "count", "total_minutes"}

	tardinessRows := make([]map[string]string, 0, len(in.TardinessTop))
	for _, t := range in.TardinessTop {
		tardinessRows = append(tardinessRows, map[string]string{
			"employee":      idx.DisplayName(t.Identity, t.Name),
			"count":         strconv.Itoa(t.Count),
			"total_minutes": strconv.Itoa(t.TotalMinutes),
		})
	}

	overtimeRows := make([]map[string]string, 0, len(in.OvertimeTop))
	for _, o := range in.OvertimeTop {
		overtimeRows = append(overtimeRows, map[string]string{
			"employee":      idx.DisplayName(o.Identity, o.Name),
			"count":         strconv.Itoa(o.Count),
			"total_minutes": strconv.Itoa(o.TotalMinutes),
		})
	}

	sections := []export.Section{
		{Title: "Top tardiness", Data: export.Dataset{Headers: headers, Rows: tardinessRows}},
		{Title: "Top overtime", Data: export.Dataset{Headers: headers, Rows: overtimeRows}},
	}

	pdfBytes, err := s.pdf.Render("Monthly recap "+in.MonthKey, sections)
	if err != nil {
		return err
	}
	pdfPath := filepath.Join(s.storageDir, fmt.Sprintf("recap-%s.pdf", in.MonthKey))
	if err := os.WriteFile(pdfPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("write pdf artifact: %w", err)
	}

	combined := make([]map[string]string, 0, len(tardinessRows)+len(overtimeRows))
	for _, row := range tardinessRows {
		row["metric"] = "tardiness"
		combined = append(combined, row)
	}
	for _, row := range overtimeRows {
		row["metric"] = "overtime"
		combined = append(combined, row)
	}

	csvBytes, err := s.csv.Render(export.Dataset{
		Headers: []string{"metric", "employee", "count", "total_minutes"},
		Rows:    combined,
	})
	if err != nil {
		return err
	}
	csvPath := filepath.Join(s.storageDir, fmt.Sprintf("recap-%s.csv", in.MonthKey))
	if err := os.WriteFile(csvPath, csvBytes, 0o644); err != nil {
		return fmt.Errorf("write csv artifact: %w", err)
	}

	s.logger.Info("monthly artifacts written",
		zap.String("month", in.MonthKey),
		zap.String("pdf", pdfPath),
		zap.String("csv", csvPath),
	)
	return nil
}
