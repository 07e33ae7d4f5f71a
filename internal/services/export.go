package services

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/sekolahdata/tatatertib/internal/scope"
)

// ExportService renders the scoped, filtered violation set as a download.
// Both formats cover exactly the rows the listing page would show.
type ExportService struct {
	violations *ViolationService
}

func NewExportService(violations *ViolationService) *ExportService {
	return &ExportService{violations: violations}
}

// JSONList returns the filtered violations for the JSON export endpoint.
func (s *ExportService) JSONList(sc scope.Scope, req *ViolationListRequest) ([]ViolationListItem, error) {
	return s.violations.ListAll(sc, req)
}

// PDFFilename names the download after the print date.
func PDFFilename(now time.Time) string {
	return "laporan_pelanggaran_" + now.Format("20060102") + ".pdf"
}

// PDF renders the filtered violations as a printable report: a header block
// with the print date and active filter, a per-category summary, then one
// table row per violation.
func (s *ExportService) PDF(sc scope.Scope, req *ViolationListRequest) ([]byte, error) {
	items, err := s.violations.ListAll(sc, req)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "LAPORAN PELANGGARAN MURID", "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, "Tanggal Cetak: "+time.Now().Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, "Filter: "+describeFilter(req), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total Pelanggaran: %d", len(items)), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Ringkasan Kategori:", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 10)
	for _, line := range summaryLines(items) {
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	headers := []string{"No", "Nama Murid", "Kelas", "Pasal", "Kategori", "Tanggal", "Oleh"}
	widths := []float64{10, 45, 15, 30, 25, 25, 30}

	pdf.SetFont("Arial", "B", 8)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for i, item := range items {
		pdf.CellFormat(widths[0], 6, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, clip(item.StudentName, 28), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, clip(item.ClassroomName, 8), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 6, clip(item.RuleCode, 18), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[4], 6, clip(item.CategoryName, 14), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, item.OccurredAt.Format("02/01/2006"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[6], 6, clip(item.RecordedBy, 18), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func describeFilter(req *ViolationListRequest) string {
	switch {
	case req.DateRange != "":
		return strings.ReplaceAll(req.DateRange, "_", " ")
	case req.StartDate != "" || req.EndDate != "":
		return req.StartDate + " - " + req.EndDate
	default:
		return "Semua Data"
	}
}

// summaryLines counts items per frozen category name, sorted for stable
// report output.
func summaryLines(items []ViolationListItem) []string {
	counts := make(map[string]int)
	for _, item := range items {
		counts[item.CategoryName]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("%s: %d pelanggaran", name, counts[name]))
	}
	return lines
}

func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "."
}
