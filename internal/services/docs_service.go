package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain/models"
	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/utils"
)

// DocsService renders settlement statements as PDF.
type DocsService struct {
	RequestID string
	Now       func() time.Time
}

func (s DocsService) GenerateStatement(st models.Settlement) ([]byte, string, error) {
	utils.LogEvent(s.RequestID, "docs", "generate_statement", fmt.Sprintf("settlement_id=%d", st.ID))
	return buildStatementPDF(st, s.now())
}

func (s DocsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func buildStatementPDF(st models.Settlement, printed time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Settlement Statement", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "SETTLEMENT STATEMENT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	header := []string{
		fmt.Sprintf("Settlement No : #%d", st.ID),
		fmt.Sprintf("Type          : %s", strings.ToUpper(string(st.Type))),
		fmt.Sprintf("Date          : %s", safe(st.Date, "-")),
		fmt.Sprintf("Trips settled : %d", st.TripCount),
		fmt.Sprintf("Printed       : %s", printed.Format("2006-01-02 15:04")),
	}
	for _, line := range header {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	widths := []float64{12, 68, 35, 35, 35}
	pdf.SetFont("Helvetica", "B", 11)
	for i, h := range []string{"#", "Driver", "Batta", "Salary", "Total"} {
		pdf.CellFormat(widths[i], 8, h, "1", 0, align(i), false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	for i, l := range st.Lines {
		cells := []string{
			fmt.Sprintf("%d", i+1),
			safe(l.DriverName, "-"),
			utils.FormatRupees(l.BattaAmount),
			utils.FormatRupees(l.SalaryAmount),
			utils.FormatRupees(l.TotalAmount),
		}
		for j, c := range cells {
			pdf.CellFormat(widths[j], 7, c, "1", 0, align(j), false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(widths[0]+widths[1]+widths[2]+widths[3], 8, "Grand total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[4], 8, utils.FormatRupees(st.TotalAmount()), "1", 0, "R", false, 0, "")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Amounts are computed from the route tariff and each driver's payment mode at the time of settlement.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("SETTLEMENT_%d_%s_%s.pdf", st.ID, strings.ToUpper(string(st.Type)), safeFilenamePart(st.Date))
	return buf.Bytes(), filename, nil
}

func align(col int) string {
	if col >= 2 {
		return "R"
	}
	return "L"
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
