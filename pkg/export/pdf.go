package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

func BuildPDF(rows []TransactionRow) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Transactions")
	pdf.Ln(12)

	widths := []float64{28, 42, 22, 28, 70}
	headers := []string{"Date", "Category", "Type", "Amount", "Description"}

	pdf.SetFont("Arial", "B", 10)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range rows {
		description := truncateRunes(row.RawText, 45)

		pdf.CellFormat(widths[0], 7, row.Date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, row.Category, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, row.Type, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 7, fmt.Sprintf("%.2f", row.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, description, "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// truncateRunes cuts on rune boundaries so accented text stays valid UTF-8.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
