// Package report renders a finished quiz as a downloadable PDF.
package report

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/kwkoo/quizrunner/internal/common"
)

const defaultTitle = "Quiz"

func WriteResult(w io.Writer, result common.FinalResultView) error {
	title := result.Title
	if title == "" {
		title = defaultTitle
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.MultiCell(0, 10, tr(title), "", "L", false)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 40)
	pdf.CellFormat(0, 20, fmt.Sprintf("%d%%", result.Percentage), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 12)
	rows := []struct {
		label string
		value int
	}{
		{"Correct", result.Stats.Correct},
		{"Incorrect", result.Stats.Incorrect},
		{"Unanswered", result.Stats.Unanswered},
		{"Total questions", result.TotalQuestions},
	}
	for _, row := range rows {
		pdf.CellFormat(60, 8, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%d", row.value), "1", 1, "R", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}
