package catalog

import (
	"fmt"
	"io"
	"strings"
	"time"

	"dogslife-quiz/internal/domain"
	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin     = 15.0
	titleText     = "Dog´s Life Academy - Fragenkatalog"
	correctPrefix = "(X)"
	plainPrefix   = "( )"
)

// PDFOptions controls the catalog header.
type PDFOptions struct {
	Category string
	Now      time.Time
}

// WritePDF renders the question catalog with correct answers marked.
func WritePDF(w io.Writer, questions []domain.Question, opts PDFOptions) error {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, 20, pdfMargin)
	pdf.SetAutoPageBreak(true, 17)
	// Core fonts are cp1252; umlauts need translating.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	title := titleText
	if opts.Category != "" {
		title += " (" + opts.Category + ")"
	}
	pdf.SetFont("Helvetica", "", 18)
	pdf.MultiCell(0, 8, tr(title), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Export Datum: %s | Anzahl Fragen: %d", opts.Now.Format("02.01.2006"), len(questions))), "", 1, "L", false, 0, "")
	pdf.Ln(9)

	for i, q := range questions {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%d. %s [%s]", i+1, q.Text, q.Category)), "", "L", false)

		for _, ans := range q.AllAnswers {
			prefix, style := plainPrefix, ""
			if q.IsCorrectOption(ans) {
				prefix, style = correctPrefix, "B"
			}
			pdf.SetFont("Helvetica", style, 10)
			pdf.SetX(pdfMargin + 5)
			pdf.MultiCell(0, 5, tr(prefix+" "+strings.TrimSpace(ans)), "", "L", false)
		}
		pdf.Ln(8)
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

// ExportFilename builds "<prefix>_<Category>_<YYYY-MM-DD>.<ext>", using "Alle"
// when no category filter is set.
func ExportFilename(prefix, category, ext string, date time.Time) string {
	cat := "Alle"
	if c := strings.Join(strings.Fields(category), "_"); c != "" {
		cat = c
	}
	return fmt.Sprintf("%s_%s_%s.%s", prefix, cat, date.Format("2006-01-02"), ext)
}
