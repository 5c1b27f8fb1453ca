// Package report renders the collected articles into a paginated PDF.
package report

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"newsharvest/internal/metrics"
	"newsharvest/internal/news"
)

// ErrNoArticles signals "nothing to render": an empty run produces no file.
var ErrNoArticles = errors.New("no articles to render")

const (
	reportTitle = "India Business News Report"

	marginLeft = 15.0
	marginTop  = 15.0
	lineWidth  = 180.0 // text column width in mm on Letter
	lineHeight = 5.0
	blockGap   = 3.5
	bottomY    = 260.0 // start a new page when a block would pass this
)

// Render writes the dated PDF into dir and returns its path. Each article is
// one flowed block; a block whose measured height does not fit on the current
// page starts the next page instead of splitting.
func Render(articles []news.Article, dir string, now time.Time) (string, error) {
	if len(articles) == 0 {
		return "", ErrNoArticles
	}

	pdf, err := build(articles)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("India_Business_News_%s.pdf", now.Format("2006-01-02"))
	path := filepath.Join(dir, name)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}

	metrics.Global.IncrementReportsRendered()
	return path, nil
}

func build(articles []news.Article) (*fpdf.Fpdf, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(marginLeft, marginTop, marginLeft)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(lineWidth, 10, tr(reportTitle), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for i, a := range articles {
		heading := tr(articleHeading(i+1, a))
		source := ""
		if a.Source != "" {
			source = tr("(" + a.Source + ")")
		}
		desc := tr(a.Description)

		// Measure the whole block before placing it.
		pdf.SetFont("Helvetica", "B", 10)
		headingLines := pdf.SplitText(heading, lineWidth)
		var sourceLines, descLines []string
		if source != "" {
			pdf.SetFont("Helvetica", "I", 10)
			sourceLines = pdf.SplitText(source, lineWidth)
		}
		if desc != "" {
			pdf.SetFont("Helvetica", "", 10)
			descLines = pdf.SplitText(desc, lineWidth)
		}
		height := float64(len(headingLines)+len(sourceLines)+len(descLines)) * lineHeight

		if pdf.GetY()+height > bottomY {
			pdf.AddPage()
		}

		pdf.SetFont("Helvetica", "B", 10)
		pdf.MultiCell(lineWidth, lineHeight, heading, "", "L", false)
		if source != "" {
			pdf.SetFont("Helvetica", "I", 10)
			pdf.MultiCell(lineWidth, lineHeight, source, "", "L", false)
		}
		if desc != "" {
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(lineWidth, lineHeight, desc, "", "L", false)
		}
		pdf.Ln(blockGap)
	}

	if pdf.Err() {
		return nil, fmt.Errorf("render pdf: %w", pdf.Error())
	}
	return pdf, nil
}

// articleHeading is the bold lead line: index, optional sentiment prefix,
// title.
func articleHeading(n int, a news.Article) string {
	if a.HasSentiment {
		return fmt.Sprintf("%d. [%+.2f] %s", n, a.Sentiment, a.Title)
	}
	return fmt.Sprintf("%d. %s", n, a.Title)
}
