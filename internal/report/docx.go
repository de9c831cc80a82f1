// Package report renders a finished relevance audit as a styled docx file.
package report

import (
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"relcheck/internal/models"
	"relcheck/internal/pipeline"
)

const (
	fontName = "Calibri"
	fontSize = 11
	headSize = 13
)

// WriteDocx writes the audit verdict for req to outputPath.
func WriteDocx(req pipeline.Request, result *pipeline.Result, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	analysis := result.Analysis

	addHeading(doc, "Video Relevance Report: "+req.Title, 16)
	addBody(doc, fmt.Sprintf("Relevance score: %.0f / 100", analysis.RelevanceScore))
	addBody(doc, fmt.Sprintf("Transcript: %s (%d chunks)", result.TranscriptOrigin, result.ChunkCount))

	addHeading(doc, "Justification", headSize)
	addBody(doc, analysis.Justification)

	addHeading(doc, "Summary", headSize)
	addBody(doc, analysis.Summary)

	addHeading(doc, "Key Points", headSize)
	for i, point := range analysis.KeyPoints {
		addBody(doc, fmt.Sprintf("%d. %s", i+1, point))
	}

	addHeading(doc, "Video by Quarter", headSize)
	if analysis.HasQuarterlySummaries() {
		for i, q := range analysis.QuarterlySummaries {
			addBold(doc, fmt.Sprintf("Quarter %d (%d%%-%d%%)", i+1, i*25, (i+1)*25))
			addBody(doc, q)
		}
	} else {
		addBody(doc, "Quarterly summaries could not be generated for this video.")
	}

	addHeading(doc, fmt.Sprintf("Flagged Segments (%d)", len(analysis.IrrelevantSegments)), headSize)
	if len(analysis.IrrelevantSegments) == 0 {
		addBody(doc, "No off-topic segments detected.")
	}
	for _, seg := range analysis.IrrelevantSegments {
		addBold(doc, fmt.Sprintf("%s - %s | %s",
			models.FormatTimestamp(seg.Timestamp),
			models.FormatTimestamp(seg.Timestamp+seg.Duration),
			seg.Reason))
		addBody(doc, seg.Text)
	}

	if len(analysis.Tags) > 0 {
		addHeading(doc, "Tags", headSize)
		addBody(doc, strings.Join(analysis.Tags, ", "))
	}

	return doc.SaveTo(outputPath)
}

func addHeading(doc *docx.RootDoc, text string, size uint64) {
	p := doc.AddParagraph("")
	p.AddText(text).Font(fontName).Size(size).Color("000000").Bold(true)
}

func addBold(doc *docx.RootDoc, text string) {
	p := doc.AddParagraph("")
	p.AddText(text).Font(fontName).Size(fontSize).Color("000000").Bold(true)
}

func addBody(doc *docx.RootDoc, text string) {
	p := doc.AddParagraph("")
	p.AddText(text).Font(fontName).Size(fontSize).Color("000000")
}
