package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"relcheck/internal/analyzer"
	"relcheck/internal/config"
	"relcheck/internal/logger"
	"relcheck/internal/models"
	"relcheck/internal/pipeline"
	"relcheck/internal/report"
	"relcheck/internal/transcript"
	"relcheck/pkg/timedtext"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	title := flag.String("title", "", "claimed video title (required)")
	desc := flag.String("desc", "", "claimed video description")
	url := flag.String("url", "", "video URL to fetch captions from")
	transcriptFile := flag.String("transcript", "", "path to a manual transcript text file (fallback)")
	docxOut := flag.String("docx", "", "write a docx report to this path")
	flag.Parse()

	if *title == "" {
		fmt.Fprintln(os.Stderr, "Usage: relcheck -title <title> [-desc <description>] [-url <video url>] [-transcript <file>] [-docx <out.docx>]")
		os.Exit(2)
	}

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	var manual string
	if *transcriptFile != "" {
		data, err := os.ReadFile(*transcriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read transcript file: %v\n", err)
			os.Exit(1)
		}
		manual = string(data)
	}

	apiKeys := cfg.Gemini.APIKeys
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		apiKeys = append(apiKeys, key)
	}

	gen, err := analyzer.NewGemini(cfg.Gemini.Model, apiKeys, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Gemini setup failed: %v (set gemini.api_keys or GEMINI_API_KEY)\n", err)
		os.Exit(1)
	}

	captions := timedtext.New(cfg.YouTube.Language, time.Duration(cfg.YouTube.TimeoutSeconds)*time.Second)
	source := transcript.NewSource(transcript.NewTimedtextProvider(captions), log)
	pipe := pipeline.New(source, analyzer.New(gen, log), log, cfg.Performance.MaxConcurrent)

	req := pipeline.Request{
		Title:            *title,
		Description:      *desc,
		URL:              *url,
		ManualTranscript: manual,
	}

	result, err := pipe.Evaluate(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		var parseErr *analyzer.ParseError
		if errors.As(err, &parseErr) && parseErr.Raw != "" {
			fmt.Fprintf(os.Stderr, "Raw AI response:\n%s\n", parseErr.Raw)
		}
		os.Exit(1)
	}

	printVerdict(req, result)

	if *docxOut != "" {
		if err := report.WriteDocx(req, result, *docxOut); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write docx report: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nReport written to %s\n", *docxOut)
	}
}

func printVerdict(req pipeline.Request, result *pipeline.Result) {
	analysis := result.Analysis

	fmt.Printf("Title:       %s\n", req.Title)
	fmt.Printf("Transcript:  %s (%d chunks)\n", result.TranscriptOrigin, result.ChunkCount)
	fmt.Printf("Score:       %.0f / 100\n", analysis.RelevanceScore)
	fmt.Printf("Justification: %s\n", analysis.Justification)
	fmt.Printf("\nSummary: %s\n", analysis.Summary)

	fmt.Println("\nKey points:")
	for i, point := range analysis.KeyPoints {
		fmt.Printf("  %d. %s\n", i+1, point)
	}

	fmt.Println("\nVideo by quarter:")
	if analysis.HasQuarterlySummaries() {
		for i, q := range analysis.QuarterlySummaries {
			fmt.Printf("  Q%d (%d%%-%d%%): %s\n", i+1, i*25, (i+1)*25, q)
		}
	} else {
		fmt.Println("  Quarterly summaries could not be generated for this video.")
	}

	fmt.Printf("\nFlagged segments (%d):\n", len(analysis.IrrelevantSegments))
	for _, seg := range analysis.IrrelevantSegments {
		fmt.Printf("  [%s - %s] %s\n    > %s\n",
			models.FormatTimestamp(seg.Timestamp),
			models.FormatTimestamp(seg.Timestamp+seg.Duration),
			seg.Reason, seg.Text)
	}
	if len(analysis.IrrelevantSegments) == 0 {
		fmt.Println("  None - content looks on-topic.")
	}

	if len(analysis.Tags) > 0 {
		fmt.Printf("\nTags: %s\n", strings.Join(analysis.Tags, ", "))
	}
}
