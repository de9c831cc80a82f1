package pipeline

import (
	"relcheck/internal/analyzer"
	"relcheck/internal/logger"
	"relcheck/internal/transcript"
)

type implPipeline struct {
	source   transcript.Source
	analyzer analyzer.Analyzer
	logger   logger.Logger
	sem      *semaphore
}

// New creates a Pipeline. maxConcurrent caps the number of audits running
// at once; values below 1 are treated as 1.
func New(src transcript.Source, an analyzer.Analyzer, log logger.Logger, maxConcurrent int) Pipeline {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &implPipeline{
		source:   src,
		analyzer: an,
		logger:   log,
		sem:      newSemaphore(maxConcurrent),
	}
}
