package analyzer

import (
	"relcheck/internal/logger"
)

type implAnalyzer struct {
	generator Generator
	logger    logger.Logger
}

// New creates an Analyzer backed by the given reasoning Generator.
func New(gen Generator, log logger.Logger) Analyzer {
	return &implAnalyzer{
		generator: gen,
		logger:    log,
	}
}
