package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/distill"
)

// Ensure LoggingProcessor implements distill.Processor.
var _ distill.Processor = (*LoggingProcessor)(nil)

// LoggingProcessor wraps a Processor with logging. References left
// unresolved by the pipeline are reported as a warning.
type LoggingProcessor struct {
	next   distill.Processor
	logger *slog.Logger
}

// NewLoggingProcessor creates a new LoggingProcessor.
func NewLoggingProcessor(next distill.Processor, logger *slog.Logger) *LoggingProcessor {
	return &LoggingProcessor{next: next, logger: logger}
}

// Process delegates to the wrapped processor and logs the operation.
func (p *LoggingProcessor) Process(doc *distill.Document, sourceURL string) (frag *distill.Fragment, err error) {
	defer func(begin time.Time) {
		var title string
		var unresolved int
		if frag != nil {
			title = frag.Title
			unresolved = len(frag.Unresolved)
		}
		p.logger.Info("process",
			"url", sourceURL,
			"title", title,
			"unresolved", unresolved,
			"duration", time.Since(begin),
			"err", err,
		)
		if unresolved > 0 {
			p.logger.Warn("unresolved references",
				"url", sourceURL,
				"refs", frag.Unresolved,
			)
		}
	}(time.Now())
	return p.next.Process(doc, sourceURL)
}
