// Package scan runs receipt text recognition off the caller's
// goroutine. The actual OCR is an external collaborator behind the
// TextRecognizer interface; this package adds the asynchronous,
// cancellable plumbing around it and the heuristic parse of its output.
package scan

import (
	"context"
	"time"

	"github.com/antoninaarc/finanzapp/internal/logger"
	"github.com/antoninaarc/finanzapp/internal/receipt"
)

// DefaultTimeout bounds a single recognition run.
const DefaultTimeout = 30 * time.Second

// TextRecognizer converts a raster image into ordered text lines.
type TextRecognizer interface {
	RecognizeText(ctx context.Context, image []byte) ([]string, error)
}

// Result carries the parsed receipt back to the caller. Receipt is
// always usable: a failed recognition yields one with all fields absent,
// never an error dialog. Err is informational only.
type Result struct {
	Receipt receipt.ParsedReceipt
	Err     error
}

// Scanner dispatches recognition to a background goroutine.
type Scanner struct {
	recognizer TextRecognizer
	parser     *receipt.Parser
	timeout    time.Duration
	now        func() time.Time
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithKeywords replaces the default heuristic keyword tables.
func WithKeywords(kw receipt.Keywords) Option {
	return func(s *Scanner) { s.parser = receipt.NewParser(kw) }
}

// WithTimeout overrides the recognition timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Scanner) { s.timeout = d }
}

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scanner) { s.now = now }
}

// NewScanner builds a scanner around the given recognizer.
func NewScanner(recognizer TextRecognizer, opts ...Option) *Scanner {
	s := &Scanner{
		recognizer: recognizer,
		parser:     receipt.NewParser(receipt.DefaultKeywords()),
		timeout:    DefaultTimeout,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan starts recognition in the background and returns a channel that
// delivers exactly one Result. Cancelling the context aborts the
// recognition; a caller that dismissed its screen simply stops reading
// and the stale result is dropped with the channel.
func (s *Scanner) Scan(ctx context.Context, image []byte) <-chan Result {
	results := make(chan Result, 1)

	go func() {
		defer close(results)

		scanCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		now := s.now()
		lines, err := s.recognizer.RecognizeText(scanCtx, image)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("receipt text recognition failed")
			results <- Result{Receipt: receipt.ParsedReceipt{Date: now}, Err: err}
			return
		}

		parsed := s.parser.Parse(lines, now)
		logger.Log.Debug().
			Int("lines", len(lines)).
			Bool("amount_found", parsed.Amount != nil).
			Str("merchant", parsed.Merchant).
			Msg("receipt scan completed")
		results <- Result{Receipt: parsed}
	}()

	return results
}
