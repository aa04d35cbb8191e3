// Package metrics implements the metrics sink: an in-memory accumulator
// written by a lexer/parser during a single parse and read once by the
// caller at the request boundary. It is a research instrument, not a
// correctness signal -- see the scores' doc comments.
package metrics

import "time"

// Sink accumulates the counters and timings produced while lexing and
// parsing a single input. A Sink is owned by one request; it is never
// shared across parses.
type Sink struct {
	ASTNodes           int
	TokensProcessed    int
	ErrorRecoveryCount int

	ParsingTimeMS     float64
	ConversionTimeMS  float64
	MemoryUsageKB     float64

	errorCount   int
	warningCount int

	parseStart time.Time
}

// StartParse records the wall-clock start of a parse.
func (s *Sink) StartParse() {
	s.parseStart = time.Now()
}

// StopParse records elapsed wall-clock time since StartParse into
// ParsingTimeMS.
func (s *Sink) StopParse() {
	if s.parseStart.IsZero() {
		return
	}
	s.ParsingTimeMS = float64(time.Since(s.parseStart).Microseconds()) / 1000.0
}

// NodeCreated increments the AST-node counter. Called once per node
// constructed by a parser production.
func (s *Sink) NodeCreated() {
	s.ASTNodes++
}

// RecoveryRan increments the panic-mode recovery counter.
func (s *Sink) RecoveryRan() {
	s.ErrorRecoveryCount++
}

// RecordDiagnosticCounts feeds in the final error/warning counts so the
// derived scores below can be computed.
func (s *Sink) RecordDiagnosticCounts(errors, warnings int) {
	s.errorCount = errors
	s.warningCount = warnings
}

// SyntaxAccuracy is max(0, (tokensProcessed-errors)/tokensProcessed*100).
func (s *Sink) SyntaxAccuracy() float64 {
	if s.TokensProcessed == 0 {
		return 0
	}
	v := float64(s.TokensProcessed-s.errorCount) / float64(s.TokensProcessed) * 100.0
	if v < 0 {
		return 0
	}
	return v
}

// SemanticPreservation is max(0, 100 - 10*errors - 5*warnings).
func (s *Sink) SemanticPreservation() float64 {
	v := 100.0 - 10.0*float64(s.errorCount) - 5.0*float64(s.warningCount)
	if v < 0 {
		return 0
	}
	return v
}
