// Package convert wires the lexer, parser, mapper, and emitter packages
// into the four total entry points the rest of the program calls
// through: a parse-only path and a full conversion path, one pair per
// direction.
package convert

import (
	"errors"
	"time"

	"xlate/pkg/diag"
	"xlate/pkg/emit"
	"xlate/pkg/mapper"
	"xlate/pkg/metrics"
	"xlate/pkg/sharp"
	"xlate/pkg/script"
	"xlate/pkg/source"
)

// ErrEmptyInput is returned when the caller passes an empty or
// whitespace-only input string.
var ErrEmptyInput = errors.New("convert: input is empty")

// ErrNilRoot is returned when a mapper is handed a nil AST root, which
// would otherwise panic deep in an emitter's type switch.
var ErrNilRoot = errors.New("convert: parser produced a nil AST root")

// ConversionResult carries the converted source text alongside the
// diagnostics and metrics produced while getting there.
type ConversionResult struct {
	Success              bool
	ConvertedCode        string
	Errors               []diag.Diagnostic
	Warnings             []diag.Diagnostic
	RDPParsingTimeMS     float64
	ConversionTimeMS     float64
	ASTNodes             int
	TokensProcessed      int
	MemoryUsageKB        float64
	ErrorRecoveryCount   int
	SyntaxAccuracy       float64
	SemanticPreservation float64
}

// Options configures the diagnostic-collection behavior of a parse or
// conversion: a small struct of debugging/limiting knobs with a usable
// zero value, rather than a config file or builder.
type Options struct {
	// MaxDiagnostics caps how many diagnostics a single call returns,
	// keeping pathological inputs from producing unbounded output.
	// Zero means unlimited.
	MaxDiagnostics int

	// RecoveryBudget caps how many times the parser's panic-mode
	// recovery may run before it gives up and fast-forwards to the
	// end of input rather than continuing to hunt for synchronization
	// points. Zero means unlimited recovery attempts.
	RecoveryBudget int
}

func (o Options) capDiagnostics(diags []diag.Diagnostic) []diag.Diagnostic {
	if o.MaxDiagnostics > 0 && len(diags) > o.MaxDiagnostics {
		return diags[:o.MaxDiagnostics]
	}
	return diags
}

// ParseResult reports whether input parses cleanly in its source
// language, without exposing the AST it built to do so.
type ParseResult struct {
	Success  bool
	Errors   []diag.Diagnostic
	Warnings []diag.Diagnostic

	RDPParsingTimeMS   float64
	ASTNodes           int
	TokensProcessed    int
	ErrorRecoveryCount int
}

func isBlank(input string) bool {
	for _, r := range input {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

func splitSeverities(diags []diag.Diagnostic) (errs, warns []diag.Diagnostic) {
	for _, d := range diags {
		switch d.Severity {
		case diag.SeverityError:
			errs = append(errs, d)
		case diag.SeverityWarning:
			warns = append(warns, d)
		}
	}
	return
}

func nowMS() float64 {
	return float64(time.Now().UnixNano()) / 1e6
}

// ConvertScriptToSharp parses input as script (L-dyn), maps it to a
// sharp (L-stat) AST, and emits sharp source text.
func ConvertScriptToSharp(input string) ConversionResult {
	return ConvertScriptToSharpWithOptions(input, Options{})
}

// ConvertScriptToSharpWithOptions is ConvertScriptToSharp with the
// diagnostic-limiting knobs in Options applied.
func ConvertScriptToSharpWithOptions(input string, opts Options) ConversionResult {
	if isBlank(input) {
		return ConversionResult{Errors: []diag.Diagnostic{diag.New(diag.TypeConversionError, 0, 0, ErrEmptyInput.Error())}}
	}
	src := source.New("<input>", input)
	sink := &metrics.Sink{}
	lexer := script.NewLexer(src)
	ts := script.NewTokenStream(lexer)
	p := script.NewParser(ts, sink, src)
	p.SetRecoveryBudget(opts.RecoveryBudget)
	prog, diags := p.ParseProgram()
	if prog == nil {
		diags = append(diags, diag.New(diag.TypeConversionError, 0, 0, ErrNilRoot.Error()))
		errs, warns := splitSeverities(diags)
		return ConversionResult{Errors: errs, Warnings: warns}
	}

	mapStart := nowMS()
	m := mapper.NewScriptToSharp()
	unit := m.Map(prog)
	diags = append(diags, m.Diagnostics()...)
	code := emit.Sharp(unit)
	sink.ConversionTimeMS = nowMS() - mapStart

	errs, warns := splitSeverities(opts.capDiagnostics(diags))
	return ConversionResult{
		Success:              len(errs) == 0,
		ConvertedCode:        code,
		Errors:               errs,
		Warnings:             warns,
		RDPParsingTimeMS:     sink.ParsingTimeMS,
		ConversionTimeMS:     sink.ConversionTimeMS,
		ASTNodes:             sink.ASTNodes,
		TokensProcessed:      sink.TokensProcessed,
		MemoryUsageKB:        sink.MemoryUsageKB,
		ErrorRecoveryCount:   sink.ErrorRecoveryCount,
		SyntaxAccuracy:       sink.SyntaxAccuracy(),
		SemanticPreservation: sink.SemanticPreservation(),
	}
}

// ConvertSharpToScript parses input as sharp (L-stat), maps it to a
// script (L-dyn) AST, and emits script source text.
func ConvertSharpToScript(input string) ConversionResult {
	return ConvertSharpToScriptWithOptions(input, Options{})
}

// ConvertSharpToScriptWithOptions is ConvertSharpToScript with the
// diagnostic-limiting knobs in Options applied.
func ConvertSharpToScriptWithOptions(input string, opts Options) ConversionResult {
	if isBlank(input) {
		return ConversionResult{Errors: []diag.Diagnostic{diag.New(diag.TypeConversionError, 0, 0, ErrEmptyInput.Error())}}
	}
	src := source.New("<input>", input)
	sink := &metrics.Sink{}
	lexer := sharp.NewLexer(src)
	ts := sharp.NewTokenStream(lexer)
	p := sharp.NewParser(ts, sink, src)
	p.SetRecoveryBudget(opts.RecoveryBudget)
	unit, diags := p.ParseCompilationUnit()
	if unit == nil {
		diags = append(diags, diag.New(diag.TypeConversionError, 0, 0, ErrNilRoot.Error()))
		errs, warns := splitSeverities(diags)
		return ConversionResult{Errors: errs, Warnings: warns}
	}

	mapStart := nowMS()
	m := mapper.NewSharpToScript()
	prog := m.Map(unit)
	diags = append(diags, m.Diagnostics()...)
	code := emit.Script(prog)
	sink.ConversionTimeMS = nowMS() - mapStart

	errs, warns := splitSeverities(opts.capDiagnostics(diags))
	return ConversionResult{
		Success:              len(errs) == 0,
		ConvertedCode:        code,
		Errors:               errs,
		Warnings:             warns,
		RDPParsingTimeMS:     sink.ParsingTimeMS,
		ConversionTimeMS:     sink.ConversionTimeMS,
		ASTNodes:             sink.ASTNodes,
		TokensProcessed:      sink.TokensProcessed,
		MemoryUsageKB:        sink.MemoryUsageKB,
		ErrorRecoveryCount:   sink.ErrorRecoveryCount,
		SyntaxAccuracy:       sink.SyntaxAccuracy(),
		SemanticPreservation: sink.SemanticPreservation(),
	}
}

// ParseScript runs the script (L-dyn) lexer and parser over input and
// reports whether it parsed cleanly, without exposing the AST it built.
func ParseScript(input string) ParseResult {
	return ParseScriptWithOptions(input, Options{})
}

// ParseScriptWithOptions is ParseScript with the diagnostic-limiting
// knobs in Options applied.
func ParseScriptWithOptions(input string, opts Options) ParseResult {
	if isBlank(input) {
		return ParseResult{Errors: []diag.Diagnostic{diag.New(diag.TypeConversionError, 0, 0, ErrEmptyInput.Error())}}
	}
	src := source.New("<input>", input)
	sink := &metrics.Sink{}
	lexer := script.NewLexer(src)
	ts := script.NewTokenStream(lexer)
	p := script.NewParser(ts, sink, src)
	p.SetRecoveryBudget(opts.RecoveryBudget)
	_, diags := p.ParseProgram()
	errs, warns := splitSeverities(opts.capDiagnostics(diags))
	return ParseResult{
		Success:            len(errs) == 0,
		Errors:             errs,
		Warnings:           warns,
		RDPParsingTimeMS:   sink.ParsingTimeMS,
		ASTNodes:           sink.ASTNodes,
		TokensProcessed:    sink.TokensProcessed,
		ErrorRecoveryCount: sink.ErrorRecoveryCount,
	}
}

// ParseSharp runs the sharp (L-stat) lexer and parser over input and
// reports whether it parsed cleanly, without exposing the AST it built.
func ParseSharp(input string) ParseResult {
	return ParseSharpWithOptions(input, Options{})
}

// ParseSharpWithOptions is ParseSharp with the diagnostic-limiting
// knobs in Options applied.
func ParseSharpWithOptions(input string, opts Options) ParseResult {
	if isBlank(input) {
		return ParseResult{Errors: []diag.Diagnostic{diag.New(diag.TypeConversionError, 0, 0, ErrEmptyInput.Error())}}
	}
	src := source.New("<input>", input)
	sink := &metrics.Sink{}
	lexer := sharp.NewLexer(src)
	ts := sharp.NewTokenStream(lexer)
	p := sharp.NewParser(ts, sink, src)
	p.SetRecoveryBudget(opts.RecoveryBudget)
	_, diags := p.ParseCompilationUnit()
	errs, warns := splitSeverities(opts.capDiagnostics(diags))
	return ParseResult{
		Success:            len(errs) == 0,
		Errors:             errs,
		Warnings:           warns,
		RDPParsingTimeMS:   sink.ParsingTimeMS,
		ASTNodes:           sink.ASTNodes,
		TokensProcessed:    sink.TokensProcessed,
		ErrorRecoveryCount: sink.ErrorRecoveryCount,
	}
}
