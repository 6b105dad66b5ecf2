package internal

import (
	"io"
	"log"

	"three_address_compiler/tac"
)

// Result holds the output of every phase. A phase only runs when the phases before it reported no
// errors, the fields of a skipped phase are left empty.
type Result struct {
	Tokens         []*Token
	LexicalErrors  Diagnostics
	AST            *Program
	ParseErrors    Diagnostics
	SymbolTable    *SymbolTable
	SemanticErrors Diagnostics
	Instructions   []tac.Instruction
}

// Diagnostics returns the errors of every phase in phase order.
func (result *Result) Diagnostics() Diagnostics {
	var ret Diagnostics
	ret = append(ret, result.LexicalErrors...)
	ret = append(ret, result.ParseErrors...)
	ret = append(ret, result.SemanticErrors...)
	return ret
}

func (result *Result) Succeeded() bool {
	return len(result.Diagnostics()) == 0
}

func (result *Result) Err() error {
	return result.Diagnostics().Err()
}

// Report is the plain form of a Result, ready to be encoded as json.
type Report struct {
	Tokens         []*Token     `json:"tokens"`
	LexicalErrors  Diagnostics  `json:"lexicalErrors"`
	AST            *NodeRecord  `json:"ast"`
	ParseErrors    Diagnostics  `json:"parseErrors"`
	SymbolTable    *SymbolTable `json:"symbolTable"`
	SemanticErrors Diagnostics  `json:"semanticErrors"`
	Instructions   []string     `json:"instructions"`
}

func (result *Result) Report() *Report {
	report := &Report{
		Tokens:         result.Tokens,
		LexicalErrors:  nonNil(result.LexicalErrors),
		ParseErrors:    nonNil(result.ParseErrors),
		SymbolTable:    result.SymbolTable,
		SemanticErrors: nonNil(result.SemanticErrors),
		Instructions:   []string{},
	}
	if result.AST != nil {
		report.AST = Export(result.AST)
	}
	for _, instruction := range result.Instructions {
		report.Instructions = append(report.Instructions, instruction.String())
	}
	return report
}

func nonNil(diagnostics Diagnostics) Diagnostics {
	if diagnostics == nil {
		return Diagnostics{}
	}
	return diagnostics
}

// Compiler runs the phases in order and logs its progress.
type Compiler struct {
	logger *log.Logger
}

func NewCompiler(logger *log.Logger) *Compiler {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Compiler{logger: logger}
}

// Compile builds fresh phase state on every call, so results never depend on earlier calls.
func (compiler *Compiler) Compile(source string) *Result {
	result := &Result{}
	compiler.logger.Printf("start tokenizer on %d bytes", len(source))
	result.Tokens, result.LexicalErrors = NewTokenizer().Tokenize(source)
	if len(result.LexicalErrors) > 0 {
		compiler.logger.Printf("stop after tokenizer: %d errors", len(result.LexicalErrors))
		return result
	}
	compiler.logger.Printf("start parser on %d tokens", len(result.Tokens))
	result.AST, result.ParseErrors = NewParser().Parse(result.Tokens)
	if len(result.ParseErrors) > 0 {
		compiler.logger.Printf("stop after parser: %d errors", len(result.ParseErrors))
		return result
	}
	compiler.logger.Printf("start type checker on %d functions", len(result.AST.Functions))
	result.SymbolTable, result.SemanticErrors = NewAnalyzer().Analyze(result.AST)
	if len(result.SemanticErrors) > 0 {
		compiler.logger.Printf("stop after type checker: %d errors", len(result.SemanticErrors))
		return result
	}
	compiler.logger.Printf("start generate codes")
	result.Instructions = NewGenerator().Generate(result.AST)
	compiler.logger.Printf("generated %d instructions", len(result.Instructions))
	return result
}

// Compile runs the whole pipeline over source without logging.
func Compile(source string) *Result {
	return NewCompiler(nil).Compile(source)
}
