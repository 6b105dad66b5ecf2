package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/sanity-io/litter"

	"three_address_compiler/casefile"
	"three_address_compiler/compiler/internal"
	"three_address_compiler/tac"
)

// Compiles a source file to three address code, or runs the cases of a Markdown case file.

var (
	path       = flag.String("path", "", "the source file to compile")
	cases      = flag.String("cases", "", "a markdown file of compilation cases to run instead")
	dumpTokens = flag.Bool("tokens", false, "whether print the tokens")
	dumpAST    = flag.Bool("ast", false, "whether print the syntax tree")
	dumpTable  = flag.Bool("symbols", false, "whether print the symbol table")
	jsonReport = flag.Bool("json", false, "whether print the whole result as json")
	verbose    = flag.Bool("v", false, "whether log the progress of every phase")
)

type options struct {
	tokens, ast, symbols, json, verbose bool
}

func main() {
	flag.Parse()
	opts := options{tokens: *dumpTokens, ast: *dumpAST, symbols: *dumpTable, json: *jsonReport, verbose: *verbose}
	var err error
	switch {
	case *cases != "":
		err = runCases(*cases, os.Stdout)
	case *path != "":
		err = compileFile(*path, opts, os.Stdout, os.Stderr)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func compileFile(path string, opts options, stdout, stderr io.Writer) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	logger := log.New(io.Discard, "", 0)
	if opts.verbose {
		logger = log.New(stderr, "compiler: ", 0)
	}
	result := internal.NewCompiler(logger).Compile(string(source))

	if opts.json {
		encoder := json.NewEncoder(stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result.Report()); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		return result.Err()
	}
	if opts.tokens {
		for _, token := range result.Tokens {
			fmt.Fprintf(stdout, "%d:%d\t%s\t%q\n", token.Line, token.Column, token.Kind, token.Lexeme)
		}
	}
	if opts.ast && result.AST != nil {
		fmt.Fprintln(stdout, litter.Sdump(result.AST))
	}
	if opts.symbols && result.SymbolTable != nil {
		for _, scope := range result.SymbolTable.ScopesInOrder() {
			fmt.Fprintf(stdout, "scope %s\n", scope.Name)
			for _, symbol := range scope.SymbolsInOrder() {
				description := symbol.Type.String()
				if symbol.Signature != nil {
					description = symbol.Signature.String()
				}
				fmt.Fprintf(stdout, "\t%s %s %s\n", symbol.Kind, symbol.Name, description)
			}
		}
	}
	if err := result.Err(); err != nil {
		return err
	}
	fmt.Fprint(stdout, tac.Listing(result.Instructions))
	return nil
}

func runCases(path string, stdout io.Writer) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	extracted, err := casefile.Extract(string(content))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	failed := 0
	for _, c := range extracted {
		if err := internal.CheckCase(c); err != nil {
			failed++
			fmt.Fprintf(stdout, "FAIL %s\n%v\n", c.Name, err)
			continue
		}
		fmt.Fprintf(stdout, "ok   %s\n", c.Name)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d cases failed", failed, len(extracted))
	}
	return nil
}
