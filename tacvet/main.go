package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"three_address_compiler/tac"
)

// A simple program reads a three address code listing and checks that its functions are balanced and
// that every jump targets a label of the listing.

var (
	inputPath = flag.String("i", "./output.tac", "the input three address code listing path")
	verbose   = flag.Bool("v", false, "whether print every decoded instruction")
)

func main() {
	flag.Parse()
	f, err := os.Open(*inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[tacvet]: failed to open file: %s, err: %v\n", *inputPath, err)
		os.Exit(1)
	}
	defer f.Close()
	if err = vet(f, os.Stdout, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "[tacvet]: %s: %v\n", *inputPath, err)
		os.Exit(1)
	}
}

func vet(rd io.Reader, stdout io.Writer, verbose bool) error {
	instructions, err := tac.Read(rd)
	if err != nil {
		return err
	}
	if verbose {
		for i, instruction := range instructions {
			decoded, err := tac.Decode(instruction.String())
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "%4d  %-12s %s\n", i+1, decoded.Op, describe(decoded))
		}
	}
	return errors.Join(tac.Verify(instructions)...)
}

func describe(decoded *tac.Decoded) string {
	var fields []string
	if decoded.Dest != "" {
		fields = append(fields, "dest="+decoded.Dest)
	}
	if decoded.Name != "" {
		fields = append(fields, "name="+decoded.Name)
	}
	if decoded.Label != "" {
		fields = append(fields, "label="+decoded.Label)
	}
	if decoded.Operator != "" {
		fields = append(fields, "op="+decoded.Operator)
	}
	if len(decoded.Operands) > 0 {
		fields = append(fields, "args="+strings.Join(decoded.Operands, ","))
	}
	if decoded.Op == tac.CallOp {
		fields = append(fields, fmt.Sprintf("n=%d", decoded.ArgCount))
	}
	return strings.Join(fields, " ")
}
