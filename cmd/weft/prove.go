package main

import (
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/weftlang/weft"
	"github.com/weftlang/weft/sexp"
)

// ProveCommand represents a command for proving a boolean expression.
type ProveCommand struct{}

// NewProveCommand returns a new instance of ProveCommand.
func NewProveCommand() *ProveCommand {
	return &ProveCommand{}
}

// Run executes the "prove" subcommand.
func (cmd *ProveCommand) Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("weft-prove", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "verbose")
	boundsFlag := fs.String("bounds", "", "interval facts")
	alignFlag := fs.String("align", "", "alignment facts")
	fs.Usage = cmd.usage
	if err := fs.Parse(args); err != nil {
		return err
	} else if fs.NArg() > 1 {
		return fmt.Errorf("too many expressions specified")
	}

	log.SetFlags(0)
	if !*verbose {
		log.SetOutput(ioutil.Discard)
	}

	input, err := readInput(fs)
	if err != nil {
		return err
	}
	expr, err := sexp.Parse(input)
	if err != nil {
		return err
	}
	if !weft.ExprType(expr).IsBool() {
		return fmt.Errorf("expression must be boolean, got %s", weft.ExprType(expr))
	}

	s := weft.NewSimplifier()
	if err := applyBoundsFlag(s, *boundsFlag); err != nil {
		return err
	} else if err := applyAlignFlag(s, *alignFlag); err != nil {
		return err
	}

	log.Print("input:")
	log.Print(spew.Sdump(expr))

	if s.CanProve(expr) {
		fmt.Println("proved")
	} else {
		fmt.Println("not proved")
	}
	return nil
}

func (cmd *ProveCommand) usage() {
	fmt.Fprintln(os.Stderr, `
usage: weft prove [arguments] [expr]

Attempts to prove that a boolean expression holds for every value of its
free variables, under the optional facts given about them. Prints
"proved" when simplification reduces the expression to the constant
true, and "not proved" otherwise. "not proved" does not mean the
expression is false.

Arguments:

	-v
	    Enable verbose logging.

	-bounds name:min:max[,...]
	    Assume name stays within [min, max].

	-align name:modulus:remainder[,...]
	    Assume name % modulus == remainder.
`[1:])
}
