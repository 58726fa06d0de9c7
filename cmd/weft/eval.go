package main

import (
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/weftlang/weft"
	"github.com/weftlang/weft/sexp"
)

// EvalCommand represents a command for evaluating an expression.
type EvalCommand struct{}

// NewEvalCommand returns a new instance of EvalCommand.
func NewEvalCommand() *EvalCommand {
	return &EvalCommand{}
}

// Run executes the "eval" subcommand.
func (cmd *EvalCommand) Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("weft-eval", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "verbose")
	fs.Usage = cmd.usage
	if err := fs.Parse(args); err != nil {
		return err
	} else if fs.NArg() == 0 {
		return fmt.Errorf("expression required")
	}

	log.SetFlags(0)
	if !*verbose {
		log.SetOutput(ioutil.Discard)
	}

	// Leading name=expr arguments bind variables; the last argument is the
	// expression to evaluate. Later bindings may refer to earlier ones.
	ev := weft.NewEvaluator()
	fsArgs := fs.Args()
	for _, arg := range fsArgs[:len(fsArgs)-1] {
		i := strings.Index(arg, "=")
		if i <= 0 {
			return fmt.Errorf("invalid binding %q, expected name=expr", arg)
		}
		bound, err := sexp.Parse(arg[i+1:])
		if err != nil {
			return err
		}
		value, err := ev.Eval(bound)
		if err != nil {
			return err
		}
		ev.SetVar(arg[:i], value)
	}

	expr, err := sexp.Parse(fsArgs[len(fsArgs)-1])
	if err != nil {
		return err
	}

	log.Print("input:")
	log.Print(spew.Sdump(expr))

	value, err := ev.Eval(expr)
	if err != nil {
		return err
	}
	fmt.Println(value.String())
	return nil
}

func (cmd *EvalCommand) usage() {
	fmt.Fprintln(os.Stderr, `
usage: weft eval [arguments] [name=expr ...] <expr>

Evaluates an expression to a constant. Leading name=expr arguments bind
free variables; each binding is itself evaluated, so it may refer to
variables bound before it.

Arguments:

	-v
	    Enable verbose logging.
`[1:])
}
