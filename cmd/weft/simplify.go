package main

import (
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/weftlang/weft"
	"github.com/weftlang/weft/sexp"
)

// SimplifyCommand represents a command for simplifying an expression.
type SimplifyCommand struct{}

// NewSimplifyCommand returns a new instance of SimplifyCommand.
func NewSimplifyCommand() *SimplifyCommand {
	return &SimplifyCommand{}
}

// Run executes the "simplify" subcommand.
func (cmd *SimplifyCommand) Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("weft-simplify", flag.ContinueOnError)
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

	s := weft.NewSimplifier()
	if err := applyBoundsFlag(s, *boundsFlag); err != nil {
		return err
	} else if err := applyAlignFlag(s, *alignFlag); err != nil {
		return err
	}

	log.Print("input:")
	log.Print(spew.Sdump(expr))

	out, bounds := s.SimplifyWithBounds(expr)

	log.Print("output:")
	log.Print(spew.Sdump(out))
	if bounds.MinDefined {
		log.Printf("min: %d", bounds.Min)
	}
	if bounds.MaxDefined {
		log.Printf("max: %d", bounds.Max)
	}

	fmt.Println(out.String())
	return nil
}

func (cmd *SimplifyCommand) usage() {
	fmt.Fprintln(os.Stderr, `
usage: weft simplify [arguments] [expr]

Simplifies the expression given as an argument, or read from standard
input, and prints the result. Facts about free variables tighten what
can be simplified.

Arguments:

	-v
	    Enable verbose logging.

	-bounds name:min:max[,...]
	    Assume name stays within [min, max].

	-align name:modulus:remainder[,...]
	    Assume name % modulus == remainder.
`[1:])
}

// readInput returns the expression text from the first argument or, when no
// argument is given, from standard input.
func readInput(fs *flag.FlagSet) (string, error) {
	if fs.NArg() == 1 {
		return fs.Arg(0), nil
	}
	buf, err := ioutil.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// applyBoundsFlag parses a comma separated list of name:min:max facts.
func applyBoundsFlag(s *weft.Simplifier, value string) error {
	if value == "" {
		return nil
	}
	for _, fact := range strings.Split(value, ",") {
		parts := strings.Split(fact, ":")
		if len(parts) != 3 {
			return fmt.Errorf("invalid bounds fact %q, expected name:min:max", fact)
		}
		min, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid bounds fact %q: %s", fact, err)
		}
		max, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid bounds fact %q: %s", fact, err)
		}
		if min > max {
			return fmt.Errorf("invalid bounds fact %q: min exceeds max", fact)
		}
		s.SetVarBounds(parts[0], weft.NewBounds(min, max))
	}
	return nil
}

// applyAlignFlag parses a comma separated list of name:modulus:remainder facts.
func applyAlignFlag(s *weft.Simplifier, value string) error {
	if value == "" {
		return nil
	}
	for _, fact := range strings.Split(value, ",") {
		parts := strings.Split(fact, ":")
		if len(parts) != 3 {
			return fmt.Errorf("invalid alignment fact %q, expected name:modulus:remainder", fact)
		}
		modulus, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid alignment fact %q: %s", fact, err)
		}
		remainder, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid alignment fact %q: %s", fact, err)
		}
		if modulus < 1 || remainder < 0 || remainder >= modulus {
			return fmt.Errorf("invalid alignment fact %q: require modulus >= 1 and 0 <= remainder < modulus", fact)
		}
		s.SetVarAlignment(parts[0], weft.NewModulusRemainder(modulus, remainder))
	}
	return nil
}
