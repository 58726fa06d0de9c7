package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err == flag.ErrHelp {
		os.Exit(1)
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	var cmd string
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "", "-h", "--help", "help":
		usage()
		return flag.ErrHelp
	case "simplify":
		return NewSimplifyCommand().Run(ctx, args)
	case "prove":
		return NewProveCommand().Run(ctx, args)
	case "eval":
		return NewEvalCommand().Run(ctx, args)
	default:
		return fmt.Errorf(`weft %s: unknown command`, cmd)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `
Weft is a tool for manipulating typed array-computation expressions.

Usage:

	weft <command> [arguments]

The commands are:

	simplify    apply algebraic simplification to an expression
	prove       attempt to prove a boolean expression always true
	eval        evaluate an expression under variable bindings
	help        this screen
`[1:])
}
