package main

import (
	"fmt"
	"os"
)

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  bf [policy flags] run <file.b>")
	fmt.Fprintln(os.Stderr, "  bf [policy flags] run            (main from program.yml)")
	fmt.Fprintln(os.Stderr, "  bf [policy flags] <file.b>")
	fmt.Fprintln(os.Stderr, "  bf [policy flags] check <file.b>")
	fmt.Fprintln(os.Stderr, "  bf [policy flags] test [paths] [--name N] [--list] [--fail-fast] [--format doc|tap]")
	fmt.Fprintln(os.Stderr, "  bf deps install")
	fmt.Fprintln(os.Stderr, "  bf deps update [dependency ...]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Policy flags:")
	fmt.Fprintln(os.Stderr, "  --tape-size N   bound the tape to N cells (0 = unbounded, the default)")
	fmt.Fprintln(os.Stderr, "  --eof MODE      ',' at end of input: unchanged (default), zero, or eof-value")
	fmt.Fprintln(os.Stderr, "  --trace         log every dispatched instruction to stderr")
}
