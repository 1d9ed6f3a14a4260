package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tliron/commonlog"

	"bf/interpreter-go/pkg/driver"
	"bf/interpreter-go/pkg/interp"
	"bf/interpreter-go/pkg/program"
)

func runEntry(args []string, flags policyFlags) int {
	return runEntryWithMode(args, flags, false)
}

func runCheck(args []string, flags policyFlags) int {
	return runEntryWithMode(args, flags, true)
}

func runEntryWithMode(args []string, flags policyFlags, checkOnly bool) int {
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return 1
	}

	manifest, err := loadManifestNearby(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
		return 1
	}

	entry, err := resolveEntryPath(args, manifest, checkOnly)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	config, err := loadUserConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	var spec *driver.InterpreterSpec
	if manifest != nil {
		spec = &manifest.Interpreter
	}
	opts, err := resolveOptions(config, spec, flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if opts.Trace {
		commonlog.Configure(2, nil)
	}

	loaded, err := driver.Load(entry)
	if err != nil {
		fmt.Fprintln(os.Stderr, describeError(err))
		return 1
	}

	if checkOnly {
		fmt.Fprintf(os.Stdout, "check: ok (%d instructions)\n", loaded.Program.Len())
		return 0
	}

	if err := interp.New(loaded.Program, os.Stdin, os.Stdout, opts).Run(); err != nil {
		fmt.Fprintln(os.Stderr, describeError(err))
		return 1
	}
	return 0
}

// loadManifestNearby finds program.yml: next to (or above) the named program,
// or upward from the working directory when no file argument was given. A
// missing manifest is fine; a broken one is not.
func loadManifestNearby(args []string) (*driver.Manifest, error) {
	start := "."
	if len(args) == 1 {
		start = args[0]
	}
	path, err := driver.FindManifest(start)
	if err != nil {
		if errors.Is(err, driver.ErrManifestNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return driver.LoadManifest(path)
}

func resolveEntryPath(args []string, manifest *driver.Manifest, checkOnly bool) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	label := "bf run"
	if checkOnly {
		label = "bf check"
	}
	if manifest == nil {
		return "", fmt.Errorf("%s requires a source file (no %s found)", label, driver.ManifestFileName)
	}
	entry, err := manifest.MainPath()
	if err != nil {
		return "", fmt.Errorf("manifest error: %v", err)
	}
	return entry, nil
}

// describeError renders load and runtime failures with their error kind and
// source position.
func describeError(err error) string {
	var mismatch *program.MismatchedBracketError
	if errors.As(err, &mismatch) {
		return fmt.Sprintf("error: %s", mismatch.Error())
	}
	var underflow *interp.PointerUnderflowError
	if errors.As(err, &underflow) {
		return fmt.Sprintf("error: %s", underflow.Error())
	}
	var overflow *interp.TapeOverflowError
	if errors.As(err, &overflow) {
		return fmt.Sprintf("error: %s", overflow.Error())
	}
	return fmt.Sprintf("error: %v", err)
}
