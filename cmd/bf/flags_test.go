package main

import (
	"testing"

	"bf/interpreter-go/pkg/driver"
	"bf/interpreter-go/pkg/interp"
)

func TestParsePolicyFlags(t *testing.T) {
	flags, remaining, err := parsePolicyFlags([]string{"--tape-size=30000", "--eof", "zero", "--trace", "run", "x.b"})
	if err != nil {
		t.Fatalf("parsePolicyFlags: %v", err)
	}
	if flags.tapeSize == nil || *flags.tapeSize != 30000 {
		t.Errorf("tapeSize = %v, want 30000", flags.tapeSize)
	}
	if flags.eof == nil || *flags.eof != interp.EOFZero {
		t.Errorf("eof = %v, want zero", flags.eof)
	}
	if flags.trace == nil || !*flags.trace {
		t.Errorf("trace not set")
	}
	if len(remaining) != 2 || remaining[0] != "run" || remaining[1] != "x.b" {
		t.Errorf("remaining = %v", remaining)
	}
}

func TestParsePolicyFlagsRejectsBadValues(t *testing.T) {
	if _, _, err := parsePolicyFlags([]string{"--tape-size", "-4"}); err == nil {
		t.Errorf("negative tape size must be rejected")
	}
	if _, _, err := parsePolicyFlags([]string{"--eof", "whatever"}); err == nil {
		t.Errorf("unknown eof policy must be rejected")
	}
	if _, _, err := parsePolicyFlags([]string{"--tape-size"}); err == nil {
		t.Errorf("missing tape size value must be rejected")
	}
}

func TestResolveOptionsPrecedence(t *testing.T) {
	config := &userConfig{Interpreter: configInterpreter{TapeSize: 1000, EOF: "zero"}}
	spec := &driver.InterpreterSpec{TapeSize: 2000}
	size := 3000
	flags := policyFlags{tapeSize: &size}

	opts, err := resolveOptions(config, spec, flags)
	if err != nil {
		t.Fatalf("resolveOptions: %v", err)
	}
	// Flags beat manifest, manifest beats config, config beats defaults.
	if opts.TapeSize != 3000 {
		t.Errorf("TapeSize = %d, want 3000", opts.TapeSize)
	}
	if opts.EOF != interp.EOFZero {
		t.Errorf("EOF = %v, want zero (from config)", opts.EOF)
	}
}

func TestResolveOptionsDefaults(t *testing.T) {
	opts, err := resolveOptions(nil, nil, policyFlags{})
	if err != nil {
		t.Fatalf("resolveOptions: %v", err)
	}
	if opts.TapeSize != 0 {
		t.Errorf("TapeSize = %d, want 0 (unbounded)", opts.TapeSize)
	}
	if opts.EOF != interp.EOFUnchanged {
		t.Errorf("EOF = %v, want unchanged", opts.EOF)
	}
	if opts.Trace {
		t.Errorf("Trace must default to off")
	}
}
