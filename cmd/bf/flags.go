package main

import (
	"fmt"
	"strconv"
	"strings"

	"bf/interpreter-go/pkg/driver"
	"bf/interpreter-go/pkg/interp"
)

// policyFlags carries interpreter options parsed from the command line.
// Fields are pointers so that "not given" stays distinguishable from a zero
// value when merging with config and manifest settings.
type policyFlags struct {
	tapeSize *int
	eof      *interp.EOFPolicy
	trace    *bool
}

func parsePolicyFlags(args []string) (policyFlags, []string, error) {
	var flags policyFlags
	remaining := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			remaining = append(remaining, args[i:]...)
			break
		}
		switch {
		case arg == "--tape-size":
			if i+1 >= len(args) {
				return flags, nil, fmt.Errorf("--tape-size expects a value")
			}
			i++
			if err := flags.setTapeSize(args[i]); err != nil {
				return flags, nil, err
			}
		case strings.HasPrefix(arg, "--tape-size="):
			if err := flags.setTapeSize(strings.TrimPrefix(arg, "--tape-size=")); err != nil {
				return flags, nil, err
			}
		case arg == "--eof":
			if i+1 >= len(args) {
				return flags, nil, fmt.Errorf("--eof expects a value")
			}
			i++
			if err := flags.setEOF(args[i]); err != nil {
				return flags, nil, err
			}
		case strings.HasPrefix(arg, "--eof="):
			if err := flags.setEOF(strings.TrimPrefix(arg, "--eof=")); err != nil {
				return flags, nil, err
			}
		case arg == "--trace":
			enabled := true
			flags.trace = &enabled
		default:
			remaining = append(remaining, arg)
		}
	}
	return flags, remaining, nil
}

func (f *policyFlags) setTapeSize(value string) error {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < 0 {
		return fmt.Errorf("--tape-size expects an integer >= 0")
	}
	f.tapeSize = &parsed
	return nil
}

func (f *policyFlags) setEOF(value string) error {
	policy, err := interp.ParseEOFPolicy(value)
	if err != nil {
		return err
	}
	f.eof = &policy
	return nil
}

// resolveOptions merges interpreter options: built-in defaults, then user
// config, then the project manifest, then command-line flags.
func resolveOptions(config *userConfig, spec *driver.InterpreterSpec, flags policyFlags) (interp.Options, error) {
	opts := interp.Options{EOF: interp.EOFUnchanged}

	if config != nil {
		if config.Interpreter.TapeSize > 0 {
			opts.TapeSize = config.Interpreter.TapeSize
		}
		if config.Interpreter.EOF != "" {
			policy, err := interp.ParseEOFPolicy(config.Interpreter.EOF)
			if err != nil {
				return opts, fmt.Errorf("config: %w", err)
			}
			opts.EOF = policy
		}
		opts.Trace = config.Interpreter.Trace
	}

	if spec != nil {
		if spec.TapeSize > 0 {
			opts.TapeSize = spec.TapeSize
		}
		if spec.EOF != "" {
			policy, err := interp.ParseEOFPolicy(spec.EOF)
			if err != nil {
				return opts, fmt.Errorf("manifest: %w", err)
			}
			opts.EOF = policy
		}
	}

	if flags.tapeSize != nil {
		opts.TapeSize = *flags.tapeSize
	}
	if flags.eof != nil {
		opts.EOF = *flags.eof
	}
	if flags.trace != nil {
		opts.Trace = *flags.trace
	}
	return opts, nil
}
