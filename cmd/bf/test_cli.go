package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"bf/interpreter-go/pkg/interp"
	"bf/interpreter-go/pkg/program"
)

type testReporterFormat string

const (
	reporterDoc testReporterFormat = "doc"
	reporterTap testReporterFormat = "tap"
)

type testCliConfig struct {
	Targets  []string
	Names    []string
	ListOnly bool
	FailFast bool
	Format   testReporterFormat
}

func runTest(args []string, flags policyFlags) int {
	config, err := parseTestArguments(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bf test: %v\n", err)
		return 2
	}

	files, err := collectSuiteFiles(config.Targets)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bf test: %v\n", err)
		return 2
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stdout, "bf test: no suite files found")
		return 0
	}

	var suites []*testSuite
	for _, file := range files {
		suite, err := loadSuite(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bf test: %v\n", err)
			return 2
		}
		suites = append(suites, suite)
	}

	plan := buildTestPlan(suites, config.Names)
	if config.ListOnly {
		for _, item := range plan {
			fmt.Fprintf(os.Stdout, "%s: %s\n", item.suite.Name, item.testCase.Name)
		}
		return 0
	}
	if len(plan) == 0 {
		fmt.Fprintln(os.Stdout, "bf test: no tests to run")
		return 0
	}

	return executeTestPlan(os.Stdout, plan, config, flags)
}

type planItem struct {
	suite    *testSuite
	testCase *testCase
}

func buildTestPlan(suites []*testSuite, names []string) []planItem {
	var plan []planItem
	for _, suite := range suites {
		for _, tc := range suite.Cases {
			if !matchesNames(tc.Name, names) {
				continue
			}
			plan = append(plan, planItem{suite: suite, testCase: tc})
		}
	}
	return plan
}

func matchesNames(name string, names []string) bool {
	if len(names) == 0 {
		return true
	}
	for _, candidate := range names {
		if strings.Contains(name, candidate) {
			return true
		}
	}
	return false
}

func executeTestPlan(w io.Writer, plan []planItem, config testCliConfig, flags policyFlags) int {
	if config.Format == reporterTap {
		fmt.Fprintf(w, "1..%d\n", len(plan))
	}

	passed, failed := 0, 0
	currentSuite := ""
	for i, item := range plan {
		if config.Format == reporterDoc && item.suite.Name != currentSuite {
			currentSuite = item.suite.Name
			fmt.Fprintf(w, "%s\n", currentSuite)
		}
		err := runSuiteCase(item.suite, item.testCase, flags)
		ok := err == nil
		detail := ""
		if ok {
			passed++
		} else {
			failed++
			detail = err.Error()
		}
		switch config.Format {
		case reporterTap:
			if ok {
				fmt.Fprintf(w, "ok %d - %s\n", i+1, item.testCase.Name)
			} else {
				fmt.Fprintf(w, "not ok %d - %s\n", i+1, item.testCase.Name)
				fmt.Fprintf(w, "# %s\n", detail)
			}
		default:
			if ok {
				fmt.Fprintf(w, "  PASS %s\n", item.testCase.Name)
			} else {
				fmt.Fprintf(w, "  FAIL %s: %s\n", item.testCase.Name, detail)
			}
		}
		if failed > 0 && config.FailFast {
			break
		}
	}

	if config.Format == reporterDoc {
		fmt.Fprintf(w, "%d passed, %d failed\n", passed, failed)
	}
	if failed > 0 {
		return 1
	}
	return 0
}

// runSuiteCase executes one case in isolation with in-memory streams. A nil
// return means the case passed.
func runSuiteCase(suite *testSuite, tc *testCase, flags policyFlags) error {
	source, err := suite.caseSource(tc)
	if err != nil {
		return err
	}

	opts := interp.Options{EOF: interp.EOFUnchanged}
	if flags.tapeSize != nil {
		opts.TapeSize = *flags.tapeSize
	}
	if flags.eof != nil {
		opts.EOF = *flags.eof
	}
	if tc.TapeSize > 0 {
		opts.TapeSize = tc.TapeSize
	}
	if tc.EOF != "" {
		policy, err := interp.ParseEOFPolicy(tc.EOF)
		if err != nil {
			return err
		}
		opts.EOF = policy
	}

	var out bytes.Buffer
	runErr := interp.Run(source, strings.NewReader(tc.Input), &out, opts)

	if tc.Error != "" {
		if runErr == nil {
			return fmt.Errorf("expected %s error, program halted normally", tc.Error)
		}
		if kind := errorKind(runErr); kind != tc.Error {
			return fmt.Errorf("expected %s error, got: %v", tc.Error, runErr)
		}
		return nil
	}

	if runErr != nil {
		return runErr
	}
	if got := out.String(); got != tc.Output {
		return fmt.Errorf("output %q, want %q", got, tc.Output)
	}
	return nil
}

func errorKind(err error) string {
	var mismatch *program.MismatchedBracketError
	if errors.As(err, &mismatch) {
		return expectMismatchedBracket
	}
	var underflow *interp.PointerUnderflowError
	if errors.As(err, &underflow) {
		return expectPointerUnderflow
	}
	var overflow *interp.TapeOverflowError
	if errors.As(err, &overflow) {
		return expectTapeOverflow
	}
	return "unknown"
}

func parseTestArguments(args []string) (testCliConfig, error) {
	config := testCliConfig{Format: reporterDoc}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--list":
			config.ListOnly = true
		case "--fail-fast":
			config.FailFast = true
		case "--name":
			val, err := expectFlagValue(arg, nextArg(args, &i))
			if err != nil {
				return testCliConfig{}, err
			}
			config.Names = append(config.Names, val)
		case "--format":
			val, err := expectFlagValue(arg, nextArg(args, &i))
			if err != nil {
				return testCliConfig{}, err
			}
			switch val {
			case "doc":
				config.Format = reporterDoc
			case "tap":
				config.Format = reporterTap
			default:
				return testCliConfig{}, fmt.Errorf("unknown --format value '%s' (expected doc or tap)", val)
			}
		default:
			if strings.HasPrefix(arg, "-") {
				return testCliConfig{}, fmt.Errorf("unknown bf test flag '%s'", arg)
			}
			config.Targets = append(config.Targets, arg)
		}
	}
	return config, nil
}

func nextArg(args []string, index *int) string {
	*index = *index + 1
	if *index >= len(args) {
		return ""
	}
	return args[*index]
}

func expectFlagValue(flag string, value string) (string, error) {
	if value == "" || strings.HasPrefix(value, "-") {
		return "", fmt.Errorf("%s expects a value", flag)
	}
	return value, nil
}
