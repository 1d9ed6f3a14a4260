package main

import (
	"fmt"
	"os"

	_ "github.com/tliron/commonlog/simple"
)

const cliToolVersion = "bf-cli 0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	policies, remaining, err := parsePolicyFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if len(remaining) == 0 {
		printUsage()
		return 1
	}

	switch remaining[0] {
	case "--help", "-h":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runEntry(remaining[1:], policies)
	case "check":
		return runCheck(remaining[1:], policies)
	case "test":
		return runTest(remaining[1:], policies)
	case "deps":
		return runDeps(remaining[1:])
	default:
		return runEntry(remaining, policies)
	}
}
