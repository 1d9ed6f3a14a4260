// Package driver loads Brainfuck programs from disk and understands the
// project files around them: the program.yml manifest and the program.lock
// lockfile that pins fetched program libraries.
package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"bf/interpreter-go/pkg/program"
)

// LoadedProgram couples a scanned program with where it came from.
type LoadedProgram struct {
	Path    string
	Source  []byte
	Program *program.Program
}

// Load reads a source file and scans it. Bracket validation happens here, so
// a *program.MismatchedBracketError surfaces before any instruction runs;
// callers unwrap it with errors.As to report the position.
func Load(path string) (*LoadedProgram, error) {
	if path == "" {
		return nil, fmt.Errorf("loader: empty program path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("loader: resolve %s: %w", path, err)
	}
	source, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", abs, err)
	}
	prog, err := program.Scan(source)
	if err != nil {
		return nil, fmt.Errorf("loader: %s: %w", abs, err)
	}
	return &LoadedProgram{Path: abs, Source: source, Program: prog}, nil
}
