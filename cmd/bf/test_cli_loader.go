package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// testSuite is one parsed *.test.yml file.
type testSuite struct {
	Path  string      `yaml:"-"`
	Name  string      `yaml:"suite"`
	Cases []*testCase `yaml:"cases"`
}

// testCase declares one program run and its expected outcome. Exactly one of
// Program (inline source) and File (path relative to the suite file) must be
// set. Output may use YAML escapes for non-printable bytes. Error, when set,
// names the failure the run must produce instead of output.
type testCase struct {
	Name     string `yaml:"name"`
	Program  string `yaml:"program"`
	File     string `yaml:"file"`
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Error    string `yaml:"error"`
	TapeSize int    `yaml:"tape_size"`
	EOF      string `yaml:"eof"`
}

const (
	expectMismatchedBracket = "mismatched-bracket"
	expectPointerUnderflow  = "pointer-underflow"
	expectTapeOverflow      = "tape-overflow"
)

func isSuiteFile(path string) bool {
	return strings.HasSuffix(path, ".test.yml") || strings.HasSuffix(path, ".test.yaml")
}

// collectSuiteFiles resolves targets (files or directories, default ".") to a
// sorted list of suite files.
func collectSuiteFiles(targets []string) ([]string, error) {
	if len(targets) == 0 {
		targets = []string{"."}
	}
	found := make(map[string]struct{})
	for _, target := range targets {
		abs, err := filepath.Abs(target)
		if err != nil {
			return nil, fmt.Errorf("unable to resolve %s: %w", target, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("unable to access %s: %w", abs, err)
		}
		if info.IsDir() {
			err := filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					if d.Name() == ".git" {
						return fs.SkipDir
					}
					return nil
				}
				if d.Type().IsRegular() && isSuiteFile(d.Name()) {
					found[filepath.Clean(path)] = struct{}{}
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}
		if !isSuiteFile(abs) {
			return nil, fmt.Errorf("not a suite file: %s", abs)
		}
		found[filepath.Clean(abs)] = struct{}{}
	}
	files := make([]string, 0, len(found))
	for file := range found {
		files = append(files, file)
	}
	sort.Strings(files)
	return files, nil
}

func loadSuite(path string) (*testSuite, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open suite %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var suite testSuite
	if err := decoder.Decode(&suite); err != nil {
		return nil, fmt.Errorf("parse suite %s: %w", path, err)
	}
	suite.Path = path
	if suite.Name == "" {
		suite.Name = strings.TrimSuffix(filepath.Base(path), ".test.yml")
	}
	for i, tc := range suite.Cases {
		if tc == nil {
			return nil, fmt.Errorf("suite %s: case %d is empty", path, i+1)
		}
		if tc.Name == "" {
			return nil, fmt.Errorf("suite %s: case %d missing name", path, i+1)
		}
		if (tc.Program == "") == (tc.File == "") {
			return nil, fmt.Errorf("suite %s: case %q needs exactly one of program or file", path, tc.Name)
		}
		switch tc.Error {
		case "", expectMismatchedBracket, expectPointerUnderflow, expectTapeOverflow:
		default:
			return nil, fmt.Errorf("suite %s: case %q has unknown error kind %q", path, tc.Name, tc.Error)
		}
	}
	return &suite, nil
}

// caseSource returns the program text for a case, reading File relative to
// the suite file when set.
func (s *testSuite) caseSource(tc *testCase) ([]byte, error) {
	if tc.Program != "" {
		return []byte(tc.Program), nil
	}
	path := tc.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(s.Path), filepath.FromSlash(path))
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("suite %s: case %q: %w", s.Path, tc.Name, err)
	}
	return source, nil
}
