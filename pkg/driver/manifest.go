package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFileName is the project manifest looked for next to a program.
const ManifestFileName = "program.yml"

// ErrManifestNotFound is returned when no program.yml exists on the search
// path.
var ErrManifestNotFound = errors.New("program.yml not found")

// Manifest represents the parsed contents of program.yml.
type Manifest struct {
	Path         string
	Name         string
	Version      string
	Main         string
	Interpreter  InterpreterSpec
	Dependencies map[string]*DependencySpec
}

// InterpreterSpec carries per-project interpreter options. Zero values defer
// to user config and built-in defaults.
type InterpreterSpec struct {
	TapeSize int    `yaml:"tape_size"`
	EOF      string `yaml:"eof"`
}

// DependencySpec names a git source of a Brainfuck program library.
type DependencySpec struct {
	Git    string `yaml:"git"`
	Rev    string `yaml:"rev"`
	Tag    string `yaml:"tag"`
	Branch string `yaml:"branch"`
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

type manifestFile struct {
	Name         string                     `yaml:"name"`
	Version      string                     `yaml:"version"`
	Main         string                     `yaml:"main"`
	Interpreter  InterpreterSpec            `yaml:"interpreter"`
	Dependencies map[string]*DependencySpec `yaml:"dependencies"`
}

// LoadManifest parses program.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", abs, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", abs)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", abs, err)
	}

	manifest := &Manifest{
		Path:         abs,
		Name:         strings.TrimSpace(raw.Name),
		Version:      strings.TrimSpace(raw.Version),
		Main:         strings.TrimSpace(raw.Main),
		Interpreter:  raw.Interpreter,
		Dependencies: raw.Dependencies,
	}
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if m.Interpreter.TapeSize < 0 {
		errs.Issues = append(errs.Issues, "interpreter.tape_size must not be negative")
	}
	for name, dep := range m.Dependencies {
		if dep == nil {
			continue
		}
		dep.normalize()
		if dep.Git == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("dependencies.%s: git URL required", name))
			continue
		}
		if dep.Rev == "" && dep.Tag == "" && dep.Branch == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("dependencies.%s: rev, tag, or branch required", name))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

func (d *DependencySpec) normalize() {
	d.Git = strings.TrimSpace(d.Git)
	d.Rev = strings.TrimSpace(d.Rev)
	d.Tag = strings.TrimSpace(d.Tag)
	d.Branch = strings.TrimSpace(d.Branch)
}

// MainPath resolves the manifest's main entry relative to the manifest
// directory.
func (m *Manifest) MainPath() (string, error) {
	if m.Main == "" {
		return "", fmt.Errorf("manifest %q does not declare a main program", m.Name)
	}
	if filepath.IsAbs(m.Main) {
		return filepath.Clean(m.Main), nil
	}
	return filepath.Join(filepath.Dir(m.Path), filepath.FromSlash(m.Main)), nil
}

// FindManifest walks from start upward looking for program.yml.
func FindManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ManifestFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", ManifestFileName, origin, ErrManifestNotFound)
		}
		dir = parent
	}
}
