package driver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"bf/interpreter-go/pkg/program"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadScansProgram(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.b")
	writeFile(t, path, "++[>++<-]>.")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Program.Len() != 11 {
		t.Fatalf("instruction count = %d, want 11", loaded.Program.Len())
	}
	if loaded.Path != path {
		t.Fatalf("Path = %q, want %q", loaded.Path, path)
	}
}

func TestLoadReportsMismatchedBracket(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.b")
	writeFile(t, path, "comment\n+[")

	_, err := Load(path)
	var mismatch *program.MismatchedBracketError
	if !errors.As(err, &mismatch) {
		t.Fatalf("err = %v, want MismatchedBracketError", err)
	}
	if mismatch.Offset != 9 {
		t.Errorf("Offset = %d, want 9", mismatch.Offset)
	}
	if mismatch.Line != 2 || mismatch.Column != 2 {
		t.Errorf("position = %d:%d, want 2:2", mismatch.Line, mismatch.Column)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.b"))
	if err == nil {
		t.Fatalf("Load of a missing file must fail")
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestFileName)
	writeFile(t, path, `
name: hello
version: 0.1.0
main: src/hello.b
interpreter:
  tape_size: 30000
  eof: zero
dependencies:
  textlib:
    git: https://example.com/textlib.git
    tag: v1.2.0
`)

	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if manifest.Name != "hello" || manifest.Version != "0.1.0" {
		t.Fatalf("identity = %s@%s, want hello@0.1.0", manifest.Name, manifest.Version)
	}
	if manifest.Interpreter.TapeSize != 30000 || manifest.Interpreter.EOF != "zero" {
		t.Fatalf("interpreter spec = %+v", manifest.Interpreter)
	}
	dep := manifest.Dependencies["textlib"]
	if dep == nil || dep.Git != "https://example.com/textlib.git" || dep.Tag != "v1.2.0" {
		t.Fatalf("dependency = %+v", dep)
	}
	mainPath, err := manifest.MainPath()
	if err != nil {
		t.Fatalf("MainPath: %v", err)
	}
	if mainPath != filepath.Join(dir, "src", "hello.b") {
		t.Fatalf("MainPath = %q", mainPath)
	}
}

func TestLoadManifestValidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestFileName)
	writeFile(t, path, `
version: 0.1.0
dependencies:
  broken:
    git: https://example.com/broken.git
`)

	_, err := LoadManifest(path)
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if len(validation.Issues) != 2 {
		t.Fatalf("issues = %v, want name + dependency complaints", validation.Issues)
	}
}

func TestFindManifestWalksUpward(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	writeFile(t, filepath.Join(root, ManifestFileName), "name: up\n")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	found, err := FindManifest(nested)
	if err != nil {
		t.Fatalf("FindManifest: %v", err)
	}
	if found != filepath.Join(root, ManifestFileName) {
		t.Fatalf("found = %q", found)
	}
}

func TestFindManifestNotFound(t *testing.T) {
	_, err := FindManifest(t.TempDir())
	if !errors.Is(err, ErrManifestNotFound) {
		t.Fatalf("err = %v, want ErrManifestNotFound", err)
	}
}

func TestLockfileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, LockfileName)

	lock := NewLockfile("hello", "bf-cli test")
	lock.Upsert(&LockedPackage{Name: "textlib", Version: "v1.2.0", Source: "git+https://example.com/textlib.git@abc", Checksum: "deadbeef"})
	lock.Upsert(&LockedPackage{Name: "mathlib", Version: "v0.3.0", Source: "git+https://example.com/mathlib.git@def", Checksum: "cafef00d"})
	if err := WriteLockfile(lock, path); err != nil {
		t.Fatalf("WriteLockfile: %v", err)
	}

	loaded, err := LoadLockfile(path)
	if err != nil {
		t.Fatalf("LoadLockfile: %v", err)
	}
	if loaded.Root != "hello" {
		t.Fatalf("Root = %q, want hello", loaded.Root)
	}
	if len(loaded.Packages) != 2 {
		t.Fatalf("packages = %d, want 2", len(loaded.Packages))
	}
	// normalize sorts by name, so mathlib comes first.
	if loaded.Packages[0].Name != "mathlib" || loaded.Packages[1].Name != "textlib" {
		t.Fatalf("package order = [%s %s]", loaded.Packages[0].Name, loaded.Packages[1].Name)
	}
	if pkg := loaded.Find("textlib"); pkg == nil || pkg.Checksum != "deadbeef" {
		t.Fatalf("Find(textlib) = %+v", pkg)
	}
}

func TestLockfileUpsert(t *testing.T) {
	lock := NewLockfile("hello", "bf-cli test")
	entry := &LockedPackage{Name: "textlib", Version: "v1.0.0", Source: "s", Checksum: "c"}
	if !lock.Upsert(entry) {
		t.Fatalf("first Upsert must report a change")
	}
	same := *entry
	if lock.Upsert(&same) {
		t.Fatalf("identical Upsert must report no change")
	}
	bumped := *entry
	bumped.Version = "v1.1.0"
	if !lock.Upsert(&bumped) {
		t.Fatalf("version bump must report a change")
	}
	if len(lock.Packages) != 1 {
		t.Fatalf("packages = %d, want 1", len(lock.Packages))
	}
	if lock.Packages[0].Version != "v1.1.0" {
		t.Fatalf("version = %q, want v1.1.0", lock.Packages[0].Version)
	}
}
