package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"bf/interpreter-go/pkg/driver"
)

func runDeps(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "bf deps expects a subcommand: install or update")
		return 1
	}
	switch args[0] {
	case "install":
		if len(args) > 1 {
			fmt.Fprintln(os.Stderr, "bf deps install does not take arguments")
			return 1
		}
		return installDeps(nil)
	case "update":
		return installDeps(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown deps subcommand %q (expected install or update)\n", args[0])
		return 1
	}
}

// installDeps fetches the manifest's git dependencies into the bf home cache
// and records them in program.lock. With names, only those dependencies are
// refreshed; install fetches everything not already locked.
func installDeps(names []string) int {
	manifestPath, err := driver.FindManifest(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "bf deps: %v\n", err)
		return 1
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bf deps: %v\n", err)
		return 1
	}
	if len(manifest.Dependencies) == 0 {
		fmt.Fprintln(os.Stdout, "bf deps: no dependencies declared")
		return 0
	}

	for _, name := range names {
		if _, ok := manifest.Dependencies[name]; !ok {
			fmt.Fprintf(os.Stderr, "bf deps: dependency %q not declared in %s\n", name, driver.ManifestFileName)
			return 1
		}
	}

	home, err := resolveBfHome()
	if err != nil {
		fmt.Fprintf(os.Stderr, "bf deps: %v\n", err)
		return 1
	}

	lockPath := filepath.Join(filepath.Dir(manifest.Path), driver.LockfileName)
	lock, err := driver.LoadLockfile(lockPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "bf deps: %v\n", err)
			return 1
		}
		lock = driver.NewLockfile(manifest.Name, cliToolVersion)
	}

	fetcher := newGitFetcher(home)
	changed := false
	for _, name := range depOrder(manifest, names) {
		spec := manifest.Dependencies[name]
		if len(names) == 0 && lock.Find(sanitizeName(name)) != nil {
			continue
		}
		locked, err := fetcher.Fetch(name, spec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bf deps: %v\n", err)
			return 1
		}
		if lock.Upsert(locked) {
			changed = true
		}
		fmt.Fprintf(os.Stdout, "fetched %s %s\n", locked.Name, locked.Version)
	}

	if !changed {
		fmt.Fprintln(os.Stdout, "bf deps: already up to date")
		return 0
	}
	if err := driver.WriteLockfile(lock, lockPath); err != nil {
		fmt.Fprintf(os.Stderr, "bf deps: %v\n", err)
		return 1
	}
	fmt.Fprintf(os.Stdout, "wrote %s\n", lockPath)
	return 0
}

// depOrder returns the dependencies to process, sorted by name for
// deterministic output.
func depOrder(manifest *driver.Manifest, names []string) []string {
	if len(names) > 0 {
		sorted := append([]string{}, names...)
		sort.Strings(sorted)
		return sorted
	}
	all := make([]string, 0, len(manifest.Dependencies))
	for name := range manifest.Dependencies {
		all = append(all, name)
	}
	sort.Strings(all)
	return all
}
