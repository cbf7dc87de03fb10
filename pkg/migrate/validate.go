package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/angelmondragon/stockroom/pkg/config"
)

var (
	sqlFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)
)

// ValidateDir validates migration filenames + basic SQL headers and returns
// the file names keyed by version.
func ValidateDir(dir string) (map[string]string, error) {
	if dir == "" {
		return nil, fmt.Errorf("dir is required")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %q: %w", dir, err)
	}

	seen := map[string]string{} // version -> filename

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".sql") {
			continue
		}

		m := sqlFileRe.FindStringSubmatch(name)
		if m == nil {
			return nil, fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", name)
		}

		version := m[1]
		if prev, ok := seen[version]; ok {
			return nil, fmt.Errorf("duplicate migration version %s in %q and %q", version, prev, name)
		}
		seen[version] = name

		full := filepath.Join(dir, name)
		b, err := os.ReadFile(full)
		if err != nil {
			return nil, fmt.Errorf("read file %q: %w", full, err)
		}

		txt := string(b)
		if !strings.Contains(txt, "-- +goose Up") {
			return nil, fmt.Errorf("migration %q missing \"-- +goose Up\"", name)
		}
		if !strings.Contains(txt, "-- +goose Down") {
			return nil, fmt.Errorf("migration %q missing \"-- +goose Down\"", name)
		}
	}

	return seen, nil
}

// ValidateTree validates every driver directory under base and requires the
// drivers to carry the same set of migration files.
func ValidateTree(base string) error {
	drivers := []string{config.DriverPostgres, config.DriverSQLite}
	var reference map[string]string
	for _, driver := range drivers {
		files, err := ValidateDir(DirFor(base, driver))
		if err != nil {
			return fmt.Errorf("%s: %w", driver, err)
		}
		if reference == nil {
			reference = files
			continue
		}
		if diff := diffVersions(reference, files); len(diff) > 0 {
			return fmt.Errorf("%s and %s migrations differ: %s", drivers[0], driver, strings.Join(diff, ", "))
		}
	}
	return nil
}

func diffVersions(a, b map[string]string) []string {
	var out []string
	for version, name := range a {
		if b[version] != name {
			out = append(out, name)
		}
	}
	for version, name := range b {
		if _, ok := a[version]; !ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
