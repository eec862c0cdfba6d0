package scanner

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// BuiltinMods ship with the game and are never synced.
var BuiltinMods = []string{"base", "elevated-rails", "quality", "space-age"}

const defaultIgnoreContents = `# Mods listed here are skipped by mod-sync, one name per line.
# Lines starting with # are comments. Built-in game mods are always skipped.
`

// LoadIgnoreList reads the ignore file at path, creating it with a commented
// header when it does not exist yet. Blank lines and # comments are skipped.
func LoadIgnoreList(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create ignore file directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultIgnoreContents), 0644); err != nil {
			return nil, fmt.Errorf("failed to create ignore file: %w", err)
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open ignore file: %w", err)
	}
	defer f.Close()

	var names []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ignore file: %w", err)
	}
	return names, nil
}

func ignoreSet(extra []string) map[string]struct{} {
	set := make(map[string]struct{}, len(BuiltinMods)+len(extra))
	for _, n := range BuiltinMods {
		set[n] = struct{}{}
	}
	for _, n := range extra {
		set[n] = struct{}{}
	}
	return set
}
