package ingest

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var exportExtensions = map[string]struct{}{
	".xlsx": {},
	".csv":  {},
}

func readProcessedLog(logPath string) (map[string]struct{}, error) {
	processed := make(map[string]struct{})

	f, err := os.Open(logPath)
	if errors.Is(err, fs.ErrNotExist) {
		return processed, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open processed files log: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name != "" {
			processed[name] = struct{}{}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read processed files log: %w", err)
	}

	return processed, nil
}

// NewFiles lists export files in dir that are not recorded in logPath.
// Office lock files ("~$...") are ignored.
func NewFiles(dir string, logPath string) ([]string, error) {
	processed, err := readProcessedLog(logPath)
	if err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read source folder: %w", err)
	}

	var paths []string
	for _, entry := range dirEntries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "~") {
			continue
		}

		if _, ok := exportExtensions[strings.ToLower(filepath.Ext(name))]; !ok {
			continue
		}

		if _, ok := processed[name]; ok {
			continue
		}

		paths = append(paths, filepath.Join(dir, name))
	}

	sort.Strings(paths)

	return paths, nil
}

// MarkProcessed appends the base names of paths to logPath.
func MarkProcessed(logPath string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open processed files log: %w", err)
	}
	defer f.Close()

	for _, path := range paths {
		if _, err := fmt.Fprintln(f, filepath.Base(path)); err != nil {
			return fmt.Errorf("failed to write processed files log: %w", err)
		}
	}

	return nil
}
