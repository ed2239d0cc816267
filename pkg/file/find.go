package file

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListByExt returns the regular files directly inside dir whose extension
// (case-insensitive, without the dot) is one of exts. Results are sorted by
// name. Subdirectories are not descended into.
func ListByExt(dir string, exts ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	want := make(map[string]bool, len(exts))
	for _, ext := range exts {
		want[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}

	var ret []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(entry.Name()), "."))
		if want[ext] {
			ret = append(ret, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(ret)
	return ret, nil
}

// ListSubtitles returns all .srt and .vtt files directly inside dir.
func ListSubtitles(dir string) ([]string, error) {
	return ListByExt(dir, "srt", "vtt")
}
