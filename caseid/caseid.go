// Package caseid finds TestRail case identifiers (C123) in test sources and test titles.
package caseid

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/spf13/afero"
)

var (
	// A corpus token is C<digits> followed by a colon or a whitespace character.
	corpusPattern = regexp.MustCompile(`C(\d+)[:\s]`)
	titlePattern  = regexp.MustCompile(`\bC(\d+)\b`)
)

// Extractor ...
type Extractor interface {
	Extract(dir string) ([]int, error)
}

type extractor struct {
	fs afero.Fs
}

// NewExtractor ...
func NewExtractor(fs afero.Fs) Extractor {
	return &extractor{fs: fs}
}

// Extract returns the unique case IDs referenced by the files directly inside dir, in ascending order.
// Sub-directories are not scanned.
func (e extractor) Extract(dir string) ([]int, error) {
	entries, err := afero.ReadDir(e.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read test directory (%s): %w", dir, err)
	}

	seen := map[int]bool{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		pth := filepath.Join(dir, entry.Name())
		content, err := afero.ReadFile(e.fs, pth)
		if err != nil {
			return nil, fmt.Errorf("failed to read test file (%s): %w", pth, err)
		}

		for _, id := range findAll(corpusPattern, string(content)) {
			seen[id] = true
		}
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return ids, nil
}

// MatchTitle returns the case IDs in a test title in the order they appear.
// It returns nil if the title does not reference any case.
func MatchTitle(title string) []int {
	ids := findAll(titlePattern, title)
	if len(ids) == 0 {
		return nil
	}
	return ids
}

func findAll(pattern *regexp.Regexp, s string) []int {
	var ids []int
	for _, match := range pattern.FindAllStringSubmatch(s, -1) {
		id, err := strconv.Atoi(match[1])
		if err != nil || id <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
