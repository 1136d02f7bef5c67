// Package ingest turns files and directory trees into batch documents.
package ingest

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/avencia/tika-batch/constants"
	"github.com/avencia/tika-batch/internal/tika"
)

type DirStats struct {
	Scanned uint32
	Matched uint32
	Skipped uint32
}

// CollectDirectory walks root, filters by includeExts (or the default allowed
// set), skips hidden entries if requested, and adds one document per matching
// file to the batch. Document names are paths relative to root, so reruns over
// the same tree replace rather than duplicate.
func CollectDirectory(ctx context.Context, b *tika.Batch, root string, includeExts []string, skipHidden bool) (DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return DirStats{}, errors.New("root path is required")
	}

	exts := map[string]struct{}{}
	if len(includeExts) == 0 {
		exts = constants.AllowedExtensions
	} else {
		for _, e := range includeExts {
			e = constants.NormalizeExt(strings.TrimSpace(e))
			if e != "" {
				exts[e] = struct{}{}
			}
		}
	}

	var stats DirStats
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if skipHidden && isHidden(path) && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			stats.Skipped++
			return nil
		}
		if d.IsDir() {
			return nil
		}
		stats.Scanned++
		ext := constants.NormalizeExt(filepath.Ext(path))
		if _, ok := exts[ext]; !ok {
			stats.Skipped++
			return nil
		}
		name, err := filepath.Rel(root, path)
		if err != nil {
			name = path
		}
		b.Add(tika.NewDocument(name, path))
		stats.Matched++
		return nil
	})
	return stats, err
}

// isHidden checks if a file or directory is hidden (starts with '.').
func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
