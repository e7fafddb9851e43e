package project

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🗜️ Flatten moves every source file out of its package-derived
// directory chain (src/com/example/app/...) directly under srcDir,
// then removes the now-empty directories, deepest first. The
// scaffolding tool nests sources by package; the flattened layout is
// what the customized build script compiles.
func Flatten(ctx context.Context, srcDir string) error {
	logger := zerolog.Ctx(ctx)

	var files, dirs []string
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == srcDir {
			return nil
		}
		if d.IsDir() {
			dirs = append(dirs, path)
			return nil
		}
		if filepath.Dir(path) != srcDir {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return errors.Errorf("walking source tree: %w", err)
	}

	for _, file := range files {
		dest := filepath.Join(srcDir, filepath.Base(file))
		if _, err := os.Stat(dest); err == nil {
			return errors.Errorf("flattening would overwrite %s", dest)
		}
		if err := os.Rename(file, dest); err != nil {
			return errors.Errorf("moving %s: %w", file, err)
		}
		logger.Debug().Str("from", file).Str("to", dest).Msg("flattened source file")
	}

	// Deepest directories first, so each os.Remove sees an empty dir.
	sort.Slice(dirs, func(i, j int) bool {
		return strings.Count(dirs[i], string(filepath.Separator)) > strings.Count(dirs[j], string(filepath.Separator))
	})
	for _, dir := range dirs {
		if err := os.Remove(dir); err != nil {
			return errors.Errorf("removing package directory %s: %w", dir, err)
		}
	}

	return nil
}
