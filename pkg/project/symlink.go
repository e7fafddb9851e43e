package project

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/mkdroid/pkg/sdk"
	"gitlab.com/tozd/go/errors"
)

// 🔗 LinkShared replaces the project's per-project copies of shared
// configuration with symlinks into the shared directory, and returns
// the paths it linked. A shared file that does not exist is skipped
// entirely. The unlink-then-symlink pair is not atomic; it only runs
// after every rewrite has committed, single-threaded.
func LinkShared(ctx context.Context, layout *sdk.Layout, dest string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	shared := []string{
		filepath.Join(layout.SharedDir, localName),
		layout.SharedKeys(),
	}

	var linked []string
	for _, src := range shared {
		if _, err := os.Stat(src); err != nil {
			if os.IsNotExist(err) {
				logger.Debug().Str("shared", src).Msg("shared file absent, not linking")
				continue
			}
			return linked, errors.Errorf("checking shared file %s: %w", src, err)
		}

		local := filepath.Join(dest, filepath.Base(src))
		if err := os.Remove(local); err != nil && !os.IsNotExist(err) {
			return linked, errors.Errorf("removing project copy %s: %w", local, err)
		}
		if err := os.Symlink(src, local); err != nil {
			return linked, errors.Errorf("linking %s: %w", local, err)
		}

		logger.Debug().Str("link", local).Str("target", src).Msg("linked shared file")
		linked = append(linked, local)
	}

	return linked, nil
}
