package project

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/mkdroid/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// ignoreFileName is the generated ignore-list file.
const ignoreFileName = ".gitignore"

// ignoreEntries returns the ignore list for the given configuration.
// Entries gated by a mode that is off are omitted entirely, which is
// what keeps the generated file valid ignore syntax.
func ignoreEntries(cfg *config.Config) []string {
	entries := []string{
		"bin/",
		"gen/",
		localName,
	}
	if cfg.NativeBuild {
		entries = append(entries, "obj/", "libs/")
	}
	if cfg.DropProguard {
		entries = append(entries, proguardName)
	}
	return entries
}

// 📝 WriteIgnore generates the ignore-list file in the project root
// and returns its path.
func WriteIgnore(ctx context.Context, cfg *config.Config) (string, error) {
	path := filepath.Join(cfg.Dest, ignoreFileName)
	content := strings.Join(ignoreEntries(cfg), "\n") + "\n"

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", errors.Errorf("writing ignore file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("wrote ignore file")
	return path, nil
}
