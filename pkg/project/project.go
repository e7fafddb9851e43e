// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package project

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/mkdroid/pkg/config"
	"github.com/walteh/mkdroid/pkg/rewrite"
	"github.com/walteh/mkdroid/pkg/scaffold"
	"github.com/walteh/mkdroid/pkg/sdk"
	"github.com/walteh/mkdroid/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// markupPatterns selects the generated files the whitespace pass
// touches, relative to the project root.
var markupPatterns = []string{
	manifestName,
	buildName,
	"res/**/*.xml",
}

// 🎛️ Generator sequences one full generation run: scaffold, flatten,
// rewrite, format, ignore file, symlinks. Files are processed strictly
// one after another; a failed rewrite leaves its own file untouched,
// already-committed files stay committed, and nothing after the
// failure is attempted.
type Generator struct {
	cfg    *config.Config
	layout *sdk.Layout
	status *status.Manager
}

// 🏭 NewGenerator creates a generator for an already-validated
// configuration and resolved environment layout.
func NewGenerator(cfg *config.Config, layout *sdk.Layout, st *status.Manager) *Generator {
	return &Generator{cfg: cfg, layout: layout, status: st}
}

// 🏃 Generate runs the whole pipeline.
func (g *Generator) Generate(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	if err := g.run(ctx); err != nil {
		g.status.Summary(ctx, false)
		return err
	}

	g.status.Summary(ctx, true)
	logger.Info().Str("dest", g.cfg.Dest).Msg("project generated")
	return nil
}

func (g *Generator) run(ctx context.Context) error {
	if err := scaffold.Create(ctx, g.layout.AndroidTool, g.cfg); err != nil {
		return err
	}
	g.status.Report(ctx, g.cfg.Dest, status.OutcomeScaffolded, "")

	if err := Flatten(ctx, filepath.Join(g.cfg.Dest, srcDirName)); err != nil {
		return err
	}

	if err := g.applyRules(ctx, manifestName, manifestRules(g.cfg.Target)); err != nil {
		return err
	}
	if err := g.applyRules(ctx, filepath.FromSlash(stringsRel), stringsRules(g.cfg.Title)); err != nil {
		return err
	}

	switch {
	case g.cfg.CustomBuild:
		if err := g.applyRules(ctx, buildName, buildCustomRules(g.layout, g.cfg.NativeBuild)); err != nil {
			return err
		}
		if err := g.applyRules(ctx, propsName, propertiesRules()); err != nil {
			return err
		}
	case g.cfg.RemoveBuildProps:
		if err := g.applyRules(ctx, buildName, buildRemovePropsRules()); err != nil {
			return err
		}
	}

	if err := g.stripMarkup(ctx); err != nil {
		return err
	}

	if err := g.dropFiles(ctx); err != nil {
		return err
	}

	ignorePath, err := WriteIgnore(ctx, g.cfg)
	if err != nil {
		return err
	}
	g.status.Report(ctx, ignorePath, status.OutcomeScaffolded, "ignore list")

	if g.cfg.CustomBuild {
		linked, err := LinkShared(ctx, g.layout, g.cfg.Dest)
		for _, l := range linked {
			g.status.Report(ctx, l, status.OutcomeLinked, "")
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// applyRules runs one rule set against a project-relative path.
func (g *Generator) applyRules(ctx context.Context, rel string, rs rewrite.RuleSet) error {
	path := filepath.Join(g.cfg.Dest, rel)
	if err := rewrite.Apply(ctx, path, rs); err != nil {
		g.status.Report(ctx, path, status.OutcomeFailed, rs.Desc)
		return err
	}
	g.status.Report(ctx, path, status.OutcomeRewritten, rs.Desc)
	return nil
}

// stripMarkup applies the whitespace pass to every generated markup
// file matched by markupPatterns.
func (g *Generator) stripMarkup(ctx context.Context) error {
	return filepath.WalkDir(g.cfg.Dest, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(g.cfg.Dest, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		matched := false
		for _, pattern := range markupPatterns {
			if ok, _ := doublestar.Match(pattern, rel); ok {
				matched = true
				break
			}
		}
		if !matched {
			return nil
		}

		if err := rewrite.StripWhitespace(ctx, path); err != nil {
			g.status.Report(ctx, path, status.OutcomeFailed, "whitespace cleanup")
			return err
		}
		g.status.Report(ctx, path, status.OutcomeFormatted, "")
		return nil
	})
}

// dropFiles deletes the generated files the configuration asked to
// drop. Only runs after every rewrite committed.
func (g *Generator) dropFiles(ctx context.Context) error {
	drops := []struct {
		name    string
		enabled bool
	}{
		{propsName, g.cfg.DropProperties},
		{proguardName, g.cfg.DropProguard},
	}

	for _, d := range drops {
		if !d.enabled {
			continue
		}
		path := filepath.Join(g.cfg.Dest, d.name)
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return errors.Errorf("dropping %s: %w", d.name, err)
		}
		g.status.Report(ctx, path, status.OutcomeRemoved, "")
	}

	return nil
}
