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

// Package scaffold invokes the external project-scaffolding tool. The
// tool's filesystem side effect is the conventional project skeleton
// whose files the project package then rewrites; nothing is touched
// unless the tool exits zero.
package scaffold

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/mkdroid/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// 🚨 ErrSubprocess is the base error for a scaffolding tool that could
// not be started or exited non-zero.
var ErrSubprocess = errors.Base("scaffolding tool failed")

// stderrTailLines bounds how much tool output ends up in the error.
const stderrTailLines = 5

// 🏗️ Create runs `<tool> create project` for the given configuration
// and blocks until it exits. Its exit status is checked before any
// rewriting begins; a non-zero exit is fatal for the whole run.
func Create(ctx context.Context, tool string, cfg *config.Config) error {
	logger := zerolog.Ctx(ctx)

	args := []string{
		"create", "project",
		"--target", strconv.Itoa(cfg.Target),
		"--package", cfg.Package,
		"--name", cfg.Name,
		"--activity", config.ActivityClass(cfg.Activity),
		"--path", cfg.Dest,
	}

	logger.Info().Str("tool", tool).Strs("args", args).Msg("invoking scaffolding tool")

	cmd := exec.CommandContext(ctx, tool, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	for _, line := range strings.Split(strings.TrimRight(stdout.String(), "\n"), "\n") {
		if line != "" {
			logger.Debug().Str("stream", "stdout").Msg(line)
		}
	}
	for _, line := range strings.Split(strings.TrimRight(stderr.String(), "\n"), "\n") {
		if line != "" {
			logger.Debug().Str("stream", "stderr").Msg(line)
		}
	}

	if err != nil {
		return errors.Errorf("%w: %s: %w", ErrSubprocess, tail(stderr.String()), err)
	}

	return nil
}

// tail returns the last few non-empty lines of the tool's stderr, or a
// placeholder when it was silent.
func tail(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	nonEmpty := lines[:0]
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			nonEmpty = append(nonEmpty, l)
		}
	}
	if len(nonEmpty) == 0 {
		return "(no output)"
	}
	if len(nonEmpty) > stderrTailLines {
		nonEmpty = nonEmpty[len(nonEmpty)-stderrTailLines:]
	}
	return strings.Join(nonEmpty, "; ")
}
