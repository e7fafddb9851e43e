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

package sdk

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/mkdroid/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// 🚨 ErrEnvironment is the base error for a required external tool or
// shared file that cannot be located.
var ErrEnvironment = errors.Base("environment requirement missing")

// Well-known names inside the SDK/NDK trees and the shared directory.
const (
	androidToolRel  = "tools/android"
	ndkBuildName    = "ndk-build"
	SharedPropsName = "shared.properties"
	SharedKeysName  = "keystore.properties"
)

// sdkEnvVars are consulted in order when no explicit SDK dir is given.
var sdkEnvVars = []string{"ANDROID_HOME", "ANDROID_SDK_ROOT"}

// 📦 Layout holds every resolved external path the generator needs.
// It is produced once, before any subprocess or rewrite runs.
type Layout struct {
	SDKRoot     string // Android SDK root directory
	NDKRoot     string // Android NDK root, empty unless native-build mode
	AndroidTool string // path to the scaffolding tool executable
	NDKBuild    string // path to ndk-build, empty unless native-build mode
	SharedDir   string // directory holding shared properties files, empty unless custom-build mode
}

// 🔍 Locate resolves the SDK, NDK and shared-directory layout for the
// given configuration. Everything the selected modes need must exist;
// anything a mode does not need is skipped entirely.
func Locate(ctx context.Context, cfg *config.Config) (*Layout, error) {
	logger := zerolog.Ctx(ctx)

	sdkRoot, err := resolveSDKRoot(cfg)
	if err != nil {
		return nil, err
	}

	tool := filepath.Join(sdkRoot, filepath.FromSlash(androidToolRel))
	if err := requireExecutable(tool); err != nil {
		return nil, errors.Errorf("%w: scaffolding tool: %w", ErrEnvironment, err)
	}

	layout := &Layout{
		SDKRoot:     sdkRoot,
		AndroidTool: tool,
	}

	if cfg.NativeBuild {
		ndkRoot := cfg.NDKDir
		if ndkRoot == "" {
			ndkRoot = os.Getenv("ANDROID_NDK_HOME")
		}
		if ndkRoot == "" {
			return nil, errors.Errorf("%w: native-build mode needs --ndk or ANDROID_NDK_HOME", ErrEnvironment)
		}
		ndkBuild := filepath.Join(ndkRoot, ndkBuildName)
		if err := requireExecutable(ndkBuild); err != nil {
			return nil, errors.Errorf("%w: ndk-build: %w", ErrEnvironment, err)
		}
		layout.NDKRoot = ndkRoot
		layout.NDKBuild = ndkBuild
	}

	if cfg.CustomBuild {
		if err := requireFile(filepath.Join(cfg.Shared, SharedPropsName)); err != nil {
			return nil, errors.Errorf("%w: shared properties: %w", ErrEnvironment, err)
		}
		layout.SharedDir = cfg.Shared
	}

	logger.Debug().
		Str("sdk", layout.SDKRoot).
		Str("ndk", layout.NDKRoot).
		Str("shared", layout.SharedDir).
		Msg("resolved environment layout")

	return layout, nil
}

// SharedProps returns the path of the shared ant properties file.
func (l *Layout) SharedProps() string {
	return filepath.Join(l.SharedDir, SharedPropsName)
}

// SharedKeys returns the path of the shared keystore properties file.
func (l *Layout) SharedKeys() string {
	return filepath.Join(l.SharedDir, SharedKeysName)
}

func resolveSDKRoot(cfg *config.Config) (string, error) {
	if cfg.SDKDir != "" {
		return cfg.SDKDir, nil
	}
	for _, env := range sdkEnvVars {
		if dir := os.Getenv(env); dir != "" {
			return dir, nil
		}
	}
	return "", errors.Errorf("%w: no SDK directory (set --sdk, ANDROID_HOME or ANDROID_SDK_ROOT)", ErrEnvironment)
}

func requireExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() || info.Mode()&0111 == 0 {
		return errors.Errorf("%s is not an executable file", path)
	}
	return nil
}

func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return errors.Errorf("%s is a directory, expected a file", path)
	}
	return nil
}
