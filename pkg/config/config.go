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

package config

import (
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🚨 ErrConfig is the base error for bad or missing operator input. It
// is resolved before any file is scaffolded or rewritten.
var ErrConfig = errors.Base("invalid configuration")

// 🗺️ apiLevels maps every API level the scaffolding templates are
// known to work with to its platform codename. The table is fixed: an
// unknown level means the operator is targeting a platform the rule
// tables were never verified against.
var apiLevels = map[int]string{
	8:  "Froyo",
	10: "Gingerbread",
	14: "Ice Cream Sandwich",
	16: "Jelly Bean",
	19: "KitKat",
	21: "Lollipop",
	23: "Marshmallow",
}

var (
	packageRe  = regexp.MustCompile(`^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*)+$`)
	activityRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// 📚 Config carries every operator-supplied value, already resolved
// and validated upstream of the rewrite engine.
type Config struct {
	Target   int    `json:"target" yaml:"target" hcl:"target,optional"`             // API level to scaffold against
	Package  string `json:"package" yaml:"package" hcl:"package,optional"`          // reverse-DNS application package
	Name     string `json:"name" yaml:"name" hcl:"name,optional"`                   // project / output artifact name
	Activity string `json:"activity" yaml:"activity" hcl:"activity,optional"`       // fully-qualified or simple main class name
	Title    string `json:"title" yaml:"title" hcl:"title,optional"`                // display title injected into the app_name resource
	Dest     string `json:"dest" yaml:"dest" hcl:"dest,optional"`                   // destination project path
	SDKDir   string `json:"sdk_dir" yaml:"sdk_dir" hcl:"sdk_dir,optional"`          // Android SDK root (falls back to env)
	NDKDir   string `json:"ndk_dir" yaml:"ndk_dir" hcl:"ndk_dir,optional"`          // Android NDK root (native-build mode only)
	Shared   string `json:"shared_dir" yaml:"shared_dir" hcl:"shared_dir,optional"` // directory holding shared properties/keystore files

	NativeBuild      bool `json:"native_build" yaml:"native_build" hcl:"native_build,optional"`                   // add ndk-build targets to the build script
	CustomBuild      bool `json:"custom_build" yaml:"custom_build" hcl:"custom_build,optional"`                   // customize build.xml and ant.properties
	RemoveBuildProps bool `json:"remove_build_props" yaml:"remove_build_props" hcl:"remove_build_props,optional"` // strip the ant.properties block from build.xml
	DropProperties   bool `json:"drop_properties" yaml:"drop_properties" hcl:"drop_properties,optional"`          // delete the generated ant.properties
	DropProguard     bool `json:"drop_proguard" yaml:"drop_proguard" hcl:"drop_proguard,optional"`                // delete the generated proguard config
}

// 🔍 Validate checks the configuration and normalizes paths. Every
// failure wraps ErrConfig.
func (cfg *Config) Validate() error {
	if _, ok := apiLevels[cfg.Target]; !ok {
		return errors.Errorf("%w: unknown target API level %d (known: %s)", ErrConfig, cfg.Target, KnownTargets())
	}
	if !packageRe.MatchString(cfg.Package) {
		return errors.Errorf("%w: package %q is not a reverse-DNS package name", ErrConfig, cfg.Package)
	}
	if cfg.Name == "" || strings.ContainsAny(cfg.Name, `/\`) {
		return errors.Errorf("%w: project name %q must be non-empty and contain no path separators", ErrConfig, cfg.Name)
	}
	if !activityRe.MatchString(ActivityClass(cfg.Activity)) {
		return errors.Errorf("%w: activity %q is not a valid class name", ErrConfig, cfg.Activity)
	}
	if cfg.Dest == "" {
		return errors.Errorf("%w: destination path is required", ErrConfig)
	}
	if cfg.CustomBuild && cfg.RemoveBuildProps {
		return errors.Errorf("%w: custom_build and remove_build_props are mutually exclusive", ErrConfig)
	}
	if cfg.CustomBuild && cfg.Shared == "" {
		return errors.Errorf("%w: custom_build requires a shared_dir", ErrConfig)
	}

	// Defaults
	if cfg.Title == "" {
		cfg.Title = cfg.Name
	}
	cfg.Dest = filepath.Clean(cfg.Dest)
	if cfg.Shared != "" {
		cfg.Shared = filepath.Clean(cfg.Shared)
	}

	return nil
}

// ActivityClass returns the simple class name of a possibly
// fully-qualified activity name.
func ActivityClass(activity string) string {
	if i := strings.LastIndex(activity, "."); i >= 0 {
		return activity[i+1:]
	}
	return activity
}

// KnownTargets returns the supported API levels as a comma-separated
// ascending list, for error messages and help text.
func KnownTargets() string {
	levels := make([]int, 0, len(apiLevels))
	for l := range apiLevels {
		levels = append(levels, l)
	}
	sort.Ints(levels)
	parts := make([]string, len(levels))
	for i, l := range levels {
		parts[i] = strconv.Itoa(l)
	}
	return strings.Join(parts, ", ")
}

// Codename returns the platform codename for a known API level.
func Codename(level int) string {
	return apiLevels[level]
}
