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

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/walteh/mkdroid/cmd/mkdroid/commands"
)

func main() {
	ctx := context.Background()

	rootCmd := &cobra.Command{
		Use:   "mkdroid",
		Short: "Scaffold an Android project and apply the local customizations",
		Long: `mkdroid invokes the Android SDK's project-scaffolding tool, then
rewrites the generated files: it flattens the source tree, injects the
SDK version declaration into the manifest, sets the display title,
customizes the Ant build script, strips boilerplate, and replaces
per-project copies of shared configuration with symlinks.

Every rewrite is transactional: a file is either fully rewritten or
left exactly as the scaffolding tool produced it.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
	}

	addRootFlags(rootCmd)

	rootCmd.AddCommand(
		commands.NewCreateCmd(rootOpts),
		commands.NewDoctorCmd(rootOpts),
		commands.NewVersionCmd(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
