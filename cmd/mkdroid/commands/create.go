package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/walteh/mkdroid/pkg/config"
	"github.com/walteh/mkdroid/pkg/project"
	"github.com/walteh/mkdroid/pkg/sdk"
	"github.com/walteh/mkdroid/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// DefaultsLoader supplies the configuration seeded from the defaults
// file; flags are overlaid on top of it.
type DefaultsLoader func(ctx context.Context) (*config.Config, error)

// NewCreateCmd creates the create command
func NewCreateCmd(loadDefaults DefaultsLoader) *cobra.Command {
	var fl config.Config

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Scaffold a project and apply all customizations",
		Long: `Create invokes the scaffolding tool, then rewrites the generated
files in a fixed order. It will:
1. Run the scaffolding tool and check its exit status
2. Flatten the package-derived source directories
3. Rewrite the manifest, resource strings and build script
4. Strip trailing whitespace from the generated markup files
5. Write the ignore file and link shared configuration`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadDefaults(ctx)
			if err != nil {
				return err
			}
			overlayFlags(cmd, cfg, &fl)

			if err := cfg.Validate(); err != nil {
				return errors.Errorf("validating options: %w", err)
			}

			layout, err := sdk.Locate(ctx, cfg)
			if err != nil {
				return err
			}

			st := status.New(cfg.Dest, cmd.OutOrStdout())
			gen := project.NewGenerator(cfg, layout, st)

			if err := gen.Generate(ctx); err != nil {
				return errors.Errorf("generating project: %w", err)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVarP(&fl.Target, "target", "t", 0, "target API level ("+config.KnownTargets()+")")
	f.StringVarP(&fl.Package, "package", "p", "", "application package (reverse-DNS)")
	f.StringVarP(&fl.Name, "name", "n", "", "project and output artifact name")
	f.StringVarP(&fl.Activity, "activity", "a", "", "main activity class name")
	f.StringVar(&fl.Title, "title", "", "display title (defaults to the project name)")
	f.StringVar(&fl.Dest, "path", "", "destination project path")
	f.StringVar(&fl.SDKDir, "sdk", "", "Android SDK root (defaults to ANDROID_HOME)")
	f.StringVar(&fl.NDKDir, "ndk", "", "Android NDK root (native-build mode)")
	f.StringVar(&fl.Shared, "shared", "", "shared configuration directory (custom-build mode)")
	f.BoolVar(&fl.NativeBuild, "native", false, "add ndk-build targets to the build script")
	f.BoolVar(&fl.CustomBuild, "custom-build", false, "customize build.xml and strip ant.properties boilerplate")
	f.BoolVar(&fl.RemoveBuildProps, "remove-build-props", false, "strip the ant.properties block from build.xml")
	f.BoolVar(&fl.DropProperties, "drop-properties", false, "delete the generated ant.properties")
	f.BoolVar(&fl.DropProguard, "drop-proguard", false, "delete the generated proguard config")

	return cmd
}

// overlayFlags copies every flag the operator actually set over the
// defaults-file values.
func overlayFlags(cmd *cobra.Command, cfg, fl *config.Config) {
	f := cmd.Flags()
	if f.Changed("target") {
		cfg.Target = fl.Target
	}
	if f.Changed("package") {
		cfg.Package = fl.Package
	}
	if f.Changed("name") {
		cfg.Name = fl.Name
	}
	if f.Changed("activity") {
		cfg.Activity = fl.Activity
	}
	if f.Changed("title") {
		cfg.Title = fl.Title
	}
	if f.Changed("path") {
		cfg.Dest = fl.Dest
	}
	if f.Changed("sdk") {
		cfg.SDKDir = fl.SDKDir
	}
	if f.Changed("ndk") {
		cfg.NDKDir = fl.NDKDir
	}
	if f.Changed("shared") {
		cfg.Shared = fl.Shared
	}
	if f.Changed("native") {
		cfg.NativeBuild = fl.NativeBuild
	}
	if f.Changed("custom-build") {
		cfg.CustomBuild = fl.CustomBuild
	}
	if f.Changed("remove-build-props") {
		cfg.RemoveBuildProps = fl.RemoveBuildProps
	}
	if f.Changed("drop-properties") {
		cfg.DropProperties = fl.DropProperties
	}
	if f.Changed("drop-proguard") {
		cfg.DropProguard = fl.DropProguard
	}
}
