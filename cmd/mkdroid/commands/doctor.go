package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/mkdroid/pkg/sdk"
	"gitlab.com/tozd/go/errors"
)

// NewDoctorCmd creates the doctor command
func NewDoctorCmd(loadDefaults DefaultsLoader) *cobra.Command {
	var (
		sdkDir      string
		ndkDir      string
		sharedDir   string
		native      bool
		customBuild bool
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the environment a generation run would use",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadDefaults(ctx)
			if err != nil {
				return err
			}
			f := cmd.Flags()
			if f.Changed("sdk") {
				cfg.SDKDir = sdkDir
			}
			if f.Changed("ndk") {
				cfg.NDKDir = ndkDir
			}
			if f.Changed("shared") {
				cfg.Shared = sharedDir
			}
			if f.Changed("native") {
				cfg.NativeBuild = native
			}
			if f.Changed("custom-build") {
				cfg.CustomBuild = customBuild
			}

			failed := 0
			for _, r := range sdk.Check(ctx, cfg) {
				switch {
				case r.Skipped:
					pterm.Debug.WithPrefix(pterm.Prefix{Text: "⏭️"}).Println(r.Name + ": " + r.Detail)
				case r.OK():
					pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(r.Name + ": " + r.Detail)
				default:
					failed++
					pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(r.Name)
					pterm.Error.Println(r.Err)
				}
			}

			if failed > 0 {
				return errors.Errorf("%d environment check(s) failed", failed)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&sdkDir, "sdk", "", "Android SDK root to check")
	f.StringVar(&ndkDir, "ndk", "", "Android NDK root to check")
	f.StringVar(&sharedDir, "shared", "", "shared configuration directory to check")
	f.BoolVar(&native, "native", false, "check native-build requirements")
	f.BoolVar(&customBuild, "custom-build", false, "check custom-build requirements")

	return cmd
}
