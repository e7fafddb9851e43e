package sdk

import (
	"context"
	"os"
	"path/filepath"

	"github.com/walteh/mkdroid/pkg/config"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🩺 CheckResult is one item of the environment report produced for
// the doctor command.
type CheckResult struct {
	Name     string // what was checked
	Detail   string // resolved path or hint
	Optional bool   // requirement only applies to a mode that is off
	Skipped  bool   // nothing to check: the mode is off and nothing is configured
	Err      error  // nil when the check passed
}

// OK reports whether the check passed or was not applicable.
func (r CheckResult) OK() bool {
	return r.Err == nil
}

// 🔬 Check inspects the environment the given configuration would run
// against and reports every requirement separately. The checks are
// independent, so they fan out through an errgroup and all of them
// always run; failures land in the results, never abort the group.
func Check(ctx context.Context, cfg *config.Config) []CheckResult {
	results := make([]CheckResult, 4)
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		root, err := resolveSDKRoot(cfg)
		results[0] = CheckResult{Name: "SDK root", Detail: root, Err: err}
		return nil
	})

	g.Go(func() error {
		root, err := resolveSDKRoot(cfg)
		if err != nil {
			results[1] = CheckResult{Name: "scaffolding tool", Err: err}
			return nil
		}
		tool := filepath.Join(root, filepath.FromSlash(androidToolRel))
		results[1] = CheckResult{Name: "scaffolding tool", Detail: tool, Err: requireExecutable(tool)}
		return nil
	})

	g.Go(func() error {
		ndkRoot := cfg.NDKDir
		if ndkRoot == "" {
			ndkRoot = os.Getenv("ANDROID_NDK_HOME")
		}
		res := CheckResult{Name: "NDK (ndk-build)", Optional: !cfg.NativeBuild}
		if ndkRoot == "" {
			if cfg.NativeBuild {
				res.Err = resolveErr("no NDK directory (set --ndk or ANDROID_NDK_HOME)")
			} else {
				res.Skipped = true
				res.Detail = "not configured"
			}
		} else {
			res.Detail = filepath.Join(ndkRoot, ndkBuildName)
			res.Err = requireExecutable(res.Detail)
		}
		results[2] = res
		return nil
	})

	g.Go(func() error {
		res := CheckResult{Name: "shared properties", Optional: !cfg.CustomBuild}
		if cfg.Shared == "" {
			if cfg.CustomBuild {
				res.Err = resolveErr("no shared directory configured")
			} else {
				res.Skipped = true
				res.Detail = "not configured"
			}
		} else {
			res.Detail = filepath.Join(cfg.Shared, SharedPropsName)
			res.Err = requireFile(res.Detail)
		}
		results[3] = res
		return nil
	})

	g.Wait()
	return results
}

func resolveErr(msg string) error {
	return errors.Errorf("%w: %s", ErrEnvironment, msg)
}
