package sdk

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/mkdroid/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// fakeSDK builds a minimal SDK tree with an executable android tool.
func fakeSDK(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "tools"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "tools", "android"), []byte("#!/bin/sh\n"), 0755))
	return root
}

func fakeNDK(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "ndk-build"), []byte("#!/bin/sh\n"), 0755))
	return root
}

func fakeShared(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SharedPropsName), []byte("sdk.dir=/opt/sdk\n"), 0644))
	return dir
}

func TestLocate(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit_sdk_dir", func(t *testing.T) {
		cfg := &config.Config{SDKDir: fakeSDK(t)}
		layout, err := Locate(ctx, cfg)
		require.NoError(t, err)
		assert.Equal(t, cfg.SDKDir, layout.SDKRoot)
		assert.Equal(t, filepath.Join(cfg.SDKDir, "tools", "android"), layout.AndroidTool)
		assert.Empty(t, layout.NDKRoot)
		assert.Empty(t, layout.SharedDir)
	})

	t.Run("sdk_from_env", func(t *testing.T) {
		root := fakeSDK(t)
		t.Setenv("ANDROID_HOME", root)
		layout, err := Locate(ctx, &config.Config{})
		require.NoError(t, err)
		assert.Equal(t, root, layout.SDKRoot)
	})

	t.Run("no_sdk_anywhere", func(t *testing.T) {
		t.Setenv("ANDROID_HOME", "")
		t.Setenv("ANDROID_SDK_ROOT", "")
		_, err := Locate(ctx, &config.Config{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrEnvironment))
	})

	t.Run("missing_android_tool", func(t *testing.T) {
		_, err := Locate(ctx, &config.Config{SDKDir: t.TempDir()})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrEnvironment))
	})

	t.Run("native_build_resolves_ndk", func(t *testing.T) {
		cfg := &config.Config{SDKDir: fakeSDK(t), NDKDir: fakeNDK(t), NativeBuild: true}
		layout, err := Locate(ctx, cfg)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(cfg.NDKDir, "ndk-build"), layout.NDKBuild)
	})

	t.Run("native_build_without_ndk", func(t *testing.T) {
		t.Setenv("ANDROID_NDK_HOME", "")
		cfg := &config.Config{SDKDir: fakeSDK(t), NativeBuild: true}
		_, err := Locate(ctx, cfg)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrEnvironment))
	})

	t.Run("custom_build_resolves_shared", func(t *testing.T) {
		cfg := &config.Config{SDKDir: fakeSDK(t), Shared: fakeShared(t), CustomBuild: true}
		layout, err := Locate(ctx, cfg)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(cfg.Shared, SharedPropsName), layout.SharedProps())
		assert.Equal(t, filepath.Join(cfg.Shared, SharedKeysName), layout.SharedKeys())
	})

	t.Run("custom_build_missing_shared_props", func(t *testing.T) {
		cfg := &config.Config{SDKDir: fakeSDK(t), Shared: t.TempDir(), CustomBuild: true}
		_, err := Locate(ctx, cfg)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrEnvironment))
	})
}

func TestCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("all_good_minimal_modes", func(t *testing.T) {
		t.Setenv("ANDROID_NDK_HOME", "")
		cfg := &config.Config{SDKDir: fakeSDK(t)}
		results := Check(ctx, cfg)
		require.Len(t, results, 4)
		for _, r := range results {
			assert.True(t, r.OK(), "%s: %v", r.Name, r.Err)
		}

		// Modes that are off and unconfigured are marked skipped, the
		// required checks never are.
		assert.False(t, results[0].Skipped)
		assert.False(t, results[1].Skipped)
		assert.True(t, results[2].Skipped)
		assert.True(t, results[3].Skipped)
	})

	t.Run("configured_optional_check_is_not_skipped", func(t *testing.T) {
		// The NDK is present but native-build is off: the executable is
		// still verified and reported, not skipped.
		cfg := &config.Config{SDKDir: fakeSDK(t), NDKDir: fakeNDK(t)}
		results := Check(ctx, cfg)

		ndk := results[2]
		assert.True(t, ndk.Optional)
		assert.False(t, ndk.Skipped)
		assert.True(t, ndk.OK())
		assert.Equal(t, filepath.Join(cfg.NDKDir, "ndk-build"), ndk.Detail)
	})

	t.Run("native_build_without_ndk_fails_only_ndk_check", func(t *testing.T) {
		t.Setenv("ANDROID_NDK_HOME", "")
		cfg := &config.Config{SDKDir: fakeSDK(t), NativeBuild: true}
		results := Check(ctx, cfg)

		var failed []string
		for _, r := range results {
			if !r.OK() {
				failed = append(failed, r.Name)
			}
		}
		assert.Equal(t, []string{"NDK (ndk-build)"}, failed)
	})

	t.Run("missing_sdk_fails_sdk_and_tool", func(t *testing.T) {
		t.Setenv("ANDROID_HOME", "")
		t.Setenv("ANDROID_SDK_ROOT", "")
		results := Check(ctx, &config.Config{})
		assert.False(t, results[0].OK())
		assert.False(t, results[1].OK())
	})
}
