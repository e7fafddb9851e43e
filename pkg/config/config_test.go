package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func validConfig() Config {
	return Config{
		Target:   19,
		Package:  "com.example.demo",
		Name:     "Demo",
		Activity: "com.example.demo.Main",
		Dest:     "/tmp/demo",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantError string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:      "unknown_target",
			mutate:    func(c *Config) { c.Target = 11 },
			wantError: "unknown target API level 11",
		},
		{
			name:      "bad_package",
			mutate:    func(c *Config) { c.Package = "NoDots" },
			wantError: "reverse-DNS",
		},
		{
			name:      "name_with_separator",
			mutate:    func(c *Config) { c.Name = "a/b" },
			wantError: "path separators",
		},
		{
			name:      "bad_activity",
			mutate:    func(c *Config) { c.Activity = "1Main" },
			wantError: "not a valid class name",
		},
		{
			name:      "missing_dest",
			mutate:    func(c *Config) { c.Dest = "" },
			wantError: "destination path is required",
		},
		{
			name: "custom_and_remove_props_conflict",
			mutate: func(c *Config) {
				c.CustomBuild = true
				c.Shared = "/shared"
				c.RemoveBuildProps = true
			},
			wantError: "mutually exclusive",
		},
		{
			name:      "custom_build_needs_shared_dir",
			mutate:    func(c *Config) { c.CustomBuild = true },
			wantError: "requires a shared_dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantError != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrConfig))
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestConfig_TitleDefaultsToName(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "Demo", cfg.Title)
}

func TestActivityClass(t *testing.T) {
	assert.Equal(t, "Main", ActivityClass("com.example.demo.Main"))
	assert.Equal(t, "Main", ActivityClass("Main"))
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	write := func(t *testing.T, name, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	t.Run("yaml", func(t *testing.T) {
		path := write(t, "defaults.yaml", "target: 19\nsdk_dir: /opt/android-sdk\nshared_dir: /opt/android-shared\n")
		cfg, err := Load(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, 19, cfg.Target)
		assert.Equal(t, "/opt/android-sdk", cfg.SDKDir)
		assert.Equal(t, "/opt/android-shared", cfg.Shared)
	})

	t.Run("json", func(t *testing.T) {
		path := write(t, "defaults.json", `{"target": 16, "native_build": true}`)
		cfg, err := Load(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, 16, cfg.Target)
		assert.True(t, cfg.NativeBuild)
	})

	t.Run("hcl", func(t *testing.T) {
		path := write(t, "defaults.hcl", "target = 21\nndk_dir = \"/opt/android-ndk\"\n")
		cfg, err := Load(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, 21, cfg.Target)
		assert.Equal(t, "/opt/android-ndk", cfg.NDKDir)
	})

	t.Run("mkdroid_extension_tries_yaml_then_hcl", func(t *testing.T) {
		path := write(t, "ci.mkdroid", "target = 14\n")
		cfg, err := Load(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, 14, cfg.Target)
	})

	t.Run("unknown_yaml_field_rejected", func(t *testing.T) {
		path := write(t, "defaults.yaml", "targett: 19\n")
		_, err := Load(ctx, path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConfig))
	})

	t.Run("unsupported_extension", func(t *testing.T) {
		path := write(t, "defaults.toml", "target = 19\n")
		_, err := Load(ctx, path)
		require.Error(t, err)
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := Load(ctx, filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}
