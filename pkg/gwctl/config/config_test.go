package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.CurrentProfile = "prod"
	cfg.Profiles = []Profile{
		{
			Name:          "prod",
			BaseURL:       "https://gateway.example.com",
			ClientID:      "app-1",
			UseKeychain:   true,
			SenderAddress: "tel:+4915100000000",
		},
		{
			Name:            "staging",
			ClientID:        "app-2",
			ClientSecretEnv: "STAGING_SECRET",
		},
	}

	require.NoError(t, Save(path, &cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, VersionV1, loaded.Version)
	assert.Equal(t, "prod", loaded.CurrentProfile)
	require.Len(t, loaded.Profiles, 2)
	assert.Equal(t, "app-1", loaded.Profiles[0].ClientID)
	assert.True(t, loaded.Profiles[0].UseKeychain)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("")
	require.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o600))
	_, err = Load(path)
	require.Error(t, err)
}

func TestLoadDefaultsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profiles:\n- name: p\n  client-id: id\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, VersionV1, cfg.Version)
}

func TestFindProfile(t *testing.T) {
	cfg := Config{Profiles: []Profile{{Name: "a", ClientID: "x"}, {Name: "b", ClientID: "y"}}}

	profile, err := cfg.FindProfile("b")
	require.NoError(t, err)
	assert.Equal(t, "y", profile.ClientID)

	_, err = cfg.FindProfile("missing")
	require.Error(t, err)
}

func TestCurrentProfileOrDefault(t *testing.T) {
	cfg := Config{Profiles: []Profile{{Name: "first"}, {Name: "second"}}}
	assert.Equal(t, "first", cfg.CurrentProfileOrDefault())

	cfg.CurrentProfile = "second"
	assert.Equal(t, "second", cfg.CurrentProfileOrDefault())

	empty := Config{}
	assert.Equal(t, "", empty.CurrentProfileOrDefault())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid",
			cfg:  Config{Version: VersionV1, Profiles: []Profile{{Name: "p", ClientID: "id"}}},
		},
		{
			name:    "missing version",
			cfg:     Config{},
			wantErr: "version missing",
		},
		{
			name:    "empty profile name",
			cfg:     Config{Version: VersionV1, Profiles: []Profile{{Name: " ", ClientID: "id"}}},
			wantErr: "name cannot be empty",
		},
		{
			name:    "missing client id",
			cfg:     Config{Version: VersionV1, Profiles: []Profile{{Name: "p"}}},
			wantErr: "client-id is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestResolveSecret(t *testing.T) {
	t.Run("inline", func(t *testing.T) {
		secret, err := ResolveSecret(&Profile{Name: "p", ClientSecret: "inline-secret"})
		require.NoError(t, err)
		assert.Equal(t, "inline-secret", secret)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("GWCTL_TEST_SECRET", "env-secret")
		secret, err := ResolveSecret(&Profile{Name: "p", ClientSecretEnv: "GWCTL_TEST_SECRET"})
		require.NoError(t, err)
		assert.Equal(t, "env-secret", secret)
	})

	t.Run("environment empty", func(t *testing.T) {
		t.Setenv("GWCTL_TEST_SECRET", "")
		_, err := ResolveSecret(&Profile{Name: "p", ClientSecretEnv: "GWCTL_TEST_SECRET"})
		require.Error(t, err)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "secret")
		require.NoError(t, os.WriteFile(path, []byte("file-secret\n"), 0o600))
		secret, err := ResolveSecret(&Profile{Name: "p", ClientSecretFile: path})
		require.NoError(t, err)
		assert.Equal(t, "file-secret", secret)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ResolveSecret(&Profile{Name: "p", ClientSecretFile: filepath.Join(t.TempDir(), "missing")})
		require.Error(t, err)
	})

	t.Run("nothing configured", func(t *testing.T) {
		_, err := ResolveSecret(&Profile{Name: "p"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no client secret configured")
	})

	t.Run("nil profile", func(t *testing.T) {
		_, err := ResolveSecret(nil)
		require.Error(t, err)
	})
}

func TestDefaultConfigPathEnvOverride(t *testing.T) {
	t.Setenv("GWCTL_CONFIG", "/tmp/custom/config.yaml")
	assert.Equal(t, "/tmp/custom/config.yaml", DefaultConfigPath())
}
