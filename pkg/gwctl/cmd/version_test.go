package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/telekom/gateway-client-go/pkg/version"
)

func TestVersionCommand(t *testing.T) {
	origVersion := version.Version
	origGitCommit := version.GitCommit
	origBuildDate := version.BuildDate
	defer func() {
		version.Version = origVersion
		version.GitCommit = origGitCommit
		version.BuildDate = origBuildDate
	}()

	version.Version = "v1.2.3"
	version.GitCommit = "abc123"
	version.BuildDate = "2026-08-01T12:00:00Z"

	tests := []struct {
		name         string
		args         []string
		wantContains []string
		validateJSON bool
		validateYAML bool
	}{
		{
			name:         "default output format",
			args:         []string{},
			wantContains: []string{"gwctl v1.2.3", "commit: abc123", "built: 2026-08-01T12:00:00Z"},
		},
		{
			name:         "json output format",
			args:         []string{"-o", "json"},
			validateJSON: true,
			wantContains: []string{"v1.2.3", "abc123"},
		},
		{
			name:         "yaml output format",
			args:         []string{"-o", "yaml"},
			validateYAML: true,
			wantContains: []string{"version: v1.2.3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			cmd := NewVersionCommand()
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(tt.args)

			require.NoError(t, cmd.Execute())
			out := buf.String()

			if tt.validateJSON {
				var info version.BuildInfo
				require.NoError(t, json.Unmarshal(buf.Bytes(), &info))
				require.Equal(t, "v1.2.3", info.Version)
				require.Equal(t, "abc123", info.GitCommit)
				require.NotEmpty(t, info.GoVersion)
			}
			if tt.validateYAML {
				var info version.BuildInfo
				require.NoError(t, yaml.Unmarshal(buf.Bytes(), &info))
				require.Equal(t, "v1.2.3", info.Version)
			}
			for _, want := range tt.wantContains {
				require.Contains(t, out, want)
			}
		})
	}
}

func TestVersionCommandWithoutConfig(t *testing.T) {
	buf := &bytes.Buffer{}
	rootCmd := NewRootCommand(Config{
		ConfigPath:   "/nonexistent/path/to/config.yaml",
		OutputWriter: buf,
	})

	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, rootCmd.Execute())
	require.Contains(t, buf.String(), "gwctl")
}
