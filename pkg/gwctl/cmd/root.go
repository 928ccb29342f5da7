package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/telekom/gateway-client-go/pkg/gwctl/config"
	"github.com/telekom/gateway-client-go/pkg/gwctl/output"
)

type Config struct {
	ConfigPath   string
	OutputWriter io.Writer
}

type runtimeState struct {
	configPath           string
	cfg                  *config.Config
	profileOverride      string
	outputFormat         string
	baseURLOverride      string
	clientIDOverride     string
	clientSecretOverride string
	verbose              bool
	writer               io.Writer
}

type runtimeKey struct{}

func DefaultConfig() Config {
	return Config{
		ConfigPath:   config.DefaultConfigPath(),
		OutputWriter: os.Stdout,
	}
}

func NewRootCommand(cfg Config) *cobra.Command {
	rt := &runtimeState{configPath: cfg.ConfigPath, writer: cfg.OutputWriter}

	root := &cobra.Command{
		Use:   "gwctl",
		Short: "Operator gateway CLI",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if rt.writer == nil {
				rt.writer = os.Stdout
			}
			if rt.configPath == "" {
				rt.configPath = config.DefaultConfigPath()
			}
			if rt.profileOverride == "" {
				rt.profileOverride = os.Getenv("GWCTL_PROFILE")
			}
			if rt.outputFormat == "" {
				rt.outputFormat = os.Getenv("GWCTL_OUTPUT")
			}
			if rt.baseURLOverride == "" {
				rt.baseURLOverride = os.Getenv("GWCTL_BASE_URL")
			}
			if rt.clientIDOverride == "" {
				rt.clientIDOverride = os.Getenv("GWCTL_CLIENT_ID")
			}
			if rt.clientSecretOverride == "" {
				rt.clientSecretOverride = os.Getenv("GWCTL_CLIENT_SECRET")
			}
			if !rt.verbose {
				rt.verbose = strings.EqualFold(os.Getenv("GWCTL_VERBOSE"), "true")
			}

			// Skip config loading for commands that don't need it
			if cmd.Name() == "init" && cmd.Parent() != nil && cmd.Parent().Name() == "config" {
				return nil
			}
			if cmd.Name() == "version" || cmd.Name() == "completion" {
				return nil
			}
			// Credentials provided entirely via flags or env vars work
			// without a config file.
			if rt.clientIDOverride != "" && rt.clientSecretOverride != "" {
				rt.cfg = &config.Config{Version: config.VersionV1}
				return nil
			}

			loaded, err := config.Load(rt.configPath)
			if err != nil {
				return err
			}
			rt.cfg = loaded
			return nil
		},
	}

	root.PersistentFlags().StringVar(&rt.configPath, "config", rt.configPath, "Path to config file")
	root.PersistentFlags().StringVarP(&rt.profileOverride, "profile", "p", "", "Profile name override")
	root.PersistentFlags().StringVarP(&rt.outputFormat, "output", "o", "", "Output format: table, json, yaml")
	root.PersistentFlags().StringVar(&rt.baseURLOverride, "base-url", "", "Gateway base URL override")
	root.PersistentFlags().StringVar(&rt.clientIDOverride, "client-id", "", "Client id override (bypass config)")
	root.PersistentFlags().StringVar(&rt.clientSecretOverride, "client-secret", "", "Client secret override (bypass config)")
	root.PersistentFlags().BoolVarP(&rt.verbose, "verbose", "v", false, "Enable verbose wire logging")

	root.SetContext(context.WithValue(context.Background(), runtimeKey{}, rt))

	root.AddCommand(
		NewConfigCommand(),
		NewTokenCommand(),
		NewSMSCommand(),
		NewUSSDCommand(),
		NewPaymentCommand(),
		NewVersionCommand(),
		NewCompletionCommand(),
	)
	return root
}

func getRuntime(cmd *cobra.Command) (*runtimeState, error) {
	rt, ok := cmd.Context().Value(runtimeKey{}).(*runtimeState)
	if !ok || rt == nil {
		return nil, errors.New("runtime not initialized")
	}
	return rt, nil
}

func (rt *runtimeState) Writer() io.Writer {
	if rt.writer == nil {
		return os.Stdout
	}
	return rt.writer
}

// format returns the effective output format: flag, then config setting,
// then the command's default.
func (rt *runtimeState) format(defaultFormat output.Format) output.Format {
	if rt.outputFormat != "" {
		return output.Format(rt.outputFormat)
	}
	if rt.cfg != nil && rt.cfg.Settings.OutputFormat != "" && defaultFormat == output.FormatTable {
		return output.Format(rt.cfg.Settings.OutputFormat)
	}
	return defaultFormat
}

// currentProfile returns the selected profile, or nil when the runtime is
// driven purely by overrides.
func (rt *runtimeState) currentProfile() *config.Profile {
	if rt.cfg == nil {
		return nil
	}
	name := rt.profileOverride
	if name == "" {
		name = rt.cfg.CurrentProfileOrDefault()
	}
	if name == "" {
		return nil
	}
	profile, err := rt.cfg.FindProfile(name)
	if err != nil {
		return nil
	}
	return profile
}
