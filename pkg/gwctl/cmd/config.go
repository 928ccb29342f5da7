package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/telekom/gateway-client-go/pkg/gwctl/config"
	"github.com/telekom/gateway-client-go/pkg/gwctl/output"
)

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage gwctl configuration",
	}
	cmd.AddCommand(
		newConfigInitCommand(),
		newConfigViewCommand(),
		newConfigUseProfileCommand(),
		newConfigSetSecretCommand(),
	)
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		profileName  string
		baseURL      string
		clientID     string
		clientSecret string
		useKeychain  bool
		force        bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a config file with an initial profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if _, err := os.Stat(rt.configPath); err == nil && !force {
				return fmt.Errorf("config file %s already exists, use --force to overwrite", rt.configPath)
			}
			if clientID == "" {
				return errors.New("--id is required")
			}

			cfg := config.DefaultConfig()
			profile := config.Profile{
				Name:     profileName,
				BaseURL:  baseURL,
				ClientID: clientID,
			}
			if useKeychain {
				if clientSecret == "" {
					return errors.New("--secret is required with --keychain")
				}
				if err := config.StoreKeychainSecret(clientID, clientSecret); err != nil {
					return err
				}
				profile.UseKeychain = true
			} else {
				profile.ClientSecret = clientSecret
			}
			cfg.Profiles = []config.Profile{profile}
			cfg.CurrentProfile = profileName

			if err := config.Save(rt.configPath, &cfg); err != nil {
				return err
			}
			fmt.Fprintf(rt.Writer(), "Config written to %s\n", rt.configPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&profileName, "name", "default", "Profile name")
	cmd.Flags().StringVar(&baseURL, "url", "", "Gateway base URL")
	cmd.Flags().StringVar(&clientID, "id", "", "OAuth client id")
	cmd.Flags().StringVar(&clientSecret, "secret", "", "OAuth client secret")
	cmd.Flags().BoolVar(&useKeychain, "keychain", false, "Store the secret in the OS keychain instead of the config file")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

func newConfigViewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Show the current configuration with secrets redacted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if rt.cfg == nil {
				return errors.New("no configuration loaded")
			}

			redacted := *rt.cfg
			redacted.Profiles = make([]config.Profile, len(rt.cfg.Profiles))
			copy(redacted.Profiles, rt.cfg.Profiles)
			for i := range redacted.Profiles {
				if redacted.Profiles[i].ClientSecret != "" {
					redacted.Profiles[i].ClientSecret = "REDACTED"
				}
			}

			format := rt.format(output.FormatYAML)
			if format == output.FormatTable {
				format = output.FormatYAML
			}
			return output.WriteObject(rt.Writer(), format, redacted)
		},
	}
}

func newConfigUseProfileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use-profile NAME",
		Short: "Switch the current profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if rt.cfg == nil {
				return errors.New("no configuration loaded")
			}
			if _, err := rt.cfg.FindProfile(args[0]); err != nil {
				return err
			}
			rt.cfg.CurrentProfile = args[0]
			if err := config.Save(rt.configPath, rt.cfg); err != nil {
				return err
			}
			fmt.Fprintf(rt.Writer(), "Switched to profile %s\n", args[0])
			return nil
		},
	}
}

func newConfigSetSecretCommand() *cobra.Command {
	var secret string

	cmd := &cobra.Command{
		Use:   "set-secret",
		Short: "Store the client secret for the current profile in the OS keychain",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			profile := rt.currentProfile()
			if profile == nil {
				return errors.New("no profile selected")
			}
			if secret == "" {
				return errors.New("--secret is required")
			}
			if err := config.StoreKeychainSecret(profile.ClientID, secret); err != nil {
				return err
			}
			if !profile.UseKeychain || profile.ClientSecret != "" {
				profile.UseKeychain = true
				profile.ClientSecret = ""
				if err := config.Save(rt.configPath, rt.cfg); err != nil {
					return err
				}
			}
			fmt.Fprintf(rt.Writer(), "Secret stored in keychain for %s\n", profile.ClientID)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "Client secret to store")
	return cmd
}
