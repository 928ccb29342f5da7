package cmd

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/spf13/cobra"

	"github.com/telekom/gateway-client-go/pkg/gwctl/output"
)

func NewTokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Fetch and inspect gateway access tokens",
	}
	cmd.AddCommand(newTokenFetchCommand(), newTokenInspectCommand())
	return cmd
}

func newTokenFetchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch an access token using the configured credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			client, err := buildClient(rt)
			if err != nil {
				return err
			}
			token, err := client.Authenticator().Token(cmd.Context())
			if err != nil {
				return err
			}

			switch rt.format(output.FormatTable) {
			case output.FormatJSON, output.FormatYAML:
				return output.WriteObject(rt.Writer(), rt.format(output.FormatTable), map[string]string{
					"access_token": token.AccessToken,
					"token_type":   token.TokenType,
					"expires_at":   token.ExpiresAt.Format(time.RFC3339),
				})
			default:
				_, err = fmt.Fprintln(rt.Writer(), token.AccessToken)
				return err
			}
		},
	}
}

func newTokenInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Fetch a token and print its JWT claims without verification",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			client, err := buildClient(rt)
			if err != nil {
				return err
			}
			token, err := client.Authenticator().Token(cmd.Context())
			if err != nil {
				return err
			}

			claims := jwt.MapClaims{}
			parser := jwt.NewParser()
			if _, _, err := parser.ParseUnverified(token.AccessToken, claims); err != nil {
				// Opaque tokens are valid for API calls but carry no claims.
				_, err = fmt.Fprintln(rt.Writer(), "token is opaque, no claims to inspect")
				return err
			}

			format := rt.format(output.FormatJSON)
			if format == output.FormatTable {
				format = output.FormatJSON
			}
			return output.WriteObject(rt.Writer(), format, claims)
		},
	}
}
