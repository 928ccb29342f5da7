package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/telekom/gateway-client-go/pkg/gwctl/output"
	"github.com/telekom/gateway-client-go/pkg/ussd"
)

func NewUSSDCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ussd",
		Short: "Send USSD messages and manage sessions",
	}
	cmd.AddCommand(newUSSDSendCommand(), newUSSDStopCommand())
	return cmd
}

func newUSSDSendCommand() *cobra.Command {
	var (
		address   string
		shortCode string
		message   string
		sessionID string
		keepOpen  bool
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a USSD message, optionally continuing a session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			client, err := buildClient(rt)
			if err != nil {
				return err
			}

			result, err := ussd.New(client).Send(cmd.Context(), ussd.SendOptions{
				Address:         address,
				ShortCode:       shortCode,
				Message:         message,
				SessionID:       sessionID,
				KeepSessionOpen: keepOpen,
			})
			if err != nil {
				return err
			}

			switch format := rt.format(output.FormatTable); format {
			case output.FormatJSON, output.FormatYAML:
				return output.WriteObject(rt.Writer(), format, result)
			default:
				if result.Reply != "" {
					fmt.Fprintln(rt.Writer(), result.Reply)
				}
				if result.SessionID != "" {
					fmt.Fprintf(rt.Writer(), "Session %s\n", result.SessionID)
				}
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&address, "to", "", "Subscriber MSISDN")
	cmd.Flags().StringVar(&shortCode, "short-code", "", "USSD short code")
	cmd.Flags().StringVar(&message, "message", "", "Message text")
	cmd.Flags().StringVar(&sessionID, "session", "", "Existing session id to continue")
	cmd.Flags().BoolVar(&keepOpen, "keep-open", false, "Keep the session open for a follow-up message")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}

func newUSSDStopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop SESSION_ID",
		Short: "Terminate a USSD session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			client, err := buildClient(rt)
			if err != nil {
				return err
			}
			if err := ussd.New(client).Stop(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(rt.Writer(), "Session %s stopped\n", args[0])
			return err
		},
	}
}
