package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/telekom/gateway-client-go/pkg/gwctl/output"
	"github.com/telekom/gateway-client-go/pkg/sms"
)

func NewSMSCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sms",
		Short: "Send SMS messages and query delivery status",
	}
	cmd.AddCommand(newSMSSendCommand(), newSMSStatusCommand())
	return cmd
}

// resolveSender falls back to the profile's sender address when the flag is
// not set.
func (rt *runtimeState) resolveSender(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if profile := rt.currentProfile(); profile != nil && profile.SenderAddress != "" {
		return profile.SenderAddress, nil
	}
	return "", errors.New("no sender address: pass --from or set sender-address in the profile")
}

func newSMSSendCommand() *cobra.Command {
	var (
		sender       string
		recipients   []string
		message      string
		correlator   string
		notifyURL    string
		callbackData string
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send an SMS to one or more recipients",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			from, err := rt.resolveSender(sender)
			if err != nil {
				return err
			}
			client, err := buildClient(rt)
			if err != nil {
				return err
			}

			result, err := sms.New(client).Send(cmd.Context(), sms.SendOptions{
				Sender:           from,
				Recipients:       recipients,
				Message:          message,
				ClientCorrelator: correlator,
				NotifyURL:        notifyURL,
				CallbackData:     callbackData,
			})
			if err != nil {
				return err
			}

			switch format := rt.format(output.FormatTable); format {
			case output.FormatJSON, output.FormatYAML:
				return output.WriteObject(rt.Writer(), format, result)
			default:
				_, err = fmt.Fprintf(rt.Writer(), "Request %s accepted\n", result.RequestID)
				return err
			}
		},
	}

	cmd.Flags().StringVar(&sender, "from", "", "Sender address (defaults to the profile's sender-address)")
	cmd.Flags().StringSliceVar(&recipients, "to", nil, "Recipient MSISDN, repeatable")
	cmd.Flags().StringVar(&message, "message", "", "Message text")
	cmd.Flags().StringVar(&correlator, "correlator", "", "Client correlator for idempotent resubmission")
	cmd.Flags().StringVar(&notifyURL, "notify-url", "", "Delivery receipt callback URL")
	cmd.Flags().StringVar(&callbackData, "callback-data", "", "Opaque data echoed in the delivery receipt")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}

func newSMSStatusCommand() *cobra.Command {
	var sender string

	cmd := &cobra.Command{
		Use:   "status REQUEST_ID",
		Short: "Query delivery status for a previously sent SMS",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			from, err := rt.resolveSender(sender)
			if err != nil {
				return err
			}
			client, err := buildClient(rt)
			if err != nil {
				return err
			}

			infos, err := sms.New(client).DeliveryStatus(cmd.Context(), from, args[0])
			if err != nil {
				return err
			}

			switch format := rt.format(output.FormatTable); format {
			case output.FormatJSON, output.FormatYAML:
				return output.WriteObject(rt.Writer(), format, infos)
			default:
				output.WriteDeliveryInfoTable(rt.Writer(), infos)
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&sender, "from", "", "Sender address used for the original request")
	return cmd
}
