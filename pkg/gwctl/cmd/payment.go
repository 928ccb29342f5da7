package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/telekom/gateway-client-go/pkg/gwctl/output"
	"github.com/telekom/gateway-client-go/pkg/payment"
)

func NewPaymentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Charge subscribers and query transactions",
	}
	cmd.AddCommand(newPaymentRequestCommand(), newPaymentStatusCommand(), newPaymentBalanceCommand())
	return cmd
}

func newPaymentRequestCommand() *cobra.Command {
	var (
		endUser     string
		amount      float64
		currency    string
		description string
		reference   string
	)

	cmd := &cobra.Command{
		Use:   "request",
		Short: "Charge an amount against a subscriber's account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			client, err := buildClient(rt)
			if err != nil {
				return err
			}

			tx, err := payment.New(client).Request(cmd.Context(), payment.RequestOptions{
				EndUserID:     endUser,
				Amount:        amount,
				Currency:      currency,
				Description:   description,
				ReferenceCode: reference,
			})
			if err != nil {
				return err
			}
			return writeTransaction(rt, tx)
		},
	}

	cmd.Flags().StringVar(&endUser, "end-user", "", "Subscriber MSISDN to charge")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Amount to charge")
	cmd.Flags().StringVar(&currency, "currency", "", "ISO 4217 currency code")
	cmd.Flags().StringVar(&description, "description", "", "Charge description shown to the subscriber")
	cmd.Flags().StringVar(&reference, "reference", "", "Merchant reference code")
	_ = cmd.MarkFlagRequired("end-user")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("currency")

	return cmd
}

func newPaymentStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status TRANSACTION_ID",
		Short: "Query the status of a payment transaction",
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
			tx, err := payment.New(client).Status(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeTransaction(rt, tx)
		},
	}
}

func newPaymentBalanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the merchant account balance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			client, err := buildClient(rt)
			if err != nil {
				return err
			}
			balance, err := payment.New(client).MerchantBalance(cmd.Context())
			if err != nil {
				return err
			}

			switch format := rt.format(output.FormatTable); format {
			case output.FormatJSON, output.FormatYAML:
				return output.WriteObject(rt.Writer(), format, balance)
			default:
				_, err = fmt.Fprintf(rt.Writer(), "%s %s\n", formatAmount(balance.Amount), balance.Currency)
				return err
			}
		},
	}
}

func writeTransaction(rt *runtimeState, tx *payment.Transaction) error {
	switch format := rt.format(output.FormatTable); format {
	case output.FormatJSON, output.FormatYAML:
		return output.WriteObject(rt.Writer(), format, tx)
	default:
		output.WriteTransactionTable(rt.Writer(), []payment.Transaction{*tx})
		return nil
	}
}

func formatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
