package output

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/telekom/gateway-client-go/pkg/payment"
	"github.com/telekom/gateway-client-go/pkg/sms"
)

func WriteDeliveryInfoTable(w io.Writer, infos []sms.DeliveryInfo) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ADDRESS\tSTATUS")
	for _, info := range infos {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", info.Address, info.DeliveryStatus)
	}
	_ = tw.Flush()
}

func WriteTransactionTable(w io.Writer, transactions []payment.Transaction) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "TRANSACTION\tEND_USER\tAMOUNT\tCURRENCY\tSTATUS")
	for _, tx := range transactions {
		amount := strconv.FormatFloat(tx.Amount, 'f', -1, 64)
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", tx.TransactionID, tx.EndUserID, amount, tx.Currency, tx.Status)
	}
	_ = tw.Flush()
}
