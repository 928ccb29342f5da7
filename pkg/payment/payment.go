package payment

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/telekom/gateway-client-go/pkg/gateway"
	"github.com/telekom/gateway-client-go/pkg/sms"
)

const servicePath = "/payment/v1"

// Service charges subscribers through the gateway's carrier billing API.
type Service struct {
	client *gateway.Client
}

// New creates a payment service over the shared gateway client.
func New(client *gateway.Client) *Service {
	return &Service{client: client}
}

// RequestOptions describe one charge against a subscriber.
type RequestOptions struct {
	// EndUserID is the MSISDN of the subscriber being charged.
	EndUserID string
	// Amount is the charge amount in the given currency.
	Amount float64
	// Currency is the ISO 4217 currency code.
	Currency string
	// Description appears on the subscriber's bill.
	Description string
	// ReferenceCode optionally deduplicates retried charges.
	ReferenceCode string
}

type chargingInformation struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
}

type paymentAmount struct {
	ChargingInformation chargingInformation `json:"chargingInformation"`
}

type requestPayment struct {
	EndUserID                  string        `json:"endUserId"`
	PaymentAmount              paymentAmount `json:"paymentAmount"`
	TransactionOperationStatus string        `json:"transactionOperationStatus"`
	ReferenceCode              string        `json:"referenceCode,omitempty"`
}

type requestEnvelope struct {
	RequestPayment requestPayment `json:"requestPayment"`
}

// Transaction is the gateway's view of one payment transaction.
type Transaction struct {
	TransactionID string  `json:"transactionId"`
	Status        string  `json:"transactionOperationStatus"`
	EndUserID     string  `json:"endUserId"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
}

type transactionEnvelope struct {
	PaymentTransaction Transaction `json:"paymentTransaction"`
}

// Balance is the application's merchant account balance.
type Balance struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type balanceEnvelope struct {
	Balance Balance `json:"balance"`
}

// Request charges the subscriber and returns the resulting transaction.
func (s *Service) Request(ctx context.Context, opts RequestOptions) (*Transaction, error) {
	if strings.TrimSpace(opts.EndUserID) == "" {
		return nil, errors.New("payment: end user id is required")
	}
	if opts.Amount <= 0 {
		return nil, errors.New("payment: amount must be positive")
	}
	if strings.TrimSpace(opts.Currency) == "" {
		return nil, errors.New("payment: currency is required")
	}
	if strings.TrimSpace(opts.Description) == "" {
		return nil, errors.New("payment: description is required")
	}

	envelope := requestEnvelope{
		RequestPayment: requestPayment{
			EndUserID: sms.Tel(opts.EndUserID),
			PaymentAmount: paymentAmount{
				ChargingInformation: chargingInformation{
					Amount:      opts.Amount,
					Currency:    opts.Currency,
					Description: opts.Description,
				},
			},
			TransactionOperationStatus: "Charged",
			ReferenceCode:              opts.ReferenceCode,
		},
	}

	resp, err := s.client.Post(ctx, servicePath+"/transactions", envelope)
	if err != nil {
		return nil, err
	}

	var parsed transactionEnvelope
	if err := resp.Decode(&parsed); err != nil {
		return nil, fmt.Errorf("payment: failed to decode transaction response: %w", err)
	}
	return &parsed.PaymentTransaction, nil
}

// Status fetches the current state of a transaction.
func (s *Service) Status(ctx context.Context, transactionID string) (*Transaction, error) {
	if strings.TrimSpace(transactionID) == "" {
		return nil, errors.New("payment: transaction id is required")
	}

	resp, err := s.client.Get(ctx, fmt.Sprintf("%s/transactions/%s", servicePath, url.PathEscape(transactionID)), nil)
	if err != nil {
		return nil, err
	}

	var parsed transactionEnvelope
	if err := resp.Decode(&parsed); err != nil {
		return nil, fmt.Errorf("payment: failed to decode transaction response: %w", err)
	}
	return &parsed.PaymentTransaction, nil
}

// MerchantBalance reads the application's merchant account balance.
func (s *Service) MerchantBalance(ctx context.Context) (*Balance, error) {
	resp, err := s.client.Get(ctx, servicePath+"/balance", nil)
	if err != nil {
		return nil, err
	}

	var parsed balanceEnvelope
	if err := resp.Decode(&parsed); err != nil {
		return nil, fmt.Errorf("payment: failed to decode balance response: %w", err)
	}
	return &parsed.Balance, nil
}
