package sms

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/telekom/gateway-client-go/pkg/gateway"
)

const servicePath = "/smsmessaging/v1"

// Service sends SMS messages through the gateway.
type Service struct {
	client *gateway.Client
}

// New creates an SMS service over the shared gateway client.
func New(client *gateway.Client) *Service {
	return &Service{client: client}
}

// SendOptions describe one outbound message.
type SendOptions struct {
	// Sender is the provisioned sender address or short code.
	Sender string
	// Recipients are the destination MSISDNs. At least one is required.
	Recipients []string
	// Message is the text payload.
	Message string
	// ClientCorrelator optionally deduplicates retried sends on the gateway
	// side.
	ClientCorrelator string
	// NotifyURL optionally subscribes the caller to delivery receipts.
	NotifyURL string
	// CallbackData is echoed back in delivery receipt notifications.
	CallbackData string
}

type outboundTextMessage struct {
	Message string `json:"message"`
}

type receiptRequest struct {
	NotifyURL    string `json:"notifyURL"`
	CallbackData string `json:"callbackData,omitempty"`
}

type outboundMessageRequest struct {
	Address             []string            `json:"address"`
	SenderAddress       string              `json:"senderAddress"`
	OutboundTextMessage outboundTextMessage `json:"outboundSMSTextMessage"`
	ClientCorrelator    string              `json:"clientCorrelator,omitempty"`
	ReceiptRequest      *receiptRequest     `json:"receiptRequest,omitempty"`
	ResourceURL         string              `json:"resourceURL,omitempty"`
}

type sendEnvelope struct {
	OutboundSMSMessageRequest outboundMessageRequest `json:"outboundSMSMessageRequest"`
}

// SendResult identifies an accepted send request.
type SendResult struct {
	// RequestID is the gateway-assigned id of the send request, usable with
	// DeliveryStatus.
	RequestID string
	// ResourceURL is the full resource location returned by the gateway.
	ResourceURL string
}

// DeliveryInfo is the delivery state of one recipient.
type DeliveryInfo struct {
	Address        string `json:"address"`
	DeliveryStatus string `json:"deliveryStatus"`
}

type deliveryInfoList struct {
	DeliveryInfoList struct {
		DeliveryInfo []DeliveryInfo `json:"deliveryInfo"`
		ResourceURL  string         `json:"resourceURL,omitempty"`
	} `json:"deliveryInfoList"`
}

// Send submits one text message to the given recipients.
func (s *Service) Send(ctx context.Context, opts SendOptions) (*SendResult, error) {
	if strings.TrimSpace(opts.Sender) == "" {
		return nil, errors.New("sms: sender address is required")
	}
	if len(opts.Recipients) == 0 {
		return nil, errors.New("sms: at least one recipient is required")
	}
	if opts.Message == "" {
		return nil, errors.New("sms: message is required")
	}

	addresses := make([]string, 0, len(opts.Recipients))
	for _, recipient := range opts.Recipients {
		if strings.TrimSpace(recipient) == "" {
			return nil, errors.New("sms: recipient address must not be empty")
		}
		addresses = append(addresses, Tel(recipient))
	}

	envelope := sendEnvelope{
		OutboundSMSMessageRequest: outboundMessageRequest{
			Address:             addresses,
			SenderAddress:       Tel(opts.Sender),
			OutboundTextMessage: outboundTextMessage{Message: opts.Message},
			ClientCorrelator:    opts.ClientCorrelator,
		},
	}
	if opts.NotifyURL != "" {
		envelope.OutboundSMSMessageRequest.ReceiptRequest = &receiptRequest{
			NotifyURL:    opts.NotifyURL,
			CallbackData: opts.CallbackData,
		}
	}

	endpoint := fmt.Sprintf("%s/outbound/%s/requests", servicePath, url.PathEscape(Tel(opts.Sender)))
	resp, err := s.client.Post(ctx, endpoint, envelope)
	if err != nil {
		return nil, err
	}

	var parsed sendEnvelope
	if err := resp.Decode(&parsed); err != nil {
		return nil, fmt.Errorf("sms: failed to decode send response: %w", err)
	}
	result := &SendResult{ResourceURL: parsed.OutboundSMSMessageRequest.ResourceURL}
	if result.ResourceURL != "" {
		result.RequestID = path.Base(result.ResourceURL)
	}
	return result, nil
}

// DeliveryStatus fetches per-recipient delivery information for a previously
// accepted send request.
func (s *Service) DeliveryStatus(ctx context.Context, sender, requestID string) ([]DeliveryInfo, error) {
	if strings.TrimSpace(sender) == "" {
		return nil, errors.New("sms: sender address is required")
	}
	if strings.TrimSpace(requestID) == "" {
		return nil, errors.New("sms: request id is required")
	}

	endpoint := fmt.Sprintf("%s/outbound/%s/requests/%s/deliveryInfos",
		servicePath, url.PathEscape(Tel(sender)), url.PathEscape(requestID))
	resp, err := s.client.Get(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var parsed deliveryInfoList
	if err := resp.Decode(&parsed); err != nil {
		return nil, fmt.Errorf("sms: failed to decode delivery info: %w", err)
	}
	return parsed.DeliveryInfoList.DeliveryInfo, nil
}

// Tel normalizes an MSISDN to the tel URI form the gateway expects.
// "491701234567" and "+491701234567" both become "tel:+491701234567";
// already-prefixed addresses pass through unchanged.
func Tel(address string) string {
	switch {
	case strings.HasPrefix(address, "tel:"):
		return address
	case strings.HasPrefix(address, "+"):
		return "tel:" + address
	default:
		return "tel:+" + address
	}
}
