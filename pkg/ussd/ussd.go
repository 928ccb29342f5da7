package ussd

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/telekom/gateway-client-go/pkg/gateway"
	"github.com/telekom/gateway-client-go/pkg/sms"
)

const servicePath = "/ussd/v1"

// Service drives USSD sessions through the gateway.
type Service struct {
	client *gateway.Client
}

// New creates a USSD service over the shared gateway client.
func New(client *gateway.Client) *Service {
	return &Service{client: client}
}

// SendOptions describe one outbound USSD message.
type SendOptions struct {
	// Address is the subscriber MSISDN.
	Address string
	// ShortCode is the provisioned USSD short code the message is sent from.
	ShortCode string
	// Message is the menu or prompt text pushed to the subscriber.
	Message string
	// SessionID continues an existing session when set; empty starts a new
	// one.
	SessionID string
	// KeepSessionOpen leaves the session open for a subscriber reply.
	KeepSessionOpen bool
}

type outboundMessage struct {
	Message string `json:"message"`
}

type outboundMessageRequest struct {
	Address         string          `json:"address"`
	ShortCode       string          `json:"shortCode"`
	OutboundMessage outboundMessage `json:"outboundUSSDMessage"`
	SessionID       string          `json:"sessionID,omitempty"`
	KeepSessionOpen bool            `json:"keepSessionOpen,omitempty"`
	ResourceURL     string          `json:"resourceURL,omitempty"`
}

type sendEnvelope struct {
	OutboundUSSDMessageRequest outboundMessageRequest `json:"outboundUSSDMessageRequest"`
}

type sendResponse struct {
	OutboundUSSDMessageRequest struct {
		SessionID      string `json:"sessionID"`
		ResourceURL    string `json:"resourceURL,omitempty"`
		InboundMessage *struct {
			Message string `json:"message"`
		} `json:"inboundUSSDMessage,omitempty"`
	} `json:"outboundUSSDMessageRequest"`
}

// Result describes the gateway's answer to a send.
type Result struct {
	// SessionID identifies the USSD session; pass it back in SendOptions to
	// continue the dialog, or to Stop to tear it down.
	SessionID string
	// ResourceURL is the session resource location.
	ResourceURL string
	// Reply is the subscriber's answer when the gateway returned one
	// synchronously.
	Reply string
}

// Send pushes a USSD message to the subscriber.
func (s *Service) Send(ctx context.Context, opts SendOptions) (*Result, error) {
	if strings.TrimSpace(opts.Address) == "" {
		return nil, errors.New("ussd: subscriber address is required")
	}
	if strings.TrimSpace(opts.ShortCode) == "" {
		return nil, errors.New("ussd: short code is required")
	}
	if opts.Message == "" {
		return nil, errors.New("ussd: message is required")
	}

	envelope := sendEnvelope{
		OutboundUSSDMessageRequest: outboundMessageRequest{
			Address:         sms.Tel(opts.Address),
			ShortCode:       opts.ShortCode,
			OutboundMessage: outboundMessage{Message: opts.Message},
			SessionID:       opts.SessionID,
			KeepSessionOpen: opts.KeepSessionOpen,
		},
	}

	resp, err := s.client.Post(ctx, servicePath+"/outbound", envelope)
	if err != nil {
		return nil, err
	}

	var parsed sendResponse
	if err := resp.Decode(&parsed); err != nil {
		return nil, fmt.Errorf("ussd: failed to decode send response: %w", err)
	}
	result := &Result{
		SessionID:   parsed.OutboundUSSDMessageRequest.SessionID,
		ResourceURL: parsed.OutboundUSSDMessageRequest.ResourceURL,
	}
	if parsed.OutboundUSSDMessageRequest.InboundMessage != nil {
		result.Reply = parsed.OutboundUSSDMessageRequest.InboundMessage.Message
	}
	return result, nil
}

// Stop tears down an open USSD session.
func (s *Service) Stop(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return errors.New("ussd: session id is required")
	}
	_, err := s.client.Delete(ctx, fmt.Sprintf("%s/outbound/%s", servicePath, url.PathEscape(sessionID)))
	return err
}
