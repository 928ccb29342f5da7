// Package sms formats outbound SMS requests for the gateway's messaging
// service. It is a stateless layer over the shared gateway client: every
// operation builds the outboundSMSMessageRequest envelope and delegates the
// exchange.
package sms
