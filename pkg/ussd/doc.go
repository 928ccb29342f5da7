// Package ussd formats USSD session requests for the gateway. Like the sms
// package it is a stateless formatter over the shared gateway client.
package ussd
