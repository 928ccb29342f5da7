// Package gateway provides the base client for the operator gateway REST
// API: a uniform authenticated request dispatcher over which the SMS, USSD
// and payment service packages are thin formatters.
package gateway
