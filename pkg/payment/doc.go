// Package payment formats carrier-billing requests for the gateway's payment
// service: charging a subscriber, querying a transaction, and reading the
// application's merchant balance.
package payment
