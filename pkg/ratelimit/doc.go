// Package ratelimit provides client-side request throttling for the gateway
// client so embedders can stay inside the operator's published quota.
package ratelimit
