// Package auth implements the OAuth2 client-credentials token cache backing
// the gateway client. A fetched token is reused until it expires; concurrent
// refreshes are coalesced into a single token exchange.
package auth
