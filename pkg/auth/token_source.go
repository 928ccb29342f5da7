package auth

import (
	"context"

	"golang.org/x/oauth2"
)

// TokenSource adapts the Authenticator to oauth2.TokenSource so it can back
// oauth2-aware HTTP clients. The returned source shares this Authenticator's
// cache.
func (a *Authenticator) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &tokenSource{ctx: ctx, auth: a}
}

type tokenSource struct {
	ctx  context.Context
	auth *Authenticator
}

func (s *tokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.auth.Token(s.ctx)
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
		Expiry:      tok.ExpiresAt,
	}, nil
}
