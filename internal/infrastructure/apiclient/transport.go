package apiclient

import (
	"net/http"

	"golang.org/x/oauth2"
)

// TokenProvider exposes the current session token; an empty string means
// no one is signed in.
type TokenProvider interface {
	Token() string
}

// bearerTransport attaches the session token when there is one and sends the
// request unauthenticated otherwise.
type bearerTransport struct {
	tokens TokenProvider
	base   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token := ""
	if t.tokens != nil {
		token = t.tokens.Token()
	}
	if token == "" {
		return t.base.RoundTrip(req)
	}

	rt := &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
		Base:   t.base,
	}
	return rt.RoundTrip(req)
}
