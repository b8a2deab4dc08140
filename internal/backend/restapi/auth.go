package restapi

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"taskctl/internal/config"
)

// newHTTPClient picks the transport for the stored credentials:
// client-credentials grant, static bearer token, or none.
func newHTTPClient(ctx context.Context, creds *config.Credentials) *http.Client {
	switch {
	case creds.HasOAuthClient():
		cc := &clientcredentials.Config{
			ClientID:     creds.OAuth.ClientID,
			ClientSecret: creds.OAuth.ClientSecret,
			TokenURL:     creds.OAuth.TokenURL,
			Scopes:       creds.OAuth.Scopes,
		}
		return cc.Client(ctx)
	case creds.HasToken():
		src := oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: creds.API.Token,
			TokenType:   "Bearer",
		})
		return oauth2.NewClient(ctx, src)
	default:
		return &http.Client{}
	}
}
