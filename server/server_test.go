package server_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/mcpjungle/oauth2core/requests"
	"github.com/mcpjungle/oauth2core/server"
	"github.com/mcpjungle/oauth2core/storage/storagetest"
	"github.com/mcpjungle/oauth2core/types"
	"github.com/mcpjungle/oauth2core/util"
)

func newEngine(store *storagetest.MemoryAdapter) *server.Engine {
	return server.New(server.Config{
		TokenExpiresIn:             time.Hour,
		RefreshTokenExpiresIn:      30 * 24 * time.Hour,
		AuthorizationCodeExpiresIn: 10 * time.Minute,
	}, store)
}

func newRequest(method requests.Method, rawURL string, query, post url.Values, headers http.Header, user *types.User) *requests.Request {
	u, _ := url.Parse(rawURL)
	if query == nil {
		query = url.Values{}
	}
	if post == nil {
		post = url.Values{}
	}
	if headers == nil {
		headers = http.Header{}
	}
	return &requests.Request{
		Method:  method,
		URL:     u,
		Headers: headers,
		Query:   query,
		Post:    post,
		User:    user,
	}
}

func testClient() *types.Client {
	return &types.Client{
		ClientID:       "client-1",
		IsConfidential: true,
		ClientSecret:   "s3cret",
		RedirectURIs:   []string{"https://app.example/cb"},
		GrantTypes: []types.GrantType{
			types.GrantTypeAuthorizationCode,
			types.GrantTypeRefreshToken,
			types.GrantTypePassword,
			types.GrantTypeClientCredentials,
		},
		ResponseTypes: []types.ResponseType{types.ResponseTypeCode, types.ResponseTypeToken},
		Scopes:        []string{"read", "write"},
	}
}

func authHeader(clientID, secret string) http.Header {
	h := http.Header{}
	h.Set("Authorization", util.EncodeAuthHeader(clientID, secret))
	return h
}

// pastTime returns a fixed-clock func suitable for store.Now, set hours
// in the past so TTL-expiry assertions don't depend on wall-clock timing.
func pastTime(hoursAgo int) func() time.Time {
	t := time.Now().Add(-time.Duration(hoursAgo) * time.Hour)
	return func() time.Time { return t }
}
