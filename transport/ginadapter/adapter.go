// Package ginadapter is the reference HTTP binding for the engine,
// grounded on the teacher's internal/api/oauth.go handler style
// (extractClientCredentials, getServerURL, redirectError). It is the
// only package in this module that imports gin; server, grant, storage,
// types stay framework-free by design.
package ginadapter

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mcpjungle/oauth2core/requests"
	"github.com/mcpjungle/oauth2core/responses"
	"github.com/mcpjungle/oauth2core/types"
)

// UserFunc resolves the authenticated principal for an incoming gin
// request, e.g. from a session cookie. Returning nil means
// unauthenticated.
type UserFunc func(c *gin.Context) *types.User

// ToRequest builds a normalized requests.Request from a gin.Context. It
// reads the GET query string and, for POST, the form body, which it
// parses with http.Request.ParseForm.
func ToRequest(c *gin.Context, resolveUser UserFunc) (*requests.Request, error) {
	method := requests.Method(c.Request.Method)

	reqURL := *c.Request.URL
	if reqURL.Scheme == "" {
		reqURL.Scheme = schemeOf(c)
	}
	if reqURL.Host == "" {
		reqURL.Host = c.Request.Host
	}

	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}

	var user *types.User
	if resolveUser != nil {
		user = resolveUser(c)
	}

	return &requests.Request{
		Method:  method,
		URL:     &reqURL,
		Headers: c.Request.Header,
		Query:   url.Values(c.Request.URL.Query()),
		Post:    c.Request.PostForm,
		User:    user,
	}, nil
}

func schemeOf(c *gin.Context) string {
	if c.Request.TLS != nil {
		return "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	return "http"
}

// WriteResponse serializes a normalized responses.Response back onto
// the gin context: a redirect when Response.Redirect is set (fragment
// for token content, query for code/error content), a JSON body
// otherwise.
func WriteResponse(c *gin.Context, resp *responses.Response) {
	for key := range resp.Headers {
		c.Header(key, resp.Headers.Get(key))
	}

	if resp.Redirect != "" {
		target, err := buildRedirectURL(resp.Redirect, resp.Content)
		if err != nil {
			c.JSON(http.StatusInternalServerError, responses.ErrorContent{
				Error:            types.ErrorServerError,
				ErrorDescription: "failed to build redirect",
			})
			return
		}
		c.Redirect(http.StatusFound, target)
		return
	}

	c.JSON(resp.StatusCode, resp.Content)
}

func buildRedirectURL(redirectURI string, content responses.Content) (string, error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return "", err
	}

	values := url.Values{}
	switch v := content.(type) {
	case responses.AuthorizationCodeContent:
		values.Set("code", v.Code)
		if v.Scope != "" {
			values.Set("scope", v.Scope)
		}
		if v.State != "" {
			values.Set("state", v.State)
		}
		u.RawQuery = values.Encode()

	case responses.TokenContent:
		values.Set("access_token", v.AccessToken)
		values.Set("token_type", v.TokenType)
		if v.ExpiresIn > 0 {
			values.Set("expires_in", strconv.FormatInt(v.ExpiresIn, 10))
		}
		if v.Scope != "" {
			values.Set("scope", v.Scope)
		}
		if v.State != "" {
			values.Set("state", v.State)
		}
		// Implicit-grant success carries its content in the fragment,
		// not the query string (spec.md §4.4 ResponseTypeToken handler).
		u.Fragment = values.Encode()

	case responses.ErrorContent:
		values.Set("error", string(v.Error))
		if v.ErrorDescription != "" {
			values.Set("error_description", v.ErrorDescription)
		}
		if v.ErrorURI != "" {
			values.Set("error_uri", v.ErrorURI)
		}
		if v.State != "" {
			values.Set("state", v.State)
		}
		u.RawQuery = values.Encode()
	}

	return u.String(), nil
}
