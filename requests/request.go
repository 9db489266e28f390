// Package requests defines the transport-agnostic normalized request
// value the engine consumes. Producing one from an actual HTTP request
// is the transport adapter's job (see transport/ginadapter).
package requests

import (
	"net/http"
	"net/url"

	"github.com/mcpjungle/oauth2core/types"
)

// Method is the HTTP method of a normalized request.
type Method string

const (
	MethodGET  Method = http.MethodGet
	MethodPOST Method = http.MethodPost
)

// Request is the engine's normalized view of an incoming protocol
// request. Query and Post are plain string maps; the engine reads the
// OAuth-defined fields it needs and treats an absent key as the empty
// value, exactly as spec.md §4.1 requires.
type Request struct {
	Method  Method
	URL     *url.URL
	Headers http.Header

	Query url.Values
	Post  url.Values

	// User is the authenticated principal, if any. Producing this is a
	// transport-adapter responsibility (e.g. session cookie, prior login).
	User *types.User
}

// QueryParam returns the named query parameter, or "" if absent.
func (r *Request) QueryParam(name string) string {
	return r.Query.Get(name)
}

// PostParam returns the named form parameter, or "" if absent.
func (r *Request) PostParam(name string) string {
	return r.Post.Get(name)
}

// Header returns the named header's value, case-insensitively, or "" if absent.
func (r *Request) Header(name string) string {
	return r.Headers.Get(name)
}

// IsSecure reports whether the request's URL scheme is https.
func (r *Request) IsSecure() bool {
	return r.URL != nil && r.URL.Scheme == "https"
}
