package server

import (
	"github.com/mcpjungle/oauth2core/requests"
	"github.com/mcpjungle/oauth2core/responses"
	"github.com/mcpjungle/oauth2core/types"
)

// errorResponse wraps an OAuthError as a JSON error Response (token and
// introspection endpoints, and authorization-endpoint errors found
// before redirect_uri is validated or for an unauthenticated user; the
// other authorization-endpoint errors go through redirectErrorResponse).
func errorResponse(err *types.OAuthError) *responses.Response {
	return responses.NewResponse(err.StatusCode, responses.ErrorContent{
		Error:            err.Code,
		ErrorDescription: err.Description,
		ErrorURI:         err.URI,
	})
}

// redirectErrorResponse wraps an OAuthError as a redirect to the
// client's redirect_uri, echoing state, per spec.md §4.4/§7.
func redirectErrorResponse(redirectURI, state string, err *types.OAuthError) *responses.Response {
	resp := responses.NewResponse(err.StatusCode, responses.ErrorContent{
		Error:            err.Code,
		ErrorDescription: err.Description,
		ErrorURI:         err.URI,
		State:            state,
	})
	resp.Redirect = redirectURI
	return resp
}

// checkTransport enforces the https-only pre-check (spec.md §4.3 step 1).
func (e *Engine) checkTransport(req *requests.Request) *types.OAuthError {
	if e.cfg.InsecureTransport {
		return nil
	}
	if !req.IsSecure() {
		return types.NewError(400, types.ErrorInvalidRequest, "insecure transport")
	}
	return nil
}

// checkMethod enforces the per-endpoint allowed-method pre-check
// (spec.md §4.3 step 2).
func checkMethod(req *requests.Request, allowed requests.Method) *types.OAuthError {
	if req.Method != allowed {
		return types.NewError(405, types.ErrorMethodNotAllowed, "")
	}
	return nil
}
